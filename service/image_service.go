package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

// ImagePurpose selects the target size of an ingested image
type ImagePurpose string

const (
	PurposeCover       ImagePurpose = "coverImage"
	PurposeLogo        ImagePurpose = "companyLogo"
	PurposeModule      ImagePurpose = "module"
	PurposeCombination ImagePurpose = "combination"
)

const (
	// Size settings (max dimension)
	maxSizeCover = 1600
	maxSizeItem  = 800
	jpegQuality  = 82
)

// MaxDimension returns the longest edge allowed for the purpose
func (p ImagePurpose) MaxDimension() int {
	if p == PurposeCover {
		return maxSizeCover
	}
	return maxSizeItem
}

// ParseImagePurpose maps a request value to a purpose; unknown values fall back to module size
func ParseImagePurpose(v string) ImagePurpose {
	switch ImagePurpose(v) {
	case PurposeCover, PurposeLogo, PurposeModule, PurposeCombination:
		return ImagePurpose(v)
	default:
		return PurposeModule
	}
}

// ImageService turns uploaded bytes into data URL handles
type ImageService struct {
	drive DriveServiceInterface
}

// NewImageService creates a new ImageService. drive may be nil.
func NewImageService(drive DriveServiceInterface) *ImageService {
	return &ImageService{drive: drive}
}

// sniffImageType returns the MIME type of data, or "" when it is not an image
func sniffImageType(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.Contains(bytes.ToLower(head), []byte("<svg")) {
		return "image/svg+xml"
	}
	return ""
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// fitWithin scales img down so its longest edge is maxDim; smaller images are returned as-is
func fitWithin(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxDim && height <= maxDim {
		return img
	}

	var resized image.Image
	// Zero on one side keeps the aspect ratio
	if width >= height {
		resized = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	} else {
		resized = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
	}
	log.Printf("🔄 Resizing image: %dx%d -> %dx%d", width, height, resized.Bounds().Dx(), resized.Bounds().Dy())
	return resized
}

// hasTransparency reports whether any pixel of img is not fully opaque
func hasTransparency(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return false
}

// OptimizeImage resizes an image to fit maxDim on its longest edge.
// Images with transparency are re-encoded as PNG so logos keep their alpha;
// everything else becomes JPEG. It returns the encoded bytes and their MIME type.
func OptimizeImage(img image.Image, maxDim int) ([]byte, string, error) {
	resized := fitWithin(img, maxDim)

	var buf bytes.Buffer
	if hasTransparency(img) {
		if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
			return nil, "", fmt.Errorf("failed to encode to PNG: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}

	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// IngestImage returns a data URL handle for the given bytes.
// Decodable images larger than the purpose's limit are downscaled (PNG when
// they carry transparency, JPEG otherwise); anything else that still sniffs as
// an image is embedded verbatim.
func (s *ImageService) IngestImage(data []byte, purpose ImagePurpose) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrValidation)
	}

	mime := sniffImageType(data)
	if mime == "" {
		return "", fmt.Errorf("%w: content is not an image", ErrUnsupportedImage)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		log.Printf("⚠️  Image not decodable (%s), embedding as-is: %v", mime, err)
		return dataURL(mime, data), nil
	}

	maxDim := purpose.MaxDimension()
	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return dataURL(mime, data), nil
	}

	optimized, outMime, err := OptimizeImage(img, maxDim)
	if err != nil {
		return "", err
	}

	log.Printf("✓ Image optimized: purpose=%s, %s -> %s, input=%d bytes, output=%d bytes", purpose, mime, outMime, len(data), len(optimized))
	return dataURL(outMime, optimized), nil
}

// FromDrive downloads a Drive file and ingests it
func (s *ImageService) FromDrive(ctx context.Context, fileID string, purpose ImagePurpose) (string, error) {
	if s.drive == nil {
		return "", ErrDriveUnavailable
	}
	data, err := s.drive.DownloadImage(ctx, fileID)
	if err != nil {
		return "", err
	}
	return s.IngestImage(data, purpose)
}
