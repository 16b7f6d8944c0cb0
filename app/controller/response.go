package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"sofa-quotation/service"
)

// maxUploadBytes bounds multipart image uploads
const maxUploadBytes = 20 << 20

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnknownModule),
		errors.Is(err, service.ErrUnsupportedImage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrModuleNotFound),
		errors.Is(err, service.ErrCombinationNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateID),
		errors.Is(err, service.ErrResetNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, service.ErrDriveUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err under the handler name and answers with the mapped status
func writeError(w http.ResponseWriter, handler string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s: %v", handler, err)
	} else {
		log.Printf("⚠️  %s: %v", handler, err)
	}
	http.Error(w, err.Error(), status)
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body is required", service.ErrValidation)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", service.ErrValidation, err)
	}
	return nil
}

// readUpload returns the bytes of the multipart "file" field
func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: invalid multipart form: %v", service.ErrValidation, err)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: file field is required", service.ErrValidation)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}
