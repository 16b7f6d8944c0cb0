package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"sofa-quotation/metrics"
	"sofa-quotation/models"
	"sofa-quotation/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

//go:embed templates/quotation.html
var templateFS embed.FS

// A4 in inches for PrintToPDF
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

const defaultPDFTimeout = 30 * time.Second

// DocumentService renders the printable quotation.
// It only reads the state it is given and never touches the store.
type DocumentService struct {
	tmpl       *template.Template
	chromePath string
	pdfTimeout time.Duration
	now        func() time.Time
	serial     func() int
}

// NewDocumentService creates a new DocumentService.
// chromePath may be empty, in which case common install paths are probed.
func NewDocumentService(chromePath string, pdfTimeout time.Duration) (*DocumentService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/quotation.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if pdfTimeout <= 0 {
		pdfTimeout = defaultPDFTimeout
	}
	return &DocumentService{
		tmpl:       tmpl,
		chromePath: chromePath,
		pdfTimeout: pdfTimeout,
		now:        time.Now,
		serial:     func() int { return rand.IntN(1000) },
	}, nil
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks the configured path and CHROME_PATH env var first, then common installation paths
func detectChromePath(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("CHROME_PATH")} {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Reference draws a new document reference, e.g. "QT-2025-042".
// Call it once per export and pass the result to both the renderer and the file name.
func (s *DocumentService) Reference() string {
	return fmt.Sprintf("QT-%d-%03d", s.now().Year(), s.serial()%1000)
}

type gradePrice struct {
	Grade  string
	Amount string
}

type moduleView struct {
	Name      string
	ModelCode string
	Length    string
	Width     string
	Height    string
	Image     template.URL
	HasImage  bool
	Prices    []gradePrice
}

type combinationView struct {
	Name        string
	ModelCode   string
	Composition string
	Image       template.URL
	HasImage    bool
	Prices      []gradePrice
}

type documentView struct {
	CompanyName  string
	ModelName    string
	Description  string
	Reference    string
	Logo         template.URL
	HasLogo      bool
	Cover        template.URL
	HasCover     bool
	IsEmpty      bool
	Modules      []moduleView
	Combinations []combinationView
}

// safeImageURL lets only inline images and http(s) links reach the src attribute
func safeImageURL(handle string) (template.URL, bool) {
	h := strings.TrimSpace(handle)
	switch {
	case h == "":
		return "", false
	case strings.HasPrefix(h, "data:image/"),
		strings.HasPrefix(h, "https://"),
		strings.HasPrefix(h, "http://"):
		return template.URL(h), true
	default:
		return "", false
	}
}

func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func priceRows(currency string, prices models.PriceVector) []gradePrice {
	rows := make([]gradePrice, 0, len(models.Grades))
	for _, grade := range models.Grades {
		rows = append(rows, gradePrice{
			Grade:  string(grade),
			Amount: utils.FormatPrice(currency, prices.Get(grade)),
		})
	}
	return rows
}

func buildView(state models.QuotationState, description, reference string) documentView {
	view := documentView{
		CompanyName: state.CompanyName,
		ModelName:   state.SofaModelName,
		Description: description,
		Reference:   reference,
		IsEmpty:     len(state.Modules) == 0 && len(state.Combinations) == 0,
	}
	view.Logo, view.HasLogo = safeImageURL(state.CompanyLogo)
	view.Cover, view.HasCover = safeImageURL(state.CoverImage)

	names := make(map[string]string, len(state.Modules))
	for _, m := range state.Modules {
		names[m.ID] = m.Name
		mv := moduleView{
			Name:      m.Name,
			ModelCode: m.ModelCode,
			Length:    formatDimension(m.Dimensions.Length),
			Width:     formatDimension(m.Dimensions.Width),
			Height:    formatDimension(m.Dimensions.Height),
			Prices:    priceRows(state.Currency, m.Prices),
		}
		mv.Image, mv.HasImage = safeImageURL(m.Image)
		view.Modules = append(view.Modules, mv)
	}

	for _, c := range state.Combinations {
		parts := make([]string, 0, len(c.ModuleIDs))
		for _, id := range c.ModuleIDs {
			if name, ok := names[id]; ok {
				parts = append(parts, name)
			}
		}
		cv := combinationView{
			Name:        c.Name,
			ModelCode:   c.ModelCode,
			Composition: strings.Join(parts, " + "),
			Prices:      priceRows(state.Currency, c.ManualPrices),
		}
		cv.Image, cv.HasImage = safeImageURL(c.Image)
		view.Combinations = append(view.Combinations, cv)
	}

	return view
}

func (s *DocumentService) render(state models.QuotationState, description, reference string) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, buildView(state, description, reference)); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// RenderHTML renders the quotation document as a standalone HTML page
func (s *DocumentService) RenderHTML(state models.QuotationState, description, reference string) (string, error) {
	html, err := s.render(state, description, reference)
	if err != nil {
		return "", err
	}
	metrics.Exports.WithLabelValues("html").Inc()
	return html, nil
}

// GeneratePDF prints the rendered HTML to an A4 PDF using chromedp
func (s *DocumentService) GeneratePDF(ctx context.Context, state models.QuotationState, description, reference string) ([]byte, error) {
	html, err := s.render(state, description, reference)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.pdfTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		log.Printf("⚠️  Chrome not found in known paths, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts and inline images to decode
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// The cover forces a page break through CSS page-break-after
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	metrics.Exports.WithLabelValues("pdf").Inc()
	log.Printf("📄 Generated quotation PDF (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}
