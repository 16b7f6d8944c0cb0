package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"sofa-quotation/metrics"
	"sofa-quotation/models"
)

const (
	// DescriptionPlaceholder is shown until the first generation resolves
	DescriptionPlaceholder = "加载意式美学描述中..."

	FallbackNoCredentials = "精湛的意式工艺与现代极简主义设计完美融合，营造极致的居家舒适感。"
	FallbackEmpty         = "每一处细节都彰显着意式设计的艺术灵魂与现代生活的优雅品质。"
	FallbackError         = "融汇意式传统与现代美学，重新定义奢华舒适的居家体验。"
)

// designPrompt is sent with {{name}} replaced by the collection name
const designPrompt = `
你是一位精通意大利现代家具营销的大师。
请为名为 "{{name}}" 的沙发系列写一段简短、高级且具有艺术感的描述（2句中文）。
侧重于“极简线条”、“精湛工艺”、“意式美学”和“极致舒适”。
语气应当优雅、专业且具有品牌感。
`

// BuildDesignPrompt fills the prompt template
func BuildDesignPrompt(modelName string) string {
	return strings.Replace(designPrompt, "{{name}}", modelName, 1)
}

// DescriptionGenerator produces a marketing description for a collection name.
// Implementations never fail: every problem maps to a fallback text.
type DescriptionGenerator interface {
	Generate(ctx context.Context, modelName string) string
}

// GeminiDescriptionGenerator calls the Gemini generateContent API through the GenAI SDK
type GeminiDescriptionGenerator struct {
	apiKey   string
	model    string
	endpoint string // Overrides the API base URL when set
}

// NewGeminiDescriptionGenerator creates a new GeminiDescriptionGenerator
func NewGeminiDescriptionGenerator(apiKey, model, endpoint string) *GeminiDescriptionGenerator {
	return &GeminiDescriptionGenerator{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
	}
}

// Ensure GeminiDescriptionGenerator implements DescriptionGenerator
var _ DescriptionGenerator = (*GeminiDescriptionGenerator)(nil)

// Generate asks the model for a two-sentence description
func (g *GeminiDescriptionGenerator) Generate(ctx context.Context, modelName string) string {
	if g.apiKey == "" {
		metrics.DescriptionRequests.WithLabelValues("no_credentials").Inc()
		return FallbackNoCredentials
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.endpoint},
	})
	if err != nil {
		log.Printf("❌ Gemini client failed: %v", err)
		metrics.DescriptionRequests.WithLabelValues("error").Inc()
		return FallbackError
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(BuildDesignPrompt(modelName)), nil)
	if err != nil {
		log.Printf("❌ Gemini failed: %v", err)
		metrics.DescriptionRequests.WithLabelValues("error").Inc()
		return FallbackError
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		metrics.DescriptionRequests.WithLabelValues("empty").Inc()
		return FallbackEmpty
	}
	metrics.DescriptionRequests.WithLabelValues("generated").Inc()
	return text
}

// responseText concatenates the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// DescriptionService keeps the current description of the document.
// Each refresh runs in the background; a result is applied only when no newer
// refresh was issued in the meantime, so the last request wins.
type DescriptionService struct {
	generator DescriptionGenerator
	timeout   time.Duration

	mu            sync.Mutex
	seq           uint64
	current       string
	lastModel     string // name of the most recent request
	resolvedModel string // name the current text was generated for
	pending       sync.WaitGroup
}

// NewDescriptionService creates a DescriptionService showing the placeholder
func NewDescriptionService(generator DescriptionGenerator, timeout time.Duration) *DescriptionService {
	return &DescriptionService{
		generator: generator,
		timeout:   timeout,
		current:   DescriptionPlaceholder,
	}
}

// Current returns the description to render
func (d *DescriptionService) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// Refresh starts a background generation for modelName and returns its sequence number
func (d *DescriptionService) Refresh(modelName string) uint64 {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.lastModel = modelName
	d.mu.Unlock()

	d.pending.Add(1)
	go func() {
		defer d.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		text := d.generator.Generate(ctx, modelName)

		d.mu.Lock()
		defer d.mu.Unlock()
		if seq != d.seq {
			metrics.DescriptionRequests.WithLabelValues("superseded").Inc()
			return
		}
		d.current = text
		d.resolvedModel = modelName
	}()
	return seq
}

// Resolve generates a description synchronously, for one-shot exports.
// It also becomes the current description.
func (d *DescriptionService) Resolve(ctx context.Context, modelName string) string {
	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.lastModel = modelName
	d.mu.Unlock()

	text := d.generator.Generate(ctx, modelName)

	d.mu.Lock()
	if seq == d.seq {
		d.current = text
		d.resolvedModel = modelName
	}
	d.mu.Unlock()
	return text
}

// Settled returns the current description when it was generated for modelName.
// Otherwise, including while a refresh for modelName is still in flight, it
// generates one synchronously.
func (d *DescriptionService) Settled(ctx context.Context, modelName string) string {
	d.mu.Lock()
	current := d.current
	stale := current == DescriptionPlaceholder || d.resolvedModel != modelName
	d.mu.Unlock()
	if !stale {
		return current
	}
	return d.Resolve(ctx, modelName)
}

// Listener returns a store listener that refreshes the description whenever
// the collection name changes
func (d *DescriptionService) Listener() StoreListener {
	return func(state models.QuotationState) {
		d.mu.Lock()
		changed := state.SofaModelName != d.lastModel
		d.mu.Unlock()
		if changed {
			d.Refresh(state.SofaModelName)
		}
	}
}

// Wait blocks until every background generation has finished
func (d *DescriptionService) Wait() {
	d.pending.Wait()
}
