package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofa-quotation/models"
)

// gatedGenerator blocks each generation until its model name is released
type gatedGenerator struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func newGatedGenerator(names ...string) *gatedGenerator {
	g := &gatedGenerator{gates: make(map[string]chan struct{})}
	for _, name := range names {
		g.gates[name] = make(chan struct{})
	}
	return g
}

func (g *gatedGenerator) Generate(ctx context.Context, modelName string) string {
	g.mu.Lock()
	gate := g.gates[modelName]
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return "desc:" + modelName
}

func (g *gatedGenerator) release(name string) {
	close(g.gates[name])
}

type staticGenerator string

func (s staticGenerator) Generate(ctx context.Context, modelName string) string {
	return string(s) + modelName
}

func TestBuildDesignPrompt(t *testing.T) {
	prompt := BuildDesignPrompt("ROMA")

	assert.Contains(t, prompt, `"ROMA"`)
	assert.NotContains(t, prompt, "{{name}}")
}

func TestDescription_StartsWithPlaceholder(t *testing.T) {
	d := NewDescriptionService(staticGenerator(""), time.Second)

	assert.Equal(t, DescriptionPlaceholder, d.Current())
}

func TestDescription_LastRequestWins(t *testing.T) {
	gen := newGatedGenerator("first", "second")
	d := NewDescriptionService(gen, time.Second)

	d.Refresh("first")
	d.Refresh("second")

	// The newer request resolves first, then the stale one arrives late
	gen.release("second")
	assert.Eventually(t, func() bool { return d.Current() == "desc:second" }, time.Second, 5*time.Millisecond)
	gen.release("first")
	d.Wait()

	assert.Equal(t, "desc:second", d.Current())
}

func TestDescription_SupersededResultDiscarded(t *testing.T) {
	gen := newGatedGenerator("old", "new")
	d := NewDescriptionService(gen, time.Second)

	d.Refresh("old")
	d.Refresh("new")
	gen.release("old")
	gen.release("new")
	d.Wait()

	assert.Equal(t, "desc:new", d.Current())
}

func TestDescription_ListenerRefreshesOnNameChange(t *testing.T) {
	d := NewDescriptionService(staticGenerator("about "), time.Second)
	store := NewStore(models.DefaultQuotationState())
	store.Subscribe(d.Listener())

	name := "VENEZIA"
	store.UpdateMetadata(models.MetadataUpdate{SofaModelName: &name})
	d.Wait()
	assert.Equal(t, "about VENEZIA", d.Current())

	// Other edits do not trigger a new generation
	company := "Other"
	store.UpdateMetadata(models.MetadataUpdate{CompanyName: &company})
	d.Wait()
	assert.Equal(t, "about VENEZIA", d.Current())
}

func TestDescription_Settled(t *testing.T) {
	d := NewDescriptionService(staticGenerator("about "), time.Second)

	assert.Equal(t, "about MILANO", d.Settled(context.Background(), "MILANO"))
	assert.Equal(t, "about MILANO", d.Current())
	assert.Equal(t, "about ROMA", d.Settled(context.Background(), "ROMA"))
}

func TestDescription_SettledIgnoresTextOfPreviousName(t *testing.T) {
	gen := newGatedGenerator("ROMA")
	d := NewDescriptionService(gen, time.Second)
	require.Equal(t, "desc:MILANO", d.Resolve(context.Background(), "MILANO"))

	// The rename is requested but has not resolved yet
	d.Refresh("ROMA")

	got := make(chan string, 1)
	go func() { got <- d.Settled(context.Background(), "ROMA") }()
	gen.release("ROMA")

	assert.Equal(t, "desc:ROMA", <-got)
	d.Wait()
	assert.Equal(t, "desc:ROMA", d.Current())
}

func TestGemini_NoCredentials(t *testing.T) {
	g := NewGeminiDescriptionGenerator("", "gemini-test", "")

	assert.Equal(t, FallbackNoCredentials, g.Generate(context.Background(), "MILANO"))
}

func geminiServer(t *testing.T, status int, body string) (*httptest.Server, chan string) {
	t.Helper()
	paths := make(chan string, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, paths
}

func TestGemini_ReturnsGeneratedText(t *testing.T) {
	srv, paths := geminiServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"极简线条，"},{"text":"意式灵魂。"}]}}]}`)
	g := NewGeminiDescriptionGenerator("test-key", "gemini-test", srv.URL+"/")

	got := g.Generate(context.Background(), "MILANO")

	assert.Equal(t, "极简线条，意式灵魂。", got)
	path := <-paths
	assert.True(t, strings.HasSuffix(path, "models/gemini-test:generateContent"), path)
}

func TestGemini_EmptyResponse(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusOK, `{"candidates":[]}`)
	g := NewGeminiDescriptionGenerator("test-key", "gemini-test", srv.URL+"/")

	assert.Equal(t, FallbackEmpty, g.Generate(context.Background(), "MILANO"))
}

func TestGemini_APIError(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"boom"}}`)
	g := NewGeminiDescriptionGenerator("test-key", "gemini-test", srv.URL+"/")

	assert.Equal(t, FallbackError, g.Generate(context.Background(), "MILANO"))
}

func TestResponseText_NilSafe(t *testing.T) {
	require.Empty(t, responseText(nil))
}
