package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofa-quotation/models"
)

func newTestDocumentService(t *testing.T) *DocumentService {
	t.Helper()
	s, err := NewDocumentService("", time.Second)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	s.serial = func() int { return 7 }
	return s
}

func TestDocument_Reference(t *testing.T) {
	s := newTestDocumentService(t)

	assert.Equal(t, "QT-2025-007", s.Reference())
}

func TestDocument_RenderEmptyState(t *testing.T) {
	s := newTestDocumentService(t)

	html, err := s.RenderHTML(models.DefaultQuotationState(), DescriptionPlaceholder, s.Reference())
	require.NoError(t, err)

	assert.Contains(t, html, "尚未添加任何元素")
	assert.Contains(t, html, models.DefaultCompanyName)
	assert.Contains(t, html, models.DefaultSofaModelName)
	assert.Contains(t, html, DescriptionPlaceholder)
	assert.Contains(t, html, "REF: QT-2025-007")
	assert.NotContains(t, html, "SETS 组合方案")
	assert.Contains(t, html, "Authorized Document")
}

func TestDocument_RenderCatalog(t *testing.T) {
	s := newTestDocumentService(t)
	state := models.DefaultQuotationState()
	state.Modules = []models.Module{
		{
			ID:         "A",
			Name:       "左扶手",
			ModelCode:  "ML-L",
			Dimensions: models.Dimensions{Length: 95.5, Width: 100, Height: 78},
			Prices:     models.PriceVector{models.FabricG1: 12500, models.LeatherG3: 2800}.Complete(),
		},
	}
	state.Combinations = []models.Combination{
		{
			ID:           "c",
			Name:         "三人位组合",
			ModelCode:    "ML-3",
			ModuleIDs:    []string{"A"},
			ManualPrices: models.PriceVector{models.FabricG1: 9999}.Complete(),
		},
	}

	html, err := s.RenderHTML(state, "一段描述", s.Reference())
	require.NoError(t, err)

	assert.NotContains(t, html, "尚未添加任何元素")
	assert.Contains(t, html, "左扶手")
	assert.Contains(t, html, "L 95.5")
	assert.Contains(t, html, "¥ 12,500")
	assert.Contains(t, html, "¥ 2,800")
	assert.Contains(t, html, "SETS 组合方案")
	assert.Contains(t, html, "三人位组合")
	assert.Contains(t, html, "¥ 9,999")
	for _, grade := range models.Grades {
		assert.Contains(t, html, string(grade))
	}
}

func TestDocument_ImageHandles(t *testing.T) {
	s := newTestDocumentService(t)
	state := models.DefaultQuotationState()
	state.CompanyLogo = "data:image/png;base64,iVBORw0KGgo="
	state.CoverImage = "javascript:alert(1)"

	html, err := s.RenderHTML(state, "", s.Reference())
	require.NoError(t, err)

	assert.Contains(t, html, `src="data:image/png;base64,iVBORw0KGgo="`)
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "Visual Excellence")
}

func TestSafeImageURL(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"", false},
		{"data:image/jpeg;base64,AAA", true},
		{"https://cdn.example.com/a.jpg", true},
		{"http://localhost/a.png", true},
		{"data:text/html;base64,AAA", false},
		{"file:///etc/passwd", false},
	}
	for _, tt := range tests {
		_, ok := safeImageURL(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
