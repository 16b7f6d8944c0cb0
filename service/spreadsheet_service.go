package service

import (
	"bytes"
	"fmt"
	"strings"

	"sofa-quotation/metrics"
	"sofa-quotation/models"
	"sofa-quotation/pricing"

	"github.com/xuri/excelize/v2"
)

const (
	ModulesSheet      = "Modules"
	CombinationsSheet = "Combinations"

	PricingModeComputed = "computed"
	PricingModeManual   = "manual"
)

// SpreadsheetService exports the price tables as an XLSX workbook
type SpreadsheetService struct{}

// NewSpreadsheetService creates a new SpreadsheetService
func NewSpreadsheetService() *SpreadsheetService {
	return &SpreadsheetService{}
}

func gradeHeaders() []interface{} {
	headers := make([]interface{}, 0, len(models.Grades))
	for _, grade := range models.Grades {
		headers = append(headers, string(grade))
	}
	return headers
}

func gradeValues(prices models.PriceVector) []interface{} {
	values := make([]interface{}, 0, len(models.Grades))
	for _, grade := range models.Grades {
		values = append(values, prices.Get(grade))
	}
	return values
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Export builds a workbook with one sheet for modules and one for combinations.
// Grade columns follow the display order of models.Grades.
func (s *SpreadsheetService) Export(state models.QuotationState) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(defaultSheet, ModulesSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(CombinationsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	currency := state.Currency
	moduleRows := [][]interface{}{
		append([]interface{}{"ID", "名称", "型号", "长", "深", "高", "币种"}, gradeHeaders()...),
	}
	names := make(map[string]string, len(state.Modules))
	for _, m := range state.Modules {
		names[m.ID] = m.Name
		row := []interface{}{
			m.ID,
			m.Name,
			m.ModelCode,
			m.Dimensions.Length,
			m.Dimensions.Width,
			m.Dimensions.Height,
			currency,
		}
		moduleRows = append(moduleRows, append(row, gradeValues(m.Prices)...))
	}
	if err := writeRows(f, ModulesSheet, moduleRows); err != nil {
		return nil, err
	}

	comboRows := [][]interface{}{
		append([]interface{}{"ID", "名称", "型号", "组成", "定价方式", "币种"}, append(gradeHeaders(), "合计")...),
	}
	for _, c := range state.Combinations {
		parts := make([]string, 0, len(c.ModuleIDs))
		for _, id := range c.ModuleIDs {
			if name, ok := names[id]; ok {
				parts = append(parts, name)
			}
		}
		mode := PricingModeComputed
		if c.IsManualPrice {
			mode = PricingModeManual
		}
		row := []interface{}{
			c.ID,
			c.Name,
			c.ModelCode,
			strings.Join(parts, " + "),
			mode,
			currency,
		}
		row = append(row, gradeValues(c.ManualPrices)...)
		row = append(row, pricing.Total(c.ManualPrices))
		comboRows = append(comboRows, row)
	}
	if err := writeRows(f, CombinationsSheet, comboRows); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	metrics.Exports.WithLabelValues("xlsx").Inc()
	return buf.Bytes(), nil
}
