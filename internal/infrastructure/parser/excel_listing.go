package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
	"github.com/foodpulse/foodpulse/internal/freshness"
)

// ErrUnsupportedFile the upload is not an Excel workbook.
var ErrUnsupportedFile = errors.New("only .xlsx files are supported")

const (
	colFood     = "food_item"
	colQuantity = "quantity"
	colHours    = "fresh_hours"
)

type excelListingParser struct{}

// NewExcelListingParser reads listings from the first sheet of a workbook.
// Columns are found by header name; without a header the order is
// food item, quantity, fresh hours.
func NewExcelListingParser() repository.ListingParser {
	return &excelListingParser{}
}

func (e *excelListingParser) ParseListings(ctx context.Context, data []byte, filename string) ([]entity.ListingDraft, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", "":
	default:
		return nil, ErrUnsupportedFile
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("excel file is empty")
	}

	columns, hasHeader := mapColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}
	log.Debug().Str("file", filename).Int("rows", len(rows)).Bool("header", hasHeader).
		Interface("columns", columns).Msg("parsing listing import")

	var drafts []entity.ListingDraft
	for i := start; i < len(rows); i++ {
		row := rows[i]
		food := cell(row, columns[colFood])
		if food == "" {
			continue
		}
		draft := entity.ListingDraft{
			FoodItem: food,
			Quantity: cell(row, columns[colQuantity]),
		}
		if raw := cell(row, columns[colHours]); raw != "" {
			hours, err := strconv.Atoi(raw)
			if err != nil || !freshness.Valid(hours) {
				log.Warn().Int("row", i+1).Str("value", raw).Msg("ignoring invalid fresh hours, will estimate")
			} else {
				draft.FreshHours = hours
			}
		}
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, errors.New("excel file has no listings")
	}
	return drafts, nil
}

// mapColumns maps known header names to column indexes. A row that names
// no known column is data, and the default order applies.
func mapColumns(header []string) (map[string]int, bool) {
	columns := map[string]int{}
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case contains(name, "fresh", "hours", "shelf"):
			setOnce(columns, colHours, i)
		case contains(name, "qty", "quantity", "amount"):
			setOnce(columns, colQuantity, i)
		case contains(name, "food", "item", "name"):
			setOnce(columns, colFood, i)
		}
	}
	if len(columns) == 0 {
		return map[string]int{colFood: 0, colQuantity: 1, colHours: 2}, false
	}

	if _, ok := columns[colFood]; !ok {
		columns[colFood] = 0
	}
	for _, key := range []string{colQuantity, colHours} {
		if _, ok := columns[key]; !ok {
			columns[key] = -1
		}
	}
	return columns, true
}

func setOnce(columns map[string]int, key string, i int) {
	if _, ok := columns[key]; !ok {
		columns[key] = i
	}
}

func contains(str string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(str, kw) {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
