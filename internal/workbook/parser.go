package workbook

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sofiaalage/product-sales-forecasting/pkg/contracts/domain"
)

// Sentinel errors for input problems the user can fix.
var (
	ErrSheetNotFound  = errors.New("sheet not found")
	ErrColumnNotFound = errors.New("required column not found")
	ErrEmptySheet     = errors.New("sheet contains no data rows")
)

// Sheet lookup keywords. Workbooks in the field name these sheets
// inconsistently ("Stock On hand", "2024_Shipments", "shelf life"), so
// matching is by keyword on the normalized sheet name.
var (
	stockSheetKeys    = []string{"stock"}
	shipmentSheetKeys = []string{"shipment"}
	shelfSheetKeys    = []string{"shelf"}
)

// dateLayouts are tried in order when a cell is not an Excel serial number.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"2-Jan-06",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Parser reads the three logical tables out of one uploaded workbook.
type Parser struct {
	logger             *slog.Logger
	defaultShelfMonths int
}

// NewParser creates a workbook parser. defaultShelfMonths applies when a
// customer's shelf-life text is missing or ambiguous.
func NewParser(logger *slog.Logger, defaultShelfMonths int) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger, defaultShelfMonths: defaultShelfMonths}
}

// Parse reads an Excel workbook and extracts stock lots, historical
// shipments and customer shelf-life rules.
func (p *Parser) Parse(r io.Reader) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	stockRows, err := p.sheetRows(f, "stock on hand", stockSheetKeys)
	if err != nil {
		return nil, err
	}
	shipmentRows, err := p.sheetRows(f, "shipments", shipmentSheetKeys)
	if err != nil {
		return nil, err
	}
	shelfRows, err := p.sheetRows(f, "shelf life", shelfSheetKeys)
	if err != nil {
		return nil, err
	}

	lots, err := p.parseStock(stockRows)
	if err != nil {
		return nil, err
	}
	shipments, err := p.parseShipments(shipmentRows)
	if err != nil {
		return nil, err
	}
	rules, err := p.parseShelfLife(shelfRows)
	if err != nil {
		return nil, err
	}

	p.logger.Info("workbook parsed",
		slog.Int("lots", len(lots)),
		slog.Int("shipments", len(shipments)),
		slog.Int("shelf_life_rules", len(rules)))

	return &domain.Dataset{Lots: lots, Shipments: shipments, Rules: rules}, nil
}

// sheetRows locates a sheet by keyword and returns its rows.
func (p *Parser) sheetRows(f *excelize.File, label string, keys []string) ([][]string, error) {
	names := f.GetSheetList()
	for _, name := range names {
		normalized := strings.ToLower(strings.TrimSpace(name))
		for _, key := range keys {
			if strings.Contains(normalized, key) {
				rows, err := f.GetRows(name)
				if err != nil {
					return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
				}
				p.logger.Debug("sheet located",
					slog.String("label", label),
					slog.String("sheet_name", name),
					slog.Int("total_rows", len(rows)))
				return rows, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no %q sheet in workbook (sheets: %s)",
		ErrSheetNotFound, label, strings.Join(names, ", "))
}

// columnSpec describes one required or optional column of a sheet.
type columnSpec struct {
	key      string
	match    func(header string) bool
	required bool
}

// mapColumns scans the leading rows for the header row and maps column
// positions by header name. A row qualifies when every required column of
// the spec appears in it.
func mapColumns(rows [][]string, sheet string, specs []columnSpec) (map[string]int, int, error) {
	scan := len(rows)
	if scan > 10 {
		scan = 10
	}

	for i := 0; i < scan; i++ {
		cols := make(map[string]int)
		for j, cell := range rows[i] {
			header := strings.ToLower(strings.TrimSpace(cell))
			if header == "" {
				continue
			}
			for _, spec := range specs {
				if _, seen := cols[spec.key]; !seen && spec.match(header) {
					cols[spec.key] = j
				}
			}
		}

		complete := true
		for _, spec := range specs {
			if !spec.required {
				continue
			}
			if _, ok := cols[spec.key]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return cols, i, nil
		}
	}

	missing := make([]string, 0, len(specs))
	for _, spec := range specs {
		if spec.required {
			missing = append(missing, spec.key)
		}
	}
	return nil, 0, fmt.Errorf("%w: sheet %q needs columns %s",
		ErrColumnNotFound, sheet, strings.Join(missing, ", "))
}

func (p *Parser) parseStock(rows [][]string) ([]domain.Lot, error) {
	specs := []columnSpec{
		{key: "description", required: true, match: func(h string) bool {
			return strings.Contains(h, "description")
		}},
		{key: "quantity", required: true, match: func(h string) bool {
			return strings.Contains(h, "available") || h == "quantity" || h == "qty"
		}},
		{key: "expiration", required: true, match: func(h string) bool {
			return strings.Contains(h, "expir")
		}},
		{key: "lot", match: func(h string) bool {
			return strings.Contains(h, "lot") || strings.Contains(h, "batch")
		}},
	}

	cols, headerRow, err := mapColumns(rows, "stock on hand", specs)
	if err != nil {
		return nil, err
	}

	var lots []domain.Lot
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		product := strings.TrimSpace(cell(row, cols["description"]))
		if product == "" || isTotalRow(product) {
			continue
		}

		expiration, ok := parseDate(cell(row, cols["expiration"]))
		if !ok {
			p.logger.Warn("stock row dropped, unparseable expiration date",
				slog.Int("row", i+1),
				slog.String("product", product),
				slog.String("value", cell(row, cols["expiration"])))
			continue
		}

		lot := domain.Lot{
			Product:     product,
			Description: product,
			Quantity:    parseQuantity(cell(row, cols["quantity"])),
			Expiration:  expiration,
		}
		if idx, ok := cols["lot"]; ok {
			lot.LotNumber = strings.TrimSpace(cell(row, idx))
		}
		lots = append(lots, lot)
	}

	if len(lots) == 0 {
		return nil, fmt.Errorf("%w: stock on hand", ErrEmptySheet)
	}
	return lots, nil
}

func (p *Parser) parseShipments(rows [][]string) ([]domain.Shipment, error) {
	specs := []columnSpec{
		{key: "product", required: true, match: func(h string) bool {
			return strings.Contains(h, "description") || strings.Contains(h, "item")
		}},
		{key: "customer", required: true, match: func(h string) bool {
			return strings.Contains(h, "customer")
		}},
		{key: "date", required: true, match: func(h string) bool {
			return strings.Contains(h, "ship date") || h == "date"
		}},
		{key: "quantity", required: true, match: func(h string) bool {
			return h == "qty" || strings.Contains(h, "quantity")
		}},
	}

	cols, headerRow, err := mapColumns(rows, "shipments", specs)
	if err != nil {
		return nil, err
	}

	var shipments []domain.Shipment
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		product := strings.TrimSpace(cell(row, cols["product"]))
		customer := strings.TrimSpace(cell(row, cols["customer"]))
		if product == "" || isTotalRow(product) {
			continue
		}

		// Rows with unparseable ship dates are dropped rather than failing
		// the whole upload.
		shipDate, ok := parseDate(cell(row, cols["date"]))
		if !ok {
			p.logger.Warn("shipment row dropped, unparseable ship date",
				slog.Int("row", i+1),
				slog.String("product", product),
				slog.String("value", cell(row, cols["date"])))
			continue
		}

		shipments = append(shipments, domain.Shipment{
			Product:  product,
			Customer: customer,
			ShipDate: shipDate,
			Quantity: parseQuantity(cell(row, cols["quantity"])),
		})
	}

	if len(shipments) == 0 {
		return nil, fmt.Errorf("%w: shipments", ErrEmptySheet)
	}
	return shipments, nil
}

func (p *Parser) parseShelfLife(rows [][]string) ([]domain.ShelfLifeRule, error) {
	specs := []columnSpec{
		{key: "customer", required: true, match: func(h string) bool {
			return strings.Contains(h, "customer")
		}},
		{key: "shelf", required: true, match: func(h string) bool {
			return strings.Contains(h, "shelf")
		}},
	}

	cols, headerRow, err := mapColumns(rows, "shelf life", specs)
	if err != nil {
		return nil, err
	}

	var rules []domain.ShelfLifeRule
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		customer := strings.TrimSpace(cell(row, cols["customer"]))
		if customer == "" {
			continue
		}
		rules = append(rules, domain.ShelfLifeRule{
			Customer:  customer,
			MinMonths: ParseShelfLifeText(cell(row, cols["shelf"]), p.defaultShelfMonths),
		})
	}

	// A workbook without rules is usable; every customer gets the default.
	return rules, nil
}

// cell returns the cell at idx or "" when the row is ragged. excelize trims
// trailing empty cells from rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isTotalRow(value string) bool {
	return strings.Contains(strings.ToLower(value), "total")
}

// parseQuantity reads a numeric cell tolerating thousands separators.
func parseQuantity(value string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	v, _ := strconv.ParseFloat(cleaned, 64)
	return v
}

// parseDate reads a date cell, accepting both Excel serial numbers and the
// usual formatted layouts.
func parseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
