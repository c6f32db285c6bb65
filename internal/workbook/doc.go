// Package workbook reads the three logical tables of an uploaded Excel
// workbook: stock on hand, historical shipments and customer shelf-life
// rules.
//
// # Sheet and Column Discovery
//
// Workbooks from the field are inconsistent. Sheet names vary
// ("Stock On hand", "2024_Shipments", "shelf life"), header rows are not
// always the first row, and column headers differ between exports. The
// parser therefore locates sheets by keyword on the normalized sheet name
// and maps columns by scanning the leading rows for a row containing every
// required header:
//
//	Stock:     Description, Available To Reserve / Quantity, Expiration Date, [Lot]
//	Shipments: Item Description, Customer, Ship Date, Qty
//	Shelf:     Customer Name, Minimum Shelf-life
//
// # Tolerant Value Parsing
//
// Quantities accept thousands separators. Dates accept both Excel serial
// numbers and the common formatted layouts. Rows with unparseable dates are
// dropped with a warning rather than failing the upload; "Total" rows are
// skipped.
//
// # Usage
//
//	parser := workbook.NewParser(logger, 6)
//	dataset, err := parser.Parse(uploadedFile)
//	if err != nil {
//	    // ErrSheetNotFound, ErrColumnNotFound and ErrEmptySheet identify
//	    // problems the user can fix in the workbook.
//	}
//
// The returned Dataset feeds the forecast generator and the allocator.
package workbook
