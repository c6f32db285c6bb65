package domain

import "time"

// Lot is a distinct batch of on-hand stock with its own quantity and
// expiration date. Lots are immutable once loaded; the allocator tracks
// remaining balances separately.
type Lot struct {
	Product     string    `json:"product"`
	Description string    `json:"description,omitempty"`
	LotNumber   string    `json:"lot_number,omitempty"`
	Quantity    float64   `json:"quantity"`
	Expiration  time.Time `json:"expiration"`
}

// Shipment is a single historical shipment line from the shipments sheet.
type Shipment struct {
	Product  string    `json:"product"`
	Customer string    `json:"customer"`
	ShipDate time.Time `json:"ship_date"`
	Quantity float64   `json:"quantity"`
}

// ShelfLifeRule is the minimum remaining shelf life, in months, that a
// customer accepts at time of shipment (as reported on the customer PO).
type ShelfLifeRule struct {
	Customer  string `json:"customer"`
	MinMonths int    `json:"min_months"`
}

// Dataset bundles the three logical tables parsed from one uploaded workbook.
type Dataset struct {
	Lots      []Lot           `json:"lots"`
	Shipments []Shipment      `json:"shipments"`
	Rules     []ShelfLifeRule `json:"rules"`
}
