package domain

import "time"

// ForecastedOrder is a predicted demand line: the quantity a customer shipped
// in a month of the prior year, carried forward to the same month one year
// later.
type ForecastedOrder struct {
	Product        string    `json:"product"`
	Customer       string    `json:"customer"`
	ForecastDate   time.Time `json:"forecast_date"`
	Quantity       float64   `json:"quantity"`
	MinShelfMonths int       `json:"min_shelf_months"`
}

// RequiredExpiration is the earliest stock expiration date this order's
// customer will accept: forecast ship date plus the shelf-life requirement.
func (o ForecastedOrder) RequiredExpiration() time.Time {
	return o.ForecastDate.AddDate(0, o.MinShelfMonths, 0)
}

// AllocationStatus classifies how an order fared against available stock.
type AllocationStatus string

const (
	// StatusYes - the order is fully covered by shelf-life-eligible stock.
	StatusYes AllocationStatus = "Yes"
	// StatusNoQuantity - total stock on hand was insufficient, but everything
	// available met the shelf-life requirement.
	StatusNoQuantity AllocationStatus = "No-Quantity"
	// StatusNoValidity - enough quantity existed but part of it could not
	// satisfy the customer's shelf-life requirement.
	StatusNoValidity AllocationStatus = "No-Validity"
	// StatusNoQuantityValidity - stock was short on quantity and part of what
	// remained was also ineligible on shelf life.
	StatusNoQuantityValidity AllocationStatus = "No-Quantity&Validity"
)

// LotConsumption records how much of one lot a single order consumed.
type LotConsumption struct {
	LotNumber  string    `json:"lot_number,omitempty"`
	Expiration time.Time `json:"expiration"`
	Quantity   float64   `json:"quantity"`
}

// AllocationResult is the outcome of simulating one forecasted order against
// the sequentially depleted stock. Fulfilled + Missing always equals the
// forecasted quantity.
type AllocationResult struct {
	Order              ForecastedOrder  `json:"order"`
	InitialStock       float64          `json:"initial_stock"`
	Fulfilled          float64          `json:"fulfilled"`
	Missing            float64          `json:"missing"`
	RemainingStock     float64          `json:"remaining_stock"`
	StockExpiration    *time.Time       `json:"stock_expiration,omitempty"`
	RequiredExpiration time.Time        `json:"required_expiration"`
	Status             AllocationStatus `json:"status"`
	Consumed           []LotConsumption `json:"consumed,omitempty"`
}
