package allocation

import (
	"log/slog"
	"sort"
	"time"

	"github.com/sofiaalage/product-sales-forecasting/pkg/contracts/domain"
)

// lotState tracks the remaining balance of one loaded lot.
type lotState struct {
	lot       domain.Lot
	remaining float64
}

// Allocator simulates sequential depletion of on-hand lots against
// forecasted orders. Per product, lots are consumed earliest-expiration
// first; lots with identical expiration dates keep their input order.
// A single greedy pass, no backtracking.
type Allocator struct {
	logger       *slog.Logger
	lots         map[string][]*lotState
	initialStock map[string]float64
	earliestExp  map[string]time.Time
}

// NewAllocator loads the stock lots. Lot quantities are never mutated; the
// allocator keeps its own remaining balances.
func NewAllocator(logger *slog.Logger, lots []domain.Lot) *Allocator {
	if logger == nil {
		logger = slog.Default()
	}

	a := &Allocator{
		logger:       logger,
		lots:         make(map[string][]*lotState),
		initialStock: make(map[string]float64),
		earliestExp:  make(map[string]time.Time),
	}

	for _, lot := range lots {
		if lot.Quantity <= 0 {
			continue
		}
		a.lots[lot.Product] = append(a.lots[lot.Product], &lotState{lot: lot, remaining: lot.Quantity})
		a.initialStock[lot.Product] += lot.Quantity
		if exp, ok := a.earliestExp[lot.Product]; !ok || lot.Expiration.Before(exp) {
			a.earliestExp[lot.Product] = lot.Expiration
		}
	}

	for product := range a.lots {
		states := a.lots[product]
		sort.SliceStable(states, func(i, j int) bool {
			return states[i].lot.Expiration.Before(states[j].lot.Expiration)
		})
	}

	return a
}

// Run processes the orders in a fixed sequence (forecast date, then product,
// then customer) and returns one result per order. For every result,
// Fulfilled + Missing equals the forecasted quantity.
func (a *Allocator) Run(orders []domain.ForecastedOrder) []domain.AllocationResult {
	sorted := make([]domain.ForecastedOrder, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ForecastDate.Equal(sorted[j].ForecastDate) {
			return sorted[i].ForecastDate.Before(sorted[j].ForecastDate)
		}
		if sorted[i].Product != sorted[j].Product {
			return sorted[i].Product < sorted[j].Product
		}
		return sorted[i].Customer < sorted[j].Customer
	})

	results := make([]domain.AllocationResult, 0, len(sorted))
	for _, order := range sorted {
		results = append(results, a.allocate(order))
	}
	return results
}

// allocate consumes stock for one order. Only shelf-life-eligible lots are
// drawn from; ineligible stock stays available for later, less demanding
// orders.
func (a *Allocator) allocate(order domain.ForecastedOrder) domain.AllocationResult {
	required := order.RequiredExpiration()
	states := a.lots[order.Product]

	totalBefore := 0.0
	eligibleBefore := 0.0
	for _, s := range states {
		totalBefore += s.remaining
		if !s.lot.Expiration.Before(required) {
			eligibleBefore += s.remaining
		}
	}

	var consumed []domain.LotConsumption
	fulfilled := 0.0
	for _, s := range states {
		if fulfilled >= order.Quantity {
			break
		}
		if s.remaining <= 0 || s.lot.Expiration.Before(required) {
			continue
		}
		take := order.Quantity - fulfilled
		if take > s.remaining {
			take = s.remaining
		}
		s.remaining -= take
		fulfilled += take
		consumed = append(consumed, domain.LotConsumption{
			LotNumber:  s.lot.LotNumber,
			Expiration: s.lot.Expiration,
			Quantity:   take,
		})
	}

	missing := order.Quantity - fulfilled
	status := classify(order.Quantity, totalBefore, eligibleBefore, missing)

	result := domain.AllocationResult{
		Order:              order,
		InitialStock:       a.initialStock[order.Product],
		Fulfilled:          fulfilled,
		Missing:            missing,
		RemainingStock:     totalBefore - fulfilled,
		RequiredExpiration: required,
		Status:             status,
		Consumed:           consumed,
	}
	if exp, ok := a.earliestExp[order.Product]; ok {
		e := exp
		result.StockExpiration = &e
	}

	if status != domain.StatusYes {
		a.logger.Debug("order not fully covered",
			slog.String("product", order.Product),
			slog.String("customer", order.Customer),
			slog.String("status", string(status)),
			slog.Float64("missing", missing))
	}

	return result
}

// classify derives the four-way status from quantities measured before the
// order consumed anything:
//   - Yes: fully fulfilled;
//   - No-Validity: enough total stock existed but shelf-life eligibility
//     blocked full coverage;
//   - No-Quantity: total stock was short and all of it was eligible;
//   - No-Quantity&Validity: stock was short and part of it was ineligible too.
func classify(ordered, totalBefore, eligibleBefore, missing float64) domain.AllocationStatus {
	switch {
	case missing <= 0:
		return domain.StatusYes
	case totalBefore >= ordered:
		return domain.StatusNoValidity
	case eligibleBefore < totalBefore:
		return domain.StatusNoQuantityValidity
	default:
		return domain.StatusNoQuantity
	}
}

// Remaining reports the current balance for a product. Used by tests to
// check the depletion invariant.
func (a *Allocator) Remaining(product string) float64 {
	total := 0.0
	for _, s := range a.lots[product] {
		total += s.remaining
	}
	return total
}
