package forecast

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sofiaalage/product-sales-forecasting/pkg/contracts/domain"
)

// Config controls forecast generation.
type Config struct {
	// WindowStart/WindowEnd restrict which prior-year months are carried
	// forward. Shipments outside the window are ignored.
	WindowStart time.Month
	WindowEnd   time.Month
	// DefaultShelfLifeMonths applies to customers without a shelf-life rule.
	DefaultShelfLifeMonths int
}

// DefaultConfig returns the June-December window the report was built for.
func DefaultConfig() Config {
	return Config{
		WindowStart:            time.June,
		WindowEnd:              time.December,
		DefaultShelfLifeMonths: 6,
	}
}

// Generator produces forecasted orders by direct prior-year carry-forward:
// each (customer, product, month) shipment volume becomes the forecast for
// the same month one year later. No smoothing, no seasonality model.
type Generator struct {
	logger *slog.Logger
	cfg    Config
}

// NewGenerator creates a forecast generator.
func NewGenerator(logger *slog.Logger, cfg Config) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.WindowStart == 0 {
		cfg.WindowStart = time.January
	}
	if cfg.WindowEnd == 0 {
		cfg.WindowEnd = time.December
	}
	return &Generator{logger: logger, cfg: cfg}
}

type forecastKey struct {
	product  string
	customer string
	year     int
	month    time.Month
}

// Generate builds forecasted orders from historical shipments, joining each
// customer's shelf-life rule (or the default). Orders come out sorted by
// forecast date, then product, then customer; the allocator depends on this
// fixed sequence.
func (g *Generator) Generate(shipments []domain.Shipment, rules []domain.ShelfLifeRule) []domain.ForecastedOrder {
	ruleMonths := make(map[string]int, len(rules))
	for _, rule := range rules {
		ruleMonths[normalizeCustomer(rule.Customer)] = rule.MinMonths
	}

	totals := make(map[forecastKey]float64)
	var keys []forecastKey
	for _, s := range shipments {
		month := s.ShipDate.Month()
		if month < g.cfg.WindowStart || month > g.cfg.WindowEnd {
			continue
		}
		key := forecastKey{
			product:  s.Product,
			customer: s.Customer,
			year:     s.ShipDate.Year(),
			month:    month,
		}
		if _, seen := totals[key]; !seen {
			keys = append(keys, key)
		}
		totals[key] += s.Quantity
	}

	orders := make([]domain.ForecastedOrder, 0, len(keys))
	for _, key := range keys {
		months, ok := ruleMonths[normalizeCustomer(key.customer)]
		if !ok {
			months = g.cfg.DefaultShelfLifeMonths
		}
		orders = append(orders, domain.ForecastedOrder{
			Product:        key.product,
			Customer:       key.customer,
			ForecastDate:   time.Date(key.year+1, key.month, 1, 0, 0, 0, 0, time.UTC),
			Quantity:       totals[key],
			MinShelfMonths: months,
		})
	}

	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].ForecastDate.Equal(orders[j].ForecastDate) {
			return orders[i].ForecastDate.Before(orders[j].ForecastDate)
		}
		if orders[i].Product != orders[j].Product {
			return orders[i].Product < orders[j].Product
		}
		return orders[i].Customer < orders[j].Customer
	})

	g.logger.Debug("forecast generated",
		slog.Int("shipments", len(shipments)),
		slog.Int("orders", len(orders)))

	return orders
}

func normalizeCustomer(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
