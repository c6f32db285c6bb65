// Package forecast generates future orders from historical shipments by
// direct prior-year carry-forward: each (customer, product, month) shipment
// volume inside the configured month window becomes the forecast for the
// first of the same month one year later. Customer shelf-life rules are
// joined onto the orders, with a configurable default for customers without
// a rule.
package forecast
