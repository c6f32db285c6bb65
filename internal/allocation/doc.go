// Package allocation simulates sequential depletion of on-hand stock lots
// against forecasted orders.
//
// Orders are processed in a fixed chronological sequence; within a product,
// lots are consumed earliest-expiration first, and only lots whose
// expiration satisfies the order's shelf-life requirement are drawn from.
// The pass is greedy with no backtracking, so an early order can drain stock
// a later order would have used. Each order yields an AllocationResult whose
// Fulfilled and Missing quantities always sum to the forecasted quantity.
package allocation
