// Package stock classifies inventory amounts into availability labels.
package stock

import (
	"math"
	"strings"
)

// Availability labels produced by the classifier. These are the only status
// values that ever reach storage or the wire.
const (
	StatusNotAvailable = "Not Available"
	StatusLowStock     = "Low Stock"
	StatusAvailable    = "Available"
)

// DefaultThresholdFallback applies to units without an explicit threshold.
const DefaultThresholdFallback = 1

// DefaultThresholds returns the built-in low-stock thresholds per unit of
// measure. Keys are lowercase.
func DefaultThresholds() map[string]float64 {
	return map[string]float64{
		"g":  50,
		"kg": 0.5,
		"ml": 100,
		"l":  0.5,
	}
}

// Classifier derives an availability label from an amount and its unit of
// measure. It is pure and safe for concurrent use.
type Classifier struct {
	thresholds       map[string]float64
	defaultThreshold float64
}

// NewClassifier creates a Classifier with the given per-unit thresholds and
// the fallback threshold for unknown units. Threshold keys are matched
// case-insensitively. A nil map means the built-in defaults.
func NewClassifier(thresholds map[string]float64, defaultThreshold float64) *Classifier {
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	normalized := make(map[string]float64, len(thresholds))
	for unit, limit := range thresholds {
		normalized[strings.ToLower(unit)] = limit
	}
	return &Classifier{
		thresholds:       normalized,
		defaultThreshold: defaultThreshold,
	}
}

// Classify returns the availability label for an amount in the given unit.
// Non-positive and NaN amounts are out of stock regardless of unit.
func (c *Classifier) Classify(amount float64, measurement string) string {
	if math.IsNaN(amount) || amount <= 0 {
		return StatusNotAvailable
	}

	threshold, ok := c.thresholds[strings.ToLower(measurement)]
	if !ok {
		threshold = c.defaultThreshold
	}

	if amount <= threshold {
		return StatusLowStock
	}
	return StatusAvailable
}
