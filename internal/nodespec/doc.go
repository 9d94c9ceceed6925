// Package nodespec models node requirements and capabilities as composite
// search spaces. A requirement narrows what a scenario demands; a capability
// describes what a SKU offers. Checking, minimal-capability generation and
// intersection all build on the primitives in internal/searchspace and
// resolve ties through explicit priority lists, cheapest option first.
package nodespec
