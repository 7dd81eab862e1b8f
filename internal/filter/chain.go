// Package filter decides which classified records take part in an analysis.
package filter

import (
	"github.com/vburojevic/convlog/internal/domain"
)

// Filter determines if a record should be included
type Filter interface {
	// Match returns true if the record passes the filter
	Match(rec *domain.Record) bool
}

// Chain combines multiple filters (all must pass)
type Chain struct {
	filters []Filter
}

// NewChain creates a filter chain from multiple filters
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Match returns true only if all filters pass
func (c *Chain) Match(rec *domain.Record) bool {
	for _, f := range c.filters {
		if !f.Match(rec) {
			return false
		}
	}
	return true
}

// Add appends a filter to the chain
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Len returns the number of filters in the chain
func (c *Chain) Len() int { return len(c.filters) }

// OrChain combines multiple filters (any must pass)
type OrChain struct {
	filters []Filter
}

// NewOrChain creates an OR filter chain
func NewOrChain(filters ...Filter) *OrChain {
	return &OrChain{filters: filters}
}

// Match returns true if any filter passes
func (c *OrChain) Match(rec *domain.Record) bool {
	if len(c.filters) == 0 {
		return true
	}
	for _, f := range c.filters {
		if f.Match(rec) {
			return true
		}
	}
	return false
}

// Add appends a filter to the chain
func (c *OrChain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Len returns the number of filters in the chain
func (c *OrChain) Len() int { return len(c.filters) }
