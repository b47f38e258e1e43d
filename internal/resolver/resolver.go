// Package resolver turns internal file URLs into their external equivalents
// using the stored mapping table.
package resolver

import (
	"context"

	"github.com/MrSnakeDoc/extlink/internal/domain"
)

// MappingSource supplies the current mapping table in stored order.
type MappingSource interface {
	GetMappings(ctx context.Context) ([]domain.DomainMapping, error)
}

// Observer is notified of every conversion. May be nil.
type Observer interface {
	ObserveConversion(mapped bool)
}

// Resolver applies the mapping table. It holds no state of its own: each call
// reads the table fresh, so edits are visible immediately.
type Resolver struct {
	source   MappingSource
	observer Observer
}

// New creates a Resolver over source.
func New(source MappingSource, observer Observer) *Resolver {
	return &Resolver{source: source, observer: observer}
}

// Result describes one conversion.
type Result struct {
	External string `json:"external"`
	Original string `json:"original"`
	Mapped   bool   `json:"mapped"`
}

// Convert returns the external form of internalURL, or internalURL itself
// when no enabled mapping matches. An error only means the table could not
// be read.
func (r *Resolver) Convert(ctx context.Context, internalURL string) (Result, error) {
	mappings, err := r.source.GetMappings(ctx)
	if err != nil {
		return Result{}, err
	}

	external, mapped := domain.Convert(mappings, internalURL)
	if r.observer != nil {
		r.observer.ObserveConversion(mapped)
	}
	return Result{External: external, Original: internalURL, Mapped: mapped}, nil
}

// HasAvailableMappings reports whether any mapping is enabled.
func (r *Resolver) HasAvailableMappings(ctx context.Context) (bool, error) {
	mappings, err := r.source.GetMappings(ctx)
	if err != nil {
		return false, err
	}
	return domain.HasAvailable(mappings), nil
}

// HasMatchingMapping reports whether an enabled mapping's prefix matches origin.
func (r *Resolver) HasMatchingMapping(ctx context.Context, origin string) (bool, error) {
	mappings, err := r.source.GetMappings(ctx)
	if err != nil {
		return false, err
	}
	return domain.HasMatching(mappings, origin), nil
}
