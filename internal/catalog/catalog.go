// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog resolves the LLM models a session can be opened against.
//
// A catalog failure is never fatal: callers degrade to an empty model list
// and the chat surface stays usable.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeranaias/tutor-tui/internal/model"
)

// ErrCatalogUnavailable wraps any transport or parse failure from the model
// list fetch. Callers degrade to an empty catalog without blocking the chat.
var ErrCatalogUnavailable = errors.New("model catalog unavailable")

// Lister is the portal surface the catalog needs.
type Lister interface {
	ListModels(ctx context.Context) ([]model.Descriptor, error)
}

// Catalog fetches and selects backend model descriptors.
type Catalog struct {
	portal Lister
}

// New creates a catalog backed by the given portal client.
func New(portal Lister) *Catalog {
	return &Catalog{portal: portal}
}

// List fetches the available descriptors in backend order. Every failure
// maps to ErrCatalogUnavailable.
func (c *Catalog) List(ctx context.Context) ([]model.Descriptor, error) {
	models, err := c.portal.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return models, nil
}

// DefaultModel selects the first active descriptor in insertion order.
// The second result is false when no descriptor is active.
func DefaultModel(models []model.Descriptor) (model.Descriptor, bool) {
	for _, m := range models {
		if m.IsActive {
			return m, true
		}
	}
	return model.Descriptor{}, false
}

// Active filters to the selectable descriptors, preserving order.
func Active(models []model.Descriptor) []model.Descriptor {
	var out []model.Descriptor
	for _, m := range models {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out
}
