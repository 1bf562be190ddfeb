/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/

// Package catalog defines the boundary to the externally-owned product
// catalog: the read-only item model, the fetch interface and the tag-update
// interface. The engine never mutates items directly; it proposes tag-string
// replacements through an Updater.
package catalog

import "context"

// Item is a catalog product record. Read-only to the taxonomy core.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TagString   string `json:"tags"`
	Vendor      string `json:"vendor,omitempty"`
}

// Source fetches catalog items, optionally filtered by vendor. The returned
// slice is a finite, already-materialized sequence; pagination is the
// implementation's concern.
type Source interface {
	Fetch(ctx context.Context, vendor string) ([]Item, error)
}

// Updater persists a replacement tag string for one item. Retry policy is the
// implementation's concern; the engine records success or failure per item and
// moves on.
type Updater interface {
	ApplyTagUpdate(ctx context.Context, itemID, newTagString string) error
}
