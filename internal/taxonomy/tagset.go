/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package taxonomy

import "strings"

// TagSet is the structural decomposition of an item's raw tag string.
// Raw preserves original tag order so Serialize round-trips a normalized form
// of the input. Namespaced and Unnamespaced are lossless views over Raw.
type TagSet struct {
	Raw          []string
	Namespaced   map[string][]string
	Unnamespaced []string
}

// Parse splits a comma-separated tag string into a TagSet. Tokens are trimmed,
// empties dropped, order preserved. A token is namespaced when it contains a
// colon; only the first colon separates namespace from value, so values may
// themselves contain colons. No validation happens here.
func Parse(tagString string) TagSet {
	ts := TagSet{Namespaced: make(map[string][]string)}
	for _, token := range strings.Split(tagString, ",") {
		tag := strings.TrimSpace(token)
		if tag == "" {
			continue
		}
		ts.Raw = append(ts.Raw, tag)
		if ns, value, ok := strings.Cut(tag, ":"); ok {
			ns = strings.TrimSpace(ns)
			ts.Namespaced[ns] = append(ts.Namespaced[ns], strings.TrimSpace(value))
		} else {
			ts.Unnamespaced = append(ts.Unnamespaced, tag)
		}
	}
	return ts
}

// Serialize re-joins the raw tags into a canonical, whitespace-normalized
// tag string.
func (ts TagSet) Serialize() string {
	return strings.Join(ts.Raw, ", ")
}

// Has reports whether the namespace holds at least one value.
func (ts TagSet) Has(namespace string) bool {
	return len(ts.Namespaced[namespace]) > 0
}

// First returns the first value of a namespace, or "" when absent.
func (ts TagSet) First(namespace string) string {
	if vals := ts.Namespaced[namespace]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// HasValue reports whether the namespace holds the given value.
func (ts TagSet) HasValue(namespace, value string) bool {
	for _, v := range ts.Namespaced[namespace] {
		if v == value {
			return true
		}
	}
	return false
}
