/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package catalog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FileSource reads items from a catalog export file: either a JSON array or
// JSON lines (one item object per line). Used for offline runs and tests.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed catalog source.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch implements Source. The vendor filter is applied case-insensitively;
// an empty filter returns every item.
func (f *FileSource) Fetch(_ context.Context, vendor string) ([]Item, error) {
	data, err := os.ReadFile(f.Path) // #nosec G304 -- path is an operator-supplied export file
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	items, err := decodeItems(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog file %s: %w", f.Path, err)
	}
	return filterVendor(items, vendor), nil
}

func decodeItems(data []byte) ([]Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	// JSON lines
	var items []Item
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var item Item
		if err := json.Unmarshal([]byte(text), &item); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func filterVendor(items []Item, vendor string) []Item {
	if vendor == "" {
		return items
	}
	var filtered []Item
	for _, item := range items {
		if strings.EqualFold(item.Vendor, vendor) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
