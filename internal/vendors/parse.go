// Package vendors turns free-text vendor lists into classified vendor links.
package vendors

import (
	"strings"

	"github.com/angelmondragon/weddingplanner-backend/pkg/enums"
)

// Entry is one parsed item of a free-text vendor list.
type Entry struct {
	Raw  string
	Hint string
	Name string
}

// Category classifies the entry. An explicit hint decides on its own, either
// as a category value ("florist") or through the keyword rules; the name is
// only consulted when the hint says nothing.
func (e Entry) Category() enums.VendorCategory {
	if hint := strings.TrimSpace(e.Hint); hint != "" {
		if category, err := enums.ParseVendorCategory(strings.ToLower(hint)); err == nil && category != enums.VendorCategoryOther {
			return category
		}
		if category := Classify(hint); category != enums.VendorCategoryOther {
			return category
		}
	}
	return Classify(e.Name)
}

// ParseList splits raw on commas and newlines. Each item is either
// "Category: Name" or a bare "Name". Blank items are skipped and repeated
// names (case-insensitive) are kept once.
func ParseList(raw string) []Entry {
	items := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' || r == ';' })
	seen := make(map[string]struct{}, len(items))
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		entry := Entry{Raw: item, Name: item}
		if hint, name, ok := strings.Cut(item, ":"); ok {
			entry.Hint = collapse(hint)
			entry.Name = collapse(name)
		} else {
			entry.Name = collapse(item)
		}
		if entry.Name == "" {
			continue
		}
		key := strings.ToLower(entry.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
	}
	return out
}

func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
