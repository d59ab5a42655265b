// Package budget expands percentage templates into concrete budget lines.
package budget

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one {category, segment, item, percentage} tuple of a template.
type Line struct {
	Category   string
	Segment    string
	Item       string
	Percentage decimal.Decimal
}

// Template is a versioned, wedding-type keyed list of lines.
type Template struct {
	WeddingType string
	Version     int
	Lines       []Line
}

// TotalPercentage sums the template's line percentages.
func (t Template) TotalPercentage() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.Lines {
		total = total.Add(l.Percentage)
	}
	return total
}

// Estimate is a template line priced against a total budget.
type Estimate struct {
	Line
	Cost decimal.Decimal
}

// Catalog resolves wedding types to templates.
type Catalog struct {
	templates map[string]Template
	fallback  string
}

// DefaultCatalog returns the built-in templates, falling back to traditional.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(WeddingTypeTraditional, defaultTemplates()...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewCatalog validates that every template sums to 100% and that fallback exists.
func NewCatalog(fallback string, templates ...Template) (*Catalog, error) {
	byType := make(map[string]Template, len(templates))
	for _, t := range templates {
		key := normalize(t.WeddingType)
		if key == "" {
			return nil, fmt.Errorf("template without wedding type")
		}
		if !t.TotalPercentage().Equal(hundred) {
			return nil, fmt.Errorf("template %q sums to %s%%", key, t.TotalPercentage())
		}
		byType[key] = t
	}
	if _, ok := byType[normalize(fallback)]; !ok {
		return nil, fmt.Errorf("fallback template %q not registered", fallback)
	}
	return &Catalog{templates: byType, fallback: normalize(fallback)}, nil
}

// Template returns the template for weddingType, or the fallback template when
// the type is empty or unknown.
func (c *Catalog) Template(weddingType string) Template {
	if t, ok := c.templates[normalize(weddingType)]; ok {
		return t
	}
	return c.templates[c.fallback]
}

// Expand prices every line as round(total * pct / 100, 2). The rounding
// remainder is folded into the last line so the costs sum to total exactly.
func Expand(t Template, total decimal.Decimal) []Estimate {
	if !total.IsPositive() || len(t.Lines) == 0 {
		return nil
	}
	out := make([]Estimate, 0, len(t.Lines))
	sum := decimal.Zero
	for _, l := range t.Lines {
		cost := total.Mul(l.Percentage).Div(hundred).Round(2)
		sum = sum.Add(cost)
		out = append(out, Estimate{Line: l, Cost: cost})
	}
	if t.TotalPercentage().Equal(hundred) {
		last := &out[len(out)-1]
		last.Cost = last.Cost.Add(total.Round(2).Sub(sum))
	}
	return out
}

func normalize(weddingType string) string {
	return strings.ToLower(strings.TrimSpace(weddingType))
}
