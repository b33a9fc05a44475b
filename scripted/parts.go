package scripted

import (
	"context"
	"strings"

	"github.com/jonwraymond/eplanremote/script"
)

// defaultPartProperties are returned by QueryParts when the caller does
// not name any.
var defaultPartProperties = []string{
	"PartNr", "Description1", "Manufacturer", "ProductGroup", "ProductSubGroup",
}

// DefaultQueryLimit caps QueryParts result sets when no limit is given.
const DefaultQueryLimit = 100

// PartsFilter restricts a parts query to parts whose property contains
// the given value.
type PartsFilter struct {
	// Property is the parts-database property to match on, e.g.
	// "ProductSubGroup", "PartNr" or "Manufacturer".
	Property string

	// Value is the substring to match.
	Value string
}

// PartsQuery parameterizes a parts-database query.
type PartsQuery struct {
	// Filter restricts the result set. Nil returns all parts up to Limit.
	Filter *PartsFilter

	// Properties to return per part. Defaults to part number,
	// description, manufacturer and product groups.
	Properties []string

	// Limit caps the number of returned parts. Default 100.
	Limit int
}

type partsQueryData struct {
	Suffix     string
	Filter     *PartsFilter
	PropsArray string
	Limit      int
}

// QueryParts queries the parts master database directly through
// MDPartsManagement, which the action channel cannot reach.
func (c *Client) QueryParts(ctx context.Context, q PartsQuery) script.RunResult {
	props := q.Properties
	if len(props) == 0 {
		props = defaultPartProperties
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	quoted := make([]string, len(props))
	for i, p := range props {
		quoted[i] = `"` + escapeCS(p) + `"`
	}
	return c.bridge.Run(ctx, render(partsQueryTemplate, partsQueryData{
		Suffix:     classSuffix(),
		Filter:     escapeFilter(q.Filter),
		PropsArray: strings.Join(quoted, ", "),
		Limit:      limit,
	}), 0)
}

type partsCountData struct {
	Suffix string
	Filter *PartsFilter
}

// CountParts counts parts in the database, optionally filtered.
func (c *Client) CountParts(ctx context.Context, filter *PartsFilter) script.RunResult {
	return c.bridge.Run(ctx, render(partsCountTemplate, partsCountData{
		Suffix: classSuffix(),
		Filter: escapeFilter(filter),
	}), 0)
}

type partsGetData struct {
	Suffix string
	PartNr string
}

// GetPart looks up one part by its part number and returns its core
// properties. A missing part is a successful result with found=false.
func (c *Client) GetPart(ctx context.Context, partNumber string) script.RunResult {
	return c.bridge.Run(ctx, render(partsGetTemplate, partsGetData{
		Suffix: classSuffix(),
		PartNr: escapeCS(partNumber),
	}), 0)
}

type partsUpdateData struct {
	Suffix   string
	PartNr   string
	Property string
	Value    string
}

// UpdatePart sets one property on a part, e.g. "ARTICLE_DESCR1".
func (c *Client) UpdatePart(ctx context.Context, partNumber, property, value string) script.RunResult {
	return c.bridge.Run(ctx, render(partsUpdateTemplate, partsUpdateData{
		Suffix:   classSuffix(),
		PartNr:   escapeCS(partNumber),
		Property: escapeCS(property),
		Value:    escapeCS(value),
	}), 0)
}

// ProductGroups lists the product group, subgroup and top-group names
// known to the parts database.
func (c *Client) ProductGroups(ctx context.Context) script.RunResult {
	return c.bridge.Run(ctx, render(productGroupsTemplate, partsGetData{Suffix: classSuffix()}), 0)
}

// escapeFilter returns a copy with both fields escaped for embedding.
func escapeFilter(f *PartsFilter) *PartsFilter {
	if f == nil || f.Property == "" || f.Value == "" {
		return nil
	}
	return &PartsFilter{Property: escapeCS(f.Property), Value: escapeCS(f.Value)}
}
