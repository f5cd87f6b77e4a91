// reports/builder.go
package reports

import (
	"sort"
	"strconv"
	"time"

	"radiotrack/models"

	"github.com/rs/zerolog"
)

// Request describes one export: a kind plus the filter value paired with it.
// Transient, constructed per download, never persisted.
type Request struct {
	Kind   Kind
	Filter string
}

// Report is the layout-ready selection handed to the renderers. Locations is
// set (sorted) only for grouped complete reports; Grouped distinguishes a
// genuine complete report from the flat fallback produced for unknown kinds
// or missing filters.
type Report struct {
	Kind        Kind
	Title       string
	Items       []models.Item
	Locations   []string
	Grouped     bool
	Total       int
	GeneratedAt time.Time
}

type Builder struct {
	log zerolog.Logger
}

func NewBuilder(log zerolog.Logger) *Builder { return &Builder{log: log} }

// Build selects the subset of items for the request and names the document.
// Pure selection over the in-memory table; the only side effect is a warning
// on the fallback branches.
func (b *Builder) Build(req Request, items []models.Item, locations []string) *Report {
	now := time.Now()

	switch req.Kind {
	case KindComplete:
		return b.complete(items, locations, now, true)
	case KindItem:
		return b.byItemID(req.Filter, items, locations, now)
	case KindLocation:
		return b.byField(req, items, locations, now, "Location Report: ", func(it models.Item) string { return it.Location })
	case KindCategory:
		return b.byField(req, items, locations, now, "Category Report: ", func(it models.Item) string { return it.Category })
	case KindCondition:
		return b.byField(req, items, locations, now, "Condition Report: ", func(it models.Item) string { return it.Condition })
	default:
		b.log.Warn().Int("kind", int(req.Kind)).Msg("unknown report kind, falling back to complete inventory")
		return b.complete(items, locations, now, false)
	}
}

func (b *Builder) complete(items []models.Item, locations []string, now time.Time, grouped bool) *Report {
	rep := &Report{
		Kind:        KindComplete,
		Title:       "MCC Radio Inventory",
		Items:       items,
		Grouped:     grouped,
		Total:       len(items),
		GeneratedAt: now,
	}
	if grouped {
		rep.Locations = append([]string(nil), locations...)
		sort.Strings(rep.Locations)
	}
	return rep
}

// byItemID selects a single item by its numeric id. A malformed or unmatched
// id reads as "no such item": Not Found title, empty table, no error.
func (b *Builder) byItemID(filter string, items []models.Item, locations []string, now time.Time) *Report {
	if filter == "" {
		b.log.Warn().Str("kind", KindItem.String()).Msg("report filter missing, falling back to complete inventory")
		return b.complete(items, locations, now, false)
	}
	id, err := strconv.ParseUint(filter, 10, 64)
	if err == nil {
		for _, it := range items {
			if uint64(it.ID) == id {
				return &Report{
					Kind:        KindItem,
					Title:       "Item Report: " + it.Name,
					Items:       []models.Item{it},
					Total:       1,
					GeneratedAt: now,
				}
			}
		}
	}
	return &Report{Kind: KindItem, Title: "Item Report: Not Found", GeneratedAt: now}
}

func (b *Builder) byField(req Request, items []models.Item, locations []string, now time.Time, titlePrefix string, field func(models.Item) string) *Report {
	if req.Filter == "" {
		b.log.Warn().Str("kind", req.Kind.String()).Msg("report filter missing, falling back to complete inventory")
		return b.complete(items, locations, now, false)
	}
	var selected []models.Item
	for _, it := range items {
		if field(it) == req.Filter {
			selected = append(selected, it)
		}
	}
	return &Report{
		Kind:        req.Kind,
		Title:       titlePrefix + req.Filter,
		Items:       selected,
		Total:       len(selected),
		GeneratedAt: now,
	}
}
