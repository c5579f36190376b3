// Package domain contains the core data model: the shared dataset document,
// its two entity collections (nations, aircraft), stat definitions, and the
// ranking rules that keep rank consistent with score.
package domain

// StatFormat controls how a stat value is entered and displayed.
type StatFormat string

const (
	// FormatNumber is an unbounded non-negative magnitude.
	FormatNumber StatFormat = "number"
	// FormatCurrency is a raw USD amount.
	FormatCurrency StatFormat = "currency"
	// FormatSlider is a bounded index scaled 1.0-10.0.
	FormatSlider StatFormat = "slider"
)

// SeedValue returns the initial stat value for a newly created entity.
// Sliders start at the bottom of their 1-10 scale; magnitudes start at zero.
func (f StatFormat) SeedValue() float64 {
	if f == FormatSlider {
		return 1.0
	}
	return 0
}

// StatDefinition describes one attribute entities may carry a value for.
// Identity is ID; label, category, and format change only by delete-and-recreate.
type StatDefinition struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Category string     `json:"category,omitempty"`
	Format   StatFormat `json:"format,omitempty"`
}

// SeedStats builds a stats map for a brand-new entity with every currently
// defined stat initialized to its format's seed value.
func SeedStats(defs []StatDefinition) map[string]float64 {
	stats := make(map[string]float64, len(defs))
	for _, def := range defs {
		stats[def.ID] = def.Format.SeedValue()
	}
	return stats
}

// StatIDs returns the definition ids in insertion order.
func StatIDs(defs []StatDefinition) []string {
	ids := make([]string, len(defs))
	for i, def := range defs {
		ids[i] = def.ID
	}
	return ids
}
