package domain

import "slices"

// Dataset is the single shared document of truth. Its six top-level fields
// are exactly the fields persisted by the storage backend; no other shape is
// read or written. Field names match the wire format consumed by the
// dashboard clients.
type Dataset struct {
	Countries       []Entity         `json:"countries"`
	StatDefinitions []StatDefinition `json:"statDefinitions"`
	Categories      []string         `json:"categories"`
	Aircrafts       []Entity         `json:"aircrafts"`
	AircraftStats   []StatDefinition `json:"aircraftStats"`
	AircraftCats    []string         `json:"aircraftCats"`
}

// Collection is a read view over one kind's slice of the dataset.
type Collection struct {
	Entities   []Entity
	Stats      []StatDefinition
	Categories []string
}

// Collection returns a deep copy of one kind's collections. Copying keeps
// callers from mutating the dataset behind the synchronization layer's back.
func (d *Dataset) Collection(kind Kind) Collection {
	if kind == KindAircraft {
		return Collection{
			Entities:   CloneEntities(d.Aircrafts),
			Stats:      slices.Clone(d.AircraftStats),
			Categories: slices.Clone(d.AircraftCats),
		}
	}
	return Collection{
		Entities:   CloneEntities(d.Countries),
		Stats:      slices.Clone(d.StatDefinitions),
		Categories: slices.Clone(d.Categories),
	}
}

// Clone deep-copies the whole document.
func (d *Dataset) Clone() *Dataset {
	return &Dataset{
		Countries:       CloneEntities(d.Countries),
		StatDefinitions: slices.Clone(d.StatDefinitions),
		Categories:      slices.Clone(d.Categories),
		Aircrafts:       CloneEntities(d.Aircrafts),
		AircraftStats:   slices.Clone(d.AircraftStats),
		AircraftCats:    slices.Clone(d.AircraftCats),
	}
}

// Patch is a top-level partial update of the dataset. A nil field is left
// untouched by Apply; a non-nil field replaces the prior value wholesale
// (arrays are never element-merged). Pointer-to-slice distinguishes "absent"
// from "intentionally empty".
type Patch struct {
	Countries       *[]Entity         `json:"countries,omitempty"`
	StatDefinitions *[]StatDefinition `json:"statDefinitions,omitempty"`
	Categories      *[]string         `json:"categories,omitempty"`
	Aircrafts       *[]Entity         `json:"aircrafts,omitempty"`
	AircraftStats   *[]StatDefinition `json:"aircraftStats,omitempty"`
	AircraftCats    *[]string         `json:"aircraftCats,omitempty"`
}

// IsEmpty reports whether the patch touches nothing.
func (p *Patch) IsEmpty() bool {
	return p.Countries == nil && p.StatDefinitions == nil && p.Categories == nil &&
		p.Aircrafts == nil && p.AircraftStats == nil && p.AircraftCats == nil
}

// Apply merges the patch into the dataset in place.
func (d *Dataset) Apply(p Patch) {
	if p.Countries != nil {
		d.Countries = CloneEntities(*p.Countries)
	}
	if p.StatDefinitions != nil {
		d.StatDefinitions = slices.Clone(*p.StatDefinitions)
	}
	if p.Categories != nil {
		d.Categories = slices.Clone(*p.Categories)
	}
	if p.Aircrafts != nil {
		d.Aircrafts = CloneEntities(*p.Aircrafts)
	}
	if p.AircraftStats != nil {
		d.AircraftStats = slices.Clone(*p.AircraftStats)
	}
	if p.AircraftCats != nil {
		d.AircraftCats = slices.Clone(*p.AircraftCats)
	}
}

// EntitiesPatch builds a patch replacing one kind's entity list.
func EntitiesPatch(kind Kind, entities []Entity) Patch {
	if kind == KindAircraft {
		return Patch{Aircrafts: &entities}
	}
	return Patch{Countries: &entities}
}

// StatsPatch builds a patch replacing one kind's stat definitions.
func StatsPatch(kind Kind, defs []StatDefinition) Patch {
	if kind == KindAircraft {
		return Patch{AircraftStats: &defs}
	}
	return Patch{StatDefinitions: &defs}
}

// CategoriesPatch builds a patch replacing one kind's category list.
func CategoriesPatch(kind Kind, cats []string) Patch {
	if kind == KindAircraft {
		return Patch{AircraftCats: &cats}
	}
	return Patch{Categories: &cats}
}
