package domain

import "maps"

// Entity is one ranked record: a nation or an aircraft. Both share the same
// shape; FlagCode is only set for nations and Origin only for aircraft.
//
// The stats map is deliberately schema-optional: a key the registry no longer
// defines is inert (never displayed), and a registry id missing from the map
// reads as zero. The schema is a view over entity data, not a constraint.
type Entity struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	FlagCode    string             `json:"flagCode,omitempty"` // ISO 2-letter code, nations only
	Origin      string             `json:"origin,omitempty"`   // country of origin, aircraft only
	Score       float64            `json:"score"`
	Rank        int                `json:"rank"`
	Description string             `json:"description"`
	Stats       map[string]float64 `json:"stats"`
	IsGenerated bool               `json:"isGenerated,omitempty"`
}

// StatValue returns the entity's value for a stat id, or zero when the entity
// carries no value for it.
func (e *Entity) StatValue(statID string) float64 {
	return e.Stats[statID]
}

// Clone returns a deep copy of the entity (the stats map is not shared).
func (e *Entity) Clone() Entity {
	out := *e
	out.Stats = maps.Clone(e.Stats)
	return out
}

// CloneEntities deep-copies a slice of entities.
func CloneEntities(entities []Entity) []Entity {
	out := make([]Entity, len(entities))
	for i := range entities {
		out[i] = entities[i].Clone()
	}
	return out
}

// StripStat removes a stat id from every entity's stats map and returns the
// rewritten slice. Used as the cascade when a stat definition is deleted.
func StripStat(entities []Entity, statID string) []Entity {
	out := CloneEntities(entities)
	for i := range out {
		delete(out[i].Stats, statID)
	}
	return out
}
