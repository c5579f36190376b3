package domain

import "fmt"

// Kind names one of the two entity collections. Both kinds share the generic
// entity model; the kind selects which dataset fields a coordinator operates
// on and which extension field its entities must carry.
type Kind string

const (
	// KindNations is the country rankings collection.
	KindNations Kind = "nations"
	// KindAircraft is the military aircraft collection.
	KindAircraft Kind = "aircraft"
)

// Kinds lists every known kind.
func Kinds() []Kind {
	return []Kind{KindNations, KindAircraft}
}

// ParseKind validates a kind string from an API path.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNations, KindAircraft:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown domain kind %q", s)
	}
}

// ExtensionField returns the kind-specific required entity field.
func (k Kind) ExtensionField() string {
	if k == KindAircraft {
		return "origin"
	}
	return "flagCode"
}

// HasExtension reports whether the entity carries the kind's extension field.
func (k Kind) HasExtension(e *Entity) bool {
	if k == KindAircraft {
		return e.Origin != ""
	}
	return e.FlagCode != ""
}
