package interact

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"
)

// Kind is the role an interactable plays once carried.
type Kind int

const (
	KindNone Kind = iota
	KindSword
	KindShield
	KindStaff
	// KindGeneric is pickable but has no dedicated hold anchor.
	KindGeneric
)

// WeaponsGroup marks pickable objects, either as a tag or as the name of the
// hierarchy root they live under.
const WeaponsGroup = "Weapons"

var kindNames = map[Kind]string{
	KindNone:    "None",
	KindSword:   "Sword",
	KindShield:  "Shield",
	KindStaff:   "Staff",
	KindGeneric: "Generic",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// ParseKind maps a tag to a role. WeaponsGroup maps to KindGeneric and
// anything else to KindNone.
func ParseKind(tag string) Kind {
	switch tag {
	case "Sword":
		return KindSword
	case "Shield":
		return KindShield
	case "Staff":
		return KindStaff
	case WeaponsGroup, "Generic":
		return KindGeneric
	}
	return KindNone
}

// kindOf returns the most specific role tagged on g itself.
func kindOf(g *engine.GameObject) Kind {
	best := KindNone
	for _, tag := range g.Tags {
		k := ParseKind(tag)
		if k == KindNone {
			continue
		}
		if k != KindGeneric {
			return k
		}
		best = k
	}
	return best
}

// KindOf resolves the role of g by looking at g and then its ancestors.
// Objects that are pickable only by virtue of their group are KindGeneric.
func KindOf(g *engine.GameObject) Kind {
	generic := false
	for cur := g; cur != nil; cur = cur.Parent {
		switch k := kindOf(cur); k {
		case KindNone:
		case KindGeneric:
			generic = true
		default:
			return k
		}
	}
	if generic || (g != nil && g.Root().Name == WeaponsGroup) {
		return KindGeneric
	}
	return KindNone
}

// IsInteractable reports whether g belongs to the pickable set.
func IsInteractable(g *engine.GameObject) bool {
	return g != nil && KindOf(g) != KindNone
}

// Classify turns a ray hit into a pickup candidate. The candidate is the
// object owning the nearest Rigidbody at or above hit, or hit itself when
// there is none. Anything inside held is never a candidate.
func Classify(hit, held *engine.GameObject) (*engine.GameObject, Kind, bool) {
	if hit == nil || !IsInteractable(hit) {
		return nil, KindNone, false
	}
	if held != nil && hit.IsDescendantOf(held) {
		return nil, KindNone, false
	}
	candidate := hit
	if _, owner := engine.GetComponentInParent[*components.Rigidbody](hit); owner != nil && IsInteractable(owner) {
		candidate = owner
	}
	if held != nil && candidate.IsDescendantOf(held) {
		return nil, KindNone, false
	}
	return candidate, KindOf(hit), true
}
