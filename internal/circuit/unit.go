package circuit

import (
	"fmt"

	"github.com/google/uuid"
)

// OpKind identifies a primitive reversible operation inside a unit.
type OpKind string

const (
	// OpCX is a controlled exchange: the target wire flips when the
	// control wire is set.
	OpCX OpKind = "cx"

	// OpSwap exchanges two wires.
	OpSwap OpKind = "swap"
)

// Op is one primitive operation on a unit's wires.
type Op struct {
	Kind    OpKind `json:"kind"`
	Control int    `json:"control"` // -1 when the op has no control wire
	Target  int    `json:"target"`
}

// Unit is a named, fixed-width structural element representing one
// reversible operation embedded in a larger composition.
//
// Units are immutable after synthesis. ID is a per-synthesis instance
// token; two units with equal names and ops but different IDs are
// distinct instances.
type Unit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Width int    `json:"width"`
	Ops   []Op   `json:"ops"`
}

// NewUnit creates a unit with a fresh instance token.
func NewUnit(name string, width int, ops ...Op) *Unit {
	return &Unit{
		ID:    uuid.Must(uuid.NewV7()).String(),
		Name:  name,
		Width: width,
		Ops:   ops,
	}
}

// Equal reports structural equality: same name, width, and ops.
// Instance tokens are deliberately excluded - a composition replicates
// one unit by reference, and consumers compare structure, not identity.
func (u *Unit) Equal(other *Unit) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u.Name != other.Name || u.Width != other.Width || len(u.Ops) != len(other.Ops) {
		return false
	}
	for i := range u.Ops {
		if u.Ops[i] != other.Ops[i] {
			return false
		}
	}
	return true
}

// Snapshot returns the unit's structure as a canonical-JSON-friendly
// map. Instance tokens are excluded so snapshots stay deterministic.
func (u *Unit) Snapshot() map[string]any {
	ops := make([]any, len(u.Ops))
	for i, op := range u.Ops {
		ops[i] = map[string]any{
			"kind":    string(op.Kind),
			"control": op.Control,
			"target":  op.Target,
		}
	}
	return map[string]any{
		"name":  u.Name,
		"width": u.Width,
		"ops":   ops,
	}
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s[width=%d,ops=%d]", u.Name, u.Width, len(u.Ops))
}
