package circuit

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Composition is an ordered sequence of structural units on a fixed set
// of wires. Immutable once assembled.
//
// A bounded repetition replicates one unit by reference, so consecutive
// entries of Units may literally be the same *Unit. That is the point:
// identical repetitions are provably identical because they are one
// object.
type Composition struct {
	// Token identifies this assembly. Fresh per build.
	Token string `json:"token"`

	// Width is the number of wires.
	Width int `json:"width"`

	// Units holds the placed units in execution order.
	Units []*Unit `json:"units"`
}

// Compose assembles units onto width wires in the given order.
func Compose(width int, units ...*Unit) (*Composition, error) {
	if width <= 0 {
		return nil, fmt.Errorf("composition width must be positive, got %d", width)
	}
	for i, u := range units {
		if u == nil {
			return nil, fmt.Errorf("unit %d is nil", i)
		}
		if u.Width > width {
			return nil, fmt.Errorf("unit %q (width %d) does not fit on %d wires", u.Name, u.Width, width)
		}
	}
	return &Composition{
		Token: uuid.Must(uuid.NewV7()).String(),
		Width: width,
		Units: units,
	}, nil
}

// Size returns the number of placed units.
func (c *Composition) Size() int {
	return len(c.Units)
}

// Snapshot returns the composition's structure as a canonical-JSON
// friendly map. Assembly tokens and unit instance tokens are excluded
// so snapshots stay deterministic across runs.
func (c *Composition) Snapshot() map[string]any {
	units := make([]any, len(c.Units))
	for i, u := range c.Units {
		units[i] = u.Snapshot()
	}
	return map[string]any{
		"width": c.Width,
		"units": units,
	}
}

// Draw renders the composition as ASCII art, one row per wire and one
// column per unit:
//
//	q0: ──■──■──■──
//	      │  │  │
//	q1: ──X──X──X──
//
// Rendering is presentation only; it carries no synthesis semantics.
func (c *Composition) Draw() string {
	symbols := make([][]string, c.Width)
	for w := range symbols {
		symbols[w] = make([]string, len(c.Units))
		for i := range symbols[w] {
			symbols[w][i] = "─"
		}
	}
	spans := make([][]bool, c.Width-1)
	for g := range spans {
		spans[g] = make([]bool, len(c.Units))
	}

	for i, u := range c.Units {
		for _, op := range u.Ops {
			switch op.Kind {
			case OpCX:
				if op.Control >= 0 && op.Control < c.Width {
					symbols[op.Control][i] = "■"
				}
				if op.Target >= 0 && op.Target < c.Width {
					symbols[op.Target][i] = "X"
				}
				markSpan(spans, op.Control, op.Target, i)
			case OpSwap:
				if op.Control >= 0 && op.Control < c.Width {
					symbols[op.Control][i] = "x"
				}
				if op.Target >= 0 && op.Target < c.Width {
					symbols[op.Target][i] = "x"
				}
				markSpan(spans, op.Control, op.Target, i)
			}
		}
	}

	var sb strings.Builder
	for w := 0; w < c.Width; w++ {
		label := fmt.Sprintf("q%d: ", w)
		sb.WriteString(label)
		sb.WriteString("──")
		for i := range c.Units {
			sb.WriteString(symbols[w][i])
			sb.WriteString("──")
		}
		sb.WriteString("\n")

		if w < c.Width-1 {
			// Symbol i sits at column len(label)+2+3*i; place the
			// connector bars at the same columns.
			line := make([]rune, len([]rune(label))+2+3*len(c.Units))
			for j := range line {
				line[j] = ' '
			}
			for i := range c.Units {
				if spans[w][i] {
					line[len([]rune(label))+2+3*i] = '│'
				}
			}
			sb.WriteString(strings.TrimRight(string(line), " "))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// markSpan marks every wire gap between a and b in column i.
func markSpan(spans [][]bool, a, b, i int) {
	if a < 0 || b < 0 {
		return
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	for g := lo; g < hi && g < len(spans); g++ {
		spans[g][i] = true
	}
}
