package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsafe/qloop/internal/ir"
)

// =============================================================================
// Unit Tests
// =============================================================================

func TestNewUnit_FreshInstanceTokens(t *testing.T) {
	a := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})
	b := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})

	assert.NotEqual(t, a.ID, b.ID, "every synthesis gets its own instance token")
	assert.True(t, a.Equal(b), "structural equality ignores instance tokens")
}

func TestUnit_EqualDistinguishesStructure(t *testing.T) {
	base := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})

	assert.False(t, base.Equal(NewUnit("U_g", 2, Op{Kind: OpCX, Control: 0, Target: 1})), "name differs")
	assert.False(t, base.Equal(NewUnit("U_f", 3, Op{Kind: OpCX, Control: 0, Target: 1})), "width differs")
	assert.False(t, base.Equal(NewUnit("U_f", 2, Op{Kind: OpSwap, Control: 0, Target: 1})), "op differs")
	assert.False(t, base.Equal(NewUnit("U_f", 2)), "op count differs")
}

func TestUnit_SnapshotExcludesToken(t *testing.T) {
	u := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})
	snap := u.Snapshot()

	_, hasID := snap["id"]
	assert.False(t, hasID)
	assert.Equal(t, "U_f", snap["name"])
	assert.Equal(t, 2, snap["width"])
}

// =============================================================================
// Placeholder Synthesizer Tests
// =============================================================================

func TestPlaceholder_EmitsFixedExchangeUnit(t *testing.T) {
	spec := ir.NewFuncSpec("xor_one", "x", ir.Xor(ir.Param("x"), ir.Const(1)))

	u, err := Placeholder{}.Synthesize(spec, "U_f")
	require.NoError(t, err)
	assert.Equal(t, "U_f", u.Name)
	assert.Equal(t, 2, u.Width)
	require.Len(t, u.Ops, 1)
	assert.Equal(t, Op{Kind: OpCX, Control: 0, Target: 1}, u.Ops[0])
}

func TestPlaceholder_IgnoresFunctionSemantics(t *testing.T) {
	// The stub emits the same structure for unrelated functions.
	a, err := Placeholder{}.Synthesize(ir.NewFuncSpec("xor_one", "x", ir.Xor(ir.Param("x"), ir.Const(1))), "U")
	require.NoError(t, err)
	b, err := Placeholder{}.Synthesize(ir.NewFuncSpec("negate", "x", ir.Neg(ir.Param("x"))), "U")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestPlaceholder_DefaultName(t *testing.T) {
	u, err := Placeholder{}.Synthesize(ir.NewFuncSpec("f", "x", ir.Param("x")), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultUnitName, u.Name)
}

// =============================================================================
// Composition Tests
// =============================================================================

func TestCompose_RejectsBadShapes(t *testing.T) {
	u := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})

	_, err := Compose(0, u)
	assert.Error(t, err)

	_, err = Compose(1, u)
	assert.Error(t, err, "unit wider than the composition")

	_, err = Compose(2, nil)
	assert.Error(t, err)
}

func TestCompose_SharedUnitByReference(t *testing.T) {
	u := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})

	c, err := Compose(2, u, u, u)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Size())
	assert.NotEmpty(t, c.Token)

	for _, placed := range c.Units {
		assert.Same(t, u, placed, "replication shares one unit object")
	}
}

func TestComposition_Draw(t *testing.T) {
	u := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})
	c, err := Compose(2, u, u, u)
	require.NoError(t, err)

	want := "q0: ──■──■──■──\n" +
		"      │  │  │\n" +
		"q1: ──X──X──X──\n"
	assert.Equal(t, want, c.Draw())
}

func TestComposition_DrawSwap(t *testing.T) {
	u := NewUnit("SWAP", 2, Op{Kind: OpSwap, Control: 0, Target: 1})
	c, err := Compose(2, u)
	require.NoError(t, err)

	want := "q0: ──x──\n" +
		"      │\n" +
		"q1: ──x──\n"
	assert.Equal(t, want, c.Draw())
}

func TestComposition_SnapshotIsDeterministic(t *testing.T) {
	u := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})
	c, err := Compose(2, u, u)
	require.NoError(t, err)

	first, err := ir.MarshalCanonical(c.Snapshot())
	require.NoError(t, err)

	// A second composition of structurally equal units snapshots
	// identically even though all tokens differ.
	v := NewUnit("U_f", 2, Op{Kind: OpCX, Control: 0, Target: 1})
	c2, err := Compose(2, v, v)
	require.NoError(t, err)
	second, err := ir.MarshalCanonical(c2.Snapshot())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
