package loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsafe/qloop/internal/circuit"
	"github.com/qsafe/qloop/internal/ir"
	"github.com/qsafe/qloop/internal/rules"
)

func xorOneSpec() *ir.FuncSpec {
	return ir.NewFuncSpec("xor_one", "x", ir.Xor(ir.Param("x"), ir.Const(1)))
}

// =============================================================================
// Wrap Tests
// =============================================================================

func TestWrap_BijectionEvaluates(t *testing.T) {
	sf, err := Wrap(xorOneSpec())
	require.NoError(t, err)
	assert.Equal(t, "xor_one", sf.Name())

	y, err := sf.Evaluate(0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), y)

	y, err = sf.Evaluate(1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), y)
}

func TestWrap_RejectsBranchingAtWrapTime(t *testing.T) {
	spec := ir.NewFuncSpec("branchy", "x", ir.If(ir.Param("x"), ir.Const(1)))

	sf, err := Wrap(spec)
	require.Error(t, err)
	assert.Nil(t, sf, "a branching body never produces a wrapper")
	assert.True(t, rules.IsControlFlowDivergence(err))
}

func TestWrap_RejectsNilSpec(t *testing.T) {
	_, err := Wrap(nil)
	assert.Error(t, err)
}

func TestEvaluate_DetectsIrreversibilityPerCall(t *testing.T) {
	// Property 6: the constant function fails on the second distinct input.
	sf, err := Wrap(ir.NewFuncSpec("zero", "x", ir.Const(0)))
	require.NoError(t, err)

	y, err := sf.Evaluate(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), y)

	_, err = sf.Evaluate(1)
	require.Error(t, err)
	assert.True(t, rules.IsIrreversible(err))

	v, ok := rules.AsViolation(err)
	require.True(t, ok)
	assert.Equal(t, "0", v.Details["prior_input"])
	assert.Equal(t, "1", v.Details["input"])
	assert.Equal(t, "0", v.Details["output"])
}

func TestEvaluate_DetectsInformationDeletion(t *testing.T) {
	sf, err := Wrap(ir.NewFuncSpec("discard", "x", ir.AbsentResult()))
	require.NoError(t, err)

	_, err = sf.Evaluate(4)
	assert.True(t, rules.IsInformationDeletion(err))
}

func TestWrap_IndependentLedgersPerWrap(t *testing.T) {
	spec := ir.NewFuncSpec("zero", "x", ir.Const(0))

	a, err := Wrap(spec)
	require.NoError(t, err)
	b, err := Wrap(spec)
	require.NoError(t, err)

	_, err = a.Evaluate(0)
	require.NoError(t, err)
	_, err = b.Evaluate(0)
	require.NoError(t, err, "second wrapper has its own ledger")

	_, err = a.Evaluate(1)
	assert.True(t, rules.IsIrreversible(err))
	_, err = b.Evaluate(0)
	assert.NoError(t, err, "violation in one wrapper leaves the other intact")
}

// =============================================================================
// Unit Synthesis Tests
// =============================================================================

func TestUnit_DefaultPlaceholder(t *testing.T) {
	sf, err := Wrap(xorOneSpec())
	require.NoError(t, err)

	u, err := sf.Unit("")
	require.NoError(t, err)
	assert.Equal(t, circuit.DefaultUnitName, u.Name)
	assert.Equal(t, 2, u.Width)
}

type recordingSynth struct {
	gotSpec *ir.FuncSpec
	gotName string
}

func (r *recordingSynth) Synthesize(spec *ir.FuncSpec, name string) (*circuit.Unit, error) {
	r.gotSpec = spec
	r.gotName = name
	return circuit.NewUnit(name, 2, circuit.Op{Kind: circuit.OpSwap, Control: 0, Target: 1}), nil
}

func TestUnit_SuppliedSynthesizer(t *testing.T) {
	synth := &recordingSynth{}
	sf, err := Wrap(xorOneSpec(), WithSynthesizer(synth))
	require.NoError(t, err)

	u, err := sf.Unit("U_xor")
	require.NoError(t, err)
	assert.Equal(t, "U_xor", u.Name)
	assert.Equal(t, "xor_one", synth.gotSpec.Name)
	assert.Equal(t, "U_xor", synth.gotName)
}
