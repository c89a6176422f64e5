package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAbsent(t *testing.T) {
	assert.True(t, IsAbsent(Absent{}))
	assert.True(t, IsAbsent(nil), "nil Value counts as absent")
	assert.False(t, IsAbsent(Int(0)), "zero is a value, not absence")
}

func TestAsInt(t *testing.T) {
	n, ok := AsInt(Int(-3))
	require.True(t, ok)
	assert.Equal(t, int64(-3), n)

	_, ok = AsInt(Absent{})
	assert.False(t, ok)

	_, ok = AsInt(nil)
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "7", String(Int(7)))
	assert.Equal(t, "<absent>", String(Absent{}))
	assert.Equal(t, "<absent>", String(nil))
}

func TestLift(t *testing.T) {
	fn := Lift(func(args ...Value) Value { return Int(9) })

	v, err := fn(Int(1))
	require.NoError(t, err)
	assert.Equal(t, Int(9), v)
}

func TestUnary(t *testing.T) {
	fn := Unary(func(x int64) int64 { return x * 2 })

	assert.Equal(t, Int(8), fn(Int(4)))
	assert.True(t, IsAbsent(fn()), "wrong arity yields absent")
	assert.True(t, IsAbsent(fn(Absent{})), "non-integer arg yields absent")
}
