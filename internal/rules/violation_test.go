package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qsafe/qloop/internal/ir"
)

func TestViolation_ErrorMessage(t *testing.T) {
	v := NewIrreversibleViolation("zero", 0, 1, 0)
	assert.Equal(t, `IRREVERSIBLE_FUNCTION: function "zero" is not reversible: inputs 0 and 1 both map to 0`, v.Error())
}

func TestViolation_PredicatesDistinguishCodes(t *testing.T) {
	irrev := NewIrreversibleViolation("f", 0, 1, 0)
	del := NewInformationDeletionViolation("g", []ir.Value{ir.Int(1)})
	cf := NewControlFlowViolation("h", "while")

	assert.True(t, IsIrreversible(irrev))
	assert.False(t, IsIrreversible(del))
	assert.False(t, IsIrreversible(cf))

	assert.True(t, IsInformationDeletion(del))
	assert.False(t, IsInformationDeletion(irrev))

	assert.True(t, IsControlFlowDivergence(cf))
	assert.False(t, IsControlFlowDivergence(del))
}

func TestViolation_PredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("evaluate probe: %w", NewIrreversibleViolation("f", 0, 1, 0))
	assert.True(t, IsIrreversible(wrapped))

	v, ok := AsViolation(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeIrreversible, v.Code)
}

func TestViolation_PredicatesRejectPlainErrors(t *testing.T) {
	err := fmt.Errorf("something else")
	assert.False(t, IsIrreversible(err))
	assert.False(t, IsInformationDeletion(err))
	assert.False(t, IsControlFlowDivergence(err))

	_, ok := AsViolation(err)
	assert.False(t, ok)
}
