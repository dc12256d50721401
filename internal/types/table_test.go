package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBuilderResolvesThroughSubstitution(t *testing.T) {
	tcx := NewContext()
	u := NewUnifier(tcx)
	b := NewTableBuilder(1)

	id := tcx.FreshExprID()
	v := tcx.FreshTy()
	b.Record(id, v)
	u.Enqueue(v, NewBase(Int))
	require.NoError(t, u.Solve())

	table, err := b.Finish(u)
	require.NoError(t, err)
	ty, ok := table.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, NewBase(Int), ty)
}

func TestTableBuilderRejectsUnresolvedVariable(t *testing.T) {
	tcx := NewContext()
	u := NewUnifier(tcx)
	b := NewTableBuilder(1)

	id := tcx.FreshExprID()
	v := tcx.FreshTy()
	b.Record(id, v)
	require.NoError(t, u.Solve())

	_, err := b.Finish(u)
	require.Error(t, err)
	tcErr, ok := err.(*TypeCheckError)
	require.True(t, ok)
	assert.Equal(t, UnresolvedTypeVariableError, tcErr.Kind)
}
