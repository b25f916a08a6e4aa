package semantics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-lang/sable/semantics"
)

func TestDefineAndResolve(t *testing.T) {
	t.Parallel()

	table := semantics.NewSymbolTable()
	err := table.Define(&semantics.Symbol{Name: "x", Kind: semantics.VariableSymbol})
	require.NoError(t, err)

	sym, ok := table.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, "x", sym.Name)
	assert.Equal(t, semantics.VariableSymbol, sym.Kind)

	_, ok = table.Resolve("y")
	assert.False(t, ok)
}

func TestDuplicateInSameScope(t *testing.T) {
	t.Parallel()

	table := semantics.NewSymbolTable()
	require.NoError(t, table.Define(&semantics.Symbol{Name: "x", Kind: semantics.VariableSymbol}))

	err := table.Define(&semantics.Symbol{Name: "x", Kind: semantics.ConstantSymbol})
	var duplicate semantics.DuplicateDefinitionError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "x", duplicate.Name)
}

func TestShadowingInInnerScope(t *testing.T) {
	t.Parallel()

	table := semantics.NewSymbolTable()
	require.NoError(t, table.Define(&semantics.Symbol{Name: "x", Kind: semantics.VariableSymbol}))

	table.Push()
	assert.NoError(t, table.Define(&semantics.Symbol{Name: "x", Kind: semantics.ConstantSymbol}))

	sym, ok := table.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, semantics.ConstantSymbol, sym.Kind, "inner definition shadows the outer one")

	table.Pop()
	sym, ok = table.Resolve("x")
	require.True(t, ok)
	assert.Equal(t, semantics.VariableSymbol, sym.Kind, "outer definition is visible again after pop")
}

func TestResolveWalksOutward(t *testing.T) {
	t.Parallel()

	table := semantics.NewSymbolTable()
	require.NoError(t, table.Define(&semantics.Symbol{Name: "global", Kind: semantics.FunctionSymbol}))

	table.Push()
	table.Push()
	sym, ok := table.Resolve("global")
	require.True(t, ok)
	assert.Equal(t, semantics.FunctionSymbol, sym.Kind)

	// Lookup is scope-local and must not see the global.
	_, ok = table.Current().Lookup("global")
	assert.False(t, ok)
}

func TestPopGlobalPanics(t *testing.T) {
	t.Parallel()

	table := semantics.NewSymbolTable()
	assert.Panics(t, func() { table.Pop() })
}
