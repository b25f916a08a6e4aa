package semantics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-lang/sable/semantics"
)

func TestNumericWideningRank(t *testing.T) {
	t.Parallel()

	resolver := semantics.NewTypeResolver(semantics.NewSymbolTable())
	intDef := resolver.Primitive("Int")
	int64Def := resolver.Primitive("Int64")
	floatDef := resolver.Primitive("Float")
	doubleDef := resolver.Primitive("Double")
	stringDef := resolver.Primitive("String")

	assert.True(t, intDef.WidensTo(int64Def))
	assert.True(t, intDef.WidensTo(doubleDef))
	assert.True(t, floatDef.WidensTo(doubleDef))
	assert.False(t, doubleDef.WidensTo(intDef))
	assert.False(t, int64Def.WidensTo(intDef))
	assert.False(t, intDef.WidensTo(stringDef))
	assert.True(t, intDef.IsNumeric())
	assert.False(t, stringDef.IsNumeric())
}

func TestPrimitivesAreFinal(t *testing.T) {
	t.Parallel()

	resolver := semantics.NewTypeResolver(semantics.NewSymbolTable())
	for _, name := range []string{"Int", "Int64", "Float", "Double", "Bool", "String", "Char", "Void"} {
		def := resolver.Primitive(name)
		require.NotNil(t, def, name)
		assert.True(t, def.IsFinal, "%s must not be extendable", name)
		assert.True(t, def.IsPrimitive, name)
	}
}

func TestMemberLookupWalksSuperclasses(t *testing.T) {
	t.Parallel()

	analyzer, errs := analyze(t, `
		class Base {
			var id: Int = 0;
			func describe() -> String { return "base"; }
		}
		class Derived: Base { }
	`)
	require.Empty(t, errs)

	derived, ok := analyzer.Resolver().ResolveType("Derived")
	require.True(t, ok)

	_, has := derived.PropertyNamed("id")
	assert.True(t, has, "property lookup should reach the superclass")
	method, has := derived.MethodNamed("describe")
	require.True(t, has, "method lookup should reach the superclass")
	assert.Equal(t, "String", method.Return)
	assert.True(t, derived.HasMethod("describe"))
	assert.False(t, derived.HasMethod("missing"))
}

func TestImplementsWalksChain(t *testing.T) {
	t.Parallel()

	analyzer, errs := analyze(t, `
		interface Printable { }
		class Base { }
		class Mid: Base, Printable { }
		class Leaf: Mid { }
	`)
	require.Empty(t, errs)

	leaf, ok := analyzer.Resolver().ResolveType("Leaf")
	require.True(t, ok)
	assert.True(t, leaf.Implements("Printable"), "conformance is inherited along the superclass chain")
	assert.False(t, leaf.Implements("Other"))
}
