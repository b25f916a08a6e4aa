package semantics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/parser"
	"github.com/sable-lang/sable/semantics"
)

func analyze(t *testing.T, source string) (*semantics.Analyzer, []error) {
	t.Helper()

	tokens, err := lexer.Lex(source)
	require.NoError(t, err)
	decls, err := parser.Parse(tokens)
	require.NoError(t, err)

	analyzer := semantics.NewAnalyzer()

	return analyzer, analyzer.Analyze(decls)
}

func TestDuplicateTopLevel(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "var x = 1; var x = 2;")
	require.Len(t, errs, 1)
	var duplicate semantics.DuplicateDefinitionError
	require.ErrorAs(t, errs[0], &duplicate)
	assert.Equal(t, "x", duplicate.Name)
}

func TestDuplicateLocal(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "func f() { var x = 1; var x = 2; }")
	require.Len(t, errs, 1)
	var duplicate semantics.DuplicateDefinitionError
	assert.ErrorAs(t, errs[0], &duplicate)
}

func TestShadowingIsLegal(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "func f() { var x = 1; { var x = 2; } }")
	assert.Empty(t, errs)
}

func TestForwardReference(t *testing.T) {
	t.Parallel()

	// Siblings are registered before any body is analyzed.
	_, errs := analyze(t, "class A: B { } class B { }")
	assert.Empty(t, errs)
}

func TestConformance(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		class Base { }
		interface Printable { func show(); }
		class Report: Base, Printable { func show() { } }
	`)
	assert.Empty(t, errs)
}

func TestMissingConformance(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		class Base { }
		interface Printable { func show(); }
		class Report: Base, Printable { }
	`)
	require.Len(t, errs, 1)
	var conformance semantics.ConformanceError
	require.ErrorAs(t, errs[0], &conformance)
	assert.Equal(t, "Printable", conformance.Interface)
	assert.Equal(t, "show", conformance.Method)
}

func TestDefaultMethodNeedsNoImplementation(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		class Base { }
		interface Printable { func show() { } }
		class Report: Base, Printable { }
	`)
	assert.Empty(t, errs)
}

func TestInheritedMethodSatisfiesConformance(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		interface Printable { func show(); }
		class Base { func show() { } }
		class Report: Base, Printable { }
	`)
	assert.Empty(t, errs)
}

func TestFinalSuperclass(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "final class Sealed { } class Sub: Sealed { }")
	require.Len(t, errs, 1)
	var final semantics.FinalSuperclassError
	require.ErrorAs(t, errs[0], &final)
	assert.Equal(t, "Sealed", final.Super)
}

func TestPrimitiveSuperclass(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "class MyInt: Int { }")
	require.Len(t, errs, 1)
	var final semantics.FinalSuperclassError
	require.ErrorAs(t, errs[0], &final)
	assert.Equal(t, "Int", final.Super)
}

func TestSealedPermits(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		sealed class Shape permits Circle { }
		class Circle: Shape { }
		class Square: Shape { }
	`)
	require.Len(t, errs, 1)
	var sealed semantics.SealedSuperclassError
	require.ErrorAs(t, errs[0], &sealed)
	assert.Equal(t, "Square", sealed.Class.Lexeme)
}

func TestInterfaceAsSuperclass(t *testing.T) {
	t.Parallel()

	analyzer, errs := analyze(t, `
		interface Printable { }
		class Report: Printable { }
	`)
	require.Len(t, errs, 1)
	var wrongSuper semantics.InterfaceSuperclassError
	require.ErrorAs(t, errs[0], &wrongSuper)

	// The name is still recorded as a conformance.
	def, ok := analyzer.Resolver().ResolveType("Report")
	require.True(t, ok)
	assert.True(t, def.Implements("Printable"))
	assert.Nil(t, def.Superclass)
}

func TestNotAnInterface(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		class Base { }
		class Other { }
		class Report: Base, Other { }
	`)
	require.Len(t, errs, 1)
	var notInterface semantics.NotAnInterfaceError
	require.ErrorAs(t, errs[0], &notInterface)
	assert.Equal(t, "Other", notInterface.Name)
}

func TestUndefinedType(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "var x: Missing = 1;")
	require.Len(t, errs, 1)
	var undefined semantics.UndefinedTypeError
	require.ErrorAs(t, errs[0], &undefined)
	assert.Equal(t, "Missing", undefined.Name.Lexeme)
}

func TestUndefinedSymbol(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "func f() -> Int { return y; }")
	require.Len(t, errs, 1)
	var undefined semantics.UndefinedSymbolError
	require.ErrorAs(t, errs[0], &undefined)
	assert.Equal(t, "y", undefined.Name.Lexeme)
}

func TestAbstractMethodInConcreteClass(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "class A { abstract func m(); }")
	require.Len(t, errs, 1)
	var abstract semantics.AbstractMethodError
	require.ErrorAs(t, errs[0], &abstract)
	assert.Equal(t, "m", abstract.Method)
}

func TestAbstractMethodInAbstractClass(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, "abstract class A { abstract func m(); }")
	assert.Empty(t, errs)
}

func TestOverrideNeedsATarget(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		class Base { func show() { } }
		class Good: Base { override func show() { } }
		class Bad: Base { override func missing() { } }
	`)
	require.Len(t, errs, 1)
	var override semantics.OverrideError
	require.ErrorAs(t, errs[0], &override)
	assert.Equal(t, "Bad", override.Class.Lexeme)
	assert.Equal(t, "missing", override.Method)
}

func TestOverrideOfInterfaceMethod(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		class Base { }
		interface Printable { func show(); }
		class Report: Base, Printable { override func show() { } }
	`)
	assert.Empty(t, errs)
}

func TestStructConformance(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		interface Printable { func show(); }
		struct Point: Printable { }
	`)
	require.Len(t, errs, 1)
	var conformance semantics.ConformanceError
	assert.ErrorAs(t, errs[0], &conformance)
}

func TestEnumCases(t *testing.T) {
	t.Parallel()

	analyzer, errs := analyze(t, "enum Color { Red, Green, Blue }")
	require.Empty(t, errs)

	def, ok := analyzer.Resolver().ResolveType("Color")
	require.True(t, ok)
	for _, name := range []string{"Red", "Green", "Blue"} {
		_, has := def.PropertyNamed(name)
		assert.True(t, has, "case %s should be a member of Color", name)
	}
}

func TestAccumulatesIndependentErrors(t *testing.T) {
	t.Parallel()

	_, errs := analyze(t, `
		var x: Missing = 1;
		func f() { return y; }
		class A: Nope { }
	`)
	assert.Len(t, errs, 3)
}
