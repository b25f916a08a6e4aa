package semantics

import (
	"github.com/sable-lang/sable/token"
)

// TypeDefinition is the canonical definition of a named type. Primitive
// definitions are singletons seeded at resolver construction; user types
// are created once per declaration and looked up for every later
// reference.
type TypeDefinition struct {
	Name        string
	IsInterface bool
	IsAbstract  bool
	IsSealed    bool
	IsFinal     bool
	IsPrimitive bool
	Superclass  *TypeDefinition
	Interfaces  map[string]struct{}
	Permits     map[string]struct{}
	Properties  map[string]*TypeDefinition
	Methods     map[string]Method
}

// Method is a member signature recorded on a TypeDefinition. HasBody
// distinguishes interface default methods from bare requirements.
type Method struct {
	Name    string
	Params  []string
	Return  string
	HasBody bool
}

func (d *TypeDefinition) String() string {
	return d.Name
}

func newTypeDefinition(name string) *TypeDefinition {
	return &TypeDefinition{
		Name:       name,
		Interfaces: make(map[string]struct{}),
		Permits:    make(map[string]struct{}),
		Properties: make(map[string]*TypeDefinition),
		Methods:    make(map[string]Method),
	}
}

// Implements reports whether the type or one of its superclasses records
// the named interface.
func (d *TypeDefinition) Implements(name string) bool {
	for t := d; t != nil; t = t.Superclass {
		if _, ok := t.Interfaces[name]; ok {
			return true
		}
	}

	return false
}

// HasMethod reports whether the type or one of its superclasses declares
// the named method.
func (d *TypeDefinition) HasMethod(name string) bool {
	for t := d; t != nil; t = t.Superclass {
		if _, ok := t.Methods[name]; ok {
			return true
		}
	}

	return false
}

// MethodNamed returns the method signature, searching the superclass chain.
func (d *TypeDefinition) MethodNamed(name string) (Method, bool) {
	for t := d; t != nil; t = t.Superclass {
		if m, ok := t.Methods[name]; ok {
			return m, true
		}
	}

	return Method{}, false
}

// PropertyNamed returns the property type, searching the superclass chain.
func (d *TypeDefinition) PropertyNamed(name string) (*TypeDefinition, bool) {
	for t := d; t != nil; t = t.Superclass {
		if p, ok := t.Properties[name]; ok {
			return p, true
		}
	}

	return nil, false
}

// numericRank orders the numeric primitives for widening. Zero means not
// numeric.
var numericRank = map[string]int{
	"Int":    1,
	"Int64":  2,
	"Float":  3,
	"Double": 4,
}

// IsNumeric reports whether the type is a numeric primitive.
func (d *TypeDefinition) IsNumeric() bool {
	return d.IsPrimitive && numericRank[d.Name] != 0
}

// WidensTo reports whether values of this numeric type may widen to the
// other numeric type without loss of range.
func (d *TypeDefinition) WidensTo(other *TypeDefinition) bool {
	if !d.IsNumeric() || !other.IsNumeric() {
		return false
	}

	return numericRank[d.Name] <= numericRank[other.Name]
}

// TypeResolver maps type names to canonical TypeDefinitions. Lookup is
// lexical: it walks the scope chain outward from the innermost scope.
// Primitives are seeded into the global scope once at construction and
// are always resolvable.
type TypeResolver struct {
	table      *SymbolTable
	primitives map[string]*TypeDefinition
}

var primitiveNames = []string{"Int", "Int64", "Float", "Double", "Bool", "String", "Char", "Void"}

func NewTypeResolver(table *SymbolTable) *TypeResolver {
	resolver := &TypeResolver{
		table:      table,
		primitives: make(map[string]*TypeDefinition),
	}
	for _, name := range primitiveNames {
		def := newTypeDefinition(name)
		def.IsPrimitive = true
		def.IsFinal = true
		resolver.primitives[name] = def
		// Primitives cannot fail to define in a fresh global scope.
		if err := table.Define(&Symbol{Name: name, Kind: TypeSymbol, Type: def}); err != nil {
			panic(err)
		}
	}

	return resolver
}

// Primitive returns a seeded primitive definition by name.
func (r *TypeResolver) Primitive(name string) *TypeDefinition {
	return r.primitives[name]
}

// DefineType registers a user type in the current scope.
func (r *TypeResolver) DefineType(def *TypeDefinition, at token.Token) error {
	return r.table.Define(&Symbol{Name: def.Name, Kind: TypeSymbol, Type: def, DeclaredAt: at})
}

// ResolveType walks the scope chain outward and returns the first type
// definition registered under the name.
func (r *TypeResolver) ResolveType(name string) (*TypeDefinition, bool) {
	sym, ok := r.table.Resolve(name)
	if !ok || sym.Kind != TypeSymbol {
		return nil, false
	}

	return sym.Type, true
}
