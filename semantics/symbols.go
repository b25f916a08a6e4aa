package semantics

import (
	"github.com/sable-lang/sable/token"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	ConstantSymbol
	FunctionSymbol
	TypeSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case VariableSymbol:
		return "variable"
	case ConstantSymbol:
		return "constant"
	case FunctionSymbol:
		return "function"
	case TypeSymbol:
		return "type"
	default:
		return "unknown"
	}
}

// Symbol is a named entity recorded in a scope. A symbol is created once,
// at its first declaration; only its Type may be attached later, once
// inference completes.
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Type       *TypeDefinition // nil until resolved
	Signature  *FuncSig        // only for FunctionSymbol
	DeclaredAt token.Token
}

// FuncSig is the call signature of a function or method symbol.
type FuncSig struct {
	Params []*TypeDefinition // nil entry: parameter type did not resolve
	Return *TypeDefinition   // nil means Void
}

// Scope maps names to symbols. Scopes form a tree whose root is the
// global scope; the parent chain is acyclic by construction.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

func newScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Symbol)}
}

// Lookup finds a symbol in this scope only.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]

	return sym, ok
}

// Resolve walks the scope chain outward to the global scope.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, true
	}
	if s.parent != nil {
		return s.parent.Resolve(name)
	}

	return nil, false
}

// SymbolTable owns the scope tree of one compilation unit.
type SymbolTable struct {
	global  *Scope
	current *Scope
}

func NewSymbolTable() *SymbolTable {
	global := newScope(nil)

	return &SymbolTable{global: global, current: global}
}

func (t *SymbolTable) Global() *Scope {
	return t.global
}

func (t *SymbolTable) Current() *Scope {
	return t.current
}

// Push enters a new child scope.
func (t *SymbolTable) Push() {
	t.current = newScope(t.current)
}

// Pop leaves the current scope. Popping the global scope is a bug in the
// caller.
func (t *SymbolTable) Pop() {
	if t.current.parent == nil {
		panic("semantics: popped the global scope")
	}
	t.current = t.current.parent
}

// Define records a symbol in the current scope. Shadowing an outer
// scope's name is allowed; redefining a name in the same scope is not.
func (t *SymbolTable) Define(sym *Symbol) error {
	if existing, ok := t.current.symbols[sym.Name]; ok {
		return DuplicateDefinitionError{Name: sym.Name, First: existing.DeclaredAt, At: sym.DeclaredAt}
	}
	t.current.symbols[sym.Name] = sym

	return nil
}

// Resolve walks the scope chain outward from the current scope.
func (t *SymbolTable) Resolve(name string) (*Symbol, bool) {
	return t.current.Resolve(name)
}
