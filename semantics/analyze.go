package semantics

import (
	"log"

	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/token"
)

// Analyzer walks the AST of one compilation unit, populates the symbol
// table and validates declaration-level rules. Errors are accumulated;
// analysis never stops at the first problem.
type Analyzer struct {
	table    *SymbolTable
	resolver *TypeResolver
	errs     []error
}

func NewAnalyzer() *Analyzer {
	table := NewSymbolTable()

	return &Analyzer{table: table, resolver: NewTypeResolver(table)}
}

func (a *Analyzer) Table() *SymbolTable {
	return a.table
}

func (a *Analyzer) Resolver() *TypeResolver {
	return a.resolver
}

// Analyze registers every sibling declaration before walking bodies, so
// mutual forward references between declarations in the same scope
// resolve correctly.
func (a *Analyzer) Analyze(decls []ast.Decl) []error {
	a.errs = nil
	for _, decl := range decls {
		a.register(decl)
	}
	for _, decl := range decls {
		a.analyzeDecl(decl)
	}

	return a.errs
}

func (a *Analyzer) report(err error) {
	a.errs = append(a.errs, err)
}

// register creates the symbol or type definition for one declaration
// without resolving anything inside it.
func (a *Analyzer) register(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.ClassDecl:
		def := newTypeDefinition(d.Name.Lexeme)
		def.IsAbstract = d.IsAbstract
		def.IsSealed = d.IsSealed
		def.IsFinal = d.IsFinal
		for _, name := range d.Permits {
			def.Permits[name.Lexeme] = struct{}{}
		}
		a.recordMembers(def, d.Properties, d.Methods)
		if err := a.resolver.DefineType(def, d.Name); err != nil {
			a.report(err)
		}
	case *ast.StructDecl:
		def := newTypeDefinition(d.Name.Lexeme)
		def.IsFinal = true // structs are value types and cannot be extended
		a.recordMembers(def, d.Properties, d.Methods)
		if err := a.resolver.DefineType(def, d.Name); err != nil {
			a.report(err)
		}
	case *ast.EnumDecl:
		def := newTypeDefinition(d.Name.Lexeme)
		def.IsFinal = true
		for _, c := range d.Cases {
			def.Properties[c.Name.Lexeme] = def
		}
		a.recordMembers(def, nil, d.Methods)
		if err := a.resolver.DefineType(def, d.Name); err != nil {
			a.report(err)
		}
	case *ast.InterfaceDecl:
		def := newTypeDefinition(d.Name.Lexeme)
		def.IsInterface = true
		a.recordMembers(def, nil, d.Methods)
		if err := a.resolver.DefineType(def, d.Name); err != nil {
			a.report(err)
		}
	case *ast.FuncDecl:
		sym := &Symbol{Name: d.Name.Lexeme, Kind: FunctionSymbol, DeclaredAt: d.Name}
		if err := a.table.Define(sym); err != nil {
			a.report(err)
		}
	case *ast.VarDecl:
		a.defineVar(d)
	default:
		log.Panicf("semantics: unexpected declaration %T", decl)
	}
}

func (a *Analyzer) recordMembers(def *TypeDefinition, properties []*ast.VarDecl, methods []*ast.FuncDecl) {
	for _, p := range properties {
		// The property's declared type is attached during analyzeDecl,
		// once sibling types are registered.
		def.Properties[p.Name.Lexeme] = nil
	}
	for _, m := range methods {
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.Type.Name.Lexeme
		}
		ret := "Void"
		if m.Return != nil {
			ret = m.Return.Name.Lexeme
		}
		def.Methods[m.Name.Lexeme] = Method{
			Name:    m.Name.Lexeme,
			Params:  params,
			Return:  ret,
			HasBody: m.Body != nil,
		}
	}
}

func (a *Analyzer) defineVar(d *ast.VarDecl) *Symbol {
	kind := VariableSymbol
	if d.Keyword.Kind == token.CONST {
		kind = ConstantSymbol
	}
	sym := &Symbol{Name: d.Name.Lexeme, Kind: kind, DeclaredAt: d.Name}
	if err := a.table.Define(sym); err != nil {
		a.report(err)
	}

	return sym
}

func (a *Analyzer) analyzeDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.ClassDecl:
		a.analyzeClass(d)
	case *ast.StructDecl:
		a.analyzeStruct(d)
	case *ast.EnumDecl:
		a.analyzeEnum(d)
	case *ast.InterfaceDecl:
		a.analyzeInterface(d)
	case *ast.FuncDecl:
		a.analyzeFunc(d, nil)
	case *ast.VarDecl:
		a.analyzeVar(d, false)
	default:
		log.Panicf("semantics: unexpected declaration %T", decl)
	}
}

func (a *Analyzer) analyzeClass(d *ast.ClassDecl) {
	def, ok := a.resolver.ResolveType(d.Name.Lexeme)
	if !ok {
		return // registration already failed
	}

	if d.Superclass != nil {
		a.resolveSuperclass(def, d)
	}
	for _, name := range d.Interfaces {
		a.resolveInterface(def, d.Name, name)
	}
	a.checkConformance(def, d.Name)

	for _, m := range d.Methods {
		if m.IsAbstract && !d.IsAbstract {
			a.report(AbstractMethodError{Class: d.Name, Method: m.Name.Lexeme})
		}
		if m.IsOverride {
			a.checkOverride(def, d.Name, m.Name.Lexeme)
		}
	}

	a.analyzeTypeBody(def, d.TypeParams, d.Properties, d.Methods)
}

// resolveSuperclass settles the grammar's superclass/interface
// ambiguity: the first inherited name is only a superclass if it
// resolves to a class. An interface there is diagnosed and then treated
// as a conformance.
func (a *Analyzer) resolveSuperclass(def *TypeDefinition, d *ast.ClassDecl) {
	name := *d.Superclass
	super, ok := a.resolver.ResolveType(name.Lexeme)
	if !ok {
		a.report(UndefinedTypeError{Name: name})

		return
	}
	if super.IsInterface {
		a.report(InterfaceSuperclassError{Class: d.Name, Super: name.Lexeme})
		def.Interfaces[name.Lexeme] = struct{}{}

		return
	}
	if super.IsFinal {
		a.report(FinalSuperclassError{Class: d.Name, Super: name.Lexeme})

		return
	}
	if super.IsSealed {
		if _, permitted := super.Permits[d.Name.Lexeme]; !permitted {
			a.report(SealedSuperclassError{Class: d.Name, Super: name.Lexeme})

			return
		}
	}
	def.Superclass = super
}

func (a *Analyzer) resolveInterface(def *TypeDefinition, owner, name token.Token) {
	idef, ok := a.resolver.ResolveType(name.Lexeme)
	if !ok {
		a.report(UndefinedTypeError{Name: name})

		return
	}
	if !idef.IsInterface {
		a.report(NotAnInterfaceError{Class: owner, Name: name.Lexeme})

		return
	}
	def.Interfaces[name.Lexeme] = struct{}{}
}

// checkConformance verifies that every interface requirement without a
// default body has an implementation on the type or its superclasses.
func (a *Analyzer) checkConformance(def *TypeDefinition, owner token.Token) {
	for name := range def.Interfaces {
		idef, ok := a.resolver.ResolveType(name)
		if !ok {
			continue
		}
		for _, m := range idef.Methods {
			if m.HasBody {
				continue
			}
			if !def.HasMethod(m.Name) {
				a.report(ConformanceError{Class: owner, Interface: name, Method: m.Name})
			}
		}
	}
}

// checkOverride verifies that an `override` method shadows something: a
// superclass method or an interface requirement. Matching is by name.
func (a *Analyzer) checkOverride(def *TypeDefinition, owner token.Token, method string) {
	if def.Superclass != nil && def.Superclass.HasMethod(method) {
		return
	}
	for name := range def.Interfaces {
		if idef, ok := a.resolver.ResolveType(name); ok && idef.HasMethod(method) {
			return
		}
	}
	a.report(OverrideError{Class: owner, Method: method})
}

func (a *Analyzer) analyzeStruct(d *ast.StructDecl) {
	def, ok := a.resolver.ResolveType(d.Name.Lexeme)
	if !ok {
		return
	}
	for _, name := range d.Interfaces {
		a.resolveInterface(def, d.Name, name)
	}
	a.checkConformance(def, d.Name)
	a.analyzeTypeBody(def, d.TypeParams, d.Properties, d.Methods)
}

func (a *Analyzer) analyzeEnum(d *ast.EnumDecl) {
	def, ok := a.resolver.ResolveType(d.Name.Lexeme)
	if !ok {
		return
	}

	a.table.Push()
	defer a.table.Pop()

	for _, c := range d.Cases {
		sym := &Symbol{Name: c.Name.Lexeme, Kind: ConstantSymbol, Type: def, DeclaredAt: c.Name}
		if err := a.table.Define(sym); err != nil {
			a.report(err)
		}
		if c.Value != nil {
			a.resolveExpr(c.Value)
		}
	}
	for _, m := range d.Methods {
		a.analyzeFunc(m, def)
	}
}

func (a *Analyzer) analyzeInterface(d *ast.InterfaceDecl) {
	def, ok := a.resolver.ResolveType(d.Name.Lexeme)
	if !ok {
		return
	}
	a.analyzeTypeBody(def, d.TypeParams, nil, d.Methods)
}

// analyzeTypeBody pushes the type's member scope, attaches property
// types and walks every method against it.
func (a *Analyzer) analyzeTypeBody(def *TypeDefinition, typeParams []token.Token, properties []*ast.VarDecl, methods []*ast.FuncDecl) {
	a.table.Push()
	defer a.table.Pop()

	a.defineTypeParams(typeParams)

	for _, p := range properties {
		sym := a.defineVar(p)
		if p.Type != nil {
			if resolved := a.resolveTypeRef(p.Type); resolved != nil {
				sym.Type = resolved
				def.Properties[p.Name.Lexeme] = resolved
			}
		}
		if p.Init != nil {
			a.resolveExpr(p.Init)
		}
	}
	for _, m := range methods {
		sym := &Symbol{Name: m.Name.Lexeme, Kind: FunctionSymbol, DeclaredAt: m.Name}
		if err := a.table.Define(sym); err != nil {
			a.report(err)
		}
	}
	for _, m := range methods {
		a.analyzeFunc(m, def)
	}
}

func (a *Analyzer) defineTypeParams(typeParams []token.Token) {
	for _, tp := range typeParams {
		def := newTypeDefinition(tp.Lexeme)
		if err := a.resolver.DefineType(def, tp); err != nil {
			a.report(err)
		}
	}
}

// analyzeFunc resolves the signature and walks the body in a fresh
// scope. The owner is non-nil for methods; their symbol is defined by
// the enclosing type body.
func (a *Analyzer) analyzeFunc(d *ast.FuncDecl, owner *TypeDefinition) {
	var sig FuncSig
	a.table.Push()
	defer a.table.Pop()

	a.defineTypeParams(d.TypeParams)

	for _, p := range d.Params {
		var resolved *TypeDefinition
		if p.Type != nil {
			resolved = a.resolveTypeRef(p.Type)
		}
		sig.Params = append(sig.Params, resolved)
		sym := &Symbol{Name: p.Name.Lexeme, Kind: VariableSymbol, Type: resolved, DeclaredAt: p.Name}
		if err := a.table.Define(sym); err != nil {
			a.report(err)
		}
	}
	if d.Return != nil {
		sig.Return = a.resolveTypeRef(d.Return)
	} else {
		sig.Return = a.resolver.Primitive("Void")
	}

	if owner == nil {
		if sym, ok := a.table.Resolve(d.Name.Lexeme); ok && sym.Kind == FunctionSymbol {
			sym.Signature = &sig
		}
	}

	if d.Body != nil {
		for _, stmt := range d.Body.Stmts {
			a.resolveStmt(stmt)
		}
	}
}

func (a *Analyzer) analyzeVar(d *ast.VarDecl, local bool) {
	var sym *Symbol
	if local {
		if d.Init != nil {
			a.resolveExpr(d.Init)
		}
		sym = a.defineVar(d)
	} else {
		// Top-level symbol was defined during registration.
		if s, ok := a.table.Resolve(d.Name.Lexeme); ok {
			sym = s
		}
		if d.Init != nil {
			a.resolveExpr(d.Init)
		}
	}
	if d.Type != nil {
		if resolved := a.resolveTypeRef(d.Type); resolved != nil && sym != nil && sym.Type == nil {
			sym.Type = resolved
		}
	}
}

// resolveTypeRef resolves an annotation, reporting undefined names.
// Generic arguments are resolved for their own diagnostics; the base
// definition stands for the whole reference.
func (a *Analyzer) resolveTypeRef(ref *ast.TypeRef) *TypeDefinition {
	def, ok := a.resolver.ResolveType(ref.Name.Lexeme)
	if !ok {
		a.report(UndefinedTypeError{Name: ref.Name})

		return nil
	}
	for _, arg := range ref.Args {
		a.resolveTypeRef(arg)
	}

	return def
}

func (a *Analyzer) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.analyzeVar(s, true)
	case *ast.ExprStmt:
		a.resolveExpr(s.Expression)
	case *ast.BlockStmt:
		a.table.Push()
		for _, inner := range s.Stmts {
			a.resolveStmt(inner)
		}
		a.table.Pop()
	case *ast.IfStmt:
		a.resolveExpr(s.Cond)
		a.resolveStmt(s.Then)
		if s.Else != nil {
			a.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		a.resolveExpr(s.Cond)
		a.resolveStmt(s.Body)
	case *ast.ForStmt:
		a.table.Push()
		if s.Init != nil {
			a.resolveStmt(s.Init)
		}
		if s.Cond != nil {
			a.resolveExpr(s.Cond)
		}
		if s.Post != nil {
			a.resolveExpr(s.Post)
		}
		a.resolveStmt(s.Body)
		a.table.Pop()
	case *ast.ReturnStmt:
		if s.Value != nil {
			a.resolveExpr(s.Value)
		}
	case *ast.BreakStmt, *ast.ContinueStmt:
		// nothing to resolve
	default:
		log.Panicf("semantics: unexpected statement %T", stmt)
	}
}

func (a *Analyzer) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.LiteralExpr, *ast.ThisExpr, *ast.SuperExpr:
		// nothing to resolve
	case *ast.VariableExpr:
		if _, ok := a.table.Resolve(e.Name.Lexeme); !ok {
			a.report(UndefinedSymbolError{Name: e.Name})
		}
	case *ast.BinaryExpr:
		a.resolveExpr(e.Left)
		a.resolveExpr(e.Right)
	case *ast.AssignExpr:
		a.resolveExpr(e.Target)
		a.resolveExpr(e.Value)
	case *ast.ConditionalExpr:
		a.resolveExpr(e.Cond)
		a.resolveExpr(e.Then)
		a.resolveExpr(e.Else)
	case *ast.GroupingExpr:
		a.resolveExpr(e.Expr)
	case *ast.UnaryExpr:
		a.resolveExpr(e.Operand)
	case *ast.CallExpr:
		a.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			a.resolveExpr(arg)
		}
	case *ast.GetExpr:
		// Member names resolve against the receiver's type during type
		// checking, not here.
		a.resolveExpr(e.Object)
	case *ast.SetExpr:
		a.resolveExpr(e.Object)
		a.resolveExpr(e.Value)
	case *ast.ArrayLiteralExpr:
		for _, elem := range e.Elements {
			a.resolveExpr(elem)
		}
	case *ast.IndexExpr:
		a.resolveExpr(e.Object)
		a.resolveExpr(e.Index)
	case *ast.NewExpr:
		a.resolveTypeRef(e.Type)
		for _, arg := range e.Args {
			a.resolveExpr(arg)
		}
	default:
		log.Panicf("semantics: unexpected expression %T", expr)
	}
}
