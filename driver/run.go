package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/optimizer"
	"github.com/sable-lang/sable/parser"
	"github.com/sable-lang/sable/semantics"
	"github.com/sable-lang/sable/token"
	"github.com/sable-lang/sable/typecheck"
)

// Unit is the state of one compilation unit as it moves through the
// pipeline. Units are single-owner: independent units may be compiled
// concurrently, but one unit is never shared between goroutines.
type Unit struct {
	Source   string
	Tokens   []token.Token
	Decls    []ast.Decl
	Table    *semantics.SymbolTable
	Resolver *semantics.TypeResolver
	// Diags accumulates semantic and type diagnostics. Lexer and parser
	// errors are fail-fast and abort the pipeline instead.
	Diags []error
}

// Pass is one stage of the pipeline. A returned error aborts the run;
// recoverable findings belong in unit.Diags.
type Pass interface {
	Name() string
	Run(unit *Unit) error
}

type PassRunner struct {
	passes []Pass
}

func NewPassRunner() *PassRunner {
	return &PassRunner{}
}

// AddPass adds a pass to the end of the pass list.
func (r *PassRunner) AddPass(pass Pass) {
	r.passes = append(r.passes, pass)
}

// Run executes passes in order. Cancellation is honored between passes:
// a cancelled unit yields no partial result.
func (r *PassRunner) Run(ctx context.Context, unit *Unit) error {
	for _, pass := range r.passes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := pass.Run(unit); err != nil {
			return fmt.Errorf("%s: %w", pass.Name(), err)
		}
	}

	return ctx.Err()
}

// RunSource lexes and parses the source, then executes the passes.
func (r *PassRunner) RunSource(ctx context.Context, source string) (*Unit, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decls, err := parser.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	unit := &Unit{Source: source, Tokens: tokens, Decls: decls}
	if err := r.Run(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// AnalyzePass populates the unit's symbol table and validates
// declaration-level rules.
type AnalyzePass struct{}

func (AnalyzePass) Name() string {
	return "semantics.Analyzer"
}

func (AnalyzePass) Run(unit *Unit) error {
	analyzer := semantics.NewAnalyzer()
	unit.Diags = append(unit.Diags, analyzer.Analyze(unit.Decls)...)
	unit.Table = analyzer.Table()
	unit.Resolver = analyzer.Resolver()

	return nil
}

// CheckPass verifies expression and statement types.
type CheckPass struct{}

func (CheckPass) Name() string {
	return "typecheck.Check"
}

func (CheckPass) Run(unit *Unit) error {
	if unit.Table == nil {
		return errors.New("type checking requires semantic analysis")
	}
	unit.Diags = append(unit.Diags, typecheck.Check(unit.Decls, unit.Table, unit.Resolver)...)

	return nil
}

// OptimizePass folds constant expressions. It is idempotent.
type OptimizePass struct{}

func (OptimizePass) Name() string {
	return "optimizer.Optimize"
}

func (OptimizePass) Run(unit *Unit) error {
	unit.Decls = optimizer.Optimize(unit.Decls)

	return nil
}

// Compile runs the full front-end pipeline over one source text.
func Compile(ctx context.Context, source string) (*Unit, error) {
	runner := NewPassRunner()
	runner.AddPass(AnalyzePass{})
	runner.AddPass(CheckPass{})
	runner.AddPass(OptimizePass{})

	return runner.RunSource(ctx, source)
}

// The editor integration calls ScanTokens, Parse and Check as three
// independently callable, idempotent functions over one source text.

func ScanTokens(source string) ([]token.Token, error) {
	return lexer.Lex(source)
}

func Parse(source string) ([]ast.Decl, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}

	return parser.Parse(tokens)
}

// Check returns the accumulated semantic and type diagnostics for the
// source. Lexer and parser failures are returned as the error instead.
func Check(source string) ([]error, error) {
	decls, err := Parse(source)
	if err != nil {
		return nil, err
	}

	analyzer := semantics.NewAnalyzer()
	diags := analyzer.Analyze(decls)
	diags = append(diags, typecheck.Check(decls, analyzer.Table(), analyzer.Resolver())...)

	return diags, nil
}
