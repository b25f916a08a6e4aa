package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"
	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/driver"
	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/parser"
)

var history = filepath.Join(xdg.DataHome, "sable", ".sable_history")

func RunPrompt() error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			return err
		}
		line.AppendHistory(input)
		unit, err := driver.Compile(context.Background(), input)
		if err != nil {
			// Bare expressions are not declarations; echo them back
			// parsed instead of rejecting the input.
			if expr, exprErr := parseExpr(input); exprErr == nil {
				fmt.Println(expr)

				continue
			}
			printErrors(err)

			continue
		}
		for _, diag := range unit.Diags {
			fmt.Fprintf(os.Stderr, "Error: %v\n", diag)
		}
		if len(unit.Diags) == 0 {
			for _, decl := range unit.Decls {
				fmt.Println(decl)
			}
		}
	}
}

func parseExpr(input string) (ast.Expr, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}

	return parser.NewParser(tokens).ParseExpr()
}

func RunFile(path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	unit, err := driver.Compile(context.Background(), string(bytes))
	if err != nil {
		return err
	}
	for _, diag := range unit.Diags {
		fmt.Fprintf(os.Stderr, "Error: %v\n", diag)
	}
	if len(unit.Diags) > 0 {
		return fmt.Errorf("%s: %d error(s)", path, len(unit.Diags))
	}

	return nil
}

func printErrors(err error) {
	if errs, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range errs.Unwrap() {
			fmt.Fprintf(os.Stderr, "Error: %v\n", inner)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
