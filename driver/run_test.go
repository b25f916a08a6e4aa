package driver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sable-lang/sable/driver"
	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/parser"
	"github.com/sable-lang/sable/typecheck"
)

const cleanSource = `
	func add(a: Int, b: Int) -> Int { return a + b; }
	var total: Int = add(1, 2);
`

func TestCompileCleanUnit(t *testing.T) {
	t.Parallel()

	unit, err := driver.Compile(context.Background(), cleanSource)
	require.NoError(t, err)
	assert.Empty(t, unit.Diags)
	assert.NotNil(t, unit.Table)
	assert.NotEmpty(t, unit.Tokens)
	assert.Len(t, unit.Decls, 2)
}

func TestCompileAccumulatesDiagnostics(t *testing.T) {
	t.Parallel()

	unit, err := driver.Compile(context.Background(), `var x: String = 42; var y: Missing = 1;`)
	require.NoError(t, err, "diagnostics must not abort the pipeline")
	assert.Len(t, unit.Diags, 2)
}

func TestCompileAbortsOnParseError(t *testing.T) {
	t.Parallel()

	unit, err := driver.Compile(context.Background(), `var x = ;`)
	require.Error(t, err)
	assert.Nil(t, unit)
}

func TestCancelledBeforeRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	unit, err := driver.Compile(ctx, cleanSource)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, unit)
}

// recordingPass cancels the context after running, so the pass behind it
// must never execute.
type recordingPass struct {
	name   string
	ran    *[]string
	cancel context.CancelFunc
}

func (p recordingPass) Name() string {
	return p.name
}

func (p recordingPass) Run(unit *driver.Unit) error {
	*p.ran = append(*p.ran, p.name)
	if p.cancel != nil {
		p.cancel()
	}

	return nil
}

func TestCancellationBetweenPasses(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var ran []string
	runner := driver.NewPassRunner()
	runner.AddPass(recordingPass{name: "first", ran: &ran, cancel: cancel})
	runner.AddPass(recordingPass{name: "second", ran: &ran})

	_, err := runner.RunSource(ctx, cleanSource)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"first"}, ran, "the pass after the cancellation must not run")
}

type failingPass struct{}

func (failingPass) Name() string {
	return "failing"
}

func (failingPass) Run(unit *driver.Unit) error {
	return errors.New("boom")
}

func TestPassErrorIsNamed(t *testing.T) {
	t.Parallel()

	runner := driver.NewPassRunner()
	runner.AddPass(failingPass{})

	_, err := runner.RunSource(context.Background(), cleanSource)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
}

func TestScanTokensMatchesLexer(t *testing.T) {
	t.Parallel()

	fromDriver, err := driver.ScanTokens(cleanSource)
	require.NoError(t, err)
	fromLexer, err := lexer.Lex(cleanSource)
	require.NoError(t, err)
	assert.Equal(t, fromLexer, fromDriver)
}

func TestParseBoundary(t *testing.T) {
	t.Parallel()

	decls, err := driver.Parse(cleanSource)
	require.NoError(t, err)
	assert.Len(t, decls, 2)

	_, err = driver.Parse(`func {`)
	assert.Error(t, err)
}

func TestCheckBoundary(t *testing.T) {
	t.Parallel()

	diags, err := driver.Check(cleanSource)
	require.NoError(t, err)
	assert.Empty(t, diags)

	diags, err = driver.Check(`var x: String = 42;`)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	var mismatch typecheck.TypeMismatchError
	assert.ErrorAs(t, diags[0], &mismatch)

	_, err = driver.Check(`var x = ;`)
	var unexpected parser.UnexpectedTokenError
	assert.ErrorAs(t, err, &unexpected)
}
