package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

var ErrNotBool = errors.New("expression must evaluate to a bool")

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

// Environment is a CEL environment declaring the row variables.
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates an [Environment]. Extra options are applied after
// the row declarations.
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append([]cel.EnvOption{
		cel.Variable("line", cel.StringType),
		cel.Variable("index", cel.IntType),
		cel.Lib(&lib{}),
	}, opts...)

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return &Environment{env: env}, nil
}

// Compile compiles a boolean row predicate.
func (e *Environment) Compile(expression string) (*Predicate, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) && !ast.OutputType().IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w: got %s", ErrNotBool, ast.OutputType())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return &Predicate{prg: prg, expression: expression}, nil
}

// Predicate is a compiled row predicate. It is safe for concurrent use.
type Predicate struct {
	prg        cel.Program
	expression string
}

// Match evaluates the predicate for one row.
func (p *Predicate) Match(line string, index int) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{
		"line":  line,
		"index": index,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p.expression, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNotBool, out.Value())
	}

	return b, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.expression
}
