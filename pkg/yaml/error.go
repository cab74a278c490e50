package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// NewPathBuilder returns a builder for [yaml.Path] values.
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// ErrorWrapper applies a fixed set of [ErrorOpt]s to every [Error] it wraps.
type ErrorWrapper struct {
	Opts []ErrorOpt
}

func NewErrorWrapper(opts ...ErrorOpt) *ErrorWrapper {
	return &ErrorWrapper{Opts: opts}
}

// Wrap applies the wrapper's options to err if it is an [Error]. Other errors
// are returned unmodified.
func (ew *ErrorWrapper) Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if !errors.As(err, &yamlErr) {
		return err
	}

	for _, opt := range ew.Opts {
		opt(yamlErr)
	}
	for _, opt := range opts {
		opt(yamlErr)
	}

	return yamlErr
}

// Error is a YAML decoding or validation error. It points at the offending
// token, either directly or through a [yaml.Path] resolved against Source.
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// WithColor enables ANSI colors in the annotated source.
func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

func (e Error) Unwrap() error {
	return e.Err
}

func (e Error) Error() string {
	if e.Err == nil {
		return ""
	}

	tk := e.Token
	if tk == nil && e.Path != nil && e.Source != nil {
		tk = tokenFromPath(e.Source, e.Path)
	}

	if tk == nil {
		if e.Path != nil {
			return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
		}

		return e.Err.Error()
	}

	var pp printer.Printer

	return fmt.Sprintf("[%d:%d] %v:\n%s",
		tk.Position.Line, tk.Position.Column, e.Err,
		pp.PrintErrorToken(tk, e.Colored),
	)
}

// tokenFromPath resolves path in source. For mapping values it returns the
// key token, which reads better in error output than the value.
func tokenFromPath(source []byte, path *yaml.Path) *token.Token {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil
	}

	if tk := keyToken(file, path); tk != nil {
		return tk
	}

	return node.GetToken()
}

func keyToken(file *ast.File, path *yaml.Path) *token.Token {
	p := path.String()

	dot := strings.LastIndex(p, ".")
	if dot <= strings.LastIndex(p, "[") {
		return nil
	}

	parentPath, err := yaml.PathString(p[:dot])
	if err != nil {
		return nil
	}

	parent, err := parentPath.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := parent.(*ast.MappingNode)
	if !ok {
		return nil
	}

	for _, v := range mapping.Values {
		if v.Key.String() == p[dot+1:] {
			return v.Key.GetToken()
		}
	}

	return nil
}
