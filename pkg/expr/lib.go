package expr

import (
	"strings"
	"unicode"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Math(),
		ext.Strings(),
		ext.Lists(),

		// `fold` lowercases a string and strips diacritics.
		// Example: fold(line).contains("creme").
		cel.Function("fold",
			cel.Overload("fold_string", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(func(s ref.Val) ref.Val {
					v, ok := s.Value().(string)
					if !ok {
						return types.NewErr("fold: invalid string value")
					}

					return types.String(Fold(v))
				}),
			),
		),

		// `fields` splits a string on whitespace.
		// Example: size(fields(line)) > 2.
		cel.Function("fields",
			cel.Overload("fields_string", []*cel.Type{cel.StringType}, cel.ListType(cel.StringType),
				cel.UnaryBinding(func(s ref.Val) ref.Val {
					v, ok := s.Value().(string)
					if !ok {
						return types.NewErr("fields: invalid string value")
					}

					return types.NewStringList(types.DefaultTypeAdapter, strings.Fields(v))
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

// Fold lowercases s and removes combining marks, so that "Café" and "cafe"
// compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}

	return strings.ToLower(out)
}
