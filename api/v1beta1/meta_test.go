package v1beta1_test

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vlist/api/v1beta1"
)

func TestTypeMeta(t *testing.T) {
	t.Parallel()

	tm := v1beta1.TypeMeta{
		APIVersion: v1beta1.APIVersion,
		Kind:       "Configuration",
	}

	assert.Equal(t, "vlist.macropower.dev/v1beta1", tm.GetAPIVersion())
	assert.Equal(t, "Configuration", tm.GetKind())
}

func TestExtendSchemaWithEnums(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		properties  []string
		apiVersions []string
		kinds       []string
		wantAPI     []any
		wantKinds   []any
	}{
		"single values": {
			properties:  []string{"apiVersion", "kind"},
			apiVersions: []string{"v1"},
			kinds:       []string{"Kind1"},
			wantAPI:     []any{"v1"},
			wantKinds:   []any{"Kind1"},
		},
		"multiple values": {
			properties:  []string{"apiVersion", "kind"},
			apiVersions: []string{"v1", "v1beta1"},
			kinds:       []string{"Kind1", "Kind2", "Kind3"},
			wantAPI:     []any{"v1", "v1beta1"},
			wantKinds:   []any{"Kind1", "Kind2", "Kind3"},
		},
		"missing kind": {
			properties:  []string{"apiVersion"},
			apiVersions: []string{"v1"},
			kinds:       []string{"Kind1"},
			wantAPI:     []any{"v1"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}
			for _, p := range tc.properties {
				jss.Properties.Set(p, &jsonschema.Schema{Type: "string"})
			}

			v1beta1.ExtendSchemaWithEnums(jss, tc.apiVersions, tc.kinds)

			apiVersion, ok := jss.Properties.Get("apiVersion")
			require.True(t, ok)
			assert.Equal(t, tc.wantAPI, consts(apiVersion))

			kind, ok := jss.Properties.Get("kind")
			if tc.wantKinds == nil {
				assert.False(t, ok)

				return
			}

			require.True(t, ok)
			assert.Equal(t, tc.wantKinds, consts(kind))
		})
	}
}

func consts(s *jsonschema.Schema) []any {
	out := make([]any, 0, len(s.OneOf))
	for _, o := range s.OneOf {
		out = append(out, o.Const)
	}

	return out
}
