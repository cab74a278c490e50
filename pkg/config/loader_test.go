package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vlist/api"
	"github.com/macropower/vlist/api/v1beta1/configs"
	"github.com/macropower/vlist/pkg/config"
	"github.com/macropower/vlist/pkg/scroll"
	"github.com/macropower/vlist/pkg/yaml"
)

const header = "apiVersion: vlist.macropower.dev/v1beta1\nkind: Configuration\n"

func createTempFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func validator(t *testing.T) config.Validator {
	t.Helper()

	v, err := configs.Validator()
	require.NoError(t, err)

	return v
}

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		path func(t *testing.T) string
	}{
		"valid file": {
			path: func(t *testing.T) string {
				t.Helper()

				return createTempFile(t, header)
			},
		},
		"missing file": {
			path: func(t *testing.T) string {
				t.Helper()

				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			err: os.ErrNotExist,
		},
		"directory": {
			path: func(t *testing.T) string {
				t.Helper()

				return t.TempDir()
			},
			err: api.ErrIsDirectory,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := config.NewLoaderFromFile(tc.path(t), configs.New, validator(t))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestLoader_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		wantErr string
	}{
		"valid": {
			input: header + "window:\n  rowHeight: 2\n  rowGap: 1\n",
		},
		"invalid yaml": {
			input:   header + "window: [\n",
			wantErr: "window",
		},
		"schema violation": {
			input:   header + "window:\n  rowHeight: 0\n  rowGap: 1\n",
			wantErr: "[4:3]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.input), configs.New, validator(t))

			err := l.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)

			var yerr *yaml.Error
			require.ErrorAs(t, err, &yerr)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	input := header + `
window:
  rowHeight: 3
  rowGap: 1
threshold:
  percent: 75
source:
  maxRows: 1000
ui:
  lineNumbers: true
  keybinds:
    list:
      copy:
        description: yank
        keys:
          - code: "y"
`

	l := config.NewLoaderFromBytes([]byte(input), configs.New, nil)

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Window.RowHeight)
	assert.Equal(t, 1, cfg.Window.RowGap)
	assert.InDelta(t, 75.0, cfg.Threshold.Percent, 0)
	assert.Equal(t, "150ms", cfg.Threshold.Debounce)
	assert.Equal(t, 1000, cfg.Source.MaxRows)
	assert.Equal(t, 50, cfg.Source.PageSize)
	assert.True(t, *cfg.UI.LineNumbers)
	assert.True(t, cfg.UI.KeyBinds.List.Copy.Match("y"))
	assert.True(t, cfg.UI.KeyBinds.List.Down.Match("j"))
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content *string
		err     error
		want    float64
	}{
		"missing file uses defaults": {
			want: scroll.DefaultPercent,
		},
		"custom threshold": {
			content: ptr(header + "threshold:\n  percent: 60\n"),
			want:    60,
		},
		"bad debounce": {
			content: ptr(header + "threshold:\n  debounce: later\n"),
			err:     configs.ErrInvalidDebounce,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.yaml")
			if tc.content != nil {
				path = createTempFile(t, *tc.content)
			}

			cfg, err := config.LoadConfig(path)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tc.want, cfg.Threshold.Percent, 0)
		})
	}
}

func TestLoadConfig_EmbeddedDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, configs.WriteDefault(path, false))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	want := configs.New()
	assert.Equal(t, want.Window, cfg.Window)
	assert.Equal(t, want.Threshold, cfg.Threshold)
	assert.Equal(t, want.Source, cfg.Source)
}

func ptr[T any](v T) *T {
	return &v
}
