package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vlist/api"
)

//nolint:paralleltest // Sets environment variables.
func TestGetConfigPath(t *testing.T) {
	tcs := map[string]struct {
		env  map[string]string
		want string
	}{
		"xdg config home": {
			env:  map[string]string{"XDG_CONFIG_HOME": "/custom/config"},
			want: "/custom/config/vlist/config.yaml",
		},
		"empty xdg config home": {
			env:  map[string]string{"XDG_CONFIG_HOME": "", "HOME": "/test/home"},
			want: "/test/home/.config/vlist/config.yaml",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			assert.Equal(t, tc.want, api.GetConfigPath("config.yaml"))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("kind: Configuration\n"), 0o600))

	tcs := map[string]struct {
		err  error
		path string
		want string
	}{
		"regular file": {path: file, want: "kind: Configuration\n"},
		"directory":    {path: dir, err: api.ErrIsDirectory},
		"missing":      {path: filepath.Join(dir, "missing.yaml"), err: os.ErrNotExist},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := api.ReadFile(tc.path)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	got, err := api.MarshalYAML(map[string]any{
		"window": map[string]any{"rowHeight": 1},
		"keys":   []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "keys:\n  - a\n  - b\nwindow:\n  rowHeight: 1\n", string(got))
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing    string
		force       bool
		want        string
		wantBackups int
	}{
		"new file": {
			want: "default",
		},
		"keeps existing file": {
			existing: "custom",
			want:     "custom",
		},
		"force backs up existing file": {
			existing:    "custom",
			force:       true,
			want:        "default",
			wantBackups: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "nested")
			path := filepath.Join(dir, "config.yaml")

			if tc.existing != "" {
				require.NoError(t, os.MkdirAll(dir, 0o700))
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o600))
			}

			err := api.WriteDefaultFile(path, []byte("default"), tc.force, "configuration")
			require.NoError(t, err)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))

			backups, err := filepath.Glob(filepath.Join(dir, "config.yaml.*.old"))
			require.NoError(t, err)
			assert.Len(t, backups, tc.wantBackups)
		})
	}
}

func TestWriteDefaultFile_Directory(t *testing.T) {
	t.Parallel()

	err := api.WriteDefaultFile(t.TempDir(), []byte("default"), true, "configuration")
	require.ErrorIs(t, err, api.ErrIsDirectory)
}
