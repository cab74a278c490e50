package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/vlist/pkg/version"
)

func TestGetVersion(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, version.GetVersion())
	assert.Contains(t, version.Summary(), version.GoVersion)
}
