package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	c := &Config{}
	c.defaults()
	assert.Equal(t, []string{"./..."}, c.Patterns)
	assert.Equal(t, DefaultTag, c.Tag)
	assert.Equal(t, DefaultRelTag, c.RelTag)
	assert.Empty(t, c.Dir)
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relmodel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
packages:
  - ./models/...
  - ./auth
tag: col
build_flags:
  - -tags=integration
dir: ./src
`), 0o600))

	c, err := ConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./models/...", "./auth"}, c.Patterns)
	assert.Equal(t, "col", c.Tag)
	// Unset options still default.
	assert.Equal(t, DefaultRelTag, c.RelTag)
	assert.Equal(t, []string{"-tags=integration"}, c.BuildFlags)
	assert.Equal(t, "./src", c.Dir)
}

func TestConfigFromFileErrors(t *testing.T) {
	_, err := ConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages: {"), 0o600))
	_, err = ConfigFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
