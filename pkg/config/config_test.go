package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/grexie/oversample/pkg/config"
	"github.com/grexie/oversample/pkg/oversample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, oversample.DefaultConfig(), s.Engine)
	assert.Equal(t, []string{"y1", "y2", "y3", "y4"}, s.Targets)
	assert.Equal(t, config.SourceSynthetic, s.Source)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oversample.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  max_iterations: 50
  max_tries: 20
  details: true
targets: [a, b, c]
source: labels.csv
`), 0o644))

	t.Setenv("OVERSAMPLE_MAX_TRIES", "0")
	t.Setenv("OVERSAMPLE_TARGETS", "a, b ,")
	t.Setenv("OVERSAMPLE_SEED", "99")

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, s.Engine.MaxIterations)
	assert.Equal(t, 0, s.Engine.MaxTries)
	assert.Equal(t, uint64(99), s.Engine.Seed)
	assert.True(t, s.Engine.Details)
	assert.True(t, s.Engine.Report)
	assert.Equal(t, []string{"a", "b"}, s.Targets)
	assert.Equal(t, "labels.csv", s.Source)

	b, err := s.Engine.Budget()
	require.NoError(t, err)
	assert.Equal(t, oversample.Unbounded, b.MaxTries)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	t.Setenv("OVERSAMPLE_MAX_ITERATIONS", "many")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "OVERSAMPLE_MAX_ITERATIONS")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	config.Defaults().Write(&buf)
	assert.Contains(t, buf.String(), "OVERSAMPLE_MAX_TRIES")
	assert.Contains(t, buf.String(), "y1,y2,y3,y4")
}
