package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	for _, raw := range []string{"0", "-1", "two"} {
		_, err := parseSteps([]string{raw})
		assert.Error(t, err, raw)
	}
}

func TestParseVersion(t *testing.T) {
	version, err := parseVersion("1")
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	_, err = parseVersion("-5")
	assert.Error(t, err)
}

func TestResolveMigrationsDir_PrefersOverride(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	require.NoError(t, err)

	want, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MIGRATION_FLAG", "Yes")
	assert.True(t, envBool("MIGRATION_FLAG"))

	t.Setenv("MIGRATION_FLAG", "off")
	assert.False(t, envBool("MIGRATION_FLAG"))
}
