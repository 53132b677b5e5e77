package options_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
top: cpu
flatten: true
nordff: "true"
techlib: /opt/mcpnr
run: coarse:fine
`)

	p, err := options.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "cpu", p.Top)
	assert.True(t, p.Flatten)
	assert.True(t, p.NoRDFF, "weakly typed input accepts quoted booleans")
	assert.Equal(t, []string{
		"-top", "cpu", "-flatten", "-nordff", "-techlib", "/opt/mcpnr", "-run", "coarse:fine",
	}, p.Tokens())
}

func TestLoadProfile_UnknownKey(t *testing.T) {
	path := writeProfile(t, "flaten: true\n")

	_, err := options.LoadProfile(path)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestLoadProfile_Missing(t *testing.T) {
	_, err := options.LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestWithProfile_ExplicitFlagsWin(t *testing.T) {
	p := &options.Profile{Top: "cpu", Run: "begin"}

	cfg, err := options.Parse(options.WithProfile(p, []string{"-top", "alu"}))
	require.NoError(t, err)
	assert.Equal(t, "alu", cfg.Top)
	assert.Equal(t, domain.Range{From: "begin", To: "begin"}, cfg.Range)
}

func TestProfile_NilTokens(t *testing.T) {
	var p *options.Profile
	assert.Nil(t, p.Tokens())
}
