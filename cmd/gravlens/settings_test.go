package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse registers the CLI flags on a fresh tree and parses args against
// the render command.
func parse(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"render"})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(args))
	t.Cleanup(func() {
		preset, configFile, token = "", "", ""
	})
	return cmd
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(parse(t, "--demo"))
	require.NoError(t, err)

	assert.True(t, cfg.Demo)
	assert.Equal(t, "github", cfg.Theme)
	assert.Equal(t, "gravlens.gif", cfg.Output)
	assert.NoError(t, cfg.Validate())
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\nlens:\n  strength: 0.7\n  duration: 6\n"), 0644))

	cmd := parse(t, "--preset", "badge", "--config", path, "--duration", "3", "-u", "octocat")
	cfg, err := resolveConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "legacy", cfg.Lens.Mode, "from preset")
	assert.Equal(t, "light", cfg.Theme, "config file over preset")
	assert.Equal(t, 0.7, cfg.Lens.Strength, "config file over preset")
	assert.Equal(t, 3.0, cfg.Lens.Duration, "flag over config file")
	assert.Equal(t, "octocat", cfg.User)
	assert.Equal(t, "gravlens.svg", cfg.Output, "extension follows the preset format")
}

func TestResolveConfig_UnknownPreset(t *testing.T) {
	_, err := resolveConfig(parse(t, "--preset", "wobbly"))
	assert.ErrorContains(t, err, "unknown preset")
}

func TestResolveConfig_FormatRenamesOutput(t *testing.T) {
	cfg, err := resolveConfig(parse(t, "--demo", "--format", "svg"))
	require.NoError(t, err)
	assert.Equal(t, "gravlens.svg", cfg.Output)

	cfg, err = resolveConfig(parse(t, "--demo", "--format", "svg", "-o", "badge.out"))
	require.NoError(t, err)
	assert.Equal(t, "badge.out", cfg.Output)
}

func TestGithubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	parse(t)
	assert.Equal(t, "from-env", githubToken())

	parse(t, "--token", "from-flag")
	assert.Equal(t, "from-flag", githubToken())
}
