package batch

import (
	"context"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/gravlens/internal/config"
	"github.com/san-kum/gravlens/internal/demo"
	"github.com/san-kum/gravlens/internal/grid"
)

type stubSource struct {
	users []string
	err   error
}

func (s *stubSource) Days(_ context.Context, user string) ([]grid.Day, error) {
	s.users = append(s.users, user)
	return demo.Generate(3), s.err
}

func quickConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.FPS = 4
	cfg.Lens.Duration = 1
	return cfg
}

const scenarioYAML = `
name: smoke
jobs:
  - name: demo gif
    demo: true
    seed: 9
    output: demo.gif
  - name: user badge
    user: octocat
    format: svg
    theme: light
    strength: 0.8
    output: badges/octocat.svg
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "smoke", s.Name)
	require.Len(t, s.Jobs, 2)
	assert.True(t, s.Jobs[0].Demo)
	assert.Equal(t, uint32(9), s.Jobs[0].Seed)
	assert.Equal(t, "svg", s.Jobs[1].Format)
	assert.Equal(t, 0.8, s.Jobs[1].Strength)
}

func TestLoadScenario_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: nothing\n"), 0644))

	_, err := LoadScenario(path)
	assert.ErrorIs(t, err, ErrEmptyScenario)
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0644))
	s, err := LoadScenario(path)
	require.NoError(t, err)

	dir := t.TempDir()
	src := &stubSource{}
	results, err := Run(context.Background(), s, Deps{Source: src, Config: quickConfig(), Dir: dir})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, []string{"octocat"}, src.users)

	f, err := os.Open(filepath.Join(dir, "demo.gif"))
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)

	svg, err := os.ReadFile(results[1].Output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(svg), "<svg"))
	assert.Equal(t, int64(len(svg)), results[1].Bytes)
	assert.Equal(t, 365, results[1].Cells)
	assert.Positive(t, results[1].Anomalies)
}

func TestRun_WrapsJobIndex(t *testing.T) {
	s := &Scenario{Name: "broken", Jobs: []Job{
		{Name: "ok", Demo: true, Output: "a.svg", Format: "svg"},
		{Name: "bad theme", Demo: true, Theme: "neon", Output: "b.gif"},
	}}

	results, err := Run(context.Background(), s, Deps{Config: quickConfig(), Dir: t.TempDir()})
	require.Error(t, err)
	assert.Len(t, results, 1)
	assert.Contains(t, err.Error(), "job 2 (bad theme)")
	assert.ErrorIs(t, err, config.ErrUnknownTheme)
}

func TestRun_SourceErrors(t *testing.T) {
	boom := errors.New("boom")
	s := &Scenario{Jobs: []Job{{Name: "user", User: "octocat", Output: "u.svg", Format: "svg"}}}

	_, err := Run(context.Background(), s, Deps{Source: &stubSource{err: boom}, Config: quickConfig(), Dir: t.TempDir()})
	assert.ErrorIs(t, err, boom)

	_, err = Run(context.Background(), s, Deps{Config: quickConfig(), Dir: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scenario{Jobs: []Job{{Name: "demo", Demo: true, Output: "d.svg"}}}
	results, err := Run(ctx, s, Deps{Config: quickConfig(), Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestSweep_Jobs(t *testing.T) {
	sw := Sweep{
		Base:  Job{Name: "lens", Demo: true, Output: "out/lens.svg"},
		Param: "strength",
		Min:   0.2,
		Max:   1.0,
		Steps: 5,
	}
	jobs, err := sw.Jobs()
	require.NoError(t, err)
	require.Len(t, jobs, 5)

	assert.InDelta(t, 0.2, jobs[0].Strength, 1e-12)
	assert.InDelta(t, 0.6, jobs[2].Strength, 1e-12)
	assert.InDelta(t, 1.0, jobs[4].Strength, 1e-12)
	assert.Equal(t, "out/lens-01.svg", jobs[0].Output)
	assert.Equal(t, "out/lens-05.svg", jobs[4].Output)
	assert.True(t, jobs[3].Demo)
}

func TestSweep_Invalid(t *testing.T) {
	tests := []struct {
		name string
		s    Sweep
		want error
	}{
		{"no steps", Sweep{Base: Job{Output: "a.gif"}, Param: "strength"}, ErrInvalidSweep},
		{"unknown param", Sweep{Base: Job{Output: "a.gif"}, Param: "gravity", Steps: 2}, ErrInvalidSweep},
		{"no output", Sweep{Param: "strength", Steps: 2}, ErrNoOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.s.Jobs()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScenario_Expand(t *testing.T) {
	s := &Scenario{
		Jobs:   []Job{{Name: "one", Demo: true, Output: "one.gif"}},
		Sweeps: []Sweep{{Base: Job{Name: "d", Demo: true, Output: "d.gif"}, Param: "duration", Min: 2, Max: 4, Steps: 3}},
	}
	jobs, err := s.Expand()
	require.NoError(t, err)
	require.Len(t, jobs, 4)
	assert.Equal(t, "one", jobs[0].Name)
	assert.Equal(t, 3.0, jobs[2].Duration)
}
