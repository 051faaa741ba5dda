package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravlens/internal/render"
	"github.com/san-kum/gravlens/internal/sampler"
	"github.com/san-kum/gravlens/internal/theme"
)

// DefaultScale is the number of pixels per half-block sub-pixel.
const DefaultScale = 7.5

type TickMsg time.Time

type Options struct {
	Title  string
	FPS    float64
	Scale  float64
	Render render.Options
}

// Model replays a sampled loop in the terminal.
type Model struct {
	scene    *sampler.Scene
	frames   []*sampler.Frame
	painter  *render.Painter
	title    string
	fps      float64
	scale    float64
	index    int
	running  bool
	showHelp bool
	peaks    []float64
	active   []float64
}

func NewModel(scene *sampler.Scene, frames []*sampler.Frame, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = sampler.DefaultFPS
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}

	peaks := make([]float64, len(frames))
	active := make([]float64, len(frames))
	for i, f := range frames {
		peaks[i] = f.PeakDisplacement()
		active[i] = float64(f.ActiveSources())
	}

	return Model{
		scene:   scene,
		frames:  frames,
		painter: render.NewPainter(scene, opts.Render),
		title:   opts.Title,
		fps:     opts.FPS,
		scale:   opts.Scale,
		running: true,
		peaks:   peaks,
		active:  active,
	}
}

// Run starts the preview and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "[":
			m.running = false
			m.step(-1)
		case "]":
			m.running = false
			m.step(1)
		case "t":
			m.painter.SetTheme(theme.Next(m.painter.Theme()))
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step(1)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step(dir int) {
	n := len(m.frames)
	if n == 0 {
		return
	}
	m.index = ((m.index+dir)%n + n) % n
}

// Frame returns the frame on screen.
func (m Model) Frame() *sampler.Frame {
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[m.index]
}

func (m Model) Running() bool { return m.running }

func (m Model) Theme() theme.Theme { return m.painter.Theme() }

func (m Model) View() string {
	f := m.Frame()
	if f == nil {
		return "no frames\n"
	}
	th := m.painter.Theme()

	w, h := m.painter.Size()
	surface := NewTermSurface(w, h, m.scale)
	m.painter.Paint(surface, f)
	canvasView := canvasStyle.Render(surface.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(GradientText(strings.ToUpper(m.title), th.Accent, th.AnomalyAccent)) + "\n")

	if m.running {
		s.WriteString(StatusRunning.Render("PLAYING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(k, v string) {
		s.WriteString(MetricLabel.Render(k) + MetricValue.Render(v) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs / %.0fs", f.Time, m.scene.Duration))
	row("Frame", fmt.Sprintf("%d/%d", m.index+1, len(m.frames)))
	row("Mode", string(m.scene.Mode))
	row("Theme", th.Name)
	row("Anomalies", fmt.Sprintf("%d (%d active)", len(m.scene.Sources), f.ActiveSources()))
	row("Peak warp", fmt.Sprintf("%.2fpx", f.PeakDisplacement()))
	row("Interference", ProgressBar(f.Interference, 16, th.PeakMoment))
	row("Activity", Sparkline(m.active, 24))

	if len(m.peaks) > 1 {
		chart := asciigraph.Plot(m.peaks,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Caption("peak displacement (px)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(KeyHint.Render("SP:Pause [ ]:Step T:Theme ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔════════════════════════════════════╗
║         KEYBOARD SHORTCUTS         ║
╠════════════════════════════════════╣
║  Space   - Pause/Resume playback   ║
║  [       - Step back one frame     ║
║  ]       - Step forward one frame  ║
║  T       - Cycle themes            ║
║  ?       - Toggle this help        ║
║  Q       - Quit                    ║
╚════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
