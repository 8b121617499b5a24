package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/eqsteps/pkg/errors"
	"github.com/matzehuels/eqsteps/pkg/pipeline"
	"github.com/matzehuels/eqsteps/pkg/playback"
	"github.com/matzehuels/eqsteps/pkg/render"
	"github.com/matzehuels/eqsteps/pkg/render/sink"
)

const (
	// cellWidth and cellHeight map terminal cells to layout units.
	cellWidth  = 10.0
	cellHeight = 20.0

	// playerChrome is the number of terminal rows used by the header and
	// help lines.
	playerChrome = 5
)

var (
	playerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	playerStepStyle   = lipgloss.NewStyle().Foreground(colorText)
	playerBusyStyle   = lipgloss.NewStyle().Foreground(colorBusy)
	playerHelpStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	playerStatusStyle = lipgloss.NewStyle().Foreground(colorLabel).Italic(true)
)

// playCommand creates the play command, an interactive terminal player.
func (c *CLI) playCommand() *cobra.Command {
	var (
		noColor bool
		caption bool
	)

	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Play a derivation interactively in the terminal",
		Long: `Play animates the derivation in the terminal.

Keys:
  →, l, space, n   next step
  ←, h, p          previous step
  r                restart
  s                finish the running transition
  0-9              go to step
  q, esc           quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.pipelineOptions()
			opts.NoColor = noColor
			opts.Caption = caption

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			doc, err := runner.Load(ctx, args[0], opts)
			if err != nil {
				return err
			}
			m, err := newPlayer(doc, opts, time.Now())
			if err != nil {
				return err
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&caption, "caption", true, "show step captions")

	return cmd
}

// =============================================================================
// Player model
// =============================================================================

type frameMsg time.Time

// player is the bubbletea model driving a playback controller. The
// controller redraws into buf on every tick; View prints its last scene.
type player struct {
	ctrl     *playback.Controller
	buf      *render.Buffer
	interval time.Duration
	text     []sink.TextOption
	name     string
	status   string
	rows     int
}

func newPlayer(doc *pipeline.Document, opts pipeline.Options, now time.Time) (player, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return player{}, err
	}
	buf := render.NewBuffer()
	ctrl, err := pipeline.NewController(doc, buf, opts)
	if err != nil {
		return player{}, err
	}
	if _, err := ctrl.Start(now); err != nil {
		return player{}, err
	}
	ctrl.Tick(now)

	text := []sink.TextOption{sink.WithCellSize(cellWidth, cellHeight)}
	if opts.NoColor {
		text = append(text, sink.WithoutColor())
	}
	if opts.Caption {
		text = append(text, sink.WithTextCaption())
	}
	return player{
		ctrl:     ctrl,
		buf:      buf,
		interval: time.Second / time.Duration(opts.FPS),
		text:     text,
		name:     doc.Path,
	}, nil
}

func (m player) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m player) Init() tea.Cmd {
	return m.tick()
}

func (m player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String(), time.Now())
	case tea.WindowSizeMsg:
		m.rows = msg.Height - playerChrome
		if err := m.ctrl.Resize(float64(msg.Width) * cellWidth); err != nil {
			m.status = errors.UserMessage(err)
		}
		return m, nil
	case frameMsg:
		m.ctrl.Tick(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m player) handleKey(key string, now time.Time) (tea.Model, tea.Cmd) {
	var (
		accepted bool
		err      error
	)
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", " ", "n":
		accepted, err = m.ctrl.Next(now)
	case "left", "h", "p":
		accepted, err = m.ctrl.Prev(now)
	case "r":
		accepted, err = m.ctrl.Restart(now)
	case "s":
		m.ctrl.Skip()
		return m, nil
	default:
		if len(key) != 1 || key[0] < '0' || key[0] > '9' {
			return m, nil
		}
		accepted, err = m.ctrl.GoTo(int(key[0]-'0'), now)
	}

	switch {
	case err != nil:
		m.status = errors.UserMessage(err)
	case !accepted && m.ctrl.Busy():
		m.status = "transition running"
	case !accepted:
		m.status = "no such step"
	default:
		m.status = ""
		m.ctrl.Tick(now)
	}
	return m, nil
}

func (m player) View() string {
	var b strings.Builder

	scene := m.buf.Scene()
	b.WriteString(playerTitleStyle.Render(m.name))
	b.WriteString("  ")
	b.WriteString(playerStepStyle.Render(fmt.Sprintf("step %d/%d", m.ctrl.Step()+1, m.ctrl.Steps())))
	if m.ctrl.Busy() {
		b.WriteString("  " + playerBusyStyle.Render("●"))
	}
	b.WriteString("\n\n")

	body := sink.RenderText(scene, m.text...)
	if m.rows > 0 {
		lines := strings.Split(body, "\n")
		if len(lines) > m.rows {
			body = strings.Join(lines[:m.rows], "\n")
		}
	}
	b.WriteString(body)
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(playerStatusStyle.Render(m.status) + "  ")
	}
	b.WriteString(playerHelpStyle.Render("←/→ step  r restart  s skip  0-9 go to  q quit"))
	return b.String()
}
