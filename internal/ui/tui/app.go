package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ui/console"
)

// ErrAborted is returned by Run when the user leaves before starting a transfer.
var ErrAborted = errors.New("transfer not started")

type screen int

const (
	screenIntro screen = iota
	screenRunning
	screenDone
)

type model struct {
	theme    Theme
	deps     Deps
	renderer *console.Renderer

	scr      screen
	spinner  spinner.Model
	viewport viewport.Model

	transcript string
	events     int
	last       domain.EventKind

	ch         chan tea.Msg
	cancel     context.CancelFunc
	cancelling bool

	result domain.TransferResult
	err    error
}

// Run shows the interactive simulator and returns the result of the transfer
// the user started.
func Run(deps Deps) (domain.TransferResult, error) {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return domain.TransferResult{}, err
	}

	sm, ok := final.(safeModel)
	if !ok {
		return domain.TransferResult{}, fmt.Errorf("tui: unexpected final model %T", final)
	}
	return sm.m.outcome()
}

func newModel(deps Deps) model {
	r := deps.Renderer
	if r == nil {
		r = console.NewRenderer(console.DefaultTheme())
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		theme:    DefaultTheme(),
		deps:     deps,
		renderer: r,
		scr:      screenIntro,
		spinner:  sp,
		viewport: viewport.New(78, 20),
	}
}

func (m model) outcome() (domain.TransferResult, error) {
	if m.scr != screenDone {
		if m.cancel != nil {
			m.cancel()
			return m.result, context.Canceled
		}
		return domain.TransferResult{}, ErrAborted
	}
	return m.result, m.err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.scr == screenRunning {
				if m.cancelling {
					return m, tea.Quit
				}
				m.cancelling = true
				m.cancel()
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			switch m.scr {
			case screenIntro:
				return m.start()
			case screenDone:
				return m, tea.Quit
			}
		}

		if m.scr != screenIntro {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if m.scr != screenRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.events++
		m.last = msg.ev.Kind
		m.appendTranscript(m.renderer.Render(msg.ev))
		return m, listenRunner(m.ch)

	case transferDoneMsg:
		m.scr = screenDone
		m.result = msg.result
		m.err = msg.err
		if m.cancel != nil {
			m.cancel()
		}
		return m, nil
	}

	return m, nil
}

func (m model) start() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.scr = screenRunning

	ch, listen := startTransferAsync(ctx, m.deps)
	m.ch = ch
	return m, tea.Batch(listen, m.spinner.Tick)
}

func (m *model) appendTranscript(s string) {
	if s == "" {
		return
	}
	m.transcript += s
	m.viewport.SetContent(m.transcript)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("usbsim") + "\n" +
		m.theme.Subtitle.Render("USB file transfer, one byte at a time") + "\n"

	switch m.scr {
	case screenIntro:
		help := m.theme.Help.Render("enter start • q quit")
		return wrap.Render(header + "\n" + m.renderer.Banner(m.deps.Content) + "\n" + help)

	case screenRunning:
		status := m.spinner.View() + " " + progressLine(m.last, m.events)
		help := "↑/↓ scroll • q cancel"
		if m.cancelling {
			status = m.spinner.View() + " cancelling…"
			help = "q quit now"
		}
		return wrap.Render(header + "\n" + status + "\n\n" + m.viewport.View() + "\n" + m.theme.Help.Render(help))

	case screenDone:
		help := m.theme.Help.Render("↑/↓ scroll • enter/q quit")
		return wrap.Render(header + "\n" + m.viewport.View() + "\n" + m.theme.Card.Render(m.summary()) + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func (m model) summary() string {
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(m.theme.Fail.Render("✗ " + userMessage(m.err)))
	case m.result.Outcome:
		b.WriteString(m.theme.OK.Render("✓ TRANSFER SUCCESSFUL"))
	default:
		b.WriteString(m.theme.Fail.Render("✗ TRANSFER FAILED: files do not match"))
	}
	if m.err == nil {
		fmt.Fprintf(&b, "\n\n%d byte(s): %s -> %s", len(m.result.Payload), m.result.SourcePath, m.result.DestinationPath)
	}
	if m.deps.LogPath != "" {
		b.WriteString("\n" + m.theme.Help.Render("log: "+m.deps.LogPath))
	}
	return b.String()
}
