package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/share"
	"github.com/garrettladley/lumen/internal/tui/components/button"
	"github.com/garrettladley/lumen/internal/tui/components/info"
	"github.com/garrettladley/lumen/internal/tui/page/splash"
	"github.com/garrettladley/lumen/internal/tui/page/widget"
	"github.com/garrettladley/lumen/internal/tui/theme"
	"github.com/garrettladley/lumen/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

const windowTitle = "lumen"

type page uint

const (
	splashPage page = iota
	widgetPage
)

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	deps           Deps
	now            time.Time

	// animator and oscillator are only touched from Update.
	animator   gradient.Animator
	oscillator *gradient.Oscillator
	framing    bool

	state widget.State
}

func New(deps Deps) Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	var (
		now  = deps.Now()
		anim = deps.Config.Animation
	)

	return Model{
		page:       splashPage,
		theme:      theme.New(),
		deps:       deps,
		now:        now,
		oscillator: gradient.NewOscillator(anim.Amplitude, anim.Period, now),
		framing:    true,
		state: widget.State{
			Colors:   palette.Placeholder,
			InfoText: deps.Config.InfoText,
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splash.Duration, func(time.Time) tea.Msg {
			return splash.TickMsg{}
		}),
		loadMessagesCmd(m.deps.Ctx, m.deps.Messages, m.deps.Logger),
		gradientCmd(m.now, m.deps.Config.Latitude),
		frameCmd(m.deps.Config.Animation.FrameInterval),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if frame, ok := msg.(FrameMsg); ok {
		m.now = frame.Time
	} else {
		m.now = m.deps.Now()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tea.MouseClickMsg:
		return m, m.handleClick(msg.X, msg.Y, msg.Button)

	// terminal focus stands in for page visibility
	case tea.BlurMsg:
		m.oscillator.Pause()

	case tea.FocusMsg:
		if m.oscillator.Resume() && !m.framing {
			m.framing = true
			return m, frameCmd(m.deps.Config.Animation.FrameInterval)
		}

	// splash timer expired - transition to the widget
	case splash.TickMsg:
		m.page = widgetPage

	case MessagesLoadedMsg:
		m.state.Messages = msg.List
		return m, rotationCmd(m.deps.Ctx, m.deps.Rotation, len(msg.List))

	case RotationDueMsg:
		return m, rotationCmd(m.deps.Ctx, m.deps.Rotation, len(m.state.Messages))

	case RotationMsg:
		m.handleRotation(msg)
		return m, scheduleRotationCmd(m.deps.Config.Rotation.Tick)

	case GradientMsg:
		m.handleGradient(msg)
		return m, scheduleGradientCmd(m.deps.Config.GradientRefresh, m.deps.Config.Latitude)

	case FrameMsg:
		if !m.oscillator.Running() {
			m.framing = false
			return m, nil
		}
		m.state.Colors, _ = m.animator.Step(msg.Time)
		m.state.Angle = m.oscillator.Angle(msg.Time)
		return m, frameCmd(m.deps.Config.Animation.FrameInterval)

	case ShareMsg:
		return m, m.handleShare(msg)

	case ExpiredMsg:
		// nothing to update; the redraw drops the lapsed affordance
	}

	return m, nil
}

func (m *Model) handleRotation(msg RotationMsg) {
	if msg.Err != nil {
		m.deps.Logger.WarnContext(m.deps.Ctx, "rotation tick failed", xslog.Error(msg.Err))
		return
	}

	prev := m.state.Rotation
	m.state.Rotation = msg.State
	m.state.Rotated = true
	m.state.Message = m.state.Message.Set(m.state.CurrentText(), m.now)

	if prev.Index != msg.State.Index || prev.LastChangeAt.IsZero() {
		m.deps.Logger.DebugContext(m.deps.Ctx, "message rotated",
			xslog.RotationGroup(msg.State.Index, len(m.state.Messages), msg.State.NextChangeAt),
		)
	}
}

func (m *Model) handleGradient(msg GradientMsg) {
	m.state.Sample = msg.Sample
	m.animator.Retarget(msg.Sample.Colors, m.now, m.deps.Config.Animation.Transition)
	m.state.Colors, _ = m.animator.Step(m.now)

	m.deps.Logger.DebugContext(m.deps.Ctx, "gradient target updated",
		xslog.Phase(msg.Sample.Phase.String()),
		xslog.Latitude(m.deps.Config.Latitude),
	)
}

func (m *Model) handleShare(msg ShareMsg) tea.Cmd {
	switch {
	case msg.Err == nil && msg.Strategy != "":
		m.state.Share = m.state.Share.Copied(m.now)
		m.deps.Logger.DebugContext(m.deps.Ctx, "shared message", xslog.Strategy(msg.Strategy))
		return expireCmd(button.CopiedFor)
	case errors.Is(msg.Err, share.ErrUnshared):
		m.state.Notice = msg.Text
	case msg.Err != nil:
		m.deps.Logger.WarnContext(m.deps.Ctx, "share failed", xslog.Error(msg.Err))
	}
	return nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	}

	// the notice is modal: any key dismisses it
	if m.state.Notice != "" {
		m.state.Notice = ""
		return nil
	}

	switch key {
	case "s":
		return m.share()
	case "i", "enter", "space":
		m.state.Info = m.state.Info.Toggle(m.now)
		return expireCmd(info.PopFor)
	case "esc":
		m.state.Info = m.state.Info.Close()
	}
	return nil
}

func (m *Model) handleClick(x, y int, b tea.MouseButton) tea.Cmd {
	if b != tea.MouseLeft {
		return nil
	}
	if m.state.Notice != "" {
		m.state.Notice = ""
		return nil
	}

	regions := widget.Layout(m.viewportWidth, m.viewportHeight)

	if m.page == widgetPage && regions.Info.Contains(x, y) {
		m.state.Info = m.state.Info.Toggle(m.now)
		return expireCmd(info.PopFor)
	}
	m.state.Info = m.state.Info.Close()

	m.state.Pulse = widget.Pulse{X: x, Y: y, At: m.now}
	cmds := []tea.Cmd{expireCmd(widget.PulseFor)}
	if m.deps.Audio != nil {
		cmds = append(cmds, playCmd(m.deps.Ctx, m.deps.Audio))
	}
	if m.page == widgetPage && regions.Share.Contains(x, y) {
		cmds = append(cmds, m.share())
	}
	return tea.Batch(cmds...)
}

func (m *Model) share() tea.Cmd {
	text := m.state.CurrentText()
	if text == "" || m.deps.Share == nil {
		return nil
	}
	return shareCmd(m.deps.Ctx, m.deps.Share, text)
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true
	view.ReportFocus = true
	view.MouseMode = tea.MouseModeCellMotion
	view.WindowTitle = windowTitle
	view.BackgroundColor = m.theme.Background()

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = splash.View(m.theme, m.viewportWidth, m.viewportHeight)
	case widgetPage:
		content = widget.View(m.state, m.now, m.viewportWidth, m.viewportHeight)
	}

	view.SetContent(content)
	return view
}
