package widget

import (
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/garrettladley/lumen/internal/gradient"
	"github.com/garrettladley/lumen/internal/messages"
	"github.com/garrettladley/lumen/internal/palette"
	"github.com/garrettladley/lumen/internal/rotation"
	"github.com/garrettladley/lumen/internal/tui/components/backdrop"
	"github.com/garrettladley/lumen/internal/tui/components/button"
	"github.com/garrettladley/lumen/internal/tui/components/canvas"
	"github.com/garrettladley/lumen/internal/tui/components/footer"
	"github.com/garrettladley/lumen/internal/tui/components/info"
	"github.com/garrettladley/lumen/internal/tui/components/message"
	"github.com/garrettladley/lumen/internal/tui/components/sunarc"
	"github.com/garrettladley/lumen/internal/tui/theme"
)

const (
	ElapsedLabel = "Tempo dall'ultimo bisogno generato:"
	NoticePrefix = "Copia: "

	PulseFor = 200 * time.Millisecond

	maxMessageLines = 3
	maxMessageWidth = 60
	maxBubbleWidth  = 48
)

var (
	white  = palette.FromColor(theme.ColorWhite)
	accent = palette.FromColor(theme.ColorAccent)
	pulse  = palette.FromColor(theme.ColorPulse)
	bubble = palette.FromColor(theme.ColorBubble)
	notice = palette.FromColor(theme.ColorNotice)
)

// Pulse highlights the clicked cell for PulseFor.
type Pulse struct {
	X, Y int
	At   time.Time
}

func (p Pulse) Active(now time.Time) bool {
	return !p.At.IsZero() && now.Sub(p.At) < PulseFor
}

type State struct {
	Messages []string
	Rotation rotation.State
	Rotated  bool // a rotation state has been received

	Message message.Message
	Colors  palette.Colors
	Angle   float64
	Sample  gradient.Sample

	Share    button.Share
	Notice   string
	Info     info.Bubble
	InfoText string
	Pulse    Pulse
}

// CurrentText is the message the rotation points at, or "" before the first
// rotation result.
func (s State) CurrentText() string {
	if !s.Rotated {
		return ""
	}
	return messages.At(s.Messages, s.Rotation.Index)
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Regions is where every element sits for a given viewport.
type Regions struct {
	Arc          Rect
	ShowArc      bool
	Info         Rect
	Bubble       Rect
	MessageEnd   int // last message row; lines stack upward from it
	MessageWidth int
	Counter      int
	ElapsedLabel int // -1 when there is no room
	Elapsed      int
	Share        Rect
	Notice       int
	Footer       int
}

func Layout(width, height int) Regions {
	mid := height / 2
	cols, rows := sunarc.Size()

	r := Regions{
		Arc:          Rect{X: (width - cols) / 2, Y: 1, W: cols, H: rows},
		ShowArc:      height >= 20 && width >= cols+8,
		Info:         Rect{X: 1, Y: 1, W: 3, H: 1},
		Bubble:       Rect{X: 5, Y: 1, W: min(width-7, maxBubbleWidth), H: max(height-4, 0)},
		MessageEnd:   mid,
		MessageWidth: max(min(width-8, maxMessageWidth), 1),
		Notice:       height - 3,
		Footer:       height - 1,
	}

	shareRow := mid + 7
	if height < 18 {
		r.Counter = mid + 1
		r.ElapsedLabel = -1
		r.Elapsed = mid + 2
		shareRow = mid + 3
	} else {
		r.Counter = mid + 2
		r.ElapsedLabel = mid + 4
		r.Elapsed = mid + 5
	}
	r.Share = Rect{X: (width - button.Width()) / 2, Y: shareRow, W: button.Width(), H: 1}

	return r
}

func View(s State, now time.Time, width, height int) string {
	c := canvas.New(width, height)
	r := Layout(width, height)

	backdrop.Paint(c, s.Colors, s.Angle)

	if r.ShowArc {
		sunarc.New(s.Sample.Times, s.Sample.Hour).Paint(c, r.Arc.X, r.Arc.Y)
	}

	paintMessage(c, s.Message.Frame(now), r)

	if s.Rotated && len(s.Messages) > 0 {
		c.Center(r.Counter, messages.Counter(s.Rotation.Index, len(s.Messages)), white, true)
		if r.ElapsedLabel >= 0 {
			c.Center(r.ElapsedLabel, ElapsedLabel, white, false)
		}
		c.Center(r.Elapsed, rotation.FormatElapsed(s.Rotation.Elapsed(now)), white, false)

		fg := white
		if s.Share.Showing(now) {
			fg = accent
		}
		c.Text(r.Share.X, r.Share.Y, s.Share.Text(now), fg, true)
	}

	c.Text(r.Info.X+1, r.Info.Y, info.Glyph, white, true)
	if s.Info.Open() {
		paintBubble(c, s.InfoText, s.Info.Popping(now), r.Bubble)
	}

	if s.Notice != "" {
		paintNotice(c, s.Notice, r.Notice)
	}

	footer.New(footer.Hints).Paint(c, r.Footer)

	if s.Pulse.Active(now) {
		paintPulse(c, s.Pulse.X, s.Pulse.Y)
	}

	return c.Render()
}

func paintMessage(c *canvas.Canvas, f message.Frame, r Regions) {
	if f.Text == "" || f.Opacity <= 0 {
		return
	}

	lines := info.Wrap(f.Text, r.MessageWidth)
	if len(lines) > maxMessageLines {
		lines = lines[:maxMessageLines]
		last := lines[maxMessageLines-1]
		lines[maxMessageLines-1] = runewidth.Truncate(last+" …", r.MessageWidth, "…")
	}

	base := palette.Interpolate(white, accent, f.Pop)
	top := r.MessageEnd - len(lines) + 1
	for i, line := range lines {
		y := top + i
		bg := c.At(c.Width()/2, y).Bg
		fg := palette.Interpolate(bg, base, f.Opacity)
		c.Center(y, line, fg, true)
	}
}

func paintBubble(c *canvas.Canvas, text string, popping bool, area Rect) {
	lines := info.Lines(text, area.W)
	if len(lines) > area.H {
		lines = lines[:area.H]
	}

	fg := white
	if popping {
		fg = accent
	}
	for i, line := range lines {
		y := area.Y + i
		for x := range runewidth.StringWidth(line) {
			c.Tint(area.X+x, y, func(palette.RGB) palette.RGB { return bubble })
		}
		c.Text(area.X, y, line, fg, false)
	}
}

func paintNotice(c *canvas.Canvas, text string, y int) {
	line := runewidth.Truncate(" "+NoticePrefix+text+" ", c.Width()-2, "… ")
	x, w := c.Center(y, line, white, true)
	for i := range w {
		c.Tint(x+i, y, func(palette.RGB) palette.RGB { return notice })
	}
}

// paintPulse brightens the clicked cell and, more faintly, its neighbours.
func paintPulse(c *canvas.Canvas, x, y int) {
	c.Tint(x, y, func(bg palette.RGB) palette.RGB { return palette.Interpolate(bg, pulse, 0.8) })
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		c.Tint(x+d[0], y+d[1], func(bg palette.RGB) palette.RGB { return palette.Interpolate(bg, pulse, 0.35) })
	}
}
