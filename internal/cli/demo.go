package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/geom"
	sceneio "github.com/matzehuels/dockyard/pkg/io"
	"github.com/matzehuels/dockyard/pkg/layout"
	"github.com/matzehuels/dockyard/pkg/render"
)

// Panel geometry in terminal cells.
var demoMetrics = render.Metrics{CellWidth: 20, CellHeight: 6, Unit: 1}

// demoTitleBar is one terminal row.
const demoTitleBar = 1

// demoScene is used when no scene file is given.
var demoScene = &sceneio.Document{
	Toggles: layout.Toggles{Spacing: 1},
	Items: []sceneio.Item{
		{Text: "editor", X: 0, Y: 0, W: 2, H: 2},
		{Text: "files", X: 2, Y: 0},
		{Text: "outline", X: 2, Y: 1},
		{Text: "terminal", X: 0, Y: 2, W: 3},
	},
}

// demoCommand starts the interactive drag-to-dock playground.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [scene]",
		Short: "Drag panels around a terminal surface and watch the drop zones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := demoScene
			if len(args) == 1 {
				var err error
				if doc, err = sceneio.ImportScene(args[0]); err != nil {
					return err
				}
			}
			m := newDemoModel(doc)
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return err
			}
			for _, line := range m.drops {
				printInfo("%s", line)
			}
			return nil
		},
	}
}

// =============================================================================
// Key bindings
// =============================================================================

type demoKeys struct {
	Up, Down, Left, Right key.Binding
	Grab, Drop, Cancel    key.Binding
	Help, Quit            key.Binding
}

func newDemoKeys() demoKeys {
	return demoKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Grab:   key.NewBinding(key.WithKeys(" ", "g"), key.WithHelp("space", "grab panel")),
		Drop:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("⏎", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k demoKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Drop, k.Cancel, k.Help, k.Quit}
}

func (k demoKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Grab, k.Drop, k.Cancel},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// Model
// =============================================================================

type demoPanel struct {
	id    string
	label string
	box   geom.Rect
}

type demoModel struct {
	panels []demoPanel
	drag   *dock.Drag
	keys   demoKeys
	help   help.Model

	pointer   geom.Point
	anchor    dock.Anchor
	hasAnchor bool

	status        string
	drops         []string
	width, height int
}

func newDemoModel(doc *sceneio.Document) *demoModel {
	s := layout.New(nil, nil)
	sceneio.Build(doc, s)

	m := &demoModel{
		drag:   dock.NewDrag(dock.NewResolver(demoTitleBar)),
		keys:   newDemoKeys(),
		help:   help.New(),
		width:  80,
		height: 24,
		status: "Move the pointer onto a panel and press space to grab it",
	}
	for _, b := range render.Measure(s.Scene(), demoMetrics).Boxes {
		label, _, _ := strings.Cut(b.Cell.View(), "\n")
		m.panels = append(m.panels, demoPanel{
			id:    fmt.Sprintf("r%dc%d", b.Row, b.Col),
			label: label,
			box:   b.Rect,
		})
	}
	if len(m.panels) > 0 {
		first := m.panels[0].box
		m.pointer = geom.Pt(float64(int(first.CenterX())), float64(int(first.CenterY())))
	}
	return m
}

func (m *demoModel) Init() tea.Cmd { return nil }

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.drag.State() == dock.StateDragging {
				_ = m.drag.Cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.moveBy(0, -1)
		case key.Matches(msg, m.keys.Down):
			m.moveBy(0, 1)
		case key.Matches(msg, m.keys.Left):
			m.moveBy(-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.moveBy(1, 0)
		case key.Matches(msg, m.keys.Grab):
			m.grab()
		case key.Matches(msg, m.keys.Drop):
			m.drop()
		case key.Matches(msg, m.keys.Cancel):
			if err := m.drag.Cancel(); err == nil {
				m.hasAnchor = false
				m.status = "Drag cancelled"
			}
		}
	}
	return m, nil
}

func (m *demoModel) moveBy(dx, dy float64) {
	m.pointer = geom.Pt(
		min(max(m.pointer.X+dx, 0), float64(m.width-1)),
		min(max(m.pointer.Y+dy, 0), float64(m.height-1)),
	)
	m.track()
}

// track re-resolves the pointer while a drag is in progress.
func (m *demoModel) track() {
	if m.drag.State() != dock.StateDragging {
		return
	}
	a, ok, err := m.drag.Move(m.pointer, m.candidates())
	if err != nil {
		m.status = err.Error()
		return
	}
	m.anchor, m.hasAnchor = a, ok
	if ok {
		m.status = fmt.Sprintf("%s %s %s", m.labelOf(m.drag.Source()), iconArrow, m.describe(a))
	} else {
		m.status = fmt.Sprintf("%s: no zone here", m.labelOf(m.drag.Source()))
	}
}

func (m *demoModel) grab() {
	p, ok := m.panelAt(m.pointer)
	if !ok {
		m.status = "Nothing to grab here"
		return
	}
	if err := m.drag.Begin(p.id); err != nil {
		m.status = err.Error()
		return
	}
	m.track()
}

func (m *demoModel) drop() {
	source := m.labelOf(m.drag.Source())
	d, ok, err := m.drag.Drop()
	m.hasAnchor = false
	switch {
	case err != nil:
		m.status = "Grab a panel first"
	case !ok:
		m.status = fmt.Sprintf("%s: no zone, drag cancelled", source)
	default:
		m.status = fmt.Sprintf("Dropped %s %s %s", source, iconArrow, m.describe(d.Anchor))
		m.drops = append(m.drops, m.status)
	}
}

func (m *demoModel) describe(a dock.Anchor) string {
	if a.Self {
		return fmt.Sprintf("reorder tabs of %s", m.labelOf(a.Target))
	}
	if a.Zone == dock.ZoneStacked {
		return fmt.Sprintf("tab in %s", m.labelOf(a.Target))
	}
	return fmt.Sprintf("%s of %s", a.Zone, m.labelOf(a.Target))
}

func (m *demoModel) candidates() []dock.Candidate {
	out := make([]dock.Candidate, len(m.panels))
	for i, p := range m.panels {
		out[i] = dock.Candidate{
			Target:      dock.Target{ID: p.id, Box: p.box},
			CanSplit:    true,
			HasTitleBar: true,
		}
	}
	return out
}

func (m *demoModel) panelAt(pt geom.Point) (demoPanel, bool) {
	for _, p := range m.panels {
		if p.box.Contains(pt) {
			return p, true
		}
	}
	return demoPanel{}, false
}

// preview is the anchor rectangle as drawn. The tab strip anchor sits above
// the frame in host units, so the terminal shades the title row instead.
func (m *demoModel) preview() geom.Rect {
	if m.anchor.Zone != dock.ZoneStacked {
		return m.anchor.Rect()
	}
	for _, p := range m.panels {
		if p.id == m.anchor.Target {
			return geom.R(p.box.X, p.box.Y, p.box.W, demoTitleBar)
		}
	}
	return m.anchor.Rect()
}

func (m *demoModel) labelOf(id string) string {
	for _, p := range m.panels {
		if p.id == id {
			return p.label
		}
	}
	return id
}

// =============================================================================
// View
// =============================================================================

type demoInk uint8

const (
	inkPlain demoInk = iota
	inkSource
	inkAnchor
	inkPointer
)

var demoInks = map[demoInk]lipgloss.Style{
	inkPlain:   lipgloss.NewStyle(),
	inkSource:  StyleDim,
	inkAnchor:  styleAnchor,
	inkPointer: lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
}

type demoCanvas struct {
	w, h  int
	runes [][]rune
	inks  [][]demoInk
}

func newDemoCanvas(w, h int) *demoCanvas {
	cv := &demoCanvas{w: max(w, 1), h: max(h, 1)}
	cv.runes = make([][]rune, cv.h)
	cv.inks = make([][]demoInk, cv.h)
	for y := range cv.runes {
		cv.runes[y] = []rune(strings.Repeat(" ", cv.w))
		cv.inks[y] = make([]demoInk, cv.w)
	}
	return cv
}

func (cv *demoCanvas) set(x, y int, r rune, ink demoInk) {
	if x >= 0 && y >= 0 && x < cv.w && y < cv.h {
		cv.runes[y][x] = r
		cv.inks[y][x] = ink
	}
}

func (cv *demoCanvas) frame(r geom.Rect, label string, ink demoInk) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := int(r.Right())-1, int(r.Bottom())-1
	for x := x0; x <= x1; x++ {
		cv.set(x, y0, '─', ink)
		cv.set(x, y1, '─', ink)
	}
	for y := y0; y <= y1; y++ {
		cv.set(x0, y, '│', ink)
		cv.set(x1, y, '│', ink)
	}
	cv.set(x0, y0, '┌', ink)
	cv.set(x1, y0, '┐', ink)
	cv.set(x0, y1, '└', ink)
	cv.set(x1, y1, '┘', ink)
	for i, r := range []rune(label) {
		if x0+1+i >= x1 {
			break
		}
		cv.set(x0+1+i, y0, r, ink)
	}
}

// fill shades r. Degenerate previews such as the tab strip anchor still get
// one row.
func (cv *demoCanvas) fill(r geom.Rect, ink demoInk) {
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := max(int(r.Right()), x0+1), max(int(r.Bottom()), y0+1)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			cv.set(x, y, '░', ink)
		}
	}
}

func (cv *demoCanvas) String() string {
	var b strings.Builder
	for y := range cv.runes {
		start := 0
		for x := 1; x <= cv.w; x++ {
			if x < cv.w && cv.inks[y][x] == cv.inks[y][start] {
				continue
			}
			b.WriteString(demoInks[cv.inks[y][start]].Render(string(cv.runes[y][start:x])))
			start = x
		}
		if y < cv.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m *demoModel) View() string {
	helpView := m.help.View(m.keys)
	cv := newDemoCanvas(m.width, m.height-2-lipgloss.Height(helpView))

	source := m.drag.Source()
	for _, p := range m.panels {
		ink := inkPlain
		if p.id == source {
			ink = inkSource
		}
		cv.frame(p.box, p.label, ink)
	}
	if m.hasAnchor {
		cv.fill(m.preview(), inkAnchor)
	}
	cv.set(int(m.pointer.X), int(m.pointer.Y), '✚', inkPointer)

	return lipgloss.JoinVertical(lipgloss.Left,
		cv.String(),
		StyleTitle.Render("dockyard")+" "+StyleDim.Render(m.drag.State().String())+"  "+m.status,
		helpView,
	)
}
