package main

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"BitwoodRPG/internal/game"
)

// moveBurstTicks is how many simulation ticks a movement key press keeps
// the player walking. Terminals report key presses but not releases, so
// holding a key reads as an auto-repeating press stream and each press
// extends the burst.
const moveBurstTicks = 5

var (
	wallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	doorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	floorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))

	selfStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true)
	npcStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)

	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	choiceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
	pickedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("212")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

type tickMsg time.Time

func doTick() tea.Cmd {
	tickInterval := float64(time.Second) / game.SimHz
	return tea.Tick(time.Duration(tickInterval), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// consoleUI runs the simulation in-process and draws one character per
// tile. Key presses are queued and consumed on the next tick, mirroring
// how the server samples its input box.
type consoleUI struct {
	room   *game.Room
	width  int
	height int

	// per-direction burst countdowns, in ticks
	hold    [4]int // up, down, left, right
	pending game.Input

	lastErr error
}

func newConsoleUI(room *game.Room) *consoleUI {
	return &consoleUI{room: room}
}

func (m *consoleUI) Init() tea.Cmd {
	return doTick()
}

func (m *consoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		if m.room.Mode == game.ModeConversing {
			m.keyConversing(msg)
		} else {
			m.keyExploring(msg)
		}

	case tickMsg:
		in := m.pending
		m.pending = game.Input{}
		in.Up = m.drain(0)
		in.Down = m.drain(1)
		in.Left = m.drain(2)
		in.Right = m.drain(3)
		if err := m.room.Step(in, game.Dt); err != nil {
			m.lastErr = err
		}
		return m, doTick()
	}
	return m, nil
}

func (m *consoleUI) keyExploring(msg tea.KeyMsg) {
	switch msg.String() {
	case "w", "up":
		m.hold[0] = moveBurstTicks
	case "s", "down":
		m.hold[1] = moveBurstTicks
	case "a", "left":
		m.hold[2] = moveBurstTicks
	case "d", "right":
		m.hold[3] = moveBurstTicks
	case "e", "enter", " ":
		m.pending.Interact = true
	}
}

func (m *consoleUI) keyConversing(msg tea.KeyMsg) {
	key := msg.String()
	switch key {
	case "up", "w":
		m.pending.NavDelta = -1
	case "down", "s":
		m.pending.NavDelta = 1
	case "enter", "e", " ":
		m.pending.Interact = true
	case "esc", "backspace":
		m.pending.Cancel = true
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.pending.Ordinal = int(key[0] - '0')
		}
	}
	// Conversing drops any queued movement burst.
	m.hold = [4]int{}
}

func (m *consoleUI) drain(i int) bool {
	if m.hold[i] > 0 {
		m.hold[i]--
		return true
	}
	return false
}

func (m *consoleUI) View() string {
	if m.width == 0 || m.height == 0 {
		return "\n  Loading..."
	}

	tilesX := m.width / 2
	tilesY := m.height - 12
	if tilesX < 8 {
		tilesX = 8
	}
	if tilesY < 6 {
		tilesY = 6
	}
	frame := m.room.BuildFrame(float64(tilesX)*game.TileSize, float64(tilesY)*game.TileSize)

	var b strings.Builder
	b.WriteString(m.renderMap(frame, tilesX, tilesY))
	b.WriteString("\n")

	if frame.Prompt != "" {
		b.WriteString(promptStyle.Render(frame.Prompt) + "\n")
	} else {
		b.WriteString("\n")
	}
	if frame.Dialogue != nil {
		b.WriteString(m.renderPanel(frame.Dialogue))
		b.WriteString("\n")
	}
	if len(frame.Status) > 0 {
		b.WriteString(statusStyle.Render("flags: "+strings.Join(frame.Status, " ")) + "\n")
	}
	if m.lastErr != nil {
		b.WriteString(statusStyle.Render("last error: "+m.lastErr.Error()) + "\n")
	}
	b.WriteString(hintStyle.Render("WASD/arrows to move, E to talk, Q to quit."))
	return b.String()
}

func (m *consoleUI) renderMap(frame *game.Frame, tilesX, tilesY int) string {
	type cell struct {
		ch    string
		style lipgloss.Style
	}
	grid := make([][]cell, tilesY)
	for y := range grid {
		grid[y] = make([]cell, tilesX)
		for x := range grid[y] {
			grid[y][x] = cell{ch: "  ", style: floorStyle}
		}
	}

	for _, t := range frame.Tiles {
		cx := int(t.X / game.TileSize)
		cy := int(t.Y / game.TileSize)
		if cx < 0 || cy < 0 || cx >= tilesX || cy >= tilesY {
			continue
		}
		switch t.Code {
		case game.TileWall:
			grid[cy][cx] = cell{ch: "##", style: wallStyle}
		case game.TileDoor:
			grid[cy][cx] = cell{ch: "++", style: doorStyle}
		default:
			grid[cy][cx] = cell{ch: " .", style: floorStyle}
		}
	}

	for _, s := range frame.Sprites {
		cx := int((s.X + game.TileSize/2) / game.TileSize)
		cy := int((s.Y + game.TileSize/2) / game.TileSize)
		if cx < 0 || cy < 0 || cx >= tilesX || cy >= tilesY {
			continue
		}
		if s.Self {
			grid[cy][cx] = cell{ch: "@@", style: selfStyle}
			continue
		}
		grid[cy][cx] = cell{ch: markerFor(s.Name), style: npcStyle}
	}

	var b strings.Builder
	for y := 0; y < tilesY; y++ {
		for x := 0; x < tilesX; x++ {
			b.WriteString(grid[y][x].style.Render(grid[y][x].ch))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// markerFor picks the two-cell map marker for a named entity: the
// name's first rune, uppercased. Names may start with a multi-byte
// rune, so this never slices bytes.
func markerFor(name string) string {
	if name == "" {
		return "??"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + " "
}

func (m *consoleUI) renderPanel(panel *game.DialoguePanel) string {
	wrapWidth := m.width - 8
	if wrapWidth > 72 {
		wrapWidth = 72
	}

	var b strings.Builder
	b.WriteString(speakerStyle.Render(panel.Speaker) + "\n")
	b.WriteString(panel.WrapText(wrapWidth) + "\n\n")
	for _, c := range panel.Choices {
		if c.Selected {
			b.WriteString(pickedStyle.Render("> "+c.Label) + "\n")
		} else {
			b.WriteString(choiceStyle.Render("  "+c.Label) + "\n")
		}
	}
	b.WriteString(hintStyle.Render(panel.Hint))
	return panelStyle.Render(b.String())
}
