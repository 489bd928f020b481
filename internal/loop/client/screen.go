package client

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/spacewaves/internal/draw"
	"github.com/tomz197/spacewaves/internal/loop/config"
	"github.com/tomz197/spacewaves/internal/object"
	"github.com/tomz197/spacewaves/internal/scene"
)

// styles are the lipgloss styles for text overlays.
type styles struct {
	renderer *lipgloss.Renderer
	title    lipgloss.Style
	heading  lipgloss.Style
	hint     lipgloss.Style
	warn     lipgloss.Style
	byColor  map[object.Color]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		renderer: r,
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(strconv.Itoa(int(object.ColorCyan)))).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(strconv.Itoa(int(object.ColorLime)))).
			Padding(0, 3),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color(strconv.Itoa(int(object.ColorYellow)))),
		hint:    r.NewStyle().Faint(true),
		warn:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(strconv.Itoa(int(object.ColorRed)))),
		byColor: make(map[object.Color]lipgloss.Style),
	}
}

// text returns the style for a scene label. Large labels are bold.
func (s *styles) text(color object.Color, size int) lipgloss.Style {
	st, ok := s.byColor[color]
	if !ok {
		st = s.renderer.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(int(color))))
		s.byColor[color] = st
	}
	if size >= config.GameOverFontSize {
		return st.Bold(true)
	}
	return st
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if c.scene != nil && c.showsGame() {
		c.drawScene()
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	// Border only shows when the terminal exceeds the max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// showsGame reports whether the playfield is visible behind the UI.
func (c *Client) showsGame() bool {
	if c.state.isInactive {
		return false
	}
	switch c.state.GameState {
	case GameStatePlaying, GameStatePaused, GameStateOver:
		return true
	}
	return false
}

// drawScene rasterizes every non-text shape onto the canvas.
func (c *Client) drawScene() {
	c.scene.Each(func(_ object.Handle, s *scene.Shape) {
		color := uint8(s.Color)
		switch s.Kind {
		case scene.KindPolygon:
			pts := c.pointBuf[:0]
			for _, p := range s.Points {
				pts = append(pts, draw.Point{X: p.X, Y: p.Y})
			}
			c.pointBuf = pts
			c.canvas.FillPolygon(pts, color)
		case scene.KindOval:
			c.canvas.FillEllipse(toDraw(s.Box.Min.X, s.Box.Min.Y), toDraw(s.Box.Max.X, s.Box.Max.Y), color)
		case scene.KindRectangle:
			c.canvas.FillRect(toDraw(s.Box.Min.X, s.Box.Min.Y), toDraw(s.Box.Max.X, s.Box.Max.Y), color)
		}
	})
}

func toDraw(x, y float64) draw.Point {
	return draw.Point{X: x, Y: y}
}

// drawLabels writes the scene's text shapes over the canvas. Multi-line
// labels are centred on their anchor.
func (c *Client) drawLabels() {
	c.scene.Each(func(_ object.Handle, s *scene.Shape) {
		if s.Kind != scene.KindText {
			return
		}
		col, row := c.canvas.LogicalToTerminal(s.At.X, s.At.Y)
		lines := strings.Split(s.Text, "\n")
		row -= len(lines) / 2
		style := c.styles.text(s.Color, s.Size)
		for i, line := range lines {
			c.writeCentered(col, row+i, style.Render(line))
		}
	})
}

// writeCentered writes an already styled line centred on col and marks the
// cells it covers so the canvas repaints them next frame.
func (c *Client) writeCentered(col, row int, styled string) {
	width := lipgloss.Width(styled)
	start := col - width/2
	if start < 1 {
		start = 1
	}
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	c.chunkWriter.WriteAt(start, row, styled)
	c.canvas.MarkTextDirty(start, row, width)
}

// writeBlock writes a multi-line styled block centred on (col, row).
func (c *Client) writeBlock(col, row int, block string) int {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		c.writeCentered(col, row+i, line)
	}
	return len(lines)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	centerX := c.canvas.TerminalWidth()/2 + 1
	centerY := c.canvas.TerminalHeight()/2 + 1

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		c.drawLabels()
	case GameStatePaused:
		c.drawLabels()
		c.drawPauseScreen(centerX, centerY)
	case GameStateOver:
		c.drawLabels()
		c.drawOverScreen(centerX, centerY)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	title := c.styles.title.Render("S P A C E   W A V E S")
	row := centerY - 7
	row += c.writeBlock(centerX, row, title) + 1

	c.writeCentered(centerX, row, c.styles.hint.Render("~ Arcade shooter over SSH ~"))
	row += 2

	c.writeCentered(centerX, row, c.styles.heading.Render("Controls"))
	controlLines := []string{
		"W A S D / arrows . . Move",
		"SPACE  . . . . . . . Fire",
		"P  . . . . . . . .  Pause",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, row+1+i, line)
	}
	row += len(controlLines) + 2

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, row, ">>  Press SPACE to Start  <<")
	}

	if c.state.BestScore > 0 {
		c.writeCentered(centerX, row+2, fmt.Sprintf("Best this visit: %d", c.state.BestScore))
	}
}

// drawPauseScreen draws the pause notice over the frozen playfield.
func (c *Client) drawPauseScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-1, c.styles.heading.Render("PAUSED"))
	c.writeCentered(centerX, centerY+1, c.styles.hint.Render("Press P to resume"))
}

// drawOverScreen draws the restart prompt below the GAME OVER label.
func (c *Client) drawOverScreen(centerX, centerY int) {
	row := centerY + 3
	if c.state.Games > 1 || c.state.BestScore > c.session.Score() {
		c.writeCentered(centerX, row, fmt.Sprintf("Best this visit: %d", c.state.BestScore))
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, row+2, ">>  Press ENTER to play again  <<")
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, c.styles.warn.Render("INACTIVITY WARNING"))

	c.writeCentered(centerX, centerY, inactivityMessage(c.idleKick, time.Since(c.lastInput)))
	c.writeCentered(centerX, centerY+2, c.styles.hint.Render("Press any key to continue"))
}

// inactivityMessage explains the warning. The countdown only appears when a
// disconnect is actually configured.
func inactivityMessage(kick, idle time.Duration) string {
	if kick <= 0 {
		return "You have been inactive for a while."
	}
	left := max(int((kick - idle).Seconds()), 0)
	return fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", left)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, c.styles.warn.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, c.styles.hint.Render("Press Q to disconnect now"))
}
