package client

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/tomz197/spacewaves/internal/draw"
	"github.com/tomz197/spacewaves/internal/input"
	"github.com/tomz197/spacewaves/internal/loop/config"
	"github.com/tomz197/spacewaves/internal/loop/session"
	"github.com/tomz197/spacewaves/internal/loop/ticker"
	"github.com/tomz197/spacewaves/internal/scene"
)

// Client runs one independent game on a terminal connection: it reads keys,
// drives a session through the fixed-step scheduler and renders the scene.
type Client struct {
	state        *ClientState
	scene        *scene.Scene
	session      *session.Session
	ticker       *ticker.FixedStep
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates one frame for chunked output
	styles       styles
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	rng          *rand.Rand
	shutdownCh   <-chan struct{}
	idleWarn     time.Duration
	idleKick     time.Duration
	pointBuf     []draw.Point
}

// Options configures the client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger

	// Rand seeds every game on this connection; clock-seeded when nil.
	Rand *rand.Rand

	// ShutdownCh, when closed, switches the client to the shutdown notice and
	// disconnects after config.ShutdownDisplaySeconds.
	ShutdownCh <-chan struct{}

	// IdleWarn and IdleDisconnect enable the inactivity warning and the
	// forced disconnect. Zero disables them.
	IdleWarn       time.Duration
	IdleDisconnect time.Duration
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, err := draw.TermSize(termSizeFunc)
	if err != nil {
		logger.Warn("using default terminal size", "user", opts.Username, "err", err)
		termWidth, termHeight = config.DefaultTermWidth, config.DefaultTermHeight
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.GameWidth, config.GameHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	// SSH sessions have no TERM-derived profile on the server side, so the
	// colour depth is fixed to what the canvas already emits.
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)

	return &Client{
		state:        NewClientState(),
		ticker:       ticker.NewFixedStep(config.TickInterval, config.MaxCatchUp, nil),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		styles:       newStyles(renderer),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		logger:       logger,
		rng:          rng,
		shutdownCh:   opts.ShutdownCh,
		idleWarn:     opts.IdleWarn,
		idleKick:     opts.IdleDisconnect,
	}
}

// Run starts the client loop. It blocks until the player quits, the input
// closes, ctx is cancelled or the shutdown notice runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		if ctx.Err() != nil {
			break
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processShutdown()
		c.updateScreen()

		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStatePaused:
			c.updatePausedState()
		case GameStateOver:
			c.updateOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.logger.Info("client disconnected", "user", c.username, "games", c.state.Games, "best", c.state.BestScore)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	idle := time.Since(c.lastInput)
	switch {
	case c.state.Input.Any():
		c.lastInput = time.Now()
		c.state.isInactive = false
	case c.idleKick > 0 && idle > c.idleKick:
		c.logger.Info("disconnecting inactive client", "user", c.username, "idle", idle.Round(time.Second))
		c.state.Running = false
	case c.idleWarn > 0 && idle > c.idleWarn:
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processShutdown switches to the shutdown notice once the server closes
// the shutdown channel.
func (c *Client) processShutdown() {
	if c.shutdownCh == nil || c.state.GameState == GameStateShutdown {
		return
	}
	select {
	case <-c.shutdownCh:
		c.ticker.Stop()
		c.state.GameState = GameStateShutdown
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TermSize(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.logger.Debug("terminal resized", "user", c.username, "cols", termWidth, "rows", termHeight)
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Fire > 0 || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState forwards input to the session and advances it.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	if in.Pause {
		c.ticker.Stop()
		c.state.GameState = GameStatePaused
		return
	}

	c.session.SetControls(session.Controls{
		Left:  in.Left,
		Right: in.Right,
		Up:    in.Up,
		Down:  in.Down,
	})
	for i := 0; i < in.Fire; i++ {
		c.session.Fire()
	}
	c.ticker.Advance(c.state.delta)

	if !c.session.Running() {
		c.finishGame()
	}
}

// updatePausedState resumes on P or Enter.
func (c *Client) updatePausedState() {
	if c.state.Input.Pause || c.state.Input.Enter {
		input.ResetKeyInput(c.inputStream)
		c.ticker.Start()
		c.state.GameState = GameStatePlaying
	}
}

// updateOverState keeps the finished session ticking and restarts on Enter.
func (c *Client) updateOverState() {
	c.ticker.Advance(c.state.delta)
	if c.state.Input.Enter {
		c.startGame()
	}
}

// startGame replaces any previous session with a fresh one.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)

	c.scene = scene.New()
	c.session = session.New(c.scene, session.Options{
		Rand:   c.rng,
		Logger: c.logger.With("user", c.username),
	})
	c.ticker.SetTarget(c.session)
	c.ticker.Start()

	c.state.Games++
	c.state.GameState = GameStatePlaying
	c.logger.Info("game started", "user", c.username, "game", c.state.Games)
}

// finishGame records the result once the session reports game over.
func (c *Client) finishGame() {
	if score := c.session.Score(); score > c.state.BestScore {
		c.state.BestScore = score
	}
	c.state.GameState = GameStateOver
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
