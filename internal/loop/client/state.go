package client

import (
	"time"

	"github.com/tomz197/spacewaves/internal/input"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Session ticking
	GameStatePaused                    // Session frozen, scheduler stopped
	GameStateOver                      // Session finished, restart prompt
	GameStateShutdown                  // Server is shutting down
)

func (g GameState) String() string {
	switch g {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStatePaused:
		return "paused"
	case GameStateOver:
		return "game over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-connection state that is not part of the game
// itself. Each client has its own instance.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	Games         int           // Sessions started on this connection
	BestScore     int           // Highest final score on this connection
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the inactivity warning is shown
	prevGameState GameState     // Screen drawn last frame
	wasInactive   bool          // Inactivity warning drawn last frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		Running:       true,
		prevGameState: -1,
	}
}
