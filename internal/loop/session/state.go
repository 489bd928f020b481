package session

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacewaves/internal/loop/config"
	"github.com/tomz197/spacewaves/internal/object"
	"github.com/tomz197/spacewaves/internal/physics"
)

// State is the session phase.
type State int

const (
	StateRunning  State = iota // Ticks update the game
	StateGameOver              // Terminal: ticks are no-ops
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Controls is the set of direction keys currently held.
type Controls struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// Surface is the drawing sink a session renders into. The session never reads
// game state back from it.
type Surface interface {
	CreatePolygon(points []physics.Point, color object.Color) object.Handle
	CreateOval(bounds physics.Rect, color object.Color) object.Handle
	CreateRectangle(bounds physics.Rect, color object.Color) object.Handle
	CreateText(at physics.Point, text string, color object.Color, size int) object.Handle
	Move(h object.Handle, dx, dy float64)
	Delete(h object.Handle)
	SetText(h object.Handle, text string)
}

// Config holds the game rules. Zero values are replaced by the defaults from
// the config package.
type Config struct {
	Width, Height     float64
	PlayerSize        float64
	PlayerSpeed       float64
	LaserSpeed        float64
	InitialEnemySpeed float64
	EnemySpeedStep    float64
	WaveSizeBase      int
	EnemyMinSize      int
	EnemyMaxSize      int
	SpawnMargin       int
	InitialHealth     int
	ScorePerHit       int
}

// DefaultConfig returns the standard rules.
func DefaultConfig() Config {
	return Config{
		Width:             config.GameWidth,
		Height:            config.GameHeight,
		PlayerSize:        config.PlayerSize,
		PlayerSpeed:       config.PlayerSpeed,
		LaserSpeed:        config.LaserSpeed,
		InitialEnemySpeed: config.InitialEnemySpeed,
		EnemySpeedStep:    config.EnemySpeedStep,
		WaveSizeBase:      config.WaveSizeBase,
		EnemyMinSize:      config.EnemyMinSize,
		EnemyMaxSize:      config.EnemyMaxSize,
		SpawnMargin:       config.SpawnMargin,
		InitialHealth:     config.InitialHealth,
		ScorePerHit:       config.ScorePerHit,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = d.Width, d.Height
	}
	if c.PlayerSize <= 0 {
		c.PlayerSize = d.PlayerSize
	}
	if c.PlayerSpeed <= 0 {
		c.PlayerSpeed = d.PlayerSpeed
	}
	if c.LaserSpeed <= 0 {
		c.LaserSpeed = d.LaserSpeed
	}
	if c.InitialEnemySpeed <= 0 {
		c.InitialEnemySpeed = d.InitialEnemySpeed
	}
	if c.EnemySpeedStep <= 0 {
		c.EnemySpeedStep = d.EnemySpeedStep
	}
	if c.WaveSizeBase <= 0 {
		c.WaveSizeBase = d.WaveSizeBase
	}
	if c.EnemyMinSize <= 0 || c.EnemyMaxSize < c.EnemyMinSize {
		c.EnemyMinSize, c.EnemyMaxSize = d.EnemyMinSize, d.EnemyMaxSize
	}
	if c.SpawnMargin <= 0 {
		c.SpawnMargin = d.SpawnMargin
	}
	if c.InitialHealth <= 0 {
		c.InitialHealth = d.InitialHealth
	}
	if c.ScorePerHit <= 0 {
		c.ScorePerHit = d.ScorePerHit
	}
	return c
}

// spawnArea returns where a wave's enemies appear: anywhere across the width
// (minus the margin) and up to one screen height above the visible area.
func (c Config) spawnArea() object.SpawnArea {
	return object.SpawnArea{
		MinX:    c.SpawnMargin,
		MaxX:    int(c.Width) - c.SpawnMargin,
		MinY:    -int(c.Height),
		MaxY:    -c.SpawnMargin,
		MinSize: c.EnemyMinSize,
		MaxSize: c.EnemyMaxSize,
	}
}

// Options configures a session.
type Options struct {
	Config Config
	Rand   *rand.Rand  // Source for spawn positions; seeded from the clock when nil
	Logger *log.Logger // Discards output when nil
}
