// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - the logical canvas every host renders.
const (
	GameWidth  = 800
	GameHeight = 600
)

// Timing
const (
	TickInterval = 30 * time.Millisecond // One game update
	MaxCatchUp   = 5                     // Ticks a host may run per frame after a stall
)

// Player
const (
	PlayerSize    = 20.0 // Half-size of the ship triangle
	PlayerSpeed   = 10.0 // Distance per tick on each axis
	PlayerOffsetY = 50.0 // Start position above the bottom edge
	InitialHealth = 3
	BreachDamage  = 1
)

// Lasers
const (
	LaserSpeed = 15.0
)

// Enemies
const (
	InitialEnemySpeed = 3.0
	EnemySpeedStep    = 0.5 // Added to the shared speed on every wave transition
	WaveSizeBase      = 5   // Wave N spawns WaveSizeBase * N enemies
	EnemyMinSize      = 15
	EnemyMaxSize      = 25
	SpawnMargin       = 50 // Horizontal margin and lowest spawn height above the screen
)

// Scoring
const (
	ScorePerHit = 10
)

// HUD
const (
	HUDTextY         = 20.0
	HUDEdgeOffset    = 50.0
	HUDFontSize      = 16
	GameOverFontSize = 40
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Maximum terminal area used for rendering. Larger terminals get a centred
// border around the playfield.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60

	// Used until the terminal reports a usable size.
	DefaultTermWidth  = 80
	DefaultTermHeight = 24
)
