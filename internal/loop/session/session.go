// Package session implements a single game of Space Waves: the player ship,
// the falling enemy waves, lasers, score, health and the fixed tick that
// advances them.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/spacewaves/internal/loop/config"
	"github.com/tomz197/spacewaves/internal/object"
	"github.com/tomz197/spacewaves/internal/physics"
)

// Session owns all mutable game state. It is not safe for concurrent use; the
// host calls Tick, Fire and SetControls from its own loop goroutine.
type Session struct {
	surface Surface
	cfg     Config
	screen  object.Screen
	rng     *rand.Rand
	logger  *log.Logger

	state      State
	score      int
	health     int
	wave       int
	enemySpeed float64
	ticks      uint64

	player   *object.Player
	enemies  []*object.Enemy                  // Spawn order
	tracked  map[object.Handle]*object.Enemy // Live enemies by surface handle
	lasers   []*object.Laser
	controls Controls
	fireQ    int // Fire events waiting for the next tick

	scoreText    object.Handle
	healthText   object.Handle
	waveText     object.Handle
	gameOverText object.Handle

	// Reused every tick
	grid          *physics.SpatialGrid
	lasersRemoved map[*object.Laser]struct{}
	enemyRemoved  map[*object.Enemy]struct{}
}

// New starts a session on surface: it draws the HUD and the ship and spawns
// the first wave.
func New(surface Surface, opts Options) *Session {
	cfg := opts.Config.withDefaults()

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		surface:       surface,
		cfg:           cfg,
		screen:        object.NewScreen(cfg.Width, cfg.Height),
		rng:           rng,
		logger:        logger,
		state:         StateRunning,
		health:        cfg.InitialHealth,
		wave:          1,
		enemySpeed:    cfg.InitialEnemySpeed,
		tracked:       make(map[object.Handle]*object.Enemy),
		grid:          physics.NewSpatialGrid(cfg.Width, cfg.Height, cfg.Width/16),
		lasersRemoved: make(map[*object.Laser]struct{}),
		enemyRemoved:  make(map[*object.Enemy]struct{}),
	}

	s.scoreText = surface.CreateText(
		physics.Point{X: config.HUDEdgeOffset, Y: config.HUDTextY},
		object.ScoreLabel(s.score), object.ColorWhite, config.HUDFontSize)
	s.healthText = surface.CreateText(
		physics.Point{X: cfg.Width - config.HUDEdgeOffset, Y: config.HUDTextY},
		object.HealthLabel(s.health), object.ColorRed, config.HUDFontSize)
	s.waveText = surface.CreateText(
		physics.Point{X: cfg.Width / 2, Y: config.HUDTextY},
		object.WaveLabel(s.wave), object.ColorYellow, config.HUDFontSize)

	s.player = object.NewPlayer(cfg.Width/2, cfg.Height-config.PlayerOffsetY, cfg.PlayerSize, cfg.PlayerSpeed)
	s.player.Handle = surface.CreatePolygon(s.player.Points(), object.ColorCyan)

	s.spawnWave()
	s.logger.Debug("session started", "enemies", len(s.enemies))
	return s
}

// SetControls records the currently held direction keys. The most recent
// call wins; it is read at the next tick.
func (s *Session) SetControls(c Controls) {
	s.controls = c
}

// Fire queues one laser. Every call produces exactly one laser at the start
// of the next tick; there is no cooldown.
func (s *Session) Fire() {
	if s.state != StateRunning {
		return
	}
	s.fireQ++
}

// Tick advances the game by one fixed step. It does nothing once the game is
// over, so a host may keep calling it.
func (s *Session) Tick() {
	if s.state != StateRunning {
		return
	}
	s.ticks++

	s.spawnQueuedLasers()
	s.updatePlayer()
	s.updateEnemies()
	if s.state != StateRunning {
		return
	}
	s.updateLasers()
	s.checkWave()
	s.syncHUD()
}

// TakeDamage reduces health and ends the game when it reaches zero.
func (s *Session) TakeDamage(amount int) {
	if s.state != StateRunning {
		return
	}
	s.health -= amount
	s.surface.SetText(s.healthText, object.HealthLabel(s.health))
	if s.health <= 0 {
		s.gameOver()
	}
}

// gameOver is the single Running -> GameOver transition.
func (s *Session) gameOver() {
	s.state = StateGameOver
	s.fireQ = 0
	s.gameOverText = s.surface.CreateText(
		physics.Point{X: s.screen.CenterX, Y: s.screen.CenterY},
		object.GameOverLabel(s.score), object.ColorRed, config.GameOverFontSize)
	s.logger.Info("game over", "score", s.score, "wave", s.wave, "ticks", s.ticks)
}

// updatePlayer moves the ship according to the held keys.
func (s *Session) updatePlayer() {
	c := s.controls
	dx, dy := s.player.Velocity(c.Left, c.Right, c.Up, c.Down)
	if s.player.TryMove(dx, dy, s.screen) {
		s.surface.Move(s.player.Handle, dx, dy)
	}
}

// updateEnemies moves every enemy down and removes the ones that got past the
// ship's lower edge, one damage point each.
func (s *Session) updateEnemies() {
	ctx := s.updateContext()

	clear(s.enemyRemoved)
	for _, e := range s.enemies {
		breached := e.Update(ctx)
		s.surface.Move(e.Handle, 0, ctx.EnemySpeed)
		if breached {
			s.enemyRemoved[e] = struct{}{}
			s.TakeDamage(config.BreachDamage)
		}
	}

	if len(s.enemyRemoved) == 0 {
		return
	}
	for e := range s.enemyRemoved {
		s.destroyEnemy(e)
	}
	s.compactEnemies()
}

// updateContext snapshots the session values entities need for this tick.
func (s *Session) updateContext() object.UpdateContext {
	return object.UpdateContext{
		EnemySpeed: s.enemySpeed,
		LaserSpeed: s.cfg.LaserSpeed,
		BreachLine: s.player.Bottom(),
	}
}

// addScore increases the score and refreshes its label.
func (s *Session) addScore(points int) {
	s.score += points
	s.surface.SetText(s.scoreText, object.ScoreLabel(s.score))
}

// checkWave starts the next wave once every enemy is gone.
func (s *Session) checkWave() {
	if len(s.enemies) > 0 {
		return
	}
	s.wave++
	s.enemySpeed += s.cfg.EnemySpeedStep
	s.surface.SetText(s.waveText, object.WaveLabel(s.wave))
	s.spawnWave()
	s.logger.Debug("wave cleared", "wave", s.wave, "enemy_speed", s.enemySpeed, "enemies", len(s.enemies))
}

// syncHUD pushes the current readouts to the surface.
func (s *Session) syncHUD() {
	s.surface.SetText(s.scoreText, object.ScoreLabel(s.score))
	s.surface.SetText(s.healthText, object.HealthLabel(s.health))
	s.surface.SetText(s.waveText, object.WaveLabel(s.wave))
}

// State returns the session phase.
func (s *Session) State() State { return s.state }

// Running reports whether ticks still update the game.
func (s *Session) Running() bool { return s.state == StateRunning }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Health returns the remaining health.
func (s *Session) Health() int { return s.health }

// Wave returns the current wave number, starting at 1.
func (s *Session) Wave() int { return s.wave }

// EnemySpeed returns the shared downward speed of enemies.
func (s *Session) EnemySpeed() float64 { return s.enemySpeed }

// Enemies returns the number of live enemies.
func (s *Session) Enemies() int { return len(s.enemies) }

// Lasers returns the number of lasers in flight.
func (s *Session) Lasers() int { return len(s.lasers) }

// Ticks returns the number of ticks that updated the game.
func (s *Session) Ticks() uint64 { return s.ticks }

// PlayerPosition returns the centre of the ship.
func (s *Session) PlayerPosition() (x, y float64) {
	return s.player.X, s.player.Y
}
