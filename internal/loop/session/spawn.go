package session

import (
	"github.com/tomz197/spacewaves/internal/object"
)

// spawnWave adds WaveSizeBase * wave enemies above the visible area.
func (s *Session) spawnWave() {
	area := s.cfg.spawnArea()
	count := s.cfg.WaveSizeBase * s.wave
	for i := 0; i < count; i++ {
		e := object.NewEnemyIn(area, s.rng)
		e.Handle = s.surface.CreateOval(e.Bounds(), object.ColorRed)
		s.enemies = append(s.enemies, e)
		s.tracked[e.Handle] = e
	}
}

// spawnQueuedLasers turns pending fire events into lasers at the ship's nose.
func (s *Session) spawnQueuedLasers() {
	for ; s.fireQ > 0; s.fireQ-- {
		nose := s.player.Nose()
		l := object.NewLaser(nose.X, nose.Y)
		l.Handle = s.surface.CreateRectangle(l.Bounds(), object.ColorLime)
		s.lasers = append(s.lasers, l)
	}
}

// destroyEnemy removes an enemy from the surface and the handle map. Removing
// an enemy twice is a no-op. The enemies slice is compacted separately.
func (s *Session) destroyEnemy(e *object.Enemy) {
	if _, ok := s.tracked[e.Handle]; !ok {
		return
	}
	delete(s.tracked, e.Handle)
	s.surface.Delete(e.Handle)
}

// compactEnemies drops enemies that are no longer tracked, keeping spawn order.
func (s *Session) compactEnemies() {
	kept := s.enemies[:0] // reuse backing array
	for _, e := range s.enemies {
		if _, ok := s.tracked[e.Handle]; ok {
			kept = append(kept, e)
		}
	}
	clear(s.enemies[len(kept):])
	s.enemies = kept
}
