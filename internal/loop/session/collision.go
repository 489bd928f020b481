package session

import (
	"github.com/tomz197/spacewaves/internal/object"
)

// updateLasers moves every laser up and resolves laser/enemy hits.
// A laser destroys at most one enemy, and an enemy destroyed by one laser
// cannot be hit again by a later laser in the same tick.
func (s *Session) updateLasers() {
	if len(s.lasers) == 0 {
		return
	}
	ctx := s.updateContext()
	s.populateGrid()

	clear(s.lasersRemoved)
	hits := 0
	for _, l := range s.lasers {
		offscreen := l.Update(ctx)
		s.surface.Move(l.Handle, 0, -ctx.LaserSpeed)
		if offscreen {
			s.lasersRemoved[l] = struct{}{}
			continue
		}

		if target := s.firstHit(l); target != nil {
			s.destroyEnemy(target)
			s.lasersRemoved[l] = struct{}{}
			s.addScore(s.cfg.ScorePerHit)
			hits++
		}
	}

	if hits > 0 {
		s.compactEnemies()
	}
	if len(s.lasersRemoved) == 0 {
		return
	}
	kept := s.lasers[:0]
	for _, l := range s.lasers {
		if _, remove := s.lasersRemoved[l]; remove {
			s.surface.Delete(l.Handle)
			continue
		}
		kept = append(kept, l)
	}
	clear(s.lasers[len(kept):])
	s.lasers = kept
}

// populateGrid indexes the live enemies by their current bounds.
func (s *Session) populateGrid() {
	s.grid.Clear()
	for i, e := range s.enemies {
		s.grid.Insert(e.Bounds(), i)
	}
}

// firstHit returns the earliest-spawned live enemy overlapping the laser.
func (s *Session) firstHit(l *object.Laser) *object.Enemy {
	box := l.Bounds()
	best := -1
	s.grid.Query(box, func(i int) bool {
		e := s.enemies[i]
		if _, alive := s.tracked[e.Handle]; !alive {
			return false
		}
		if (best < 0 || i < best) && e.Bounds().Overlaps(box) {
			best = i
		}
		return false
	})
	if best < 0 {
		return nil
	}
	return s.enemies[best]
}
