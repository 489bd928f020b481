package object

import "fmt"

// HUD label formats.

// ScoreLabel formats the score readout.
func ScoreLabel(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// HealthLabel formats the health readout.
func HealthLabel(health int) string {
	return fmt.Sprintf("Health: %d", health)
}

// WaveLabel formats the wave readout.
func WaveLabel(wave int) string {
	return fmt.Sprintf("Wave %d", wave)
}

// GameOverLabel formats the final message shown when the session ends.
func GameOverLabel(score int) string {
	return fmt.Sprintf("GAME OVER\nFinal Score: %d", score)
}
