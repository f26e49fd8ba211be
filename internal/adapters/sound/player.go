// Package sound alerts the operator when a run needs attention
package sound

import (
	"fmt"

	"frota/internal/ports"
)

// Events a Player knows how to sound
const (
	EventFinished = "finished"
	EventLogin    = "login"
)

// Player implements ports.SoundPlayer
type Player struct{}

var _ ports.SoundPlayer = (*Player)(nil)

// NewPlayer creates a new sound player
func NewPlayer() *Player {
	return &Player{}
}

// PlaySoundForEvent plays the platform sound for eventType, falling back to the terminal bell.
// Platform-specific implementations are in player_*.go files with build tags.
func (p *Player) PlaySoundForEvent(eventType string) error {
	return playForEvent(eventType)
}

// Silent never makes a sound
type Silent struct{}

var _ ports.SoundPlayer = Silent{}

func (Silent) PlaySoundForEvent(string) error { return nil }

// terminalBell outputs a terminal bell character as fallback
func terminalBell() error {
	fmt.Print("\a")
	return nil
}
