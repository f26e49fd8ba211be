package ports

// SoundPlayer plays attention sounds
type SoundPlayer interface {
	PlaySoundForEvent(eventType string) error
}
