package entities

import "time"

// UserSettings stores player preferences and the best score reached so far.
type UserSettings struct {
	UserID         int64
	SoundEnabled   bool // play correct/wrong sounds
	HapticsEnabled bool // notify (buzz) on feedback messages
	HighScore      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUserSettings creates a new UserSettings instance with default values.
func NewUserSettings(userID int64) *UserSettings {
	now := time.Now()
	return &UserSettings{
		UserID:         userID,
		SoundEnabled:   true,
		HapticsEnabled: true,
		HighScore:      0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
