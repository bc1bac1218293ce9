package models

// User is a profile record. Gold and Lives move with habit completions;
// Makam gates which habits are visible. Lives never exceeds MaxHealth.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image,omitempty"`
	Lives        int    `json:"lives"`
	Gold         int    `json:"gold"`
	Makam        int    `json:"makam"`
	MaxHealth    int    `json:"max_health"`
}

// EffectiveMaxHealth returns the lives cap, defaulting when the stored
// record predates the max_health field.
func (u User) EffectiveMaxHealth() int {
	if u.MaxHealth <= 0 {
		return 100
	}
	return u.MaxHealth
}

// GuestUser returns the default-shaped record used when a profile id has no
// backing document. The client renders it rather than failing.
func GuestUser(id string) User {
	return User{
		ID:        id,
		Name:      "Kullanıcı",
		Lives:     5,
		Gold:      0,
		Makam:     0,
		MaxHealth: 100,
	}
}
