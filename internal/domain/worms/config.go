package worms

// Config carries the immutable rule constants of a match. It is
// validated by whoever loads it and only passed through here.
type Config struct {
	MaxRounds       int `json:"maxRounds"`
	MapSize         int `json:"mapSize"`
	WormsPerPlayer  int `json:"wormsPerPlayer"`
	StartingHealth  int `json:"startingHealth"`
	MovementRange   int `json:"movementRange"`
	DiggingRange    int `json:"diggingRange"`
	WeaponDamage    int `json:"weaponDamage"`
	WeaponRange     int `json:"weaponRange"`
	PushbackDamage  int `json:"pushbackDamage"`
	HealthPackValue int `json:"healthPackValue"`
}

func DefaultConfig() Config {
	return Config{
		MaxRounds:       400,
		MapSize:         33,
		WormsPerPlayer:  3,
		StartingHealth:  100,
		MovementRange:   1,
		DiggingRange:    1,
		WeaponDamage:    8,
		WeaponRange:     4,
		PushbackDamage:  20,
		HealthPackValue: 10,
	}
}
