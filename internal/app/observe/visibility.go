package observe

// Visibility is the redaction table for opponent views.
type Visibility struct {
	// OpponentWeapon exposes enemy weapon stats in player, cell and
	// occupier views.
	OpponentWeapon bool
	// OpponentScore exposes the enemy score roll-up.
	OpponentScore bool
}

// DefaultVisibility matches the published starter-bot contract: enemy
// scores are public, enemy weapons are not.
func DefaultVisibility() Visibility {
	return Visibility{
		OpponentWeapon: false,
		OpponentScore:  true,
	}
}
