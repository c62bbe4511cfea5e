package models

// EquippedItem is a piece of equipment currently worn by the player, keyed by slot.
type EquippedItem struct {
	Slot     string   `json:"slot"`
	Material Material `json:"material"`
}

// Player is the single per-session player record mirrored from the server.
// The store holds at most one of these at a time; a nil Player means the
// session is logged out.
type Player struct {
	ID       int64  `json:"id" validate:"required"`
	Username string `json:"username"`

	// Vitals
	Energy    float64 `json:"energy"`
	MaxEnergy float64 `json:"max_energy" validate:"gte=0"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health" validate:"gte=0"`
	Hunger    float64 `json:"hunger"`
	MaxHunger float64 `json:"max_hunger" validate:"gte=0"`
	Thirst    float64 `json:"thirst"`
	MaxThirst float64 `json:"max_thirst" validate:"gte=0"`
	Radiation float64 `json:"radiation"`

	// Progression
	Level      int   `json:"level"`
	Experience int64 `json:"experience"`

	// Economy
	Money             float64 `json:"money"`
	CreditCardBalance float64 `json:"credit_card_balance"`

	// Carry capacity
	CurrentCarryWeight     float64 `json:"current_carry_weight"`
	EffectiveCarryCapacity float64 `json:"effective_carry_capacity"`

	// Combat aggregates
	TotalAttack     float64 `json:"total_attack"`
	TotalDefense    float64 `json:"total_defense"`
	TotalSpeedBonus float64 `json:"total_speed_bonus"`

	EquippedItems    []EquippedItem `json:"equipped_items"`
	SurvivalWarnings []string       `json:"survival_warnings"`
}

// PlayerPatch carries a partial player update. Only non-nil fields are merged
// into the stored record.
type PlayerPatch struct {
	Energy             *float64 `json:"energy,omitempty"`
	Health             *float64 `json:"health,omitempty"`
	Hunger             *float64 `json:"hunger,omitempty"`
	Thirst             *float64 `json:"thirst,omitempty"`
	Radiation          *float64 `json:"radiation,omitempty"`
	Level              *int     `json:"level,omitempty"`
	Experience         *int64   `json:"experience,omitempty"`
	Money              *float64 `json:"money,omitempty"`
	CreditCardBalance  *float64 `json:"credit_card_balance,omitempty"`
	CurrentCarryWeight *float64 `json:"current_carry_weight,omitempty"`
}

// Apply merges the patch into a copy of the given player and returns it.
func (p PlayerPatch) Apply(player Player) Player {
	if p.Energy != nil {
		player.Energy = *p.Energy
	}
	if p.Health != nil {
		player.Health = *p.Health
	}
	if p.Hunger != nil {
		player.Hunger = *p.Hunger
	}
	if p.Thirst != nil {
		player.Thirst = *p.Thirst
	}
	if p.Radiation != nil {
		player.Radiation = *p.Radiation
	}
	if p.Level != nil {
		player.Level = *p.Level
	}
	if p.Experience != nil {
		player.Experience = *p.Experience
	}
	if p.Money != nil {
		player.Money = *p.Money
	}
	if p.CreditCardBalance != nil {
		player.CreditCardBalance = *p.CreditCardBalance
	}
	if p.CurrentCarryWeight != nil {
		player.CurrentCarryWeight = *p.CurrentCarryWeight
	}
	return player
}
