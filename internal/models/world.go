package models

import "time"

// Cell is the map tile the player currently occupies.
type Cell struct {
	ID        int64      `json:"id"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Terrain   string     `json:"terrain"`
	Resources []Resource `json:"resources"`
}

// Resource is a gatherable deposit on a map cell.
type Resource struct {
	Material  Material `json:"material"`
	Remaining int64    `json:"remaining"`
	Tool      string   `json:"tool"`
}

// Workstation is a crafting station the player has access to.
type Workstation struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// BuildingType describes a constructible building.
type BuildingType struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Cost            []RecipeIngredient `json:"cost"`
	BuildTimeMinute int                `json:"build_time_minutes"`
}

// Building is a constructed (or in-progress) building owned by the player.
type Building struct {
	ID          int64      `json:"id"`
	TypeID      int64      `json:"type_id"`
	Name        string     `json:"name"`
	CellID      int64      `json:"cell_id"`
	CompletesAt *time.Time `json:"completes_at,omitempty"`
	Completed   bool       `json:"completed"`
}

// BuildingBonus is a passive effect granted by a completed building.
type BuildingBonus struct {
	BuildingID int64   `json:"building_id"`
	Stat       string  `json:"stat"`
	Amount     float64 `json:"amount"`
}

// Encounter is the combat encounter the player is currently in, if any.
type Encounter struct {
	ID            int64   `json:"id"`
	EnemyName     string  `json:"enemy_name"`
	EnemyHealth   float64 `json:"enemy_health"`
	EnemyMaxHP    float64 `json:"enemy_max_health"`
	EnemyAttack   float64 `json:"enemy_attack"`
	PlayerCanFlee bool    `json:"player_can_flee"`
}
