package models

import "encoding/json"

// Achievement is a server-declared unlock event. Any endpoint may report one
// through the shared achievements_unlocked envelope field.
type Achievement struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Envelope carries the cross-cutting response fields every endpoint may set.
// Endpoint-specific response types embed it.
type Envelope struct {
	Message              string        `json:"message,omitempty"`
	AchievementsUnlocked []Achievement `json:"achievements_unlocked,omitempty"`
}

// MeResponse is the payload of getMe. EnergyRegenerated/MinutesOffline are set
// when the server restored energy that accumulated while the player was away.
type MeResponse struct {
	Envelope
	Player            Player  `json:"player"`
	CurrentCell       *Cell   `json:"current_cell,omitempty"`
	EnergyRegenerated float64 `json:"energy_regenerated,omitempty"`
	MinutesOffline    int     `json:"minutes_offline,omitempty"`
}

// InventoryResponse wraps the inventory payload. Items is raw because the
// server delivers either a flat array or a category-keyed map; DecodeInventory
// normalizes it at this boundary.
type InventoryResponse struct {
	Envelope
	Items json.RawMessage `json:"items"`
}

// RecipesResponse is the payload of recipes.getAll.
type RecipesResponse struct {
	Envelope
	Recipes []Recipe `json:"recipes"`
}

// DuplicateRecipesResponse is the payload of recipes.getDuplicates.
type DuplicateRecipesResponse struct {
	Envelope
	Duplicates []Recipe `json:"duplicates"`
}

// CraftResponse is the payload of crafting.craft.
type CraftResponse struct {
	Envelope
	Recipe   Recipe       `json:"recipe"`
	Quantity int64        `json:"quantity"`
	Player   *PlayerPatch `json:"player,omitempty"`
}

// MoveResponse is the payload of move.
type MoveResponse struct {
	Envelope
	Cell   Cell         `json:"cell"`
	Player *PlayerPatch `json:"player,omitempty"`
}

// GatherResponse is the payload of map.gather.
type GatherResponse struct {
	Envelope
	Gained []InventoryItem `json:"gained,omitempty"`
	Player *PlayerPatch    `json:"player,omitempty"`
}

// EquipResponse is the payload of equipment.equip / unequip.
type EquipResponse struct {
	Envelope
	Player *Player `json:"player,omitempty"`
}

// WorkstationsResponse is the payload of both workstation endpoints.
type WorkstationsResponse struct {
	Envelope
	Workstations []Workstation `json:"workstations"`
}

// BuildingTypesResponse is the payload of building.getAvailable.
type BuildingTypesResponse struct {
	Envelope
	Types []BuildingType `json:"building_types"`
}

// BuildingsResponse is the payload of building.getMyBuildings and the two
// construction mutations.
type BuildingsResponse struct {
	Envelope
	Buildings []Building `json:"buildings"`
}

// BuildingBonusesResponse is the payload of building.getBonuses.
type BuildingBonusesResponse struct {
	Envelope
	Bonuses []BuildingBonus `json:"bonuses"`
}

// EncounterResponse is the payload of encounter.attack / flee.
type EncounterResponse struct {
	Envelope
	Encounter *Encounter   `json:"encounter,omitempty"`
	Victory   bool         `json:"victory"`
	Fled      bool         `json:"fled"`
	Player    *PlayerPatch `json:"player,omitempty"`
}

// SkillsResponse is the payload of the skills endpoint.
type SkillsResponse struct {
	Envelope
	Skills          []Skill `json:"skills"`
	UnlockedTalents []int64 `json:"unlocked_talents"`
}

// SkillTreeResponse is the payload of the static skill tree endpoint.
type SkillTreeResponse struct {
	Envelope
	Tree SkillTree `json:"tree"`
}
