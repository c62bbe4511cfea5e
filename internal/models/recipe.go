package models

import "time"

// RecipeIngredient is one required input of a recipe.
type RecipeIngredient struct {
	MaterialID int64 `json:"material_id"`
	Quantity   int64 `json:"quantity"`
}

// Recipe describes a craftable item as delivered by the server.
type Recipe struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	Ingredients    []RecipeIngredient `json:"ingredients"`
	ResultMaterial Material           `json:"result_material"`
	Workstation    string             `json:"workstation"`
	EnergyCost     float64            `json:"energy_cost"`
}

// CraftingHistoryEntry records one completed craft. The store keeps the most
// recent 50 entries, newest first.
type CraftingHistoryEntry struct {
	RecipeID   int64     `json:"recipe_id"`
	RecipeName string    `json:"recipe_name"`
	Quantity   int64     `json:"quantity"`
	ResultName string    `json:"result_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CraftingHistoryLimit caps the crafting history ring.
const CraftingHistoryLimit = 50
