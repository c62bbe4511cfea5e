package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ashfall-game/survival-client/internal/models"
)

// GetMe fetches the authenticated player record and current cell.
func (c *Client) GetMe(ctx context.Context) (*models.MeResponse, error) {
	var out models.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/players/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Move moves the player one cell in the given direction.
func (c *Client) Move(ctx context.Context, playerID int64, direction string) (*models.MoveResponse, error) {
	var out models.MoveResponse
	path := fmt.Sprintf("/api/players/%d/move", playerID)
	payload := map[string]string{"direction": direction}
	if err := c.do(ctx, http.MethodPost, path, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Restart restarts a dead player's session.
func (c *Client) Restart(ctx context.Context) (*models.MeResponse, error) {
	var out models.MeResponse
	if err := c.do(ctx, http.MethodPost, "/api/players/restart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInventory fetches the raw inventory payload. The caller normalizes the
// shape with models.DecodeInventory.
func (c *Client) GetInventory(ctx context.Context) (*models.InventoryResponse, error) {
	var out models.InventoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/inventory", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecipes fetches all known recipes.
func (c *Client) GetRecipes(ctx context.Context) (*models.RecipesResponse, error) {
	var out models.RecipesResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRecipeDuplicates fetches recipes the player has learned more than once.
func (c *Client) GetRecipeDuplicates(ctx context.Context) (*models.DuplicateRecipesResponse, error) {
	var out models.DuplicateRecipesResponse
	if err := c.do(ctx, http.MethodGet, "/api/recipes/duplicates", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecipeDuplicates trades duplicate recipes in.
func (c *Client) DeleteRecipeDuplicates(ctx context.Context) (*models.Envelope, error) {
	var out models.Envelope
	if err := c.do(ctx, http.MethodDelete, "/api/recipes/duplicates", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Craft crafts a recipe the given number of times.
func (c *Client) Craft(ctx context.Context, recipeID, quantity int64) (*models.CraftResponse, error) {
	var out models.CraftResponse
	payload := map[string]int64{"recipe_id": recipeID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/api/crafting/craft", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPlayerWorkstations fetches the workstations the player has built.
func (c *Client) GetPlayerWorkstations(ctx context.Context) (*models.WorkstationsResponse, error) {
	var out models.WorkstationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/workstations/mine", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWorkstations fetches all workstation definitions.
func (c *Client) GetWorkstations(ctx context.Context) (*models.WorkstationsResponse, error) {
	var out models.WorkstationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/workstations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Equip equips a material into an equipment slot.
func (c *Client) Equip(ctx context.Context, materialID int64, slot string) (*models.EquipResponse, error) {
	var out models.EquipResponse
	payload := map[string]interface{}{"material_id": materialID, "slot": slot}
	if err := c.do(ctx, http.MethodPost, "/api/equipment/equip", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unequip removes whatever is equipped in the slot.
func (c *Client) Unequip(ctx context.Context, slot string) (*models.EquipResponse, error) {
	var out models.EquipResponse
	payload := map[string]string{"slot": slot}
	if err := c.do(ctx, http.MethodPost, "/api/equipment/unequip", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAvailableBuildings fetches the building types the player can construct.
func (c *Client) GetAvailableBuildings(ctx context.Context) (*models.BuildingTypesResponse, error) {
	var out models.BuildingTypesResponse
	if err := c.do(ctx, http.MethodGet, "/api/buildings/available", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMyBuildings fetches the player's constructed and in-progress buildings.
func (c *Client) GetMyBuildings(ctx context.Context) (*models.BuildingsResponse, error) {
	var out models.BuildingsResponse
	if err := c.do(ctx, http.MethodGet, "/api/buildings/mine", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBuildingBonuses fetches the passive bonuses granted by completed
// buildings.
func (c *Client) GetBuildingBonuses(ctx context.Context) (*models.BuildingBonusesResponse, error) {
	var out models.BuildingBonusesResponse
	if err := c.do(ctx, http.MethodGet, "/api/buildings/bonuses", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Construct starts constructing a building on a cell.
func (c *Client) Construct(ctx context.Context, typeID, cellID int64) (*models.BuildingsResponse, error) {
	var out models.BuildingsResponse
	payload := map[string]int64{"type_id": typeID, "cell_id": cellID}
	if err := c.do(ctx, http.MethodPost, "/api/buildings/construct", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteBuilding finishes a building whose construction time has elapsed.
func (c *Client) CompleteBuilding(ctx context.Context, buildingID int64) (*models.BuildingsResponse, error) {
	var out models.BuildingsResponse
	path := fmt.Sprintf("/api/buildings/%d/complete", buildingID)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Gather gathers a material from a map cell.
func (c *Client) Gather(ctx context.Context, cellID, materialID int64) (*models.GatherResponse, error) {
	var out models.GatherResponse
	payload := map[string]int64{"cell_id": cellID, "material_id": materialID}
	if err := c.do(ctx, http.MethodPost, "/api/map/gather", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Attack attacks the current encounter's enemy.
func (c *Client) Attack(ctx context.Context) (*models.EncounterResponse, error) {
	var out models.EncounterResponse
	if err := c.do(ctx, http.MethodPost, "/api/encounter/attack", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Flee attempts to flee the current encounter.
func (c *Client) Flee(ctx context.Context) (*models.EncounterResponse, error) {
	var out models.EncounterResponse
	if err := c.do(ctx, http.MethodPost, "/api/encounter/flee", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSkills fetches the player's skill levels and unlocked talents.
func (c *Client) GetSkills(ctx context.Context) (*models.SkillsResponse, error) {
	var out models.SkillsResponse
	if err := c.do(ctx, http.MethodGet, "/api/skills", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSkillTree fetches the static skill tree definition.
func (c *Client) GetSkillTree(ctx context.Context) (*models.SkillTreeResponse, error) {
	var out models.SkillTreeResponse
	if err := c.do(ctx, http.MethodGet, "/api/skills/tree", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
