package syncer

import (
	"context"

	"github.com/ashfall-game/survival-client/internal/models"
)

// MockGameAPI is a func-field mock of GameAPI. Unset fields return empty
// successful responses.
type MockGameAPI struct {
	GetMeFunc                  func(ctx context.Context) (*models.MeResponse, error)
	MoveFunc                   func(ctx context.Context, playerID int64, direction string) (*models.MoveResponse, error)
	RestartFunc                func(ctx context.Context) (*models.MeResponse, error)
	GetInventoryFunc           func(ctx context.Context) (*models.InventoryResponse, error)
	GetRecipesFunc             func(ctx context.Context) (*models.RecipesResponse, error)
	GetRecipeDuplicatesFunc    func(ctx context.Context) (*models.DuplicateRecipesResponse, error)
	DeleteRecipeDuplicatesFunc func(ctx context.Context) (*models.Envelope, error)
	CraftFunc                  func(ctx context.Context, recipeID, quantity int64) (*models.CraftResponse, error)
	GetPlayerWorkstationsFunc  func(ctx context.Context) (*models.WorkstationsResponse, error)
	GetWorkstationsFunc        func(ctx context.Context) (*models.WorkstationsResponse, error)
	EquipFunc                  func(ctx context.Context, materialID int64, slot string) (*models.EquipResponse, error)
	UnequipFunc                func(ctx context.Context, slot string) (*models.EquipResponse, error)
	GetAvailableBuildingsFunc  func(ctx context.Context) (*models.BuildingTypesResponse, error)
	GetMyBuildingsFunc         func(ctx context.Context) (*models.BuildingsResponse, error)
	GetBuildingBonusesFunc     func(ctx context.Context) (*models.BuildingBonusesResponse, error)
	ConstructFunc              func(ctx context.Context, typeID, cellID int64) (*models.BuildingsResponse, error)
	CompleteBuildingFunc       func(ctx context.Context, buildingID int64) (*models.BuildingsResponse, error)
	GatherFunc                 func(ctx context.Context, cellID, materialID int64) (*models.GatherResponse, error)
	AttackFunc                 func(ctx context.Context) (*models.EncounterResponse, error)
	FleeFunc                   func(ctx context.Context) (*models.EncounterResponse, error)
	GetSkillsFunc              func(ctx context.Context) (*models.SkillsResponse, error)
	GetSkillTreeFunc           func(ctx context.Context) (*models.SkillTreeResponse, error)
}

func (m *MockGameAPI) GetMe(ctx context.Context) (*models.MeResponse, error) {
	if m.GetMeFunc != nil {
		return m.GetMeFunc(ctx)
	}
	return &models.MeResponse{Player: models.Player{ID: 1}}, nil
}

func (m *MockGameAPI) Move(ctx context.Context, playerID int64, direction string) (*models.MoveResponse, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, playerID, direction)
	}
	return &models.MoveResponse{}, nil
}

func (m *MockGameAPI) Restart(ctx context.Context) (*models.MeResponse, error) {
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx)
	}
	return &models.MeResponse{Player: models.Player{ID: 1}}, nil
}

func (m *MockGameAPI) GetInventory(ctx context.Context) (*models.InventoryResponse, error) {
	if m.GetInventoryFunc != nil {
		return m.GetInventoryFunc(ctx)
	}
	return &models.InventoryResponse{}, nil
}

func (m *MockGameAPI) GetRecipes(ctx context.Context) (*models.RecipesResponse, error) {
	if m.GetRecipesFunc != nil {
		return m.GetRecipesFunc(ctx)
	}
	return &models.RecipesResponse{}, nil
}

func (m *MockGameAPI) GetRecipeDuplicates(ctx context.Context) (*models.DuplicateRecipesResponse, error) {
	if m.GetRecipeDuplicatesFunc != nil {
		return m.GetRecipeDuplicatesFunc(ctx)
	}
	return &models.DuplicateRecipesResponse{}, nil
}

func (m *MockGameAPI) DeleteRecipeDuplicates(ctx context.Context) (*models.Envelope, error) {
	if m.DeleteRecipeDuplicatesFunc != nil {
		return m.DeleteRecipeDuplicatesFunc(ctx)
	}
	return &models.Envelope{}, nil
}

func (m *MockGameAPI) Craft(ctx context.Context, recipeID, quantity int64) (*models.CraftResponse, error) {
	if m.CraftFunc != nil {
		return m.CraftFunc(ctx, recipeID, quantity)
	}
	return &models.CraftResponse{}, nil
}

func (m *MockGameAPI) GetPlayerWorkstations(ctx context.Context) (*models.WorkstationsResponse, error) {
	if m.GetPlayerWorkstationsFunc != nil {
		return m.GetPlayerWorkstationsFunc(ctx)
	}
	return &models.WorkstationsResponse{}, nil
}

func (m *MockGameAPI) GetWorkstations(ctx context.Context) (*models.WorkstationsResponse, error) {
	if m.GetWorkstationsFunc != nil {
		return m.GetWorkstationsFunc(ctx)
	}
	return &models.WorkstationsResponse{}, nil
}

func (m *MockGameAPI) Equip(ctx context.Context, materialID int64, slot string) (*models.EquipResponse, error) {
	if m.EquipFunc != nil {
		return m.EquipFunc(ctx, materialID, slot)
	}
	return &models.EquipResponse{}, nil
}

func (m *MockGameAPI) Unequip(ctx context.Context, slot string) (*models.EquipResponse, error) {
	if m.UnequipFunc != nil {
		return m.UnequipFunc(ctx, slot)
	}
	return &models.EquipResponse{}, nil
}

func (m *MockGameAPI) GetAvailableBuildings(ctx context.Context) (*models.BuildingTypesResponse, error) {
	if m.GetAvailableBuildingsFunc != nil {
		return m.GetAvailableBuildingsFunc(ctx)
	}
	return &models.BuildingTypesResponse{}, nil
}

func (m *MockGameAPI) GetMyBuildings(ctx context.Context) (*models.BuildingsResponse, error) {
	if m.GetMyBuildingsFunc != nil {
		return m.GetMyBuildingsFunc(ctx)
	}
	return &models.BuildingsResponse{}, nil
}

func (m *MockGameAPI) GetBuildingBonuses(ctx context.Context) (*models.BuildingBonusesResponse, error) {
	if m.GetBuildingBonusesFunc != nil {
		return m.GetBuildingBonusesFunc(ctx)
	}
	return &models.BuildingBonusesResponse{}, nil
}

func (m *MockGameAPI) Construct(ctx context.Context, typeID, cellID int64) (*models.BuildingsResponse, error) {
	if m.ConstructFunc != nil {
		return m.ConstructFunc(ctx, typeID, cellID)
	}
	return &models.BuildingsResponse{}, nil
}

func (m *MockGameAPI) CompleteBuilding(ctx context.Context, buildingID int64) (*models.BuildingsResponse, error) {
	if m.CompleteBuildingFunc != nil {
		return m.CompleteBuildingFunc(ctx, buildingID)
	}
	return &models.BuildingsResponse{}, nil
}

func (m *MockGameAPI) Gather(ctx context.Context, cellID, materialID int64) (*models.GatherResponse, error) {
	if m.GatherFunc != nil {
		return m.GatherFunc(ctx, cellID, materialID)
	}
	return &models.GatherResponse{}, nil
}

func (m *MockGameAPI) Attack(ctx context.Context) (*models.EncounterResponse, error) {
	if m.AttackFunc != nil {
		return m.AttackFunc(ctx)
	}
	return &models.EncounterResponse{}, nil
}

func (m *MockGameAPI) Flee(ctx context.Context) (*models.EncounterResponse, error) {
	if m.FleeFunc != nil {
		return m.FleeFunc(ctx)
	}
	return &models.EncounterResponse{}, nil
}

func (m *MockGameAPI) GetSkills(ctx context.Context) (*models.SkillsResponse, error) {
	if m.GetSkillsFunc != nil {
		return m.GetSkillsFunc(ctx)
	}
	return &models.SkillsResponse{}, nil
}

func (m *MockGameAPI) GetSkillTree(ctx context.Context) (*models.SkillTreeResponse, error) {
	if m.GetSkillTreeFunc != nil {
		return m.GetSkillTreeFunc(ctx)
	}
	return &models.SkillTreeResponse{}, nil
}
