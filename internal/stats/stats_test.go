package stats

import (
	"testing"

	"github.com/ashfall-game/survival-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		assert.Equal(t, 20.0, Percent(20, 100))
	})

	t.Run("zero max yields zero, never NaN", func(t *testing.T) {
		assert.Equal(t, 0.0, Percent(42, 0))
		assert.Equal(t, 0.0, Percent(0, 0))
	})

	t.Run("over 100 is not clamped", func(t *testing.T) {
		assert.Equal(t, 150.0, Percent(150, 100))
	})
}

func TestDirectBand(t *testing.T) {
	cases := []struct {
		percent float64
		band    Band
	}{
		{100, BandGood},
		{51, BandGood},
		{50, BandWarning},
		// 20 is the inclusive lower edge of the warning band.
		{20, BandWarning},
		{19.9, BandCritical},
		{0, BandCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.band, DirectBand(tc.percent), "percent %v", tc.percent)
	}
}

func TestInvertedBand(t *testing.T) {
	cases := []struct {
		percent float64
		band    Band
	}{
		{0, BandGood},
		{29.9, BandGood},
		{30, BandWarning},
		{60, BandWarning},
		{60.1, BandCritical},
		{100, BandCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.band, InvertedBand(tc.percent), "percent %v", tc.percent)
	}
}

func TestComputeVitals(t *testing.T) {
	t.Run("nil player yields nil", func(t *testing.T) {
		assert.Nil(t, ComputeVitals(nil))
	})

	t.Run("low energy scenario", func(t *testing.T) {
		vitals := ComputeVitals(&models.Player{
			Energy: 20, MaxEnergy: 100,
			Health: 90, MaxHealth: 100,
			Hunger: 10, MaxHunger: 100,
			Thirst: 55, MaxThirst: 100,
			Radiation: 75,
		})
		require.NotNil(t, vitals)
		assert.Equal(t, 20.0, vitals.Energy.Percent)
		assert.Equal(t, BandWarning, vitals.Energy.Band)
		assert.Equal(t, BandGood, vitals.Health.Band)
		assert.Equal(t, BandCritical, vitals.Hunger.Band)
		assert.Equal(t, BandGood, vitals.Thirst.Band)
		assert.Equal(t, BandCritical, vitals.Radiation.Band)
	})

	t.Run("zero maxima stay finite", func(t *testing.T) {
		vitals := ComputeVitals(&models.Player{})
		assert.Equal(t, 0.0, vitals.Energy.Percent)
		assert.Equal(t, 0.0, vitals.Health.Percent)
	})
}

func TestXPForNextLevel(t *testing.T) {
	assert.Equal(t, int64(100), XPForNextLevel(1))
	assert.Equal(t, int64(700), XPForNextLevel(7))
	assert.Equal(t, int64(0), XPForNextLevel(0))
}

func TestComputeProgress(t *testing.T) {
	progress := ComputeProgress(&models.Player{Level: 4, Experience: 100})
	require.NotNil(t, progress)
	assert.Equal(t, int64(400), progress.XPToNext)
	assert.Equal(t, 25.0, progress.XPPercent)

	assert.Nil(t, ComputeProgress(nil))
}

func TestGroupItems_FirstSeenOrder(t *testing.T) {
	items := []models.InventoryItem{
		{Material: models.Material{ID: 1}, Category: "weapons"},
		{Material: models.Material{ID: 2}, Category: "ammo"},
		{Material: models.Material{ID: 3}, Category: "weapons"},
	}

	groups := GroupItems(items)
	require.Len(t, groups, 2)
	assert.Equal(t, "weapons", groups[0].Category)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "ammo", groups[1].Category)
}

func TestGroupRecipes_FirstSeenOrder(t *testing.T) {
	recipes := []models.Recipe{
		{ID: 1, ResultMaterial: models.Material{Category: "tools"}},
		{ID: 2, ResultMaterial: models.Material{Category: "food"}},
		{ID: 3, ResultMaterial: models.Material{Category: "tools"}},
	}

	groups := GroupRecipes(recipes)
	require.Len(t, groups, 2)
	assert.Equal(t, "tools", groups[0].Category)
	assert.Equal(t, "food", groups[1].Category)
}

func TestCanCraft_MergesDuplicateEntries(t *testing.T) {
	recipe := models.Recipe{
		Ingredients: []models.RecipeIngredient{{MaterialID: 1, Quantity: 5}},
	}
	// Material 1 split across two category buckets: 2 + 3 = 5.
	items := []models.InventoryItem{
		{Material: models.Material{ID: 1}, Quantity: 2, Category: "wood"},
		{Material: models.Material{ID: 1}, Quantity: 3, Category: "stone"},
	}

	assert.True(t, CanCraft(recipe, items))

	recipe.Ingredients[0].Quantity = 6
	assert.False(t, CanCraft(recipe, items))
}
