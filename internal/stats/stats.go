package stats

import "github.com/ashfall-game/survival-client/internal/models"

// Band is the visual severity category assigned to a percentage.
type Band string

const (
	BandGood     Band = "good"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

// Percent computes 100*current/max. A max of zero (or less) yields 0 so no
// NaN or Infinity ever reaches rendered output. Values over 100 are not
// clamped.
func Percent(current, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return current / max * 100
}

// DirectBand bands a "higher is better" percentage. 20 is the inclusive lower
// edge of the warning band, so exactly 20% reads as warning, not critical.
func DirectBand(percent float64) Band {
	switch {
	case percent > 50:
		return BandGood
	case percent >= 20:
		return BandWarning
	default:
		return BandCritical
	}
}

// InvertedBand bands a "lower is better" percentage such as radiation.
func InvertedBand(percent float64) Band {
	switch {
	case percent < 30:
		return BandGood
	case percent <= 60:
		return BandWarning
	default:
		return BandCritical
	}
}

// Vital is one presentation-ready stat bar.
type Vital struct {
	Current float64
	Max     float64
	Percent float64
	Band    Band
}

// PlayerVitals are the presentation-ready vital bars for one player record.
type PlayerVitals struct {
	Energy    Vital
	Health    Vital
	Hunger    Vital
	Thirst    Vital
	Radiation Vital
}

// ComputeVitals derives all vital bars from a player record. Returns nil when
// the player is nil; derived percentages are undefined without a record.
func ComputeVitals(p *models.Player) *PlayerVitals {
	if p == nil {
		return nil
	}
	return &PlayerVitals{
		Energy:    directVital(p.Energy, p.MaxEnergy),
		Health:    directVital(p.Health, p.MaxHealth),
		Hunger:    directVital(p.Hunger, p.MaxHunger),
		Thirst:    directVital(p.Thirst, p.MaxThirst),
		Radiation: invertedVital(p.Radiation),
	}
}

func directVital(current, max float64) Vital {
	percent := Percent(current, max)
	return Vital{Current: current, Max: max, Percent: percent, Band: DirectBand(percent)}
}

// Radiation is delivered on a 0-100 scale with no separate maximum.
func invertedVital(value float64) Vital {
	return Vital{Current: value, Max: 100, Percent: value, Band: InvertedBand(value)}
}

// XPForNextLevel is the single source of truth for the level curve.
func XPForNextLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	return int64(level) * 100
}

// Progress is the presentation-ready experience bar.
type Progress struct {
	Level      int
	Experience int64
	XPToNext   int64
	XPPercent  float64
}

// ComputeProgress derives the experience bar from a player record.
func ComputeProgress(p *models.Player) *Progress {
	if p == nil {
		return nil
	}
	next := XPForNextLevel(p.Level)
	return &Progress{
		Level:      p.Level,
		Experience: p.Experience,
		XPToNext:   next,
		XPPercent:  Percent(float64(p.Experience), float64(next)),
	}
}

// ItemGroup is one inventory category bucket in first-seen order.
type ItemGroup struct {
	Category string
	Items    []models.InventoryItem
}

// GroupItems buckets inventory items by category tag, preserving first-seen
// category order and item order within each bucket. Inputs are not mutated.
func GroupItems(items []models.InventoryItem) []ItemGroup {
	var groups []ItemGroup
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, ItemGroup{Category: item.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// RecipeGroup is one recipe category bucket in first-seen order.
type RecipeGroup struct {
	Category string
	Recipes  []models.Recipe
}

// GroupRecipes buckets recipes by their result material's category,
// preserving first-seen order.
func GroupRecipes(recipes []models.Recipe) []RecipeGroup {
	var groups []RecipeGroup
	index := make(map[string]int)
	for _, recipe := range recipes {
		category := recipe.ResultMaterial.Category
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, RecipeGroup{Category: category})
		}
		groups[i].Recipes = append(groups[i].Recipes, recipe)
	}
	return groups
}

// CanCraft reports whether the inventory holds every ingredient of the
// recipe. Quantities are summed across duplicate entries of the same material
// id, so items split across category buckets still count once.
func CanCraft(recipe models.Recipe, items []models.InventoryItem) bool {
	for _, ingredient := range recipe.Ingredients {
		if models.QuantityByMaterial(items, ingredient.MaterialID) < ingredient.Quantity {
			return false
		}
	}
	return true
}
