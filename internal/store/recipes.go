package store

import (
	"sort"
	"time"

	"github.com/ashfall-game/survival-client/internal/models"
)

// CraftingStats aggregates the crafting history: total crafts and the five
// recipes with the highest cumulative crafted quantity.
type CraftingStats struct {
	TotalCrafts int64
	TopRecipes  []RecipeCount
}

// RecipeCount pairs a recipe name with its cumulative crafted quantity.
type RecipeCount struct {
	Name     string
	Quantity int64
}

// SetRecipes replaces the recipe collection wholesale.
func (s *Store) SetRecipes(recipes []models.Recipe) {
	s.mutate(func() {
		s.recipes = append([]models.Recipe(nil), recipes...)
		s.versions.Recipes++
	})
}

// Recipes returns a copy of the current recipe collection.
func (s *Store) Recipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Recipe(nil), s.recipes...)
}

// AddCraftingHistory prepends a timestamped copy of the entry and truncates
// the history to the most recent 50 entries, newest first.
func (s *Store) AddCraftingHistory(entry models.CraftingHistoryEntry) {
	s.mutate(func() {
		entry.CreatedAt = time.Now()
		history := make([]models.CraftingHistoryEntry, 0, len(s.craftingHistory)+1)
		history = append(history, entry)
		history = append(history, s.craftingHistory...)
		if len(history) > models.CraftingHistoryLimit {
			history = history[:models.CraftingHistoryLimit]
		}
		s.craftingHistory = history
		s.versions.Recipes++
	})
}

// ClearHistory empties the crafting history.
func (s *Store) ClearHistory() {
	s.mutate(func() {
		s.craftingHistory = nil
		s.versions.Recipes++
	})
}

// CraftingHistory returns a copy of the history, newest first.
func (s *Store) CraftingHistory() []models.CraftingHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CraftingHistoryEntry(nil), s.craftingHistory...)
}

// CraftingStats aggregates the current history. Ties in the top-5 ranking are
// broken by first appearance in the history, so the ordering is stable for a
// given history.
func (s *Store) CraftingStats() CraftingStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := CraftingStats{}
	totals := make(map[string]int64)
	order := make([]string, 0)
	for _, entry := range s.craftingHistory {
		stats.TotalCrafts += entry.Quantity
		if _, seen := totals[entry.RecipeName]; !seen {
			order = append(order, entry.RecipeName)
		}
		totals[entry.RecipeName] += entry.Quantity
	}

	counts := make([]RecipeCount, 0, len(order))
	for _, name := range order {
		counts = append(counts, RecipeCount{Name: name, Quantity: totals[name]})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Quantity > counts[j].Quantity
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	stats.TopRecipes = counts
	return stats
}
