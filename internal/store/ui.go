package store

import (
	"context"
	"encoding/json"

	"github.com/ashfall-game/survival-client/internal/kvstore"
	"github.com/ashfall-game/survival-client/pkg/metrics"
	"go.uber.org/zap"
)

// Operation names the independent loading flags tracked by the UI slice.
type Operation string

const (
	OpPlayer    Operation = "player"
	OpInventory Operation = "inventory"
	OpCrafting  Operation = "crafting"
	OpGathering Operation = "gathering"
	OpMoving    Operation = "moving"
	OpConsuming Operation = "consuming"
	OpSkills    Operation = "skills"
)

// UIState holds presentation state: active tab, dialog-open flags, loading
// flags, and the two persisted category-expansion maps.
type UIState struct {
	ActiveTab         int
	Dialogs           map[string]bool
	Loading           map[Operation]bool
	InventoryExpanded map[string]bool
	CraftingExpanded  map[string]bool
}

func newUIState() UIState {
	return UIState{
		Dialogs:           make(map[string]bool),
		Loading:           make(map[Operation]bool),
		InventoryExpanded: make(map[string]bool),
		CraftingExpanded:  make(map[string]bool),
	}
}

func (u UIState) clone() UIState {
	out := UIState{ActiveTab: u.ActiveTab}
	out.Dialogs = cloneBoolMap(u.Dialogs)
	out.InventoryExpanded = cloneBoolMap(u.InventoryExpanded)
	out.CraftingExpanded = cloneBoolMap(u.CraftingExpanded)
	out.Loading = make(map[Operation]bool, len(u.Loading))
	for k, v := range u.Loading {
		out.Loading[k] = v
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SetActiveTab switches the active tab index.
func (s *Store) SetActiveTab(tab int) {
	s.mutate(func() {
		s.ui.ActiveTab = tab
		s.versions.UI++
	})
}

// SetDialogOpen flips a named dialog's open flag.
func (s *Store) SetDialogOpen(name string, open bool) {
	s.mutate(func() {
		s.ui.Dialogs[name] = open
		s.versions.UI++
	})
}

// SetLoading flips one operation's loading flag.
func (s *Store) SetLoading(op Operation, loading bool) {
	s.mutate(func() {
		s.ui.Loading[op] = loading
		s.versions.UI++
	})
}

// Loading reports one operation's loading flag.
func (s *Store) Loading(op Operation) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui.Loading[op]
}

// ToggleInventoryCategory flips a category's expanded flag and persists the
// updated map before returning.
func (s *Store) ToggleInventoryCategory(ctx context.Context, category string) {
	s.mutate(func() {
		s.ui.InventoryExpanded[category] = !s.ui.InventoryExpanded[category]
		s.versions.UI++
		s.persistExpansionMapLocked(ctx, kvstore.KeyInventoryExpandedCategories, s.ui.InventoryExpanded)
	})
}

// ToggleCraftingCategory flips a category's expanded flag and persists the
// updated map before returning.
func (s *Store) ToggleCraftingCategory(ctx context.Context, category string) {
	s.mutate(func() {
		s.ui.CraftingExpanded[category] = !s.ui.CraftingExpanded[category]
		s.versions.UI++
		s.persistExpansionMapLocked(ctx, kvstore.KeyCraftingExpandedCategories, s.ui.CraftingExpanded)
	})
}

// resetUINavigationLocked resets tab and dialog state to initial values. The
// persisted expansion maps survive a reset, matching their durable semantics.
func (s *Store) resetUINavigationLocked() {
	s.ui.ActiveTab = 0
	s.ui.Dialogs = make(map[string]bool)
	s.ui.Loading = make(map[Operation]bool)
}

// loadExpansionMap rehydrates a persisted expansion map. Missing keys and
// corrupt JSON both yield the all-collapsed default, never an error.
func (s *Store) loadExpansionMap(key string) map[string]bool {
	data, err := s.kv.Get(context.Background(), key)
	if err != nil {
		if err != kvstore.ErrNotFound {
			metrics.KVOperationsTotal.WithLabelValues("get", "error").Inc()
			s.logger.Warn("failed to load expansion map, using defaults",
				zap.String("key", key), zap.Error(err))
		}
		return make(map[string]bool)
	}
	metrics.KVOperationsTotal.WithLabelValues("get", "ok").Inc()

	var m map[string]bool
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		s.logger.Warn("corrupt expansion map in kv store, using defaults",
			zap.String("key", key), zap.Error(err))
		return make(map[string]bool)
	}
	return m
}

func (s *Store) persistExpansionMapLocked(ctx context.Context, key string, m map[string]bool) {
	data, err := json.Marshal(m)
	if err != nil {
		s.logger.Error("failed to marshal expansion map", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		metrics.KVOperationsTotal.WithLabelValues("set", "error").Inc()
		s.logger.Error("failed to persist expansion map", zap.String("key", key), zap.Error(err))
		return
	}
	metrics.KVOperationsTotal.WithLabelValues("set", "ok").Inc()
}
