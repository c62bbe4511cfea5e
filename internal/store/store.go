package store

import (
	"sync"

	"github.com/ashfall-game/survival-client/internal/kvstore"
	"github.com/ashfall-game/survival-client/internal/models"
	"go.uber.org/zap"
)

// Versions carries one monotonic counter per slice. A counter increments on
// every mutation of its slice, so consumers can key caches on content version
// instead of object identity.
type Versions struct {
	Player    uint64
	Inventory uint64
	Recipes   uint64
	Skills    uint64
	UI        uint64
}

// Snapshot is a consistent copy of the whole store taken under one lock
// acquisition. All slices are freshly allocated; mutating a snapshot never
// touches store state.
type Snapshot struct {
	Player        *models.Player
	Authenticated bool
	CurrentCell   *models.Cell

	Inventory       []models.InventoryItem
	Recipes         []models.Recipe
	CraftingHistory []models.CraftingHistoryEntry

	Skills          []models.Skill
	SkillTree       *models.SkillTree
	UnlockedTalents map[int64]bool

	UI UIState

	Versions Versions
}

// Subscriber receives a snapshot after every committed mutation.
type Subscriber func(Snapshot)

// Store is the composed state container: all slices share one mutex, so a
// mutation in any slice is visible atomically to subscribers reading any
// other slice. Construct one per application instance with New; there is no
// package-level singleton.
type Store struct {
	mu sync.RWMutex

	kv     kvstore.KV
	logger *zap.Logger

	// player slice
	player        *models.Player
	authenticated bool
	currentCell   *models.Cell

	// inventory slice
	inventory []models.InventoryItem

	// recipes slice
	recipes         []models.Recipe
	craftingHistory []models.CraftingHistoryEntry

	// skills slice
	skills          []models.Skill
	skillTree       *models.SkillTree
	unlockedTalents map[int64]bool

	// ui slice
	ui UIState

	versions    Versions
	subscribers []Subscriber
}

// Deps are the store's constructor dependencies.
type Deps struct {
	KV     kvstore.KV
	Logger *zap.Logger
}

// New constructs a store and rehydrates the persisted UI preference maps.
// Corrupt or missing persisted data silently falls back to defaults.
func New(deps Deps) *Store {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	kv := deps.KV
	if kv == nil {
		kv = kvstore.NewMemory()
	}

	s := &Store{
		kv:              kv,
		logger:          logger,
		unlockedTalents: make(map[int64]bool),
		ui:              newUIState(),
	}
	s.ui.InventoryExpanded = s.loadExpansionMap(kvstore.KeyInventoryExpandedCategories)
	s.ui.CraftingExpanded = s.loadExpansionMap(kvstore.KeyCraftingExpandedCategories)
	return s
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// committed mutation. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Versions returns the current per-slice version counters.
func (s *Store) Versions() Versions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions
}

// ResetAll clears every slice and resets UI navigation state in a single
// atomic transition. Subscribers never observe a partially reset store.
// Calling it twice leaves the same final state as calling it once.
func (s *Store) ResetAll() {
	s.mutate(func() {
		s.resetPlayerLocked()
		s.inventory = nil
		s.recipes = nil
		s.craftingHistory = nil
		s.skills = nil
		s.skillTree = nil
		s.unlockedTalents = make(map[int64]bool)
		s.resetUINavigationLocked()

		s.versions.Player++
		s.versions.Inventory++
		s.versions.Recipes++
		s.versions.Skills++
		s.versions.UI++
	})
}

// mutate runs fn under the write lock, then notifies subscribers with a
// snapshot taken before the lock is released.
func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Authenticated: s.authenticated,
		UI:            s.ui.clone(),
		Versions:      s.versions,
	}
	if s.player != nil {
		p := *s.player
		snap.Player = &p
	}
	if s.currentCell != nil {
		c := *s.currentCell
		snap.CurrentCell = &c
	}
	if s.skillTree != nil {
		t := *s.skillTree
		snap.SkillTree = &t
	}
	snap.Inventory = append([]models.InventoryItem(nil), s.inventory...)
	snap.Recipes = append([]models.Recipe(nil), s.recipes...)
	snap.CraftingHistory = append([]models.CraftingHistoryEntry(nil), s.craftingHistory...)
	snap.Skills = append([]models.Skill(nil), s.skills...)
	snap.UnlockedTalents = make(map[int64]bool, len(s.unlockedTalents))
	for id, ok := range s.unlockedTalents {
		snap.UnlockedTalents[id] = ok
	}
	return snap
}
