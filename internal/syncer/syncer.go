package syncer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ashfall-game/survival-client/internal/api"
	"github.com/ashfall-game/survival-client/internal/kvstore"
	"github.com/ashfall-game/survival-client/internal/models"
	"github.com/ashfall-game/survival-client/internal/notify"
	"github.com/ashfall-game/survival-client/internal/store"
	"github.com/ashfall-game/survival-client/pkg/metrics"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// GameAPI is the remote surface the syncer consumes. *api.Client implements
// it; tests substitute a func-field mock.
type GameAPI interface {
	GetMe(ctx context.Context) (*models.MeResponse, error)
	Move(ctx context.Context, playerID int64, direction string) (*models.MoveResponse, error)
	Restart(ctx context.Context) (*models.MeResponse, error)
	GetInventory(ctx context.Context) (*models.InventoryResponse, error)
	GetRecipes(ctx context.Context) (*models.RecipesResponse, error)
	GetRecipeDuplicates(ctx context.Context) (*models.DuplicateRecipesResponse, error)
	DeleteRecipeDuplicates(ctx context.Context) (*models.Envelope, error)
	Craft(ctx context.Context, recipeID, quantity int64) (*models.CraftResponse, error)
	GetPlayerWorkstations(ctx context.Context) (*models.WorkstationsResponse, error)
	GetWorkstations(ctx context.Context) (*models.WorkstationsResponse, error)
	Equip(ctx context.Context, materialID int64, slot string) (*models.EquipResponse, error)
	Unequip(ctx context.Context, slot string) (*models.EquipResponse, error)
	GetAvailableBuildings(ctx context.Context) (*models.BuildingTypesResponse, error)
	GetMyBuildings(ctx context.Context) (*models.BuildingsResponse, error)
	GetBuildingBonuses(ctx context.Context) (*models.BuildingBonusesResponse, error)
	Construct(ctx context.Context, typeID, cellID int64) (*models.BuildingsResponse, error)
	CompleteBuilding(ctx context.Context, buildingID int64) (*models.BuildingsResponse, error)
	Gather(ctx context.Context, cellID, materialID int64) (*models.GatherResponse, error)
	Attack(ctx context.Context) (*models.EncounterResponse, error)
	Flee(ctx context.Context) (*models.EncounterResponse, error)
	GetSkills(ctx context.Context) (*models.SkillsResponse, error)
	GetSkillTree(ctx context.Context) (*models.SkillTreeResponse, error)
}

// DefaultRefreshInterval is the background polling cadence.
const DefaultRefreshInterval = 2 * time.Minute

// Manager orchestrates data synchronization between the remote API and the
// store: session bootstrap, full and targeted refreshes, the polling loop,
// and the user-action operations.
type Manager struct {
	store     *store.Store
	client    GameAPI
	queue     *notify.Queue
	kv        kvstore.KV
	scheduler notify.Scheduler
	logger    *zap.Logger

	refreshInterval time.Duration

	// generation guards against a stale full-refresh response overwriting
	// the result of a newer one.
	generation atomic.Uint64

	mu       sync.Mutex
	stopPoll chan struct{}
	cancels  []func()
	closed   bool

	wg sync.WaitGroup
}

// Deps are the manager's constructor dependencies.
type Deps struct {
	Store           *store.Store
	Client          GameAPI
	Queue           *notify.Queue
	KV              kvstore.KV
	Scheduler       notify.Scheduler
	Logger          *zap.Logger
	RefreshInterval time.Duration
}

// New constructs a sync manager.
func New(deps Deps) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scheduler := deps.Scheduler
	if scheduler == nil {
		scheduler = notify.NewClockScheduler()
	}
	interval := deps.RefreshInterval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Manager{
		store:           deps.Store,
		client:          deps.Client,
		queue:           deps.Queue,
		kv:              deps.KV,
		scheduler:       scheduler,
		logger:          logger,
		refreshInterval: interval,
	}
}

// TokenSource returns a token source reading the stored session credential
// from the given key-value store.
func TokenSource(kv kvstore.KV) api.TokenSource {
	return func(ctx context.Context) (string, error) {
		data, err := kv.Get(ctx, kvstore.KeyToken)
		if err != nil {
			if errors.Is(err, kvstore.ErrNotFound) {
				return "", nil
			}
			return "", err
		}
		return string(data), nil
	}
}

// Bootstrap restores the session from a previously stored credential. With no
// stored token, or a token whose JWT expiry has passed, the session stays
// unauthenticated and the user must re-trigger the auth flow.
func (m *Manager) Bootstrap(ctx context.Context) error {
	data, err := m.kv.Get(ctx, kvstore.KeyToken)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			m.logger.Info("no stored session token, staying unauthenticated")
			return nil
		}
		return errors.Wrap(err, "failed to read stored token")
	}

	if tokenExpired(string(data)) {
		m.logger.Info("stored session token is expired, staying unauthenticated")
		return nil
	}

	m.store.SetAuthenticated(true)
	return m.FetchPlayerData(ctx)
}

// tokenExpired inspects the JWT exp claim without verifying the signature.
// The server verifies for real; this only avoids a doomed request on startup.
// Tokens that do not parse as JWTs are passed through to the server.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// FetchPlayerData refreshes the player record and inventory concurrently. On
// success both slices are written; a response superseded by a newer refresh
// is discarded. A 401 resets the player slice and clears the authenticated
// flag (the stored token is kept so bootstrap remains the sole re-auth path).
// Any other failure is logged and prior state kept: stale-but-present beats
// cleared-on-transient-error.
func (m *Manager) FetchPlayerData(ctx context.Context) error {
	gen := m.generation.Add(1)

	m.store.SetLoading(store.OpPlayer, true)
	m.store.SetLoading(store.OpInventory, true)
	defer func() {
		m.store.SetLoading(store.OpPlayer, false)
		m.store.SetLoading(store.OpInventory, false)
	}()

	var (
		wg     sync.WaitGroup
		me     *models.MeResponse
		meErr  error
		inv    *models.InventoryResponse
		invErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		me, meErr = m.client.GetMe(ctx)
	}()
	go func() {
		defer wg.Done()
		inv, invErr = m.client.GetInventory(ctx)
	}()
	wg.Wait()

	if api.IsAuth(meErr) || api.IsAuth(invErr) {
		m.logger.Warn("session rejected by server, logging out")
		metrics.RefreshesTotal.WithLabelValues("unauthorized").Inc()
		m.store.ResetPlayer()
		return nil
	}
	if meErr != nil {
		metrics.RefreshesTotal.WithLabelValues("error").Inc()
		m.logger.Error("failed to fetch player record", zap.Error(meErr))
		return meErr
	}
	if invErr != nil {
		metrics.RefreshesTotal.WithLabelValues("error").Inc()
		m.logger.Error("failed to fetch inventory", zap.Error(invErr))
		return invErr
	}

	if m.generation.Load() != gen {
		metrics.StaleRefreshesDropped.Inc()
		m.logger.Debug("dropping superseded refresh response")
		return nil
	}

	if err := models.ValidatePlayer(&me.Player); err != nil {
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		m.logger.Error("server returned invalid player record", zap.Error(err))
		return errors.Wrap(err, "invalid player record")
	}

	items, err := models.DecodeInventory(inv.Items)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		m.logger.Error("failed to decode inventory payload", zap.Error(err))
		return errors.Wrap(err, "failed to decode inventory")
	}

	m.store.SetPlayer(&me.Player)
	m.store.SetCurrentCell(me.CurrentCell)
	m.store.SetInventory(items)
	metrics.RefreshesTotal.WithLabelValues("ok").Inc()

	if me.EnergyRegenerated > 0 {
		m.queue.Show(
			fmt.Sprintf("Regenerated %.0f energy while you were offline for %d minutes",
				me.EnergyRegenerated, me.MinutesOffline),
			notify.SeverityInfo,
		)
	}

	m.showAchievements(me.AchievementsUnlocked)
	m.showAchievements(inv.AchievementsUnlocked)
	return nil
}

// StartAutoRefresh begins the background polling loop. The loop re-invokes
// FetchPlayerData on the configured interval while the session is
// authenticated and tears itself down when authentication is lost or the
// manager is closed. No orphaned ticker outlives the session.
func (m *Manager) StartAutoRefresh(ctx context.Context) {
	m.mu.Lock()
	if m.closed || m.stopPoll != nil {
		m.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.stopPoll = stop
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !m.store.Authenticated() {
					m.clearPoll()
					return
				}
				if err := m.FetchPlayerData(ctx); err != nil {
					// Background failures are logged inside FetchPlayerData,
					// never surfaced as notifications on a 2-minute cadence.
					continue
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) clearPoll() {
	m.mu.Lock()
	m.stopPoll = nil
	m.mu.Unlock()
}

// StopAutoRefresh tears the polling loop down.
func (m *Manager) StopAutoRefresh() {
	m.mu.Lock()
	if m.stopPoll != nil {
		close(m.stopPoll)
		m.stopPoll = nil
	}
	m.mu.Unlock()
}

// Logout ends the session explicitly: the stored token is deleted (unlike a
// background 401, which keeps it) and the whole store resets.
func (m *Manager) Logout(ctx context.Context) error {
	m.StopAutoRefresh()
	if err := m.kv.Delete(ctx, kvstore.KeyToken); err != nil {
		m.logger.Error("failed to delete stored token", zap.Error(err))
		return errors.Wrap(err, "failed to delete stored token")
	}
	m.store.ResetAll()
	return nil
}

// Close releases everything the manager owns: the polling loop and any
// pending achievement-stagger timers.
func (m *Manager) Close() {
	m.StopAutoRefresh()

	m.mu.Lock()
	m.closed = true
	cancels := m.cancels
	m.cancels = nil
	m.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
	m.wg.Wait()
}
