package syncer

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ashfall-game/survival-client/internal/api"
	"github.com/ashfall-game/survival-client/internal/kvstore"
	"github.com/ashfall-game/survival-client/internal/models"
	"github.com/ashfall-game/survival-client/internal/notify"
	"github.com/ashfall-game/survival-client/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store     *store.Store
	kv        kvstore.KV
	queue     *notify.Queue
	scheduler *notify.RecordingScheduler
	api       *MockGameAPI
	manager   *Manager
}

func newFixture() *fixture {
	kv := kvstore.NewMemory()
	s := store.New(store.Deps{KV: kv})
	scheduler := notify.NewRecordingScheduler()
	queue := notify.NewQueue(notify.NewRecordingScheduler(), zap.NewNop())
	mock := &MockGameAPI{}
	manager := New(Deps{
		Store:     s,
		Client:    mock,
		Queue:     queue,
		KV:        kv,
		Scheduler: scheduler,
		Logger:    zap.NewNop(),
	})
	return &fixture{
		store:     s,
		kv:        kv,
		queue:     queue,
		scheduler: scheduler,
		api:       mock,
		manager:   manager,
	}
}

func rawItems(items []models.InventoryItem) json.RawMessage {
	data, _ := json.Marshal(items)
	return data
}

func TestFetchPlayerData_Success(t *testing.T) {
	f := newFixture()
	f.api.GetMeFunc = func(ctx context.Context) (*models.MeResponse, error) {
		return &models.MeResponse{
			Player:      models.Player{ID: 7, Username: "ash", Energy: 40, MaxEnergy: 100},
			CurrentCell: &models.Cell{ID: 12},
		}, nil
	}
	f.api.GetInventoryFunc = func(ctx context.Context) (*models.InventoryResponse, error) {
		return &models.InventoryResponse{Items: rawItems([]models.InventoryItem{
			{Material: models.Material{ID: 1, Name: "Wood"}, Quantity: 3},
		})}, nil
	}

	require.NoError(t, f.manager.FetchPlayerData(context.Background()))

	snap := f.store.Snapshot()
	require.NotNil(t, snap.Player)
	assert.Equal(t, int64(7), snap.Player.ID)
	require.NotNil(t, snap.CurrentCell)
	assert.Equal(t, int64(12), snap.CurrentCell.ID)
	require.Len(t, snap.Inventory, 1)
	assert.Equal(t, int64(3), snap.Inventory[0].Quantity)
	assert.False(t, snap.UI.Loading[store.OpPlayer])
	assert.False(t, snap.UI.Loading[store.OpInventory])
}

func TestFetchPlayerData_OfflineEnergyNotification(t *testing.T) {
	f := newFixture()
	f.api.GetMeFunc = func(ctx context.Context) (*models.MeResponse, error) {
		return &models.MeResponse{
			Player:            models.Player{ID: 1},
			EnergyRegenerated: 15,
			MinutesOffline:    42,
		}, nil
	}

	require.NoError(t, f.manager.FetchPlayerData(context.Background()))

	var infos []notify.Notification
	for _, n := range f.queue.List() {
		if n.Severity == notify.SeverityInfo {
			infos = append(infos, n)
		}
	}
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].Message, "15")
	assert.Contains(t, infos[0].Message, "42")
}

func TestFetchPlayerData_UnauthorizedKeepsStoredToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.kv.Set(ctx, kvstore.KeyToken, []byte("session-token")))
	f.store.SetPlayer(&models.Player{ID: 1})
	f.store.SetAuthenticated(true)

	f.api.GetMeFunc = func(ctx context.Context) (*models.MeResponse, error) {
		return nil, &api.Error{Status: http.StatusUnauthorized, Endpoint: "/api/players/me"}
	}

	require.NoError(t, f.manager.FetchPlayerData(ctx))

	snap := f.store.Snapshot()
	assert.Nil(t, snap.Player)
	assert.False(t, snap.Authenticated)

	// Only an explicit logout deletes the credential.
	token, err := f.kv.Get(ctx, kvstore.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("session-token"), token)
}

func TestFetchPlayerData_TransientErrorKeepsState(t *testing.T) {
	f := newFixture()
	f.store.SetPlayer(&models.Player{ID: 1, Username: "keeper"})
	f.store.SetInventory([]models.InventoryItem{{Material: models.Material{ID: 5}, Quantity: 2}})

	f.api.GetMeFunc = func(ctx context.Context) (*models.MeResponse, error) {
		return nil, &api.Error{Status: http.StatusBadGateway, Endpoint: "/api/players/me"}
	}

	err := f.manager.FetchPlayerData(context.Background())
	require.Error(t, err)

	snap := f.store.Snapshot()
	require.NotNil(t, snap.Player)
	assert.Equal(t, "keeper", snap.Player.Username)
	assert.Len(t, snap.Inventory, 1)
}

func TestFetchPlayerData_StaleResponseIsDropped(t *testing.T) {
	f := newFixture()

	// The first GetMe kicks off a nested refresh before returning, so by the
	// time the outer response arrives a newer one has already been applied.
	var nested atomic.Bool
	f.api.GetMeFunc = func(ctx context.Context) (*models.MeResponse, error) {
		if nested.CompareAndSwap(false, true) {
			require.NoError(t, f.manager.FetchPlayerData(ctx))
			return &models.MeResponse{Player: models.Player{ID: 1, Username: "stale"}}, nil
		}
		return &models.MeResponse{Player: models.Player{ID: 2, Username: "fresh"}}, nil
	}

	require.NoError(t, f.manager.FetchPlayerData(context.Background()))

	player := f.store.Player()
	require.NotNil(t, player)
	assert.Equal(t, "fresh", player.Username)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored token stays unauthenticated", func(t *testing.T) {
		f := newFixture()
		var fetched atomic.Bool
		f.api.GetMeFunc = func(ctx context.Context) (*models.MeResponse, error) {
			fetched.Store(true)
			return &models.MeResponse{Player: models.Player{ID: 1}}, nil
		}

		require.NoError(t, f.manager.Bootstrap(ctx))
		assert.False(t, f.store.Authenticated())
		assert.False(t, fetched.Load())
	})

	t.Run("expired token stays unauthenticated", func(t *testing.T) {
		f := newFixture()
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := expired.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		require.NoError(t, f.kv.Set(ctx, kvstore.KeyToken, []byte(signed)))

		require.NoError(t, f.manager.Bootstrap(ctx))
		assert.False(t, f.store.Authenticated())
	})

	t.Run("live token restores the session", func(t *testing.T) {
		f := newFixture()
		live := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := live.SignedString([]byte("test-secret"))
		require.NoError(t, err)
		require.NoError(t, f.kv.Set(ctx, kvstore.KeyToken, []byte(signed)))

		require.NoError(t, f.manager.Bootstrap(ctx))
		assert.True(t, f.store.Authenticated())
		require.NotNil(t, f.store.Player())
	})

	t.Run("opaque token is passed through to the server", func(t *testing.T) {
		f := newFixture()
		require.NoError(t, f.kv.Set(ctx, kvstore.KeyToken, []byte("not-a-jwt")))

		require.NoError(t, f.manager.Bootstrap(ctx))
		assert.True(t, f.store.Authenticated())
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	require.NoError(t, f.kv.Set(ctx, kvstore.KeyToken, []byte("session-token")))
	f.store.SetPlayer(&models.Player{ID: 1})
	f.store.SetAuthenticated(true)
	f.store.SetInventory([]models.InventoryItem{{Material: models.Material{ID: 1}, Quantity: 1}})

	require.NoError(t, f.manager.Logout(ctx))

	_, err := f.kv.Get(ctx, kvstore.KeyToken)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	snap := f.store.Snapshot()
	assert.Nil(t, snap.Player)
	assert.False(t, snap.Authenticated)
	assert.Empty(t, snap.Inventory)
}

func TestTokenSource(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	source := TokenSource(kv)

	token, err := source(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, kv.Set(ctx, kvstore.KeyToken, []byte("abc")))
	token, err = source(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestClose_CancelsStaggerTimers(t *testing.T) {
	f := newFixture()
	f.api.GetMeFunc = func(ctx context.Context) (*models.MeResponse, error) {
		return &models.MeResponse{
			Envelope: models.Envelope{AchievementsUnlocked: []models.Achievement{
				{ID: 1, Name: "First"},
				{ID: 2, Name: "Second"},
				{ID: 3, Name: "Third"},
			}},
			Player: models.Player{ID: 1},
		}, nil
	}
	require.NoError(t, f.manager.FetchPlayerData(context.Background()))

	f.manager.Close()

	for _, call := range f.scheduler.Calls() {
		assert.True(t, call.Cancelled)
	}

	// A closed manager schedules nothing new.
	before := len(f.scheduler.Calls())
	f.manager.showAchievements([]models.Achievement{{ID: 4}, {ID: 5}})
	assert.Len(t, f.scheduler.Calls(), before)
}
