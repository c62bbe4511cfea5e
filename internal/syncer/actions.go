package syncer

import (
	"context"
	"strings"
	"time"

	"github.com/ashfall-game/survival-client/internal/api"
	"github.com/ashfall-game/survival-client/internal/models"
	"github.com/ashfall-game/survival-client/internal/notify"
	"github.com/ashfall-game/survival-client/internal/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// achievementStagger spaces consecutive achievement notifications so several
// unlocks from one response do not visually collide.
const achievementStagger = 300 * time.Millisecond

var errNotLoggedIn = errors.New("no active player session")

// Move moves the player and resynchronizes the current cell.
func (m *Manager) Move(ctx context.Context, direction string) error {
	player := m.store.Player()
	if player == nil {
		return errNotLoggedIn
	}

	m.store.SetLoading(store.OpMoving, true)
	defer m.store.SetLoading(store.OpMoving, false)

	resp, err := m.client.Move(ctx, player.ID, direction)
	if err != nil {
		return m.actionFailed("move", err)
	}

	m.store.SetCurrentCell(&resp.Cell)
	if resp.Player != nil {
		m.store.UpdatePlayer(*resp.Player)
	}
	m.finishAction(resp.Envelope)
	return nil
}

// Gather gathers a material from the current cell. On a failure response the
// server error is translated into tool-specific guidance, and both the cell
// and the player record are resynchronized to correct optimistic drift.
func (m *Manager) Gather(ctx context.Context, materialID int64) error {
	snap := m.store.Snapshot()
	if snap.Player == nil || snap.CurrentCell == nil {
		return errNotLoggedIn
	}

	m.store.SetLoading(store.OpGathering, true)
	defer m.store.SetLoading(store.OpGathering, false)

	resp, err := m.client.Gather(ctx, snap.CurrentCell.ID, materialID)
	if err != nil {
		if api.IsBusiness(err) {
			m.queue.Show(gatherGuidance(api.ServerMessage(err)), notify.SeverityError)
			m.resyncAfterGatherFailure(ctx)
			return err
		}
		return m.actionFailed("gather", err)
	}

	for _, item := range resp.Gained {
		m.store.AddItem(item)
	}
	if resp.Player != nil {
		m.store.UpdatePlayer(*resp.Player)
	}
	m.finishAction(resp.Envelope)
	return nil
}

// gatherGuidance maps a server gather error onto actionable tool guidance.
func gatherGuidance(serverMessage string) string {
	lower := strings.ToLower(serverMessage)
	switch {
	case strings.Contains(lower, "pickaxe"):
		return "You need a pickaxe to mine this. Craft one first."
	case strings.Contains(lower, "axe"):
		return "You need an axe to chop this. Craft one first."
	case strings.Contains(lower, "fishing"):
		return "You need a fishing rod to fish here. Craft one first."
	case strings.Contains(lower, "bow"):
		return "You need a bow to hunt this. Craft one first."
	case strings.Contains(lower, "energy"):
		return "You are too exhausted to gather. Rest or eat something."
	case serverMessage != "":
		return serverMessage
	default:
		return "Gathering failed."
	}
}

// resyncAfterGatherFailure refetches the player record and current cell so a
// failed gather cannot leave optimistic UI state behind.
func (m *Manager) resyncAfterGatherFailure(ctx context.Context) {
	me, err := m.client.GetMe(ctx)
	if err != nil {
		if api.IsAuth(err) {
			m.store.ResetPlayer()
			return
		}
		m.logger.Error("failed to resync after gather failure", zap.Error(err))
		return
	}
	m.store.SetPlayer(&me.Player)
	m.store.SetCurrentCell(me.CurrentCell)
}

// Craft crafts a recipe, records it in the crafting history and refetches the
// inventory.
func (m *Manager) Craft(ctx context.Context, recipeID, quantity int64) error {
	m.store.SetLoading(store.OpCrafting, true)
	defer m.store.SetLoading(store.OpCrafting, false)

	resp, err := m.client.Craft(ctx, recipeID, quantity)
	if err != nil {
		return m.actionFailed("craft", err)
	}

	m.store.AddCraftingHistory(models.CraftingHistoryEntry{
		RecipeID:   resp.Recipe.ID,
		RecipeName: resp.Recipe.Name,
		Quantity:   resp.Quantity,
		ResultName: resp.Recipe.ResultMaterial.Name,
	})
	if resp.Player != nil {
		m.store.UpdatePlayer(*resp.Player)
	}
	m.refreshInventory(ctx)
	m.finishAction(resp.Envelope)
	return nil
}

// Equip equips a material and resynchronizes the player record.
func (m *Manager) Equip(ctx context.Context, materialID int64, slot string) error {
	resp, err := m.client.Equip(ctx, materialID, slot)
	if err != nil {
		return m.actionFailed("equip", err)
	}
	m.applyEquipResponse(ctx, resp)
	return nil
}

// Unequip clears an equipment slot and resynchronizes the player record.
func (m *Manager) Unequip(ctx context.Context, slot string) error {
	resp, err := m.client.Unequip(ctx, slot)
	if err != nil {
		return m.actionFailed("unequip", err)
	}
	m.applyEquipResponse(ctx, resp)
	return nil
}

func (m *Manager) applyEquipResponse(ctx context.Context, resp *models.EquipResponse) {
	if resp.Player != nil {
		m.store.SetPlayer(resp.Player)
	} else {
		m.refreshPlayer(ctx)
	}
	m.refreshInventory(ctx)
	m.finishAction(resp.Envelope)
}

// Construct starts a building on the given cell and refetches the player
// record and inventory the construction cost came out of.
func (m *Manager) Construct(ctx context.Context, typeID, cellID int64) error {
	resp, err := m.client.Construct(ctx, typeID, cellID)
	if err != nil {
		return m.actionFailed("construct", err)
	}
	m.refreshPlayer(ctx)
	m.refreshInventory(ctx)
	m.finishAction(resp.Envelope)
	return nil
}

// CompleteBuilding finishes a building whose construction time has elapsed.
func (m *Manager) CompleteBuilding(ctx context.Context, buildingID int64) error {
	resp, err := m.client.CompleteBuilding(ctx, buildingID)
	if err != nil {
		return m.actionFailed("complete_building", err)
	}
	m.refreshPlayer(ctx)
	m.finishAction(resp.Envelope)
	return nil
}

// Attack attacks the current encounter's enemy.
func (m *Manager) Attack(ctx context.Context) error {
	resp, err := m.client.Attack(ctx)
	if err != nil {
		return m.actionFailed("attack", err)
	}
	if resp.Player != nil {
		m.store.UpdatePlayer(*resp.Player)
	}
	m.refreshPlayer(ctx)
	m.finishAction(resp.Envelope)
	return nil
}

// Flee attempts to flee the current encounter.
func (m *Manager) Flee(ctx context.Context) error {
	resp, err := m.client.Flee(ctx)
	if err != nil {
		return m.actionFailed("flee", err)
	}
	if resp.Player != nil {
		m.store.UpdatePlayer(*resp.Player)
	}
	m.refreshPlayer(ctx)
	m.finishAction(resp.Envelope)
	return nil
}

// Restart restarts a dead player and replaces the whole player slice.
func (m *Manager) Restart(ctx context.Context) error {
	resp, err := m.client.Restart(ctx)
	if err != nil {
		return m.actionFailed("restart", err)
	}
	m.store.SetPlayer(&resp.Player)
	m.store.SetCurrentCell(resp.CurrentCell)
	m.refreshInventory(ctx)
	m.finishAction(resp.Envelope)
	return nil
}

// RefreshRecipes refetches the recipe collection.
func (m *Manager) RefreshRecipes(ctx context.Context) error {
	resp, err := m.client.GetRecipes(ctx)
	if err != nil {
		if api.IsAuth(err) {
			m.store.ResetPlayer()
			return err
		}
		m.logger.Error("failed to refresh recipes", zap.Error(err))
		return err
	}
	m.store.SetRecipes(resp.Recipes)
	m.showAchievements(resp.AchievementsUnlocked)
	return nil
}

// RefreshSkills refetches skill levels and unlocked talents, fetching the
// static tree only when it is not cached yet.
func (m *Manager) RefreshSkills(ctx context.Context) error {
	m.store.SetLoading(store.OpSkills, true)
	defer m.store.SetLoading(store.OpSkills, false)

	resp, err := m.client.GetSkills(ctx)
	if err != nil {
		if api.IsAuth(err) {
			m.store.ResetPlayer()
			return err
		}
		m.logger.Error("failed to refresh skills", zap.Error(err))
		return err
	}
	m.store.SetSkills(resp.Skills)
	m.store.SetUnlockedTalents(resp.UnlockedTalents)

	if m.store.Snapshot().SkillTree == nil {
		tree, err := m.client.GetSkillTree(ctx)
		if err != nil {
			m.logger.Error("failed to fetch skill tree", zap.Error(err))
		} else {
			m.store.SetSkillTree(&tree.Tree)
		}
	}

	m.showAchievements(resp.AchievementsUnlocked)
	return nil
}

// refreshPlayer is the targeted player-record refetch used after actions.
func (m *Manager) refreshPlayer(ctx context.Context) {
	m.store.SetLoading(store.OpPlayer, true)
	defer m.store.SetLoading(store.OpPlayer, false)

	me, err := m.client.GetMe(ctx)
	if err != nil {
		if api.IsAuth(err) {
			m.store.ResetPlayer()
			return
		}
		m.logger.Error("targeted player refresh failed", zap.Error(err))
		return
	}
	m.store.SetPlayer(&me.Player)
	m.store.SetCurrentCell(me.CurrentCell)
}

// refreshInventory is the targeted inventory refetch used after actions.
func (m *Manager) refreshInventory(ctx context.Context) {
	m.store.SetLoading(store.OpInventory, true)
	defer m.store.SetLoading(store.OpInventory, false)

	resp, err := m.client.GetInventory(ctx)
	if err != nil {
		if api.IsAuth(err) {
			m.store.ResetPlayer()
			return
		}
		m.logger.Error("targeted inventory refresh failed", zap.Error(err))
		return
	}
	items, err := models.DecodeInventory(resp.Items)
	if err != nil {
		m.logger.Error("failed to decode inventory payload", zap.Error(err))
		return
	}
	m.store.SetInventory(items)
}

// finishAction handles the shared tail of every successful action: the
// achievement funnel and the success notification.
func (m *Manager) finishAction(env models.Envelope) {
	m.showAchievements(env.AchievementsUnlocked)
	if env.Message != "" {
		m.queue.Show(env.Message, notify.SeveritySuccess)
	}
}

// actionFailed converts an action error into the taxonomy: 401 logs the
// session out (keeping the stored token), business failures surface the
// server message, transport failures surface a generic message. The original
// error is returned for the caller.
func (m *Manager) actionFailed(action string, err error) error {
	switch {
	case api.IsAuth(err):
		m.logger.Warn("action rejected: session expired", zap.String("action", action))
		m.store.ResetPlayer()
	case api.IsBusiness(err):
		message := api.ServerMessage(err)
		if message == "" {
			message = "That didn't work. Try again."
		}
		m.queue.Show(message, notify.SeverityError)
	default:
		m.logger.Error("action failed", zap.String("action", action), zap.Error(err))
		m.queue.Show("Connection problem. Please try again.", notify.SeverityError)
	}
	return errors.Wrapf(err, "%s failed", action)
}

// showAchievements funnels every unlocked achievement through the
// notification queue, staggered 300ms apart in array order. The stagger
// timers are owned by the manager and cancelled on Close.
func (m *Manager) showAchievements(achievements []models.Achievement) {
	for i, achievement := range achievements {
		a := achievement
		if i == 0 {
			m.queue.ShowAchievement(a)
			continue
		}
		delay := time.Duration(i) * achievementStagger

		m.mu.Lock()
		if m.closed {
			m.mu.Unlock()
			return
		}
		cancel := m.scheduler.AfterFunc(delay, func() {
			m.queue.ShowAchievement(a)
		})
		m.cancels = append(m.cancels, cancel)
		m.mu.Unlock()
	}
}
