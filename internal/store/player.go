package store

import "github.com/ashfall-game/survival-client/internal/models"

// SetPlayer replaces the player record wholesale.
func (s *Store) SetPlayer(p *models.Player) {
	s.mutate(func() {
		if p == nil {
			s.player = nil
		} else {
			cp := *p
			s.player = &cp
		}
		s.versions.Player++
	})
}

// UpdatePlayer shallow-merges the patch into the existing record. When no
// player record exists the call is a no-op.
func (s *Store) UpdatePlayer(patch models.PlayerPatch) {
	s.mutate(func() {
		if s.player == nil {
			return
		}
		updated := patch.Apply(*s.player)
		s.player = &updated
		s.versions.Player++
	})
}

// SetAuthenticated flips the session's authenticated flag.
func (s *Store) SetAuthenticated(ok bool) {
	s.mutate(func() {
		s.authenticated = ok
		s.versions.Player++
	})
}

// Authenticated reports whether the session is currently authenticated.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Player returns a copy of the current player record, or nil when logged out.
func (s *Store) Player() *models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.player == nil {
		return nil
	}
	p := *s.player
	return &p
}

// SetCurrentCell replaces the player's current map cell.
func (s *Store) SetCurrentCell(cell *models.Cell) {
	s.mutate(func() {
		if cell == nil {
			s.currentCell = nil
		} else {
			cp := *cell
			s.currentCell = &cp
		}
		s.versions.Player++
	})
}

// ResetPlayer clears the player record, the authenticated flag and the
// current cell together. Callers observe the three as one transition.
func (s *Store) ResetPlayer() {
	s.mutate(func() {
		s.resetPlayerLocked()
		s.versions.Player++
	})
}

func (s *Store) resetPlayerLocked() {
	s.player = nil
	s.authenticated = false
	s.currentCell = nil
}
