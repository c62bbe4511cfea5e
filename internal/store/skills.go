package store

import "github.com/ashfall-game/survival-client/internal/models"

// SetSkills replaces the player's skill levels wholesale.
func (s *Store) SetSkills(skills []models.Skill) {
	s.mutate(func() {
		s.skills = append([]models.Skill(nil), skills...)
		s.versions.Skills++
	})
}

// SetSkillTree caches the static skill tree definition. It stays cached until
// the next explicit call.
func (s *Store) SetSkillTree(tree *models.SkillTree) {
	s.mutate(func() {
		if tree == nil {
			s.skillTree = nil
		} else {
			cp := *tree
			s.skillTree = &cp
		}
		s.versions.Skills++
	})
}

// SetUnlockedTalents replaces the set of unlocked talent ids.
func (s *Store) SetUnlockedTalents(ids []int64) {
	s.mutate(func() {
		s.unlockedTalents = make(map[int64]bool, len(ids))
		for _, id := range ids {
			s.unlockedTalents[id] = true
		}
		s.versions.Skills++
	})
}

// ClearSkills drops skills, unlocked talents and the cached tree.
func (s *Store) ClearSkills() {
	s.mutate(func() {
		s.skills = nil
		s.skillTree = nil
		s.unlockedTalents = make(map[int64]bool)
		s.versions.Skills++
	})
}
