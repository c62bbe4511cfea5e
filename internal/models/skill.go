package models

// Skill is one of the player's trainable skills.
type Skill struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Experience int64  `json:"experience"`
}

// Talent is an unlockable node in the skill tree.
type Talent struct {
	ID          int64  `json:"id"`
	SkillID     int64  `json:"skill_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tier        int    `json:"tier"`
}

// SkillTree is the static tree definition, fetched once and cached until an
// explicit refetch.
type SkillTree struct {
	Skills  []Skill  `json:"skills"`
	Talents []Talent `json:"talents"`
}
