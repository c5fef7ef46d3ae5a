package characters

import (
	"time"

	"gorm.io/datatypes"
)

// Pool entry statuses.
const (
	StatusAvailable = "available"
	StatusAssigned  = "assigned"
)

// DefaultRoleName is the role of a freshly generated entry.
const DefaultRoleName = "UNASSIGNED_ROLE"

// PoolEntry is a generated character waiting in the pool.
type PoolEntry struct {
	ID                   string         `gorm:"primaryKey;size:36" json:"id"`
	CreatureTypeID       int            `gorm:"column:creature_type_id;index" json:"creature_type_id"`
	PersonalityID        *int           `gorm:"column:personality_id" json:"personality_id"`
	BackgroundStoryID    *int           `gorm:"column:background_story_id" json:"background_story_id"`
	Name                 string         `gorm:"column:name;size:100" json:"name"`
	Surname              string         `gorm:"column:surname;size:100" json:"surname"`
	Gender               string         `gorm:"column:gender;size:16" json:"gender"`
	BaseStats            datatypes.JSON `gorm:"column:base_stats" json:"base_stats"`
	VisualAppearanceData datatypes.JSON `gorm:"column:visual_appearance_data" json:"visual_appearance_data"`
	InitialSkillLevels   datatypes.JSON `gorm:"column:initial_skill_levels" json:"initial_skill_levels"`
	InitialRoleName      string         `gorm:"column:initial_role_name;size:64" json:"initial_role_name"`
	QualityLevel         string         `gorm:"column:quality_level;size:64;index" json:"quality_level"`
	Status               string         `gorm:"column:status;size:32;index" json:"status"`
	IsUnique             bool           `gorm:"column:is_unique" json:"is_unique"`
	RarityScore          int            `gorm:"column:rarity_score" json:"rarity_score"`
	GeneratedAt          time.Time      `gorm:"column:generated_at" json:"generated_at"`
}

// TableName pins the table name.
func (PoolEntry) TableName() string {
	return "character_pool"
}

// RequiredColumns lists the columns the generators write.
var RequiredColumns = []string{
	"id", "creature_type_id", "personality_id", "background_story_id", "name", "surname",
	"gender", "base_stats", "quality_level", "status", "rarity_score", "generated_at",
}
