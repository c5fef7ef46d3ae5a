package items

import (
	"time"

	"gorm.io/datatypes"
)

// Template is a generated item template row.
type Template struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ItemCode      string         `gorm:"column:item_code;size:255;uniqueIndex;not null" json:"item_code"`
	DisplayName   string         `gorm:"column:display_name;size:255" json:"display_name"`
	Category      string         `gorm:"column:category;size:64" json:"category"`
	SubCategory   string         `gorm:"column:sub_category;size:64" json:"sub_category"`
	EquipSlot     string         `gorm:"column:equip_slot;size:64" json:"equip_slot"`
	InventorySize string         `gorm:"column:inventory_size;size:32" json:"inventory_size"`
	MaterialCode  string         `gorm:"column:material_code;size:64" json:"material_code"`
	SuffixCode    string         `gorm:"column:suffix_code;size:64" json:"suffix_code"`
	RarityLevel   int            `gorm:"column:rarity_level" json:"rarity_level"`
	BaseModifiers datatypes.JSON `gorm:"column:base_modifiers_json" json:"base_modifiers_json"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// TableName pins the table name.
func (Template) TableName() string {
	return "item_templates"
}

// RequiredColumns lists the columns the generators write.
var RequiredColumns = []string{
	"item_code", "display_name", "category", "sub_category", "equip_slot",
	"inventory_size", "material_code", "suffix_code", "rarity_level", "base_modifiers_json",
}
