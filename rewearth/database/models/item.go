package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/rewearth/rewearth/rewearth/ecodata"
)

// Item is a wardrobe entry. Sustainability carries the eco-data record
// matched at upload time as an immutable snapshot: later edits to the
// reference dataset never touch existing items.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID               int64          `bun:"id,pk,autoincrement" json:"id,string"`
	OwnerID          int64          `bun:"owner_id,notnull" json:"owner_id,string"`
	OwnerEmail       string         `bun:"owner_email,notnull" json:"owner_email"`
	Name             string         `bun:"item_name,notnull" json:"item_name"`
	Condition        string         `bun:"condition,notnull" json:"condition"`
	ImageURL         string         `bun:"image_url,notnull" json:"image_url"`
	ItemType         string         `bun:"item_type,notnull" json:"item_type"`
	CreditCost       int64          `bun:"credit_cost,notnull,default:0" json:"credit_cost"`
	AvailableForSwap bool           `bun:"available_for_swap,notnull,default:true" json:"available_for_swap"`
	Sustainability   ecodata.Record `bun:"sustainability_data,type:jsonb" json:"sustainability_data"`
	CreatedAt        time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time      `bun:"updated_at,notnull" json:"updated_at"`
}
