package models

import (
	"time"

	"github.com/uptrace/bun"
)

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
)

// SwapRequest is a proposed exchange of one item for another between two
// users. It is created pending and transitions exactly once to rejected
// or completed; item names and the platform fee are snapshotted at
// creation so in-flight requests are unaffected by later changes.
type SwapRequest struct {
	bun.BaseModel `bun:"table:swap_requests,alias:s"`

	ID int64 `bun:"id,pk,autoincrement" json:"id,string"`

	RequesterID       int64  `bun:"requester_id,notnull" json:"requester_id,string"`
	RequesterEmail    string `bun:"requester_email,notnull" json:"requester_email"`
	RequesterItemID   int64  `bun:"requester_item_id,notnull" json:"requester_item_id,string"`
	RequesterItemName string `bun:"requester_item_name,notnull" json:"requester_item_name"`

	ReceiverID       int64  `bun:"receiver_id,notnull" json:"receiver_id,string"`
	ReceiverEmail    string `bun:"receiver_email,notnull" json:"receiver_email"`
	ReceiverItemID   int64  `bun:"receiver_item_id,notnull" json:"receiver_item_id,string"`
	ReceiverItemName string `bun:"receiver_item_name,notnull" json:"receiver_item_name"`

	Status      SwapStatus `bun:"status,notnull" json:"status"`
	PlatformFee int64      `bun:"platform_fee,notnull" json:"platform_fee"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}
