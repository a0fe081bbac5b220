package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Interaction event types accepted from the storefront.
const (
	EventProductView = "product_view"
	EventPurchase    = "purchase"
	EventChatMessage = "chat_message"
)

// InteractionEvent is one behavioral event (chat turn, product view,
// purchase) tied to a session. Feeds profile building only.
type InteractionEvent struct {
	ID            uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint              `gorm:"column:user_id;index" json:"user_id"`
	SessionID     string            `gorm:"column:session_id;type:text;index" json:"session_id"`
	EventType     string            `gorm:"column:event_type;type:text" json:"event_type"`
	ProductID     uint64            `gorm:"column:product_id" json:"product_id"`
	ProductsShown int               `gorm:"column:products_shown" json:"products_shown"`
	Context       datatypes.JSONMap `gorm:"column:context" json:"context"`
	CreatedAt     time.Time         `gorm:"column:created_at;index" json:"created_at"`
}

func (InteractionEvent) TableName() string {
	return "interaction_events"
}
