package domain

import "time"

type Orders struct {
	ID          uint64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"column:user_id;index" json:"user_id"`
	TotalPrice  float64     `gorm:"column:total_price;type:numeric" json:"total_price"`
	OrderStatus string      `gorm:"column:order_status;type:text" json:"order_status"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at" json:"updated_at"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Orders) TableName() string {
	return "orders"
}

// OrderItem carries the product attributes as purchased, denormalized so
// profile building does not join back to a product that may have changed.
type OrderItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;index" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id" json:"product_id"`
	Category  string  `gorm:"column:category;type:text" json:"category"`
	Style     string  `gorm:"column:style;type:text" json:"style"`
	Brand     string  `gorm:"column:brand;type:text" json:"brand"`
	Size      string  `gorm:"column:size;type:text" json:"size"`
	Color     string  `gorm:"column:color;type:text" json:"color"`
	PriceEach float64 `gorm:"column:price_each;type:numeric" json:"price_each"`
	Quantity  int     `gorm:"column:quantity" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
