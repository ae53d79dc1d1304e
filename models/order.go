package models

import "time"

// OrderStatus is the lifecycle state of a table order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusInProgress OrderStatus = "In Progress"
	StatusPreparing  OrderStatus = "Preparing"
	StatusServed     OrderStatus = "Served"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	TableNumber   int                  `json:"table_number" gorm:"not null;index"`
	Items         []OrderItem          `json:"cocktails" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Status        OrderStatus          `json:"status" gorm:"size:20;not null;default:'Pending';index"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItem is one line of an order. It references the cocktail by id only;
// name and price are read from the live catalog.
type OrderItem struct {
	ID         uint `json:"-" gorm:"primaryKey"`
	OrderID    uint `json:"-" gorm:"not null;index"`
	Position   int  `json:"-" gorm:"not null"`
	CocktailID uint `json:"cocktail_id" gorm:"not null"`
	Quantity   int  `json:"quantity" gorm:"not null"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  *uint       `json:"changed_by"` // nil for anonymous order creation
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
