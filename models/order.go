package models

import "time"

// OrderStatus tracks the overall workflow stage of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in_progress"
	StatusServed     OrderStatus = "served"
	StatusPaid       OrderStatus = "paid"
)

// ItemStatus tracks kitchen preparation per dish, independent of the
// order's own status. New items added to an already-served order start
// pending so they still route to the kitchen view.
type ItemStatus string

const (
	ItemPending ItemStatus = "pending"
	ItemServed  ItemStatus = "served"
)

type Order struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	UserID           uint        `json:"user_id" gorm:"not null"`
	User             User        `json:"-" gorm:"foreignKey:UserID"`
	WaiterName       string      `json:"waiter_name"`
	Mesa             string      `json:"mesa" gorm:"size:10"`
	Status           OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	DailyOrderNumber int         `json:"daily_order_number"`
	Notes            string      `json:"notes"`
	Items            []OrderItem `json:"-" gorm:"foreignKey:OrderID"`
	Payments         []Payment   `json:"-" gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID      uint       `json:"id" gorm:"primaryKey"`
	OrderID uint       `json:"order_id" gorm:"not null"`
	DishID  uint       `json:"dish_id" gorm:"not null"`
	Dish    Dish       `json:"dish,omitempty" gorm:"foreignKey:DishID"`
	Status  ItemStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
}
