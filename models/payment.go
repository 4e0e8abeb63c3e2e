package models

import "time"

type Payment struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	OrderID uint      `json:"order_id" gorm:"not null"`
	Order   Order     `json:"-" gorm:"foreignKey:OrderID"`
	Total   float64   `json:"total" gorm:"not null"`
	Method  string    `json:"method" gorm:"size:50"`
	PaidAt  time.Time `json:"paid_at" gorm:"autoCreateTime"`
}
