package models

// DishType categorizes menu entries
type DishType string

const (
	TypeBreakfast DishType = "breakfast"
	TypeLunch     DishType = "lunch"
	TypeDinner    DishType = "dinner"
	TypeDrink     DishType = "drink"
	TypeDessert   DishType = "dessert"
	TypeMain      DishType = "main"
)

type Dish struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"not null"`
	Type     DishType `json:"type" gorm:"not null;default:'main'"`
	Price    float64  `json:"price" gorm:"not null"`
	ImageURL *string  `json:"image_url"`
}
