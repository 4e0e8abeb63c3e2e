package models

// UserRole defines allowed staff roles in the system
type UserRole string

const (
	RoleAdministrator UserRole = "administrator"
	RoleWaiter        UserRole = "waiter"
	RoleKitchen       UserRole = "kitchen"
	RoleCashier       UserRole = "cashier"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Name         string   `json:"name" gorm:"not null"` // display name, composed from first/last when absent
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	Role         UserRole `json:"role" gorm:"not null"`
}

// PublicUser is the shape returned by user listing/auth endpoints —
// never carries the password hash.
type PublicUser struct {
	ID        uint     `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
	}
}
