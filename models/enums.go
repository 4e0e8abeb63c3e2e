package models

// Allow-lists backing request validation. The workflow here is deliberately
// permissive: PATCH overwrites order status without transition checks, so
// only membership is validated (see Workflow for the nominal progression).

var validRoles = map[UserRole]bool{
	RoleAdministrator: true,
	RoleWaiter:        true,
	RoleKitchen:       true,
	RoleCashier:       true,
}

var validOrderStatuses = map[OrderStatus]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusServed:     true,
	StatusPaid:       true,
}

// ListableDishTypes restricts the GET /dishes type filter; other values
// fall through to an unfiltered listing.
var ListableDishTypes = map[DishType]bool{
	TypeBreakfast: true,
	TypeLunch:     true,
	TypeDinner:    true,
}

// UpdatableDishTypes is the wider set accepted on dish updates. It carries
// the legacy categories some stored dishes still use.
var UpdatableDishTypes = map[DishType]bool{
	TypeBreakfast: true,
	TypeLunch:     true,
	TypeDinner:    true,
	TypeDrink:     true,
	TypeDessert:   true,
	TypeMain:      true,
	"starter":     true,
	"main_course": true,
	"side":        true,
	"appetizer":   true,
	"snack":       true,
}

func IsValidRole(r UserRole) bool { return validRoles[r] }

func IsValidOrderStatus(s OrderStatus) bool { return validOrderStatuses[s] }

// RoleNames returns the role allow-list for error messages
func RoleNames() []string {
	return []string{
		string(RoleAdministrator),
		string(RoleWaiter),
		string(RoleKitchen),
		string(RoleCashier),
	}
}

// Workflow returns the nominal order progression for documentation purposes
func Workflow() []OrderStatus {
	return []OrderStatus{StatusPending, StatusInProgress, StatusServed, StatusPaid}
}
