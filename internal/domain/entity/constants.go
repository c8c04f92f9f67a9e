package entity

// Status constants for Bill
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// User type constants
const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

// Expense type constants for Bill
const (
	ExpenseTypeTransport   = "Transports"
	ExpenseTypeRestaurant  = "Restaurants et bars"
	ExpenseTypeHotel       = "Hôtel et logement"
	ExpenseTypeOnline      = "Services en ligne"
	ExpenseTypeIT          = "IT et électronique"
	ExpenseTypeEquipment   = "Equipement et matériel"
	ExpenseTypeFournitures = "Fournitures de bureau"
)

// DefaultPct is the VAT percentage applied when the submitted value is
// missing or not parseable.
const DefaultPct = 20

// ValidStatus reports whether s is one of the three bill statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRefused:
		return true
	}
	return false
}
