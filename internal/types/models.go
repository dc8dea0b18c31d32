package types

// =============================================================================
// DOMAIN MODELS
// =============================================================================
// These mirror the records returned by the chronosync API. They are plain values:
// nothing in this module caches or mutates them after a call returns.

// BaseEntity carries the server assigned identity shared by every record
type BaseEntity struct {
	ID int64 `json:"id"`
}

// Person holds the contact details common to users and other people known to a firm
type Person struct {
	BaseEntity
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	IdentificationNumber string `json:"identificationNumber"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
}

// UserRole is the authorization role of a user account
type UserRole string

const (
	RoleAdministrator UserRole = "ADMINISTRATOR"
	RoleManager       UserRole = "MANAGER"
	RoleEmployee      UserRole = "EMPLOYEE"
)

var ValidRoles = map[UserRole]bool{
	RoleAdministrator: true,
	RoleManager:       true,
	RoleEmployee:      true,
}

// User is a person with login credentials
type User struct {
	Person
	Username  string   `json:"username"`
	Password  string   `json:"password,omitempty"`
	Role      UserRole `json:"role"`
	IsLocked  bool     `json:"isLocked"`
	IsEnabled bool     `json:"isEnabled"`
	Firm      *Firm    `json:"firm,omitempty"`
}

// Firm is the organisation that owns users, clients and appointment types
type Firm struct {
	BaseEntity
	Name string `json:"name"`
}

// Currency is the ISO 4217 code an appointment type is priced in.
// The server does not restrict the set, the constants are the common ones.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyRSD Currency = "RSD"
)

// AppointmentType describes a bookable service offered by a firm
type AppointmentType struct {
	BaseEntity
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           float64  `json:"price"`
	ColorCode       string   `json:"colorCode"`
	Currency        Currency `json:"currency"`
	Firm            *Firm    `json:"firm,omitempty"`
}

// Client is a customer of a firm
type Client struct {
	BaseEntity
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
