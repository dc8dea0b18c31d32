package types

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// REQUEST DTOS
// =============================================================================
// Request DTOs are projections of the entities above. The client sends them as-is,
// any validation happens on the server.

// UserRequestDTO is used to register or create a user
type UserRequestDTO struct {
	FirstName            string   `json:"firstName"`
	LastName             string   `json:"lastName"`
	IdentificationNumber string   `json:"identificationNumber"`
	Address              string   `json:"address"`
	Phone                string   `json:"phone"`
	Email                string   `json:"email"`
	Password             string   `json:"password"`
	Role                 UserRole `json:"role"`
}

// AppointmentTypeRequestDTO is used to create (ID zero) or update an appointment type
type AppointmentTypeRequestDTO struct {
	ID              int64    `json:"id,omitempty"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           float64  `json:"price"`
	ColorCode       string   `json:"colorCode"`
	Currency        Currency `json:"currency"`
	Firm            *Firm    `json:"firm,omitempty"`
}

// ClientRequestDTO is used to create (ID zero) or update a client
type ClientRequestDTO struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// LoginRequestDTO holds the credentials sent to the login endpoint
type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const DefaultPageSize = 10

// PaginationRequest selects a page of a list endpoint, page numbers start at 0
type PaginationRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// DefaultPagination returns the first page using the server's default size
func DefaultPagination() PaginationRequest {
	return PaginationRequest{Page: 0, PageSize: DefaultPageSize}
}

// =============================================================================
// RESPONSE DTOS
// =============================================================================

// AuthenticationResponse wraps the JWT issued on login
type AuthenticationResponse struct {
	JWTString string `json:"jwtString"`
}

// UserCreateResponse is returned when a user is registered
type UserCreateResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Page is a single page of a paginated list
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// SuggestedUsername returns the username the server derives for a new account:
// the first letter of the first name followed by the last name, lower case.
// Diacritics are removed so "Đorđe Šaković" becomes "dsakovic".
func SuggestedUsername(firstName, lastName string) string {
	first := []rune(strings.TrimSpace(firstName))
	last := strings.TrimSpace(lastName)
	if len(first) == 0 || last == "" {
		return ""
	}

	// đ/Đ do not decompose under NFD
	replacer := strings.NewReplacer("đ", "d", "Đ", "D")
	combined := replacer.Replace(string(first[0]) + last)

	withoutDiacritics, _, err := transform.String(runes.Remove(runes.In(unicode.Mn)), norm.NFD.String(combined))
	if err != nil {
		withoutDiacritics = combined
	}

	return strings.ToLower(strings.Join(strings.Fields(withoutDiacritics), ""))
}

// SuggestedUsername is the username the server is expected to assign to this request
func (r UserRequestDTO) SuggestedUsername() string {
	return SuggestedUsername(r.FirstName, r.LastName)
}
