package cli

import (
	"strconv"
	"strings"

	"github.com/sinergy/chronosync/internal/apperrors"
	"github.com/sinergy/chronosync/internal/types"
	"github.com/spf13/cobra"
)

func addUserFlags(cmd *cobra.Command, dto *types.UserRequestDTO, role *string) {
	cmd.Flags().StringVar(&dto.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&dto.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&dto.IdentificationNumber, "id-number", "", "identification number")
	cmd.Flags().StringVar(&dto.Address, "address", "", "address")
	cmd.Flags().StringVar(&dto.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&dto.Email, "email", "", "email address")
	cmd.Flags().StringVar(&dto.Password, "password", "", "password")
	cmd.Flags().StringVar(role, "role", string(types.RoleEmployee), "role: ADMINISTRATOR, MANAGER or EMPLOYEE")

	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")
	cmd.MarkFlagRequired("password")
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, &apperrors.ValidationError{Field: "id", Message: "must be a positive integer, got " + strconv.Quote(value)}
	}
	return id, nil
}

func parseRole(value string) (types.UserRole, error) {
	role := types.UserRole(strings.ToUpper(strings.TrimSpace(value)))
	if !types.ValidRoles[role] {
		return "", &apperrors.ValidationError{Field: "role", Message: "must be ADMINISTRATOR, MANAGER or EMPLOYEE"}
	}
	return role, nil
}

func parseCurrency(value string) (types.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(value))
	if len(code) != 3 || strings.IndexFunc(code, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
		return "", &apperrors.ValidationError{Field: "currency", Message: "must be a three letter currency code such as EUR"}
	}
	return types.Currency(code), nil
}
