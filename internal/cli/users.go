package cli

import (
	"fmt"

	"github.com/sinergy/chronosync/internal/types"
	"github.com/spf13/cobra"
)

func newUserCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var (
		dto  types.UserRequestDTO
		role string
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user in your firm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseRole(role)
			if err != nil {
				return err
			}
			dto.Role = parsed

			user, err := app.Services.Users.Create(cmd.Context(), dto)
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), user)
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created user %s (id %d, %s)", user.Username, user.ID, user.Role))
			return nil
		},
	}
	addUserFlags(create, &dto, &role)

	cmd.AddCommand(create)
	return cmd
}
