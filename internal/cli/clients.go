package cli

import (
	"fmt"
	"strconv"

	"github.com/sinergy/chronosync/internal/types"
	"github.com/spf13/cobra"
)

func newClientCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage your firm's clients",
	}

	cmd.AddCommand(
		newClientListCommand(app),
		newClientSaveCommand(app, false),
		newClientSaveCommand(app, true),
		newClientDeleteCommand(app),
	)
	return cmd
}

func newClientListCommand(app *App) *cobra.Command {
	page := types.DefaultPagination()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Services.Clients.List(cmd.Context(), page)
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), res)
			}
			if len(res.Content) == 0 {
				printMuted(cmd.OutOrStdout(), "No clients")
				return nil
			}

			rows := make([][]string, 0, len(res.Content))
			for _, c := range res.Content {
				rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.FirstName, c.LastName, c.Email, c.Phone})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"ID", "First name", "Last name", "Email", "Phone"}, rows))
			printMuted(out, fmt.Sprintf("page %d of %d, %d clients", res.Number+1, res.TotalPages, res.TotalElements))
			return nil
		},
	}

	cmd.Flags().IntVar(&page.Page, "page", page.Page, "page number, starting at 0")
	cmd.Flags().IntVar(&page.PageSize, "page-size", page.PageSize, "clients per page")
	return cmd
}

func newClientSaveCommand(app *App, update bool) *cobra.Command {
	var dto types.ClientRequestDTO

	use, short := "create", "Create a client"
	if update {
		use, short = "update", "Update a client"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				c   *types.Client
				err error
			)
			if update {
				c, err = app.Services.Clients.Update(cmd.Context(), dto)
			} else {
				c, err = app.Services.Clients.Create(cmd.Context(), dto)
			}
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), c)
			}
			verb := "Created"
			if update {
				verb = "Updated"
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s client %s %s (id %d)", verb, c.FirstName, c.LastName, c.ID))
			return nil
		},
	}

	if update {
		cmd.Flags().Int64Var(&dto.ID, "id", 0, "id of the client to update")
		cmd.MarkFlagRequired("id")
	}
	cmd.Flags().StringVar(&dto.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&dto.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&dto.Email, "email", "", "email address")
	cmd.Flags().StringVar(&dto.Phone, "phone", "", "phone number")
	cmd.MarkFlagRequired("first-name")
	cmd.MarkFlagRequired("last-name")

	return cmd
}

func newClientDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.Services.Clients.Remove(cmd.Context(), id); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted client %d", id))
			return nil
		},
	}
}
