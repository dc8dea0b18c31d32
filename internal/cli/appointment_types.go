package cli

import (
	"fmt"
	"strconv"

	"github.com/sinergy/chronosync/internal/types"
	"github.com/spf13/cobra"
)

func newAppointmentTypeCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointment-type",
		Aliases: []string{"at"},
		Short:   "Manage the appointment types offered by your firm",
	}

	cmd.AddCommand(
		newAppointmentTypeListCommand(app),
		newAppointmentTypeSaveCommand(app, false),
		newAppointmentTypeSaveCommand(app, true),
		newAppointmentTypeDeleteCommand(app),
	)
	return cmd
}

func newAppointmentTypeListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List appointment types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Services.AppointmentTypes.List(cmd.Context())
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				printMuted(cmd.OutOrStdout(), "No appointment types")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, at := range list {
				rows = append(rows, appointmentTypeRow(at))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Duration", "Price", "Color"}, rows))
			return nil
		},
	}
}

// newAppointmentTypeSaveCommand builds either "create" or "update", they only differ in the id flag
func newAppointmentTypeSaveCommand(app *App, update bool) *cobra.Command {
	var (
		dto      types.AppointmentTypeRequestDTO
		currency string
		firmID   int64
	)

	use, short := "create", "Create an appointment type"
	if update {
		use, short = "update", "Update an appointment type"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseCurrency(currency)
			if err != nil {
				return err
			}
			dto.Currency = parsed
			if firmID > 0 {
				dto.Firm = &types.Firm{BaseEntity: types.BaseEntity{ID: firmID}}
			}

			var at *types.AppointmentType
			if update {
				at, err = app.Services.AppointmentTypes.Update(cmd.Context(), dto)
			} else {
				at, err = app.Services.AppointmentTypes.Create(cmd.Context(), dto)
			}
			if err != nil {
				return err
			}

			if app.jsonOutput {
				return printJSON(cmd.OutOrStdout(), at)
			}
			verb := "Created"
			if update {
				verb = "Updated"
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s appointment type %s (id %d)", verb, at.Name, at.ID))
			return nil
		},
	}

	if update {
		cmd.Flags().Int64Var(&dto.ID, "id", 0, "id of the appointment type to update")
		cmd.MarkFlagRequired("id")
	}
	cmd.Flags().StringVar(&dto.Name, "name", "", "name shown when booking")
	cmd.Flags().IntVar(&dto.DurationMinutes, "duration", 30, "duration in minutes")
	cmd.Flags().Float64Var(&dto.Price, "price", 0, "price")
	cmd.Flags().StringVar(&currency, "currency", string(types.CurrencyEUR), "three letter currency code, e.g. EUR, USD, RSD")
	cmd.Flags().StringVar(&dto.ColorCode, "color", "", "calendar color, e.g. #3399ff")
	cmd.Flags().Int64Var(&firmID, "firm-id", 0, "firm owning the appointment type (defaults to your firm)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newAppointmentTypeDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an appointment type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := app.Services.AppointmentTypes.Remove(cmd.Context(), id); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Deleted appointment type %d", id))
			return nil
		},
	}
}

func appointmentTypeRow(at types.AppointmentType) []string {
	return []string{
		strconv.FormatInt(at.ID, 10),
		at.Name,
		fmt.Sprintf("%d min", at.DurationMinutes),
		fmt.Sprintf("%.2f %s", at.Price, at.Currency),
		at.ColorCode,
	}
}
