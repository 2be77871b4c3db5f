package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/repcoach/internal/cli/formatter"
	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or edit your profile",
	}
	cmd.AddCommand(newProfileShowCmd(app), newProfileSetCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(cmd.Context(), app.User)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		name, email    string
		age            int
		height, weight float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long:  "Update profile fields. Without flags on a terminal an interactive form is shown.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			upd := service.ProfileUpdate{UserID: app.User}
			f := cmd.Flags()

			if !anyChanged(cmd, "name", "email", "age", "height", "weight") {
				if !app.interactive() {
					return fmt.Errorf("nothing to update: pass --name, --email, --age, --height or --weight")
				}
				current, err := app.Profiles.Get(ctx, app.User)
				if err != nil {
					return err
				}
				if upd, err = runProfileForm(current); err != nil {
					return err
				}
			} else {
				if f.Changed("name") {
					upd.FullName = &name
				}
				if f.Changed("email") {
					upd.Email = &email
				}
				if f.Changed("age") {
					upd.Age = &age
				}
				if f.Changed("height") {
					upd.HeightCm = &height
				}
				if f.Changed("weight") {
					upd.WeightKg = &weight
				}
			}

			p, err := app.Profiles.Update(ctx, upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Profile saved.\n", formatter.StyleGreen.Render("✔"))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().IntVar(&age, "age", 0, "Age in years")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in centimetres")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kilograms")
	return cmd
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

// runProfileForm prompts for every field, prefilled with the current values.
func runProfileForm(current *domain.UserProfile) (service.ProfileUpdate, error) {
	name := current.FullName
	email := current.Email
	age := formatOptionalInt(current.Age)
	height := formatOptionalFloat(current.HeightCm)
	weight := formatOptionalFloat(current.WeightKg)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&name),
			huh.NewInput().Title("Email").Value(&email),
			huh.NewInput().Title("Age").Value(&age).Validate(validateOptionalAge),
		),
		huh.NewGroup(
			huh.NewInput().Title("Height (cm)").Value(&height).Validate(validateOptionalPositiveFloat),
			huh.NewInput().Title("Weight (kg)").Value(&weight).Validate(validateOptionalPositiveFloat),
		),
	).WithTheme(repcoachHuhTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return service.ProfileUpdate{}, fmt.Errorf("cancelled")
		}
		return service.ProfileUpdate{}, err
	}
	return profileUpdateFromForm(current.UserID, name, email, age, height, weight), nil
}

// profileUpdateFromForm converts form strings into an update. Blank numeric
// fields are left unchanged.
func profileUpdateFromForm(userID, name, email, age, height, weight string) service.ProfileUpdate {
	upd := service.ProfileUpdate{UserID: userID, FullName: &name, Email: &email}
	if v, err := strconv.Atoi(strings.TrimSpace(age)); err == nil {
		upd.Age = &v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(height), 64); err == nil {
		upd.HeightCm = &v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(weight), 64); err == nil {
		upd.WeightKg = &v
	}
	return upd
}

func newBMICmd(app *App) *cobra.Command {
	var height, weight float64

	cmd := &cobra.Command{
		Use:   "bmi",
		Short: "Show your BMI, or compute it for the given measurements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hSet, wSet := cmd.Flags().Changed("height"), cmd.Flags().Changed("weight")
			var (
				report *service.BMIReport
				err    error
			)
			switch {
			case hSet && wSet:
				report, err = service.NewBMIReport(height, weight)
			case hSet || wSet:
				return fmt.Errorf("pass both --height and --weight")
			default:
				report, err = app.Profiles.BMI(cmd.Context(), app.User)
				if errors.Is(err, service.ErrMissingMeasurements) {
					return fmt.Errorf("%w: run `repcoach profile set --height H --weight W` first", err)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBMI(report))
			return nil
		},
	}

	cmd.Flags().Float64Var(&height, "height", 0, "Height in centimetres")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kilograms")
	return cmd
}
