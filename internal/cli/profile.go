package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/ui"
	"github.com/mcoot/whoosh/internal/ui/html"
)

var errNothingToUpdate = errors.New("nothing to update: pass --username, --email or --display-name")

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := html.NewDocument()
			ctrl := app.Controller(doc)

			if err := ctrl.LoadProfile(ctx); err != nil {
				return err
			}
			ctrl.Show(ui.ScreenDashboard)

			profile, _ := ctrl.Profile()
			return newOutput(cmd).PrintPage(ctx, doc, profile)
		},
	}

	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

func newProfileUpdateCmd() *cobra.Command {
	var username, email, displayName string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change username, email or display name",
		RunE: func(cmd *cobra.Command, args []string) error {
			var update model.ProfileUpdate
			if cmd.Flags().Changed("username") {
				update.Username = &username
			}
			if cmd.Flags().Changed("email") {
				update.Email = &email
			}
			if cmd.Flags().Changed("display-name") {
				update.DisplayName = &displayName
			}
			if update.IsEmpty() {
				return errNothingToUpdate
			}

			profile, err := app.Client.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(ui.NewProfileView(profile))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "New username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "New email address")
	cmd.Flags().StringVarP(&displayName, "display-name", "n", "", "New display name")

	return cmd
}
