package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/ui"
	"github.com/mcoot/whoosh/internal/ui/html"
)

func newLoginCmd() *cobra.Command {
	var form ui.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with username and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, ui.RegionLogin, func(ctx context.Context, c *ui.Controller) bool {
				return c.SubmitLogin(ctx, form)
			})
		},
	}

	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "Password")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var form ui.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, ui.RegionRegister, func(ctx context.Context, c *ui.Controller) bool {
				return c.SubmitRegister(ctx, form)
			})
		},
	}
	addAccountFlags(cmd, &form)

	return cmd
}

func newGuestCmd() *cobra.Command {
	var form ui.GuestForm

	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Play as a guest",
		Long:  "Create a guest account. Without --name the server picks the display name.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, ui.RegionGuest, func(ctx context.Context, c *ui.Controller) bool {
				return c.SubmitGuest(ctx, form)
			})
		},
	}

	cmd.Flags().StringVarP(&form.DisplayName, "name", "n", "", "Display name")

	return cmd
}

func newConvertCmd() *cobra.Command {
	var form ui.RegisterForm

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the current guest account into a registered account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := html.NewDocument()
			ctrl := app.Controller(doc)
			ctrl.Show(ui.ScreenDashboard)

			ok := ctrl.SubmitConvert(ctx, form)
			notice, _ := ctrl.Notice(ui.RegionConvert)
			if !ok {
				return errors.New(notice.Message)
			}

			out := newOutput(cmd)
			if cfg.Output != FormatHTML {
				out.PrintMessage(notice.Message)
			}
			profile, _ := ctrl.Profile()
			return out.PrintPage(ctx, doc, profile)
		},
	}
	addAccountFlags(cmd, &form)

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.Logout(cmd.Context()); err != nil {
				return err
			}
			newOutput(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}

func addAccountFlags(cmd *cobra.Command, form *ui.RegisterForm) {
	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "Password")
}

// runForm submits a login-class form through the controller. On failure the
// region's notice becomes the error; on success the dashboard is printed.
func runForm(cmd *cobra.Command, region ui.Region, submit func(context.Context, *ui.Controller) bool) error {
	ctx := cmd.Context()
	doc := html.NewDocument()
	ctrl := app.Controller(doc)

	if !submit(ctx, ctrl) {
		notice, _ := ctrl.Notice(region)
		return errors.New(notice.Message)
	}

	profile, _ := ctrl.Profile()
	return newOutput(cmd).PrintPage(ctx, doc, profile)
}
