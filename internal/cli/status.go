package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/pkg/redact"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Long:  "Show the stored session. Tokens are decoded locally and not checked with the server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := newOutput(cmd)

			tokens, err := app.Client.Tokens(ctx)
			if err != nil {
				return err
			}
			if !tokens.HasAccess() {
				out.Print(Status{})
				return nil
			}

			status := Status{
				Authenticated: true,
				AccessToken:   redact.Token(tokens.AccessToken),
				RefreshToken:  redact.Token(tokens.RefreshToken),
			}
			claims, err := app.Client.Claims(ctx)
			if err != nil {
				app.Logger.Debug("stored access token is not a JWT", slog.String("error", err.Error()))
			} else {
				status.UserID = claims.UserID
				status.Username = claims.Username
				status.ExpiresIn = claims.ExpiresIn(app.Clock.Now()).Round(time.Second).String()
			}

			out.Print(status)
			return nil
		},
	}
}
