package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/ui"
	"github.com/mcoot/whoosh/internal/ui/html"
)

func newPageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "page [screen]",
		Short: "Render the app page as HTML",
		Long: `Render the page the web client would show on load. A stored session opens the
dashboard; a session the server rejects is dropped. Pass a screen name to
switch screens before rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc := html.NewDocument()
			ctrl := app.Controller(doc)
			ctrl.Init(ctx)

			if len(args) == 1 {
				screen, ok := ui.ParseScreen(args[0])
				if !ok {
					return fmt.Errorf("unknown screen %q", args[0])
				}
				ctrl.Show(screen)
			}

			return doc.Render(ctx, cmd.OutOrStdout())
		},
	}
}
