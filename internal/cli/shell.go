package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/ui"
)

const shellHelp = `Commands:
  show <landing|login|register|guest|dashboard>
  login <username> <password>
  register <username> <email> <password>
  guest [display name]
  convert <username> <email> <password>
  profile
  history
  queue [name]
  logout
  help
  quit`

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session",
		Long:  "Start an interactive session that restores the stored session and walks the app screens.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &shell{
				in:  cmd.InOrStdin(),
				out: cmd.OutOrStdout(),
			}
			view := NewTerminalView(s.out)
			s.ctrl = app.Controller(view)
			s.output = NewOutput(FormatText, s.out, s.out)
			return s.run(cmd.Context())
		},
	}
}

type shell struct {
	in     io.Reader
	out    io.Writer
	ctrl   *ui.Controller
	output *Output
}

func (s *shell) run(ctx context.Context) error {
	s.ctrl.Init(ctx)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		s.exec(ctx, fields[0], fields[1:])
	}
}

func (s *shell) exec(ctx context.Context, name string, args []string) {
	switch name {
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "show":
		if len(args) != 1 {
			s.usage("show <screen>")
			return
		}
		screen, ok := ui.ParseScreen(args[0])
		if !ok {
			fmt.Fprintf(s.out, "unknown screen %q\n", args[0])
			return
		}
		s.ctrl.Show(screen)
	case "login":
		if len(args) != 2 {
			s.usage("login <username> <password>")
			return
		}
		s.ctrl.Show(ui.ScreenLogin)
		s.ctrl.SubmitLogin(ctx, ui.LoginForm{Username: args[0], Password: args[1]})
	case "register":
		if len(args) != 3 {
			s.usage("register <username> <email> <password>")
			return
		}
		s.ctrl.Show(ui.ScreenRegister)
		s.ctrl.SubmitRegister(ctx, ui.RegisterForm{Username: args[0], Email: args[1], Password: args[2]})
	case "guest":
		s.ctrl.Show(ui.ScreenGuest)
		s.ctrl.SubmitGuest(ctx, ui.GuestForm{DisplayName: strings.Join(args, " ")})
	case "convert":
		if len(args) != 3 {
			s.usage("convert <username> <email> <password>")
			return
		}
		s.ctrl.SubmitConvert(ctx, ui.RegisterForm{Username: args[0], Email: args[1], Password: args[2]})
	case "profile":
		if err := s.ctrl.LoadProfile(ctx); err != nil {
			s.output.PrintError(err)
		}
	case "history":
		matches, err := app.Client.MatchHistory(ctx)
		if err != nil {
			s.output.PrintError(err)
			return
		}
		s.output.Print(matches)
	case "queue":
		queue := ""
		if len(args) > 0 {
			queue = args[0]
		}
		ticket, err := app.Client.JoinQueue(ctx, queue)
		if err != nil {
			s.output.PrintError(err)
			return
		}
		s.output.Print(ticket)
	case "logout":
		s.ctrl.Logout(ctx)
	default:
		fmt.Fprintf(s.out, "unknown command %q, try 'help'\n", name)
	}
}

func (s *shell) usage(u string) {
	fmt.Fprintf(s.out, "usage: %s\n", u)
}
