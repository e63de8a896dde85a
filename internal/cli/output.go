package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/ui"
	"github.com/mcoot/whoosh/internal/ui/html"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

func newOutput(cmd *cobra.Command) *Output {
	format := FormatText
	if cfg != nil {
		format = cfg.Output
	}
	return NewOutput(format, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintPage renders the whole page in html format and data otherwise
func (o *Output) PrintPage(ctx context.Context, doc *html.Document, data any) error {
	if o.format == FormatHTML {
		return doc.Render(ctx, o.out)
	}
	o.Print(data)
	return nil
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == FormatJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case ui.ProfileView:
		o.printProfile(v)
	case []model.MatchSummary:
		o.printHistory(v)
	case *model.QueueTicket:
		o.printQueueTicket(v)
	case *model.Health:
		fmt.Fprintf(o.out, "Status: %s\n", v.Status)
	case Status:
		o.printStatus(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Status describes the stored session
type Status struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
	ExpiresIn     string `json:"expires_in,omitempty"`
	AccessToken   string `json:"access_token,omitempty"`
	RefreshToken  string `json:"refresh_token,omitempty"`
}

func (o *Output) printProfile(p ui.ProfileView) {
	guest := ""
	if p.IsGuest {
		guest = " [guest]"
	}
	fmt.Fprintf(o.out, "%s%s\n", p.HeaderName, guest)
	fmt.Fprintf(o.out, "Username: %s\n", p.Username)
	fmt.Fprintf(o.out, "Email: %s\n", p.Email)
	fmt.Fprintf(o.out, "Display Name: %s\n", p.DisplayName)
	fmt.Fprintf(o.out, "Elo: %d\n", p.Elo)
	fmt.Fprintf(o.out, "XP: %d\n", p.XP)
	fmt.Fprintf(o.out, "Games: %d\n", p.TotalGames)
	fmt.Fprintf(o.out, "Wins: %d\n", p.Wins)
	fmt.Fprintf(o.out, "Win Rate: %s\n", p.WinRate)
	if p.ShowConvert {
		fmt.Fprintln(o.out, "\nRun 'whoosh convert' to keep this guest account.")
	}
}

func (o *Output) printHistory(matches []model.MatchSummary) {
	if len(matches) == 0 {
		fmt.Fprintln(o.out, "No matches played yet")
		return
	}
	fmt.Fprintf(o.out, "Matches (%d):\n", len(matches))
	for _, m := range matches {
		result := "loss"
		if m.IsWinner {
			result = "win"
		}
		fmt.Fprintf(o.out, "  - %s %s %s elo %d (%+d) xp +%d\n",
			m.StartedAt.Format(time.DateTime), m.MatchID, result, m.EloAfter, m.EloDelta(), m.XPGained)
	}
}

func (o *Output) printQueueTicket(t *model.QueueTicket) {
	fmt.Fprintln(o.out, t.Message)
	fmt.Fprintf(o.out, "Queue: %s\n", t.Queue)
}

func (o *Output) printStatus(s Status) {
	if !s.Authenticated {
		fmt.Fprintln(o.out, "Not logged in")
		return
	}
	fmt.Fprintf(o.out, "Logged in as %s (%s)\n", s.Username, s.UserID)
	if s.ExpiresIn != "" {
		fmt.Fprintf(o.out, "Access token expires in: %s\n", s.ExpiresIn)
	}
	fmt.Fprintf(o.out, "Access token: %s\n", s.AccessToken)
	fmt.Fprintf(o.out, "Refresh token: %s\n", s.RefreshToken)
}
