package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/mcoot/whoosh/internal/ui"
)

var screenTitles = map[ui.Screen]string{
	ui.ScreenLanding:   "Welcome to Whoosh",
	ui.ScreenLogin:     "Login",
	ui.ScreenRegister:  "Register",
	ui.ScreenGuest:     "Play as Guest",
	ui.ScreenDashboard: "Dashboard",
}

// TerminalView is a View that writes screen changes and notices as text lines
type TerminalView struct {
	mu  sync.Mutex
	out *Output
}

var _ ui.View = (*TerminalView)(nil)

// NewTerminalView creates a view writing to w
func NewTerminalView(w io.Writer) *TerminalView {
	return &TerminalView{out: NewOutput(FormatText, w, w)}
}

func (v *TerminalView) ShowScreen(s ui.Screen) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out.out, "== %s ==\n", screenTitles[s])
}

func (v *TerminalView) ShowNotice(n ui.Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out.out, "[%s] %s\n", n.Kind, n.Message)
}

// HideNotice is a no-op: printed lines cannot be taken back
func (v *TerminalView) HideNotice(r ui.Region) {}

func (v *TerminalView) RenderProfile(p ui.ProfileView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.out.printProfile(p)
}
