// Package html renders controller state as the page markup served to
// browsers: one section per screen, with only the current one visible.
package html

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/whoosh/internal/ui"
)

// PageData is everything the page needs to render
type PageData struct {
	Current ui.Screen
	Notices map[ui.Region]ui.Notice
	Profile *ui.ProfileView
}

// regionScreen places each message region on its screen
var regionScreen = map[ui.Region]ui.Screen{
	ui.RegionLogin:    ui.ScreenLogin,
	ui.RegionRegister: ui.ScreenRegister,
	ui.RegionGuest:    ui.ScreenGuest,
	ui.RegionConvert:  ui.ScreenDashboard,
}

// Page renders every screen; screens other than the current one are hidden
func Page(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Whoosh</title></head><body><main id="app">`); err != nil {
			return err
		}
		for _, s := range ui.Screens {
			if err := Screen(s, data).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Screen renders one screen section with its message regions
func Screen(s ui.Screen, data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "screen"
		if s != data.Current {
			class += " hidden"
		}
		if _, err := fmt.Fprintf(w, `<section id="%s" class="%s">`, templ.EscapeString(string(s)), class); err != nil {
			return err
		}
		if s == ui.ScreenDashboard && data.Profile != nil {
			if err := ProfileCard(*data.Profile).Render(ctx, w); err != nil {
				return err
			}
		}
		for region, screen := range orderedRegions() {
			if screen != s {
				continue
			}
			n, visible := data.Notices[region]
			if err := NoticeBox(region, n, visible).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// NoticeBox renders a message region. A hidden region keeps its element.
func NoticeBox(r ui.Region, n ui.Notice, visible bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := "notice"
		if visible {
			class += " notice-" + string(n.Kind)
		} else {
			class += " hidden"
		}
		_, err := fmt.Fprintf(w, `<div id="%s" class="%s" role="alert">%s</div>`,
			templ.EscapeString(string(r)), class, templ.EscapeString(n.Message))
		return err
	})
}

// ProfileCard renders the dashboard header and profile fields
func ProfileCard(p ui.ProfileView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		rows := []struct {
			id, label, value string
		}{
			{"profile-username", "Username", p.Username},
			{"profile-email", "Email", p.Email},
			{"profile-display-name", "Display name", p.DisplayName},
			{"profile-elo", "Elo", strconv.Itoa(p.Elo)},
			{"profile-xp", "XP", strconv.Itoa(p.XP)},
			{"profile-total-games", "Games", strconv.Itoa(p.TotalGames)},
			{"profile-wins", "Wins", strconv.Itoa(p.Wins)},
			{"profile-win-rate", "Win rate", p.WinRate},
		}

		if _, err := fmt.Fprintf(w, `<header><h1 id="user-display-name">%s</h1>`, templ.EscapeString(p.HeaderName)); err != nil {
			return err
		}
		if p.IsGuest {
			if _, err := io.WriteString(w, `<span id="guest-badge" class="badge">Guest</span>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</header><dl class="profile">`); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, `<dt>%s</dt><dd id="%s">%s</dd>`, templ.EscapeString(row.label), row.id, templ.EscapeString(row.value)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</dl>`); err != nil {
			return err
		}
		if p.ShowConvert {
			if _, err := io.WriteString(w, `<div id="convert-guest-section"><form id="convert-form" method="post">`+
				`<input name="username" required><input name="email" type="email" required>`+
				`<input name="password" type="password" required><button type="submit">Create account</button></form></div>`); err != nil {
				return err
			}
		}
		return nil
	})
}

// orderedRegions yields each region with its screen, in display order
func orderedRegions() func(yield func(ui.Region, ui.Screen) bool) {
	order := []ui.Region{ui.RegionLogin, ui.RegionRegister, ui.RegionGuest, ui.RegionConvert}
	return func(yield func(ui.Region, ui.Screen) bool) {
		for _, r := range order {
			if !yield(r, regionScreen[r]) {
				return
			}
		}
	}
}
