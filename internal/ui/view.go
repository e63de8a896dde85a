package ui

// View renders controller state. Implementations must be safe to call from
// timer goroutines.
type View interface {
	ShowScreen(s Screen)
	ShowNotice(n Notice)
	HideNotice(r Region)
	RenderProfile(p ProfileView)
}
