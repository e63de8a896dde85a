package html

import (
	"bytes"
	"context"
	"io"
	"maps"
	"sync"

	"github.com/mcoot/whoosh/internal/ui"
)

// Document is a View that keeps the page state in memory and renders it on demand
type Document struct {
	mu      sync.Mutex
	current ui.Screen
	notices map[ui.Region]ui.Notice
	profile *ui.ProfileView
}

var _ ui.View = (*Document)(nil)

// NewDocument creates an empty document showing the landing screen
func NewDocument() *Document {
	return &Document{
		current: ui.ScreenLanding,
		notices: make(map[ui.Region]ui.Notice),
	}
}

func (d *Document) ShowScreen(s ui.Screen) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = s
}

func (d *Document) ShowNotice(n ui.Notice) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notices[n.Region] = n
}

func (d *Document) HideNotice(r ui.Region) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.notices, r)
}

func (d *Document) RenderProfile(p ui.ProfileView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profile = &p
}

// Snapshot copies the current page state
func (d *Document) Snapshot() PageData {
	d.mu.Lock()
	defer d.mu.Unlock()
	data := PageData{Current: d.current, Notices: maps.Clone(d.notices)}
	if d.profile != nil {
		p := *d.profile
		data.Profile = &p
	}
	return data
}

// Render writes the full page
func (d *Document) Render(ctx context.Context, w io.Writer) error {
	return Page(d.Snapshot()).Render(ctx, w)
}

// RenderString renders the full page to a string
func (d *Document) RenderString(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := d.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
