package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/mcoot/whoosh/internal/model"
)

// fakeAPI is an in-memory API whose session flag follows the calls made on it
type fakeAPI struct {
	mu            sync.Mutex
	authenticated bool
	profile       *model.Profile
	profileErr    error
	loginErr      error
	registerErr   error
	guestErr      error
	convertErr    error
	guestName     *string
	logouts       int
	calls         []string
}

var _ API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{profile: &model.Profile{Username: "bob", DisplayName: "Bob", Elo: 1200}}
}

func (f *fakeAPI) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) startSession(name string, err error) (*model.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(name)
	if err != nil {
		return nil, err
	}
	f.authenticated = true
	return &model.AuthResult{Access: "A", Refresh: "R"}, nil
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (*model.AuthResult, error) {
	return f.startSession("login", f.loginErr)
}

func (f *fakeAPI) Register(_ context.Context, _, _, _ string) (*model.AuthResult, error) {
	return f.startSession("register", f.registerErr)
}

func (f *fakeAPI) CreateGuest(_ context.Context, displayName *string) (*model.AuthResult, error) {
	f.mu.Lock()
	f.guestName = displayName
	f.mu.Unlock()
	return f.startSession("guest", f.guestErr)
}

func (f *fakeAPI) ConvertGuest(_ context.Context, username, email, _ string) (*model.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("convert")
	if f.convertErr != nil {
		return nil, f.convertErr
	}
	f.profile = &model.Profile{Username: username, Email: email, DisplayName: f.profile.DisplayName}
	return &model.AuthResult{Username: username}, nil
}

func (f *fakeAPI) GetProfile(_ context.Context) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("profile")
	if !f.authenticated {
		return nil, model.ErrProfileFetch
	}
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeAPI) Logout(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("logout")
	f.authenticated = false
	f.logouts++
	return nil
}

func (f *fakeAPI) IsAuthenticated(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated
}

// recordingView keeps the visible state the way a page would
type recordingView struct {
	mu       sync.Mutex
	screen   Screen
	screens  []Screen
	notices  map[Region]Notice
	hidden   []Region
	profiles []ProfileView
}

var _ View = (*recordingView)(nil)

func newRecordingView() *recordingView {
	return &recordingView{notices: make(map[Region]Notice)}
}

func (v *recordingView) ShowScreen(s Screen) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.screen = s
	v.screens = append(v.screens, s)
}

func (v *recordingView) ShowNotice(n Notice) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices[n.Region] = n
}

func (v *recordingView) HideNotice(r Region) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.notices, r)
	v.hidden = append(v.hidden, r)
}

func (v *recordingView) RenderProfile(p ProfileView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profiles = append(v.profiles, p)
}

func (v *recordingView) visible(r Region) (Notice, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	n, ok := v.notices[r]
	return n, ok
}

var errInvalidCredentials = errors.New("Invalid credentials") //nolint:staticcheck // user-facing
