// Package ui holds the screen logic of the client: which screen is visible,
// which notices are shown, and how form submissions drive the API client.
// Rendering is delegated to a View.
package ui

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/mcoot/whoosh/internal/dependencies/clock"
	"github.com/mcoot/whoosh/internal/model"
)

// API is the part of the client the controller drives
type API interface {
	Login(ctx context.Context, username, password string) (*model.AuthResult, error)
	Register(ctx context.Context, username, email, password string) (*model.AuthResult, error)
	CreateGuest(ctx context.Context, displayName *string) (*model.AuthResult, error)
	ConvertGuest(ctx context.Context, username, email, password string) (*model.AuthResult, error)
	GetProfile(ctx context.Context) (*model.Profile, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

// LoginForm holds the login screen fields
type LoginForm struct {
	Username string
	Password string
}

// RegisterForm holds the register and convert-guest fields
type RegisterForm struct {
	Username string
	Email    string
	Password string
}

// GuestForm holds the guest screen fields. An empty name lets the server pick one.
type GuestForm struct {
	DisplayName string
}

// Controller switches screens and shows notices in response to user actions
type Controller struct {
	api    API
	view   View
	clock  clock.Clock
	logger *slog.Logger

	mu      sync.Mutex
	current Screen
	profile *ProfileView
	notices map[Region]*activeNotice
}

type activeNotice struct {
	notice Notice
	timer  clock.Timer
}

// New creates a controller. Nothing is shown until Init or Show is called.
func New(api API, view View, clk clock.Clock, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		api:     api,
		view:    view,
		clock:   clk,
		logger:  logger,
		notices: make(map[Region]*activeNotice),
	}
}

// Init shows the dashboard for a stored session whose profile loads, and the
// landing screen otherwise. A session whose profile fails to load is dropped.
func (c *Controller) Init(ctx context.Context) {
	if !c.api.IsAuthenticated(ctx) {
		c.Show(ScreenLanding)
		return
	}

	if err := c.LoadProfile(ctx); err != nil {
		c.logger.Debug("stored session rejected", slog.String("error", err.Error()))
		if err := c.api.Logout(ctx); err != nil {
			c.logger.Warn("failed to clear session", slog.String("error", err.Error()))
		}
		c.Show(ScreenLanding)
		return
	}
	c.Show(ScreenDashboard)
}

// Show makes s the only visible screen
func (c *Controller) Show(s Screen) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()

	c.view.ShowScreen(s)
}

// Current returns the visible screen
func (c *Controller) Current() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Profile returns the last rendered profile, if any
func (c *Controller) Profile() (ProfileView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.profile == nil {
		return ProfileView{}, false
	}
	return *c.profile, true
}

// Notice returns the notice currently visible in a region
func (c *Controller) Notice(r Region) (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	active, ok := c.notices[r]
	if !ok {
		return Notice{}, false
	}
	return active.notice, true
}

// LoadProfile fetches and renders the current user's profile
func (c *Controller) LoadProfile(ctx context.Context) error {
	profile, err := c.api.GetProfile(ctx)
	if err != nil {
		c.logger.Debug("failed to load profile", slog.String("error", err.Error()))
		return err
	}

	view := NewProfileView(profile)
	c.mu.Lock()
	c.profile = &view
	c.mu.Unlock()

	c.view.RenderProfile(view)
	return nil
}

// SubmitLogin logs in and opens the dashboard. It reports whether it succeeded;
// failures are shown in the login region.
func (c *Controller) SubmitLogin(ctx context.Context, form LoginForm) bool {
	return c.submit(ctx, RegionLogin, func() error {
		_, err := c.api.Login(ctx, form.Username, form.Password)
		return err
	})
}

// SubmitRegister creates an account and opens the dashboard
func (c *Controller) SubmitRegister(ctx context.Context, form RegisterForm) bool {
	return c.submit(ctx, RegionRegister, func() error {
		_, err := c.api.Register(ctx, form.Username, form.Email, form.Password)
		return err
	})
}

// SubmitGuest creates a guest account and opens the dashboard
func (c *Controller) SubmitGuest(ctx context.Context, form GuestForm) bool {
	return c.submit(ctx, RegionGuest, func() error {
		var name *string
		if form.DisplayName != "" {
			name = &form.DisplayName
		}
		_, err := c.api.CreateGuest(ctx, name)
		return err
	})
}

// SubmitConvert converts the guest session into an account, reloads the
// profile and confirms in the convert region. The screen does not change.
func (c *Controller) SubmitConvert(ctx context.Context, form RegisterForm) bool {
	c.clearNotice(RegionConvert)

	if _, err := c.api.ConvertGuest(ctx, form.Username, form.Email, form.Password); err != nil {
		c.showNotice(Notice{Region: RegionConvert, Kind: NoticeError, Message: err.Error()})
		return false
	}
	if err := c.LoadProfile(ctx); err != nil {
		c.showNotice(Notice{Region: RegionConvert, Kind: NoticeError, Message: err.Error()})
		return false
	}

	c.showNotice(Notice{Region: RegionConvert, Kind: NoticeSuccess, Message: ConvertedMessage})
	return true
}

// Logout drops the session and returns to the landing screen
func (c *Controller) Logout(ctx context.Context) {
	if err := c.api.Logout(ctx); err != nil {
		c.logger.Warn("failed to clear session", slog.String("error", err.Error()))
	}

	c.mu.Lock()
	c.profile = nil
	c.mu.Unlock()

	c.Show(ScreenLanding)
}

// submit runs a login-class action, then loads the profile and shows the dashboard
func (c *Controller) submit(ctx context.Context, region Region, action func() error) bool {
	c.clearNotice(region)

	err := action()
	if err == nil {
		err = c.LoadProfile(ctx)
	}
	if err != nil {
		c.showNotice(Notice{Region: region, Kind: NoticeError, Message: err.Error()})
		return false
	}

	c.Show(ScreenDashboard)
	return true
}

// showNotice displays n and hides it after NoticeDuration. A newer notice in
// the same region replaces the older one and its timer.
func (c *Controller) showNotice(n Notice) {
	c.mu.Lock()
	if prev, ok := c.notices[n.Region]; ok {
		prev.timer.Stop()
	}
	active := &activeNotice{notice: n}
	c.notices[n.Region] = active
	active.timer = c.clock.AfterFunc(NoticeDuration, func() {
		c.expireNotice(n.Region, active)
	})
	c.mu.Unlock()

	c.view.ShowNotice(n)
}

func (c *Controller) expireNotice(r Region, active *activeNotice) {
	c.mu.Lock()
	if c.notices[r] != active {
		c.mu.Unlock()
		return // Superseded
	}
	delete(c.notices, r)
	c.mu.Unlock()

	c.view.HideNotice(r)
}

func (c *Controller) clearNotice(r Region) {
	c.mu.Lock()
	active, ok := c.notices[r]
	if ok {
		active.timer.Stop()
		delete(c.notices, r)
	}
	c.mu.Unlock()

	if ok {
		c.view.HideNotice(r)
	}
}
