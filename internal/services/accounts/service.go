package accounts

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/whoosh/internal/dependencies/clock"
	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/pkg/redact"
	"github.com/mcoot/whoosh/internal/storage"
)

// Errors
var (
	ErrRegisterFieldsRequired = errors.New("Username, email, and password are required") //nolint:staticcheck // user-facing
	ErrLoginFieldsRequired    = errors.New("Username and password are required")        //nolint:staticcheck // user-facing
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUsernameExists         = errors.New("username already exists")
	ErrEmailExists            = errors.New("email already exists")
	ErrNotGuest               = errors.New("user is not a guest")
	ErrInvalidToken           = errors.New("token is invalid or expired")
	ErrInvalidUpdate          = errors.New("invalid profile update")
)

// Session is a freshly issued token pair for a user
type Session struct {
	User    *model.User
	Access  string
	Refresh string
}

// Service handles accounts and token issuance
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
}

// Config holds configuration for the accounts service
type Config struct {
	// Secret signs HS256 tokens
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost
	BcryptCost int
}

// DefaultConfig returns default accounts configuration
func DefaultConfig() Config {
	return Config{
		Secret:     "whoosh-dev-secret",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		BcryptCost: bcrypt.DefaultCost,
	}
}

// New creates a new accounts Service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	def := DefaultConfig()
	if cfg.Secret == "" {
		cfg.Secret = def.Secret
	}
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = def.AccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = def.RefreshTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = def.BcryptCost
	}
	return &Service{
		storage:    storage,
		clock:      clock,
		logger:     logger,
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates an account and a session
func (s *Service) Register(ctx context.Context, username, email, password string) (*Session, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrRegisterFieldsRequired
	}
	if err := s.checkAvailable(ctx, "", username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Elo:          model.StartingElo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("user_id", string(user.ID)),
		slog.String("email", redact.Email(user.Email)),
	)
	return s.createSession(user)
}

// Login authenticates an account and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrLoginFieldsRequired
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Guests have no password and cannot log in
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(user)
}

// CreateGuest creates a passwordless guest account. A nil or blank display
// name falls back to the generated username.
func (s *Service) CreateGuest(ctx context.Context, displayName *string) (*Session, error) {
	id := uuid.New()
	username := "guest_" + strings.ReplaceAll(id.String(), "-", "")[:8]

	name := username
	if displayName != nil && strings.TrimSpace(*displayName) != "" {
		name = strings.TrimSpace(*displayName)
	}

	now := s.clock.Now()
	user := &model.User{
		ID:          model.UserID(id.String()),
		Username:    username,
		DisplayName: name,
		Elo:         model.StartingElo,
		IsGuest:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("guest created", slog.String("user_id", string(user.ID)))
	return s.createSession(user)
}

// ConvertGuest turns a guest into a full account, keeping its stats. The
// returned session carries rotated tokens naming the new username.
func (s *Service) ConvertGuest(ctx context.Context, id model.UserID, username, email, password string) (*Session, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrRegisterFieldsRequired
	}

	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsGuest {
		return nil, ErrNotGuest
	}
	if err := s.checkAvailable(ctx, id, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	user.PasswordHash = string(hash)
	user.IsGuest = false
	user.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("guest converted",
		slog.String("user_id", string(user.ID)),
		slog.String("email", redact.Email(user.Email)),
	)
	return s.createSession(user)
}

// Refresh issues a new access token for a valid refresh token. The refresh
// token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.storage.GetUser(ctx, model.UserID(claims.UserID))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	return s.issueToken(user, TokenTypeAccess, s.accessTTL)
}

// Authenticate resolves an access token to its user
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.parseToken(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUser(ctx, model.UserID(claims.UserID))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update to the user's editable fields
func (s *Service) UpdateProfile(ctx context.Context, id model.UserID, update model.ProfileUpdate) (*model.User, error) {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	username, email := user.Username, user.Email
	if update.Username != nil {
		if *update.Username == "" {
			return nil, ErrInvalidUpdate
		}
		username = *update.Username
	}
	if update.Email != nil {
		email = *update.Email
	}
	if err := s.checkAvailable(ctx, id, username, email); err != nil {
		return nil, err
	}

	user.Username = username
	user.Email = email
	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	user.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// checkAvailable fails if username or email belongs to an account other than self
func (s *Service) checkAvailable(ctx context.Context, self model.UserID, username, email string) error {
	existing, err := s.storage.GetUserByUsername(ctx, username)
	switch {
	case err == nil && existing.ID != self:
		return ErrUsernameExists
	case err != nil && !errors.Is(err, model.ErrUserNotFound):
		return err
	}

	if email == "" {
		return nil
	}
	existing, err = s.storage.GetUserByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != self:
		return ErrEmailExists
	case err != nil && !errors.Is(err, model.ErrUserNotFound):
		return err
	}
	return nil
}

// createSession issues an access and refresh token for a user
func (s *Service) createSession(user *model.User) (*Session, error) {
	refresh, err := s.issueToken(user, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	access, err := s.issueToken(user, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Access: access, Refresh: refresh}, nil
}
