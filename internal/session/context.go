package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/repositories"
	"github.com/nivelabs/loop/client/pkg/logger"
	"github.com/nivelabs/loop/client/validators"
)

var (
	// ErrSignedOut is returned by Current when no identity is active.
	ErrSignedOut = errors.New("not signed in")
	// ErrUnauthorized covers bad credentials on sign-in and password update.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrSessionExpired is returned when the persisted token is no longer valid.
	ErrSessionExpired = errors.New("session expired")
)

// Context holds the current authenticated identity. It is constructed once at
// app start and passed explicitly to every component that needs it; there is
// no ambient singleton.
type Context struct {
	users     repositories.UserRepository
	sessions  repositories.SessionRepository
	local     *LocalStore
	validate  *validators.Validator
	jwtSecret string

	mu          sync.RWMutex
	current     *models.User
	sessionID   string
	subscribers []func(*models.User)
}

// New wires a session context from its dependencies.
func New(users repositories.UserRepository, sessions repositories.SessionRepository, local *LocalStore, validate *validators.Validator, jwtSecret string) *Context {
	return &Context{
		users:     users,
		sessions:  sessions,
		local:     local,
		validate:  validate,
		jwtSecret: jwtSecret,
	}
}

// Init restores the persisted session, if any. An absent or expired session
// is not an error: the app simply starts signed out.
func (c *Context) Init(ctx context.Context) error {
	ls, err := c.local.Load()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read local session: %w", err)
	}

	claims, err := c.parseToken(ls.Token)
	if err != nil {
		logger.Warn("persisted session token rejected, clearing", zap.Error(err))
		return c.local.Clear()
	}

	user, err := c.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return fmt.Errorf("failed to load profile for restored session: %w", err)
	}

	c.setIdentity(user, claims.SessionID)
	logger.Info("session restored", zap.String("user", user.ID))
	return nil
}

// SignUp validates input, creates the account and profile document, then
// signs the new user in.
func (c *Context) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error) {
	if err := c.validate.Validate(req); err != nil {
		return nil, err
	}
	if err := validators.CheckPasswords(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	if _, err := c.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}
	if _, err := c.users.GetUserByHandle(ctx, req.Handle); err == nil {
		return nil, fmt.Errorf("this handle is already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       req.Email,
		Password:    string(hash),
		DisplayName: req.DisplayName,
		Handle:      req.Handle,
		AvatarURL:   initialsAvatarURL(req.DisplayName),
		Verified:    false,
	}
	if err := c.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if err := c.startSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn authenticates with email and password and opens a session.
func (c *Context) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := c.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	if err := c.startSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignOut deletes the remote session (best effort), clears the local record
// and notifies dependents that identity is gone.
func (c *Context) SignOut(ctx context.Context) error {
	c.mu.RLock()
	sessionID := c.sessionID
	c.mu.RUnlock()

	if sessionID != "" {
		if err := c.sessions.DeleteSession(ctx, sessionID); err != nil && !errors.Is(err, gateway.ErrNotFound) {
			logger.Warn("failed to delete remote session", zap.Error(err))
		}
	}
	if err := c.local.Clear(); err != nil {
		return err
	}
	c.setIdentity(nil, "")
	return nil
}

// UpdatePassword verifies the current password and stores a new hash.
func (c *Context) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	user, err := c.Current()
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrUnauthorized
	}
	if err := validators.CheckPasswords(newPassword, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := c.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	// Sign-out may have landed while the write was in flight.
	c.mu.Lock()
	if c.current != nil {
		c.current.Password = string(hash)
	}
	c.mu.Unlock()
	return nil
}

// Current returns the active identity or ErrSignedOut.
func (c *Context) Current() (*models.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil, ErrSignedOut
	}
	return c.current, nil
}

// Subscribe registers a dependent to be notified on identity change. The
// callback receives the new identity, or nil on sign-out.
func (c *Context) Subscribe(fn func(*models.User)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Close releases the local store.
func (c *Context) Close() error {
	return c.local.Close()
}

func (c *Context) startSession(ctx context.Context, user *models.User) error {
	session, err := c.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	token, err := c.mintToken(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to mint session token: %w", err)
	}

	if err := c.local.Save(&models.LocalSession{
		SessionID: session.ID,
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	c.setIdentity(user, session.ID)
	logger.Info("signed in", zap.String("user", user.ID))
	return nil
}

func (c *Context) setIdentity(user *models.User, sessionID string) {
	c.mu.Lock()
	c.current = user
	c.sessionID = sessionID
	subs := make([]func(*models.User), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
}

func (c *Context) mintToken(userID, sessionID string, expiresAt time.Time) (string, error) {
	claims := &models.SessionClaims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.jwtSecret))
}

func (c *Context) parseToken(raw string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(c.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrSessionExpired
	}
	if !token.Valid {
		return nil, ErrSessionExpired
	}
	return claims, nil
}

func initialsAvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}
