// Package session exposes the current authenticated identity and tells the
// store when it changes. Credentials live in the remote backend's users
// table; the issued token is kept in a local slot so a session survives
// restarts.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alvaro/align-api/internal/localstore"
	"github.com/alvaro/align-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenSlot = "align_session"

const tokenTTL = 7 * 24 * time.Hour

var (
	ErrNotConfigured      = errors.New("session: remote backend not configured")
	ErrInvalidCredentials = errors.New("session: invalid credentials")
	ErrEmailTaken         = errors.New("session: email already registered")
)

// Identity is the opaque authenticated principal. The store only uses it to
// pick local vs remote and to stamp ownership on remote writes.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

type Provider struct {
	db     *gorm.DB // nil when the remote backend is not configured
	local  *localstore.Store
	secret []byte
	log    *logrus.Logger

	mu        sync.RWMutex
	current   *Identity
	loading   bool
	listeners []func()
}

func NewProvider(db *gorm.DB, local *localstore.Store, secret string, log *logrus.Logger) *Provider {
	return &Provider{
		db:      db,
		local:   local,
		secret:  []byte(secret),
		log:     log,
		loading: true,
	}
}

// Configured reports whether a remote backend is available at all.
func (p *Provider) Configured() bool {
	return p.db != nil
}

// Current returns the signed-in identity, if any.
func (p *Provider) Current() (Identity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return Identity{}, false
	}
	return *p.current, true
}

// Loading is true until Resume has run once.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// OnChange registers a listener fired after every identity transition,
// including sign-out.
func (p *Provider) OnChange(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Resume restores a persisted session from the local token slot. An absent,
// invalid, or expired token leaves the app in guest mode.
func (p *Provider) Resume() {
	defer func() {
		p.mu.Lock()
		p.loading = false
		p.mu.Unlock()
	}()

	if p.db == nil {
		p.log.Info("remote backend not configured; running in guest mode")
		return
	}

	var token string
	p.local.Get(tokenSlot, &token)
	if token == "" {
		return
	}

	claims, err := p.parseToken(token)
	if err != nil {
		p.log.WithError(err).Info("stored session token rejected; starting as guest")
		_ = p.local.Remove(tokenSlot)
		return
	}

	p.mu.Lock()
	p.current = &Identity{UserID: claims.UserID, Email: claims.Email}
	p.mu.Unlock()
	p.log.WithField("email", claims.Email).Info("session resumed")
}

// SignUp registers a new user and signs them in.
func (p *Provider) SignUp(email, password, name string) (*models.User, string, error) {
	if p.db == nil {
		return nil, "", ErrNotConfigured
	}

	var existing models.User
	if err := p.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("session: hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     name,
	}
	if err := p.db.Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("session: create user: %w", err)
	}

	token, err := p.establish(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// SignIn verifies credentials and establishes the session.
func (p *Provider) SignIn(email, password string) (*models.User, string, error) {
	if p.db == nil {
		return nil, "", ErrNotConfigured
	}

	var user models.User
	if err := p.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := p.establish(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// SignOut drops the identity and the persisted token, returning the app to
// guest mode.
func (p *Provider) SignOut() {
	_ = p.local.Remove(tokenSlot)

	p.mu.Lock()
	wasSignedIn := p.current != nil
	p.current = nil
	p.mu.Unlock()

	if wasSignedIn {
		p.log.Info("signed out")
		p.notify()
	}
}

func (p *Provider) establish(user *models.User) (string, error) {
	token, err := p.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	if err := p.local.Set(tokenSlot, token); err != nil {
		p.log.WithError(err).Warn("could not persist session token")
	}

	p.mu.Lock()
	p.current = &Identity{UserID: user.ID, Email: user.Email}
	p.mu.Unlock()

	p.log.WithField("email", user.Email).Info("signed in")
	p.notify()
	return token, nil
}

func (p *Provider) notify() {
	p.mu.RLock()
	listeners := make([]func(), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func (p *Provider) GenerateToken(userID uuid.UUID, email string) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

func (p *Provider) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
