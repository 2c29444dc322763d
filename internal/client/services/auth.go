package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/querycache"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

var ErrNoToken = errors.New("response carries no token")

// AuthService defines authentication operations.
//
// Contract:
//   - Login: validate, exchange credentials for a token, store it.
//   - Register: validate, create the account, store a returned token.
//   - Logout: drop the token and every cached collection.
//   - Claims: unverified view of the stored token.
//
// Validation failures return models.ValidationErrors before any request.
type AuthService interface {
	Login(ctx context.Context, c models.Credentials) (Result, error)
	Register(ctx context.Context, r models.Registration) (Result, error)
	Logout(ctx context.Context) (Result, error)
	Claims(ctx context.Context) (*session.Claims, error)
	LoggedIn(ctx context.Context) bool
	// Since is when the current session was stored, zero without one.
	Since(ctx context.Context) time.Time
}

type authService struct {
	client   client.Client
	sessions SessionStore
	cache    *querycache.Cache
	log      logging.Logger
}

func NewAuthService(c client.Client, s SessionStore, cache *querycache.Cache, log logging.Logger) AuthService {
	return &authService{client: c, sessions: s, cache: cache, log: log}
}

func (a *authService) Login(ctx context.Context, c models.Credentials) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	res, err := a.client.Login(ctx, c)
	if err == nil && res.Token == "" {
		err = ErrNoToken
	}
	if err != nil {
		a.log.Info(ctx, "login failed", "error", err)
		return Result{Notice: Notice{
			Level:   LevelError,
			Title:   "Login Gagal",
			Message: client.MessageOf(err, "Login Gagal"),
		}}, fmt.Errorf("login: %w", err)
	}

	if err := a.sessions.SetToken(ctx, res.Token); err != nil {
		return Result{}, err
	}
	// Data cached for an earlier user must not leak into this session.
	a.cache.Reset()

	a.log.Info(ctx, "logged in")
	return Result{
		Notice:   success("Login Berhasil!", res.Message, "Selamat datang kembali."),
		Navigate: guard.HomePath,
	}, nil
}

// Register sends the user to the login view afterwards. When the backend
// already returned a token the anonymous guard forwards them home.
func (a *authService) Register(ctx context.Context, r models.Registration) (Result, error) {
	if err := r.Validate(); err != nil {
		return Result{}, err
	}

	res, err := a.client.Register(ctx, r)
	if err != nil {
		a.log.Info(ctx, "register failed", "error", err)
		return Result{Notice: Notice{
			Level:   LevelError,
			Title:   "Register Gagal",
			Message: client.MessageOf(err, "Register Gagal"),
		}}, fmt.Errorf("register: %w", err)
	}

	if res.Token != "" {
		if err := a.sessions.SetToken(ctx, res.Token); err != nil {
			return Result{}, err
		}
		a.cache.Reset()
	}

	a.log.Info(ctx, "registered", "npm", r.NPM)
	return Result{
		Notice:   success("Register Berhasil!", res.Message, "Akun berhasil dibuat."),
		Navigate: guard.LoginPath,
	}, nil
}

func (a *authService) Logout(ctx context.Context) (Result, error) {
	if err := a.sessions.Clear(ctx); err != nil {
		return Result{}, err
	}
	a.cache.Reset()

	a.log.Info(ctx, "logged out")
	return Result{
		Notice:   Notice{Level: LevelInfo, Title: "Logout", Message: "Kamu telah keluar."},
		Navigate: guard.LoginPath,
	}, nil
}

func (a *authService) Claims(ctx context.Context) (*session.Claims, error) {
	return a.sessions.Claims(ctx)
}

func (a *authService) LoggedIn(ctx context.Context) bool {
	return a.sessions.HasToken(ctx)
}

func (a *authService) Since(ctx context.Context) time.Time {
	return a.sessions.SavedAt(ctx)
}
