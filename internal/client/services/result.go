package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a dismissible message for the user.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

func (n Notice) IsZero() bool {
	return n == Notice{}
}

// Result is the outcome of a user action. Navigate is empty when the
// current view stays.
type Result struct {
	Notice   Notice
	Navigate string
}

// SessionStore is the session as seen by the services.
type SessionStore interface {
	HasToken(ctx context.Context) bool
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
	Claims(ctx context.Context) (*session.Claims, error)
	SavedAt(ctx context.Context) time.Time
}

func success(title, serverMsg, fallback string) Notice {
	if serverMsg == "" {
		serverMsg = fallback
	}
	return Notice{Level: LevelSuccess, Title: title, Message: serverMsg}
}

// failure maps a failed call to what the user sees. forbidden is shown for
// 403 when the server sends no message of its own, unless fixedForbidden
// asks to show it regardless.
func failure(err error, title, fallback, forbidden string, fixedForbidden bool) Result {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return Result{
			Notice:   Notice{Level: LevelWarning, Title: "Sesi berakhir", Message: "Silakan login kembali."},
			Navigate: guard.LoginPath,
		}
	case errors.Is(err, client.ErrForbidden):
		msg := forbidden
		if !fixedForbidden {
			msg = client.MessageOf(err, forbidden)
		}
		return Result{Notice: Notice{Level: LevelWarning, Title: "Akses ditolak!", Message: msg}}
	case errors.Is(err, client.ErrUnavailable):
		return Result{Notice: Notice{Level: LevelError, Title: title, Message: "Server tidak dapat dihubungi."}}
	default:
		return Result{Notice: Notice{Level: LevelError, Title: title, Message: client.MessageOf(err, fallback)}}
	}
}
