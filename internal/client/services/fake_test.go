package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/querycache"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// fakeClient implements client.Client and records what it was asked.
type fakeClient struct {
	mu sync.Mutex

	LoginRet    *client.AuthResult
	LoginErr    error
	RegisterRet *client.AuthResult
	RegisterErr error

	Items      []models.Item
	ItemsErr   error
	ItemsCalls int

	Guards    []models.Satpam
	GuardsErr error

	CreateErr    error
	CreateCalls  int
	LastReport   models.NewReport
	LastPhotoLen int

	ConfirmFoundErr error
	LastFoundID     string

	PickupErr    error
	PickupCalls  int
	LastPickup   models.PickupDetails
	LastPhotoCnt int

	LoginCalls int
}

func (f *fakeClient) Login(_ context.Context, _ models.Credentials) (*client.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, _ models.Registration) (*client.AuthResult, error) {
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ListItems(context.Context) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ItemsCalls++
	return f.Items, f.ItemsErr
}

func (f *fakeClient) CreateItem(_ context.Context, r models.NewReport, photo *models.Upload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastReport = r
	if photo != nil {
		b, _ := io.ReadAll(photo.Body)
		f.LastPhotoLen = len(b)
	}
	return "Laporan dibuat", f.CreateErr
}

func (f *fakeClient) ConfirmFound(_ context.Context, id string) (string, error) {
	f.LastFoundID = id
	return "", f.ConfirmFoundErr
}

func (f *fakeClient) ListGuards(context.Context) ([]models.Satpam, error) {
	return f.Guards, f.GuardsErr
}

func (f *fakeClient) ConfirmPickup(_ context.Context, p models.PickupDetails, photos []models.Upload) (string, error) {
	f.PickupCalls++
	f.LastPickup = p
	f.LastPhotoCnt = len(photos)
	return "", f.PickupErr
}

var _ client.Client = (*fakeClient)(nil)

type fixture struct {
	client   *fakeClient
	sessions *session.Store
	cache    *querycache.Cache
	auth     AuthService
	items    ItemService
	reports  ReportService
	closeOut CloseOutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fc := &fakeClient{}
	store := session.New(session.NewMemoryBackend())
	cache := querycache.New(querycache.WithRetryDelay(time.Millisecond))
	log := logging.Discard()
	dir := t.TempDir()

	return &fixture{
		client:   fc,
		sessions: store,
		cache:    cache,
		auth:     NewAuthService(fc, store, cache, log),
		items:    NewItemService(fc, store, cache, log),
		reports:  NewReportService(fc, cache, dir, log),
		closeOut: NewCloseOutService(fc, cache, dir, log),
	}
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id_user": 1, "role": role,
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}
