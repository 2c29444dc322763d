package web

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/querycache"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

type fakeClient struct {
	mu sync.Mutex

	loginRet *client.AuthResult
	items    []models.Item
	itemsErr error
	guards   []models.Satpam
	guardErr error

	loginCalls  int
	lastReport  *models.NewReport
	photoBytes  int
	lastFoundID string
	lastPickup  *models.PickupDetails
	pickupFotos int
}

func (f *fakeClient) Login(context.Context, models.Credentials) (*client.AuthResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginRet, nil
}

func (f *fakeClient) Register(context.Context, models.Registration) (*client.AuthResult, error) {
	return &client.AuthResult{}, nil
}

func (f *fakeClient) ListItems(context.Context) ([]models.Item, error) {
	return f.items, f.itemsErr
}

func (f *fakeClient) CreateItem(_ context.Context, r models.NewReport, photo *models.Upload) (string, error) {
	f.lastReport = &r
	if photo != nil {
		b, _ := io.ReadAll(photo.Body)
		f.photoBytes = len(b)
	}
	return "Laporan diterima", nil
}

func (f *fakeClient) ConfirmFound(_ context.Context, id string) (string, error) {
	f.lastFoundID = id
	return "", nil
}

func (f *fakeClient) ListGuards(context.Context) ([]models.Satpam, error) {
	return f.guards, f.guardErr
}

func (f *fakeClient) ConfirmPickup(_ context.Context, p models.PickupDetails, photos []models.Upload) (string, error) {
	f.lastPickup = &p
	f.pickupFotos = len(photos)
	return "", nil
}

type env struct {
	srv      *Server
	handler  http.Handler
	client   *fakeClient
	sessions *session.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fc := &fakeClient{
		items: []models.Item{
			{ID: "1", Title: "Dompet coklat", Kind: models.KindLost, Location: "Gedung A"},
			{ID: "2", Title: "Kunci motor", Kind: models.KindFound, Location: "Parkiran"},
		},
		guards: []models.Satpam{{ID: "5", Name: "Pak Asep"}},
	}
	store := session.New(session.NewMemoryBackend())
	cache := querycache.New(querycache.WithRetryDelay(time.Millisecond))
	log := logging.Discard()
	dir := t.TempDir()

	srv, err := New(Deps{
		Auth:        services.NewAuthService(fc, store, cache, log),
		Items:       services.NewItemService(fc, store, cache, log),
		Reports:     services.NewReportService(fc, cache, dir, log),
		CloseOut:    services.NewCloseOutService(fc, cache, dir, log),
		Tokens:      store,
		Log:         log,
		Placeholder: "https://example.test/none.png",
	})
	require.NoError(t, err)
	return &env{srv: srv, handler: srv.Routes(), client: fc, sessions: store}
}

func (e *env) login(t *testing.T, role string) {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role, "nama_lengkap": "Budi"}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, e.sessions.SetToken(context.Background(), tok))
}

func (e *env) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *env) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *env) postForm(path string, v url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *env) postMultipart(t *testing.T, path string, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := mw.CreateFormFile("foto", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.do(req)
}

func TestHome_ListsAndFilters(t *testing.T) {
	e := newEnv(t)

	rec := e.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dompet coklat")
	assert.Contains(t, rec.Body.String(), "Kunci motor")
	assert.Contains(t, rec.Body.String(), "https://example.test/none.png")

	rec = e.get("/?tab=found")
	assert.NotContains(t, rec.Body.String(), "Dompet coklat")
	assert.Contains(t, rec.Body.String(), "Kunci motor")

	rec = e.get("/?q=gedung")
	assert.Contains(t, rec.Body.String(), "Dompet coklat")
	assert.NotContains(t, rec.Body.String(), "Kunci motor")
}

func TestHome_ExpiredSessionRedirectsToLogin(t *testing.T) {
	e := newEnv(t)
	e.client.itemsErr = &client.APIError{Status: http.StatusUnauthorized}
	e.srv.OnUnauthorized(context.Background())

	rec := e.get("/")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = e.get("/login")
	assert.Contains(t, rec.Body.String(), "Sesi berakhir")
}

func TestHome_BackendDown(t *testing.T) {
	e := newEnv(t)
	e.client.itemsErr = client.ErrUnavailable

	rec := e.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gagal memuat laporan")
}

func TestGuards(t *testing.T) {
	e := newEnv(t)

	rec := e.get("/5/confirmation")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?from=%2F5%2Fconfirmation", rec.Header().Get("Location"))

	rec = e.get("/report?kind=hilang")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	e.login(t, "Mahasiswa")
	for _, path := range []string{"/login", "/register"} {
		rec = e.get(path)
		require.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	e.client.loginRet = &client.AuthResult{Token: "a.b.c"}

	rec := e.get("/login?from=%2F2%2Fconfirmation")
	assert.Contains(t, rec.Body.String(), `value="/2/confirmation"`)

	rec = e.postForm("/login", url.Values{"email": {"budi@kampus.ac.id"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.True(t, e.sessions.HasToken(context.Background()))

	rec = e.get("/")
	assert.Contains(t, rec.Body.String(), "Login Berhasil!")
	rec = e.get("/")
	assert.NotContains(t, rec.Body.String(), "Login Berhasil!")
}

func TestLogin_ValidationKeepsEmail(t *testing.T) {
	e := newEnv(t)

	rec := e.postForm("/login", url.Values{"email": {"budi"}, "password": {"123"}})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Format email salah")
	assert.Contains(t, body, "Minimal 6 karakter")
	assert.Contains(t, body, `value="budi"`)
	assert.Equal(t, 0, e.client.loginCalls)
}

func TestRegister_GoesToLogin(t *testing.T) {
	e := newEnv(t)

	rec := e.postForm("/register", url.Values{
		"npm": {"2021001"}, "nama_lengkap": {"Budi"}, "email": {"budi@kampus.ac.id"},
		"password": {"secret1"}, "program_studi": {"TI"}, "no_hp": {"0812"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestDetail(t *testing.T) {
	e := newEnv(t)

	rec := e.get("/items/1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tandai sudah ditemukan")
	assert.Contains(t, rec.Body.String(), "api.whatsapp.com")

	rec = e.get("/items/2")
	assert.NotContains(t, rec.Body.String(), "Konfirmasi pengambilan")

	e.login(t, "Satpam")
	rec = e.get("/items/2")
	assert.Contains(t, rec.Body.String(), "/2/confirmation")

	assert.Equal(t, http.StatusNotFound, e.get("/items/404").Code)
}

func TestConfirmFound(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")

	rec := e.postForm("/items/1/found", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "1", e.client.lastFoundID)
}

func TestReport(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")

	rec := e.get("/report?kind=ditemukan")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pak Asep")

	rec = e.postMultipart(t, "/report", map[string]string{
		"tipe_laporan":  "ditemukan",
		"judul_laporan": "Kunci",
		"lokasi":        "Parkiran",
		"tanggal":       "2025-12-04T17:00",
		"deskripsi":     "Gantungan biru",
		"id_satpam":     "5",
	}, map[string]string{"kunci.jpg": "jpeg bytes"})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.NotNil(t, e.client.lastReport)
	assert.Equal(t, "5", e.client.lastReport.GuardID)
	assert.Equal(t, len("jpeg bytes"), e.client.photoBytes)

	rec = e.get("/")
	assert.Contains(t, rec.Body.String(), "Laporan diterima")
}

func TestReport_MissingPhotoKeepsFields(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")

	rec := e.postMultipart(t, "/report", map[string]string{
		"tipe_laporan":  "hilang",
		"judul_laporan": "Dompet",
		"lokasi":        "Gedung B",
		"tanggal":       "2025-12-04T17:00",
		"deskripsi":     "Hitam",
	}, nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Foto wajib diunggah")
	assert.Contains(t, rec.Body.String(), `value="Dompet"`)
	assert.Nil(t, e.client.lastReport)
}

func TestReport_ExpiredSessionWhileLoadingGuards(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")
	e.client.guardErr = &client.APIError{Status: http.StatusUnauthorized}

	rec := e.get("/report?kind=ditemukan")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = e.postMultipart(t, "/report?kind=ditemukan", map[string]string{
		"tipe_laporan":  "ditemukan",
		"judul_laporan": "Kunci",
	}, map[string]string{"kunci.jpg": "jpeg bytes"})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, e.client.lastReport)
}

func TestReport_GuardListFailureStaysOnForm(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")
	e.client.guardErr = client.ErrUnavailable

	rec := e.get("/report?kind=ditemukan")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gagal memuat satpam")
}

func TestReport_TooLargeKeepsFoundForm(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")

	big := strings.Repeat("x", 7<<20)
	rec := e.postMultipart(t, "/report?kind=ditemukan", map[string]string{
		"tipe_laporan":  "ditemukan",
		"judul_laporan": "Kunci",
	}, map[string]string{"besar.jpg": big})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ukuran foto maksimal 5 MB")
	assert.Contains(t, body, "Lapor barang temuan")
	assert.Contains(t, body, "Pak Asep")
	assert.Nil(t, e.client.lastReport)
}

func TestConfirmation(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Satpam")

	rec := e.get("/2/confirmation")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kunci motor")

	rec = e.postMultipart(t, "/2/confirmation", map[string]string{
		"nama_pengambil":  "Andi",
		"npm_pengambil":   "2021002",
		"prodi_pengambil": "TI",
		"no_hp_pengambil": "0813",
	}, map[string]string{"a.jpg": "one", "b.jpg": "two"})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.NotNil(t, e.client.lastPickup)
	assert.Equal(t, "2", e.client.lastPickup.ItemID)
	assert.Equal(t, 2, e.client.pickupFotos)
}

func TestConfirmation_NoPhotos(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Satpam")

	rec := e.postMultipart(t, "/2/confirmation", map[string]string{"nama_pengambil": "Andi"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Harap sertakan minimal 1 foto bukti pengambilan.")
	assert.Contains(t, rec.Body.String(), `value="Andi"`)
	assert.Nil(t, e.client.lastPickup)
}

func TestConfirmation_NotAGuard(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")

	rec := e.get("/2/confirmation")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	e := newEnv(t)
	e.login(t, "Mahasiswa")

	rec := e.postForm("/logout", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, e.sessions.HasToken(context.Background()))
}

func TestUnknownPage(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, http.StatusNotFound, e.get("/a/b/c").Code)
}
