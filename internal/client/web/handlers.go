package web

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/lostfound/internal/client/client"
	"github.com/dmitrijs2005/lostfound/internal/client/flow"
	"github.com/dmitrijs2005/lostfound/internal/client/guard"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/common"
)

// maxPickupPhotos bounds the request body of the pickup form.
const maxPickupPhotos = 10

type homeData struct {
	Items       []models.Item
	Tabs        []models.Tab
	Filter      models.Filter
	Failed      bool
	Placeholder string
}

type detailData struct {
	Item        models.Item
	Actions     services.Actions
	Placeholder string
}

type reportData struct {
	Kind   models.ReportKind
	Guards []models.Satpam
}

type confirmationData struct {
	Item models.Item
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := homeData{
		Tabs:        models.Tabs,
		Filter:      models.Filter{Tab: models.ParseTab(q.Get("tab")), Query: strings.TrimSpace(q.Get("q"))},
		Placeholder: s.placeholder,
	}

	p := page{Title: "Lost & Found", Data: &data}
	items, err := s.items.List(r.Context(), data.Filter)
	if err != nil {
		if s.redirectIfExpired(w, r, err) {
			return
		}
		data.Failed = true
		p.Notice = services.Notice{Level: services.LevelError, Title: "Gagal memuat laporan", Message: client.MessageOf(err, "Terjadi kesalahan.")}
	}
	data.Items = items
	s.render(w, r, "home", p)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	it, ok := s.findItem(w, r)
	if !ok {
		return
	}
	s.render(w, r, "detail", page{
		Title: it.Title,
		Data:  detailData{Item: it, Actions: s.items.Actions(r.Context(), it), Placeholder: s.placeholder},
	})
}

func (s *Server) handleConfirmFound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, err := s.closeOut.NewForm(services.ByReporter, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer form.Close()

	res, err := form.Submit(r.Context())
	s.finish(w, r, res, err, "/items/"+url.PathEscape(id))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login", page{Title: "Login", Form: url.Values{"from": {r.URL.Query().Get("from")}}})
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	creds := models.Credentials{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	res, err := s.auth.Login(r.Context(), creds)
	if err != nil {
		// The password is never echoed back.
		r.PostForm.Del("password")
		s.reshow(w, r, "login", page{Title: "Login", Form: r.PostForm}, res, err)
		return
	}
	s.finish(w, r, res, nil, guard.HomePath)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "register", page{Title: "Register"})
}

func (s *Server) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	f := r.PostForm
	reg := models.Registration{
		NPM:          strings.TrimSpace(f.Get("npm")),
		FullName:     strings.TrimSpace(f.Get("nama_lengkap")),
		Email:        strings.TrimSpace(f.Get("email")),
		Password:     f.Get("password"),
		StudyProgram: strings.TrimSpace(f.Get("program_studi")),
		Phone:        strings.TrimSpace(f.Get("no_hp")),
	}
	res, err := s.auth.Register(r.Context(), reg)
	if err != nil {
		f.Del("password")
		s.reshow(w, r, "register", page{Title: "Register", Form: f}, res, err)
		return
	}
	s.finish(w, r, res, nil, guard.LoginPath)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	res, err := s.auth.Logout(r.Context())
	s.finish(w, r, res, err, guard.LoginPath)
}

func reportKind(v string) models.ReportKind {
	if models.ReportKind(v) == models.KindFound {
		return models.KindFound
	}
	return models.KindLost
}

// reportPage builds the report form. A failure to load the guard list is
// shown as a notice and also returned so callers can react to a 401.
func (s *Server) reportPage(r *http.Request, kind models.ReportKind, form url.Values) (page, error) {
	data := reportData{Kind: kind}
	p := page{Title: "Buat laporan", Form: form, Data: &data}
	if kind != models.KindFound {
		return p, nil
	}
	guards, err := s.items.Guards(r.Context())
	if err != nil {
		p.Notice = services.Notice{Level: services.LevelError, Title: "Gagal memuat satpam", Message: client.MessageOf(err, "Terjadi kesalahan.")}
	}
	data.Guards = guards
	return p, err
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	p, err := s.reportPage(r, reportKind(r.URL.Query().Get("kind")), nil)
	if s.redirectIfExpired(w, r, err) {
		return
	}
	s.render(w, r, "report", p)
}

func (s *Server) handleReportPost(w http.ResponseWriter, r *http.Request) {
	// The kind also travels in the query so a body rejected before parsing
	// still comes back as the right form.
	kind := reportKind(r.URL.Query().Get("kind"))

	r.Body = http.MaxBytesReader(w, r.Body, common.MaxPhotoSize+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		p, gerr := s.reportPage(r, kind, nil)
		if s.redirectIfExpired(w, r, gerr) {
			return
		}
		s.reshow(w, r, "report", p, services.Result{}, models.ValidationErrors{"foto": "Ukuran foto maksimal 5 MB"})
		return
	}
	defer removeMultipart(r)

	if v := r.FormValue("tipe_laporan"); v != "" {
		kind = reportKind(v)
	}
	form, err := s.reports.NewForm(kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer form.Close()

	form.Report = models.NewReport{
		Kind:        kind,
		Title:       strings.TrimSpace(r.FormValue("judul_laporan")),
		Location:    strings.TrimSpace(r.FormValue("lokasi")),
		Date:        r.FormValue("tanggal"),
		Description: strings.TrimSpace(r.FormValue("deskripsi")),
		GuardID:     r.FormValue("id_satpam"),
	}

	p, err := s.reportPage(r, kind, r.PostForm)
	if s.redirectIfExpired(w, r, err) {
		return
	}
	if file, header, err := r.FormFile("foto"); err == nil {
		_, err = form.Photo.AddReader(header.Filename, file)
		file.Close()
		if errors.Is(err, flow.ErrFileTooLarge) {
			s.reshow(w, r, "report", p, services.Result{}, models.ValidationErrors{"foto": "Ukuran foto maksimal 5 MB"})
			return
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}

	res, err := form.Submit(r.Context())
	if err != nil {
		s.reshow(w, r, "report", p, res, err)
		return
	}
	s.finish(w, r, res, nil, guard.HomePath)
}

func (s *Server) handleConfirmation(w http.ResponseWriter, r *http.Request) {
	it, ok := s.pickupItem(w, r)
	if !ok {
		return
	}
	s.render(w, r, "confirmation", page{Title: "Konfirmasi pengambilan", Data: confirmationData{Item: it}})
}

func (s *Server) handleConfirmationPost(w http.ResponseWriter, r *http.Request) {
	it, ok := s.pickupItem(w, r)
	if !ok {
		return
	}
	p := page{Title: "Konfirmasi pengambilan", Data: confirmationData{Item: it}}

	r.Body = http.MaxBytesReader(w, r.Body, maxPickupPhotos*common.MaxPhotoSize+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		s.reshow(w, r, "confirmation", p, services.Result{}, models.ValidationErrors{"foto": "Ukuran foto maksimal 5 MB"})
		return
	}
	defer removeMultipart(r)
	p.Form = r.PostForm

	form, err := s.closeOut.NewForm(services.ByCustodian, it.ID.String())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer form.Close()

	errs := models.ValidationErrors{}
	for _, fh := range r.MultipartForm.File["foto"] {
		f, err := fh.Open()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		_, err = form.Photos.AddReader(fh.Filename, f)
		f.Close()
		if errors.Is(err, flow.ErrFileTooLarge) {
			errs["foto"] = fh.Filename + ": ukuran foto maksimal 5 MB"
			continue
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
	}
	if len(errs) > 0 {
		s.reshow(w, r, "confirmation", p, services.Result{}, errs)
		return
	}

	form.Pickup = models.PickupDetails{
		ItemID:  it.ID.String(),
		Name:    strings.TrimSpace(r.FormValue("nama_pengambil")),
		NPM:     strings.TrimSpace(r.FormValue("npm_pengambil")),
		Program: strings.TrimSpace(r.FormValue("prodi_pengambil")),
		Phone:   strings.TrimSpace(r.FormValue("no_hp_pengambil")),
		Note:    strings.TrimSpace(r.FormValue("catatan")),
	}
	res, err := form.Submit(r.Context())
	if err != nil {
		s.reshow(w, r, "confirmation", p, res, err)
		return
	}
	s.finish(w, r, res, nil, guard.HomePath)
}

// pickupItem loads the item of a confirmation page and checks the viewer
// may record its handover.
func (s *Server) pickupItem(w http.ResponseWriter, r *http.Request) (models.Item, bool) {
	it, ok := s.findItem(w, r)
	if !ok {
		return models.Item{}, false
	}
	if !s.items.Actions(r.Context(), it).ConfirmPickup {
		s.flash.set(services.Notice{Level: services.LevelWarning, Title: "Akses ditolak!", Message: "Konfirmasi pengambilan hanya untuk satpam."})
		http.Redirect(w, r, guard.HomePath, http.StatusSeeOther)
		return models.Item{}, false
	}
	return it, true
}

func (s *Server) findItem(w http.ResponseWriter, r *http.Request) (models.Item, bool) {
	it, err := s.items.Find(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		return it, true
	case errors.Is(err, services.ErrItemNotFound):
		s.renderStatus(w, r, http.StatusNotFound, "error", page{Title: "Tidak ditemukan", Data: "Laporan tidak ditemukan."})
	case s.redirectIfExpired(w, r, err):
	default:
		s.renderStatus(w, r, http.StatusBadGateway, "error", page{Title: "Gagal", Data: client.MessageOf(err, "Terjadi kesalahan.")})
	}
	return models.Item{}, false
}

// redirectIfExpired sends the user to login when err is a 401.
func (s *Server) redirectIfExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
	return true
}

// finish completes an action with a redirect. The notice is shown on the
// page the user lands on.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, res services.Result, err error, fallback string) {
	if err != nil && res.Notice.IsZero() {
		res.Notice = services.Notice{Level: services.LevelError, Title: "Gagal", Message: client.MessageOf(err, "Terjadi kesalahan.")}
	}
	s.flash.set(res.Notice)
	target := res.Navigate
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// reshow renders a form again after a failed submission, keeping what the
// user typed. A result asking for navigation (an expired session) wins.
func (s *Server) reshow(w http.ResponseWriter, r *http.Request, name string, p page, res services.Result, err error) {
	if res.Navigate != "" {
		s.finish(w, r, res, err, res.Navigate)
		return
	}
	status := http.StatusOK
	var v models.ValidationErrors
	if errors.As(err, &v) {
		p.Errors = v
		status = http.StatusUnprocessableEntity
	}
	if !res.Notice.IsZero() {
		p.Notice = res.Notice
	} else if p.Errors == nil && err != nil {
		p.Notice = services.Notice{Level: services.LevelError, Title: "Gagal", Message: client.MessageOf(err, "Terjadi kesalahan.")}
	}
	s.renderStatus(w, r, status, name, p)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	s.renderStatus(w, r, http.StatusInternalServerError, "error", page{Title: "Gagal", Data: "Terjadi kesalahan."})
}

func removeMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}
