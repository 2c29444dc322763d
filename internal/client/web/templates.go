package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/client/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "detail", "login", "register", "report", "confirmation", "error"}

type pages map[string]*template.Template

// page is what every template receives. Data carries the view specific part.
type page struct {
	Title    string
	Notice   services.Notice
	LoggedIn bool
	User     *session.Claims
	Errors   models.ValidationErrors
	Form     url.Values
	Data     any
}

var templateFuncs = template.FuncMap{
	"formatDate": models.FormatDate,
	"timeAgo":    models.FormatTimeAgo,
	"badgeClass": func(it models.Item) string {
		if it.IsLost() {
			return "badge-lost"
		}
		return "badge-found"
	},
	"noticeClass": func(l services.Level) string {
		return "notice-" + string(l)
	},
}

func parsePages() (pages, error) {
	p := make(pages, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		p[name] = t
	}
	return p, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, p page) {
	s.renderStatus(w, r, http.StatusOK, name, p)
}

// renderStatus fills in the session part of p and writes the page. A pending
// flash notice is shown unless p brings its own.
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	ctx := r.Context()
	if n := s.flash.take(); p.Notice.IsZero() {
		p.Notice = n
	}
	p.LoggedIn = s.tokens.HasToken(ctx)
	if p.LoggedIn {
		if claims, err := s.auth.Claims(ctx); err == nil {
			p.User = claims
		}
	}

	t, ok := s.pages[name]
	if !ok {
		s.log.Error(ctx, "unknown template", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		s.log.Error(ctx, "template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
