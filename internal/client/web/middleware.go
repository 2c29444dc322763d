package web

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/lostfound/internal/client/guard"
)

// guarded turns a route guard into chi middleware. A refused request is
// redirected; the requested location travels along as ?from=.
func guarded(g guard.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := g(r.Context(), r.URL.RequestURI())
			if d.Allow {
				next.ServeHTTP(w, r)
				return
			}
			target := d.Redirect
			if d.From != "" {
				target += "?from=" + url.QueryEscape(d.From)
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}
