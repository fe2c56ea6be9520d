package server

import (
	"net/http"
	"net/url"
)

// redirectWithMarker sends the browser to path with a single query marker,
// e.g. /dashboard?success=event_added.
func redirectWithMarker(w http.ResponseWriter, r *http.Request, path, key, value string) {
	v := url.Values{}
	v.Set(key, value)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectDashboardWithSuccess(w http.ResponseWriter, r *http.Request, marker string) {
	redirectWithMarker(w, r, "/dashboard", "success", marker)
}

func (s *Service) redirectDashboardWithError(w http.ResponseWriter, r *http.Request, marker string) {
	redirectWithMarker(w, r, "/dashboard", "error", marker)
}

func (s *Service) redirectLoginWithError(w http.ResponseWriter, r *http.Request, marker string) {
	redirectWithMarker(w, r, "/login", "error", marker)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
