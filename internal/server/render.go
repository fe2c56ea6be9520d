package server

import (
	"bytes"
	"net/http"

	"charitydash/pkg/types"
)

// renderTemplate fills navbar data from the session and executes into a
// buffer, so a failing template never leaves a half-written page.
func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) error {
	session := sessionFromContext(r.Context())

	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			IsAuthenticated: session.Authenticated,
			Username:        session.Username,
		})
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
