package server

import (
	"errors"
	"net/http"

	"charitydash/pkg/types"

	json "github.com/goccy/go-json"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode json response")
		data, status = []byte(`{"error":"Internal server error"}`), http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Service) handleAPIEvents(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.eventsRepo.Events(r.Context()))
}

func (s *Service) handleAPIPartners(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.partnersRepo.Partners(r.Context()))
}

func (s *Service) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.statsService.Statistics(r.Context()))
}

func (s *Service) handleAPIEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := r.PathValue("id")

	event, err := s.eventsRepo.Event(ctx, eventID)
	if err != nil {
		if errors.Is(err, types.ErrEventNotFound) {
			s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "Event not found"})
			return
		}
		s.logger.WithError(err).WithField("event_id", eventID).Error("failed to load event")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	s.writeJSON(w, http.StatusOK, event)
}
