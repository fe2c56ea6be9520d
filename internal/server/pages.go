package server

import (
	"errors"
	"net/http"

	"charitydash/pkg/types"
)

func (s *Service) handleHome(w http.ResponseWriter, r *http.Request) {
	stats := s.statsService.Statistics(r.Context())

	data := &types.HomePageData{
		BasePageData: types.BasePageData{Title: "Home"},
		Stats:        stats,
		Events:       stats.RecentEvents,
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "page.home", data); err != nil {
		s.logger.WithError(err).Error("failed to render home page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	s.renderEventDetail(w, r, "page.event-detail")
}

func (s *Service) renderEventDetail(w http.ResponseWriter, r *http.Request, templateName string) {
	ctx := r.Context()
	eventID := r.PathValue("id")

	event, err := s.eventsRepo.Event(ctx, eventID)
	if err != nil {
		if errors.Is(err, types.ErrEventNotFound) {
			s.handleNotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("event_id", eventID).Error("failed to load event")
		s.internalServerError(w)
		return
	}

	data := &types.EventDetailPageData{
		BasePageData: types.BasePageData{Title: event.Title},
		Event:        event,
	}

	if err := s.renderTemplate(w, r, http.StatusOK, templateName, data); err != nil {
		s.logger.WithError(err).WithField("event_id", eventID).Error("failed to render event detail")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleNotFound(w http.ResponseWriter, r *http.Request) {
	data := &types.NotFoundPageData{
		BasePageData: types.BasePageData{Title: "Page not found"},
		Path:         r.URL.Path,
	}

	if err := s.renderTemplate(w, r, http.StatusNotFound, "page.404", data); err != nil {
		s.logger.WithError(err).Error("failed to render 404 page")
		http.NotFound(w, r)
		return
	}
}
