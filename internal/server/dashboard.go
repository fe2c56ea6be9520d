package server

import (
	"errors"
	"net/http"
	"strings"

	"charitydash/internal/upload"
	"charitydash/internal/validation"
	"charitydash/pkg/types"
)

func (s *Service) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := &types.DashboardPageData{
		BasePageData: types.BasePageData{Title: "Dashboard"},
		Success:      r.URL.Query().Get("success"),
		Error:        r.URL.Query().Get("error"),
		Stats:        s.statsService.Statistics(ctx),
		Events:       s.eventsRepo.Events(ctx),
		Partners:     s.partnersRepo.Partners(ctx),
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "page.dashboard", data); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetAddEvent(w http.ResponseWriter, r *http.Request) {
	data := &types.AddEventPageData{
		BasePageData: types.BasePageData{Title: "Add Event"},
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "page.add-event", data); err != nil {
		s.logger.WithError(err).Error("failed to render add event page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostAddEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFromContext(ctx)

	files, err := s.uploads.ParseRequest(w, r)
	if err != nil {
		s.logger.WithError(err).Warn("failed to read add event upload")
		s.redirectAddEventWithError(w, r, uploadErrorMarker(err))
		return
	}

	if err := s.uploads.Check(files); err != nil {
		s.logger.WithError(err).Warn("rejected add event upload")
		s.redirectAddEventWithError(w, r, uploadErrorMarker(err))
		return
	}

	var eventForm types.EventForm
	if err := decoder.Decode(&eventForm, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode add event form")
		s.redirectAddEventWithError(w, r, "server_error")
		return
	}
	eventForm.Trim()

	if result := validation.Struct(&eventForm); !result.Valid() {
		s.redirectAddEventWithError(w, r, result.Message())
		return
	}

	images, err := s.uploads.Accept(ctx, files)
	if err != nil {
		s.logger.WithError(err).Error("failed to store event images")
		s.redirectAddEventWithError(w, r, uploadErrorMarker(err))
		return
	}

	event := &types.Event{
		Title:        eventForm.Title,
		Description:  eventForm.Description,
		Date:         eventForm.Date,
		Images:       images,
		PeopleHelped: types.FlexInt(types.ParseInt(eventForm.PeopleHelped)),
		Location:     eventForm.Location,
		Budget:       types.FlexFloat(types.ParseFloat(eventForm.Budget)),
		Partners:     types.FlexString(eventForm.Partners),
		AddedBy:      session.Username,
	}

	created, err := s.eventsRepo.CreateEvent(ctx, event)
	if err != nil {
		s.logger.WithError(err).Error("failed to save event")
		s.uploads.Cleanup(ctx, images)
		s.redirectAddEventWithError(w, r, "save_failed")
		return
	}

	s.logger.WithField("event_id", created.ID).WithField("images", len(images)).Info("event added")

	s.redirectDashboardWithSuccess(w, r, "event_added")
}

func (s *Service) handleGetAddPartner(w http.ResponseWriter, r *http.Request) {
	data := &types.AddPartnerPageData{
		BasePageData: types.BasePageData{Title: "Add Partner"},
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "page.add-partner", data); err != nil {
		s.logger.WithError(err).Error("failed to render add partner page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostAddPartner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse add partner form")
		s.redirectAddPartnerWithError(w, r, "server_error")
		return
	}

	var partnerForm types.PartnerForm
	if err := decoder.Decode(&partnerForm, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode add partner form")
		s.redirectAddPartnerWithError(w, r, "server_error")
		return
	}
	partnerForm.Trim()

	if result := validation.Struct(&partnerForm); !result.Valid() {
		s.redirectAddPartnerWithError(w, r, result.Message())
		return
	}

	partner := &types.Partner{
		Name:            partnerForm.Name,
		Type:            partnerForm.Type,
		Description:     partnerForm.Description,
		Phone:           partnerForm.Phone,
		Email:           partnerForm.Email,
		Website:         partnerForm.Website,
		Location:        partnerForm.Location,
		Services:        partnerForm.Services,
		ContactPerson:   partnerForm.ContactPerson,
		ContactPosition: partnerForm.ContactPosition,
		Notes:           partnerForm.Notes,
		AddedBy:         session.Username,
	}

	created, err := s.partnersRepo.CreatePartner(ctx, partner)
	if err != nil {
		s.logger.WithError(err).Error("failed to save partner")
		s.redirectAddPartnerWithError(w, r, "save_failed")
		return
	}

	s.logger.WithField("partner_id", created.ID).Info("partner added")

	s.redirectDashboardWithSuccess(w, r, "partner_added")
}

func (s *Service) handleDashboardEventDetail(w http.ResponseWriter, r *http.Request) {
	s.renderEventDetail(w, r, "page.dashboard-event")
}

// handlePostDeleteEvent removes the record first, then its images, so a
// failed delete never leaves an event pointing at missing files.
func (s *Service) handlePostDeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	eventID := strings.TrimSpace(r.PathValue("id"))

	event, err := s.eventsRepo.Event(ctx, eventID)
	if err != nil {
		if errors.Is(err, types.ErrEventNotFound) {
			s.redirectDashboardWithError(w, r, "event_not_found")
			return
		}
		s.logger.WithError(err).WithField("event_id", eventID).Error("failed to load event for delete")
		s.redirectDashboardWithError(w, r, "server_error")
		return
	}

	if err := s.eventsRepo.DeleteEvent(ctx, eventID); err != nil {
		s.logger.WithError(err).WithField("event_id", eventID).Error("failed to delete event")
		s.redirectDashboardWithError(w, r, "delete_failed")
		return
	}

	s.uploads.Cleanup(ctx, event.Images)

	s.logger.WithField("event_id", eventID).Info("event deleted")

	s.redirectDashboardWithSuccess(w, r, "event_deleted")
}

func (s *Service) handlePostDeletePartner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	partnerID := strings.TrimSpace(r.PathValue("id"))

	if _, err := s.partnersRepo.Partner(ctx, partnerID); err != nil {
		if errors.Is(err, types.ErrPartnerNotFound) {
			s.redirectDashboardWithError(w, r, "partner_not_found")
			return
		}
		s.logger.WithError(err).WithField("partner_id", partnerID).Error("failed to load partner for delete")
		s.redirectDashboardWithError(w, r, "server_error")
		return
	}

	if err := s.partnersRepo.DeletePartner(ctx, partnerID); err != nil {
		s.logger.WithError(err).WithField("partner_id", partnerID).Error("failed to delete partner")
		s.redirectDashboardWithError(w, r, "delete_failed")
		return
	}

	s.logger.WithField("partner_id", partnerID).Info("partner deleted")

	s.redirectDashboardWithSuccess(w, r, "partner_deleted")
}

func (s *Service) redirectAddEventWithError(w http.ResponseWriter, r *http.Request, marker string) {
	redirectWithMarker(w, r, "/dashboard/add-event", "error", marker)
}

func (s *Service) redirectAddPartnerWithError(w http.ResponseWriter, r *http.Request, marker string) {
	redirectWithMarker(w, r, "/dashboard/add-partner", "error", marker)
}

func uploadErrorMarker(err error) string {
	switch {
	case errors.Is(err, upload.ErrInvalidFileType):
		return "invalid_file_type"
	case errors.Is(err, upload.ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, upload.ErrTooManyFiles):
		return "too_many_files"
	case errors.Is(err, upload.ErrUploadFailed):
		return "upload_failed"
	default:
		return "server_error"
	}
}
