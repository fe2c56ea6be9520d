package types

import "strings"

// EventForm is the add-event submission. Numeric fields stay strings so the
// validator sees exactly what was posted.
type EventForm struct {
	Title        string `form:"title" validate:"min=3,max=200"`
	Description  string `form:"description" validate:"min=10,max=1000"`
	Date         string `form:"date" validate:"required,isodate"`
	PeopleHelped string `form:"people_helped" validate:"required,nonneg_int"`
	Location     string `form:"location" validate:"min=2,max=200"`
	Budget       string `form:"budget" validate:"omitempty,nonneg_float"`
	Partners     string `form:"partners"`
}

type PartnerForm struct {
	Name            string `form:"name" validate:"min=2,max=200"`
	Type            string `form:"type" validate:"min=2,max=100"`
	Description     string `form:"description" validate:"min=10,max=500"`
	Phone           string `form:"phone" validate:"omitempty,mobile_phone"`
	Email           string `form:"email" validate:"omitempty,email"`
	Website         string `form:"website" validate:"omitempty,url"`
	Location        string `form:"location"`
	Services        string `form:"services"`
	ContactPerson   string `form:"contact_person"`
	ContactPosition string `form:"contact_position"`
	Notes           string `form:"notes"`
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Trim strips surrounding whitespace from every field.
func (f *EventForm) Trim() {
	for _, field := range []*string{
		&f.Title, &f.Description, &f.Date, &f.PeopleHelped,
		&f.Location, &f.Budget, &f.Partners,
	} {
		*field = strings.TrimSpace(*field)
	}
}

func (f *PartnerForm) Trim() {
	for _, field := range []*string{
		&f.Name, &f.Type, &f.Description, &f.Phone, &f.Email, &f.Website,
		&f.Location, &f.Services, &f.ContactPerson, &f.ContactPosition, &f.Notes,
	} {
		*field = strings.TrimSpace(*field)
	}
}
