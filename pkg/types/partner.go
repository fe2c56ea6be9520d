package types

import "time"

type Partner struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Description     string     `json:"description"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Website         string     `json:"website"`
	Location        string     `json:"location"`
	Services        string     `json:"services"`
	ContactPerson   string     `json:"contact_person"`
	ContactPosition string     `json:"contact_position"`
	Notes           string     `json:"notes"`
	AddedBy         string     `json:"added_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func (p *Partner) RecordID() string         { return p.ID }
func (p *Partner) SetRecordID(id string)    { p.ID = id }
func (p *Partner) SetCreatedAt(t time.Time) { p.CreatedAt = t }
func (p *Partner) SetUpdatedAt(t time.Time) { p.UpdatedAt = &t }
