package types

import (
	"time"

	json "github.com/goccy/go-json"
)

// Event is a charity activity registered from the dashboard. JSON keys match
// the records already stored in events.json.
type Event struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Date         string       `json:"date"`
	Images       []EventImage `json:"images"`
	PeopleHelped FlexInt      `json:"people_helped"`
	Location     string       `json:"location"`
	Budget       FlexFloat    `json:"budget"`
	Partners     FlexString   `json:"partners"`
	AddedBy      string       `json:"added_by"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    *time.Time   `json:"updated_at,omitempty"`
}

// EventImage describes one uploaded image. Path is the public URL the image
// is served from.
type EventImage struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

func (e *Event) RecordID() string         { return e.ID }
func (e *Event) SetRecordID(id string)    { e.ID = id }
func (e *Event) SetCreatedAt(t time.Time) { e.CreatedAt = t }
func (e *Event) SetUpdatedAt(t time.Time) { e.UpdatedAt = &t }

// MarshalJSON writes a missing image list as [] rather than null.
func (e Event) MarshalJSON() ([]byte, error) {
	type event Event
	out := event(e)
	if out.Images == nil {
		out.Images = make([]EventImage, 0)
	}

	return json.Marshal(out)
}
