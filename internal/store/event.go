package store

import (
	"context"
	"errors"

	"charitydash/pkg/types"

	"github.com/sirupsen/logrus"
)

const eventsFileName = "events.json"

type EventRepository struct {
	events *Collection[types.Event, *types.Event]
}

func NewEventRepository(logger *logrus.Logger, dataDir string, opts ...Option) *EventRepository {
	return &EventRepository{
		events: NewCollection[types.Event](logger, dataDir, eventsFileName, opts...),
	}
}

// Events returns every stored event, oldest first.
func (r *EventRepository) Events(ctx context.Context) []*types.Event {
	return r.events.List(ctx)
}

func (r *EventRepository) Event(ctx context.Context, eventID string) (*types.Event, error) {
	event, err := r.events.Get(ctx, eventID)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, types.ErrEventNotFound
	}

	return event, err
}

func (r *EventRepository) CreateEvent(ctx context.Context, event *types.Event) (*types.Event, error) {
	if event.Images == nil {
		event.Images = make([]types.EventImage, 0)
	}

	return r.events.Add(ctx, event)
}

// UpdateEvent merges patch (JSON field names) into the stored event.
func (r *EventRepository) UpdateEvent(ctx context.Context, eventID string, patch map[string]any) (*types.Event, error) {
	event, err := r.events.Update(ctx, eventID, patch)
	if errors.Is(err, ErrRecordNotFound) {
		return nil, types.ErrEventNotFound
	}

	return event, err
}

func (r *EventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	return r.events.Delete(ctx, eventID)
}
