package store

import (
	"context"
	"slices"

	"charitydash/pkg/types"
)

const recentEventsLimit = 5

// StatsService derives dashboard totals from the event and partner files. It
// holds no state; every call re-reads the collections.
type StatsService struct {
	eventsRepo   *EventRepository
	partnersRepo *PartnerRepository
}

func NewStatsService(eventsRepo *EventRepository, partnersRepo *PartnerRepository) *StatsService {
	return &StatsService{eventsRepo: eventsRepo, partnersRepo: partnersRepo}
}

func (s *StatsService) Statistics(ctx context.Context) types.Statistics {
	return ComputeStatistics(s.eventsRepo.Events(ctx), s.partnersRepo.Partners(ctx))
}

// ComputeStatistics totals the given collections. Recent events are the last
// five in store order, newest first.
func ComputeStatistics(events []*types.Event, partners []*types.Partner) types.Statistics {
	var peopleHelped int64
	for _, event := range events {
		peopleHelped += int64(event.PeopleHelped)
	}

	recent := make([]*types.Event, 0, recentEventsLimit)
	recent = append(recent, events[max(0, len(events)-recentEventsLimit):]...)
	slices.Reverse(recent)

	return types.Statistics{
		TotalEvents:       len(events),
		TotalPartners:     len(partners),
		TotalPeopleHelped: peopleHelped,
		RecentEvents:      recent,
	}
}
