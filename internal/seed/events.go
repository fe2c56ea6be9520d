package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"charitydash/internal/store"
	"charitydash/pkg/types"
)

var fakeEventTitles = []string{
	"Winter clothing drive",
	"Ramadan iftar for workers",
	"Back to school supplies",
	"Free medical check-up day",
	"Food basket distribution",
	"Blood donation campaign",
	"Orphan support day",
	"Elderly home visit",
}

var fakeEventDescriptions = []string{
	"Volunteers distributed warm clothing and blankets to families in need.",
	"Hot meals were served at sunset to workers far from their families.",
	"Students received backpacks, notebooks and stationery for the new term.",
	"Doctors offered free check-ups, blood pressure and sugar screening.",
	"Monthly baskets of dry food and essentials were delivered to homes.",
	"Donors gave blood in partnership with the regional blood bank.",
	"Children enjoyed a day of activities, gifts and a shared lunch.",
	"Volunteers spent the afternoon with residents and brought small gifts.",
}

var fakeEventLocations = []string{"Riyadh", "Jeddah", "Dammam", "Makkah", "Madinah", "Abha"}

// SeedFakeEvents appends count generated events. With reset, events from
// earlier seed runs are removed first.
func SeedFakeEvents(ctx context.Context, repo *store.EventRepository, count int, reset bool) (int, error) {
	if reset {
		for _, event := range repo.Events(ctx) {
			if event.AddedBy != SeedAddedBy {
				continue
			}
			if err := repo.DeleteEvent(ctx, event.ID); err != nil {
				return 0, fmt.Errorf("failed to reset seeded event %s: %w", event.ID, err)
			}
		}
	}

	if count <= 0 {
		return 0, nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	created := 0
	for i := 0; i < count; i++ {
		pick := rng.Intn(len(fakeEventTitles))

		event := &types.Event{
			Title:        fakeEventTitles[pick],
			Description:  fakeEventDescriptions[pick],
			Date:         now.AddDate(0, 0, -rng.Intn(365)).Format(time.DateOnly),
			Images:       []types.EventImage{},
			PeopleHelped: types.FlexInt(rng.Intn(490) + 10),
			Location:     fakeEventLocations[rng.Intn(len(fakeEventLocations))],
			Budget:       types.FlexFloat(float64(rng.Intn(500)+10) * 100),
			AddedBy:      SeedAddedBy,
		}

		if _, err := repo.CreateEvent(ctx, event); err != nil {
			return created, fmt.Errorf("failed to create fake event %d: %w", i+1, err)
		}
		created++
	}

	return created, nil
}
