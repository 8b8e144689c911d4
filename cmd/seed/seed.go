package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventpass/internal/domain"
)

const seedEventCount = 25

var seedEventDate = time.Date(2024, 4, 24, 18, 0, 0, 0, time.UTC)

// seedEvents creates "Evento 1" to "Evento 25", event n holding n*5 seats. Events that
// already exist are skipped, so the seed can be rerun.
func seedEvents(ctx context.Context, svc domain.EventService) (created, skipped int, err error) {
	for n := 1; n <= seedEventCount; n++ {
		details := fmt.Sprintf("Detalhes do evento %d.", n)
		maximum := n * 5
		event := domain.NewEvent(fmt.Sprintf("Evento %d", n), &details, &maximum, true, seedEventDate)
		if err := svc.CreateEvent(ctx, event); err != nil {
			if errors.Is(err, domain.ErrDuplicateSlug) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("seed %q: %w", event.Title, err)
		}
		created++
	}
	return created, skipped, nil
}
