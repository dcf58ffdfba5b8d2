package processor

import (
	"context"

	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/notifier"
)

// Store defines the club reads required by the processor.
type Store interface {
	GetState(ctx context.Context) (*club.ClubState, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
