package client

import (
	"context"

	"github.com/mauv0809/nextpick/internal/club"
	"github.com/mauv0809/nextpick/internal/config"
)

// ClubAPI defines the interface for talking to the nextpick API server.
// This allows for mock implementations to be used in tests.
type ClubAPI interface {
	FetchState(ctx context.Context) (*club.ClubState, error)
	FetchConfig(ctx context.Context) (config.ClubConfig, error)
	History(ctx context.Context) ([]club.HistoryEntry, error)
	Stats(ctx context.Context) (map[string]int, error)
	Health(ctx context.Context) error

	Suggest(ctx context.Context, items []club.Item) (string, error)
	Vote(ctx context.Context, member string, rankings club.Ranking) (string, error)
	CloseVoting(ctx context.Context) (club.Item, error)
	MarkCompleted(ctx context.Context, member string) (string, error)
	MarkDiscussed(ctx context.Context) (string, error)
	NextRound(ctx context.Context) (string, error)
	Reset(ctx context.Context, state *club.ClubState) (string, error)
}
