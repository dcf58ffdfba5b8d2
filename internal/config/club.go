package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/nextpick/internal/club"
)

// ErrInvalidClubConfig is returned when a config document decodes but breaks
// the suggestion or voting bounds.
var ErrInvalidClubConfig = errors.New("invalid club config")

// DefaultClub returns the built-in club configuration.
func DefaultClub() ClubConfig {
	return ClubConfig{
		API: APIConfig{BaseURL: "http://localhost:8080"},
		Suggestions: SuggestionConfig{
			MinCount:     3,
			MaxCount:     5,
			DefaultCount: 3,
		},
		Voting: VotingConfig{
			PointSystem: PointSystem{Enabled: true, Points: []int{3, 2, 1}},
		},
		UI: UIConfig{
			Theme: Theme{
				PrimaryColor: "#007bff",
				SuccessColor: "#28a745",
				WarningColor: "#ffc107",
				DangerColor:  "#dc3545",
			},
		},
	}
}

// Validate checks the bounds that the round rules depend on.
func (c ClubConfig) Validate() error {
	s := c.Suggestions
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.baseUrl is empty", ErrInvalidClubConfig)
	}
	if s.MinCount < 1 || s.MinCount > s.MaxCount {
		return fmt.Errorf("%w: suggestion bounds %d..%d", ErrInvalidClubConfig, s.MinCount, s.MaxCount)
	}
	if s.DefaultCount < s.MinCount || s.DefaultCount > s.MaxCount {
		return fmt.Errorf("%w: defaultCount %d is outside %d..%d", ErrInvalidClubConfig, s.DefaultCount, s.MinCount, s.MaxCount)
	}
	points := c.Voting.PointSystem.Points
	if !c.Voting.PointSystem.Enabled {
		return nil
	}
	if len(points) == 0 {
		return fmt.Errorf("%w: the point system has no points", ErrInvalidClubConfig)
	}
	if len(points) > s.DefaultCount {
		return fmt.Errorf("%w: %d point values for %d suggestions", ErrInvalidClubConfig, len(points), s.DefaultCount)
	}
	for _, p := range points {
		if p <= 0 {
			return fmt.Errorf("%w: point values must be positive, got %d", ErrInvalidClubConfig, p)
		}
	}
	return nil
}

// Rules converts the config into the round rules enforced by the club.
// Without a point system every ballot is a single choice worth one point.
func (c ClubConfig) Rules() club.Rules {
	points := []int{1}
	if c.Voting.PointSystem.Enabled {
		points = slices.Clone(c.Voting.PointSystem.Points)
	}
	return club.Rules{
		SuggestionCount: c.Suggestions.DefaultCount,
		Points:          points,
	}
}

// Decode reads a config document over the defaults, so fields it leaves out
// keep their default values, and validates the result.
func Decode(data []byte) (ClubConfig, error) {
	cfg := DefaultClub()
	// Points would otherwise be merged element by element into the default slice.
	cfg.Voting.PointSystem.Points = nil

	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		return ClubConfig{}, fmt.Errorf("failed to decode club config: %w", err)
	}
	if cfg.Voting.PointSystem.Points == nil {
		cfg.Voting.PointSystem.Points = DefaultClub().Voting.PointSystem.Points
	}
	if err := cfg.Validate(); err != nil {
		return ClubConfig{}, err
	}
	return cfg, nil
}

// LoadClubFile reads and decodes the config document at path.
func LoadClubFile(path string) (ClubConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClubConfig{}, err
	}
	return Decode(data)
}

// Remote fetches the config served by the API.
type Remote interface {
	FetchConfig(ctx context.Context) (ClubConfig, error)
}

// Resolve picks the club config from the first source that works: the local
// file at localPath, then remote, then the built-in default. Either source may
// be left empty.
func Resolve(ctx context.Context, localPath string, remote Remote) ClubConfig {
	if localPath != "" {
		cfg, err := LoadClubFile(localPath)
		if err == nil {
			log.Debug("Using local club config", "path", localPath)
			return cfg
		}
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("No local club config", "path", localPath)
		} else {
			log.Warn("Failed to load local club config, trying API", "path", localPath, "error", err)
		}
	}

	if remote != nil {
		cfg, err := remote.FetchConfig(ctx)
		if err == nil {
			log.Debug("Using club config from API")
			return cfg
		}
		log.Warn("Failed to load club config from API, using default config", "error", err)
	}
	return DefaultClub()
}
