package config

// Config holds all configuration for the server.
type Config struct {
	DBName         string
	MigrationsDir  string
	ClubConfigPath string
	Port           string
	Slack          SlackConfig
	Turso          TursoConfig
	PubSub         PubSubConfig
	AllowedOrigins []string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether outbound Slack messages can be sent.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type PubSubConfig struct {
	// ProjectID is the GCP project. Events stay in-process when it is empty.
	ProjectID   string
	TopicPrefix string
}

// ClubConfig is the club-facing configuration shared by the server and its
// clients. The JSON shape is served as-is by GET /api/config.
type ClubConfig struct {
	API         APIConfig        `json:"api"`
	Suggestions SuggestionConfig `json:"suggestions"`
	Voting      VotingConfig     `json:"voting"`
	UI          UIConfig         `json:"ui"`
}

type APIConfig struct {
	BaseURL string `json:"baseUrl"`
}

type SuggestionConfig struct {
	MinCount     int `json:"minCount"`
	MaxCount     int `json:"maxCount"`
	DefaultCount int `json:"defaultCount"`
}

type VotingConfig struct {
	PointSystem PointSystem `json:"pointSystem"`
}

type PointSystem struct {
	Enabled bool  `json:"enabled"`
	Points  []int `json:"points"`
}

type UIConfig struct {
	Theme Theme `json:"theme"`
}

type Theme struct {
	PrimaryColor string `json:"primaryColor"`
	SuccessColor string `json:"successColor"`
	WarningColor string `json:"warningColor"`
	DangerColor  string `json:"dangerColor"`
}
