package config

import (
	"fmt"
	"time"

	"github.com/transitpanel/transitpanel/pkg/transit"
)

// Duration accepts either a Go duration string ("45s") or an integer number
// of milliseconds, the unit the original panel configs used.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ms int64
	if err := unmarshal(&ms); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	var text string
	if err := unmarshal(&text); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}

	*d = Duration(parsed)

	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// ProviderConfig holds the outbound API settings for one provider family.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`

	// Token is sent as-is in the Authorization header when it already
	// carries a scheme ("Basic xxx"), otherwise as a bearer token.
	Token string `yaml:"token"`
}

type APIConfig struct {
	Legacy  ProviderConfig `yaml:"legacy"`
	Navitia ProviderConfig `yaml:"navitia"`
	Rail    ProviderConfig `yaml:"rail"`
	Traffic ProviderConfig `yaml:"traffic"`
	Velib   ProviderConfig `yaml:"velib"`

	// Directory is the rail operator's station directory CSV, used to
	// resolve UIC codes before the rail feed can be polled.
	Directory ProviderConfig `yaml:"directory"`
}

type DisplayConfig struct {
	MaximumEntries           int  `yaml:"maximum_entries"`
	MaxLettersForDestination int  `yaml:"max_letters_for_destination"`
	MaxLettersForTime        int  `yaml:"max_letters_for_time"`
	ConcatenateArrivals      bool `yaml:"concatenate_arrivals"`
	ConvertToWaitingTime     bool `yaml:"convert_to_waiting_time"`

	// OldUpdateThreshold overrides the derived staleness window
	// (UpdateInterval * (1 + OldThreshold)) when non-zero.
	OldUpdateThreshold Duration `yaml:"old_update_threshold"`
	OldThreshold       float64  `yaml:"old_threshold"`
	OldUpdateOpacity   float64  `yaml:"old_update_opacity"`

	ShowLastUpdateTime bool `yaml:"show_last_update_time"`
	ShowSecondsToNext  bool `yaml:"show_seconds_to_next_update"`

	Translations map[string]string `yaml:"translations"`
}

type HistoryConfig struct {
	MaxEntries int      `yaml:"max_entries"`
	MaxAge     Duration `yaml:"max_age"`
}

type AppConfig struct {
	UpdateInterval    Duration `yaml:"update_interval"`
	InitialRetryDelay Duration `yaml:"initial_retry_delay"`

	APIs    APIConfig     `yaml:"apis"`
	Display DisplayConfig `yaml:"display"`
	History HistoryConfig `yaml:"history"`

	Stops []transit.StopConfig `yaml:"stops" validate:"dive"`
}
