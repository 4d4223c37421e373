package form

import (
	"time"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// EnvPrefix is the prefix of every form setting in the environment.
const EnvPrefix = "FORM_"

// Config holds the timing and threshold settings of a controller.
type Config struct {
	// FullDebounce settles username, full name and password emptiness.
	FullDebounce time.Duration `env:"FULL_DEBOUNCE" envDefault:"800ms"`
	// QuickDebounce settles password strength and confirmation match.
	QuickDebounce time.Duration `env:"QUICK_DEBOUNCE" envDefault:"200ms"`
	// UniquenessTimeout bounds one asynchronous uniqueness check.
	UniquenessTimeout time.Duration `env:"UNIQUENESS_TIMEOUT" envDefault:"5s"`
	// ActionTimeout bounds sign-in and reset-password callbacks.
	ActionTimeout time.Duration `env:"ACTION_TIMEOUT" envDefault:"15s"`

	MinUsernameLength int `env:"MIN_USERNAME_LENGTH" envDefault:"4"`
	MinFullnameLength int `env:"MIN_FULLNAME_LENGTH" envDefault:"3"`

	// StateBuffer is the per-subscriber buffer of published states.
	StateBuffer int `env:"STATE_BUFFER" envDefault:"16"`
}

// DefaultConfig returns the tag defaults without reading the environment.
func DefaultConfig() Config {
	var cfg Config
	config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	return cfg
}

// LoadConfig reads FORM_* variables, falling back to the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg, config.WithPrefix(EnvPrefix)); err != nil {
		return Config{}, err
	}
	return cfg.withDefaults(), nil
}

// withDefaults replaces non-positive settings with their defaults.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FullDebounce <= 0 {
		c.FullDebounce = def.FullDebounce
	}
	if c.QuickDebounce <= 0 {
		c.QuickDebounce = def.QuickDebounce
	}
	if c.UniquenessTimeout <= 0 {
		c.UniquenessTimeout = def.UniquenessTimeout
	}
	if c.ActionTimeout <= 0 {
		c.ActionTimeout = def.ActionTimeout
	}
	if c.MinUsernameLength <= 0 {
		c.MinUsernameLength = def.MinUsernameLength
	}
	if c.MinFullnameLength <= 0 {
		c.MinFullnameLength = def.MinFullnameLength
	}
	if c.StateBuffer <= 0 {
		c.StateBuffer = def.StateBuffer
	}
	return c
}

// Classifier returns the classifier these settings describe.
func (c Config) Classifier() Classifier {
	return Classifier{
		MinUsernameLength: c.MinUsernameLength,
		MinFullnameLength: c.MinFullnameLength,
		Policy:            validator.DefaultPasswordPolicy(),
	}
}
