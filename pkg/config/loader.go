package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration values keyed by type and prefix.
type configCache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

// Option adjusts how a configuration struct is parsed.
type Option func(*env.Options)

// WithPrefix requires every variable of the struct to carry prefix,
// e.g. "FORM_" turns `env:"FULL_DEBOUNCE"` into FORM_FULL_DEBOUNCE.
func WithPrefix(prefix string) Option {
	return func(o *env.Options) { o.Prefix = prefix }
}

// WithEnvironment parses from the given map instead of the process environment.
// Values parsed this way are not cached.
func WithEnvironment(vars map[string]string) Option {
	return func(o *env.Options) { o.Environment = vars }
}

// Load parses environment variables into v using its `env` struct tags.
//
// The default .env file is loaded once, if present. Each configuration type
// (and prefix) is parsed only once per process; later calls are served from
// the cache. Defaults come from `envDefault` tags.
//
//	type Config struct {
//		FullDebounce time.Duration `env:"FULL_DEBOUNCE" envDefault:"800ms"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.WithPrefix("FORM_"))
func Load[T any](v *T, opts ...Option) error {
	defaultEnvLoaded.Do(func() {
		// the .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	var o env.Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Environment != nil {
		return parse(v, o)
	}

	key := cacheKey[T](o.Prefix)

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := parse(v, o); err != nil {
		return err
	}
	globalCache.values[key] = *v
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ForceReload drops the cached value for T and parses it again.
func ForceReload[T any](v *T, opts ...Option) error {
	var o env.Options
	for _, opt := range opts {
		opt(&o)
	}
	globalCache.mu.Lock()
	delete(globalCache.values, cacheKey[T](o.Prefix))
	globalCache.mu.Unlock()

	return Load(v, opts...)
}

// ResetCache clears every cached configuration.
func ResetCache() {
	globalCache.mu.Lock()
	clear(globalCache.values)
	globalCache.mu.Unlock()
}

// LoadEnv loads variables from the given .env files into the process
// environment. Variables that are already set are left untouched, and an
// earlier file wins over a later one.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

func parse[T any](v *T, o env.Options) error {
	if err := env.ParseWithOptions(v, o); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

func cacheKey[T any](prefix string) string {
	return prefix + reflect.TypeFor[T]().String()
}
