// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct parsing:
//
//	type Config struct {
//	    FullDebounce  time.Duration `env:"FULL_DEBOUNCE" envDefault:"800ms"`
//	    QuickDebounce time.Duration `env:"QUICK_DEBOUNCE" envDefault:"200ms"`
//	}
//
//	if err := config.LoadEnv("./deploy/.env"); err != nil {
//	    log.Fatal(err)
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("FORM_")); err != nil {
//	    log.Fatal(err)
//	}
//
// Each configuration type is parsed once per prefix and cached for the life
// of the process. Tests can call ResetCache or ForceReload after changing the
// environment, or pass WithEnvironment to parse from a map without touching
// the cache.
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer and can be
// matched with errors.Is.
package config
