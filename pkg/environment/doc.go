// Package environment propagates the current application environment
// (development, staging, production) through context.Context and into
// structured logs.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	ctx := environment.WithContext(context.Background(), env)
//
//	if environment.IsProduction(ctx) {
//	    // production-specific behaviour
//	}
//
// LoggerExtractor plugs into logger.WithContextExtractors so every record
// logged with such a context carries an "env" attribute.
package environment
