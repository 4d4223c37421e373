// Package logger builds *slog.Logger values through functional options and
// provides attribute helpers so keys stay consistent across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Development, "formreplay"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "field settled",
//	    logger.Field("username"),
//	    logger.Status("valid"),
//	)
//
// New picks a text or JSON handler and wraps it in LogHandlerDecorator, which
// runs the registered ContextExtractor callbacks on every record.
//
// Error returns an empty attribute for a nil error, so it can be passed
// without a nil check.
package logger
