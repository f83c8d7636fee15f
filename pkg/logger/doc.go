// Package logger builds context-aware slog loggers.
//
// New creates a *slog.Logger from functional options selecting the output
// format (json or text), the minimum level, static attributes, and
// ContextExtractor callbacks that add request-scoped attributes on every
// log call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers such as Error, RequestID and Param keep attribute keys
// consistent across the code base. Helpers return an empty slog.Attr for nil
// or empty inputs, which slog drops:
//
//	log.InfoContext(ctx, "parameter resolved",
//		logger.Param(key, kind, out.Source, out.Status),
//		logger.Error(out.Err),
//	)
package logger
