// Package logging provides structured logging configuration for stitchd.
//
// It wraps log/slog to keep logging consistent across components: a small
// Config selects the minimum level and the output format (text for
// development, JSON for aggregation), and New builds the logger.
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatJSON,
//	})
//	logger.Info("stitched endpoint", "endpoint", "reviews", "types", 7)
//
// Components accept a *slog.Logger in their constructor; pass logging.Nop()
// where logging is unwanted.
package logging
