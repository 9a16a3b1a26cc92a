// Package logging provides the logging interface shared by bigcalc's
// components. The default backend is zerolog; a log.Logger adapter exists
// for callers that already hold a standard logger.
package logging
