// Package orchestration runs one or more calculators concurrently on the
// same expression and compares their results. Presentation is reached only
// through the ProgressReporter, ResultPresenter and ErrorHandler
// interfaces.
package orchestration
