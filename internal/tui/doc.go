// Package tui is the interactive terminal calculator started by --tui.
//
// The user types "x op y" expressions; each one is evaluated through the
// orchestration layer with the selected engine (or all engines) and added
// to a scrollable history. Long-running evaluations report progress and
// can be canceled without leaving the program.
package tui
