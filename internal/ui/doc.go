// Package ui holds the color themes shared by the CLI, the REPL and the
// terminal calculator, and honors NO_COLOR (https://no-color.org/).
package ui
