// Package format renders durations and long decimal numbers for display.
package format
