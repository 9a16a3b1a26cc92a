package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats d for result tables: microseconds below a
// millisecond, whole milliseconds below a second, and time.Duration's own
// form above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
