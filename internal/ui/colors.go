package ui

// Color accessors read the active theme, so output follows InitTheme and
// --no-color without callers passing the theme around.

func ColorReset() string     { return GetCurrentTheme().Reset }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorProvider exposes the active theme through the small interface used by
// error handlers.
type ColorProvider struct{}

func (ColorProvider) Red() string    { return ColorRed() }
func (ColorProvider) Yellow() string { return ColorYellow() }
func (ColorProvider) Reset() string  { return ColorReset() }
