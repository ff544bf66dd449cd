package core

// RuntimeConfig contains configuration passed to a table view at startup.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Variant string // Rule variant ID
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Variant: "standard",
	}
}
