package domain

// Preference keys read by the pipeline. Every other key is passed through untouched.
const (
	PrefDuration = "duration"
	PrefStyle    = "style"
)

// Defaults applied when the matching preference key is absent.
const (
	DefaultDuration = 3
	DefaultStyle    = "fun"
)
