package handlers

const (
	// Query parameter limits
	maxLabelLength = 32 // Longest chord label accepted from a query string
	maxSearchLimit = 50 // Mirrors search.MaxLimit

	// MIDI download
	midiContentType = "audio/midi"
)
