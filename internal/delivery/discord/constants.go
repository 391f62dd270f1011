package discord

const (
	// Embed colors per outcome class
	colorSuccess = 0x65BF65 // linked
	colorWarning = 0xE6D132 // user-correctable
	colorFailure = 0xBF0F0F // infrastructure failure
)
