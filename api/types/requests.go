package types

// NavigateRequest moves the session cursor
type NavigateRequest struct {
	// Action is one of "next", "prev", or "goto"
	Action string `json:"action" binding:"required"`
	// Ordinal is the target position for "goto"
	Ordinal *int `json:"ordinal,omitempty"`
}

// MarkRequest toggles a mark at the current cursor position
type MarkRequest struct {
	// Mark is one of "start", "end", or "single"
	Mark string `json:"mark" binding:"required"`
	// On is the desired toggle state
	On *bool `json:"on" binding:"required"`
}

// FieldRequest sets one annotation form field
type FieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}
