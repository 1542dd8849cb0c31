package handler

// ErrorResponse is the body of every non-2xx gameplay response.
type ErrorResponse struct {
	Error           string   `json:"error"`
	MissingKeywords []string `json:"missingKeywords,omitempty"`
}

type navigateRequest struct {
	ChoiceID string `json:"choiceId" binding:"required"`
}

type collectItemRequest struct {
	Item string `json:"item" binding:"required"`
}
