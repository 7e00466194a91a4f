package agent

import (
	"errors"
	"fmt"
)

// RunRequest is the JSON body accepted by the agent flow endpoint.
type RunRequest struct {
	OutputType string `json:"output_type"`
	InputType  string `json:"input_type"`
	InputValue string `json:"input_value"`
	SessionID  string `json:"session_id"`
}

// NewRunRequest builds a chat-in/chat-out request for one utterance.
func NewRunRequest(sessionID, text string) RunRequest {
	return RunRequest{
		OutputType: "chat",
		InputType:  "chat",
		InputValue: text,
		SessionID:  sessionID,
	}
}

// ReplyPath is the gjson path of the reply text inside a run response.
const ReplyPath = "outputs.0.outputs.0.messages.0.message"

// ErrUnexpectedShape is returned when a response has no usable reply text.
var ErrUnexpectedShape = errors.New("agent response has unexpected shape")

// StatusError reports a non-2xx answer from the agent endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("agent returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("agent returned status %d: %s", e.StatusCode, e.Body)
}
