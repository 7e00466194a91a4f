package chat

import (
	"fmt"
	"io"
	"strings"
)

// Label returns the speaker label used in plain-text output.
func (r Role) Label() string {
	if r == RoleUser {
		return "You"
	}
	return "Assistant"
}

// WriteMessage writes one message as "Label: content". Continuation lines
// are indented to line up under the first.
func WriteMessage(w io.Writer, msg Message) error {
	label := msg.Role.Label() + ": "
	indent := strings.Repeat(" ", len(label))
	body := strings.ReplaceAll(msg.Content, "\n", "\n"+indent)
	_, err := fmt.Fprintf(w, "%s%s\n", label, body)
	return err
}

// WriteTranscript writes messages in order, separated by blank lines.
func WriteTranscript(w io.Writer, messages []Message) error {
	for i, msg := range messages {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteMessage(w, msg); err != nil {
			return err
		}
	}
	return nil
}
