package agent

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractReply pulls the reply text out of a raw run response body.
// Missing, empty or non-string values yield ErrUnexpectedShape.
func ExtractReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: body is not valid JSON", ErrUnexpectedShape)
	}

	result := gjson.GetBytes(body, ReplyPath)
	if !result.Exists() {
		return "", fmt.Errorf("%w: %s not found", ErrUnexpectedShape, ReplyPath)
	}
	if result.Type != gjson.String {
		return "", fmt.Errorf("%w: %s is %s, not a string", ErrUnexpectedShape, ReplyPath, result.Type)
	}
	if result.Str == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrUnexpectedShape, ReplyPath)
	}

	return result.Str, nil
}

// Normalize turns escaped newlines into real ones and strips a single pair
// of wrapping double quotes. Inner quotes are left untouched.
func Normalize(text string) string {
	normalized := strings.ReplaceAll(text, `\n`, "\n")

	if strings.HasPrefix(normalized, `"`) && strings.HasSuffix(normalized, `"`) {
		if len(normalized) < 2 {
			return ""
		}
		normalized = normalized[1 : len(normalized)-1]
	}

	return normalized
}
