// internal/app/system/msgsanitize/msgsanitize.go
package msgsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Collaborator messages are stored and redisplayed as plain text, so the
// strict policy strips every tag and attribute rather than allowlisting.
var policy = bluemonday.StrictPolicy()

// Message sanitizes a collaborator message for storage: markup removed,
// surrounding whitespace trimmed.
func Message(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
