// internal/dispatch/encoding.go
package dispatch

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64OrNil decodes s as strict standard base64 and returns the
// decoded text, or ok=false when s is not valid base64. Surrounding
// whitespace is tolerated, embedded newlines are not; an empty string
// decodes to an empty string.
func DecodeBase64OrNil(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", true
	}
	if strings.ContainsAny(trimmed, "\r\n") {
		return "", false
	}
	if len(trimmed)%4 != 0 {
		return "", false
	}
	decoded, err := base64.StdEncoding.Strict().DecodeString(trimmed)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}
