package api

import (
	"fmt"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// normalizeHandle lowercases and trims a user handle and rejects anything
// outside [a-z0-9_].
func normalizeHandle(handle string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(handle))
	if normalized == "" {
		return "", fmt.Errorf("handle cannot be empty")
	}
	if !identPattern.MatchString(normalized) {
		return "", fmt.Errorf("handle can only contain lowercase letters, numbers, and underscores")
	}

	return normalized, nil
}

// normalizeChatroomName applies the same normalization rules to chatroom
// names.
func normalizeChatroomName(name string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if !identPattern.MatchString(normalized) {
		return "", fmt.Errorf("name can only contain lowercase letters, numbers, and underscores")
	}

	return normalized, nil
}
