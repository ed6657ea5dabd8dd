package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_normalizeHandle(t *testing.T) {
	tcases := []struct {
		name     string
		handle   string
		expected string
		err      bool
	}{
		{
			name:     "already normalized",
			handle:   "testuser",
			expected: "testuser",
		},
		{
			name:     "lowercases and trims",
			handle:   "  TestUser_1  ",
			expected: "testuser_1",
		},
		{
			name:   "empty handle",
			handle: "",
			err:    true,
		},
		{
			name:   "whitespace-only handle",
			handle: "   ",
			err:    true,
		},
		{
			name:   "contains spaces",
			handle: "test user",
			err:    true,
		},
		{
			name:   "contains punctuation",
			handle: "test-user!",
			err:    true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			normalized, err := normalizeHandle(tc.handle)
			if tc.err {
				assert.Error(t, err, "expected error for handle %q", tc.handle)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, normalized)
		})
	}
}

func Test_normalizeChatroomName(t *testing.T) {
	tcases := []struct {
		name     string
		input    string
		expected string
		err      bool
	}{
		{
			name:     "already normalized",
			input:    "general",
			expected: "general",
		},
		{
			name:     "lowercases and trims",
			input:    " General_2 ",
			expected: "general_2",
		},
		{
			name:  "empty name",
			input: "",
			err:   true,
		},
		{
			name:  "contains invalid characters",
			input: "general chat",
			err:   true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			normalized, err := normalizeChatroomName(tc.input)
			if tc.err {
				assert.Error(t, err, "expected error for name %q", tc.input)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, normalized)
		})
	}
}
