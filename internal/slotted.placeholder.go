package internal

import (
	"strings"

	"github.com/google/uuid"
)

// NewInstanceID returns a fresh identifier for a dynamic module instance.
func NewInstanceID() string {
	return uuid.NewString()
}

// PlaceholderToken builds the substitution token for a tag registered on the
// dynamic module identified by instanceID.
func PlaceholderToken(instanceID, tag string) string {
	var sb strings.Builder
	sb.Grow(len(PlaceholderPrefix) + len(instanceID) + len(PlaceholderSeparator) + len(tag) + len(PlaceholderSuffix))
	sb.WriteString(PlaceholderPrefix)
	sb.WriteString(instanceID)
	sb.WriteString(PlaceholderSeparator)
	sb.WriteString(tag)
	sb.WriteString(PlaceholderSuffix)
	return sb.String()
}

// ContainsPlaceholder reports whether s still holds any unsubstituted token.
func ContainsPlaceholder(s string) bool {
	return strings.Contains(s, PlaceholderPrefix)
}
