package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewReferenceNumber builds an immutable public reference such as
// "SPA-3F2A9C41". Uniqueness is enforced by the store's unique index; the
// random segment makes collisions practically unreachable.
func NewReferenceNumber(prefix string) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, token[:8])
}
