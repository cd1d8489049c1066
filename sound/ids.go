package sound

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator returns a new identifier on each call.
type IDGenerator func() string

// RandomIDs generates opaque random identifiers. Uniqueness is left to the
// generator; nothing checks for collisions.
func RandomIDs() IDGenerator {
	return uuid.NewString
}

// SequentialIDs generates prefix-1, prefix-2, ... for reproducible output.
func SequentialIDs(prefix string) IDGenerator {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
