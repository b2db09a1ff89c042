package execution

import "github.com/google/uuid"

// IDSource supplies order ids for emitted execution orders. Uniqueness is
// the source's responsibility; downstream trade booking does not dedupe.
type IDSource interface {
	NextID() string
}

// UUIDSource generates random UUID order ids.
type UUIDSource struct{}

// NextID implements IDSource
func (UUIDSource) NextID() string {
	return uuid.NewString()
}
