package convert

import (
	"crypto/sha1"
	"encoding/hex"
	"math/rand"
	"time"
)

// idAlphabet is the 62-symbol alphabet Excalidraw draws element ids from.
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// idLength is the length of every element id.
const idLength = 21

// IDSource allocates random element identifiers in the style used by
// Excalidraw. Ids are probabilistically unique; collisions are not checked.
// An IDSource is not safe for concurrent use, matching the single-pass
// translation model.
type IDSource struct {
	rng *rand.Rand
}

// NewIDSource returns a deterministic id source for the given seed, so
// translation runs can be reproduced in tests.
func NewIDSource(seed int64) *IDSource {
	return &IDSource{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomIDSource returns an id source seeded from the clock.
func NewRandomIDSource() *IDSource {
	return NewIDSource(time.Now().UnixNano())
}

// ElementID returns a fresh 21-character identifier.
func (s *IDSource) ElementID() string {
	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idAlphabet[s.rng.Intn(len(idAlphabet))]
	}
	return string(buf)
}

// BlobID returns the content-addressed identifier for an embedded image
// payload: identical payload bytes always yield the identical id.
func BlobID(data string) string {
	sum := sha1.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}
