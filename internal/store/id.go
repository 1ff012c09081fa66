// Package store persists the item collection and the shared secret in a
// key-value backend and owns every mutation of the collection.
package store

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	shortIDLength = 12
	crockfordBase = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

// NewID returns a fresh 12-char Crockford base32 item ID derived from a UUIDv7.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("new uuidv7: %w", err)
	}

	return shortIDFromUUID(id), nil
}

func shortIDFromUUID(id uuid.UUID) string {
	// UUIDv7 layout (RFC 9562): 48-bit time, 4-bit version, 12-bit rand_a,
	// 2-bit variant, 62-bit rand_b. We use the high 60 random bits.
	randA := (uint16(id[6]&0x0f) << 8) | uint16(id[7])
	randB := (uint64(id[8]&0x3f) << 56) |
		(uint64(id[9]) << 48) |
		(uint64(id[10]) << 40) |
		(uint64(id[11]) << 32) |
		(uint64(id[12]) << 24) |
		(uint64(id[13]) << 16) |
		(uint64(id[14]) << 8) |
		uint64(id[15])

	top60 := (uint64(randA) << 48) | (randB >> 14)

	return encodeCrockfordBase32(top60)
}

func encodeCrockfordBase32(value uint64) string {
	var buf [shortIDLength]byte
	for i := shortIDLength - 1; i >= 0; i-- {
		buf[i] = crockfordBase[value&0x1f]
		value >>= 5
	}

	return string(buf[:])
}
