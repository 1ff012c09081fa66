package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// IDs come from the random bits only, so two items added in the same
// millisecond still differ and clock drift never changes an ID.
func Test_ShortID_Ignores_Timestamp_Bits(t *testing.T) {
	t.Parallel()

	randA := uint16(0xabc)
	randB := uint64(0x123456789abcde)

	idA := makeUUIDv7(t, time.Date(2024, 6, 10, 15, 23, 10, 0, time.UTC), randA, randB)
	idB := makeUUIDv7(t, time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC), randA, randB)
	idC := makeUUIDv7(t, time.Date(2024, 6, 10, 15, 23, 10, 0, time.UTC), randA, randB^(1<<61))

	shortA, shortB, shortC := shortIDFromUUID(idA), shortIDFromUUID(idB), shortIDFromUUID(idC)

	if shortA != shortB {
		t.Fatalf("short id should ignore timestamp changes: %q vs %q", shortA, shortB)
	}

	if shortA == shortC {
		t.Fatal("short id should change when random bits change")
	}

	if len(shortA) != shortIDLength {
		t.Fatalf("short id length = %d, want %d", len(shortA), shortIDLength)
	}
}

func makeUUIDv7(t *testing.T, ts time.Time, randA uint16, randB uint64) uuid.UUID {
	t.Helper()

	ms := uint64(ts.UnixMilli())

	var b [16]byte

	b[0] = byte(ms >> 40)
	b[1] = byte(ms >> 32)
	b[2] = byte(ms >> 24)
	b[3] = byte(ms >> 16)
	b[4] = byte(ms >> 8)
	b[5] = byte(ms)

	b[6] = byte(0x70 | ((randA >> 8) & 0x0f))
	b[7] = byte(randA)

	b[8] = byte(0x80 | ((randB >> 56) & 0x3f))
	b[9] = byte(randB >> 48)
	b[10] = byte(randB >> 40)
	b[11] = byte(randB >> 32)
	b[12] = byte(randB >> 24)
	b[13] = byte(randB >> 16)
	b[14] = byte(randB >> 8)
	b[15] = byte(randB)

	id := uuid.UUID(b)
	if id.Version() != 7 || id.Variant() != uuid.RFC4122 {
		t.Fatal("constructed uuid is not v7")
	}

	return id
}
