package reference

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"hash/fnv"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewBookingRef returns a short opaque booking reference built from 96 bits
// of randomness. The unique index on bookings.reference backstops the
// negligible collision probability.
func NewBookingRef() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("booking ref: %w", err)
	}
	return "BK-" + encoding.EncodeToString(buf), nil
}

// TicketCode builds the scan code for one issued seat. The booking id plus
// the per-booking sequence make every code unique by construction; the
// member digest and random suffix keep codes unguessable.
func TicketCode(bookingID uint, memberID string, seq int) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("ticket code: %w", err)
	}
	h := fnv.New32a()
	h.Write([]byte(memberID))
	return fmt.Sprintf("TKT-%d-%08X-%d-%X", bookingID, h.Sum32(), seq, buf), nil
}
