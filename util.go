package binstream

import (
	"encoding/binary"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"
)

// Order is the wire byte order. The format is little-endian only; the
// variable exists for interface parity, not configuration.
var Order = binary.LittleEndian

// Encoding is the wire text encoding. The format is UTF-8 only.
const Encoding = "utf-8"

const zeroChunk = 512

var empty [zeroChunk]byte

// Roundup rounds n up to the nearest multiple of align.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// decodeString converts a UTF-8 byte run to a string. An incomplete
// multi-byte sequence at the tail is dropped so that only complete runes are
// decoded; invalid bytes elsewhere become U+FFFD, never a failure.
func decodeString(b []byte) string {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				b = b[:i]
			}
			break
		}
	}
	return string(b)
}

// Time values travel as a signed 64-bit count of 100ns ticks since
// 1601-01-01 UTC; durations as a plain 100ns tick count.
const (
	ticksPerSecond = 1e7
	epochDelta     = 11644473600 // seconds from 1601-01-01 to 1970-01-01
)

func timeToTicks(t time.Time) int64 {
	return (t.Unix()+epochDelta)*ticksPerSecond + int64(t.Nanosecond())/100
}

func ticksToTime(ticks int64) time.Time {
	return time.Unix(ticks/ticksPerSecond-epochDelta, (ticks%ticksPerSecond)*100).UTC()
}

func durationToTicks(d time.Duration) int64 { return d.Nanoseconds() / 100 }

func ticksToDuration(ticks int64) time.Duration { return time.Duration(ticks * 100) }

// GUIDs travel in the mixed-endian 16-byte layout: the three leading fields
// little-endian, the trailing eight bytes verbatim. uuid.UUID stores the
// big-endian RFC 4122 form, so both directions swap the leading fields.
func putGUID(b []byte, id uuid.UUID) {
	b[0], b[1], b[2], b[3] = id[3], id[2], id[1], id[0]
	b[4], b[5] = id[5], id[4]
	b[6], b[7] = id[7], id[6]
	copy(b[8:16], id[8:])
}

func guidFrom(b []byte) uuid.UUID {
	var id uuid.UUID
	id[0], id[1], id[2], id[3] = b[3], b[2], b[1], b[0]
	id[4], id[5] = b[5], b[4]
	id[6], id[7] = b[7], b[6]
	copy(id[8:], b[8:16])
	return id
}
