package ledger

import (
	"time"
)

const (
	// Overhead charged per account on top of its data, in bytes.
	AccountStorageOverhead = 128

	DefaultLamportsPerByteYear = 3480
	DefaultExemptionThreshold  = 2
)

// Rent computes the balance an account needs to be exempt from rent.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  uint64
}

func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// MinimumBalance returns the rent exempt minimum for size bytes of data.
func (r Rent) MinimumBalance(size uint64) uint64 {
	return (size + AccountStorageOverhead) * r.LamportsPerByteYear * r.ExemptionThreshold
}

// IsExempt reports whether lamports cover the exempt minimum for size bytes.
func (r Rent) IsExempt(lamports, size uint64) bool {
	return lamports >= r.MinimumBalance(size)
}

type Clock struct {
	Slot          uint64
	UnixTimestamp int64
}

// ClockSource supplies the clock for the request being processed.
type ClockSource func(slot uint64) Clock

// WallClock stamps requests with the local wall time.
func WallClock(slot uint64) Clock {
	return Clock{
		Slot:          slot,
		UnixTimestamp: time.Now().Unix(),
	}
}

// FixedClock always reports the same timestamp.
func FixedClock(unixTimestamp int64) ClockSource {
	return func(slot uint64) Clock {
		return Clock{
			Slot:          slot,
			UnixTimestamp: unixTimestamp,
		}
	}
}
