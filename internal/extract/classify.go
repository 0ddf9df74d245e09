package extract

import "statutes/internal/bills"

// Class is the tagged variant for the granule classes the converter
// understands. Each processable class determines which sub-fields are
// meaningful and which action branch applies.
type Class int

const (
	// ClassSkipped covers everything the converter ignores: front matter,
	// back matter, proclamations, reorganization plans.
	ClassSkipped Class = iota
	ClassPublicLaw
	ClassPrivateLaw
	ClassHouseConRes
	ClassSenateConRes
	ClassConstAmend
)

// ParseClass maps a MODS granuleClass tag to a Class.
func ParseClass(tag string) Class {
	switch tag {
	case "PUBLICLAW":
		return ClassPublicLaw
	case "PRIVATELAW":
		return ClassPrivateLaw
	case "HCONRES":
		return ClassHouseConRes
	case "SCONRES":
		return ClassSenateConRes
	case "CONSTAMEND":
		return ClassConstAmend
	default:
		return ClassSkipped
	}
}

// Processable reports whether the class yields an output record at all.
func (c Class) Processable() bool {
	return c != ClassSkipped
}

// IsLaw reports whether the class requires a law reference; its absence is
// an extraction failure rather than a vote approximation.
func (c Class) IsLaw() bool {
	return c == ClassPublicLaw || c == ClassPrivateLaw
}

// VoteStatus returns the status code recorded when a resolution or
// amendment lacks a law reference.
func (c Class) VoteStatus() string {
	if c == ClassConstAmend {
		return bills.StatusPassedConstAmend
	}
	return bills.StatusPassedConcurrentRes
}

func (c Class) String() string {
	switch c {
	case ClassPublicLaw:
		return "PUBLICLAW"
	case ClassPrivateLaw:
		return "PRIVATELAW"
	case ClassHouseConRes:
		return "HCONRES"
	case ClassSenateConRes:
		return "SCONRES"
	case ClassConstAmend:
		return "CONSTAMEND"
	default:
		return "SKIPPED"
	}
}
