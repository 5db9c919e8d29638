package profile

import (
	"regexp"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Kind groups rejection reasons into the two failure classes callers act on.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidFormat
	KindAlreadyTaken
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFormat:
		return "invalid_format"
	case KindAlreadyTaken:
		return "already_taken"
	default:
		return ""
	}
}

type Reason int

const (
	ReasonNone Reason = iota
	ReasonTooShort
	ReasonTooLong
	ReasonInvalidCharacters
	ReasonTaken
)

func (r Reason) Kind() Kind {
	switch r {
	case ReasonNone:
		return KindNone
	case ReasonTaken:
		return KindAlreadyTaken
	default:
		return KindInvalidFormat
	}
}

func (r Reason) Message() string {
	switch r {
	case ReasonTooShort:
		return "username is too short (minimum 3 characters)"
	case ReasonTooLong:
		return "username is too long (maximum 30 characters)"
	case ReasonInvalidCharacters:
		return "username can only contain letters, numbers, hyphens, and underscores"
	case ReasonTaken:
		return "username is already taken"
	default:
		return ""
	}
}

// Verdict is the outcome of an availability check or a claim. Rejections are
// values, not errors: an error from the same call always means a fault.
type Verdict struct {
	Username string
	Reason   Reason
}

func (v Verdict) OK() bool {
	return v.Reason == ReasonNone
}

func rejected(username string, reason Reason) Verdict {
	return Verdict{Username: username, Reason: reason}
}

// ValidateUsername applies the format policy only.
func ValidateUsername(username string) Reason {
	n := utf8.RuneCountInString(username)
	switch {
	case n < MinUsernameLength:
		return ReasonTooShort
	case n > MaxUsernameLength:
		return ReasonTooLong
	case !usernamePattern.MatchString(username):
		return ReasonInvalidCharacters
	}
	return ReasonNone
}
