package profile

// Slug is how an account is publicly addressed: by its claimed username or,
// until it claims one, by its raw account identifier.
type Slug struct {
	value   string
	claimed bool
}

func Claimed(username string) Slug {
	return Slug{value: username, claimed: true}
}

func Fallback(accountID string) Slug {
	return Slug{value: accountID}
}

func (s Slug) IsClaimed() bool {
	return s.claimed
}

func (s Slug) String() string {
	return s.value
}
