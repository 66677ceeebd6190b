// Package vote defines the immutable ballot cast by a player, used both for
// public team votes and private quest votes.
package vote

// Vote is an immutable (username, approve/reject) pair. Equality is
// structural on (username, value).
type Vote struct {
	username string
	value    bool
}

// New constructs a Vote. Once constructed it is never mutated.
func New(username string, value bool) Vote {
	return Vote{username: username, value: value}
}

// GetUsername returns who cast the vote.
func (v Vote) GetUsername() string { return v.username }

// GetValue returns the cast approve (true) / reject (false) value.
func (v Vote) GetValue() bool { return v.value }

// Serialize returns the wire shape of a Vote.
func (v Vote) Serialize() map[string]any {
	return map[string]any{
		"username": v.username,
		"value":    v.value,
	}
}
