package vote

import "testing"

func TestVoteSerialize(t *testing.T) {
	v := New("alice", true)
	got := v.Serialize()
	if got["username"] != "alice" || got["value"] != true {
		t.Fatalf("unexpected serialize shape: %#v", got)
	}
}

func TestVoteStructuralEquality(t *testing.T) {
	a := New("alice", true)
	b := New("alice", true)
	c := New("alice", false)
	if a != b {
		t.Fatalf("votes with identical fields should be equal")
	}
	if a == c {
		t.Fatalf("votes with different values should not be equal")
	}
}
