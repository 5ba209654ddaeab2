package sandbox

import "time"

// Tokens accepted by a seeded sandbox.
const (
	AliceToken = "sandbox-alice"
	BobToken   = "sandbox-bob"
)

// Seed fills s with two users, a few posts and a short nested discussion.
func Seed(s *Store) {
	alice := s.AddUser("alice", AliceToken)
	bob := s.AddUser("bob", BobToken)
	carol := s.AddUser("carol", "sandbox-carol")

	welcome, _ := s.AddPost(alice, "Welcome to Echo. Say hi below.")
	tip, _ := s.AddPost(bob, "Tip: press enter on a post to open its thread, r to reply.")
	_, _ = s.AddPost(carol, "Quiet post with no comments yet.")

	hi, _ := s.AddComment(bob, welcome, nil, "hi alice!")
	hey, _ := s.AddComment(alice, welcome, &hi.ID, "hey bob, glad you made it")
	_, _ = s.AddComment(carol, welcome, &hey.ID, "same here")
	_, _ = s.AddComment(carol, welcome, nil, "nice place")
	_, _ = s.AddComment(alice, tip, nil, "and l to like")

	_, _, _ = s.LikePost(bob, welcome)
	_, _, _ = s.LikePost(carol, welcome)
	_, _, _ = s.LikeComment(alice, hi.ID)
}

// NewSeeded returns a seeded store. Seeded items are spaced one minute apart
// over the last day; later writes use the wall clock.
func NewSeeded() *Store {
	base := time.Now().Add(-24 * time.Hour)
	var tick int
	s := NewStore(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	Seed(s)
	s.SetClock(time.Now)
	return s
}
