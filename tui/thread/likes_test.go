package thread

import (
	"errors"
	"testing"

	"github.com/CrestNiraj12/echoterm/domain"
)

func TestLike_ServerCountOverwritesCell(t *testing.T) {
	s := newStubs()
	d := scenarioDetail()
	d.Comments[1].LikeCount = 6
	m := loaded(s, d)
	m = m.Collapse()
	ref := domain.CommentRef(20)

	s.likes.result = domain.LikeResult{Created: true, LikeCount: 7}
	m, cmd, err := m.Like(ref, true)
	if err != nil || cmd == nil {
		t.Fatalf("like should issue a request: %v", err)
	}
	if c, _ := m.LikeCell(ref); c.Count != 6 || c.Liked {
		t.Fatalf("cell must not change before the response: %+v", c)
	}
	if !m.IsPending(ref) {
		t.Fatalf("like should be pending")
	}

	m, _, _ = run(m, cmd)
	if c, _ := m.LikeCell(ref); c != (LikeCell{Count: 7, Liked: true}) {
		t.Fatalf("expected {7 true}, got %+v", c)
	}
	if m.IsPending(ref) {
		t.Fatalf("pending must clear")
	}
}

func TestLike_AlreadyLikedStillAppliesCount(t *testing.T) {
	s := newStubs()
	m := loaded(s, scenarioDetail()).Collapse()
	s.likes.result = domain.LikeResult{AlreadyLiked: true, LikeCount: 12}

	m, cmd, _ := m.Like(domain.CommentRef(11), true)
	m, _, _ = run(m, cmd)
	if c, _ := m.LikeCell(domain.CommentRef(11)); c != (LikeCell{Count: 12, Liked: true}) {
		t.Fatalf("already-liked response must still overwrite: %+v", c)
	}
}

func TestLike_SecondClickWhilePendingIsNoop(t *testing.T) {
	s := newStubs()
	m := loaded(s, scenarioDetail()).Collapse()
	s.likes.result = domain.LikeResult{Created: true, LikeCount: 1}
	ref := domain.CommentRef(10)

	m, first, _ := m.Like(ref, true)
	m, second, err := m.Like(ref, true)
	if second != nil || err != nil {
		t.Fatalf("second click while pending must not issue a request")
	}

	m, _, _ = run(m, first)
	if s.likes.calls != 1 {
		t.Fatalf("expected exactly one request, got %d", s.likes.calls)
	}
	if c, _ := m.LikeCell(ref); c != (LikeCell{Count: 1, Liked: true}) {
		t.Fatalf("state should reflect only the first response: %+v", c)
	}
}

func TestLike_DifferentEntitiesProceedIndependently(t *testing.T) {
	s := newStubs()
	m := loaded(s, scenarioDetail()).Collapse()
	m, a, _ := m.Like(domain.CommentRef(10), true)
	m, b, _ := m.Like(domain.PostRef(1), true)
	if a == nil || b == nil {
		t.Fatalf("likes on different entities must both be issued")
	}
}

func TestLike_RequiresCredential(t *testing.T) {
	s := newStubs()
	m := loaded(s, scenarioDetail())
	m, cmd, err := m.Like(domain.PostRef(1), false)
	if !errors.Is(err, domain.ErrAuthRequired) || cmd != nil {
		t.Fatalf("expected ErrAuthRequired without request, got %v", err)
	}
	if m.IsPending(domain.PostRef(1)) {
		t.Fatalf("rejected like must not be pending")
	}
}

func TestLike_FailureLeavesCellUnchanged(t *testing.T) {
	s := newStubs()
	d := scenarioDetail()
	d.LikeCount = 3
	m := loaded(s, d)
	s.likes.err = &domain.RequestError{Status: 500}

	m, cmd, _ := m.Like(domain.PostRef(1), true)
	m, next, err := run(m, cmd)
	if err == nil {
		t.Fatalf("failure should be surfaced")
	}
	if next != nil {
		t.Fatalf("failed like must not refresh")
	}
	if c, _ := m.LikeCell(domain.PostRef(1)); c != (LikeCell{Count: 3, Liked: false}) {
		t.Fatalf("cell must be unchanged on failure: %+v", c)
	}
	if m.IsPending(domain.PostRef(1)) {
		t.Fatalf("pending must clear on failure")
	}

	s.likes.err = nil
	if _, again, _ := m.Like(domain.PostRef(1), true); again == nil {
		t.Fatalf("a new like should be possible after a failure")
	}
}

func TestLike_SuccessOnOpenThreadRefreshes(t *testing.T) {
	s := newStubs()
	m := loaded(s, scenarioDetail())
	s.likes.result = domain.LikeResult{Created: true, LikeCount: 1}
	seq := m.Seq()

	m, cmd, _ := m.Like(domain.CommentRef(20), true)
	m, refresh, _ := run(m, cmd)
	if refresh == nil || m.Seq() != seq+1 || m.Status() != Loading {
		t.Fatalf("successful like beneath an open thread should refresh")
	}
}

func TestLike_LateResultAfterRefreshHitsNewCell(t *testing.T) {
	s := newStubs()
	m := loaded(s, scenarioDetail())
	s.likes.result = domain.LikeResult{Created: true, LikeCount: 5}

	m, likeCmd, _ := m.Like(domain.CommentRef(20), true)
	s.posts.details = []domain.PostDetail{scenarioDetail()}
	m, fetch := m.Refresh()
	m, _, _ = run(m, fetch)
	if !m.IsPending(domain.CommentRef(20)) {
		t.Fatalf("refresh must not drop the pending like")
	}

	m, _, _ = run(m, likeCmd)
	if c, _ := m.LikeCell(domain.CommentRef(20)); c != (LikeCell{Count: 5, Liked: true}) {
		t.Fatalf("late like must update the rebuilt cell: %+v", c)
	}
}

func TestRows_CarryLikeAndPending(t *testing.T) {
	s := newStubs()
	d := scenarioDetail()
	d.Comments[0].Children[0].LikeCount = 2
	d.Comments[0].Children[0].LikedByMe = true
	m := loaded(s, d)
	m, _, _ = m.Like(domain.CommentRef(20), true)

	rows := m.Rows()
	if rows[1].Like != (LikeCell{Count: 2, Liked: true}) {
		t.Fatalf("row like state not carried: %+v", rows[1].Like)
	}
	if !rows[2].Pending || rows[0].Pending {
		t.Fatalf("pending flag must follow the entity")
	}
}
