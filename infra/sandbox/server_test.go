package sandbox

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*Server, *Store) {
	t.Helper()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var tick int
	store := NewStore(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})
	return NewServer(store, zerolog.Nop()), store
}

func call(t *testing.T, s *Server, method, path, token, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func TestServer_LikeReportsAlreadyLiked(t *testing.T) {
	s, store := newTestServer(t)
	alice := store.AddUser("alice", "a")
	store.AddUser("bob", "b")
	postID, _ := store.AddPost(alice, "hello")
	path := "/api/posts/" + itoa(postID) + "/like/"

	code, data := call(t, s, http.MethodPost, path, "b", "{}")
	if code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", code, data)
	}
	var first likeDTO
	_ = json.Unmarshal(data, &first)
	if !first.Created || first.AlreadyLiked || first.LikeCount != 1 {
		t.Fatalf("unexpected first like: %+v", first)
	}

	_, data = call(t, s, http.MethodPost, path, "b", "{}")
	var second likeDTO
	_ = json.Unmarshal(data, &second)
	if second.Created || !second.AlreadyLiked || second.LikeCount != 1 {
		t.Fatalf("second like must report existing like: %+v", second)
	}
}

func TestServer_AuthRequiredForMutations(t *testing.T) {
	s, store := newTestServer(t)
	alice := store.AddUser("alice", "a")
	postID, _ := store.AddPost(alice, "hello")

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{name: "anonymous", token: "", want: http.StatusUnauthorized},
		{name: "unknown token", token: "nope", want: http.StatusUnauthorized},
		{name: "valid", token: "a", want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, data := call(t, s, http.MethodPost, "/api/posts/"+itoa(postID)+"/like/", tt.token, "{}")
			if code != tt.want {
				t.Fatalf("want %d, got %d: %s", tt.want, code, data)
			}
		})
	}

	if code, _ := call(t, s, http.MethodGet, "/api/posts/", "", ""); code != http.StatusOK {
		t.Fatalf("anonymous reads must be allowed, got %d", code)
	}
}

func TestServer_CommentParentMustBelongToPost(t *testing.T) {
	s, store := newTestServer(t)
	alice := store.AddUser("alice", "a")
	p1, _ := store.AddPost(alice, "one")
	p2, _ := store.AddPost(alice, "two")
	c, _ := store.AddComment(alice, p1, nil, "on one")

	body := `{"content":"reply","parent_id":` + itoa(c.ID) + `}`
	code, data := call(t, s, http.MethodPost, "/api/posts/"+itoa(p2)+"/comments/", "a", body)
	if code != http.StatusBadRequest || !strings.Contains(string(data), "same post") {
		t.Fatalf("expected parent validation error, got %d: %s", code, data)
	}

	code, data = call(t, s, http.MethodPost, "/api/posts/"+itoa(p1)+"/comments/", "a", `{"content":"   "}`)
	if code != http.StatusBadRequest {
		t.Fatalf("blank comment must be rejected, got %d: %s", code, data)
	}

	code, data = call(t, s, http.MethodPost, "/api/posts/"+itoa(p1)+"/comments/", "a", body)
	if code != http.StatusCreated {
		t.Fatalf("valid reply rejected: %d %s", code, data)
	}
	var created createdDTO
	if err := json.Unmarshal(data, &created); err != nil || created.ID == 0 {
		t.Fatalf("unexpected created payload: %s", data)
	}
}

func TestServer_DetailNestsChildrenInCreationOrder(t *testing.T) {
	s, store := newTestServer(t)
	alice := store.AddUser("alice", "a")
	postID, _ := store.AddPost(alice, "root")
	a, _ := store.AddComment(alice, postID, nil, "A")
	b, _ := store.AddComment(alice, postID, nil, "B")
	a1, _ := store.AddComment(alice, postID, &a.ID, "A1")
	a2, _ := store.AddComment(alice, postID, &a.ID, "A2")
	_, _ = store.AddComment(alice, postID, &a1.ID, "A1a")
	_, _, _ = store.LikeComment(alice, a2.ID)

	code, data := call(t, s, http.MethodGet, "/api/posts/"+itoa(postID)+"/", "a", "")
	if code != http.StatusOK {
		t.Fatalf("detail failed: %d %s", code, data)
	}
	var detail postDetailDTO
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(detail.Comments) != 2 || detail.Comments[0].ID != a.ID || detail.Comments[1].ID != b.ID {
		t.Fatalf("unexpected roots: %s", data)
	}
	kids := detail.Comments[0].Children
	if len(kids) != 2 || kids[0].ID != a1.ID || kids[1].ID != a2.ID {
		t.Fatalf("unexpected children order: %s", data)
	}
	if len(kids[0].Children) != 1 || kids[0].Children[0].Content != "A1a" {
		t.Fatalf("grandchild missing: %s", data)
	}
	if !kids[1].LikedByMe || kids[1].LikeCount != 1 {
		t.Fatalf("like state missing on A2: %+v", kids[1])
	}

	_, data = call(t, s, http.MethodGet, "/api/posts/", "", "")
	var posts []postDTO
	_ = json.Unmarshal(data, &posts)
	if len(posts) != 1 || posts[0].CommentCount != 5 {
		t.Fatalf("unexpected list: %s", data)
	}
}

func TestServer_DetailKeepsReplyOlderThanParent(t *testing.T) {
	s, store := newTestServer(t)
	alice := store.AddUser("alice", "a")
	postID, _ := store.AddPost(alice, "root")
	parent, _ := store.AddComment(alice, postID, nil, "parent")

	// Clock moves backwards: the reply sorts before its parent.
	store.SetClock(func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) })
	reply, _ := store.AddComment(alice, postID, &parent.ID, "reply")

	_, data := call(t, s, http.MethodGet, "/api/posts/"+itoa(postID)+"/", "", "")
	var detail postDetailDTO
	if err := json.Unmarshal(data, &detail); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(detail.Comments) != 1 || len(detail.Comments[0].Children) != 1 ||
		detail.Comments[0].Children[0].ID != reply.ID {
		t.Fatalf("reply must stay under its parent: %s", data)
	}
}

func TestServer_MeAndNotFound(t *testing.T) {
	s, store := newTestServer(t)
	store.AddUser("alice", "a")

	code, data := call(t, s, http.MethodGet, "/api/me/", "a", "")
	if code != http.StatusOK || !strings.Contains(string(data), `"username":"alice"`) {
		t.Fatalf("unexpected me response: %d %s", code, data)
	}
	if code, _ := call(t, s, http.MethodGet, "/api/me/", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("anonymous me must be 401, got %d", code)
	}
	if code, _ := call(t, s, http.MethodGet, "/api/posts/999/", "", ""); code != http.StatusNotFound {
		t.Fatalf("missing post must be 404, got %d", code)
	}
}

func TestNewSeeded_HasDemoUsers(t *testing.T) {
	store := NewSeeded()
	if _, ok := store.userByToken(AliceToken); !ok {
		t.Fatalf("alice token missing")
	}
	posts := store.postsNewestFirst()
	if len(posts) != 3 {
		t.Fatalf("expected 3 seeded posts, got %d", len(posts))
	}
	if posts[len(posts)-1].Content != "Welcome to Echo. Say hi below." {
		t.Fatalf("oldest post should be the welcome post: %q", posts[len(posts)-1].Content)
	}
}
