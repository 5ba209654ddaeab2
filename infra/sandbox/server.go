package sandbox

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const localUser = "user"

// Server exposes a Store over the same HTTP API the client consumes.
type Server struct {
	app   *fiber.App
	store *Store
	log   zerolog.Logger
}

// NewServer builds the fiber app with every route mounted under /api.
func NewServer(store *Store, log zerolog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "echo-sandbox",
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler,
		}),
		store: store,
		log:   log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api", s.requestLog, s.resolveUser)

	api.Get("/me/", requireAuth, s.me)
	api.Get("/posts/", s.listPosts)
	api.Post("/posts/", requireAuth, s.createPost)
	api.Get("/posts/:id<int>/", s.postDetail)
	api.Post("/posts/:id<int>/comments/", requireAuth, s.createComment)
	api.Post("/posts/:id<int>/like/", requireAuth, s.likePost)
	api.Post("/comments/:id<int>/like/", requireAuth, s.likeComment)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("sandbox listening")
	return s.app.Listen(addr)
}

// Shutdown stops a running Listen.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Transport routes HTTP requests into the app in-process, with no socket.
func (s *Server) Transport() http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		// app.Test adds headers to the request it is given.
		return s.app.Test(req.Clone(req.Context()), -1)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}

func (s *Server) requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("elapsed", time.Since(start)).
		Str("request_id", c.Get("X-Request-ID")).
		Msg("sandbox request")
	return err
}

// resolveUser maps "Authorization: Token <key>" to a user. An unknown token
// is rejected outright; no header means an anonymous visitor.
func (s *Server) resolveUser(c *fiber.Ctx) error {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return c.Next()
	}
	key, ok := strings.CutPrefix(header, "Token ")
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token header.")
	}
	u, ok := s.store.userByToken(strings.TrimSpace(key))
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token.")
	}
	c.Locals(localUser, u)
	return c.Next()
}

func requireAuth(c *fiber.Ctx) error {
	if _, ok := c.Locals(localUser).(user); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	return c.Next()
}

func viewer(c *fiber.Ctx) user {
	u, _ := c.Locals(localUser).(user)
	return u
}

func (s *Server) me(c *fiber.Ctx) error {
	u := viewer(c)
	return c.JSON(userDTO{ID: u.ID, Username: u.Username})
}

func (s *Server) listPosts(c *fiber.Ctx) error {
	v := viewer(c)
	posts := s.store.postsNewestFirst()
	out := make([]postDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, s.postDTO(p, v.ID))
	}
	return c.JSON(out)
}

func (s *Server) createPost(c *fiber.Ctx) error {
	var body struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	v := viewer(c)
	id, err := s.store.AddPost(v.ID, body.Content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"content": []string{err.Error()}})
	}
	p, _ := s.store.post(id)
	return c.Status(fiber.StatusCreated).JSON(s.postDTO(p, v.ID))
}

func (s *Server) postDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}
	p, ok := s.store.post(int64(id))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Not found.")
	}
	v := viewer(c)
	summary := s.postDTO(p, v.ID)
	return c.JSON(postDetailDTO{
		ID:        summary.ID,
		Author:    summary.Author,
		Content:   summary.Content,
		CreatedAt: summary.CreatedAt,
		LikeCount: summary.LikeCount,
		LikedByMe: summary.LikedByMe,
		Comments:  s.commentTree(p.ID, v.ID),
	})
}

func (s *Server) createComment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}
	var body struct {
		Content  string `json:"content"`
		ParentID *int64 `json:"parent_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	created, err := s.store.AddComment(viewer(c).ID, int64(id), body.ParentID, body.Content)
	switch {
	case errors.Is(err, errNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Not found.")
	case errors.Is(err, errBlank):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"content": []string{err.Error()}})
	case errors.Is(err, errParentMissing), errors.Is(err, errParentForeign):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"parent_id": []string{err.Error()}})
	case err != nil:
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(createdDTO{ID: created.ID, CreatedAt: created.CreatedAt})
}

func (s *Server) likePost(c *fiber.Ctx) error {
	return s.like(c, s.store.LikePost)
}

func (s *Server) likeComment(c *fiber.Ctx) error {
	return s.like(c, s.store.LikeComment)
}

func (s *Server) like(c *fiber.Ctx, record func(userID, id int64) (bool, int, error)) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	created, count, err := record(viewer(c).ID, int64(id))
	if errors.Is(err, errNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Not found.")
	}
	if err != nil {
		return err
	}
	return c.JSON(likeDTO{Created: created, AlreadyLiked: !created, LikeCount: count})
}
