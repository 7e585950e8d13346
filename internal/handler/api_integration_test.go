package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/cache"
	"github.com/bloglist/bloglist/internal/handler/dto"
	"github.com/bloglist/bloglist/internal/metrics"
	"github.com/bloglist/bloglist/internal/middleware"
	"github.com/bloglist/bloglist/internal/repository"
	"github.com/bloglist/bloglist/internal/service"
	"github.com/bloglist/bloglist/internal/testutil"
)

type apiTestEnv struct {
	ctx      context.Context
	router   *chi.Mux
	recorder *metrics.InMemoryRecorder
}

func newAPITestEnv(t *testing.T) *apiTestEnv {
	t.Helper()

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	if err := testutil.ResetSchemas(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	cacheClient, err := cache.New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = cacheClient.Close()
	})

	if err := testutil.FlushRedis(ctx, cacheClient.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	recorder := metrics.NewInMemory()
	issuer := auth.NewTokenIssuer("integration-test-secret", time.Hour)

	userSvc := service.NewUserService(repo, cacheClient, issuer, recorder)
	blogSvc := service.NewBlogService(repo, cacheClient, recorder, logger)

	userHandler := NewUserHandler(userSvc, logger)
	blogHandler := NewBlogHandler(blogSvc, logger)
	testingHandler := NewTestingHandler(repo, cacheClient, logger)

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Logger:      logger,
		Parser:      issuer,
		Revocations: cacheClient,
	})

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Create)
		r.Post("/login", userHandler.Login)
		r.Get("/blogs", blogHandler.List)
		r.Get("/blogs/{id}", blogHandler.Get)
		r.Post("/testing/reset", testingHandler.Reset)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", userHandler.Logout)
			r.Post("/blogs", blogHandler.Create)
			r.Post("/blogs/{id}/like", blogHandler.Like)
			r.Delete("/blogs/{id}", blogHandler.Delete)
		})
	})

	return &apiTestEnv{
		ctx:      ctx,
		router:   router,
		recorder: recorder,
	}
}

func (e *apiTestEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *apiTestEnv) register(t *testing.T, name, username, password string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/users", "", dto.RegisterUserRequest{
		Name:     name,
		Username: username,
		Password: password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, rec.Code, rec.Body.String())
	}
}

func (e *apiTestEnv) login(t *testing.T, username, password string) dto.LoginResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{
		Username: username,
		Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}

	var out dto.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out
}

func (e *apiTestEnv) createBlog(t *testing.T, token, title, author, url string) dto.BlogResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/blogs", token, dto.CreateBlogRequest{
		Title:  title,
		Author: author,
		URL:    url,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create blog: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var out dto.BlogResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode blog response: %v", err)
	}
	return out
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	env := newAPITestEnv(t)

	env.register(t, "Matti Luukkainen", "mluukkai", "salainen")

	// Duplicate username is rejected
	rec := env.do(t, http.MethodPost, "/api/users", "", dto.RegisterUserRequest{
		Name:     "Other Matti",
		Username: "mluukkai",
		Password: "different",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}
	var errResp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != "USERNAME_TAKEN" {
		t.Fatalf("expected USERNAME_TAKEN, got %q", errResp.Code)
	}

	out := env.login(t, "mluukkai", "salainen")
	if out.Token == "" {
		t.Fatal("expected a session token")
	}
	if out.Username != "mluukkai" || out.Name != "Matti Luukkainen" {
		t.Fatalf("unexpected login identity: %+v", out)
	}

	// Wrong password fails with a generic message
	rec = env.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{
		Username: "mluukkai",
		Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: expected 401, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error != "wrong username or password" {
		t.Fatalf("expected generic credentials message, got %q", errResp.Error)
	}

	// Unknown username gets the same message
	rec = env.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{
		Username: "nobody",
		Password: "whatever",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", rec.Code)
	}
}

func TestAPI_RegisterValidation(t *testing.T) {
	env := newAPITestEnv(t)

	tests := []struct {
		name string
		req  dto.RegisterUserRequest
	}{
		{"short username", dto.RegisterUserRequest{Name: "A", Username: "ab", Password: "salainen"}},
		{"short password", dto.RegisterUserRequest{Name: "A", Username: "validname", Password: "ab"}},
		{"missing username", dto.RegisterUserRequest{Name: "A", Password: "salainen"}},
		{"missing password", dto.RegisterUserRequest{Name: "A", Username: "validname"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/users", "", tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAPI_BlogLifecycle(t *testing.T) {
	env := newAPITestEnv(t)

	env.register(t, "Matti Luukkainen", "mluukkai", "salainen")
	env.register(t, "Arto Hellas", "hellas", "salainen")

	creator := env.login(t, "mluukkai", "salainen")
	other := env.login(t, "hellas", "salainen")

	// Creating a blog requires a token
	rec := env.do(t, http.MethodPost, "/api/blogs", "", dto.CreateBlogRequest{
		Title: "unauthorized", URL: "http://example.com",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: expected 401, got %d", rec.Code)
	}

	blog := env.createBlog(t, creator.Token,
		"My newest blog about roadbikes", "Shimano Taki", "http://shimano.bikes.com")
	if blog.Likes != 0 {
		t.Fatalf("new blog likes = %d, want 0", blog.Likes)
	}
	if blog.CreatorID != creator.ID {
		t.Fatalf("creator = %q, want %q", blog.CreatorID, creator.ID)
	}

	// Listing requires no authentication
	rec = env.do(t, http.MethodGet, "/api/blogs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var blogs []dto.BlogResponse
	if err := json.NewDecoder(rec.Body).Decode(&blogs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(blogs) != 1 || blogs[0].ID != blog.ID {
		t.Fatalf("unexpected list: %+v", blogs)
	}

	// Anyone authenticated can like, creator included
	rec = env.do(t, http.MethodPost, "/api/blogs/"+blog.ID+"/like", other.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("like: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var liked dto.BlogResponse
	if err := json.NewDecoder(rec.Body).Decode(&liked); err != nil {
		t.Fatalf("decode liked blog: %v", err)
	}
	if liked.Likes != 1 {
		t.Fatalf("likes after like = %d, want 1", liked.Likes)
	}

	rec = env.do(t, http.MethodPost, "/api/blogs/"+blog.ID+"/like", creator.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("second like: expected 200, got %d", rec.Code)
	}

	// Liking without a token is rejected
	rec = env.do(t, http.MethodPost, "/api/blogs/"+blog.ID+"/like", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated like: expected 401, got %d", rec.Code)
	}

	// Only the creator may delete
	rec = env.do(t, http.MethodDelete, "/api/blogs/"+blog.ID, other.Token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-creator delete: expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodDelete, "/api/blogs/"+blog.ID, creator.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("creator delete: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	// Deleting or liking a removed blog both report not found
	rec = env.do(t, http.MethodDelete, "/api/blogs/"+blog.ID, creator.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/api/blogs/"+blog.ID+"/like", other.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("like after delete: expected 404, got %d", rec.Code)
	}
}

func TestAPI_ListNewestFirst(t *testing.T) {
	env := newAPITestEnv(t)

	env.register(t, "Matti Luukkainen", "mluukkai", "salainen")
	creator := env.login(t, "mluukkai", "salainen")

	first := env.createBlog(t, creator.Token, "first post", "Matti", "http://example.com/1")
	second := env.createBlog(t, creator.Token, "second post", "Matti", "http://example.com/2")

	rec := env.do(t, http.MethodGet, "/api/blogs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}

	var blogs []dto.BlogResponse
	if err := json.NewDecoder(rec.Body).Decode(&blogs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(blogs))
	}
	if blogs[0].ID != second.ID || blogs[1].ID != first.ID {
		t.Fatalf("expected newest first, got %q then %q", blogs[0].Title, blogs[1].Title)
	}
}

func TestAPI_Logout(t *testing.T) {
	env := newAPITestEnv(t)

	env.register(t, "Matti Luukkainen", "mluukkai", "salainen")
	session := env.login(t, "mluukkai", "salainen")

	rec := env.do(t, http.MethodPost, "/api/logout", session.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	// Revoked token no longer authenticates
	rec = env.do(t, http.MethodPost, "/api/blogs", session.Token, dto.CreateBlogRequest{
		Title: "after logout", URL: "http://example.com",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token: expected 401, got %d", rec.Code)
	}

	// Logging in again issues a fresh working token
	fresh := env.login(t, "mluukkai", "salainen")
	env.createBlog(t, fresh.Token, "back again", "Matti", "http://example.com/again")
}

func TestAPI_TestingReset(t *testing.T) {
	env := newAPITestEnv(t)

	env.register(t, "Matti Luukkainen", "mluukkai", "salainen")
	session := env.login(t, "mluukkai", "salainen")
	env.createBlog(t, session.Token, "doomed", "Matti", "http://example.com/doomed")

	rec := env.do(t, http.MethodPost, "/api/testing/reset", "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/blogs", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list after reset: expected 200, got %d", rec.Code)
	}
	var blogs []dto.BlogResponse
	if err := json.NewDecoder(rec.Body).Decode(&blogs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(blogs) != 0 {
		t.Fatalf("expected empty list after reset, got %d blogs", len(blogs))
	}

	// Users are gone too
	rec = env.do(t, http.MethodPost, "/api/login", "", dto.LoginRequest{
		Username: "mluukkai",
		Password: "salainen",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("login after reset: expected 401, got %d", rec.Code)
	}
}
