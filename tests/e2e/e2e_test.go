//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}

type blogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	User   string `json:"user"`
}

type statsResponse struct {
	BlogID  string `json:"blog_id"`
	Summary struct {
		TotalLikes   int64 `json:"total_likes"`
		UniqueLikers int64 `json:"unique_likers"`
	} `json:"summary"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("BLOGLIST_BASE_URL", "http://localhost:3003")

	resetState(t, baseURL)

	creator := registerUser(t, baseURL, "e2e-creator", "Creator")
	liker := registerUser(t, baseURL, "e2e-liker", "Liker")

	creatorToken := login(t, baseURL, creator)
	likerToken := login(t, baseURL, liker)

	blog := createBlog(t, baseURL, creatorToken, "E2E smoke blog", "https://example.com/e2e")

	likeBlog(t, baseURL, likerToken, blog.ID)
	likeBlog(t, baseURL, likerToken, blog.ID)

	listed := listBlogs(t, baseURL)
	if len(listed) != 1 {
		t.Fatalf("expected 1 blog in list, got %d", len(listed))
	}
	if listed[0].Likes != 2 {
		t.Fatalf("expected 2 likes, got %d", listed[0].Likes)
	}
	if listed[0].User != creator.id {
		t.Fatalf("expected creator %q, got %q", creator.id, listed[0].User)
	}

	waitForStats(t, baseURL, blog.ID)

	// Only the creator may delete
	status := do(t, http.MethodDelete, baseURL+"/api/blogs/"+blog.ID, likerToken, nil, nil)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-creator delete, got %d", status)
	}

	status = do(t, http.MethodDelete, baseURL+"/api/blogs/"+blog.ID, creatorToken, nil, nil)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204 for creator delete, got %d", status)
	}

	if remaining := listBlogs(t, baseURL); len(remaining) != 0 {
		t.Fatalf("expected empty list after delete, got %d blogs", len(remaining))
	}
}

func TestE2EListNewestFirst(t *testing.T) {
	baseURL := envOrDefault("BLOGLIST_BASE_URL", "http://localhost:3003")

	resetState(t, baseURL)

	author := registerUser(t, baseURL, "e2e-author", "Author")
	token := login(t, baseURL, author)

	first := createBlog(t, baseURL, token, "First post", "https://example.com/1")
	time.Sleep(20 * time.Millisecond)
	second := createBlog(t, baseURL, token, "Second post", "https://example.com/2")

	listed := listBlogs(t, baseURL)
	if len(listed) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(listed))
	}
	if listed[0].ID != second.ID || listed[1].ID != first.ID {
		t.Fatalf("expected newest-first order, got %s then %s", listed[0].ID, listed[1].ID)
	}
}

func TestE2ELogoutRevokesToken(t *testing.T) {
	baseURL := envOrDefault("BLOGLIST_BASE_URL", "http://localhost:3003")

	resetState(t, baseURL)

	user := registerUser(t, baseURL, "e2e-logout", "Logout User")
	token := login(t, baseURL, user)

	status := do(t, http.MethodPost, baseURL+"/api/logout", token, nil, nil)
	if status != http.StatusNoContent {
		t.Fatalf("expected 204 from logout, got %d", status)
	}

	payload := map[string]any{"title": "After logout", "url": "https://example.com/x"}
	status = do(t, http.MethodPost, baseURL+"/api/blogs", token, payload, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with revoked token, got %d", status)
	}
}

// TestE2ELoginRateLimiting validates that repeated failed logins hit a 429.
func TestE2ELoginRateLimiting(t *testing.T) {
	baseURL := envOrDefault("BLOGLIST_BASE_URL", "http://localhost:3003")

	resetState(t, baseURL)

	payload := map[string]any{"username": "nobody", "password": "wrong"}

	var rateLimited bool
	for i := 0; i < 30; i++ {
		status := do(t, http.MethodPost, baseURL+"/api/login", "", payload, nil)
		if status == http.StatusTooManyRequests {
			rateLimited = true
			break
		}
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401 or 429, got %d", status)
		}
	}

	if !rateLimited {
		t.Skip("login rate limiting disabled in this environment")
	}
}

// TestE2ENoSecretsInResponses validates that credentials are never echoed back.
func TestE2ENoSecretsInResponses(t *testing.T) {
	baseURL := envOrDefault("BLOGLIST_BASE_URL", "http://localhost:3003")

	resetState(t, baseURL)

	password := "e2e-secret-" + fmt.Sprint(time.Now().UnixNano())
	payload := map[string]any{
		"username": "e2e-secrets",
		"name":     "Secrets User",
		"password": password,
	}

	body := rawRequest(t, http.MethodPost, baseURL+"/api/users", "", payload)
	if strings.Contains(body, password) {
		t.Error("registration response echoed the password")
	}

	// Duplicate registration error must not leak the password either
	body = rawRequest(t, http.MethodPost, baseURL+"/api/users", "", payload)
	if strings.Contains(body, password) {
		t.Error("error response echoed the password")
	}

	loginPayload := map[string]any{"username": "e2e-secrets", "password": password}
	body = rawRequest(t, http.MethodPost, baseURL+"/api/login", "", loginPayload)
	if strings.Contains(body, password) {
		t.Error("login response echoed the password")
	}
}

type e2eUser struct {
	id       string
	username string
	password string
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func resetState(t *testing.T, baseURL string) {
	t.Helper()

	status := do(t, http.MethodPost, baseURL+"/api/testing/reset", "", nil, nil)
	if status != http.StatusNoContent {
		t.Fatalf("reset endpoint returned %d; is TESTING_ENDPOINTS_ENABLED set?", status)
	}
}

func registerUser(t *testing.T, baseURL, username, name string) e2eUser {
	t.Helper()

	password := fmt.Sprintf("pw-%s-%d", username, time.Now().UnixNano())
	payload := map[string]any{
		"username": username,
		"name":     name,
		"password": password,
	}

	var resp userResponse
	status := do(t, http.MethodPost, baseURL+"/api/users", "", payload, &resp)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from register, got %d", status)
	}
	if resp.ID == "" {
		t.Fatalf("register response missing id")
	}

	return e2eUser{id: resp.ID, username: username, password: password}
}

func login(t *testing.T, baseURL string, user e2eUser) string {
	t.Helper()

	payload := map[string]any{"username": user.username, "password": user.password}

	var resp loginResponse
	status := do(t, http.MethodPost, baseURL+"/api/login", "", payload, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from login, got %d", status)
	}
	if resp.Token == "" {
		t.Fatalf("login response missing token")
	}

	return resp.Token
}

func createBlog(t *testing.T, baseURL, token, title, url string) blogResponse {
	t.Helper()

	payload := map[string]any{"title": title, "url": url}

	var resp blogResponse
	status := do(t, http.MethodPost, baseURL+"/api/blogs", token, payload, &resp)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from blog create, got %d", status)
	}
	if resp.ID == "" {
		t.Fatalf("blog create response missing id")
	}

	return resp
}

func likeBlog(t *testing.T, baseURL, token, blogID string) {
	t.Helper()

	status := do(t, http.MethodPost, baseURL+"/api/blogs/"+blogID+"/like", token, nil, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from like, got %d", status)
	}
}

func listBlogs(t *testing.T, baseURL string) []blogResponse {
	t.Helper()

	var resp []blogResponse
	status := do(t, http.MethodGet, baseURL+"/api/blogs", "", nil, &resp)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from list, got %d", status)
	}

	return resp
}

// waitForStats polls the stats endpoint until the async like pipeline
// has aggregated at least one like.
func waitForStats(t *testing.T, baseURL, blogID string) {
	t.Helper()

	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		var resp statsResponse
		status := do(t, http.MethodGet, baseURL+"/api/blogs/"+blogID+"/stats", "", nil, &resp)
		if status == http.StatusOK && resp.Summary.TotalLikes >= 1 {
			if resp.Summary.UniqueLikers < 1 {
				t.Fatalf("stats reported likes but no unique likers")
			}
			return
		}
		time.Sleep(250 * time.Millisecond)
	}

	t.Fatalf("stats did not report likes in time")
}

func do(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}

func rawRequest(t *testing.T, method, url, token string, body any) string {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return string(raw)
}
