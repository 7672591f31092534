package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hvergara/auth-service/internal/auth"
	"github.com/hvergara/auth-service/internal/service"
	"github.com/hvergara/auth-service/internal/storage/memory"
)

func newTestServer(t *testing.T, ttl time.Duration) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	tokens := auth.NewTokenManager("test-secret", ttl)
	svc := service.NewAuthService(store, tokens)

	mux := http.NewServeMux()
	NewRootHandler().Register(mux)
	NewHealthHandler(store).Register(mux)
	NewAuthHandler(svc).Register(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// TestAuthFlow walks the full register/login/verify scenario against an
// in-memory instance.
func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	// Register.
	status, body := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"name":     "Ana",
		"email":    "ana@x.com",
		"password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", status, body)
	}
	var registered struct {
		Message string `json:"message"`
		User    struct {
			ID        int64  `json:"id"`
			Name      string `json:"name"`
			Email     string `json:"email"`
			CreatedAt string `json:"createdAt"`
		} `json:"user"`
	}
	mustDecode(t, body, &registered)
	if registered.User.ID != 1 {
		t.Fatalf("first user id = %d, want 1", registered.User.ID)
	}
	if registered.User.CreatedAt == "" {
		t.Fatal("register response missing createdAt")
	}
	if strings.Contains(string(body), "password") {
		t.Fatalf("register response leaks password material: %s", body)
	}

	// Duplicate email, different password.
	status, _ = postJSON(t, ts.URL+"/auth/register", map[string]string{
		"name":     "Ana Again",
		"email":    "ana@x.com",
		"password": "other-pass",
	})
	if status != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", status)
	}

	// Wrong password.
	status, wrongBody := postJSON(t, ts.URL+"/auth/login", map[string]string{
		"email":    "ana@x.com",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong-password login status = %d, want 401", status)
	}

	// Unknown email must produce the identical error payload.
	status, unknownBody := postJSON(t, ts.URL+"/auth/login", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("unknown-email login status = %d, want 401", status)
	}
	if !bytes.Equal(wrongBody, unknownBody) {
		t.Fatalf("credential errors differ: %s vs %s", wrongBody, unknownBody)
	}

	// Successful login.
	status, body = postJSON(t, ts.URL+"/auth/login", map[string]string{
		"email":    "ana@x.com",
		"password": "secret1",
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d, body %s", status, body)
	}
	var loggedIn struct {
		Token string `json:"token"`
		User  struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	mustDecode(t, body, &loggedIn)
	if strings.TrimSpace(loggedIn.Token) == "" {
		t.Fatal("login response missing token")
	}
	if strings.Contains(string(body), "createdAt") {
		t.Fatalf("login response should not carry createdAt: %s", body)
	}

	// Verify the issued token.
	status, body = getVerify(t, ts.URL, "Bearer "+loggedIn.Token)
	if status != http.StatusOK {
		t.Fatalf("verify status = %d, body %s", status, body)
	}
	var verified struct {
		Valid bool `json:"valid"`
		User  struct {
			UserID int64  `json:"userId"`
			Email  string `json:"email"`
		} `json:"user"`
	}
	mustDecode(t, body, &verified)
	if !verified.Valid || verified.User.UserID != 1 || verified.User.Email != "ana@x.com" {
		t.Fatalf("verify mismatch: %s", body)
	}
}

func TestVerify_MissingAndBadTokens(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	status, body := getVerify(t, ts.URL, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("missing-token status = %d, want 401", status)
	}
	var res struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	mustDecode(t, body, &res)
	if res.Valid || res.Error == "" {
		t.Fatalf("missing-token body = %s", body)
	}

	status, body = getVerify(t, ts.URL, "Bearer not.a.jwt")
	if status != http.StatusUnauthorized {
		t.Fatalf("bad-token status = %d, want 401", status)
	}
	mustDecode(t, body, &res)
	if res.Valid {
		t.Fatalf("bad token reported valid: %s", body)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	ts := newTestServer(t, -1*time.Second)

	status, _ := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"name": "Ana", "email": "ana@x.com", "password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d", status)
	}
	status, body := postJSON(t, ts.URL+"/auth/login", map[string]string{
		"email": "ana@x.com", "password": "secret1",
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d", status)
	}
	var loggedIn struct {
		Token string `json:"token"`
	}
	mustDecode(t, body, &loggedIn)

	status, body = getVerify(t, ts.URL, "Bearer "+loggedIn.Token)
	if status != http.StatusUnauthorized {
		t.Fatalf("expired verify status = %d, want 401", status)
	}
	var res struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	mustDecode(t, body, &res)
	if res.Error != "token expired" {
		t.Fatalf("expired token error = %q, want %q", res.Error, "token expired")
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	status, _ := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"name": "A", "email": "a@x.com", "password": "secret1",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("short-name status = %d, want 400", status)
	}

	resp, err := http.Post(ts.URL+"/auth/register", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("malformed request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed-body status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthAndRoot(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	status, _ := postJSON(t, ts.URL+"/auth/register", map[string]string{
		"name": "Ana", "email": "ana@x.com", "password": "secret1",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d", status)
	}

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	var health struct {
		Status    string `json:"status"`
		Service   string `json:"service"`
		Timestamp string `json:"timestamp"`
		Users     int    `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if health.Status != "ok" || health.Service != ServiceName || health.Users != 1 {
		t.Fatalf("health mismatch: %+v", health)
	}
	if _, err := time.Parse(time.RFC3339, health.Timestamp); err != nil {
		t.Fatalf("health timestamp not RFC3339: %q", health.Timestamp)
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("root request failed: %v", err)
	}
	defer resp.Body.Close()
	var root struct {
		Message   string   `json:"message"`
		Version   string   `json:"version"`
		Endpoints []string `json:"endpoints"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&root); err != nil {
		t.Fatalf("decode root response: %v", err)
	}
	if root.Version != Version || len(root.Endpoints) != 4 {
		t.Fatalf("root mismatch: %+v", root)
	}
}

func TestMethodGuards(t *testing.T) {
	ts := newTestServer(t, time.Hour)

	resp, err := http.Get(ts.URL + "/auth/register")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET /auth/register status = %d, want 405", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/auth/verify", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("POST /auth/verify status = %d, want 405", resp.StatusCode)
	}
}

func postJSON(t *testing.T, url string, payload map[string]string) (int, []byte) {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func getVerify(t *testing.T, baseURL, authorization string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/auth/verify", baseURL), nil)
	if err != nil {
		t.Fatalf("build verify request: %v", err)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("verify request failed: %v", err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp.StatusCode, buf.Bytes()
}

func mustDecode(t *testing.T, body []byte, out any) {
	t.Helper()
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}
