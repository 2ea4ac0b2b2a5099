package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestLoginAdminSuccess(t *testing.T) {
	env := newTestEnv()
	env.seedAdmin(t)

	rr := env.do(http.MethodPost, "/api/auth/login", "",
		[]byte(`{"email":"chair@example.edu","password":"chair-secret","type":"admin"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		Admin   *struct {
			Email string `json:"email"`
		} `json:"admin"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected success with token, got %s", rr.Body.String())
	}
	if resp.Admin == nil || resp.Admin.Email != "chair@example.edu" {
		t.Fatalf("expected admin profile in response, got %s", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "passwordHash") {
		t.Fatalf("login response leaks password hash: %s", rr.Body.String())
	}
}

func TestLoginVoterSuccess(t *testing.T) {
	env := newTestEnv()
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")

	rr := env.do(http.MethodPost, "/api/auth/login", "",
		[]byte(`{"email":"asha@example.edu","password":"pw-21ADS001","type":"voter"}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "pw-21ADS001") {
		t.Fatalf("login response leaks credential: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "21ADS001") {
		t.Fatalf("expected voter profile in response, got %s", rr.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv()
	env.seedAdmin(t)

	rr := env.do(http.MethodPost, "/api/auth/login", "",
		[]byte(`{"email":"chair@example.edu","password":"wrong","type":"admin"}`))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	env := newTestEnv()

	rr := env.do(http.MethodPost, "/api/auth/login", "",
		[]byte(`{"email":"nobody@example.edu","password":"whatever","type":"voter"}`))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	env := newTestEnv()

	rr := env.do(http.MethodPost, "/api/auth/login", "", []byte(`{`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVoterProfileRequiresVoterToken(t *testing.T) {
	env := newTestEnv()
	adminToken := env.adminToken(t)

	rr := env.do(http.MethodGet, "/api/voter/profile", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rr.Code)
	}

	rr = env.do(http.MethodGet, "/api/voter/profile", adminToken, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("admin token on voter route: expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestVoterProfileSuccess(t *testing.T) {
	env := newTestEnv()
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")
	token := env.login(t, "asha@example.edu", "pw-21ADS001", "voter")

	rr := env.do(http.MethodGet, "/api/voter/profile", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "21ADS001") {
		t.Fatalf("expected profile body, got %s", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "pw-21ADS001") {
		t.Fatalf("profile leaks credential: %s", rr.Body.String())
	}
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	env := newTestEnv()
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")
	voterToken := env.login(t, "asha@example.edu", "pw-21ADS001", "voter")

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/admin/voters"},
		{http.MethodPost, "/api/admin/voters"},
		{http.MethodGet, "/api/admin/polls"},
		{http.MethodPost, "/api/admin/polls"},
		{http.MethodGet, "/api/admin/polls/some-poll/results"},
		{http.MethodGet, "/api/admin/analytics"},
		{http.MethodGet, "/api/admin/analytics/voting-trends"},
		{http.MethodGet, "/api/admin/analytics/most-active-polls"},
		{http.MethodGet, "/api/admin/export?type=voters"},
	}
	for _, route := range routes {
		rr := env.do(route.method, route.target, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", route.method, route.target, rr.Code)
		}
		rr = env.do(route.method, route.target, voterToken, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s with voter token: expected 401, got %d", route.method, route.target, rr.Code)
		}
	}
}
