package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/careershub/careers_api/internal/config"
	"github.com/careershub/careers_api/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := config.Config{
		AppName:   "careers-api-test",
		AppEnv:    "dev",
		JWTSecret: "routes-test-secret",
		TokenTTL:  time.Hour,
		OTPTTL:    15 * time.Minute,
	}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	var parsed map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func TestPingAndHealth(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/ping", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ping status %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Fatalf("ping body: %v", body)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/healthz", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", resp.StatusCode)
	}
}

func TestSetupRequiresBackendsOutsideDev(t *testing.T) {
	app := fiber.New()
	cfg := config.Config{AppEnv: "production", JWTSecret: "s", TokenTTL: time.Hour}
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err == nil {
		t.Fatal("expected setup to fail without a database in production")
	}
}

func TestUserRegisterLoginAndProtectedUpdate(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "s3cret-pass",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d: %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the register response")
	}
	u, _ := body["user"].(map[string]any)
	userID, _ := u["id"].(string)
	if userID == "" {
		t.Fatal("expected a user id in the register response")
	}

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/users/login", "", map[string]any{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d: %v", resp.StatusCode, body)
	}

	// Updates require a bearer token.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/users/"+userID, "", map[string]any{"city": "London"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated update status %d", resp.StatusCode)
	}

	resp, body = doJSON(t, app, http.MethodPut, "/api/v1/users/"+userID, token, map[string]any{"city": "London"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status %d: %v", resp.StatusCode, body)
	}
	if body["city"] != "London" {
		t.Fatalf("expected updated city, got %v", body["city"])
	}
}

func TestJobLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/companies/signup", "", map[string]any{
		"companyName":     "Acme",
		"companyIndustry": "Software",
		"companyEmail":    "jobs@acme.example",
		"companyPassword": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status %d: %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/companies/login", "", map[string]any{
		"companyEmail":    "jobs@acme.example",
		"companyPassword": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d: %v", resp.StatusCode, body)
	}
	token, _ := body["token"].(string)
	co, _ := body["company"].(map[string]any)
	companyID, _ := co["id"].(string)
	if token == "" || companyID == "" {
		t.Fatalf("unexpected login response: %v", body)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/jobs/", "", map[string]any{
		"companyId": companyID,
		"title":     "Backend Engineer",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated post status %d", resp.StatusCode)
	}

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/jobs/", token, map[string]any{
		"companyId": companyID,
		"title":     "Backend Engineer",
		"state":     "Lagos",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("post job status %d: %v", resp.StatusCode, body)
	}
	jobID, _ := body["id"].(string)
	if jobID == "" {
		t.Fatal("expected a job id")
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+jobID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get job status %d", resp.StatusCode)
	}
	if body["title"] != "Backend Engineer" {
		t.Fatalf("unexpected job: %v", body)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/jobs/"+jobID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete job status %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+jobID, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestApplyAndDecideOverHTTP(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/users/register", "", map[string]any{
		"firstName": "Ada",
		"email":     "ada@apply.example",
		"password":  "s3cret-pass",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d: %v", resp.StatusCode, body)
	}
	userToken, _ := body["token"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/companies/signup", "", map[string]any{
		"companyName":     "Acme",
		"companyIndustry": "Software",
		"companyEmail":    "jobs@apply.example",
		"companyPassword": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status %d: %v", resp.StatusCode, body)
	}
	co, _ := body["company"].(map[string]any)
	companyID, _ := co["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/companies/login", "", map[string]any{
		"companyEmail":    "jobs@apply.example",
		"companyPassword": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("company login status %d", resp.StatusCode)
	}
	companyToken, _ := body["token"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/jobs/", companyToken, map[string]any{
		"companyId": companyID,
		"title":     "Backend Engineer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("post job status %d: %v", resp.StatusCode, body)
	}
	jobID, _ := body["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/applications/", userToken, map[string]any{
		"jobId": jobID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("apply status %d: %v", resp.StatusCode, body)
	}
	applicationID, _ := body["id"].(string)
	if body["status"] != "pending" {
		t.Fatalf("expected pending application, got %v", body["status"])
	}

	// Second application to the same job conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/applications/", userToken, map[string]any{
		"jobId": jobID,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate apply status %d", resp.StatusCode)
	}

	resp, body = doJSON(t, app, http.MethodPatch, "/api/v1/applications/"+applicationID+"/status", companyToken, map[string]any{
		"status": "accepted",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decide status %d: %v", resp.StatusCode, body)
	}
	if body["status"] != "accepted" {
		t.Fatalf("expected accepted, got %v", body["status"])
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/jobs/"+jobID, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get job status %d", resp.StatusCode)
	}
	if body["jobSeekersCount"] != float64(1) {
		t.Fatalf("expected seeker count 1, got %v", body["jobSeekersCount"])
	}
}
