package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubreg/internal/chatbot"
	"clubreg/internal/config"
	"clubreg/internal/queue"
	"clubreg/internal/registry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	store  *registry.MemStore
	queue  *queue.InMemory
}

func newTestEnv(adminEmails ...string) *testEnv {
	cfg := config.App{
		JWTIssuer:     "clubreg-test",
		JWTSigningKey: "test-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		ResetTTL:      time.Hour,
		AdminEmails:   adminEmails,
	}
	store := registry.NewMemStore()
	svc := registry.NewService(store, adminEmails)
	q := queue.NewInMemory(16)

	r := gin.New()
	New(cfg, svc, chatbot.New(nil), q).Routes(r)
	return &testEnv{router: r, store: store, queue: q}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerBody() map[string]any {
	return map[string]any{
		"fullName":        "Asha Verma",
		"email":           "asha@example.com",
		"studentId":       "1MJ21CS042",
		"department":      "CSE",
		"yearOfStudy":     "2",
		"contactNumber":   "9876543210",
		"password":        "hunter22",
		"confirmPassword": "hunter22",
		"agreeToTerms":    true,
	}
}

func (e *testEnv) registerAndLogin(t *testing.T, body map[string]any) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	out := decode(t, rec)
	token, _ := out["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthCheckAnyMethod(t *testing.T) {
	env := newTestEnv()
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		rec := env.do(t, method, "/api/healthCheck", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		out := decode(t, rec)
		assert.Equal(t, "healthy", out["status"])
		assert.Equal(t, "clubreg-portal", out["service"])
		assert.NotEmpty(t, out["timestamp"])
	}
}

func TestContactEmailValidation(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/sendContactEmail", "", map[string]any{
		"name": "Asha", "email": "asha@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", decode(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/sendContactEmail", "", map[string]any{
		"name": "Asha", "email": "not-an-email", "message": "hello there",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", decode(t, rec)["error"])
}

func TestContactEmailStoresAndQueues(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/sendContactEmail", "", map[string]any{
		"name": "Asha", "email": "asha@example.com", "message": "hello there",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Thank you for your message! We have received your inquiry and will get back to you soon.", out["message"])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inquiries, err := env.store.ListInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "new", inquiries[0].Status)

	messages, err := env.queue.Consume(ctx)
	require.NoError(t, err)
	select {
	case msg := <-messages:
		assert.Equal(t, queue.TypeContactEmail, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("expected a queued contact email")
	}
}

func TestChatbotEndpoint(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/sdcChatbot", "", map[string]any{"message": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Message is required", decode(t, rec)["error"])

	rec = env.do(t, http.MethodPost, "/api/sdcChatbot", "", map[string]any{"message": "how do I register?"})
	require.Equal(t, http.StatusOK, rec.Code)
	response, _ := decode(t, rec)["response"].(string)
	assert.Contains(t, response, "Create account with student details")
}

func TestRegisterLoginAndProfile(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/v1/auth/register", "", map[string]any{"email": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token := env.registerAndLogin(t, registerBody())

	rec = env.do(t, http.MethodGet, "/v1/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "not_submitted", out["status"])
	user, _ := out["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "asha@example.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "hunter22")

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email": "asha@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email": "asha@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTrackSelectionAndSubmissionFlow(t *testing.T) {
	env := newTestEnv()
	token := env.registerAndLogin(t, registerBody())

	// Task endpoint before track selection returns the empty state.
	rec := env.do(t, http.MethodGet, "/v1/task", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode(t, rec)["task"])

	rec = env.do(t, http.MethodPut, "/v1/track", token, map[string]any{"track": "web"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/v1/task", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	task, _ := decode(t, rec)["task"].(map[string]any)
	require.NotNil(t, task)
	assert.Equal(t, "Web Development Task", task["title"])

	rec = env.do(t, http.MethodPost, "/v1/task/complete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/submission", token, map[string]any{
		"githubLink":         "https://github.com/asha/sdc-portal",
		"projectDescription": "A recruitment portal project",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Track is locked now.
	rec = env.do(t, http.MethodPut, "/v1/track", token, map[string]any{"track": "ml"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A second submission is refused.
	rec = env.do(t, http.MethodPost, "/v1/submission", token, map[string]any{
		"githubLink":         "https://github.com/asha/other",
		"projectDescription": "Another project attempt",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/timeline", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "under_review", out["status"])
	timeline, _ := out["timeline"].([]any)
	require.Len(t, timeline, 6)
}

func TestAdminAccessControl(t *testing.T) {
	env := newTestEnv("admin@example.com")

	memberToken := env.registerAndLogin(t, registerBody())

	adminBody := registerBody()
	adminBody["email"] = "admin@example.com"
	adminBody["studentId"] = "1MJ21CS001"
	adminToken := env.registerAndLogin(t, adminBody)

	rec := env.do(t, http.MethodGet, "/v1/admin/users", memberToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access Denied", decode(t, rec)["error"])

	rec = env.do(t, http.MethodGet, "/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, float64(2), out["total"])
}

func TestAdminReviewGradeFlow(t *testing.T) {
	env := newTestEnv("admin@example.com")

	memberToken := env.registerAndLogin(t, registerBody())
	adminBody := registerBody()
	adminBody["email"] = "admin@example.com"
	adminBody["studentId"] = "1MJ21CS001"
	adminToken := env.registerAndLogin(t, adminBody)

	rec := env.do(t, http.MethodPut, "/v1/track", memberToken, map[string]any{"track": "web"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/v1/submission", memberToken, map[string]any{
		"githubLink":         "https://github.com/asha/sdc-portal",
		"projectDescription": "A recruitment portal project",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/admin/submissions", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	subs, _ := out["submissions"].([]any)
	require.Len(t, subs, 1)
	first, _ := subs[0].(map[string]any)
	memberID, _ := first["id"].(string)
	require.NotEmpty(t, memberID)

	// Grading before review is refused.
	rec = env.do(t, http.MethodPut, "/v1/admin/submissions/"+memberID+"/grade", adminToken, map[string]any{"graded": true})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPut, "/v1/admin/submissions/"+memberID+"/review", adminToken, map[string]any{"reviewed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reviewed", decode(t, rec)["status"])

	rec = env.do(t, http.MethodPut, "/v1/admin/submissions/"+memberID+"/grade", adminToken, map[string]any{"graded": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "graded", decode(t, rec)["status"])

	// Withdrawing review clears the grade too.
	rec = env.do(t, http.MethodPut, "/v1/admin/submissions/"+memberID+"/review", adminToken, map[string]any{"reviewed": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "under_review", decode(t, rec)["status"])
}

func TestListTracksPublic(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodGet, "/v1/tracks", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	tracks, _ := out["tracks"].([]any)
	require.Len(t, tracks, 4)
}

func TestForgotPasswordIgnoresEmailCasing(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, registerBody())

	rec := env.do(t, http.MethodPost, "/v1/auth/forgot", "", map[string]any{"email": " Asha@Example.com "})
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	messages, err := env.queue.Consume(ctx)
	require.NoError(t, err)
	select {
	case msg := <-messages:
		assert.Equal(t, queue.TypePasswordReset, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("expected a queued password reset for a case-differing email")
	}
}

func TestForgotPasswordNeverRevealsAccounts(t *testing.T) {
	env := newTestEnv()
	env.registerAndLogin(t, registerBody())

	known := env.do(t, http.MethodPost, "/v1/auth/forgot", "", map[string]any{"email": "asha@example.com"})
	unknown := env.do(t, http.MethodPost, "/v1/auth/forgot", "", map[string]any{"email": "ghost@example.com"})
	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}
