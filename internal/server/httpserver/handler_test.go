package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

type fakeAccounts struct {
	registerErr error
	registered  []services.RegisterRequest

	authRes *services.AuthResult
	authErr error
	authIn  []services.Credentials

	profile    *services.Profile
	profileErr error
	tokenSeen  string

	panicWith any
}

func (f *fakeAccounts) Register(_ context.Context, req services.RegisterRequest) error {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	f.registered = append(f.registered, req)
	return f.registerErr
}

func (f *fakeAccounts) Authenticate(_ context.Context, c services.Credentials) (*services.AuthResult, error) {
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	f.authIn = append(f.authIn, c)
	return f.authRes, f.authErr
}

func (f *fakeAccounts) Profile(_ context.Context, token string) (*services.Profile, error) {
	f.tokenSeen = token
	return f.profile, f.profileErr
}

func newTestServer(f *fakeAccounts) http.Handler {
	return NewHTTPServer("127.0.0.1:0", logging.NopLogger{}, f, nil).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func TestRegister_RoutesAndSuccess(t *testing.T) {
	for _, path := range []string{"/register", "/api/register", "/auth/register", "/api/auth/register"} {
		t.Run(path, func(t *testing.T) {
			f := &fakeAccounts{}
			rec := do(t, newTestServer(f), http.MethodPost, path,
				`{"username":"alice_01","password":"secret1","email":"a@b.com","phone":"9123456780"}`)

			assert.Equal(t, http.StatusCreated, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, map[string]any{"success": true, "message": "Registration successful"}, decode(t, rec))
			require.Len(t, f.registered, 1)
			assert.Equal(t, services.RegisterRequest{
				Username: "alice_01", Password: "secret1", Email: "a@b.com", Phone: "9123456780",
			}, f.registered[0])
			assert.NotContains(t, rec.Body.String(), "secret1")
		})
	}
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", common.NewValidationError("Invalid phone number format"), http.StatusBadRequest, "Invalid phone number format"},
		{"conflict", common.NewConflictError("Username already exists"), http.StatusBadRequest, "Username already exists"},
		{"internal", errors.New("db down: host=secret-host"), http.StatusInternalServerError, MsgRegistrationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(&fakeAccounts{registerErr: tt.err}), http.MethodPost, "/api/register", `{"username":"a"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, map[string]any{"error": tt.wantMsg}, decode(t, rec))
			assert.NotContains(t, rec.Body.String(), "secret-host")
		})
	}
}

func TestMalformedBody(t *testing.T) {
	for _, path := range []string{"/api/register", "/api/auth"} {
		f := &fakeAccounts{}
		rec := do(t, newTestServer(f), http.MethodPost, path, `{"username":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, map[string]any{"error": MsgInvalidBody}, decode(t, rec))
		assert.Empty(t, f.registered)
		assert.Empty(t, f.authIn)
	}
}

func TestTrailingDataAfterBody(t *testing.T) {
	for _, body := range []string{
		`{"username":"a","password":"b"}garbage`,
		`{"username":"a","password":"b"}{"username":"c"}`,
	} {
		for _, path := range []string{"/api/register", "/api/auth"} {
			f := &fakeAccounts{}
			rec := do(t, newTestServer(f), http.MethodPost, path, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Equal(t, map[string]any{"error": MsgInvalidBody}, decode(t, rec))
			assert.Empty(t, f.registered)
			assert.Empty(t, f.authIn)
		}
	}
}

func TestTrailingWhitespaceAccepted(t *testing.T) {
	f := &fakeAccounts{}
	rec := do(t, newTestServer(f), http.MethodPost, "/api/register", "{\"username\":\"a\",\"password\":\"b\"}\n  ")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, f.registered, 1)
}

func TestOversizedBody(t *testing.T) {
	f := &fakeAccounts{}
	body := `{"username":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(t, newTestServer(f), http.MethodPost, "/api/register", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.registered)
}

func TestAuth_WithToken(t *testing.T) {
	f := &fakeAccounts{authRes: &services.AuthResult{
		Token: "tok", Username: "alice_01", Email: "a@b.com", Phone: common.NotProvided,
	}}
	for _, path := range []string{"/auth", "/api/auth"} {
		rec := do(t, newTestServer(f), http.MethodPost, path, `{"username":"alice_01","password":"secret1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{
			"success": true, "token": "tok", "username": "alice_01", "email": "a@b.com", "phone": "Not provided",
		}, decode(t, rec))
	}
}

func TestAuth_WithoutToken(t *testing.T) {
	f := &fakeAccounts{authRes: &services.AuthResult{}}
	rec := do(t, newTestServer(f), http.MethodPost, "/api/auth", `{"username":"alice_01","password":"secret1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decode(t, rec))
}

func TestAuth_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{common.NewValidationError("Username and password are required"), http.StatusBadRequest, "Username and password are required"},
		{common.NewInvalidCredentialsError("Invalid username or password"), http.StatusUnauthorized, "Invalid username or password"},
		{errors.New("boom"), http.StatusInternalServerError, MsgAuthError},
	}

	for _, tt := range tests {
		rec := do(t, newTestServer(&fakeAccounts{authErr: tt.err}), http.MethodPost, "/api/auth", `{}`)
		assert.Equal(t, tt.wantStatus, rec.Code)
		assert.Equal(t, map[string]any{"error": tt.wantMsg}, decode(t, rec))
	}
}

func TestProfile(t *testing.T) {
	f := &fakeAccounts{profile: &services.Profile{Username: "alice_01", Email: "a@b.com", Phone: "Not provided"}}
	h := newTestServer(f)

	rec := do(t, h, http.MethodGet, "/api/profile", "", "Authorization", "Bearer tok-123")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-123", f.tokenSeen)
	assert.Equal(t, map[string]any{"username": "alice_01", "email": "a@b.com", "phone": "Not provided"}, decode(t, rec))

	rec = do(t, h, http.MethodGet, "/api/profile", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, map[string]any{"error": MsgMissingToken}, decode(t, rec))

	rec = do(t, h, http.MethodGet, "/api/profile", "", "Authorization", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f.profileErr = common.NewInvalidCredentialsError("Invalid or expired token")
	rec = do(t, h, http.MethodGet, "/api/profile", "", "Authorization", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, map[string]any{"error": "Invalid or expired token"}, decode(t, rec))
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(&fakeAccounts{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, decode(t, rec))
}

func TestIndexServed(t *testing.T) {
	rec := do(t, newTestServer(&fakeAccounts{}), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestWrongMethod(t *testing.T) {
	rec := do(t, newTestServer(&fakeAccounts{}), http.MethodGet, "/api/register", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
