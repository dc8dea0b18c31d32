package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sinergy/chronosync/internal/apperrors"
	"github.com/sinergy/chronosync/internal/client"
	"github.com/sinergy/chronosync/internal/config"
	"github.com/sinergy/chronosync/internal/logger"
	"github.com/sinergy/chronosync/internal/schemas"
	"github.com/sinergy/chronosync/internal/services"
	"github.com/sinergy/chronosync/internal/session"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   string
}

// testBackend is a fake chronosync API
type testBackend struct {
	router   chi.Router
	requests []recorded
}

func newTestBackend() *testBackend {
	return &testBackend{router: chi.NewRouter()}
}

func (b *testBackend) reply(method, pattern string, status int, body string) {
	b.router.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		b.requests = append(b.requests, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   string(raw),
		})
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
}

func (b *testBackend) start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(b.router)
	t.Cleanup(srv.Close)
	return srv.URL
}

// newTestApp returns an app wired to the backend with an in-memory session
func newTestApp(t *testing.T, backend *testBackend) (*App, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemoryStore()
	manager := session.NewManager(store)

	registry, err := schemas.Default()
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{APIBaseURL: backend.start(t)}
	app := &App{
		Config:   cfg,
		Logger:   logger.Discard(),
		Session:  manager,
		Services: services.New(client.NewClient(cfg, manager, client.WithValidator(registry))),
		Prompt: func(io.Reader, io.Writer, Credentials) (Credentials, error) {
			t.Fatal("unexpected prompt")
			return Credentials{}, nil
		},
	}
	return app, store
}

func execute(app *App, args ...string) (string, error) {
	cmd := NewRootCommand(app)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestLoginStoresToken(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/auth/login", http.StatusOK, `{"jwtString":"xyz"}`)
	app, store := newTestApp(t, backend)

	out, err := execute(app, "login", "--username", "a", "--password", "b")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}

	token, ok, _ := store.Get(session.TokenKey)
	if !ok || token != "xyz" {
		t.Errorf("stored token = %q (present %v), want xyz", token, ok)
	}
	if backend.requests[0].body != `{"username":"a","password":"b"}` {
		t.Errorf("login body = %s", backend.requests[0].body)
	}
	if !strings.Contains(out, "Logged in as a") {
		t.Errorf("output = %q", out)
	}
}

func TestLoginPromptsForMissingCredentials(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/auth/login", http.StatusOK, `{"jwtString":"xyz"}`)
	app, store := newTestApp(t, backend)

	var asked Credentials
	app.Prompt = func(_ io.Reader, _ io.Writer, creds Credentials) (Credentials, error) {
		asked = creds
		creds.Password = "prompted"
		return creds, nil
	}

	if _, err := execute(app, "login", "-u", "ana"); err != nil {
		t.Fatalf("login error = %v", err)
	}
	if asked.Username != "ana" || asked.Password != "" {
		t.Errorf("prompt received %+v", asked)
	}
	if !strings.Contains(backend.requests[0].body, `"password":"prompted"`) {
		t.Errorf("login body = %s", backend.requests[0].body)
	}
	if token, _, _ := store.Get(session.TokenKey); token != "xyz" {
		t.Errorf("stored token = %q", token)
	}
}

func TestLoginCancelledPrompt(t *testing.T) {
	backend := newTestBackend()
	app, store := newTestApp(t, backend)
	app.Prompt = func(io.Reader, io.Writer, Credentials) (Credentials, error) {
		return Credentials{}, errPromptCancelled
	}

	_, err := execute(app, "login")
	if !errors.Is(err, errPromptCancelled) {
		t.Fatalf("error = %v, want errPromptCancelled", err)
	}
	if len(backend.requests) != 0 {
		t.Error("no request should be sent after a cancelled prompt")
	}
	if _, ok, _ := store.Get(session.TokenKey); ok {
		t.Error("no token should be stored")
	}
}

func TestLoginFailureKeepsExistingSession(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/auth/login", http.StatusUnauthorized, "Bad credentials")
	app, store := newTestApp(t, backend)
	store.Set(session.TokenKey, "old")

	_, err := execute(app, "login", "-u", "a", "-p", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}
	if token, _, _ := store.Get(session.TokenKey); token != "old" {
		t.Errorf("stored token = %q, want old", token)
	}
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "server accepts", status: http.StatusOK},
		{name: "server fails", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend()
			backend.reply(http.MethodGet, "/auth/logout", tt.status, "")
			app, store := newTestApp(t, backend)
			store.Set(session.TokenKey, "xyz")

			_, err := execute(app, "logout")
			if (err != nil) != tt.wantErr {
				t.Fatalf("logout error = %v, wantErr %v", err, tt.wantErr)
			}

			if backend.requests[0].auth != "Bearer xyz" {
				t.Errorf("logout Authorization = %q", backend.requests[0].auth)
			}
			if _, ok, _ := store.Get(session.TokenKey); ok {
				t.Error("token key should be removed")
			}
		})
	}
}

func TestRegister(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/auth/register", http.StatusOK, `{"id":4,"username":"mmarkovic"}`)
	app, _ := newTestApp(t, backend)

	out, err := execute(app, "register", "--first-name", "Marko", "--last-name", "Marković", "--password", "pw", "--role", "manager")
	if err != nil {
		t.Fatalf("register error = %v", err)
	}
	if !strings.Contains(out, "mmarkovic") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(backend.requests[0].body, `"role":"MANAGER"`) {
		t.Errorf("body = %s", backend.requests[0].body)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	backend := newTestBackend()
	app, _ := newTestApp(t, backend)

	_, err := execute(app, "register", "--first-name", "A", "--last-name", "B", "--password", "pw", "--role", "owner")
	if apperrors.CodeOf(err) != apperrors.ErrCodeValidation {
		t.Fatalf("error = %v, want a validation error", err)
	}
	if len(backend.requests) != 0 {
		t.Error("no request should be sent")
	}
}

func TestSessionStatus(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		wantStatus  string
		wantSubject string
	}{
		{name: "no session", wantStatus: "TokenMissing"},
		{name: "garbage token", token: "not-a-jwt", wantStatus: "TokenInvalid"},
		{name: "expired", token: signedToken(t, "ana", time.Now().Add(-time.Hour)), wantStatus: "TokenExpired", wantSubject: "ana"},
		{name: "valid", token: signedToken(t, "ana", time.Now().Add(time.Hour)), wantStatus: "TokenValid", wantSubject: "ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store := newTestApp(t, newTestBackend())
			if tt.token != "" {
				store.Set(session.TokenKey, tt.token)
			}

			out, err := execute(app, "--json", "session", "status")
			if err != nil {
				t.Fatalf("session status error = %v", err)
			}

			var got map[string]string
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not JSON: %v (%q)", err, out)
			}
			if got["status"] != tt.wantStatus || got["subject"] != tt.wantSubject {
				t.Errorf("status = %v, want %s %s", got, tt.wantStatus, tt.wantSubject)
			}
		})
	}
}

const appointmentTypes = `[{"id":1,"name":"Haircut","durationMinutes":30,"price":25,"colorCode":"#ff0000","currency":"EUR"},{"id":2,"name":"Beard trim","durationMinutes":15,"price":900,"colorCode":null,"currency":"RSD"}]`

func TestAppointmentTypeList(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodGet, "/appointment-type", http.StatusOK, appointmentTypes)
	app, store := newTestApp(t, backend)
	store.Set(session.TokenKey, "xyz")

	out, err := execute(app, "appointment-type", "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	for _, want := range []string{"Haircut", "Beard trim", "30 min", "900.00 RSD"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(app, "--json", "at", "list")
	if err != nil {
		t.Fatalf("list --json error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil || len(decoded) != 2 {
		t.Errorf("json output = %q (%v)", out, err)
	}
}

func TestAppointmentTypeCreate(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/appointment-type/create", http.StatusOK,
		`{"id":7,"name":"Massage","durationMinutes":60,"price":40,"colorCode":"#00ff00","currency":"USD"}`)
	app, _ := newTestApp(t, backend)

	out, err := execute(app, "appointment-type", "create", "--name", "Massage", "--duration", "60", "--price", "40", "--currency", "usd", "--color", "#00ff00")
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	if !strings.Contains(out, "Created appointment type Massage (id 7)") {
		t.Errorf("output = %q", out)
	}

	var sent map[string]any
	json.Unmarshal([]byte(backend.requests[0].body), &sent)
	if sent["currency"] != "USD" || sent["durationMinutes"] != float64(60) {
		t.Errorf("sent %v", sent)
	}
	if _, ok := sent["id"]; ok {
		t.Errorf("create should not send an id: %v", sent)
	}
}

func TestAppointmentTypeCreateRejectsCurrency(t *testing.T) {
	backend := newTestBackend()
	app, _ := newTestApp(t, backend)

	_, err := execute(app, "appointment-type", "create", "--name", "Massage", "--currency", "euro")
	var ve *apperrors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "currency" {
		t.Fatalf("error = %v, want currency ValidationError", err)
	}
}

func TestAppointmentTypeUpdate(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPut, "/appointment-type", http.StatusOK,
		`{"id":7,"name":"Massage","durationMinutes":45,"price":40,"currency":"EUR","firm":{"id":2,"name":"Sinergy"}}`)
	app, _ := newTestApp(t, backend)

	if _, err := execute(app, "appointment-type", "update", "--id", "7", "--name", "Massage", "--duration", "45", "--firm-id", "2"); err != nil {
		t.Fatalf("update error = %v", err)
	}
	body := backend.requests[0].body
	if !strings.Contains(body, `"id":7`) || !strings.Contains(body, `"firm":{"id":2`) {
		t.Errorf("update body = %s", body)
	}
}

func TestAppointmentTypeDelete(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		status   int
		wantPath string
		wantCode apperrors.ErrorCode
	}{
		{name: "deleted", arg: "42", status: http.StatusOK, wantPath: "/appointment-type/42"},
		{name: "server refuses", arg: "42", status: http.StatusForbidden, wantPath: "/appointment-type/42", wantCode: apperrors.ErrCodeHTTP},
		{name: "bad id", arg: "forty-two", wantCode: apperrors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend()
			backend.reply(http.MethodDelete, "/appointment-type/{id}", tt.status, "")
			app, _ := newTestApp(t, backend)

			_, err := execute(app, "appointment-type", "delete", tt.arg)
			if apperrors.CodeOf(err) != tt.wantCode {
				t.Fatalf("error = %v, want code %q", err, tt.wantCode)
			}
			if tt.wantPath == "" {
				if len(backend.requests) != 0 {
					t.Error("no request should be sent")
				}
				return
			}
			if backend.requests[0].path != tt.wantPath {
				t.Errorf("path = %s, want %s", backend.requests[0].path, tt.wantPath)
			}
		})
	}
}

func TestUserCreate(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/user/create", http.StatusOK, `{"id":12,"username":"jjovanovic","role":"EMPLOYEE"}`)
	app, _ := newTestApp(t, backend)

	out, err := execute(app, "user", "create", "--first-name", "Jovan", "--last-name", "Jovanović", "--password", "pw", "--email", "j@example.com")
	if err != nil {
		t.Fatalf("user create error = %v", err)
	}
	if !strings.Contains(out, "Created user jjovanovic (id 12, EMPLOYEE)") {
		t.Errorf("output = %q", out)
	}
}

func TestClientCommands(t *testing.T) {
	const page = `{"content":[{"id":3,"firstName":"Ana","lastName":"Anić","email":"ana@example.com","phone":"061"}],"totalElements":21,"totalPages":3,"number":1,"size":10}`
	const ana = `{"id":3,"firstName":"Ana","lastName":"Anić","email":"ana@example.com","phone":"061"}`

	backend := newTestBackend()
	backend.reply(http.MethodPost, "/client/get", http.StatusOK, page)
	backend.reply(http.MethodPost, "/client/create", http.StatusOK, ana)
	backend.reply(http.MethodPut, "/client", http.StatusOK, ana)
	backend.reply(http.MethodDelete, "/client", http.StatusOK, "")
	app, _ := newTestApp(t, backend)

	out, err := execute(app, "client", "list", "--page", "1")
	if err != nil {
		t.Fatalf("client list error = %v", err)
	}
	if backend.requests[0].body != `{"page":1,"pageSize":10}` {
		t.Errorf("list body = %s", backend.requests[0].body)
	}
	for _, want := range []string{"Ana", "ana@example.com", "page 2 of 3, 21 clients"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	if _, err := execute(app, "client", "create", "--first-name", "Ana", "--last-name", "Anić"); err != nil {
		t.Fatalf("client create error = %v", err)
	}
	if _, err := execute(app, "client", "update", "--id", "3", "--first-name", "Ana", "--last-name", "Anić", "--phone", "061"); err != nil {
		t.Fatalf("client update error = %v", err)
	}
	if !strings.Contains(backend.requests[2].body, `"id":3`) {
		t.Errorf("update body = %s", backend.requests[2].body)
	}

	if _, err := execute(app, "client", "delete", "3"); err != nil {
		t.Fatalf("client delete error = %v", err)
	}
	last := backend.requests[3]
	if last.method != http.MethodDelete || last.query != "id=3" {
		t.Errorf("delete sent %s %s?%s", last.method, last.path, last.query)
	}
}

func TestReportError(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/auth/login", http.StatusUnauthorized, "Bad credentials")
	app, _ := newTestApp(t, backend)

	_, err := execute(app, "login", "-u", "a", "-p", "b")
	if err == nil {
		t.Fatal("expected an error")
	}

	var out bytes.Buffer
	app.ReportError(&out, err)
	if !strings.Contains(out.String(), "Login failed.") {
		t.Errorf("reported %q, want the login failure message", out.String())
	}
	if strings.Contains(out.String(), "Bad credentials") {
		t.Errorf("reported %q, the server body belongs in the log", out.String())
	}
}

func TestSetupFromEnvironment(t *testing.T) {
	backend := newTestBackend()
	backend.reply(http.MethodPost, "/api/auth/login", http.StatusOK, `{"jwtString":"xyz"}`)
	url := backend.start(t)

	sessionFile := filepath.Join(t.TempDir(), "chronosync", "session.json")
	t.Setenv("API_BASE_URL", url+"/api/")
	t.Setenv("SESSION_FILE", sessionFile)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("LOG_LEVEL", "error")

	app := NewApp()
	out, err := execute(app, "--env-file", "", "login", "-u", "a", "-p", "b")
	if err != nil {
		t.Fatalf("login error = %v (%s)", err, out)
	}
	if app.Config == nil || app.Config.APIBaseURL != url+"/api" {
		t.Fatalf("config not loaded: %+v", app.Config)
	}

	token, ok, err := session.NewFileStore(sessionFile).Get(session.TokenKey)
	if err != nil || !ok || token != "xyz" {
		t.Errorf("session file token = %q, %v, %v", token, ok, err)
	}
}

func TestSetupWithoutBaseURL(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	os.Unsetenv("API_BASE_URL")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))

	_, err := execute(NewApp(), "--env-file", "", "session", "status")
	if apperrors.CodeOf(err) != apperrors.ErrCodeConfiguration {
		t.Fatalf("error = %v, want a configuration error", err)
	}
}
