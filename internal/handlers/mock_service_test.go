package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"habit_tracker/internal/models"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.PublicUser
	registerErr  error
	loginToken   string
	loginErr     error
	principal    models.User
	resolveErr   error

	lastRegisterName     string
	lastRegisterPassword string
	lastLoginName        string
	lastLoginPassword    string
	lastToken            string
}

func (m *mockAuth) Register(_ context.Context, name, password string) (models.PublicUser, error) {
	m.lastRegisterName = name
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}
func (m *mockAuth) Login(_ context.Context, name, password string) (string, error) {
	m.lastLoginName = name
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}
func (m *mockAuth) ResolvePrincipal(_ context.Context, token string) (models.User, error) {
	m.lastToken = token
	return m.principal, m.resolveErr
}

type mockUsers struct {
	users     []models.PublicUser
	listErr   error
	user      models.PublicUser
	getErr    error
	deleteErr error

	lastID int
	calls  int
}

func (m *mockUsers) ListUsers(context.Context) ([]models.PublicUser, error) {
	m.calls++
	return m.users, m.listErr
}
func (m *mockUsers) GetUser(_ context.Context, id int) (models.PublicUser, error) {
	m.calls++
	m.lastID = id
	return m.user, m.getErr
}
func (m *mockUsers) DeleteUser(_ context.Context, id int) error {
	m.calls++
	m.lastID = id
	return m.deleteErr
}

type mockHabits struct {
	habit  models.Habit
	habits []models.Habit
	entry  models.HabitLog
	logs   []models.HabitLog
	err    error

	lastPrincipal models.User
	lastID        int
	lastInput     service.HabitInput
	calls         int
}

func (m *mockHabits) record(p models.User, id int) {
	m.calls++
	m.lastPrincipal = p
	m.lastID = id
}

func (m *mockHabits) CreateHabit(_ context.Context, p models.User, in service.HabitInput) (models.Habit, error) {
	m.record(p, 0)
	m.lastInput = in
	return m.habit, m.err
}
func (m *mockHabits) ListHabits(_ context.Context, p models.User) ([]models.Habit, error) {
	m.record(p, 0)
	return m.habits, m.err
}
func (m *mockHabits) GetHabit(_ context.Context, p models.User, id int) (models.Habit, error) {
	m.record(p, id)
	return m.habit, m.err
}
func (m *mockHabits) DeleteHabit(_ context.Context, p models.User, id int) error {
	m.record(p, id)
	return m.err
}
func (m *mockHabits) LogHabit(_ context.Context, p models.User, id int) (models.HabitLog, error) {
	m.record(p, id)
	return m.entry, m.err
}
func (m *mockHabits) ListHabitLogs(_ context.Context, p models.User, id int) ([]models.HabitLog, error) {
	m.record(p, id)
	return m.logs, m.err
}

// mockSummaries is read from WebSocket writer goroutines, hence the mutex.
type mockSummaries struct {
	mu         sync.Mutex
	summary    models.Summary
	err        error
	lastUserID int
	lastDay    time.Time
	calls      int
}

func (m *mockSummaries) DailySummary(_ context.Context, userID int, day time.Time) (models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUserID = userID
	m.lastDay = day
	return m.summary, m.err
}

func (m *mockSummaries) snapshot() (calls, userID int, day time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, m.lastUserID, m.lastDay
}

// ---- Shared Test Helpers ----

var alice = models.User{ID: 7, Name: "alice", HashedPassword: "$2a$10$hash"}

// signedIn returns an auth mock that resolves any token to alice.
func signedIn() *mockAuth {
	return &mockAuth{principal: alice}
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// do serves one request against r. A body without a Content-Type header is sent as JSON.
func do(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range header {
		req.Header[k] = v
	}
	if body != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detailOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return out.Detail
}
