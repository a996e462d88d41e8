package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/directory"
	"mergington-activities/internal/models"
	"mergington-activities/pkg/registry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T, cfg *directory.Config, opts Options) *testServer {
	t.Helper()
	seed, err := registry.Default()
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	svc := directory.NewService(cfg, directory.New(seed.Directory()), nil, log)
	return &testServer{router: NewRouter(opts, svc, nil, log)}
}

func (s *testServer) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) activities(t *testing.T) models.Activities {
	t.Helper()
	rec := s.do(t, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)

	var out models.Activities
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return strings.ToLower(body.Detail)
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestGetActivities_ReturnsAll(t *testing.T) {
	srv := newTestServer(t, nil, Options{})

	rec := srv.do(t, http.MethodGet, "/activities")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var raw map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Len(t, raw, 9)
	for _, name := range []string{"Chess Club", "Programming Class", "Gym Class"} {
		assert.Contains(t, raw, name)
	}

	for name, details := range raw {
		for _, key := range []string{"description", "schedule", "max_participants", "participants"} {
			assert.Contains(t, details, key, "activity %s", name)
		}
		assert.IsType(t, []interface{}{}, details["participants"], "activity %s", name)
		assert.IsType(t, float64(0), details["max_participants"], "activity %s", name)
	}
}

func TestSignup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")

		assert.Equal(t, http.StatusOK, rec.Code)
		msg := decodeMessage(t, rec)
		assert.Contains(t, msg, "newstudent@mergington.edu")
		assert.Contains(t, msg, "Chess Club")
		assert.Contains(t, srv.activities(t)["Chess Club"].Participants, "newstudent@mergington.edu")
	})

	t.Run("duplicate", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeDetail(t, rec), "already signed up")
		assert.Len(t, srv.activities(t)["Chess Club"].Participants, 2)
	})

	t.Run("unknown activity", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodPost, "/activities/NonExistent%20Activity/signup?email=test@mergington.edu")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decodeDetail(t, rec), "not found")
	})

	t.Run("several students", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		emails := []string{"student1@mergington.edu", "student2@mergington.edu", "student3@mergington.edu"}
		for _, email := range emails {
			rec := srv.do(t, http.MethodPost, "/activities/Drama%20Club/signup?email="+email)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		drama := srv.activities(t)["Drama Club"]
		for _, email := range emails {
			assert.Contains(t, drama.Participants, email)
		}
	})

	t.Run("missing email", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodPost, "/activities/Chess%20Club/signup")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeDetail(t, rec), "email")
	})

	t.Run("capacity enforced", func(t *testing.T) {
		srv := newTestServer(t, &directory.Config{EnforceCapacity: true}, Options{})
		// Chess Club holds 12 and starts with 2.
		for i := 0; i < 10; i++ {
			rec := srv.do(t, http.MethodPost, "/activities/Chess%20Club/signup?email=s"+string(rune('a'+i))+"@mergington.edu")
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := srv.do(t, http.MethodPost, "/activities/Chess%20Club/signup?email=late@mergington.edu")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeDetail(t, rec), "full")
		assert.Len(t, srv.activities(t)["Chess Club"].Participants, 12)
	})
}

func TestUnregister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu")

		assert.Equal(t, http.StatusOK, rec.Code)
		msg := decodeMessage(t, rec)
		assert.Contains(t, msg, "michael@mergington.edu")
		assert.Contains(t, msg, "Chess Club")
		assert.Equal(t, []string{"daniel@mergington.edu"}, srv.activities(t)["Chess Club"].Participants)
	})

	t.Run("not registered", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodDelete, "/activities/Chess%20Club/unregister?email=notregistered@mergington.edu")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeDetail(t, rec), "not signed up")
	})

	t.Run("unknown activity", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodDelete, "/activities/NonExistent%20Activity/unregister?email=test@mergington.edu")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decodeDetail(t, rec), "not found")
	})

	t.Run("then sign up again", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		email := "michael@mergington.edu"

		rec := srv.do(t, http.MethodDelete, "/activities/Chess%20Club/unregister?email="+email)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, srv.activities(t)["Chess Club"].Participants, email)

		rec = srv.do(t, http.MethodPost, "/activities/Chess%20Club/signup?email="+email)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"daniel@mergington.edu", email}, srv.activities(t)["Chess Club"].Participants)
	})

	t.Run("missing email", func(t *testing.T) {
		srv := newTestServer(t, nil, Options{})
		rec := srv.do(t, http.MethodDelete, "/activities/Chess%20Club/unregister")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestRoot_RedirectsToStaticIndex(t *testing.T) {
	srv := newTestServer(t, nil, Options{})
	rec := srv.do(t, http.MethodGet, "/")

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/static/index.html", rec.Header().Get("Location"))
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Mergington</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))

	srv := newTestServer(t, nil, Options{StaticDir: dir})

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
		wantType   string
	}{
		{"index served directly", http.MethodGet, "/static/index.html", http.StatusOK, "Mergington", "text/html"},
		{"directory root", http.MethodGet, "/static/", http.StatusOK, "Mergington", "text/html"},
		{"script", http.MethodGet, "/static/app.js", http.StatusOK, "console.log", "javascript"},
		{"head", http.MethodHead, "/static/index.html", http.StatusOK, "", "text/html"},
		{"missing file", http.MethodGet, "/static/missing.css", http.StatusNotFound, "Not Found", ""},
		{"directory without index", http.MethodGet, "/static/assets", http.StatusNotFound, "Not Found", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(t, tt.method, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Header().Get("Location"))
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.wantType)
			}
		})
	}
}

func TestRootRedirectResolvesToIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Mergington</h1>"), 0o644))
	srv := newTestServer(t, nil, Options{StaticDir: dir})

	rec := srv.do(t, http.MethodGet, "/")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	rec = srv.do(t, http.MethodGet, rec.Header().Get("Location"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mergington")
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t, nil, Options{})
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, srv.do(t, http.MethodGet, "/ready").Code)

	failing := newTestServer(t, nil, Options{
		Ready: func(context.Context) error { return errors.New("redis unreachable") },
	})
	rec := failing.do(t, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database connection error", decodeDetail(t, rec))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, Options{})
	srv.do(t, http.MethodGet, "/activities")

	rec := srv.do(t, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

type panickingService struct{ DirectoryService }

func (panickingService) ListActivities(context.Context) models.Activities { panic("boom") }

func TestRecovery_ReturnsJSON500(t *testing.T) {
	router := NewRouter(Options{}, panickingService{}, nil, logger.NewTestLogger(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activities", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Detail)
}
