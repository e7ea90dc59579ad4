package sessions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestwatch/nestwatch-api/api/assignments"
	"github.com/nestwatch/nestwatch-api/api/sessions"
	"github.com/nestwatch/nestwatch-api/api/types"
	"github.com/nestwatch/nestwatch-api/internal/database"
	"github.com/nestwatch/nestwatch-api/internal/models"
	"github.com/nestwatch/nestwatch-api/internal/services/archive"
	assignmentsService "github.com/nestwatch/nestwatch-api/internal/services/assignments"
	sessionsService "github.com/nestwatch/nestwatch-api/internal/services/sessions"
)

// IntegrationTestSuite wires real components end to end: HTTP handlers,
// session registry, and the archive store on an in-memory database.
type IntegrationTestSuite struct {
	t      *testing.T
	db     *database.DB
	repo   *archive.Repository
	router *gin.Engine
}

func setupIntegrationTestSuite(t *testing.T) *IntegrationTestSuite {
	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Create in-memory database with the archive schema
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err, "Failed to connect to test database")

	repo := archive.NewRepository(db)
	require.NoError(t, repo.Migrate(), "Failed to migrate archive schema")

	registry := sessionsService.NewService(
		sessionsService.Limits{MaxImages: 100, MaxImageBytes: 1 << 20},
		time.Hour,
		func(data []byte) (time.Time, bool) { return time.Time{}, false },
	)

	deps := &types.Dependencies{
		DB:                db,
		Sessions:          registry,
		Store:             repo,
		AssignmentService: assignmentsService.NewService(repo, time.Minute),
	}

	router := gin.New()
	sessionGroup := router.Group("/api/v1/sessions")
	sessions.RegisterRoutes(sessionGroup, deps, func(c *gin.Context) { c.Next() })
	assignmentGroup := router.Group("/api/v1/assignments")
	assignments.RegisterRoutes(assignmentGroup, deps)

	t.Cleanup(func() {
		registry.Stop()
		_ = db.Close()
	})

	return &IntegrationTestSuite{
		t:      t,
		db:     db,
		repo:   repo,
		router: router,
	}
}

func (s *IntegrationTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *IntegrationTestSuite) createSession(names ...string) string {
	s.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(s.t, err)
		_, err = fw.Write([]byte("jpeg-bytes-" + name))
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.SessionResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.Session.SessionID)
	return resp.Session.SessionID
}

func (s *IntegrationTestSuite) setField(id, field, value string) {
	s.t.Helper()
	w := s.do(http.MethodPut, "/api/v1/sessions/"+id+"/fields",
		types.FieldRequest{Field: field, Value: value})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
}

func boolPtr(b bool) *bool { return &b }

func TestAnnotationSyncPersistsToArchive(t *testing.T) {
	suite := setupIntegrationTestSuite(t)

	id := suite.createSession("a.jpg", "b.jpg", "c.jpg", "d.jpg")

	// Mark a sequence from image 2 to image 4
	w := suite.do(http.MethodPost, "/api/v1/sessions/"+id+"/navigate",
		types.NavigateRequest{Action: "next"})
	require.Equal(t, http.StatusOK, w.Code)
	w = suite.do(http.MethodPost, "/api/v1/sessions/"+id+"/marks",
		types.MarkRequest{Mark: "start", On: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	ordinal := 3
	w = suite.do(http.MethodPost, "/api/v1/sessions/"+id+"/navigate",
		types.NavigateRequest{Action: "goto", Ordinal: &ordinal})
	require.Equal(t, http.StatusOK, w.Code)
	w = suite.do(http.MethodPost, "/api/v1/sessions/"+id+"/marks",
		types.MarkRequest{Mark: "end", On: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for field, value := range map[string]string{
		"site":      "Location 2",
		"camera_id": "CAM014",
		"species":   "Black-footed Albatross (Phoebastria nigripes)",
		"behavior":  "Feeding",
		"reviewer":  "Alex",
	} {
		suite.setField(id, field, value)
	}

	w = suite.do(http.MethodPost, "/api/v1/sessions/"+id+"/annotations", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Sync appends the committed record to the archive
	w = suite.do(http.MethodPost, "/api/v1/sessions/"+id+"/sync", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var syncResp types.SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &syncResp))
	assert.Equal(t, 1, syncResp.Appended)

	// The record landed in the database with the session's marks and fields
	var stored []models.ArchivedAnnotation
	require.NoError(t, suite.db.DB.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "sequence", stored[0].Kind)
	assert.Equal(t, "b.jpg", stored[0].StartFilename)
	assert.Equal(t, "d.jpg", stored[0].EndFilename)
	assert.Equal(t, "Location 2", stored[0].Site)
	assert.Equal(t, "CAM014", stored[0].CameraID)
	assert.Equal(t, "Alex", stored[0].Reviewer)

	// A second sync has nothing left to append
	w = suite.do(http.MethodPost, "/api/v1/sessions/"+id+"/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &syncResp))
	assert.Equal(t, 0, syncResp.Appended)

	require.NoError(t, suite.db.DB.Find(&stored).Error)
	assert.Len(t, stored, 1)
}

func TestAssignmentsOverviewFromArchive(t *testing.T) {
	suite := setupIntegrationTestSuite(t)

	ctx := context.Background()
	require.NoError(t, suite.repo.SaveAssignment(ctx, models.Assignment{
		Site: "Location 1", Camera: "CAM001", Status: models.StatusInProgress, Reviewer: "Morgan",
	}))
	require.NoError(t, suite.repo.SaveAssignment(ctx, models.Assignment{
		Site: "Location 2", Camera: "CAM014", Status: models.StatusCompleted, Reviewer: "Alex",
	}))

	w := suite.do(http.MethodGet, "/api/v1/assignments", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.AssignmentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Overview)
	assert.Equal(t, 2, resp.Overview.Total)
	assert.Equal(t, 1, resp.Overview.StatusCounts[models.StatusInProgress])
	assert.Equal(t, 1, resp.Overview.StatusCounts[models.StatusCompleted])
	assert.Equal(t, 0, resp.Overview.StatusCounts[models.StatusNotStarted])
}
