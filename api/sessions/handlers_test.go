package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestwatch/nestwatch-api/api/types"
	sessionsvc "github.com/nestwatch/nestwatch-api/internal/services/sessions"
	"github.com/nestwatch/nestwatch-api/internal/session"
)

// stubStore records append batches and can be told to fail
type stubStore struct {
	batches [][]session.Row
	err     error
}

func (s *stubStore) AppendRows(ctx context.Context, rows []session.Row) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.batches = append(s.batches, rows)
	return len(rows), nil
}

func noExtract(data []byte) (time.Time, bool) {
	return time.Time{}, false
}

func newTestRouter(t *testing.T, store session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := sessionsvc.NewService(
		sessionsvc.Limits{MaxImages: 100, MaxImageBytes: 1 << 20},
		time.Hour,
		noExtract,
	)

	deps := &types.Dependencies{
		Sessions: registry,
		Store:    store,
	}

	engine := gin.New()
	group := engine.Group("/api/v1/sessions")
	RegisterRoutes(group, deps, func(c *gin.Context) { c.Next() })
	return engine
}

func perform(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func uploadImages(t *testing.T, engine *gin.Engine, names ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("jpeg-bytes-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, engine *gin.Engine, names ...string) string {
	t.Helper()

	w := uploadImages(t, engine, names...)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Session.SessionID)
	return resp.Session.SessionID
}

func snapshotOf(t *testing.T, w *httptest.ResponseRecorder) session.Snapshot {
	t.Helper()
	var resp types.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Session
}

func fillFields(t *testing.T, engine *gin.Engine, id string) {
	t.Helper()
	for field, value := range map[string]string{
		"site":      "Location 1",
		"camera_id": "CAM001",
		"species":   "Laysan Albatross (Phoebastria immutabilis)",
		"behavior":  "Incubating",
		"reviewer":  "Morgan",
	} {
		w := perform(engine, http.MethodPut, "/api/v1/sessions/"+id+"/fields",
			types.FieldRequest{Field: field, Value: value})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestCreateSession(t *testing.T) {
	engine := newTestRouter(t, nil)

	w := uploadImages(t, engine, "IMG_0003.JPG", "IMG_0001.JPG", "IMG_0002.JPG")
	require.Equal(t, http.StatusCreated, w.Code)

	snap := snapshotOf(t, w)
	assert.Equal(t, 3, snap.ImageCount)
	assert.Equal(t, 0, snap.Current)
	// Collection is ordered by filename regardless of upload order
	assert.Equal(t, "IMG_0001.JPG", snap.CurrentFilename)
	assert.Empty(t, snap.Annotations)
}

func TestCreateSessionNoImages(t *testing.T) {
	engine := newTestRouter(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("modified_times", "{}"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSessionBadModifiedTimes(t *testing.T) {
	engine := newTestRouter(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("images", "IMG_0001.JPG")
	require.NoError(t, err)
	fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.WriteField("modified_times", "{not json"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	engine := newTestRouter(t, nil)

	w := perform(engine, http.MethodGet, "/api/v1/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNavigate(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg", "b.jpg", "c.jpg")

	w := perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/navigate",
		types.NavigateRequest{Action: "next"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, snapshotOf(t, w).Current)

	// Prev twice clamps at the first image
	perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/navigate", types.NavigateRequest{Action: "prev"})
	w = perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/navigate", types.NavigateRequest{Action: "prev"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, snapshotOf(t, w).Current)

	two := 2
	w = perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/navigate",
		types.NavigateRequest{Action: "goto", Ordinal: &two})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, snapshotOf(t, w).Current)

	// Out-of-range goto is rejected and the cursor stays put
	nine := 9
	w = perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/navigate",
		types.NavigateRequest{Action: "goto", Ordinal: &nine})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(engine, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, 2, snapshotOf(t, w).Current)

	w = perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/navigate",
		types.NavigateRequest{Action: "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func boolPtr(b bool) *bool { return &b }

func TestMarkAndSaveSequence(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg")
	base := "/api/v1/sessions/" + id

	one := 1
	perform(engine, http.MethodPost, base+"/navigate", types.NavigateRequest{Action: "goto", Ordinal: &one})
	w := perform(engine, http.MethodPost, base+"/marks", types.MarkRequest{Mark: "start", On: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sequence_start", string(snapshotOf(t, w).Marking.Mode))

	// End on the same image as the start is rejected
	w = perform(engine, http.MethodPost, base+"/marks", types.MarkRequest{Mark: "end", On: boolPtr(true)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	three := 3
	perform(engine, http.MethodPost, base+"/navigate", types.NavigateRequest{Action: "goto", Ordinal: &three})
	w = perform(engine, http.MethodPost, base+"/marks", types.MarkRequest{Mark: "end", On: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sequence_complete", string(snapshotOf(t, w).Marking.Mode))

	// Saving before the form is filled in is rejected and commits nothing
	w = perform(engine, http.MethodPost, base+"/annotations", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fillFields(t, engine, id)

	w = perform(engine, http.MethodPost, base+"/annotations", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var saved types.SavedAnnotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	require.NotNil(t, saved.Annotation)
	assert.Equal(t, "sequence", string(saved.Annotation.Kind))
	assert.Equal(t, 1, saved.Annotation.StartRef)
	assert.Equal(t, 3, saved.Annotation.EndRef)
	assert.Equal(t, "b.jpg", saved.Annotation.StartFilename)
	assert.Equal(t, "d.jpg", saved.Annotation.EndFilename)
	assert.False(t, saved.Annotation.Synced)

	// Marks reset after commit, fields persist
	w = perform(engine, http.MethodGet, base, nil)
	snap := snapshotOf(t, w)
	assert.Equal(t, "none", string(snap.Marking.Mode))
	assert.Equal(t, "Location 1", snap.Fields.Site)
	assert.Len(t, snap.Annotations, 1)
}

func TestMarkSingleObservation(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg", "b.jpg")
	base := "/api/v1/sessions/" + id

	w := perform(engine, http.MethodPost, base+"/marks", types.MarkRequest{Mark: "single", On: boolPtr(true)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "single_observation", string(snapshotOf(t, w).Marking.Mode))

	fillFields(t, engine, id)

	w = perform(engine, http.MethodPost, base+"/annotations", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var saved types.SavedAnnotationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, "single", string(saved.Annotation.Kind))
	assert.Equal(t, 0, saved.Annotation.StartRef)
	assert.Equal(t, 0, saved.Annotation.EndRef)
}

func TestMarkUnknownKind(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg")

	w := perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/marks",
		types.MarkRequest{Mark: "middle", On: boolPtr(true)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetFieldUnknownName(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg")

	w := perform(engine, http.MethodPut, "/api/v1/sessions/"+id+"/fields",
		types.FieldRequest{Field: "mood", Value: "good"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncFlow(t *testing.T) {
	store := &stubStore{}
	engine := newTestRouter(t, store)
	id := createSession(t, engine, "a.jpg", "b.jpg")
	base := "/api/v1/sessions/" + id

	perform(engine, http.MethodPost, base+"/marks", types.MarkRequest{Mark: "single", On: boolPtr(true)})
	fillFields(t, engine, id)
	w := perform(engine, http.MethodPost, base+"/annotations", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(engine, http.MethodPost, base+"/sync", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var syncResp types.SyncResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &syncResp))
	assert.Equal(t, 1, syncResp.Appended)
	require.Len(t, store.batches, 1)

	// Second sync has nothing to push and never hits the store
	w = perform(engine, http.MethodPost, base+"/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &syncResp))
	assert.Equal(t, 0, syncResp.Appended)
	assert.Len(t, store.batches, 1)

	// Unsynced filter is now empty
	w = perform(engine, http.MethodGet, base+"/annotations?unsynced=true", nil)
	var annResp types.AnnotationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &annResp))
	assert.Equal(t, 0, annResp.Count)
}

func TestSyncStoreFailure(t *testing.T) {
	store := &stubStore{err: fmt.Errorf("sheet unavailable")}
	engine := newTestRouter(t, store)
	id := createSession(t, engine, "a.jpg")
	base := "/api/v1/sessions/" + id

	perform(engine, http.MethodPost, base+"/marks", types.MarkRequest{Mark: "single", On: boolPtr(true)})
	fillFields(t, engine, id)
	w := perform(engine, http.MethodPost, base+"/annotations", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(engine, http.MethodPost, base+"/sync", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// Record stays unsynced for the next attempt
	w = perform(engine, http.MethodGet, base+"/annotations?unsynced=true", nil)
	var annResp types.AnnotationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &annResp))
	assert.Equal(t, 1, annResp.Count)
}

func TestSyncWithoutStore(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg")

	w := perform(engine, http.MethodPost, "/api/v1/sessions/"+id+"/sync", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestClear(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg", "b.jpg")
	base := "/api/v1/sessions/" + id

	perform(engine, http.MethodPost, base+"/marks", types.MarkRequest{Mark: "single", On: boolPtr(true)})
	fillFields(t, engine, id)
	w := perform(engine, http.MethodPost, base+"/annotations", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = perform(engine, http.MethodPost, base+"/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)

	snap := snapshotOf(t, w)
	assert.Empty(t, snap.Annotations)
	// Images survive a clear
	assert.Equal(t, 2, snap.ImageCount)
}

func TestGetImage(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg", "b.jpg")
	base := "/api/v1/sessions/" + id

	w := perform(engine, http.MethodGet, base+"/images/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes-b.jpg", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "b.jpg")

	w = perform(engine, http.MethodGet, base+"/images/9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(engine, http.MethodGet, base+"/images/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSession(t *testing.T) {
	engine := newTestRouter(t, nil)
	id := createSession(t, engine, "a.jpg")

	w := perform(engine, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(engine, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionIsolation(t *testing.T) {
	engine := newTestRouter(t, nil)
	first := createSession(t, engine, "a.jpg", "b.jpg")
	second := createSession(t, engine, "x.jpg", "y.jpg")

	perform(engine, http.MethodPost, "/api/v1/sessions/"+first+"/navigate", types.NavigateRequest{Action: "next"})
	perform(engine, http.MethodPost, "/api/v1/sessions/"+first+"/marks", types.MarkRequest{Mark: "single", On: boolPtr(true)})

	w := perform(engine, http.MethodGet, "/api/v1/sessions/"+second, nil)
	snap := snapshotOf(t, w)
	assert.Equal(t, 0, snap.Current)
	assert.Equal(t, "none", string(snap.Marking.Mode))
}
