package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"scenescribe/store"
	"scenescribe/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewRouter(s), s
}

func seedProject(t *testing.T, s *store.MemoryStore, scenes []types.Scene) {
	t.Helper()
	err := s.Save(context.Background(), &types.Project{
		ID:        "p-1",
		Name:      "demo",
		VideoName: "clip.mp4",
		Scenes:    scenes,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestProjectLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	put := PutProjectRequest{
		VideoName: "clip.mp4",
		Scenes: []types.Scene{
			{StartTime: 0, EndTime: 1000, Description: "a door opens"},
		},
	}
	w := doJSON(t, r, http.MethodPut, "/api/projects/demo", put)
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d body = %s", w.Code, w.Body)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/demo", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var project types.Project
	if err := json.Unmarshal(w.Body.Bytes(), &project); err != nil {
		t.Fatal(err)
	}
	if project.Name != "demo" || project.ID == "" {
		t.Errorf("project = %+v", project)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects", nil)
	if !strings.Contains(w.Body.String(), "demo") {
		t.Errorf("list body = %s", w.Body)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/projects/demo", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/projects/demo", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", w.Code)
	}
}

func TestPutProjectRejectsOverlap(t *testing.T) {
	r, _ := newTestRouter(t)
	put := PutProjectRequest{
		Scenes: []types.Scene{
			{StartTime: 0, EndTime: 1500, Description: "a"},
			{StartTime: 1000, EndTime: 2000, Description: "b"},
		},
	}
	w := doJSON(t, r, http.MethodPut, "/api/projects/demo", put)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestEditText(t *testing.T) {
	r, s := newTestRouter(t)
	seedProject(t, s, []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "a door opens", AudioFile: "audio/a.mp3"},
	})

	w := doJSON(t, r, http.MethodPost, "/api/projects/demo/scenes/text",
		map[string]interface{}{"start_time": 0, "text": "a door slams"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body)
	}
	var resp MutationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Applied {
		t.Error("edit should be applied")
	}
	if resp.Scenes[0].Description != "a door slams" || !resp.Scenes[0].IsEdited {
		t.Errorf("scene = %+v", resp.Scenes[0])
	}
	if resp.Scenes[0].AudioFile != "" {
		t.Error("text edit must invalidate narration audio")
	}
}

func TestRetimeRejectedReturnsAppliedFalse(t *testing.T) {
	r, s := newTestRouter(t)
	seedProject(t, s, []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "a"},
		{StartTime: 2000, EndTime: 3000, Description: "b"},
	})

	// Would overlap the second scene.
	w := doJSON(t, r, http.MethodPost, "/api/projects/demo/scenes/retime",
		map[string]interface{}{"start_time": 0, "new_start": 1500, "new_end": 2500})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp MutationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Applied {
		t.Error("overlapping retime must not be applied")
	}
	if resp.Scenes[0].StartTime != 0 || resp.Scenes[0].EndTime != 1000 {
		t.Errorf("scene changed despite rejection: %+v", resp.Scenes[0])
	}
}

func TestInsertScene(t *testing.T) {
	r, s := newTestRouter(t)
	seedProject(t, s, []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "a"},
	})

	w := doJSON(t, r, http.MethodPost, "/api/projects/demo/scenes/insert",
		map[string]interface{}{"current_time_ms": 2000, "duration_ms": 5000})
	var resp MutationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Applied || len(resp.Scenes) != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	inserted := resp.Scenes[1]
	if inserted.StartTime != 2000 || inserted.EndTime != 5000 {
		t.Errorf("inserted = %+v", inserted)
	}
}

func TestInsertInsideSceneRejected(t *testing.T) {
	r, s := newTestRouter(t)
	seedProject(t, s, []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "a"},
	})

	w := doJSON(t, r, http.MethodPost, "/api/projects/demo/scenes/insert",
		map[string]interface{}{"current_time_ms": 500, "duration_ms": 5000})
	var resp MutationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Applied || len(resp.Scenes) != 1 {
		t.Errorf("insert inside an existing scene must be rejected: %+v", resp)
	}
}

func TestImportSRT(t *testing.T) {
	r, s := newTestRouter(t)
	seedProject(t, s, nil)

	body := "1\n00:00:00,000 --> 00:00:01,000\na door opens\n\n2\nnot a timestamp\nbroken\n"
	req := httptest.NewRequest(http.MethodPost, "/api/projects/demo/scenes/import-srt", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body)
	}
	var resp MutationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Scenes) != 1 || !resp.Scenes[0].IsEdited {
		t.Errorf("scenes = %+v", resp.Scenes)
	}
}

func TestExportSRT(t *testing.T) {
	r, s := newTestRouter(t)
	seedProject(t, s, []types.Scene{
		{StartTime: 0, EndTime: 1000, Description: "a door opens"},
		{StartTime: 1000, EndTime: 2500, Description: "TALKING"},
	})

	w := doJSON(t, r, http.MethodGet, "/api/projects/demo/export/srt", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := w.Body.String()
	if !strings.Contains(got, "00:00:00,000 --> 00:00:01,000") || strings.Contains(got, "TALKING") {
		t.Errorf("srt body = %q", got)
	}

	w = doJSON(t, r, http.MethodGet, "/api/projects/demo/export/talking-srt", nil)
	if !strings.Contains(w.Body.String(), "TALKING") {
		t.Errorf("talking srt body = %q", w.Body)
	}
}
