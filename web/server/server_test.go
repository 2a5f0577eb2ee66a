package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
)

func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	NewServer(0).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected body %q", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, "/api/scenes")

	var scenes []SceneInfo
	if err := json.NewDecoder(rec.Body).Decode(&scenes); err != nil {
		t.Fatalf("Failed to decode scenes: %v", err)
	}
	if len(scenes) == 0 {
		t.Fatal("Expected at least one scene")
	}
	for _, s := range scenes {
		if s.Height != 80 || s.Width <= 0 {
			t.Errorf("Scene %s: unexpected preview size %dx%d", s.Name, s.Width, s.Height)
		}
	}
}

func TestHandleRender_StreamsPasses(t *testing.T) {
	rec := get(t, "/api/render?scene=minimal&width=8&height=4&spp=3&passes=2&bounces=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected event stream, got %q", ct)
	}

	body := rec.Body.String()
	if n := strings.Count(body, "event: progress"); n != 2 {
		t.Errorf("Expected 2 progress events, got %d", n)
	}
	if !strings.HasSuffix(body, "event: complete\ndata: Rendering completed\n\n") {
		t.Errorf("Expected stream to end with completion, got %q", body[max(0, len(body)-80):])
	}

	// decode the final progress payload
	events := strings.Split(body, "\n\n")
	last := events[len(events)-3]
	data := strings.TrimPrefix(last[strings.Index(last, "data: "):], "data: ")
	var update ProgressUpdate
	if err := json.Unmarshal([]byte(data), &update); err != nil {
		t.Fatalf("Failed to decode progress event: %v", err)
	}
	if !update.IsComplete || update.PassNumber != 2 || update.Stats.SamplesPerPixel != 3 {
		t.Errorf("Unexpected final update %+v", update.Stats)
	}
	if update.ImageData == "" {
		t.Error("Expected image data")
	}
}

func TestHandleRender_BadRequest(t *testing.T) {
	tests := []string{
		"/api/render?scene=nope",
		"/api/render?scene=minimal&spp=0",
		"/api/render?scene=minimal&width=abc",
		"/api/render?scene=minimal&tonemap=filmic",
	}
	for _, target := range tests {
		if rec := get(t, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestHandleInspect_CenterOfMinimalHitsChromeSphere(t *testing.T) {
	rec := get(t, "/api/inspect?scene=minimal&width=160&height=80&x=80&y=40")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Hit {
		t.Fatal("Expected a hit at the image center")
	}
	if resp.MaterialType != "metal" || resp.GeometryType != "sphere" {
		t.Errorf("Expected metal sphere, got %s %s", resp.MaterialType, resp.GeometryType)
	}
	if !resp.FrontFace || resp.Distance <= 0 {
		t.Errorf("Unexpected hit details %+v", resp)
	}
}

func TestHandleInspect_BadCoordinates(t *testing.T) {
	for _, target := range []string{
		"/api/inspect?scene=minimal",
		"/api/inspect?scene=minimal&width=10&height=10&x=10&y=0",
		"/api/inspect?scene=minimal&x=1&y=-3",
	} {
		if rec := get(t, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestGeometryInfo_TriangleNormal(t *testing.T) {
	tri := geometry.NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)

	kind, props := geometryInfo(tri)
	if kind != "triangle" {
		t.Fatalf("Expected triangle, got %s", kind)
	}
	if normal, ok := props["normal"].([3]float64); !ok || normal != [3]float64{0, 0, 1} {
		t.Errorf("Expected normal (0, 0, 1), got %v", props["normal"])
	}
}
