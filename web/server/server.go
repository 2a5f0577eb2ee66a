package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/photon/pkg/log"
	"github.com/df07/photon/pkg/scene"
)

var logger = log.New("server")

// Server serves progressive renders and scene inspection over HTTP
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server and blocks until it fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SceneInfo describes a preset and its preview resolution
type SceneInfo struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// handleScenes lists the built-in presets
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []SceneInfo
	for _, preset := range scene.Presets() {
		width, height := preset.Build(0).DefaultSize()
		scenes = append(scenes, SceneInfo{
			Name:    preset.Name,
			Summary: preset.Summary,
			Width:   width,
			Height:  height,
		})
	}
	writeJSON(w, http.StatusOK, scenes)
}

// sceneParams are the query parameters shared by render and inspect
type sceneParams struct {
	Name   string
	Seed   int64
	Width  int
	Height int
	desc   *scene.Description
}

// parseSceneParams loads the requested preset and resolves the image size,
// defaulting to the preset's preview resolution
func parseSceneParams(values url.Values) (*sceneParams, error) {
	params := &sceneParams{Name: values.Get("scene")}
	if params.Name == "" {
		params.Name = "showcase"
	}

	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	params.Seed = int64(seed)

	params.desc, err = scene.Load(params.Name, params.Seed)
	if err != nil {
		return nil, err
	}

	defaultW, defaultH := params.desc.DefaultSize()
	if params.Width, err = parseIntParam(values, "width", defaultW, 1, 2000); err != nil {
		return nil, err
	}
	if params.Height, err = parseIntParam(values, "height", defaultH, 1, 2000); err != nil {
		return nil, err
	}
	params.desc.Camera.AspectRatio = float64(params.Width) / float64(params.Height)

	return params, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
