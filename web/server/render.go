package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/df07/photon/pkg/display"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/renderer"
)

// ProgressUpdate is the payload of a "progress" event
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	Rays            int64   `json:"rays"`
	ElapsedMs       int64   `json:"elapsedMs"`
	MRaysPerSecond  float64 `json:"mraysPerSecond"`
}

// handleRender streams progressive passes as server-sent events. Closing
// the connection cancels the render before its next pass.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	params, config, toneMap, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rt, err := renderer.NewRaytracer(params.desc.Build(), geometry.NewCamera(params.desc.Camera), config)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	logger.Infof("render request: scene=%s %dx%d spp=%d passes=%d",
		params.Name, config.Width, config.Height, config.SamplesPerPixel, config.Passes)

	passChan, errChan := rt.RenderProgressive(r.Context())
	for result := range passChan {
		imageData, err := framebufferToBase64PNG(display.Prepare(result.Framebuffer, toneMap, true))
		if err != nil {
			sendEvent(w, flusher, "error", err.Error())
			return
		}

		update := ProgressUpdate{
			PassNumber:  result.PassNumber,
			TotalPasses: config.Passes,
			ImageData:   imageData,
			Stats: Stats{
				TotalPixels:     result.Stats.TotalPixels(),
				SamplesPerPixel: result.Stats.SamplesPerPixel,
				Rays:            result.Stats.Rays,
				ElapsedMs:       result.Stats.Elapsed.Milliseconds(),
				MRaysPerSecond:  result.Stats.MRaysPerSecond(),
			},
			IsComplete: result.IsLast,
		}
		data, err := json.Marshal(update)
		if err != nil {
			sendEvent(w, flusher, "error", err.Error())
			return
		}
		sendEvent(w, flusher, "progress", string(data))
	}

	if err := <-errChan; err != nil {
		logger.Infof("render stopped: %v", err)
		sendEvent(w, flusher, "error", err.Error())
		return
	}
	sendEvent(w, flusher, "complete", "Rendering completed")
}

// parseRenderRequest resolves the scene and render settings from the query
func parseRenderRequest(r *http.Request) (*sceneParams, renderer.Config, display.ToneMap, error) {
	values := r.URL.Query()

	params, err := parseSceneParams(values)
	if err != nil {
		return nil, renderer.Config{}, display.ToneMapNone, err
	}

	config := renderer.DefaultConfig()
	config.Width = params.Width
	config.Height = params.Height
	config.Seed = params.Seed
	if config.SamplesPerPixel, err = parseIntParam(values, "spp", 32, 1, 10000); err != nil {
		return nil, config, display.ToneMapNone, err
	}
	if config.MaxBounces, err = parseIntParam(values, "bounces", 12, 0, 1000); err != nil {
		return nil, config, display.ToneMapNone, err
	}
	if config.Passes, err = parseIntParam(values, "passes", 4, 1, 100); err != nil {
		return nil, config, display.ToneMapNone, err
	}
	config.Passes = min(config.Passes, config.SamplesPerPixel)

	toneMap := display.ToneMapNone
	if name := values.Get("tonemap"); name != "" {
		if toneMap, err = display.ParseToneMap(name); err != nil {
			return nil, config, display.ToneMapNone, err
		}
	}

	return params, config, toneMap, nil
}

// framebufferToBase64PNG converts a display-ready framebuffer to base64-encoded PNG
func framebufferToBase64PNG(fb *renderer.Framebuffer) (string, error) {
	var buf bytes.Buffer
	if err := display.WritePNG(&buf, fb); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendEvent writes one SSE event and flushes it to the client
func sendEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
