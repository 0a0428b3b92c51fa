package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

const (
	// maxSceneBytes limits the scene description accepted by POST /api/render
	maxSceneBytes = 1 << 20
	// maxWebQuality caps recursion depth and lobe samples for web renders
	maxWebQuality = 4
	// DefaultRenderTimeout bounds a single render request
	DefaultRenderTimeout = 2 * time.Minute
)

// Server handles web requests for the raytracer
type Server struct {
	port          int
	scenesDir     string
	renderTimeout time.Duration
}

// NewServer creates a new web server serving file scenes from scenesDir
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:          port,
		scenesDir:     scenesDir,
		renderTimeout: DefaultRenderTimeout,
	}
}

// SetRenderTimeout changes the per-request render deadline
func (s *Server) SetRenderTimeout(timeout time.Duration) {
	s.renderTimeout = timeout
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string // Scene id: built-in name or "file:<name>"
	Width     int
	Height    int
	AA        int   // 0 keeps the scene's setting
	Quality   int   // -1 keeps the scene's setting
	Ambient   *bool // nil keeps the scene's setting
	Seed      int64
	Thumbnail int
	Format    string // "png" or "json"
}

// Handler returns the HTTP handler with all API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses and validates query parameters shared by render and inspect
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:  query.Get("scene"),
		Format: query.Get("format"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "png" && req.Format != "json" {
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 300, 1, 2000); err != nil {
		return nil, err
	}
	if req.AA, err = parseIntParam(query, "aa", 0, 0, 8); err != nil {
		return nil, err
	}
	if req.Quality, err = parseIntParam(query, "quality", -1, 0, maxWebQuality); err != nil {
		return nil, err
	}
	if req.Thumbnail, err = parseIntParam(query, "thumb", 0, 0, 2000); err != nil {
		return nil, err
	}
	if req.Ambient, err = parseBoolParam(query, "ambient"); err != nil {
		return nil, err
	}

	req.Seed = 42
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Quality > 2 {
		log.Printf("Render warning: Large image with high quality may render slowly")
	}

	return req, nil
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

// parseBoolParam parses an optional boolean parameter; absent returns nil
func parseBoolParam(values url.Values, key string) (*bool, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", key, value)
	}
	return &parsed, nil
}

// createScene resolves the scene for a request. A POST body, when present,
// replaces the named scene.
func (s *Server) createScene(req *RenderRequest, r *http.Request) (*scene.Scene, error) {
	var sceneObj *scene.Scene
	var err error

	switch {
	case r.Method == http.MethodPost:
		sceneObj, err = scene.NewSceneFromReader(r.Body, core.DefaultSceneOptions())
	case strings.HasPrefix(req.Scene, "file:"):
		name := strings.TrimPrefix(req.Scene, "file:")
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return nil, fmt.Errorf("invalid scene file name: %q", name)
		}
		sceneObj, err = scene.NewFileScene(filepath.Join(s.scenesDir, name+".txt"), core.DefaultSceneOptions())
	default:
		sceneObj, err = scene.NewBuiltinScene(req.Scene)
	}
	if err != nil {
		return nil, err
	}

	options := sceneObj.Options()
	if req.AA > 0 {
		options.AAMultiplier = req.AA
	}
	if req.Quality >= 0 {
		options.Quality = req.Quality
	}
	if req.Ambient != nil {
		options.AmbientLightingEnabled = *req.Ambient
	}
	sceneObj.SetOptions(options)

	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
