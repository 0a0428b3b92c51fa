package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// RenderResponse is the JSON form of a finished render
type RenderResponse struct {
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	TotalSamples    int64   `json:"totalSamples"`
	RaysTraced      int64   `json:"raysTraced"`
	RaysPerSecond   float64 `json:"raysPerSecond"`
}

// handleRender renders a scene and responds with a PNG, or JSON when format=json.
// GET renders a named scene; POST renders the scene description in the body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxSceneBytes)
	}
	sceneObj, err := s.createScene(req, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Use request context to stop rendering when the client disconnects
	ctx, cancel := context.WithTimeout(r.Context(), s.renderTimeout)
	defer cancel()

	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(newRenderID(), consoleChan)

	config := renderer.DefaultRaytracerConfig()
	config.Seed = req.Seed

	fb := renderer.NewFrameBuffer(req.Width, req.Height)
	startTime := time.Now()
	stats, err := sceneObj.RenderContext(ctx, fb, config, logger)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		case errors.Is(err, context.Canceled):
			// Client went away; nobody is listening
			log.Printf("Render cancelled: %v", err)
			return
		case ctx.Err() == nil:
			// Validation failures happen before any pixel is traced
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Sprintf("Render error: %v", err))
		return
	}

	img := output.Thumbnail(fb.ToRGBA(), req.Thumbnail)

	if req.Format == "json" {
		imageData, err := imageToBase64PNG(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			Width:     img.Bounds().Dx(),
			Height:    img.Bounds().Dy(),
			ImageData: imageData,
			Stats:     toStats(stats),
			Console:   drainConsole(consoleChan),
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
		return
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Rays", strconv.FormatInt(stats.RaysTraced, 10))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		SamplesPerPixel: stats.SamplesPerPixel,
		TotalSamples:    int64(stats.TotalSamples),
		RaysTraced:      stats.RaysTraced,
		RaysPerSecond:   stats.RaysPerSecond(),
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// drainConsole collects the messages buffered during a render
func drainConsole(consoleChan chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for {
		select {
		case msg := <-consoleChan:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
