package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

// passHeaders are the response headers a media player needs for seeking.
var passHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Range",
	"Accept-Ranges",
	"Cache-Control",
}

// StreamHandler proxies video stream requests to the platform, injecting the
// caller's bearer token so local media players never see credentials.
//
// Range requests pass through untouched, so seeking works the same as
// against the upstream directly.
type StreamHandler struct {
	upstream string
	bearer   bearerFunc
	client   *http.Client
	logger   *log.Logger
}

// bearerFunc returns the current access token for upstream requests.
type bearerFunc func() (string, error)

// NewStreamHandler creates a stream proxy against the given upstream base URL.
// The client defaults to [http.DefaultClient].
func NewStreamHandler(upstream string, bearer func() (string, error), client *http.Client, logger *log.Logger) *StreamHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &StreamHandler{
		upstream: strings.TrimSuffix(upstream, "/"),
		bearer:   bearer,
		client:   client,
		logger:   logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *StreamHandler) Routes() []string {
	return []string{"/stream/"}
}

// ServeHTTP proxies GET /stream/{videoID} to the upstream stream endpoint.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	videoID := strings.TrimPrefix(r.URL.Path, "/stream/")
	if videoID == "" || strings.Contains(videoID, "/") {
		http.Error(w, "Invalid video id", http.StatusBadRequest)
		return
	}

	token, err := h.bearer()
	if err != nil {
		h.logger.Warn("stream proxy has no session", "error", err)
		http.Error(w, "Not signed in", http.StatusUnauthorized)
		return
	}

	target := fmt.Sprintf("%s/videos/%s/stream", h.upstream, videoID)
	upstreamReq, err := http.NewRequestWithContext(r.Context(), r.Method, target, nil)
	if err != nil {
		http.Error(w, "Bad gateway", http.StatusBadGateway)
		return
	}
	upstreamReq.Header.Set("Authorization", "Bearer "+token)
	if rng := r.Header.Get("Range"); rng != "" {
		upstreamReq.Header.Set("Range", rng)
	}

	resp, err := h.client.Do(upstreamReq)
	if err != nil {
		h.logger.Warn("stream proxy upstream failed", "video_id", videoID, "error", err)
		http.Error(w, "Bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for _, header := range passHeaders {
		if v := resp.Header.Get(header); v != "" {
			w.Header().Set(header, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Debug("stream copy interrupted", "video_id", videoID, "error", err)
	}
}
