// Package web serves the live feed to a browser: an HTML canvas page, a
// WebSocket pushing one PNG per decoded frame, and a JSON stats endpoint.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/krisvanner/doorscope/internal/frame"
	"github.com/krisvanner/doorscope/internal/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The feed is a local diagnostic tool; any origin may watch it.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Server exposes the decoded feed over HTTP. It implements viewer.Sink.
type Server struct {
	addr  string
	stats func() frame.Stats
	hub   *hub
}

// NewServer creates a feed server. stats is polled by the /api/stats
// endpoint.
func NewServer(addr string, stats func() frame.Stats) *Server {
	return &Server{
		addr:  addr,
		stats: stats,
		hub:   newHub(),
	}
}

// SetFrame encodes img as PNG and broadcasts it to connected clients. The
// encode is skipped entirely while nobody is watching.
func (s *Server) SetFrame(img *image.Gray) {
	if s.hub.clientCount() == 0 {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Error("encode feed frame", "err", err)
		return
	}
	s.hub.send(buf.Bytes())
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleFeed)
	mux.HandleFunc("/api/stats", s.handleStats)

	srv := &http.Server{Addr: s.addr, Handler: mux}

	go s.hub.run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("web feed listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.stats())
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("feed upgrade failed", "err", err)
		return
	}

	c := newClient()
	s.hub.register <- c

	go func() {
		defer conn.Close()
		for data := range c.send {
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		}
	}()

	// Drain the connection so close frames are handled; the feed is
	// one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case s.hub.unregister <- c:
	case <-r.Context().Done():
	}
	conn.Close()
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>doorscope feed</title>
<style>
body { background: #111; color: #ccc; font-family: monospace; text-align: center; }
canvas { image-rendering: pixelated; width: 480px; background: #000; margin-top: 1em; }
pre { color: #8c8; }
</style>
</head>
<body>
<h3>Live Grayscale Feed</h3>
<canvas id="feed"></canvas>
<pre id="stats"></pre>
<script>
const canvas = document.getElementById("feed");
const ctx = canvas.getContext("2d");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = async (ev) => {
  const bmp = await createImageBitmap(ev.data);
  canvas.width = bmp.width;
  canvas.height = bmp.height;
  ctx.drawImage(bmp, 0, 0);
};
setInterval(async () => {
  const res = await fetch("/api/stats");
  document.getElementById("stats").textContent = JSON.stringify(await res.json(), null, 1);
}, 1000);
</script>
</body>
</html>
`
