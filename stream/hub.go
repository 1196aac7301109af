// Package stream broadcasts live keyframe samples to WebSocket clients and
// serves dense curve samples over HTTP.
package stream

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/phanxgames/keyframe"
)

// Frame is one tick of the live sampling loop.
type Frame struct {
	Seq    uint64             `json:"seq"`
	Time   float64            `json:"time"`
	Values map[string]float64 `json:"values"`
}

// Curve is the response body of the curve endpoint.
type Curve struct {
	Track    string            `json:"track"`
	Duration float64           `json:"duration"`
	Samples  []keyframe.Sample `json:"samples"`
}

const (
	defaultResolution = 100
	maxResolution     = 10000
	writeTimeout      = time.Second
	sendBuffer        = 16
)

// client is one WebSocket connection with its own writer goroutine, so a
// stalled connection only delays itself. Frames it cannot take in time are
// not queued indefinitely: once send is full the client is dropped.
type client struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte
}

// Hub owns a set of named timelines and the clients watching them.
// Timelines are immutable, so the sampling loop and HTTP handlers read them
// without locking; mu only guards the client set and is never held while
// writing to a connection.
type Hub struct {
	names  []string
	tracks map[string]*keyframe.Timeline
	loop   bool

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates a hub for tracks, reported in the order given by names.
// Names without a timeline are dropped. With loop set, each track restarts
// once it reaches its end.
func NewHub(names []string, tracks map[string]*keyframe.Timeline, loop bool) *Hub {
	h := &Hub{
		tracks:  make(map[string]*keyframe.Timeline, len(tracks)),
		loop:    loop,
		clients: map[*client]struct{}{},
	}
	for _, name := range names {
		if tl, ok := tracks[name]; ok {
			h.names = append(h.names, name)
			h.tracks[name] = tl
		}
	}
	return h
}

// Names returns the track names in report order.
func (h *Hub) Names() []string { return h.names }

// Frame samples every track elapsed seconds after the hub started.
func (h *Hub) Frame(seq uint64, elapsed float64) Frame {
	f := Frame{Seq: seq, Time: elapsed, Values: make(map[string]float64, len(h.names))}
	for _, name := range h.names {
		tl := h.tracks[name]
		t := elapsed
		if h.loop && tl.Duration() > 0 {
			t = math.Mod(elapsed, tl.Duration())
		}
		f.Values[name] = tl.ValueAtTime(t)
	}
	return f
}

// Run samples every track fps times per second and broadcasts the frames
// until ctx is done. It returns ctx.Err().
func (h *Hub) Run(ctx context.Context, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(max(1, fps)))
	defer ticker.Stop()

	start := time.Now()
	var seq uint64
	for {
		select {
		case <-ctx.Done():
			h.closeClients()
			return ctx.Err()
		case now := <-ticker.C:
			seq++
			h.broadcast(h.Frame(seq, now.Sub(start).Seconds()))
		}
	}
}

// Clients returns the number of connected WebSocket clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast(f Frame) {
	msg, err := json.Marshal(f)
	if err != nil {
		log.Error().Err(err).Msg("encode frame")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Debug().Str("remote", c.remote).Msg("drop slow client")
			h.removeLocked(c)
		}
	}
}

// removeLocked unregisters c and stops its writer, which closes the
// connection. h.mu must be held.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

func (h *Hub) closeClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeTimeout))
		h.removeLocked(c)
	}
}

// writeLoop sends queued frames to c until it is removed or a write fails.
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Debug().Err(err).Str("remote", c.remote).Msg("drop client")
			h.remove(c)
			return
		}
	}
}

// HandleWS upgrades the request to a WebSocket that receives every frame.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := &client{conn: conn, remote: conn.RemoteAddr().String(), send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Info().Str("remote", c.remote).Msg("client connected")

	go h.writeLoop(c)

	// Clients only listen; read until the connection goes away so close
	// frames are processed.
	go func() {
		defer func() {
			h.remove(c)
			log.Info().Str("remote", c.remote).Msg("client disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleCurve serves GET /curve?track=NAME&n=100 with n+1 evenly spaced
// samples of the track.
func (h *Hub) HandleCurve(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("track")
	tl, ok := h.tracks[name]
	if !ok {
		http.Error(w, "unknown track", http.StatusNotFound)
		return
	}

	n := defaultResolution
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > maxResolution {
			http.Error(w, "n must be between 1 and 10000", http.StatusBadRequest)
			return
		}
		n = v
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Curve{Track: name, Duration: tl.Duration(), Samples: tl.Sample(n)}); err != nil {
		log.Warn().Err(err).Str("track", name).Msg("write curve")
	}
}

// Handler returns a mux serving /ws and /curve.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleWS)
	mux.HandleFunc("/curve", h.HandleCurve)
	return mux
}
