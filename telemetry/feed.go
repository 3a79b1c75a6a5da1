package telemetry

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/platform2d/core"
	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/log"
)

const (
	DefaultEvery      = 10
	DefaultBufferSize = 16
	writeWait         = time.Second
	pingInterval      = 2 * time.Second
)

// client is one websocket subscriber, only its writer goroutine writes to conn
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Feed streams scene snapshots to websocket subscribers
// Render never blocks: a client whose buffer is full misses the frame
type Feed struct {
	upgrader websocket.Upgrader
	log      log.Log
	session  string
	every    int64
	width    float64
	height   float64

	mu      sync.RWMutex
	clients map[string]*client

	dropped atomic.Int64
}

var _ engine.Renderer = (*Feed)(nil)

// NewFeed creates a feed publishing every n frames, width and height describe the logical buffer
func NewFeed(logger log.Log, every int, width, height float64) *Feed {
	if logger == nil {
		logger = log.Nop()
	}
	if every <= 0 {
		every = DefaultEvery
	}
	return &Feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     logger,
		session: uuid.NewString(),
		every:   int64(every),
		width:   width,
		height:  height,
		clients: make(map[string]*client),
	}
}

// Session returns the feed session id sent in every hello
func (f *Feed) Session() string { return f.session }

// Clients returns the number of connected subscribers
func (f *Feed) Clients() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Dropped returns the number of frames skipped for slow clients
func (f *Feed) Dropped() int64 { return f.dropped.Load() }

// ServeHTTP upgrades the request and serves the subscriber until it disconnects
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("telemetry upgrade failed", log.Err(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, DefaultBufferSize),
		done: make(chan struct{}),
	}

	hello, err := json.Marshal(Hello{
		Type:    MessageTypeHello,
		Session: f.session,
		Client:  c.id,
		Width:   f.width,
		Height:  f.height,
		Every:   int(f.every),
	})
	if err != nil {
		c.close()
		return
	}
	c.send <- hello

	f.mu.Lock()
	f.clients[c.id] = c
	f.mu.Unlock()
	f.log.Info("telemetry client connected", log.String("client", c.id), log.String("remote", r.RemoteAddr))

	core.Go(func() { f.writeLoop(c) })
	f.readLoop(c)

	f.mu.Lock()
	delete(f.clients, c.id)
	f.mu.Unlock()
	c.close()
	f.log.Info("telemetry client disconnected", log.String("client", c.id))
}

// readLoop drains control frames until the connection fails
func (f *Feed) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) writeLoop(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer c.close()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Render publishes the scene on every n-th frame
func (f *Feed) Render(ctx *engine.GameContext, s engine.Scene) {
	frame := ctx.FrameNumber.Load()
	if frame%f.every != 0 || f.Clients() == 0 {
		return
	}
	f.Publish(SceneFrame(f.session, frame, s))
}

// Publish sends one frame to every subscriber without blocking
func (f *Feed) Publish(frame Frame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		f.log.Error("telemetry marshal failed", log.Err(err))
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.clients {
		select {
		case c.send <- msg:
		default:
			f.dropped.Add(1)
		}
	}
}

// Close disconnects every subscriber
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.clients {
		c.close()
		delete(f.clients, id)
	}
}
