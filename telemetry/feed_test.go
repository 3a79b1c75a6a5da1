package telemetry

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/platform2d/engine"
	"github.com/lixenwraith/platform2d/physics"
	"github.com/lixenwraith/platform2d/vmath"
)

func testScene(t *testing.T) *engine.BaseScene {
	t.Helper()
	s := engine.NewBaseScene("demo")
	s.SetWorld(physics.NewWorld(vmath.V2(0, 0.981), vmath.NewRect(0, 0, 320, 200)))
	s.Add(engine.NewEntity("player").At(10, 20).Size(16, 16).WithVelocity(1, -1).WithForce(vmath.V2(0.5, 0)).MustBuild())
	return &s
}

func TestSnapshot(t *testing.T) {
	s := testScene(t)
	f := SceneFrame("sess", 7, s)

	require.Equal(t, MessageTypeFrame, f.Type)
	require.Equal(t, "demo", f.Scene)
	require.Equal(t, Vec{0, 0.981}, f.Gravity)
	require.Len(t, f.Entities, 1)

	es := f.Entities[0]
	assert.Equal(t, "player", es.Name)
	assert.Equal(t, "box", es.Kind)
	assert.Equal(t, [4]float64{10, 20, 16, 16}, es.Rect)
	assert.Equal(t, Vec{1, -1}, es.Velocity)
	assert.Equal(t, []Vec{{0.5, 0}}, es.Forces)
	assert.Equal(t, physics.DefaultMaterial.Name, es.Material)
	assert.True(t, es.Active)
}

func TestFeedStreamsFrames(t *testing.T) {
	feed := NewFeed(nil, 5, 320, 200)
	srv := httptest.NewServer(feed)
	defer srv.Close()
	defer feed.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello Hello
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, MessageTypeHello, hello.Type)
	assert.Equal(t, feed.Session(), hello.Session)
	_, err = uuid.Parse(hello.Client)
	assert.NoError(t, err)
	assert.Equal(t, 5, hello.Every)

	require.Eventually(t, func() bool { return feed.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx := engine.NewGameContext(nil, 320, 200)
	s := testScene(t)

	// Frame 3 is skipped, frame 5 is published
	ctx.FrameNumber.Store(3)
	feed.Render(ctx, s)
	ctx.FrameNumber.Store(5)
	feed.Render(ctx, s)

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var frame Frame
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, int64(5), frame.Frame)
	require.Len(t, frame.Entities, 1)
	assert.Equal(t, "player", frame.Entities[0].Name)
}

func TestPublishNeverBlocks(t *testing.T) {
	feed := NewFeed(nil, 1, 320, 200)
	feed.clients["slow"] = &client{id: "slow", send: make(chan []byte)}

	done := make(chan struct{})
	go func() {
		feed.Publish(Frame{Type: MessageTypeFrame})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full client")
	}
	assert.Equal(t, int64(1), feed.Dropped())
}
