package realtime

import (
	"encoding/json"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWSChannel_SendAndClose(t *testing.T) {
	t.Run("queued frames are kept in order", func(t *testing.T) {
		ch := newWSChannel(nil, zerolog.Nop())

		assert.True(t, ch.Send([]byte("a")))
		assert.True(t, ch.Send([]byte("b")))
		assert.Equal(t, []byte("a"), <-ch.send)
		assert.Equal(t, []byte("b"), <-ch.send)
	})

	t.Run("full queue refuses without blocking", func(t *testing.T) {
		ch := newWSChannel(nil, zerolog.Nop())
		for i := 0; i < sendBufferSize; i++ {
			require.True(t, ch.Send([]byte("x")))
		}

		assert.False(t, ch.Send([]byte("overflow")))
	})

	t.Run("send after close is refused and close is idempotent", func(t *testing.T) {
		ch := newWSChannel(nil, zerolog.Nop())
		ch.Close()

		assert.False(t, ch.Send([]byte("late")))
		assert.NotPanics(t, ch.Close)

		_, open := <-ch.send
		assert.False(t, open)
	})
}

type socketServer struct {
	registry *Registry
	addr     string
}

func startSocketServer(t *testing.T, auth Authenticator) *socketServer {
	t.Helper()

	registry := NewRegistry(zerolog.Nop())
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/socket", UpgradeRequired, NewHandler(registry, auth, zerolog.Nop()))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()

	t.Cleanup(func() {
		registry.Close()
		_ = app.Shutdown()
	})
	return &socketServer{registry: registry, addr: ln.Addr().String()}
}

func (s *socketServer) dial(t *testing.T) *fws.Conn {
	t.Helper()
	conn, _, err := fws.DefaultDialer.Dial("ws://"+s.addr+"/socket", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *fws.Conn) inboundEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev inboundEvent
	require.NoError(t, json.Unmarshal(frame, &ev))
	return ev
}

func TestSocketHandler(t *testing.T) {
	userID := uuid.New()
	server := startSocketServer(t, stubAuthenticator{tokens: map[string]uuid.UUID{"good": userID}})

	t.Run("handshake, push and removal on disconnect", func(t *testing.T) {
		conn := server.dial(t)

		require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(`{"event":"authenticate","data":"good"}`)))
		assert.Equal(t, EventAuthenticated, readEvent(t, conn).Name)
		require.Len(t, server.registry.Lookup(userID), 1)

		delivered := server.registry.SendTo(userID, Event{Name: EventNewNotification, Data: map[string]string{"title": "hola"}})
		assert.Equal(t, 1, delivered)

		ev := readEvent(t, conn)
		assert.Equal(t, EventNewNotification, ev.Name)
		assert.JSONEq(t, `{"title":"hola"}`, string(ev.Data))

		require.NoError(t, conn.Close())
		assert.Eventually(t, func() bool {
			return len(server.registry.Lookup(userID)) == 0
		}, 5*time.Second, 20*time.Millisecond)
	})

	t.Run("invalid token gets auth_error and the server closes", func(t *testing.T) {
		conn := server.dial(t)

		require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(`{"event":"authenticate","data":"bad"}`)))
		assert.Equal(t, EventAuthError, readEvent(t, conn).Name)

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		_, _, err := conn.ReadMessage()
		assert.True(t, fws.IsCloseError(err, fws.CloseNormalClosure, fws.CloseNoStatusReceived), "unexpected read result: %v", err)
		assert.Equal(t, 0, server.registry.Count())
	})

	t.Run("unauthenticated connection is not registered", func(t *testing.T) {
		conn := server.dial(t)

		require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(`{"event":"ping"}`)))
		assert.Never(t, func() bool {
			return server.registry.Count() > 0
		}, 200*time.Millisecond, 20*time.Millisecond)
		assert.Equal(t, 0, server.registry.Broadcast(Event{Name: EventNewPublication}))
	})
}

func TestUpgradeRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/socket", UpgradeRequired, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/socket", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
