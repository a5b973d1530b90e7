package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

func dialChat(t *testing.T, ports *Ports) *websocket.Conn {
	t.Helper()
	server := newTestServer(t, ports)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) socketFrame {
	t.Helper()
	var frame socketFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestServer_ChatSocket(t *testing.T) {
	session := &mockSession{mode: domain.ChatModeNormal}
	conn := dialChat(t, &Ports{Sessions: func() driving.ChatSession { return session }})

	hello := readFrame(t, conn)
	assert.Equal(t, frameSuggestions, hello.Type)
	assert.Len(t, hello.Suggestions, SuggestionCount)

	require.NoError(t, conn.WriteJSON(socketRequest{Query: "How warm is it?"}))
	reply := readFrame(t, conn)
	require.Equal(t, frameMessage, reply.Type)
	require.NotNil(t, reply.Message)
	assert.Equal(t, domain.RoleAssistant, reply.Message.Role)
	assert.Equal(t, "normal: How warm is it?", reply.Message.Content)
	assert.NotEmpty(t, reply.Suggestions)

	require.NoError(t, conn.WriteJSON(socketRequest{Query: "Go deeper", Mode: "deeper"}))
	reply = readFrame(t, conn)
	require.Equal(t, frameMessage, reply.Type)
	assert.Equal(t, "deeper: Go deeper", reply.Message.Content)

	assert.Len(t, session.Messages(), 4)
}

func TestServer_ChatSocketErrors(t *testing.T) {
	session := &mockSession{}
	conn := dialChat(t, &Ports{Sessions: func() driving.ChatSession { return session }})
	readFrame(t, conn)

	t.Run("malformed frame keeps the connection open", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
		frame := readFrame(t, conn)
		assert.Equal(t, frameError, frame.Type)
		assert.Contains(t, frame.Error, "invalid input")
	})

	t.Run("unknown mode", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(socketRequest{Query: "x", Mode: "turbo"}))
		frame := readFrame(t, conn)
		assert.Equal(t, frameError, frame.Type)
		assert.Contains(t, frame.Error, "unknown chat mode")
	})

	t.Run("failure carries the user message", func(t *testing.T) {
		session.setErr(domain.NewUserError(domain.MsgChatFailure, domain.ErrUpstreamModel))
		require.NoError(t, conn.WriteJSON(socketRequest{Query: "x"}))
		frame := readFrame(t, conn)
		assert.Equal(t, frameError, frame.Type)
		assert.Equal(t, domain.MsgChatFailure, frame.Error)
	})
}

func TestServer_ChatSocketSessionsPerConnection(t *testing.T) {
	var created atomic.Int32
	factory := func() driving.ChatSession {
		created.Add(1)
		return &mockSession{}
	}
	server := newTestServer(t, &Ports{Sessions: factory})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/chat"

	for i := 0; i < 2; i++ {
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		resp.Body.Close()
		readFrame(t, conn)
		conn.Close()
	}
	assert.Equal(t, int32(2), created.Load())
}

func TestServer_ChatSocketUnconfigured(t *testing.T) {
	server := newTestServer(t, &Ports{})
	rec := serve(t, server, http.MethodGet, "/ws/chat", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnswerFrame(t *testing.T) {
	session := &mockSession{}

	frame := answerFrame(context.Background(), session, []byte(`{"query":""}`))

	assert.Equal(t, frameError, frame.Type)
	assert.Nil(t, frame.Message)
}
