package cli

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServeCmd_Flags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)
}

func TestServeCmd_RunsUntilCancelled(t *testing.T) {
	s := setupTestServices(t)
	watcher := &MockWatcher{}
	s.Watcher = watcher
	addr := freeAddr(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	rootCmd.SetArgs([]string{"serve", "--addr", addr})
	out := new(syncBuffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	err := rootCmd.ExecuteContext(ctx)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "listening on http://"+addr)
	assert.Equal(t, int32(1), watcher.runs.Load())
}

func TestServeCmd_UsesConfiguredAddr(t *testing.T) {
	s := setupTestServices(t)
	s.Addr = freeAddr(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	rootCmd.SetArgs([]string{"serve"})
	out := new(syncBuffer)
	rootCmd.SetOut(out)
	err := rootCmd.ExecuteContext(ctx)

	require.NoError(t, err)
	assert.Contains(t, out.String(), s.Addr)
}

func TestServeCmd_RequiresChat(t *testing.T) {
	s := setupTestServices(t)
	s.Chat = nil

	_, err := execute(t, "", "serve")

	assert.Error(t, err)
}
