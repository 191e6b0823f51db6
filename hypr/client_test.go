package hypr_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/sokolawesome/forgebar/hypr"
	"github.com/sokolawesome/forgebar/hypr/hyprtest"
	"github.com/stretchr/testify/require"
)

func TestSocketPath(t *testing.T) {
	req := require.New(t)

	path, err := hypr.SocketPath("/run/user/1234", "abc123")
	req.NoError(err)
	req.Equal(filepath.Join("/run/user/1234", "hypr", "abc123", ".socket.sock"), path)

	_, err = hypr.SocketPath("/run/user/1234", "")
	req.ErrorIs(err, hypr.ErrConfigMissing)
}

func TestClient_ActiveWorkspace(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    int
		wantErr error
	}{
		{name: "in range", reply: `{"id":3,"name":"three"}`, want: 3},
		{name: "out of range", reply: `{"id":42,"name":"x"}`, want: 42},
		{name: "negative special workspace", reply: `{"id":-98,"name":"special:scratch"}`, want: -98},
		{name: "extra fields", reply: `{"id":5,"name":"5","monitor":"DP-1","windows":2,"hasfullscreen":false}`, want: 5},
		{name: "not json", reply: `hello`, wantErr: hypr.ErrProtocol},
		{name: "missing id", reply: `{"name":"x"}`, wantErr: hypr.ErrProtocol},
		{name: "empty reply", reply: ``, wantErr: hypr.ErrProtocol},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			srv := hyprtest.NewServer(t, "abc123")
			srv.SetReply(tt.reply)
			c := hypr.NewClient(srv.RuntimeDir, srv.Signature, time.Second, slog.Default())

			id, err := c.ActiveWorkspace(context.Background())
			if tt.wantErr != nil {
				req.ErrorIs(err, tt.wantErr)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, id)
			req.Equal([]string{"j/activeworkspace"}, srv.Requests())
		})
	}
}

func TestClient_SwitchWorkspace(t *testing.T) {
	req := require.New(t)
	srv := hyprtest.NewServer(t, "abc123")
	c := hypr.NewClient(srv.RuntimeDir, srv.Signature, time.Second, slog.Default())

	req.NoError(c.SwitchWorkspace(context.Background(), 5))

	// Exactly the dispatch bytes, no trailing newline, on its own connection.
	req.Equal("dispatch workspace 5", srv.WaitRequest(t, time.Second))
	req.Equal(1, srv.Connections())
}

func TestClient_FreshConnectionPerRequest(t *testing.T) {
	req := require.New(t)
	srv := hyprtest.NewServer(t, "abc123")
	srv.SetReply(`{"id":1,"name":"1"}`)
	c := hypr.NewClient(srv.RuntimeDir, srv.Signature, time.Second, slog.Default())

	for i := 0; i < 3; i++ {
		_, err := c.ActiveWorkspace(context.Background())
		req.NoError(err)
	}
	req.Equal(3, srv.Connections())
}

func TestClient_MissingSignature(t *testing.T) {
	req := require.New(t)
	c := hypr.NewClient(t.TempDir(), "", time.Second, slog.Default())

	_, err := c.ActiveWorkspace(context.Background())
	req.ErrorIs(err, hypr.ErrConfigMissing)

	err = c.SwitchWorkspace(context.Background(), 2)
	req.ErrorIs(err, hypr.ErrConfigMissing)
}

func TestClient_NoSocket(t *testing.T) {
	req := require.New(t)
	c := hypr.NewClient(t.TempDir(), "nobody", time.Second, slog.Default())

	_, err := c.ActiveWorkspace(context.Background())
	req.ErrorIs(err, hypr.ErrIO)

	err = c.SwitchWorkspace(context.Background(), 2)
	req.ErrorIs(err, hypr.ErrIO)
}

func TestClient_CancelledContext(t *testing.T) {
	req := require.New(t)
	srv := hyprtest.NewServer(t, "abc123")
	c := hypr.NewClient(srv.RuntimeDir, srv.Signature, time.Second, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ActiveWorkspace(ctx)
	req.ErrorIs(err, hypr.ErrIO)
}

func TestClient_TimeoutOnStalledCompositor(t *testing.T) {
	req := require.New(t)
	srv := hyprtest.NewServer(t, "abc123")
	srv.Stall()
	c := hypr.NewClient(srv.RuntimeDir, srv.Signature, 200*time.Millisecond, slog.Default())

	start := time.Now()
	_, err := c.ActiveWorkspace(context.Background())
	took := time.Since(start)
	req.ErrorIs(err, hypr.ErrIO)
	req.GreaterOrEqual(took, 150*time.Millisecond)
	req.Less(took, time.Second)

	// A shorter timeout applies to the next request.
	c.SetTimeout(50 * time.Millisecond)
	start = time.Now()
	_, err = c.ActiveWorkspace(context.Background())
	req.ErrorIs(err, hypr.ErrIO)
	req.Less(time.Since(start), 150*time.Millisecond)
}

func TestClient_SwitchDoesNotWaitForReply(t *testing.T) {
	req := require.New(t)
	srv := hyprtest.NewServer(t, "abc123")
	srv.Stall()
	c := hypr.NewClient(srv.RuntimeDir, srv.Signature, 2*time.Second, slog.Default())

	// The dispatch reply is discarded, so a hung compositor cannot hold the
	// click worker for the whole timeout.
	start := time.Now()
	req.NoError(c.SwitchWorkspace(context.Background(), 3))
	req.Less(time.Since(start), 500*time.Millisecond)
	req.Equal("dispatch workspace 3", srv.WaitRequest(t, time.Second))
}

func TestClient_ContextDeadlineBeatsTimeout(t *testing.T) {
	req := require.New(t)
	srv := hyprtest.NewServer(t, "abc123")
	srv.Stall()
	c := hypr.NewClient(srv.RuntimeDir, srv.Signature, 5*time.Second, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.ActiveWorkspace(ctx)
	req.ErrorIs(err, hypr.ErrIO)
	req.Less(time.Since(start), time.Second)
}
