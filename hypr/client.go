// Package hypr talks to the Hyprland control socket.
//
// Every request uses a fresh connection: write one command, read the reply
// until the compositor closes the connection.
package hypr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"
)

const (
	// SignatureEnv names the variable Hyprland exports to its clients.
	SignatureEnv = "HYPRLAND_INSTANCE_SIGNATURE"

	socketName = ".socket.sock"

	cmdActiveWorkspace   = "j/activeworkspace"
	cmdDispatchWorkspace = "dispatch workspace "
)

var (
	ErrConfigMissing = errors.New(SignatureEnv + " not set")
	ErrIO            = errors.New("compositor socket i/o failed")
	ErrProtocol      = errors.New("malformed compositor response")
)

// workspace is the subset of Hyprland's workspace object the bar reads.
type workspace struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
}

// SocketPath returns the control socket for a Hyprland instance.
func SocketPath(runtimeDir, signature string) (string, error) {
	if signature == "" {
		return "", ErrConfigMissing
	}
	return filepath.Join(runtimeDir, "hypr", signature, socketName), nil
}

// Client issues requests against one Hyprland instance.
type Client struct {
	runtimeDir string
	signature  string
	timeout    atomic.Int64 // time.Duration
	log        *slog.Logger
}

func NewClient(runtimeDir, signature string, timeout time.Duration, log *slog.Logger) *Client {
	c := &Client{runtimeDir: runtimeDir, signature: signature, log: log}
	c.SetTimeout(timeout)
	return c
}

// SetTimeout changes the per-request deadline. Zero disables it.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout.Store(int64(d))
}

// ActiveWorkspace returns the id of the focused workspace.
func (c *Client) ActiveWorkspace(ctx context.Context) (int, error) {
	out, err := c.request(ctx, cmdActiveWorkspace, true)
	if err != nil {
		return 0, err
	}
	return parseActiveWorkspace(out)
}

// SwitchWorkspace asks the compositor to focus workspace id. The reply is
// not read.
func (c *Client) SwitchWorkspace(ctx context.Context, id int) error {
	_, err := c.request(ctx, cmdDispatchWorkspace+strconv.Itoa(id), false)
	return err
}

func parseActiveWorkspace(out []byte) (int, error) {
	var ws workspace
	if err := json.Unmarshal(out, &ws); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	if ws.ID == nil {
		return 0, fmt.Errorf("%w: no id in %q", ErrProtocol, truncate(out, 64))
	}
	return *ws.ID, nil
}

func (c *Client) request(ctx context.Context, cmd string, wantReply bool) ([]byte, error) {
	path, err := SocketPath(c.runtimeDir, c.signature)
	if err != nil {
		return nil, err
	}
	if d := time.Duration(c.timeout.Load()); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	start := time.Now()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrIO, path, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := io.WriteString(conn, cmd); err != nil {
		return nil, fmt.Errorf("%w: write %q: %w", ErrIO, cmd, err)
	}
	if !wantReply {
		c.log.Debug("compositor request", "cmd", cmd, "took", time.Since(start))
		return nil, nil
	}
	// Half-close so a peer reading to EOF sees the end of the request.
	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}
	out, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("%w: read reply to %q: %w", ErrIO, cmd, err)
	}
	c.log.Debug("compositor request", "cmd", cmd, "bytes", len(out), "took", time.Since(start))
	return out, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
