// Package flrig talks to an flrig rig-control server over XML-RPC.
package flrig

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/rpc"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"
)

const (
	DefaultURL     = "http://localhost:12345"
	DefaultTimeout = 5 * time.Second
)

// Kind classifies a failed command.
type Kind string

const (
	// KindTransport: flrig unreachable, timed out, or the call was cancelled.
	KindTransport Kind = "transport"
	// KindFault: flrig answered with an XML-RPC fault.
	KindFault Kind = "fault"
	// KindProtocol: the answer could not be interpreted.
	KindProtocol Kind = "protocol"
)

// CommandError is the failure half of every command result.
type CommandError struct {
	Command string
	Kind    Kind
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("flrig %s: %s error: %v", e.Command, e.Kind, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// KindOf returns the Kind of a CommandError, or "" for any other error.
func KindOf(err error) Kind {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// Config configures the flrig client.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client issues flrig commands. Each method is one request/response exchange.
type Client struct {
	url       string
	transport http.RoundTripper

	mu  sync.Mutex
	rpc *xmlrpc.Client
}

// NewClient returns a client for cfg.URL. No connection is made until the first command.
func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		url: cfg.URL,
		transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: cfg.Timeout}).DialContext,
			ResponseHeaderTimeout: cfg.Timeout,
			MaxIdleConnsPerHost:   1,
		},
	}
}

// URL returns the server address.
func (c *Client) URL() string { return c.url }

// Close drops the underlying RPC client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rpc == nil {
		return nil
	}
	err := c.rpc.Close()
	c.rpc = nil
	return err
}

func (c *Client) conn() (*xmlrpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rpc == nil {
		cl, err := xmlrpc.NewClient(c.url, c.transport)
		if err != nil {
			return nil, err
		}
		c.rpc = cl
	}
	return c.rpc, nil
}

// reset forgets cl after a transport failure so the next command starts fresh.
func (c *Client) reset(cl *xmlrpc.Client) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rpc == cl {
		_ = c.rpc.Close()
		c.rpc = nil
	}
}

// call runs one XML-RPC method. arg may be nil for no parameters; reply may be
// nil to discard the response value.
func (c *Client) call(ctx context.Context, method string, arg, reply any) error {
	if err := ctx.Err(); err != nil {
		return &CommandError{Command: method, Kind: KindTransport, Err: err}
	}
	cl, err := c.conn()
	if err != nil {
		return &CommandError{Command: method, Kind: KindTransport, Err: err}
	}

	call := cl.Go(method, arg, reply, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return &CommandError{Command: method, Kind: KindTransport, Err: ctx.Err()}
	case done := <-call.Done:
		if done.Error == nil {
			return nil
		}
		var fault rpc.ServerError
		switch {
		case errors.As(done.Error, &fault) && !strings.HasPrefix(string(fault), "request error"):
			return &CommandError{Command: method, Kind: KindFault, Err: done.Error}
		case strings.HasPrefix(done.Error.Error(), "reading body"):
			return &CommandError{Command: method, Kind: KindProtocol, Err: done.Error}
		default:
			c.reset(cl)
			return &CommandError{Command: method, Kind: KindTransport, Err: done.Error}
		}
	}
}

func (c *Client) getString(ctx context.Context, method string) (string, error) {
	var s string
	if err := c.call(ctx, method, nil, &s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// VFO returns the current VFO frequency in Hz.
func (c *Client) VFO(ctx context.Context) (float64, error) {
	s, err := c.getString(ctx, "rig.get_vfo")
	if err != nil {
		return 0, err
	}
	hz, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &CommandError{Command: "rig.get_vfo", Kind: KindProtocol, Err: err}
	}
	return hz, nil
}

// SetVFO sets the current VFO frequency in Hz.
func (c *Client) SetVFO(ctx context.Context, hz float64) error {
	return c.call(ctx, "rig.set_vfo", hz, nil)
}

// Mode returns the mode of the current VFO.
func (c *Client) Mode(ctx context.Context) (string, error) {
	return c.getString(ctx, "rig.get_mode")
}

// SetMode sets the mode of the current VFO. The value must be one flrig knows for the rig.
func (c *Client) SetMode(ctx context.Context, mode string) error {
	return c.call(ctx, "rig.set_mode", mode, nil)
}

// Modes lists the mode names supported by the connected rig.
func (c *Client) Modes(ctx context.Context) ([]string, error) {
	var modes []string
	if err := c.call(ctx, "rig.get_modes", nil, &modes); err != nil {
		return nil, err
	}
	return modes, nil
}

// Transceiver returns the rig name configured in flrig.
func (c *Client) Transceiver(ctx context.Context) (string, error) {
	return c.getString(ctx, "rig.get_xcvr")
}

// Version returns the flrig version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	return c.getString(ctx, "main.get_version")
}
