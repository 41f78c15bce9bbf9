package appliance

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/wfirexctl/internal/protocol"
)

// DefaultPort is the TCP port IR appliances listen on.
const DefaultPort = 60001

// Config bounds each phase of one send. A zero timeout leaves that phase
// bounded only by the caller's context.
type Config struct {
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
}

// DefaultConfig returns the timeouts used when none are configured.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: 5 * time.Second,
		WriteTimeout:   5 * time.Second,
		ReadTimeout:    5 * time.Second,
	}
}

// Address joins an appliance host with port, defaulting to DefaultPort.
func Address(host string, port int) string {
	if port <= 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(strings.TrimSpace(host), strconv.Itoa(port))
}

// Client performs one connect/write/ack exchange per Send. It holds no
// connection state and is safe for concurrent use.
type Client struct {
	cfg Config
}

// NewClient constructs a client with cfg.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Send transmits waveform to the appliance at addr and waits for its
// acknowledgement. It makes exactly one attempt; all failures are *Error.
func (c *Client) Send(ctx context.Context, addr string, waveform []byte) error {
	frame, err := protocol.Encode(waveform)
	if err != nil {
		return &Error{Kind: KindEncode, Addr: addr, Err: err}
	}

	dialer := net.Dialer{Timeout: c.cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return classify(addr, KindConnect, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if err := armDeadline(ctx, conn, conn.SetWriteDeadline, c.cfg.WriteTimeout); err != nil {
		return &Error{Kind: KindWrite, Addr: addr, Err: err}
	}
	n, err := conn.Write(frame)
	if err == nil && n != len(frame) {
		err = fmt.Errorf("%w: wrote %d of %d bytes", io.ErrShortWrite, n, len(frame))
	}
	if err != nil {
		return classify(addr, KindWrite, ctxErr(ctx, err))
	}

	if err := armDeadline(ctx, conn, conn.SetReadDeadline, c.cfg.ReadTimeout); err != nil {
		return &Error{Kind: KindRead, Addr: addr, Err: err}
	}
	if err := protocol.ReadAck(conn); err != nil {
		if protocol.IsAckError(err) {
			return &Error{Kind: KindProtocol, Addr: addr, Err: err}
		}
		return classify(addr, KindRead, ctxErr(ctx, err))
	}
	return nil
}

// armDeadline sets a phase deadline. A cancellation that landed before the
// set would otherwise be overwritten, so the context is rechecked after.
func armDeadline(ctx context.Context, conn net.Conn, set func(time.Time) error, timeout time.Duration) error {
	if err := set(deadline(ctx, timeout)); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return conn.SetDeadline(time.Now())
	}
	return nil
}

// deadline picks the earlier of now+timeout and the context deadline. The
// zero time means no deadline.
func deadline(ctx context.Context, timeout time.Duration) time.Time {
	var d time.Time
	if timeout > 0 {
		d = time.Now().Add(timeout)
	}
	if cd, ok := ctx.Deadline(); ok && (d.IsZero() || cd.Before(d)) {
		d = cd
	}
	return d
}

// ctxErr prefers the context's error when cancellation forced the deadline.
func ctxErr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return fmt.Errorf("%w: %v", cerr, err)
	}
	return err
}
