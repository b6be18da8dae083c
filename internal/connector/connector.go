package connector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kvs_client/internal/shared"
	"kvs_client/internal/shared/config"
	"kvs_client/internal/shared/logger"
	"kvs_client/internal/shared/types"
)

// Result describes one completed exchange.
type Result struct {
	TraceID       string
	Text          string
	BytesSent     uint64
	BytesReceived uint64
}

// Connector performs a single connect, send, receive, print cycle against
// the configured endpoint. It holds no connection state between calls.
type Connector struct {
	config *types.Config
	logger zerolog.Logger
}

// New 创建 Connector。cfg 为 nil 时使用 config.Default()。
func New(cfg *types.Config) *Connector {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Connector{
		config: cfg,
		logger: logger.WithComponent("connector"),
	}
}

// OpenConnection dials localhost:port over IPv4 TCP with the default dial
// options. The caller owns the returned connection and must close it.
func OpenConnection(ctx context.Context, port int) (net.Conn, error) {
	cfg := config.Default()
	cfg.EndpointConf.Port = port
	return New(cfg).Open(ctx)
}

// Open dials the configured endpoint. There is no retry; any failure is
// reported as ErrConnection.
func (c *Connector) Open(ctx context.Context) (net.Conn, error) {
	addr := c.config.EndpointConf.Address()
	conn, err := dial(ctx, c.config.DialConf, addr)
	if err != nil {
		return nil, newOpError(ErrConnection, addr, err)
	}
	c.logger.Debug().
		Str("remote", conn.RemoteAddr().String()).
		Str("local", conn.LocalAddr().String()).
		Msg("connected")
	return conn, nil
}

// Run opens a connection, performs one Exchange on it and closes it on every
// exit path.
func (c *Connector) Run(ctx context.Context, out io.Writer) (*Result, error) {
	conn, err := c.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			c.logger.Debug().Err(cerr).Msg("close after exchange")
		}
	}()
	return c.Exchange(conn, out)
}

// Exchange writes the payload once, reads at most BufferSize bytes once,
// validates them as UTF-8 and prints them followed by a newline to out.
// A response longer than the buffer is truncated, never drained. conn is not
// used again after the read, and Exchange does not close it.
func (c *Connector) Exchange(conn net.Conn, out io.Writer) (*Result, error) {
	traceID := uuid.NewString()
	addr := c.config.EndpointConf.Address()
	if ra := conn.RemoteAddr(); ra != nil {
		addr = ra.String()
	}
	log := c.logger.With().Str("trace_id", traceID).Str("remote", addr).Logger()

	counted := shared.NewCountedConn(conn)
	if timeout := c.config.DialConf.IOTimeout(); timeout > 0 {
		if err := counted.SetDeadline(time.Now().Add(timeout)); err != nil {
			log.Debug().Err(err).Msg("failed to set io deadline")
		}
	}

	payload := []byte(c.config.ExchangeConf.Payload)
	n, err := counted.Write(payload)
	if err == nil && n < len(payload) {
		err = io.ErrShortWrite
	}
	if err != nil {
		log.Warn().Err(err).Int("written", n).Int("payload_len", len(payload)).Msg("payload write failed")
		return nil, newOpError(ErrWrite, addr, err)
	}

	buf := make([]byte, c.config.ExchangeConf.BufferSize)
	n, err = counted.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.ErrNoProgress
		}
		log.Warn().Err(err).Msg("no response from peer")
		return nil, newOpError(ErrRead, addr, err)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		log.Debug().Err(err).Int("received", n).Msg("read returned data with an error, keeping data")
	}

	text, err := decodeText(buf[:n])
	if err != nil {
		log.Warn().Err(err).Msg("response is not valid UTF-8")
		return nil, newOpError(ErrDecode, addr, err)
	}

	if _, err := fmt.Fprintln(out, text); err != nil {
		return nil, fmt.Errorf("failed to print response: %w", err)
	}

	result := &Result{
		TraceID:       traceID,
		Text:          text,
		BytesSent:     counted.BytesSent(),
		BytesReceived: counted.BytesReceived(),
	}
	log.Info().
		Uint64("bytes_sent", result.BytesSent).
		Uint64("bytes_received", result.BytesReceived).
		Bool("buffer_full", n == len(buf)).
		Msg("exchange complete")
	return result, nil
}
