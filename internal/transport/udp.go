// Package transport sends an encoded DNS query and receives the raw response.
package transport

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MaxResponseSize is the size of the buffer used to read the response,
// which is the largest possible UDP payload.
const MaxResponseSize = 65535

// UDP exchanges a single query and response with a server over UDP.
//
// There are no retries and no fallback to TCP for truncated responses.
type UDP struct {
	// Dialer is the OPTIONAL dialer to use. When nil, we use a zero
	// [net.Dialer], which binds to an ephemeral local port.
	Dialer *net.Dialer

	// Logger is the OPTIONAL logger. When nil, we use the standard logger.
	Logger log.FieldLogger
}

// Exchange sends query to server, which is a host:port string, and
// returns the first datagram received in response.
//
// The context deadline, if any, bounds both sending and receiving.
func (u *UDP) Exchange(ctx context.Context, server string, query []byte) ([]byte, error) {
	logger := u.logger().WithField("server", server)

	dialer := u.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}
	conn, err := dialer.DialContext(ctx, "udp", server)
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to %v", server)
	}
	defer conn.Close()
	logger.WithField("local", conn.LocalAddr().String()).Debug("connected")

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	stop := context.AfterFunc(ctx, func() {
		// unblock pending reads and writes
		conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	count, err := conn.Write(query)
	if err != nil {
		return nil, errors.Wrapf(err, "could not send query to %v", server)
	}
	logger.Infof("successfully sent %d bytes", count)

	buf := make([]byte, MaxResponseSize)
	count, err = conn.Read(buf)
	if err != nil {
		return nil, errors.Wrapf(contextError(ctx, err), "could not read response from %v", server)
	}
	logger.Infof("got %d response bytes back", count)
	return buf[:count], nil
}

func (u *UDP) logger() log.FieldLogger {
	if u.Logger != nil {
		return u.Logger
	}
	return log.StandardLogger()
}

// contextError maps an I/O error caused by the context expiring to the
// corresponding context error.
func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var netErr net.Error
	if _, ok := ctx.Deadline(); ok && errors.As(err, &netErr) && netErr.Timeout() {
		return context.DeadlineExceeded
	}
	return err
}
