package client

import (
	"context"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors/ssh/internal/session"
)

type Client interface {
	NewSession(settings session.Settings) (session.Session, error)
	Disconnect() error
}

// NewConnectClient dials addr and performs the SSH handshake. The TCP dial is
// bounded by config.Timeout and the handshake, authentication included, by
// readTimeout.
func NewConnectClient(ctx context.Context, network string, addr string, config *ssh.ClientConfig, readTimeout time.Duration) (Client, error) {
	dialer := &net.Dialer{Timeout: config.Timeout}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	// Unblocks the handshake when ctx ends
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	if readTimeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(readTimeout))
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	_ = conn.SetDeadline(time.Time{})

	cli := &defaultClient{
		internal: ssh.NewClient(c, chans, reqs),
	}

	return cli, nil
}

type defaultClient struct {
	internal *ssh.Client
}

func (c *defaultClient) NewSession(settings session.Settings) (session.Session, error) {
	s, err := c.internal.NewSession()
	if err != nil {
		return nil, err
	}

	return session.New(s, settings), nil
}

func (c *defaultClient) Disconnect() error {
	return c.internal.Close()
}
