// Package sshtest provides an in-process SSH server for integration tests.
//
// The server accepts "session" channels and "exec" requests only. Every
// command is passed to the configured Handler, whose return value is sent
// back as the exit status.
package sshtest

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"testing"

	"golang.org/x/crypto/ssh"
)

// NoExitStatus makes the server close the channel without sending an exit status
const NoExitStatus = -1

// Handler executes command. ctx is cancelled when the client sends a signal
// or closes the channel.
type Handler func(ctx context.Context, command string, stdout io.Writer, stderr io.Writer) int

type Options struct {
	Username string
	Password string

	// AuthorizedKey enables publickey authentication for Username
	AuthorizedKey ssh.PublicKey

	// DisablePassword removes password from the offered methods
	DisablePassword bool

	// KeyboardInteractive offers keyboard-interactive authentication, with the
	// password as the only accepted answer
	KeyboardInteractive bool

	Handler Handler
}

type Server struct {
	Host string
	Port int

	listener net.Listener
	config   *ssh.ServerConfig
	hostKey  ssh.Signer
	handler  Handler

	wg sync.WaitGroup

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	commands []string
	signals  []string
}

// NewServer starts a server listening on a random local port. It's stopped
// when the test finishes.
func NewServer(t testing.TB, opts Options) *Server {
	t.Helper()

	s, err := Start(opts)
	if err != nil {
		t.Fatalf("starting test SSH server: %v", err)
	}

	t.Cleanup(s.Close)

	return s
}

func Start(opts Options) (*Server, error) {
	hostKey, err := generateHostKey()
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listening on local port: %w", err)
	}

	host, port, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	portNumber, _ := strconv.Atoi(port)

	s := &Server{
		Host:     host,
		Port:     portNumber,
		listener: listener,
		hostKey:  hostKey,
		handler:  opts.Handler,
		conns:    make(map[net.Conn]struct{}),
	}

	s.config = newServerConfig(opts)
	s.config.AddHostKey(hostKey)

	if s.handler == nil {
		s.handler = func(context.Context, string, io.Writer, io.Writer) int { return 0 }
	}

	s.wg.Add(1)
	go s.serve()

	return s, nil
}

func generateHostKey() (ssh.Signer, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating the host key: %w", err)
	}

	signer, err := ssh.NewSignerFromKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("creating the host key signer: %w", err)
	}

	return signer, nil
}

var errAccessDenied = errors.New("access denied")

func newServerConfig(opts Options) *ssh.ServerConfig {
	config := new(ssh.ServerConfig)

	if !opts.DisablePassword {
		config.PasswordCallback = func(conn ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
			if conn.User() == opts.Username && string(password) == opts.Password {
				return nil, nil
			}

			return nil, errAccessDenied
		}
	}

	if opts.AuthorizedKey != nil {
		config.PublicKeyCallback = func(conn ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if conn.User() == opts.Username && bytes.Equal(key.Marshal(), opts.AuthorizedKey.Marshal()) {
				return nil, nil
			}

			return nil, errAccessDenied
		}
	}

	if opts.KeyboardInteractive {
		config.KeyboardInteractiveCallback = func(conn ssh.ConnMetadata, challenge ssh.KeyboardInteractiveChallenge) (*ssh.Permissions, error) {
			answers, err := challenge(conn.User(), "", []string{"Password: "}, []bool{false})
			if err != nil {
				return nil, err
			}

			if conn.User() == opts.Username && len(answers) == 1 && answers[0] == opts.Password {
				return nil, nil
			}

			return nil, errAccessDenied
		}
	}

	return config
}

// Addr returns the host:port the server listens on
func (s *Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// PublicKey returns the host key presented by the server
func (s *Server) PublicKey() ssh.PublicKey {
	return s.hostKey.PublicKey()
}

// Commands returns the commands received so far, in order
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.commands...)
}

// Signals returns the names of the signals received so far
func (s *Server) Signals() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.signals...)
}

// Close stops accepting connections, drops the open ones and waits for their
// handlers to return
func (s *Server) Close() {
	_ = s.listener.Close()

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Server) serve() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.forget(conn)

			s.handleConn(conn)
		}()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	serverConn, chans, reqs, err := ssh.NewServerConn(conn, s.config)
	if err != nil {
		_ = conn.Close()
		return
	}
	defer serverConn.Close()

	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		if newChannel.ChannelType() != "session" {
			_ = newChannel.Reject(ssh.UnknownChannelType, "unsupported channel type")
			continue
		}

		channel, requests, err := newChannel.Accept()
		if err != nil {
			continue
		}

		go s.handleSession(channel, requests)
	}
}

type execRequest struct {
	Command string
}

type signalRequest struct {
	Signal string
}

type exitStatusMsg struct {
	Status uint32
}

func (s *Server) handleSession(channel ssh.Channel, requests <-chan *ssh.Request) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := false

	for req := range requests {
		switch {
		case req.Type == "exec" && !started:
			var exec execRequest
			if err := ssh.Unmarshal(req.Payload, &exec); err != nil {
				_ = req.Reply(false, nil)
				continue
			}

			started = true
			s.recordCommand(exec.Command)
			_ = req.Reply(true, nil)

			go s.execute(ctx, channel, exec.Command)
		case req.Type == "signal":
			var sig signalRequest
			if err := ssh.Unmarshal(req.Payload, &sig); err == nil {
				s.recordSignal(sig.Signal)
			}
			cancel()
		default:
			if req.WantReply {
				_ = req.Reply(false, nil)
			}
		}
	}
}

func (s *Server) execute(ctx context.Context, channel ssh.Channel, command string) {
	defer channel.Close()

	status := s.handler(ctx, command, channel, channel.Stderr())
	if status < 0 {
		return
	}

	_ = channel.CloseWrite()
	_, _ = channel.SendRequest("exit-status", false, ssh.Marshal(exitStatusMsg{Status: uint32(status)}))
}

func (s *Server) forget(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conns, conn)
}

func (s *Server) recordCommand(command string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands = append(s.commands, command)
}

func (s *Server) recordSignal(signal string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.signals = append(s.signals, signal)
}
