package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/assertions"
)

type fakeRemote struct {
	stdout io.Writer
	stderr io.Writer

	startErr error
	run      func(stdout io.Writer, stderr io.Writer, interrupted <-chan struct{}) error

	mu          sync.Mutex
	command     string
	signals     []ssh.Signal
	closed      bool
	interrupted chan struct{}
}

func newFakeRemote(startErr error, run func(io.Writer, io.Writer, <-chan struct{}) error) *fakeRemote {
	return &fakeRemote{
		startErr:    startErr,
		run:         run,
		interrupted: make(chan struct{}),
	}
}

func (f *fakeRemote) Start(cmd string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.command = cmd

	return f.startErr
}

func (f *fakeRemote) Wait() error {
	return f.run(f.stdout, f.stderr, f.interrupted)
}

func (f *fakeRemote) Signal(sig ssh.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.signals) == 0 {
		close(f.interrupted)
	}
	f.signals = append(f.signals, sig)

	return nil
}

func (f *fakeRemote) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true

	return nil
}

func (f *fakeRemote) receivedSignals() []ssh.Signal {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.signals
}

func newTestSession(r *fakeRemote, settings Settings) *defaultSession {
	s := newSession(r, settings)
	r.stdout = s.output.stream(settings.Stdout)
	r.stderr = s.output.stream(settings.Stderr)

	return s
}

func blockUntilInterrupted(_ io.Writer, _ io.Writer, interrupted <-chan struct{}) error {
	<-interrupted
	return errors.New("interrupted")
}

func TestDefaultSession_Run(t *testing.T) {
	testError := errors.New("simulated error")

	tests := map[string]struct {
		startErr        error
		run             func(io.Writer, io.Writer, <-chan struct{}) error
		idleTimeout     time.Duration
		expectedStatus  int
		expectedError   error
		expectedSignals []ssh.Signal
	}{
		"command exits with success": {
			run: func(stdout io.Writer, _ io.Writer, _ <-chan struct{}) error {
				_, _ = stdout.Write([]byte("done"))
				return nil
			},
			expectedStatus: 0,
		},
		"command fails to start": {
			startErr:       testError,
			expectedStatus: noExitStatus,
			expectedError:  testError,
		},
		"remote exits without status": {
			run: func(_ io.Writer, _ io.Writer, _ <-chan struct{}) error {
				return new(ssh.ExitMissingError)
			},
			expectedStatus: noExitStatus,
			expectedError:  ErrNoExitStatus,
		},
		"waiting for remote fails": {
			run: func(_ io.Writer, _ io.Writer, _ <-chan struct{}) error {
				return testError
			},
			expectedStatus: noExitStatus,
			expectedError:  testError,
		},
		"command stays silent longer than idle timeout": {
			run:             blockUntilInterrupted,
			idleTimeout:     50 * time.Millisecond,
			expectedStatus:  noExitStatus,
			expectedError:   ErrIdleTimeout,
			expectedSignals: []ssh.Signal{ssh.SIGKILL},
		},
		"output keeps the idle timer alive": {
			run: func(stdout io.Writer, _ io.Writer, _ <-chan struct{}) error {
				for i := 0; i < 6; i++ {
					_, _ = stdout.Write([]byte("."))
					time.Sleep(30 * time.Millisecond)
				}
				return nil
			},
			idleTimeout:    100 * time.Millisecond,
			expectedStatus: 0,
		},
	}

	for tn, tt := range tests {
		t.Run(tn, func(t *testing.T) {
			idleTimeout := tt.idleTimeout
			if idleTimeout == 0 {
				idleTimeout = time.Minute
			}

			r := newFakeRemote(tt.startErr, tt.run)
			s := newTestSession(r, Settings{IdleTimeout: idleTimeout})

			status, err := s.Run(context.Background(), "echo 1")

			assert.Equal(t, tt.expectedStatus, status)
			assertions.NoErrorOrIs(t, err, tt.expectedError)
			assert.Equal(t, "echo 1", r.command)
			assert.Equal(t, tt.expectedSignals, r.receivedSignals())
		})
	}
}

func TestDefaultSession_RunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	r := newFakeRemote(nil, blockUntilInterrupted)
	s := newTestSession(r, Settings{IdleTimeout: time.Minute})

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	status, err := s.Run(ctx, "sleep 60")

	assert.Equal(t, noExitStatus, status)
	assertions.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []ssh.Signal{ssh.SIGINT}, r.receivedSignals())
}

func TestDefaultSession_RunSettleDelayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newFakeRemote(nil, nil)
	s := newTestSession(r, Settings{IdleTimeout: time.Minute, SettleDelay: time.Hour})

	_, err := s.Run(ctx, "true")

	assertions.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.command, "Command should not be started")
}

func TestDefaultSession_Output(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	r := newFakeRemote(nil, func(o io.Writer, e io.Writer, _ <-chan struct{}) error {
		_, _ = o.Write([]byte("out"))
		_, _ = e.Write([]byte("err"))
		return nil
	})
	s := newTestSession(r, Settings{IdleTimeout: time.Minute, Stdout: stdout, Stderr: stderr})

	_, err := s.Run(context.Background(), "cmd")
	require.NoError(t, err)

	assert.Equal(t, "out", stdout.String())
	assert.Equal(t, "err", stderr.String())
	assert.Equal(t, "outerr", string(s.LastOutput()))

	s.Close()
	assert.True(t, r.closed)
}

func TestOutput_KeepsTail(t *testing.T) {
	o := newOutput()
	w := o.stream(nil)

	assert.Nil(t, o.last())

	_, err := w.Write([]byte(strings.Repeat("a", chunkSize-2)))
	require.NoError(t, err)
	_, err = w.Write([]byte("bcd"))
	require.NoError(t, err)

	last := o.last()
	assert.Len(t, last, chunkSize)
	assert.Equal(t, "abcd", string(last[len(last)-4:]))

	_, err = w.Write([]byte(strings.Repeat("z", chunkSize+10)))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("z", chunkSize), string(o.last()))
}
