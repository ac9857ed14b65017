package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

// ForcedExitCode is used when a second signal arrives before the running
// command had a chance to stop
const ForcedExitCode = 130

type TerminationHandler struct {
	ctx      context.Context
	cancelFn func()
	logger   logging.Logger
	stopCh   chan os.Signal

	exiter func(code int)
}

func NewTerminationHandler(logger logging.Logger) *TerminationHandler {
	ctx, cancelFn := context.WithCancel(context.Background())

	return &TerminationHandler{
		ctx:      ctx,
		cancelFn: cancelFn,
		logger:   logger,
		stopCh:   make(chan os.Signal, 2),
		exiter:   os.Exit,
	}
}

func (th *TerminationHandler) Context() context.Context {
	return th.ctx
}

// HandleSignals cancels the context on the first SIGINT or SIGTERM. A second
// signal terminates the process immediately.
func (th *TerminationHandler) HandleSignals() {
	signal.Notify(th.stopCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(th.stopCh)

	sig := <-th.stopCh
	th.logger.
		WithField("signal", sig).
		Warning("Received exit signal; interrupting the remote command")

	th.cancelFn()

	sig = <-th.stopCh
	th.logger.
		WithField("signal", sig).
		Error("Received second exit signal; forcing exit")

	th.exiter(ForcedExitCode)
}
