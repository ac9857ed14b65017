package main

import (
	"context"
	"fmt"
	"os"

	"gitlab.com/gitlab-org/ci-cd/sshcmd"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/cmd/sshcmd/commands/keys"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/cmd/sshcmd/commands/remote"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/config"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/cli"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/exit"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging/storage"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/signal"
)

const (
	defaultConfigFile = "config.toml"
)

type globalFlags struct {
	Debug     bool   `long:"debug" description:"Set debug log level"`
	LogLevel  string `long:"log-level" description:"Set custom log level (debug, info, warning, error, fatal, panic)"`
	LogFile   string `long:"log-file" description:"File where logs should be saved"`
	LogFormat string `long:"log-format" description:"Format of log (text, text-simple, json)"`

	ConfigFile string `long:"config" description:"Path to configuration file" env:"SSHCMD_CONFIG"`

	Host     string `long:"host" description:"SSH host" env:"SSHCMD_HOST"`
	Port     int    `long:"port" description:"SSH port" env:"SSHCMD_PORT"`
	Username string `long:"user" description:"SSH username" env:"SSHCMD_USER"`

	PasswordEnv  string `long:"password-env" description:"Environment variable holding the SSH password"`
	PasswordFile string `long:"password-file" description:"File holding the SSH password"`
	AskPassword  bool   `long:"ask-password" description:"Prompt for the SSH password"`

	PrivateKeyFile string `long:"identity-file" description:"Private key used for authentication"`
	KnownHostsFile string `long:"known-hosts" description:"Known hosts file used to verify the server key"`
}

var (
	global = &globalFlags{
		ConfigFile: defaultConfigFile,
	}

	fileSystem = fs.NewOS()

	closeLogFile = cli.NewNopHook()
)

func main() {
	logger := logging.New()

	ctx := startSignalHandler(logger)

	a := setUpApplication(ctx, logger)

	err := a.Run(os.Args)
	if err != nil {
		logApplicationFailure(logger, err)

		exit.FromError(err)
	}
}

func logApplicationFailure(logger logging.Logger, err error) {
	if exit.Code(err) != exit.SystemFailureExitCode {
		logger.WithError(err).Warning("Remote command failed")
		return
	}

	logger.
		WithError(err).
		Error("Application execution failed")
}

func startSignalHandler(logger logging.Logger) context.Context {
	terminationHandler := signal.NewTerminationHandler(logger)
	go terminationHandler.HandleSignals()

	return terminationHandler.Context()
}

func setUpApplication(ctx context.Context, logger logging.Logger) *cli.App {
	a := cli.New(ctx, sshcmd.NAME, "Run commands on remote hosts over SSH")

	a.AddBeforeFunc(func(ctx *cli.Context) error {
		ctx.SetLogger(logger)

		return nil
	})
	a.AddBeforeFunc(loadConfigurationFile)
	a.AddBeforeFunc(loadCliArgsEnvVars)
	a.AddBeforeFunc(updateLogLevel)
	a.AddBeforeFunc(updateLogFormat)
	a.AddBeforeFunc(setLoggingToFile)
	a.AddBeforeFunc(logStartupMessage)

	// If logging to file will be set, closeLogFile() will close the
	// used file. Otherwise it's a NOP call.
	a.AddAfterFunc(func(ctx *cli.Context) error {
		return closeLogFile(ctx)
	})

	a.AddGlobalFlagsFromStruct(global)

	a.RegisterCategory(remote.NewRemoteCategory())
	a.RegisterCategory(keys.NewKeysCategory())

	return a
}

func logStartupMessage(ctx *cli.Context) error {
	ctx.
		Logger().
		WithFields(logging.Fields{
			"version": sshcmd.Version().ShortLine(),
		}).
		Debugf("Starting %s", sshcmd.NAME)

	return nil
}

func loadConfigurationFile(ctx *cli.Context) error {
	if global.ConfigFile == defaultConfigFile {
		exists, err := fileSystem.Exists(global.ConfigFile)
		if err != nil {
			return fmt.Errorf("checking configuration file: %w", err)
		}

		if !exists {
			ctx.SetConfig(config.Default())
			return nil
		}
	}

	cfg, err := config.LoadFromFile(fileSystem, global.ConfigFile)
	if err != nil {
		return err
	}

	ctx.SetConfig(cfg)

	return nil
}

func loadCliArgsEnvVars(ctx *cli.Context) error {
	// Override parameters from config.toml if received by command line or env variable
	cfg := ctx.Config()

	if global.Host != "" {
		cfg.SSH.Host = global.Host
	}

	if global.Port > 0 {
		cfg.SSH.Port = global.Port
	}

	if global.Username != "" {
		cfg.SSH.Username = global.Username
	}

	// A password source given on the command line replaces the configured one
	if global.PasswordEnv != "" || global.PasswordFile != "" || global.AskPassword {
		cfg.SSH.Password = ""
		cfg.SSH.PasswordSSMParameter = ""
		cfg.SSH.PasswordEnv = global.PasswordEnv
		cfg.SSH.PasswordFile = global.PasswordFile
		cfg.SSH.AskPassword = global.AskPassword
	}

	if global.PrivateKeyFile != "" {
		cfg.SSH.PrivateKeyFile = global.PrivateKeyFile
	}

	if global.KnownHostsFile != "" {
		cfg.SSH.KnownHostsFile = global.KnownHostsFile
	}

	ctx.SetConfig(cfg)

	return nil
}

func updateLogLevel(ctx *cli.Context) error {
	logLevel := ctx.Config().LogLevel
	if global.Debug {
		logLevel = "debug"
	} else if global.LogLevel != "" {
		logLevel = global.LogLevel
	}

	if logLevel == "" {
		return nil
	}

	return ctx.Logger().SetLevel(logLevel)
}

func updateLogFormat(ctx *cli.Context) error {
	logFormat := ctx.Config().LogFormat
	if global.LogFormat != "" {
		logFormat = global.LogFormat
	}

	if logFormat == "" {
		return nil
	}

	return ctx.Logger().SetFormat(logFormat)
}

func setLoggingToFile(ctx *cli.Context) error {
	logFile := ctx.Config().LogFile
	if global.LogFile != "" {
		logFile = global.LogFile
	}

	if logFile == "" {
		return nil
	}

	logStorage := storage.NewFile(fileSystem, logFile)
	err := logStorage.Open()
	if err != nil {
		return err
	}

	closeLogFile = func(ctx *cli.Context) error {
		return logStorage.Close()
	}

	ctx.Logger().SetOutput(logStorage)

	return nil
}
