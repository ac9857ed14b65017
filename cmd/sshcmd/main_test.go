package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/config"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/assertions"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/cli"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging/test"
)

func withGlobalFlags(t *testing.T, flags globalFlags) {
	oldGlobal := global
	global = &flags

	t.Cleanup(func() {
		global = oldGlobal
	})
}

func withFileSystem(t *testing.T) *fs.MockFS {
	mockFS := new(fs.MockFS)

	oldFileSystem := fileSystem
	fileSystem = mockFS

	t.Cleanup(func() {
		fileSystem = oldFileSystem
		mockFS.AssertExpectations(t)
	})

	return mockFS
}

func createCliContextForTests(cfg config.Global) *cli.Context {
	logger, _ := test.NewBufferedLogger()

	cliCtx := new(cli.Context)
	cliCtx.SetLogger(logger)
	cliCtx.SetConfig(cfg)

	return cliCtx
}

func TestLoadConfigurationFile(t *testing.T) {
	tests := map[string]struct {
		configFile     string
		prepareFS      func(m *fs.MockFS)
		expectedError  error
		expectedConfig func(t *testing.T, cfg config.Global)
	}{
		"missing default file falls back to defaults": {
			configFile: defaultConfigFile,
			prepareFS: func(m *fs.MockFS) {
				m.On("Exists", defaultConfigFile).Return(false, nil).Once()
			},
			expectedConfig: func(t *testing.T, cfg config.Global) {
				assert.Equal(t, config.Default(), cfg)
			},
		},
		"default file is loaded": {
			configFile: defaultConfigFile,
			prepareFS: func(m *fs.MockFS) {
				m.On("Exists", defaultConfigFile).Return(true, nil).Once()
				m.On("ReadFile", defaultConfigFile).Return([]byte("[SSH]\nHost = \"10.0.0.5\""), nil).Once()
			},
			expectedConfig: func(t *testing.T, cfg config.Global) {
				assert.Equal(t, "10.0.0.5", cfg.SSH.Host)
				assert.Equal(t, executors.DefaultPort, cfg.SSH.Port)
			},
		},
		"explicit missing file is an error": {
			configFile: "/etc/sshcmd.toml",
			prepareFS: func(m *fs.MockFS) {
				m.On("ReadFile", "/etc/sshcmd.toml").Return(nil, os.ErrNotExist).Once()
			},
			expectedError: os.ErrNotExist,
		},
	}

	for tn, tt := range tests {
		t.Run(tn, func(t *testing.T) {
			withGlobalFlags(t, globalFlags{ConfigFile: tt.configFile})
			tt.prepareFS(withFileSystem(t))

			ctx := createCliContextForTests(config.Global{})

			err := loadConfigurationFile(ctx)
			if tt.expectedError != nil {
				assertions.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			tt.expectedConfig(t, ctx.Config())
		})
	}
}

func TestLoadCliArgsEnvVars(t *testing.T) {
	original := config.Default()
	original.SSH.Host = "10.0.0.5"
	original.SSH.Username = "root"
	original.SSH.PasswordSSMParameter = "/hosts/root"

	tests := map[string]struct {
		flags    globalFlags
		expected func(cfg *config.SSH)
	}{
		"Should keep original values if nothing received by command line or env variable": {
			expected: func(cfg *config.SSH) {},
		},
		"Should override connection target": {
			flags: globalFlags{Host: "10.0.0.6", Port: 2222, Username: "admin"},
			expected: func(cfg *config.SSH) {
				cfg.Host = "10.0.0.6"
				cfg.Port = 2222
				cfg.Username = "admin"
			},
		},
		"Should replace the configured password source": {
			flags: globalFlags{PasswordEnv: "SSH_PASSWORD"},
			expected: func(cfg *config.SSH) {
				cfg.PasswordSSMParameter = ""
				cfg.PasswordEnv = "SSH_PASSWORD"
			},
		},
		"Should override key files": {
			flags: globalFlags{PrivateKeyFile: "/root/.ssh/id_ed25519", KnownHostsFile: "/root/.ssh/known_hosts"},
			expected: func(cfg *config.SSH) {
				cfg.PrivateKeyFile = "/root/.ssh/id_ed25519"
				cfg.KnownHostsFile = "/root/.ssh/known_hosts"
			},
		},
	}

	for tn, tt := range tests {
		t.Run(tn, func(t *testing.T) {
			withGlobalFlags(t, tt.flags)

			expected := original.SSH
			tt.expected(&expected)

			ctx := createCliContextForTests(original)

			err := loadCliArgsEnvVars(ctx)
			assert.NoError(t, err)
			assert.Equal(t, expected, ctx.Config().SSH)
		})
	}
}

func TestUpdateLogLevelAndFormat(t *testing.T) {
	withGlobalFlags(t, globalFlags{Debug: true, LogFormat: "json"})

	ctx := createCliContextForTests(config.Global{LogLevel: "error", LogFormat: "text"})

	require.NoError(t, updateLogLevel(ctx))
	require.NoError(t, updateLogFormat(ctx))
	assert.Equal(t, "debug", ctx.Logger().Level())

	global.LogFormat = "xml"
	assert.Error(t, updateLogFormat(ctx))
}

type mockLogFile struct {
	mock.Mock
}

func (w *mockLogFile) Write(p []byte) (int, error) {
	return len(p), nil
}

func (w *mockLogFile) Close() error {
	return w.Called().Error(0)
}

func TestSetLoggingToFile(t *testing.T) {
	withGlobalFlags(t, globalFlags{LogFile: "/var/log/sshcmd.log"})
	mockFS := withFileSystem(t)

	file := new(mockLogFile)
	defer file.AssertExpectations(t)

	file.On("Close").Return(nil).Once()
	mockFS.On("OpenAppend", "/var/log/sshcmd.log", mock.Anything).Return(file, nil).Once()

	oldCloseLogFile := closeLogFile
	defer func() {
		closeLogFile = oldCloseLogFile
	}()

	ctx := createCliContextForTests(config.Global{})

	require.NoError(t, setLoggingToFile(ctx))
	assert.NoError(t, closeLogFile(ctx))
}
