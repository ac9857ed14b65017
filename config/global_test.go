package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/assertions"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
)

const testConfig = `
LogLevel = "debug"
LogFormat = "json"

[SSH]
Host = "10.0.0.5"
Port = 2222
Username = "root"
PasswordSSMParameter = "/hosts/10.0.0.5/root"
IdleTimeout = "2m30s"
SettleDelay = "1s"
Retries = 5

[AWS]
Region = "eu-west-1"
`

func TestLoadFromFile(t *testing.T) {
	mockFS := new(fs.MockFS)
	defer mockFS.AssertExpectations(t)

	mockFS.On("ReadFile", "config.toml").
		Return([]byte(testConfig), nil).
		Once()

	cfg, err := LoadFromFile(mockFS, "config.toml")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "10.0.0.5", cfg.SSH.Host)
	assert.Equal(t, 2222, cfg.SSH.Port)
	assert.Equal(t, "/hosts/10.0.0.5/root", cfg.SSH.PasswordSSMParameter)
	assert.Equal(t, 150*time.Second, cfg.SSH.IdleTimeout.Duration)
	assert.Equal(t, time.Second, cfg.SSH.SettleDelay.Duration)
	assert.Equal(t, executors.DefaultConnectTimeout, cfg.SSH.ConnectTimeout.Duration, "Unset values should keep defaults")
	assert.Equal(t, 5, cfg.SSH.Retries)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := map[string]struct {
		content       []byte
		readError     error
		expectedError error
		expectedText  string
	}{
		"file missing": {
			readError:     os.ErrNotExist,
			expectedError: os.ErrNotExist,
			expectedText:  "couldn't read configuration file",
		},
		"invalid TOML": {
			content:      []byte("[SSH"),
			expectedText: "couldn't parse TOML content",
		},
		"invalid duration": {
			content:      []byte("[SSH]\nIdleTimeout = \"forever\""),
			expectedText: `couldn't parse duration "forever"`,
		},
	}

	for tn, tt := range tests {
		t.Run(tn, func(t *testing.T) {
			mockFS := new(fs.MockFS)
			defer mockFS.AssertExpectations(t)

			mockFS.On("ReadFile", "config.toml").
				Return(tt.content, tt.readError).
				Once()

			_, err := LoadFromFile(mockFS, "config.toml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedText)

			if tt.expectedError != nil {
				assertions.ErrorIs(t, err, tt.expectedError)
			}
		})
	}
}

func TestGlobal_Validate(t *testing.T) {
	cfg := Default()
	assertions.ErrorIs(t, cfg.Validate(), ErrMissingHost)

	cfg.SSH.Host = "10.0.0.5"
	assert.NoError(t, cfg.Validate())

	cfg.SSH.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestSSH_ConnectionSettings(t *testing.T) {
	s := SSH{
		Host:        "10.0.0.5",
		Username:    "admin",
		IdleTimeout: Duration{time.Minute},
		SettleDelay: Duration{time.Second},
	}

	settings := s.ConnectionSettings()

	assert.Equal(t, "10.0.0.5", settings.Hostname)
	assert.Equal(t, executors.DefaultPort, settings.Port)
	assert.Equal(t, "admin", settings.Username)
	assert.Equal(t, time.Minute, settings.IdleTimeout)
	assert.Equal(t, time.Second, settings.SettleDelay)
	assert.Equal(t, executors.DefaultReadTimeout, settings.ReadTimeout)
}
