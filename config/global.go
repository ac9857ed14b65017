// Package config loads the sshcmd TOML configuration file
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/executors"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
)

type Global struct {
	LogLevel  string
	LogFile   string
	LogFormat string

	SSH SSH
	AWS AWS
}

type SSH struct {
	Host     string
	Port     int
	Username string

	// Password sources, the first one set wins
	Password             string
	PasswordEnv          string
	PasswordFile         string
	PasswordSSMParameter string
	AskPassword          bool

	PrivateKeyFile string
	KnownHostsFile string

	ConnectTimeout Duration
	ReadTimeout    Duration
	IdleTimeout    Duration
	SettleDelay    Duration

	Retries int
}

type AWS struct {
	Region string
}

// Duration decodes TOML strings like "90s" or "2m"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error

	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("couldn't parse duration %q: %w", string(text), err)
	}

	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present
func Default() Global {
	return Global{
		SSH: SSH{
			Port:           executors.DefaultPort,
			ConnectTimeout: Duration{executors.DefaultConnectTimeout},
			ReadTimeout:    Duration{executors.DefaultReadTimeout},
			IdleTimeout:    Duration{executors.DefaultIdleTimeout},
			Retries:        executors.DefaultRetries,
		},
	}
}

var ErrMissingHost = errors.New("SSH host is not set")

func (c Global) Validate() error {
	if c.SSH.Host == "" {
		return ErrMissingHost
	}

	if c.SSH.Port < 0 || c.SSH.Port > 65535 {
		return fmt.Errorf("invalid SSH port %d", c.SSH.Port)
	}

	return nil
}

// ConnectionSettings maps the SSH section on the executor settings. Secrets
// are resolved separately.
func (s SSH) ConnectionSettings() executors.ConnectionSettings {
	return executors.ConnectionSettings{
		Hostname:       s.Host,
		Port:           s.Port,
		Username:       s.Username,
		ConnectTimeout: s.ConnectTimeout.Duration,
		ReadTimeout:    s.ReadTimeout.Duration,
		IdleTimeout:    s.IdleTimeout.Duration,
		SettleDelay:    s.SettleDelay.Duration,
	}.WithDefaults()
}

func LoadFromFile(fileSystem fs.FS, file string) (Global, error) {
	data, err := fileSystem.ReadFile(file)
	if err != nil {
		return Global{}, fmt.Errorf("couldn't read configuration file %q: %w", file, err)
	}

	cfg := Default()

	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return Global{}, fmt.Errorf("couldn't parse TOML content of the configuration file: %w", err)
	}

	return cfg, nil
}
