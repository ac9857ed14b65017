package keys

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/cli"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/fs"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/keys"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

const (
	privateKeyPerm = 0600
	publicKeyPerm  = 0644

	publicKeySuffix = ".pub"
)

// ErrKeyFileExists is returned when the output file would be overwritten
var ErrKeyFileExists = errors.New("key file already exists")

// NewGenerateCommand constructs the command line abstraction for "keys generate"
func NewGenerateCommand() cli.Command {
	cmd := new(GenerateCommand)
	cmd.output = os.Stdout

	cmd.newFactory = keys.NewFactory
	cmd.newFS = func() fs.FS {
		return fs.NewOS()
	}

	return cli.Command{
		Handler: cmd,
		Config: cli.Config{
			Name:  "generate",
			Usage: "Generate a key pair for the PrivateKeyFile setting",
			Description: `
Writes the private key to the --file path and the public key next to it, with
the .pub suffix. The public key is also printed, ready to be appended to the
authorized_keys file of the remote user.`,
		},
	}
}

// GenerateCommand creates a new SSH key pair
type GenerateCommand struct {
	Type string `long:"type" description:"Key type (rsa, ed25519)"`
	Bits int    `long:"bits" description:"RSA key size in bits"`
	File string `long:"file" description:"Path of the private key file"`

	output io.Writer

	// Wrapping constructors to make easier mocking in the unit tests
	newFactory func(logger logging.Logger) keys.Factory
	newFS      func() fs.FS
}

func (c *GenerateCommand) Execute(ctx *cli.Context) error {
	if c.File == "" {
		return errors.New("missing --file argument")
	}

	logger := ctx.Logger().WithFields(logging.Fields{
		"command": "keys_generate",
		"file":    c.File,
	})

	fileSystem := c.newFS()

	for _, file := range []string{c.File, c.File + publicKeySuffix} {
		exists, err := fileSystem.Exists(file)
		if err != nil {
			return fmt.Errorf("checking key file %q: %w", file, err)
		}

		if exists {
			return fmt.Errorf("%w: %s", ErrKeyFileExists, file)
		}
	}

	keyPair, err := c.newFactory(logger).Create(c.Type, c.Bits)
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	err = fileSystem.WriteFile(c.File, keyPair.PrivateKey, privateKeyPerm)
	if err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	err = fileSystem.WriteFile(c.File+publicKeySuffix, keyPair.PublicKey, publicKeyPerm)
	if err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	logger.Info("Key pair generated")

	_, err = c.output.Write(keyPair.PublicKey)

	return err
}
