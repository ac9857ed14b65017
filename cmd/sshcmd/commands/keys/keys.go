package keys

import (
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/cli"
)

func NewKeysCategory() cli.Category {
	return cli.Category{
		Config: cli.Config{
			Name:  "keys",
			Usage: "Manage SSH keys used for public key authentication",
		},
		SubCommands: []cli.Command{
			NewGenerateCommand(),
		},
	}
}
