package ssh

import (
	"errors"

	"golang.org/x/crypto/ssh"
)

const (
	methodPublicKey           = "publickey"
	methodPassword            = "password"
	methodKeyboardInteractive = "keyboard-interactive"
)

var errProbeOnly = errors.New("keyboard-interactive authentication is not supported")

// authProbe records every authentication method the server let the client
// try. x/crypto/ssh only invokes a method when the server lists it as one
// that can continue, so after a failed handshake the recorded methods are
// the ones the server supports.
type authProbe struct {
	offered []string
}

func (p *authProbe) record(method string) {
	for _, m := range p.offered {
		if m == method {
			return
		}
	}

	p.offered = append(p.offered, method)
}

func (p *authProbe) reached() bool {
	return len(p.offered) > 0
}

func (p *authProbe) methods() []string {
	return append([]string(nil), p.offered...)
}

// authMethods builds the client methods: publickey when a key is set, then
// password, then probes for the methods sshcmd doesn't use
func (p *authProbe) authMethods(password string, privateKey []byte) ([]ssh.AuthMethod, error) {
	var signers []ssh.Signer

	if len(privateKey) > 0 {
		signer, err := ssh.ParsePrivateKey(privateKey)
		if err != nil {
			return nil, &errInvalidPrivateKey{inner: err}
		}

		signers = append(signers, signer)
	}

	methods := []ssh.AuthMethod{
		ssh.PublicKeysCallback(func() ([]ssh.Signer, error) {
			p.record(methodPublicKey)
			return signers, nil
		}),
	}

	if password != "" || len(signers) == 0 {
		methods = append(methods, ssh.PasswordCallback(func() (string, error) {
			p.record(methodPassword)
			return password, nil
		}))
	}

	methods = append(methods, ssh.KeyboardInteractive(func(string, string, []string, []bool) ([]string, error) {
		p.record(methodKeyboardInteractive)
		return nil, errProbeOnly
	}))

	return methods, nil
}
