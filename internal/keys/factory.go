// Package keys generates SSH key pairs for public key authentication
package keys

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"

	"golang.org/x/crypto/ssh"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

const (
	TypeRSA     = "rsa"
	TypeEd25519 = "ed25519"

	DefaultRSABitSize = 3072

	rsaPrivateKeyType = "RSA PRIVATE KEY"
)

// ErrInvalidPrivateKey will be used to wrap a RSA internal error
type ErrInvalidPrivateKey struct {
	inner error
}

func (e *ErrInvalidPrivateKey) Error() string {
	return fmt.Sprintf("invalid private key: %v", e.inner)
}

func (e *ErrInvalidPrivateKey) Unwrap() error {
	return e.inner
}

func (e *ErrInvalidPrivateKey) Is(err error) bool {
	_, ok := err.(*ErrInvalidPrivateKey)
	return ok
}

// Factory is a factory for Public and Private key pairs
type Factory interface {
	Create(keyType string, bitSize int) (*KeyPair, error)
}

// KeyPair holds the PEM encoded private key and the public key in the
// authorized_keys format
type KeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

type factory struct {
	logger logging.Logger

	// Functions encapsulated to make easier creating unit tests
	generateRSAKey     func(random io.Reader, bits int) (*rsa.PrivateKey, error)
	generateEd25519Key func(random io.Reader) (ed25519.PublicKey, ed25519.PrivateKey, error)
	newSSHPublicKey    func(key interface{}) (ssh.PublicKey, error)
}

// NewFactory instantiates a concrete instance of Factory
func NewFactory(logger logging.Logger) Factory {
	return &factory{
		logger:             logger,
		generateRSAKey:     rsa.GenerateKey,
		generateEd25519Key: ed25519.GenerateKey,
		newSSHPublicKey:    ssh.NewPublicKey,
	}
}

// Create generates a key pair of the given type. bitSize is used only for
// RSA keys; values below 1 select DefaultRSABitSize.
func (f *factory) Create(keyType string, bitSize int) (*KeyPair, error) {
	logger := f.logger.WithField("type", keyType)
	logger.Debug("[Create] Will generate new key pair")

	var (
		publicKey       crypto.PublicKey
		privateKeyBytes []byte
		err             error
	)

	switch keyType {
	case TypeRSA, "":
		publicKey, privateKeyBytes, err = f.createRSA(bitSize)
	case TypeEd25519:
		publicKey, privateKeyBytes, err = f.createEd25519()
	default:
		return nil, fmt.Errorf("unsupported key type %q", keyType)
	}

	if err != nil {
		return nil, err
	}

	publicKeyBytes, err := f.getPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("generating the public key: %w", err)
	}

	keyPair := &KeyPair{
		PublicKey:  publicKeyBytes,
		PrivateKey: privateKeyBytes,
	}

	logger.Debug("[Create] Key pair generated with success")

	return keyPair, nil
}

func (f *factory) createRSA(bitSize int) (crypto.PublicKey, []byte, error) {
	if bitSize < 1 {
		bitSize = DefaultRSABitSize
	}

	privateKey, err := f.generateRSAKey(rand.Reader, bitSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generating the private key: %w", err)
	}

	err = privateKey.Validate()
	if err != nil {
		return nil, nil, &ErrInvalidPrivateKey{inner: err}
	}

	block := pem.Block{
		Type:  rsaPrivateKeyType,
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	return &privateKey.PublicKey, pem.EncodeToMemory(&block), nil
}

func (f *factory) createEd25519() (crypto.PublicKey, []byte, error) {
	publicKey, privateKey, err := f.generateEd25519Key(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generating the private key: %w", err)
	}

	block, err := ssh.MarshalPrivateKey(privateKey, "")
	if err != nil {
		return nil, nil, &ErrInvalidPrivateKey{inner: err}
	}

	return publicKey, pem.EncodeToMemory(block), nil
}

func (f *factory) getPublicKey(key crypto.PublicKey) ([]byte, error) {
	publicKey, err := f.newSSHPublicKey(key)
	if err != nil {
		return nil, err
	}

	return ssh.MarshalAuthorizedKey(publicKey), nil
}
