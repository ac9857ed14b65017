package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/assertions"
	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging/test"
)

func TestNewFactory(t *testing.T) {
	testLogger := test.NewNullLogger()

	f := NewFactory(testLogger)

	assert.NotNil(t, f)
	assert.Equal(t, testLogger, f.(*factory).logger)
	assert.NotNil(t, f.(*factory).generateRSAKey)
	assert.NotNil(t, f.(*factory).generateEd25519Key)
	assert.NotNil(t, f.(*factory).newSSHPublicKey)
}

func TestFactory_Create(t *testing.T) {
	testError := errors.New("simulated error")
	bitSize := 1024

	validKeyPair, err := rsa.GenerateKey(rand.Reader, bitSize)
	require.NoError(t, err)

	invalidKeyPair := new(rsa.PrivateKey)

	tests := map[string]struct {
		keyType        string
		mockedRSAKey   *rsa.PrivateKey
		rsaKeyError    error
		ed25519Error   error
		publicKeyError error
		expectedError  error
	}{
		"RSA key pair generated with success": {
			keyType:      TypeRSA,
			mockedRSAKey: validKeyPair,
		},
		"Ed25519 key pair generated with success": {
			keyType: TypeEd25519,
		},
		"Error generating RSA key": {
			keyType:       TypeRSA,
			rsaKeyError:   testError,
			expectedError: testError,
		},
		"Error generating Ed25519 key": {
			keyType:       TypeEd25519,
			ed25519Error:  testError,
			expectedError: testError,
		},
		"Error invalid key pair": {
			keyType:       TypeRSA,
			mockedRSAKey:  invalidKeyPair,
			expectedError: new(ErrInvalidPrivateKey),
		},
		"Error creating SSH public key": {
			keyType:        TypeRSA,
			mockedRSAKey:   validKeyPair,
			publicKeyError: testError,
			expectedError:  testError,
		},
	}

	for tn, tt := range tests {
		t.Run(tn, func(t *testing.T) {
			f := NewFactory(test.NewNullLogger())

			f.(*factory).generateRSAKey = func(r io.Reader, b int) (*rsa.PrivateKey, error) {
				assert.Equal(t, bitSize, b)
				return tt.mockedRSAKey, tt.rsaKeyError
			}

			if tt.ed25519Error != nil {
				f.(*factory).generateEd25519Key = func(io.Reader) (ed25519.PublicKey, ed25519.PrivateKey, error) {
					return nil, nil, tt.ed25519Error
				}
			}

			if tt.publicKeyError != nil {
				f.(*factory).newSSHPublicKey = func(k interface{}) (ssh.PublicKey, error) {
					return nil, tt.publicKeyError
				}
			}

			keyPair, err := f.Create(tt.keyType, bitSize)

			if tt.expectedError != nil {
				assertions.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, keyPair)
				return
			}

			assert.NoError(t, err)
			require.NotNil(t, keyPair)

			signer, err := ssh.ParsePrivateKey(keyPair.PrivateKey)
			require.NoError(t, err)

			publicKey, _, _, _, err := ssh.ParseAuthorizedKey(keyPair.PublicKey)
			require.NoError(t, err)

			assert.Equal(t, publicKey.Marshal(), signer.PublicKey().Marshal())
		})
	}
}

func TestFactory_Create_UnsupportedType(t *testing.T) {
	keyPair, err := NewFactory(test.NewNullLogger()).Create("dsa", 0)

	assert.Error(t, err)
	assert.Nil(t, keyPair)
}

func TestFactory_Create_DefaultBitSize(t *testing.T) {
	f := NewFactory(test.NewNullLogger())
	f.(*factory).generateRSAKey = func(r io.Reader, b int) (*rsa.PrivateKey, error) {
		assert.Equal(t, DefaultRSABitSize, b)
		return nil, assert.AnError
	}

	_, err := f.Create(TypeRSA, 0)
	assertions.ErrorIs(t, err, assert.AnError)
}
