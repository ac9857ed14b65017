// Package aws provides abstractions over the Amazon AWS services used by sshcmd
package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"

	"gitlab.com/gitlab-org/ci-cd/sshcmd/internal/logging"
)

var (
	// ErrNotInitialized is returned when the parameter store methods are invoked without initialization
	ErrNotInitialized = errors.New("parameter store adapter is not initialized")

	// ErrEmptyParameter is returned when the parameter exists but holds no value
	ErrEmptyParameter = errors.New("parameter has no value")
)

// ParameterStore reads secrets kept in AWS Systems Manager Parameter Store
type ParameterStore interface {
	// GetSecureString returns the decrypted value of the named parameter
	GetSecureString(ctx context.Context, name string) (string, error)

	// Init initialize variables and executes necessary procedures
	Init() error
}

type ssmClient interface {
	GetParameterWithContext(aws.Context, *ssm.GetParameterInput, ...request.Option) (*ssm.GetParameterOutput, error)
}

type awsParameterStore struct {
	logger    logging.Logger
	awsRegion string
	ssmSvc    ssmClient

	// The AWS NewSession function was encapsulated into the sessionCreator
	// to make easier creating unit tests
	sessionCreator func(awsRegion string) (*session.Session, error)
}

// NewParameterStore is a constructor for the concrete type of the ParameterStore interface
func NewParameterStore(logger logging.Logger, awsRegion string) ParameterStore {
	store := new(awsParameterStore)

	store.logger = logger
	store.awsRegion = awsRegion
	store.sessionCreator = func(awsRegion string) (*session.Session, error) {
		config := new(aws.Config)
		if awsRegion != "" {
			config.Region = aws.String(awsRegion)
		}

		return session.NewSessionWithOptions(session.Options{
			Config:            *config,
			SharedConfigState: session.SharedConfigEnable,
		})
	}

	return store
}

func (a *awsParameterStore) Init() error {
	sess, err := a.sessionCreator(a.awsRegion)
	if err != nil {
		return fmt.Errorf("couldn't create AWS session: %w", err)
	}

	a.ssmSvc = ssm.New(sess)

	return nil
}

func (a *awsParameterStore) GetSecureString(ctx context.Context, name string) (string, error) {
	if a.ssmSvc == nil {
		return "", fmt.Errorf("could not read parameter %q: %w", name, ErrNotInitialized)
	}

	logger := a.logger.WithField("parameter", name)
	logger.Debug("[GetSecureString] Will fetch the parameter")

	output, err := a.ssmSvc.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("error reading parameter %q from AWS SSM: %w", name, err)
	}

	if output.Parameter == nil || aws.StringValue(output.Parameter.Value) == "" {
		return "", fmt.Errorf("reading parameter %q: %w", name, ErrEmptyParameter)
	}

	logger.
		WithField("version", aws.Int64Value(output.Parameter.Version)).
		Debug("[GetSecureString] Parameter fetched with success")

	return aws.StringValue(output.Parameter.Value), nil
}
