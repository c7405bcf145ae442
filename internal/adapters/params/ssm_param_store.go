package params

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMParamStore reads decrypted values from AWS Systems Manager Parameter Store.
// Credentials come from the default AWS credential chain.
type SSMParamStore struct {
	client ssmAPI
}

func NewSSMParamStore(ctx context.Context, region string) (*SSMParamStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("ssm param store: load aws config: %w", err)
	}
	return &SSMParamStore{client: ssm.NewFromConfig(cfg)}, nil
}

func (s *SSMParamStore) GetParameter(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", errors.New("ssm get parameter: name must not be empty")
	}

	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("ssm get parameter %q: %w", name, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("ssm get parameter %q: empty value", name)
	}

	return aws.ToString(out.Parameter.Value), nil
}
