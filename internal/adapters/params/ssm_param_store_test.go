package params

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

type fakeSSM struct {
	values     map[string]string
	gotDecrypt bool
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.gotDecrypt = aws.ToBool(in.WithDecryption)
	v, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(v)}}, nil
}

func TestSSMParamStoreGetParameter(t *testing.T) {
	fake := &fakeSSM{values: map[string]string{"/rf/dev/DB_PASSWORD": "secret"}}
	store := &SSMParamStore{client: fake}

	v, err := store.GetParameter(context.Background(), "/rf/dev/DB_PASSWORD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "secret" {
		t.Fatalf("value = %q, want secret", v)
	}
	if !fake.gotDecrypt {
		t.Fatal("expected WithDecryption to be set")
	}

	if _, err := store.GetParameter(context.Background(), "/rf/dev/missing"); err == nil {
		t.Fatal("expected error for missing parameter")
	}
}
