package controlplane

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// CodeNoSuchLifecycleConfiguration is returned for buckets without lifecycle rules.
const CodeNoSuchLifecycleConfiguration = "NoSuchLifecycleConfiguration"

// ErrorCode returns the API error code carried by err, or "".
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsNotConfigured reports whether err means the bucket has no lifecycle configuration.
func IsNotConfigured(err error) bool {
	return ErrorCode(err) == CodeNoSuchLifecycleConfiguration
}

// AccountMismatchError reports credentials that belong to another account.
type AccountMismatchError struct {
	Want string
	Got  string
}

func (e *AccountMismatchError) Error() string {
	return fmt.Sprintf("credentials belong to account %s, expected %s", e.Got, e.Want)
}

// CheckAccount verifies that the credentials behind api belong to want.
// An empty want only checks that the credentials resolve.
func CheckAccount(ctx context.Context, api IdentityAPI, want string) error {
	out, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("resolve caller identity: %w", err)
	}
	got := ""
	if out.Account != nil {
		got = *out.Account
	}
	if want != "" && got != want {
		return &AccountMismatchError{Want: want, Got: got}
	}
	return nil
}
