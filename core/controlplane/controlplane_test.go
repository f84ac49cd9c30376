package controlplane_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lakecircle/core/controlplane"
	"lakecircle/core/controlplane/mocks"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIsNotConfigured(t *testing.T) {
	notConfigured := &smithy.GenericAPIError{Code: controlplane.CodeNoSuchLifecycleConfiguration, Message: "none"}

	assert.True(t, controlplane.IsNotConfigured(notConfigured))
	assert.True(t, controlplane.IsNotConfigured(fmt.Errorf("get lifecycle: %w", notConfigured)))
	assert.False(t, controlplane.IsNotConfigured(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, controlplane.IsNotConfigured(errors.New("connection reset")))
	assert.Equal(t, "", controlplane.ErrorCode(nil))
}

func TestCheckAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Match", func(t *testing.T) {
		api := new(mocks.IdentityAPI)
		api.On("GetCallerIdentity", ctx, mock.Anything).Return(&sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}, nil)

		assert.NoError(t, controlplane.CheckAccount(ctx, api, "123456789012"))
	})

	t.Run("Mismatch", func(t *testing.T) {
		api := new(mocks.IdentityAPI)
		api.On("GetCallerIdentity", ctx, mock.Anything).Return(&sts.GetCallerIdentityOutput{Account: aws.String("210987654321")}, nil)

		err := controlplane.CheckAccount(ctx, api, "123456789012")
		var mismatch *controlplane.AccountMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, "210987654321", mismatch.Got)
	})

	t.Run("AnyAccount", func(t *testing.T) {
		api := new(mocks.IdentityAPI)
		api.On("GetCallerIdentity", ctx, mock.Anything).Return(&sts.GetCallerIdentityOutput{Account: aws.String("210987654321")}, nil)

		assert.NoError(t, controlplane.CheckAccount(ctx, api, ""))
	})

	t.Run("IdentityError", func(t *testing.T) {
		api := new(mocks.IdentityAPI)
		api.On("GetCallerIdentity", ctx, mock.Anything).Return(nil, errors.New("expired token"))

		assert.Error(t, controlplane.CheckAccount(ctx, api, "123456789012"))
	})
}

func TestNewClients(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

	clients, err := controlplane.NewClients(context.Background(), controlplane.Config{
		Region:       "eu-west-1",
		Endpoint:     "http://localhost:9000",
		AccessKey:    "key",
		SecretKey:    "secret",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, clients.S3)
	assert.NotNil(t, clients.Identity)
	assert.NotNil(t, clients.Models)
	assert.Equal(t, "eu-west-1", clients.Region)
}

func writeCABundle(t *testing.T) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "lakecircle test ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pem.Encode(f, &pem.Block{Type: "CERTIFICATE", Bytes: der}))
	return path
}

func TestNewClientsWithCABundle(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")
	t.Setenv("AWS_CA_BUNDLE", writeCABundle(t))

	clients, err := controlplane.NewClients(context.Background(), controlplane.Config{
		Region:         "eu-west-1",
		AccessKey:      "key",
		SecretKey:      "secret",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	assert.NotNil(t, clients.S3)
	assert.Equal(t, "eu-west-1", clients.Region)
}
