package s3

import (
	"errors"
	"testing"

	"github.com/bstardust/cloud-file-uploader/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		AccessKey: "AKIAEXAMPLE",
		SecretKey: "topsecret",
		Bucket:    "my-bucket",
	}
}

func TestNew(t *testing.T) {
	client, err := New(validConfig())
	require.NoError(t, err)

	assert.Equal(t, "s3", client.Name())
	assert.Equal(t, "my-bucket", client.Bucket())
}

func TestNewMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"no access key", func(c *Config) { c.AccessKey = "" }, "access_key"},
		{"no secret key", func(c *Config) { c.SecretKey = "" }, "secret_key"},
		{"no bucket", func(c *Config) { c.Bucket = "" }, "bucket_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			_, err := New(cfg)
			require.Error(t, err)

			var fieldErr *common.MissingFieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, "s3", fieldErr.Section)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestNewCustomEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Endpoint = "http://localhost:9000"

	client, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", client.Bucket())
}
