package infra

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestNewRedisConnection(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)

	redisContainer, err := tcredis.Run(context.Background(), "redis:7.4")
	require.NoError(t, err)
	defer func() {
		if e := testcontainers.TerminateContainer(redisContainer); e != nil {
			t.Logf("failed to terminate container: %s", e)
		}
	}()

	host, err := redisContainer.Host(context.Background())
	require.NoError(t, err)

	port, err := redisContainer.MappedPort(context.Background(), "6379")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		input       RedisConfig
		expectedErr bool
	}{
		{
			name: "valid config",
			input: RedisConfig{
				Host: host,
				Port: port.Int(),
				DB:   1,
			},
			expectedErr: false,
		},
		{
			name: "invalid config",
			input: RedisConfig{
				Host: host,
				Port: 8001,
			},
			expectedErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, e := NewRedisConnection(tc.input)
			if tc.expectedErr {
				assert.Error(t, e)
				return
			}
			require.NoError(t, e)
			require.NotNil(t, client)
			defer client.Close()
			assert.Equal(t, 1, client.Options().DB)
		})
	}
}
