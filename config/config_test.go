package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokex-network/tokex-daemon/config"
)

func TestDefaults(t *testing.T) {
	require.Equal(t, ":9945", config.GetString(config.ListenAddrKey))
	require.Equal(t, config.DbTypeBadger, config.GetString(config.DbTypeKey))
	require.Equal(t, "tokexd", config.GetString(config.EngineAccountKey))
	require.Empty(t, config.GetString(config.TokenGatewayAddrKey))
	require.False(t, config.GetBool(config.EnableProfilerKey))
	require.NotEmpty(t, config.GetDatadir())
	require.Contains(t, config.GetDbDir(), config.GetDatadir())
}

func TestSet(t *testing.T) {
	config.Set(config.DbTypeKey, config.DbTypeInMemory)
	require.Equal(t, config.DbTypeInMemory, config.GetString(config.DbTypeKey))
	config.Set(config.DbTypeKey, config.DbTypeBadger)
}
