package config

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// ListenAddrKey is the address where the HTTP interface will listen on
	ListenAddrKey = "LISTEN_ADDR"
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey selects the storage backend, either badger or inmemory
	DbTypeKey = "DB_TYPE"
	// TokenGatewayAddrKey is the address of the external token service. If
	// empty the daemon runs in standalone mode with an in-process gateway.
	TokenGatewayAddrKey = "TOKEN_GATEWAY_ADDR"
	// EngineAccountKey is the account holding the engine's custodial funds
	EngineAccountKey = "ENGINE_ACCOUNT"
	// EnableProfilerKey enables periodic memory statistics and a metrics dump
	// on shutdown
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey is the interval in seconds between two memory stats
	// reports when the profiler is enabled
	StatsIntervalKey = "STATS_INTERVAL"

	// DbLocation is the subdirectory of the datadir holding the database
	DbLocation = "db"

	// DbTypeBadger ...
	DbTypeBadger = "badger"
	// DbTypeInMemory ...
	DbTypeInMemory = "inmemory"
)

var vip *viper.Viper

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("TOKEX")
	vip.AutomaticEnv()

	vip.SetDefault(ListenAddrKey, ":9945")
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(DbTypeKey, DbTypeBadger)
	vip.SetDefault(TokenGatewayAddrKey, "")
	vip.SetDefault(EngineAccountKey, "tokexd")
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetDatadir returns the data directory of the daemon
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory of the database
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	switch dbType := GetString(DbTypeKey); dbType {
	case DbTypeBadger, DbTypeInMemory:
	default:
		return fmt.Errorf("db type %s is not supported", dbType)
	}

	if len(GetString(EngineAccountKey)) <= 0 {
		return fmt.Errorf("engine account must not be null")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tokexd"
	}
	return filepath.Join(home, ".tokexd")
}
