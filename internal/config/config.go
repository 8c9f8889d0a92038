package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/custodia-network/custodia-daemon/internal/core/domain"
)

const (
	// ListeningPortKey is the port where the HTTP interface will listen on
	ListeningPortKey = "LISTENING_PORT"
	// DatadirKey is the local data directory to store the internal state of daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey is the storage backend. Either "badger" or "inmemory"
	DbTypeKey = "DB_TYPE"
	// OnboardingAuthorityKey is the identity allowed to onboard new tenants
	OnboardingAuthorityKey = "ONBOARDING_AUTHORITY"
	// WebhookRequestTimeoutKey are the milliseconds to wait for webhook endpoint responses before timeouts
	WebhookRequestTimeoutKey = "WEBHOOK_REQUEST_TIMEOUT"
	// StatsIntervalKey defines the interval in seconds for printing basic custody statistics
	StatsIntervalKey = "STATS_INTERVAL"
	// RateLimitKey represents the number of requests per second accepted by the HTTP interface
	RateLimitKey = "RATE_LIMIT"
	// EnableFaucetKey enables the faucet endpoint used to fund accounts on local runs
	EnableFaucetKey = "ENABLE_FAUCET"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"

	// DbLocation is the subdir of the datadir holding the badger stores.
	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("custodia-daemon", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("CUSTODIA")
	vip.AutomaticEnv()

	vip.SetDefault(ListeningPortKey, 9945)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(WebhookRequestTimeoutKey, 15000)
	vip.SetDefault(StatsIntervalKey, 600)
	vip.SetDefault(RateLimitKey, 50)
	vip.SetDefault(EnableFaucetKey, false)
	vip.SetDefault(EnableProfilerKey, false)

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

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the location of the badger stores.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	dbType := GetString(DbTypeKey)
	if dbType != "badger" && dbType != "inmemory" {
		return fmt.Errorf("db type must be either 'badger' or 'inmemory'")
	}

	if authority := GetString(OnboardingAuthorityKey); authority != "" {
		if !domain.IsValidPubKey(authority) {
			return fmt.Errorf(
				"onboarding authority must be a 64-char hex encoded identity",
			)
		}
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return err
	}
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
