package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/stackmate/walletcfg/internal/core/domain"
)

const (
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NodeAddressKey is the address of the blockchain backend, either an
	// electrum url, a bitcoind url with ?auth=user:pass or "default"
	NodeAddressKey = "NODE_ADDRESS"
	// Socks5ProxyKey is the host:port of an optional SOCKS5 proxy used for
	// electrum connections
	Socks5ProxyKey = "SOCKS5_PROXY"
	// OfflineKey makes the resolve command skip connecting to the node
	OfflineKey = "OFFLINE"
	// NetworkKey is the network probed by check and monitor commands
	NetworkKey = "NETWORK"
	// MonitorIntervalKey is the interval in seconds between two health probes
	MonitorIntervalKey = "MONITOR_INTERVAL"
	// MetricsAddrKey is the address where prometheus metrics are served
	MetricsAddrKey = "METRICS_ADDR"
	// StatsIntervalKey defines interval in seconds for logging basic
	// statistics while monitoring, 0 disables them
	StatsIntervalKey = "STATS_INTERVAL"
)

var vip *viper.Viper

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("WALLETCFG")
	vip.AutomaticEnv()

	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NodeAddressKey, domain.DefaultNodeAddress)
	vip.SetDefault(OfflineKey, false)
	vip.SetDefault(NetworkKey, domain.NetworkTest.String())
	vip.SetDefault(MonitorIntervalKey, 60)
	vip.SetDefault(MetricsAddrKey, ":9102")
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	return nil
}

// Set overrides the value of key, typically with one coming from a cli flag.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// GetMonitorInterval returns the MONITOR_INTERVAL as a duration.
func GetMonitorInterval() time.Duration {
	return time.Duration(GetInt(MonitorIntervalKey)) * time.Second
}

// GetStatsInterval returns the STATS_INTERVAL as a duration.
func GetStatsInterval() time.Duration {
	return time.Duration(GetInt(StatsIntervalKey)) * time.Second
}

// GetNetwork returns the parsed NETWORK.
func GetNetwork() domain.Network {
	network, _ := domain.ParseNetwork(GetString(NetworkKey))
	return network
}

func validate() error {
	if _, err := domain.ParseNetwork(GetString(NetworkKey)); err != nil {
		return fmt.Errorf("invalid %s: %s", NetworkKey, err)
	}

	if GetInt(MonitorIntervalKey) <= 0 {
		return fmt.Errorf("%s must be greater than 0", MonitorIntervalKey)
	}

	if GetInt(StatsIntervalKey) < 0 {
		return fmt.Errorf("%s must not be negative", StatsIntervalKey)
	}

	if len(GetString(NodeAddressKey)) <= 0 {
		return fmt.Errorf("missing node address")
	}

	return nil
}
