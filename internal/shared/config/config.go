package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/ini.v1"

	"kvs_client/internal/shared/types"
)

const (
	DefaultHost       = "localhost"
	DefaultPort       = 6278
	DefaultPayload    = "test\n"
	DefaultBufferSize = 1024
	DefaultNetwork    = "tcp4"
	DefaultLogLevel   = "warn"
)

// Default 返回内置配置: localhost:6278, 发送 "test\n", 读取最多 1024 字节。
func Default() *types.Config {
	return &types.Config{
		EndpointConf: types.EndpointConf{Host: DefaultHost, Port: DefaultPort},
		ExchangeConf: types.ExchangeConf{Payload: DefaultPayload, BufferSize: DefaultBufferSize},
		DialConf:     types.DialConf{Network: DefaultNetwork},
		LogConf:      types.LogConf{Level: DefaultLogLevel},
	}
}

// LoadIni 将 ini 文件叠加到 cfg 上，然后应用环境变量覆盖。
// Keys missing from the file keep whatever cfg already holds.
func LoadIni(cfg *types.Config, fileName string) error {
	iniFile, err := ini.Load(fileName)
	if err != nil {
		return fmt.Errorf("failed to load ini file: %w", err)
	}
	if err := iniFile.MapTo(cfg); err != nil {
		return fmt.Errorf("failed to map ini file: %w", err)
	}
	overrideFromEnvString(&cfg.EndpointConf.Host, "KVS_HOST")
	overrideFromEnvInt(&cfg.EndpointConf.Port, "KVS_PORT")
	return Validate(cfg)
}

// Validate rejects values no exchange could run with.
func Validate(cfg *types.Config) error {
	if cfg.EndpointConf.Host == "" {
		return fmt.Errorf("endpoint host must not be empty")
	}
	if cfg.EndpointConf.Port <= 0 || cfg.EndpointConf.Port > 65535 {
		return fmt.Errorf("endpoint port %d out of range", cfg.EndpointConf.Port)
	}
	if cfg.ExchangeConf.BufferSize <= 0 {
		return fmt.Errorf("buffer_size must be positive, got %d", cfg.ExchangeConf.BufferSize)
	}
	switch cfg.DialConf.Network {
	case "tcp", "tcp4", "tcp6":
	default:
		return fmt.Errorf("unsupported network %q", cfg.DialConf.Network)
	}
	if cfg.DialConf.TimeoutMs < 0 || cfg.DialConf.IOTimeoutMs < 0 {
		return fmt.Errorf("dial timeouts must not be negative")
	}
	return nil
}

func overrideFromEnvString(target *string, envName string) {
	if envValue := os.Getenv(envName); envValue != "" {
		*target = envValue
	}
}

func overrideFromEnvInt(target *int, envName string) {
	envValue := os.Getenv(envName)
	if envValue != "" {
		if intValue, err := strconv.Atoi(envValue); err == nil {
			*target = intValue
		}
	}
}
