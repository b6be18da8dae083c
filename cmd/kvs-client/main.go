package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"kvs_client/internal/connector"
	"kvs_client/internal/shared/config"
	"kvs_client/internal/shared/logger"
)

func main() {
	configPath := flag.String("config", "", "Optional .ini file overriding the built-in endpoint (localhost:6278)")
	flag.Parse()

	// 1. 内置配置，必要时叠加 ini 文件
	cfg := config.Default()
	if *configPath != "" {
		if err := config.LoadIni(cfg, *configPath); err != nil {
			// Use standard fmt before logger is initialized.
			fmt.Fprintf(os.Stderr, "Fatal: Failed to load config file '%s': %v\n", *configPath, err)
			os.Exit(1)
		}
	}

	// 2. 初始化日志系统
	if err := logger.Init(cfg.LogConf); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// 3. 一次连接、发送、接收、打印
	if _, err := connector.New(cfg).Run(context.Background(), os.Stdout); err != nil {
		logger.Fatal().Err(err).Str("endpoint", cfg.EndpointConf.Address()).Msg("exchange failed")
	}
}
