package main

import (
	"flag"
	"os"

	"BitwoodRPG/internal/server"
)

func main() {
	addr := flag.String("addr", "", "address to listen on (e.g., 127.0.0.1:8080)")
	configPath := flag.String("config", "configs/server.yaml", "path to server config YAML")
	logLevel := flag.String("log-level", "", "override log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	if err := server.StartApp(cfg); err != nil {
		os.Exit(1)
	}
}
