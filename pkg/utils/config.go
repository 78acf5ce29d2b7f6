package utils

import "os"

type ServerConfig struct {
	HTTPAddr string
	TCPAddr  string
}

func LoadServerConfig() ServerConfig {
	httpAddr := os.Getenv("CATALOGHUB_HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	tcpAddr := os.Getenv("CATALOGHUB_TCP_ADDR")
	if tcpAddr == "" {
		tcpAddr = ":7070"
	}

	return ServerConfig{
		HTTPAddr: httpAddr,
		TCPAddr:  tcpAddr,
	}
}
