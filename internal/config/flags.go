package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server command-line flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (postgres, sqlite)
//	-f artifact directory
//	-default-model artifact key of the default model
//	-files-backend artifact backend (local, s3)
//	-c/-config json file path with configs
//	-session-sign-key session cookie signing key
//	-session-ttl session lifetime (e.g., "24h")
//	-sessions-store session store (memory, badger)
//	-sessions-dir badger session directory
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-upload-bytes upload size limit
//	-ml-mode ML shell transport (exec, http)
//	-ml-command ML shell executable
//	-ml-url ML shell base URL
//	-ml-timeout ML shell call timeout
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var cfg StructuredConfig

	fs := flag.NewFlagSet("menu-predictor", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "db-driver", "", "Database driver (postgres, sqlite)")
	fs.StringVar(&cfg.Storage.Files.ArtifactDir, "f", "", "Artifact directory")
	fs.StringVar(&cfg.Storage.Files.DefaultModel, "default-model", "", "Default model artifact key")
	fs.StringVar(&cfg.Storage.Files.Backend, "files-backend", "", "Artifact backend (local, s3)")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.SessionSignKey, "session-sign-key", "", "Session signing key")
	fs.DurationVar(&cfg.App.SessionTTL, "session-ttl", 0, "Session lifetime (e.g., 24h)")
	fs.StringVar(&cfg.Storage.Sessions.Store, "sessions-store", "", "Session store (memory, badger)")
	fs.StringVar(&cfg.Storage.Sessions.Dir, "sessions-dir", "", "Badger session directory")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&cfg.Server.MaxUploadBytes, "max-upload-bytes", 0, "Upload size limit in bytes")
	fs.StringVar(&cfg.ML.Mode, "ml-mode", "", "ML shell transport (exec, http)")
	fs.StringVar(&cfg.ML.Command, "ml-command", "", "ML shell executable")
	fs.StringVar(&cfg.ML.URL, "ml-url", "", "ML shell base URL")
	fs.DurationVar(&cfg.ML.Timeout, "ml-timeout", 0, "ML shell call timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()

	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
