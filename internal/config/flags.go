package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a host:port flag value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a partial config. Unset flags stay zero so they
// do not override other sources.
//
// Flags:
//
//	-a               backend listen address host:port
//	-u               backend base URL used by the client
//	-d               database DSN
//	-c / -config     JSON config file
//	-token-sign-key  grant token signing key
//	-token-issuer    grant token issuer
//	-grant-duration  lifetime of a TOTP grant (e.g. 10m)
//	-api-token       bearer token shared by client and backend
//	-request-timeout timeout of a single request
//	-origins         comma separated CORS origins
//	-idle-timeout    client idle lock window (e.g. 5m)
//	-reveal-window   client reveal and clipboard window (e.g. 30s)
//	-log-file        client log file
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vault", flag.ContinueOnError)

	var serverAddress NetAddress
	var adapterURL, databaseDSN, jsonConfigPath string
	var tokenSignKey, tokenIssuer, apiToken, origins, logFile string
	var grantDuration, requestTimeout, idleTimeout, revealWindow time.Duration

	fs.Var(&serverAddress, "a", "Backend listen address host:port")
	fs.StringVar(&adapterURL, "u", "", "Backend base URL")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Grant token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Grant token issuer")
	fs.DurationVar(&grantDuration, "grant-duration", 0, "TOTP grant lifetime (e.g. 10m)")
	fs.StringVar(&apiToken, "api-token", "", "Bearer token for /vault routes")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 10s)")
	fs.StringVar(&origins, "origins", "", "Comma separated CORS origins")
	fs.DurationVar(&idleTimeout, "idle-timeout", 0, "Idle lock window (e.g. 5m)")
	fs.DurationVar(&revealWindow, "reveal-window", 0, "Reveal and clipboard window (e.g. 30s)")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			GrantDuration: grantDuration,
			APIToken:      apiToken,
		},
		Storage: Storage{DB: DB{DSN: databaseDSN}},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			AllowedOrigins: splitList(origins),
		},
		Adapter: Adapter{
			HTTPAddress:    adapterURL,
			RequestTimeout: requestTimeout,
			APIToken:       apiToken,
		},
		Vault: Vault{
			IdleTimeout:  idleTimeout,
			RevealWindow: revealWindow,
			LogFile:      logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns host:port, or "" when nothing was set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
