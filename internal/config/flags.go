package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the configuration flags found in args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-master-secret master secret for field key derivation
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-schema field policy JSON file
//	-queue-path local audit queue SQLite file
//	-collector-url remote audit collector base URL
//	-audit-sync-interval local audit queue sync interval
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-hds-keeper", flag.ContinueOnError)

	var (
		serverAddress     NetAddress
		databaseDSN       string
		jsonConfigPath    string
		masterSecret      string
		tokenSignKey      string
		tokenIssuer       string
		tokenDuration     time.Duration
		requestTimeout    time.Duration
		schemaFile        string
		queuePath         string
		collectorURL      string
		auditSyncInterval time.Duration
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&masterSecret, "master-secret", "", "Master secret for field key derivation")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&schemaFile, "schema", "", "Field policy JSON file")
	fs.StringVar(&queuePath, "queue-path", "", "Local audit queue SQLite file")
	fs.StringVar(&collectorURL, "collector-url", "", "Remote audit collector base URL")
	fs.DurationVar(&auditSyncInterval, "audit-sync-interval", 0, "Local audit queue sync interval")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			MasterSecret:  masterSecret,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Compliance: Compliance{
			SchemaFile: schemaFile,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			LocalQueue: LocalQueue{
				Path: queuePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Audit: Audit{
			CollectorURL: collectorURL,
		},
		Workers: Workers{
			AuditSyncInterval: auditSyncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
