package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		MasterSecret    string   `json:"master_secret"`
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		TokenDuration   Duration `json:"token_duration"`
		Version         string   `json:"version"`
		DisplayFallback string   `json:"display_fallback"`
	} `json:"app,omitempty"`

	Compliance struct {
		SchemaFile     string `json:"schema_file"`
		RetentionYears int    `json:"retention_years"`
	} `json:"compliance,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		LocalQueue struct {
			Path     string `json:"path"`
			Capacity int    `json:"capacity"`
		} `json:"local_queue,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Audit struct {
		CollectorURL   string   `json:"collector_url"`
		RequestTimeout Duration `json:"request_timeout"`
		WriteTimeout   Duration `json:"write_timeout"`
	} `json:"audit,omitempty"`

	Workers struct {
		AuditSyncInterval Duration `json:"audit_sync_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			MasterSecret:    jsonCfg.App.MasterSecret,
			TokenSignKey:    jsonCfg.App.TokenSignKey,
			TokenIssuer:     jsonCfg.App.TokenIssuer,
			TokenDuration:   time.Duration(jsonCfg.App.TokenDuration),
			Version:         jsonCfg.App.Version,
			DisplayFallback: jsonCfg.App.DisplayFallback,
		},
		Compliance: Compliance{
			SchemaFile:     jsonCfg.Compliance.SchemaFile,
			RetentionYears: jsonCfg.Compliance.RetentionYears,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			LocalQueue: LocalQueue{
				Path:     jsonCfg.Storage.LocalQueue.Path,
				Capacity: jsonCfg.Storage.LocalQueue.Capacity,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Audit: Audit{
			CollectorURL:   jsonCfg.Audit.CollectorURL,
			RequestTimeout: time.Duration(jsonCfg.Audit.RequestTimeout),
			WriteTimeout:   time.Duration(jsonCfg.Audit.WriteTimeout),
		},
		Workers: Workers{
			AuditSyncInterval: time.Duration(jsonCfg.Workers.AuditSyncInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
