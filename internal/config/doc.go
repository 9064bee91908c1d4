// Package config assembles the hds-server configuration.
//
// Sources are merged in increasing priority: environment variables
// (APP_*, COMPLIANCE_*, STORAGE_*, SERVER_*, AUDIT_*, WORKERS_*), then flags,
// then the JSON file named by -c or CONFIG. Unset fields get the defaults in
// config_validation.go. Start with [GetStructuredConfig].
package config
