// Package config provides centralized configuration for the service.
//
// # Configuration Sources
//
// Configuration is built in three layers, later layers winning:
//
//	1. Built-in defaults (Default)
//	2. config.yaml / configs/config.yaml when present
//	3. SSF_* environment variables
//
// # Environment Variables
//
// All variables are namespaced under SSF_*:
//
//	SSF_SERVER_PORT=8080
//	SSF_SERVER_MAX_UPLOAD_BYTES=16777216
//	SSF_LOGGING_LEVEL=info
//	SSF_LOGGING_OUTPUT=stdout
//	SSF_ANALYSIS_DEFAULT_SHELF_LIFE_MONTHS=6
//	SSF_ANALYSIS_WINDOW_START_MONTH=6
//	SSF_ANALYSIS_WINDOW_END_MONTH=12
//
// Load validates ranges (port, timeouts, upload size, shelf life, month
// window) so misconfiguration fails at startup rather than at request time.
package config
