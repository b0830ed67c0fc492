/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// Server holds the configuration parameters for the application.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"DEBUG"`

	// Server configurations
	Port string `envconfig:"PORT" default:"9280"`

	// Database configurations
	Database     Database `envconfig:"DATABASE"`
	DBSchemaPath string   `envconfig:"DB_SCHEMA_PATH" default:"./src/internal/database/schema.sql"`

	// Plugin catalog shipped with the server (used to register plugins at startup)
	PluginCatalogPath string `envconfig:"PLUGIN_CATALOG_PATH" default:"./resources/plugins"`

	// JWT Authentication configurations
	JWT JWT `envconfig:"JWT"`

	// WebSocket configurations for the dashboard event stream
	WebSocket WebSocket `envconfig:"WEBSOCKET"`

	// DSN rendering for project keys
	DSN DSN `envconfig:"DSN"`

	// Projects holds project management behavior switches
	Projects Projects `envconfig:"PROJECTS"`

	// TLS configurations
	TLS TLS `envconfig:"TLS"`
}

// TLS holds TLS certificate configuration
type TLS struct {
	CertDir string `envconfig:"CERT_DIR" default:"./data/certs"`
}

// JWT holds JWT-specific configuration
type JWT struct {
	SecretKey      string   `envconfig:"SECRET_KEY" default:"your-secret-key-change-in-production"`
	Issuer         string   `envconfig:"ISSUER" default:"tracker"`
	SkipPaths      []string `envconfig:"SKIP_PATHS" default:"/health"`
	SkipValidation bool     `envconfig:"SKIP_VALIDATION" default:"true"` // Skip signature validation for development
}

// WebSocket holds WebSocket-specific configuration
type WebSocket struct {
	MaxConnections    int `envconfig:"WS_MAX_CONNECTIONS" default:"1000"`
	ConnectionTimeout int `envconfig:"WS_CONNECTION_TIMEOUT" default:"30"` // seconds
	MaxPerOrg         int `envconfig:"WS_MAX_PER_ORG" default:"10"`
}

// DSN holds the address clients use when reporting events with a project key
type DSN struct {
	Scheme string `envconfig:"SCHEME" default:"https"`
	Host   string `envconfig:"HOST" default:"localhost:9280"`
}

// Projects holds project management behavior switches
type Projects struct {
	// AllowCreation opens project creation to every authenticated user.
	// When false, the project:create scope (or admin) is required.
	AllowCreation bool `envconfig:"ALLOW_CREATION" default:"true"`
}

// Database holds database-specific configuration
type Database struct {
	Driver string `envconfig:"DRIVER" default:"sqlite3"`
	// Path is the file path for SQLite databases.
	// Use DATABASE_DB_PATH to override; keeping it distinct from the OS PATH variable.
	Path            string `envconfig:"DB_PATH" default:"./data/tracker_api.db"`
	Host            string `envconfig:"HOST" default:"localhost"`
	Port            int    `envconfig:"PORT" default:"5432"`
	Name            string `envconfig:"NAME" default:"tracker_api"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	SSLMode         string `envconfig:"SSL_MODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME" default:"300"` // seconds

	// ExecuteSchemaDDL controls whether to run the schema DDL (CREATE TABLE, etc.) on startup.
	// Set to false when the DB user lacks DDL privileges (e.g. deployed Postgres with restricted role).
	// Env: DATABASE_EXECUTE_SCHEMA_DDL (default: true)
	ExecuteSchemaDDL bool `envconfig:"EXECUTE_SCHEMA_DDL" default:"true"`
}

// package-level variable and mutex for thread safety
var (
	processOnce     sync.Once
	settingInstance *Server
)

// GetConfig initializes and returns a singleton instance of the Server
// configuration, populated from environment variables. It uses sync.Once so
// the initialization logic runs only once, making it safe for concurrent
// use. If there is an error during initialization, the function panics.
func GetConfig() *Server {
	var err error
	processOnce.Do(func() {
		settingInstance = &Server{}
		err = envconfig.Process("", settingInstance)
		if err == nil {
			err = validateDSNConfig(&settingInstance.DSN)
		}
	})
	if err != nil {
		panic(err)
	}
	return settingInstance
}

// validateDSNConfig ensures the DSN rendering configuration is usable;
// project keys are rendered into client DSNs on every listing request.
func validateDSNConfig(cfg *DSN) error {
	if cfg.Scheme != "http" && cfg.Scheme != "https" {
		return fmt.Errorf("DSN_SCHEME must be http or https, got %q", cfg.Scheme)
	}
	if cfg.Host == "" {
		return fmt.Errorf("DSN_HOST is not configured")
	}
	return nil
}
