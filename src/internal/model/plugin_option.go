package model

import (
	"time"
)

// PluginOption is a single configuration value stored for a plugin on a
// project. The reserved key "enabled" stores per-project enablement.
type PluginOption struct {
	ProjectID  string    `json:"project_id" db:"project_id"`
	PluginSlug string    `json:"plugin_slug" db:"plugin_slug"`
	Key        string    `json:"key" db:"key"`
	Value      string    `json:"value" db:"value"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the PluginOption model
func (PluginOption) TableName() string {
	return "plugin_options"
}
