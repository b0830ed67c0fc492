package dto

// PluginSummary describes a registered plugin and its enablement on a
// project
type PluginSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
	HasConfig   bool   `json:"has_config"`
	CanDisable  bool   `json:"can_disable"`
}

// PluginListResponse is the list envelope for project plugins
type PluginListResponse struct {
	Count int              `json:"count"`
	List  []*PluginSummary `json:"list"`
}

// UpdatePluginsRequest carries the full set of slugs that should be enabled
// for the project; every other toggleable plugin is disabled.
type UpdatePluginsRequest struct {
	Plugins []string `json:"plugins"`
}

// PluginConfigField is one declared configuration field with its current
// value for the project. Secret values are redacted.
type PluginConfigField struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Secret   bool     `json:"secret"`
	Choices  []string `json:"choices,omitempty"`
	Value    string   `json:"value,omitempty"`
}

// PluginConfigResponse is the configuration view of a plugin on a project
type PluginConfigResponse struct {
	Slug   string               `json:"slug"`
	Title  string               `json:"title"`
	Fields []*PluginConfigField `json:"fields"`
}

// UpdatePluginConfigRequest carries submitted configuration values keyed by
// field key
type UpdatePluginConfigRequest struct {
	Config map[string]string `json:"config" binding:"required"`
}
