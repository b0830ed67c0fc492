package constants

// Project status values
const (
	ProjectStatusActive   = "active"
	ProjectStatusDisabled = "disabled"
)

// ValidProjectStatuses Valid project status values
var ValidProjectStatuses = map[string]bool{
	ProjectStatusActive:   true,
	ProjectStatusDisabled: true,
}

// Team membership types
const (
	MemberTypeOwner  = "owner"
	MemberTypeMember = "member"
)

// ValidMemberTypes Valid membership types
var ValidMemberTypes = map[string]bool{
	MemberTypeOwner:  true,
	MemberTypeMember: true,
}

// Project removal modes. The wire values are kept as the legacy
// single-character strings understood by existing dashboards.
const (
	RemovalTypeDelete  = "1"
	RemovalTypeMerge   = "2"
	RemovalTypeDisable = "3"
)

// Permission actions consulted through the plugin has-perm hook chain
const (
	ActionEditProject            = "edit_project"
	ActionConfigureProjectPlugin = "configure_project_plugin"
)

// Token scopes
const (
	ScopeAdmin         = "admin"
	ScopeProjectCreate = "project:create"
)

// PluginOptionEnabled Reserved per-project plugin option key storing enablement
const PluginOptionEnabled = "enabled"

// Plugin config field types
const (
	PluginFieldTypeText   = "text"
	PluginFieldTypeURL    = "url"
	PluginFieldTypeSecret = "secret"
	PluginFieldTypeChoice = "choice"
)

// ValidPluginFieldTypes Valid plugin config field types
var ValidPluginFieldTypes = map[string]bool{
	PluginFieldTypeText:   true,
	PluginFieldTypeURL:    true,
	PluginFieldTypeSecret: true,
	PluginFieldTypeChoice: true,
}
