package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tracker-api/src/internal/constants"

	"gopkg.in/yaml.v3"
)

type configFieldYAML struct {
	Key      string   `yaml:"key"`
	Label    string   `yaml:"label"`
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required"`
	Secret   bool     `yaml:"secret"`
	Choices  []string `yaml:"choices"`
	Default  string   `yaml:"default"`
}

type pluginDescriptorYAML struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Metadata   struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
	Spec struct {
		DisplayName      string            `yaml:"displayName"`
		Description      string            `yaml:"description"`
		CanDisable       *bool             `yaml:"canDisable"`
		EnabledByDefault bool              `yaml:"enabledByDefault"`
		Config           []configFieldYAML `yaml:"config"`
	} `yaml:"spec"`
}

// LoadCatalogFromDirectory reads plugin descriptor YAML files from a
// directory and registers each into the registry. Permission hooks are not
// part of the catalog; they are attached in code via Registry.SetHook.
func LoadCatalogFromDirectory(registry *Registry, dirPath string) error {
	if strings.TrimSpace(dirPath) == "" {
		return fmt.Errorf("plugin catalog directory path is empty")
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read plugin catalog directory %s: %w", dirPath, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".yaml") && !strings.HasSuffix(lower, ".yml") {
			continue
		}

		filePath := filepath.Join(dirPath, name)
		content, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return fmt.Errorf("failed to read plugin descriptor %s: %w", filePath, readErr)
		}

		p, parseErr := parseDescriptor(content, filePath)
		if parseErr != nil {
			return parseErr
		}

		if regErr := registry.Register(p); regErr != nil {
			return fmt.Errorf("failed to register plugin from %s: %w", filePath, regErr)
		}
	}

	return nil
}

func parseDescriptor(content []byte, filePath string) (*Plugin, error) {
	var doc pluginDescriptorYAML
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML descriptor %s: %w", filePath, err)
	}

	if strings.TrimSpace(doc.Metadata.Name) == "" {
		return nil, fmt.Errorf("plugin descriptor %s is missing metadata.name", filePath)
	}
	if strings.TrimSpace(doc.Spec.DisplayName) == "" {
		return nil, fmt.Errorf("plugin descriptor %s is missing spec.displayName", filePath)
	}

	fields := make([]ConfigField, 0, len(doc.Spec.Config))
	for _, f := range doc.Spec.Config {
		if strings.TrimSpace(f.Key) == "" {
			return nil, fmt.Errorf("plugin descriptor %s declares a config field without a key", filePath)
		}
		fieldType := f.Type
		if fieldType == "" {
			fieldType = constants.PluginFieldTypeText
		}
		if !constants.ValidPluginFieldTypes[fieldType] {
			return nil, fmt.Errorf("plugin descriptor %s: config field %q has unknown type %q", filePath, f.Key, fieldType)
		}
		fields = append(fields, ConfigField{
			Key:      f.Key,
			Label:    f.Label,
			Type:     fieldType,
			Required: f.Required,
			Secret:   f.Secret || fieldType == constants.PluginFieldTypeSecret,
			Choices:  f.Choices,
			Default:  f.Default,
		})
	}

	// Toggleable unless the descriptor says otherwise
	canDisable := true
	if doc.Spec.CanDisable != nil {
		canDisable = *doc.Spec.CanDisable
	}

	return &Plugin{
		Slug:             doc.Metadata.Name,
		Title:            doc.Spec.DisplayName,
		Description:      doc.Spec.Description,
		CanDisable:       canDisable,
		EnabledByDefault: doc.Spec.EnabledByDefault,
		ConfFields:       fields,
	}, nil
}
