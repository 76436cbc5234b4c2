package models

import "sort"

// ModelConfig holds the credentials of one configured model
type ModelConfig struct {
	APIKey       string `json:"api_key"`
	ProviderType string `json:"provider_type"`
}

// File represents the structure of the config file
type File struct {
	Models       map[string]ModelConfig `json:"models"`
	DefaultModel string                 `json:"default_model"`
	LogEnabled   bool                   `json:"log_enabled"`
}

// NewFile returns an empty config with logging enabled
func NewFile() *File {
	return &File{
		Models:     map[string]ModelConfig{},
		LogEnabled: true,
	}
}

// ModelNames returns configured model names in sorted order
func (f *File) ModelNames() []string {
	names := make([]string, 0, len(f.Models))
	for name := range f.Models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
