package validation

import (
	"fmt"
	"strings"

	"clippy/config/models"
	"clippy/internal/providers"
)

// Validator validates model configuration input
type Validator struct {
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ParseModelAPI splits "<model_name>:<api_key>" on the first colon
func (v *Validator) ParseModelAPI(arg string) (name, apiKey string, err error) {
	name, apiKey, ok := strings.Cut(arg, ":")
	if !ok {
		return "", "", fmt.Errorf("invalid format. Use <model_name>:<api_key>")
	}
	name = strings.TrimSpace(name)
	apiKey = strings.TrimSpace(apiKey)
	if name == "" || apiKey == "" {
		return "", "", fmt.Errorf("model name and API key cannot be empty")
	}
	if err := v.ValidateModelName(name); err != nil {
		return "", "", err
	}
	return name, apiKey, nil
}

// ValidateModelName checks if a model name is valid
func (v *Validator) ValidateModelName(model string) error {
	if model == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	if strings.ContainsAny(model, "<>\"'&/\\ \t\n") {
		return fmt.Errorf("model name contains invalid characters")
	}
	if len(model) > 100 {
		return fmt.Errorf("model name is too long (max 100 characters)")
	}
	return nil
}

// ValidateModelConfig validates a stored model entry
func (v *Validator) ValidateModelConfig(name string, cfg models.ModelConfig) error {
	if err := v.ValidateModelName(name); err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key for model '%s' cannot be empty", name)
	}
	if cfg.ProviderType != "" {
		if _, err := providers.Get(cfg.ProviderType); err != nil {
			return fmt.Errorf("unknown provider type '%s' for model '%s'", cfg.ProviderType, name)
		}
	}
	return nil
}
