package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"convoy/pkg/llmwire"
)

// ProviderProfile names one configured backend the CLI can talk to, loaded
// from providers.yaml. Grounded on lucky-mandator-gocode-router's
// internal/config.ProviderConfig, generalized from that repo's inbound
// proxy-profile shape to this repo's outbound client-provider shape.
type ProviderProfile struct {
	Kind    string `yaml:"kind"` // "openai", "anthropic", "openrouter", "compliant"
	URL     string `yaml:"url"`  // only meaningful for kind: compliant
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Default bool   `yaml:"default"`
}

// FileConfig is the top-level shape of providers.yaml.
type FileConfig struct {
	Providers     map[string]ProviderProfile `yaml:"providers"`
	MaxModelCalls uint32                     `yaml:"max_model_calls"`
}

func loadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// Expand ${VAR} references (e.g. api_key: ${OPENAI_API_KEY}).
	data = []byte(os.ExpandEnv(string(data)))
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (p ProviderProfile) toProvider() (llmwire.Provider, error) {
	switch p.Kind {
	case "openai":
		return llmwire.Provider{Kind: llmwire.ProviderOpenAI}, nil
	case "anthropic":
		return llmwire.Provider{Kind: llmwire.ProviderAnthropic}, nil
	case "openrouter":
		return llmwire.Provider{Kind: llmwire.ProviderOpenRouter}, nil
	case "compliant":
		if p.URL == "" {
			return llmwire.Provider{}, fmt.Errorf("provider kind %q requires a url", p.Kind)
		}
		return llmwire.Provider{Kind: llmwire.ProviderOpenAICompliant, URL: p.URL}, nil
	default:
		return llmwire.Provider{}, fmt.Errorf("unknown provider kind %q", p.Kind)
	}
}

func defaultProfile(cfg *FileConfig) (string, ProviderProfile, error) {
	for name, p := range cfg.Providers {
		if p.Default {
			return name, p, nil
		}
	}
	for name, p := range cfg.Providers {
		return name, p, nil
	}
	return "", ProviderProfile{}, fmt.Errorf("no providers configured")
}
