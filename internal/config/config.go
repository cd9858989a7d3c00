package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Segmenting SegmentingConfig `yaml:"segmenting"`
	LLM        LLMConfig        `yaml:"llm"`
	Prompts    PromptsConfig    `yaml:"prompts"`
	Summary    SummaryConfig    `yaml:"summary"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
}

type PathsConfig struct {
	Output     string `yaml:"output"`
	APIKeyFile string `yaml:"api_key_file"`
}

type SegmentingConfig struct {
	MinSpaces int `yaml:"min_spaces"`
	MaxSpaces int `yaml:"max_spaces"`
}

type LLMConfig struct {
	Provider string         `yaml:"provider"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Gemini   GeminiConfig   `yaml:"gemini"`
}

type DeepSeekConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	MaxRetries     int    `yaml:"max_retries"`
	RetryDelaySecs int    `yaml:"retry_delay_seconds"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type PromptsConfig struct {
	Refine  string `yaml:"refine"`
	Summary string `yaml:"summary"`
	Merge   string `yaml:"merge"`
}

type SummaryConfig struct {
	ExportDocx bool `yaml:"export_docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type WatchConfig struct {
	Input         string `yaml:"input"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// Load reads and validates a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	// Defaults can't conflict.
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.APIKeyFile == "" {
		c.Paths.APIKeyFile = "config/api_key.txt"
	}

	if c.Segmenting.MinSpaces == 0 && c.Segmenting.MaxSpaces == 0 {
		c.Segmenting.MinSpaces = 50
		c.Segmenting.MaxSpaces = 60
	}
	if c.Segmenting.MinSpaces < 0 || c.Segmenting.MaxSpaces < 0 {
		return fmt.Errorf("segmenting space counts must be non-negative")
	}
	if c.Segmenting.MinSpaces > c.Segmenting.MaxSpaces {
		return fmt.Errorf("segmenting.min_spaces (%d) cannot exceed segmenting.max_spaces (%d)",
			c.Segmenting.MinSpaces, c.Segmenting.MaxSpaces)
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = "deepseek"
	}
	if c.LLM.Provider != "deepseek" && c.LLM.Provider != "gemini" {
		return fmt.Errorf("llm.provider must be deepseek or gemini, got %q", c.LLM.Provider)
	}
	if c.LLM.DeepSeek.BaseURL == "" {
		c.LLM.DeepSeek.BaseURL = "https://api.deepseek.com"
	}
	if c.LLM.DeepSeek.Model == "" {
		c.LLM.DeepSeek.Model = "deepseek-chat"
	}
	if c.LLM.DeepSeek.MaxRetries == 0 {
		c.LLM.DeepSeek.MaxRetries = 3
	}
	if c.LLM.DeepSeek.RetryDelaySecs == 0 {
		c.LLM.DeepSeek.RetryDelaySecs = 1
	}
	if c.LLM.Gemini.Model == "" {
		c.LLM.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Prompts.Refine == "" {
		c.Prompts.Refine = "config/transcript_prompt.md"
	}
	if c.Prompts.Summary == "" {
		c.Prompts.Summary = "config/summary_prompt.md"
	}
	if c.Prompts.Merge == "" {
		c.Prompts.Merge = "config/merge_prompt.md"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Watch.Input == "" {
		c.Watch.Input = "data/input"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}

	return nil
}
