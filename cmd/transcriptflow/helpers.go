package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/llm"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const defaultConfigPath = "config.yaml"

// loadConfig reads the config file named by the flag, falling back to
// config.yaml in the working directory, then to built-in defaults when
// neither exists.
func loadConfig(configFlag string) (*config.Config, error) {
	path := configFlag
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// newTransformer builds the LLM client named by llm.provider.
func newTransformer(cfg *config.Config, log logger.Logger, interactive bool) (llm.Transformer, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		if len(cfg.LLM.Gemini.APIKeys) == 0 {
			return nil, fmt.Errorf("llm.gemini.api_keys is empty")
		}
		return llm.NewGemini(cfg.LLM.Gemini.APIKeys, cfg.LLM.Gemini.Model, log), nil
	case "deepseek":
		key, err := config.LoadAPIKey(cfg.Paths.APIKeyFile, interactive)
		if err != nil {
			return nil, err
		}
		return llm.NewDeepSeek(key,
			llm.WithBaseURL(cfg.LLM.DeepSeek.BaseURL),
			llm.WithModel(cfg.LLM.DeepSeek.Model),
			llm.WithRetries(cfg.LLM.DeepSeek.MaxRetries, time.Duration(cfg.LLM.DeepSeek.RetryDelaySecs)*time.Second),
		), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}
}
