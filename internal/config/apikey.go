package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadAPIKey reads an API key from path, ignoring blank lines and
// #-comments. When the file is missing or holds no key and interactive
// is set, the user is prompted on stdin and the key is saved back.
func LoadAPIKey(path string, interactive bool) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return line, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read api key file: %w", err)
	}

	if !interactive {
		return "", fmt.Errorf("no api key found in %s", path)
	}

	key, err := promptAPIKey()
	if err != nil {
		return "", err
	}
	if err := saveAPIKey(path, key); err != nil {
		return "", err
	}
	return key, nil
}

func promptAPIKey() (string, error) {
	fmt.Print("Enter API key: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read api key from stdin: %w", err)
	}
	key := strings.TrimSpace(line)
	if key == "" {
		return "", fmt.Errorf("empty api key")
	}
	return key, nil
}

func saveAPIKey(path, key string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create api key directory: %w", err)
		}
	}
	content := "# API key for the configured LLM provider\n" + key + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}
