package eval

import (
	"fmt"
	"os"
	"strings"
)

// LoadPrompt reads the rubric prompt template from disk. The prompt is
// configuration data owned by the training organizer; it changes without a
// redeploy and is never compiled into the binary.
func LoadPrompt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt template %s is empty", path)
	}
	return prompt, nil
}
