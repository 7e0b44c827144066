package vocabulary

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vitrin/backend/internal/domain"
)

//go:embed data/vocabulary.yaml
var embeddedVocabulary []byte

// Default returns the vocabulary compiled into the binary
func Default() (*domain.Vocabulary, error) {
	return Parse(embeddedVocabulary)
}

// LoadFile reads a vocabulary from a YAML file
func LoadFile(path string) (*domain.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML vocabulary document
func Parse(data []byte) (*domain.Vocabulary, error) {
	var vocab domain.Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if vocab.SmartPrefixes == nil {
		vocab.SmartPrefixes = map[string][]string{}
	}
	return &vocab, nil
}
