package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlEntry mirrors one item of a YAML knowledge file:
//
//	- keyword: hello
//	  responses: [Hi!, Hello there]
type yamlEntry struct {
	Keyword   string   `yaml:"keyword"`
	Responses []string `yaml:"responses"`
}

func loadYAML(path string, opts []LoadOption) (*Base, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Empty(), fmt.Errorf("%w %q: %w", ErrNoKnowledgeFile, path, err)
	}
	return parseYAML(content, opts)
}

func parseYAML(content []byte, opts []LoadOption) (*Base, error) {
	var items []yamlEntry
	if err := yaml.Unmarshal(content, &items); err != nil {
		return Empty(), fmt.Errorf("%w: decode yaml: %w", ErrNoKnowledgeFile, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, Entry{Keyword: item.Keyword, Responses: item.Responses})
	}
	return FromEntries(entries, opts...), nil
}
