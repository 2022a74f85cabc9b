// ABOUTME: Document store loading policy text files from a directory
// ABOUTME: Fails soft: missing directory is an empty corpus, bad files are skipped
package policy

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skyway/concierge/internal/models"
)

// Load reads every .txt file in dir (non-recursively) into a named
// policy document. The display name is the filename stem with
// underscores replaced by spaces. A missing directory yields an empty
// corpus, not an error; an unreadable file is skipped with a warning.
// Files are processed in lexicographic filename order, so on a derived
// name collision the lexicographically later file wins.
func Load(dir string) (map[string]models.PolicyDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Warning: policy directory %s does not exist, serving with empty corpus", dir)
			return map[string]models.PolicyDocument{}, nil
		}
		return nil, err
	}

	docs := make(map[string]models.PolicyDocument)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping unreadable policy file %s: %v", entry.Name(), err)
			continue
		}

		name := DisplayName(entry.Name())
		if _, exists := docs[name]; exists {
			log.Printf("Warning: policy name %q collides, %s wins", name, entry.Name())
		}
		docs[name] = models.PolicyDocument{Name: name, Content: string(content)}
	}
	return docs, nil
}

// DisplayName derives the human-readable policy name from a filename.
func DisplayName(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ReplaceAll(stem, "_", " ")
}

// SortedNames returns document names in lexicographic order. Iteration
// over the corpus map is randomized by the runtime, so every consumer
// that needs stable ordering goes through this.
func SortedNames(docs map[string]models.PolicyDocument) []string {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
