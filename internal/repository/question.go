package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
)

// questionFileExts lists the file extensions tried for a language, in order.
var questionFileExts = []string{".json", ".yaml", ".yml"}

// FileQuestionRepository loads question pools from <dir>/<lang>.json
// (or .yaml/.yml) and keeps them in memory after the first read.
type FileQuestionRepository struct {
	dir string

	mu    sync.RWMutex
	pools map[string][]entities.Question
}

// NewFileQuestionRepository creates a repository reading pools from dir.
func NewFileQuestionRepository(dir string) *FileQuestionRepository {
	return &FileQuestionRepository{
		dir:   dir,
		pools: make(map[string][]entities.Question),
	}
}

// Questions returns the pool for language.
func (r *FileQuestionRepository) Questions(_ context.Context, language string) ([]entities.Question, error) {
	if err := ValidateLanguage(language); err != nil {
		return nil, err
	}

	r.mu.RLock()
	pool, ok := r.pools[language]
	r.mu.RUnlock()
	if ok {
		return pool, nil
	}

	pool, err := r.load(language)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.pools[language] = pool
	r.mu.Unlock()

	return pool, nil
}

// Languages lists the language tags that have a question file.
func (r *FileQuestionRepository) Languages() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read question dir: %w", err)
	}

	seen := make(map[string]struct{})
	var langs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isQuestionFileExt(ext) {
			continue
		}
		tag := strings.TrimSuffix(e.Name(), ext)
		if ValidateLanguage(tag) != nil {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		langs = append(langs, tag)
	}
	sort.Strings(langs)

	return langs, nil
}

func (r *FileQuestionRepository) load(language string) ([]entities.Question, error) {
	for _, ext := range questionFileExts {
		path := filepath.Join(r.dir, language+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read questions %s: %w", path, err)
		}

		pool, err := ParseQuestions(data, ext)
		if err != nil {
			return nil, fmt.Errorf("parse questions %s: %w", path, err)
		}
		return pool, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrLanguageNotFound, language)
}

func isQuestionFileExt(ext string) bool {
	for _, e := range questionFileExts {
		if e == ext {
			return true
		}
	}
	return false
}

// ParseQuestions decodes and validates a question pool. ext selects the format
// (".json", ".yaml", ".yml"). Both a bare list and an object with a "questions"
// list are accepted.
func ParseQuestions(data []byte, ext string) ([]entities.Question, error) {
	var (
		pool []entities.Question
		err  error
	)

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		pool, err = parseYAMLQuestions(data)
	default:
		pool, err = parseJSONQuestions(data)
	}
	if err != nil {
		return nil, err
	}

	for i, q := range pool {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}

	return pool, nil
}

func parseJSONQuestions(data []byte) ([]entities.Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Questions []entities.Question `json:"questions"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return nonNil(wrapper.Questions), nil
	}

	var pool []entities.Question
	if err := json.Unmarshal(trimmed, &pool); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return nonNil(pool), nil
}

func parseYAMLQuestions(data []byte) ([]entities.Question, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return []entities.Question{}, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var wrapper struct {
			Questions []entities.Question `yaml:"questions"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return nonNil(wrapper.Questions), nil
	}

	var pool []entities.Question
	if err := root.Decode(&pool); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return nonNil(pool), nil
}

func nonNil(pool []entities.Question) []entities.Question {
	if pool == nil {
		return []entities.Question{}
	}
	return pool
}
