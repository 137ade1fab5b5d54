// Package loader discovers JSON input files under a source directory and
// flattens them into raw record documents.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// DefaultIgnoreFile is the gitignore-style exclusion file looked up at the source root
const DefaultIgnoreFile = ".reclasificaignore"

// Result is what a Load call found
type Result struct {
	Records []json.RawMessage
	Files   []string // relative paths of files that contributed records
	Skipped []string // relative paths of unreadable or malformed files
	Ignored int      // paths excluded by the ignore file
}

// Loader reads record documents from a directory tree
type Loader struct {
	ignoreFile string
	logger     *zap.Logger
}

// New creates a loader. An empty ignoreFile disables exclusion patterns.
func New(ignoreFile string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{ignoreFile: ignoreFile, logger: logger}
}

// Load walks root in lexical order and collects every record. A JSON array
// contributes each element; any other document contributes itself. Files that
// cannot be read or parsed are logged and skipped.
func (l *Loader) Load(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source directory: %s is not a directory", root)
	}

	matcher := l.compileIgnore(root)
	result := &Result{Records: []json.RawMessage{}}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Warn("Cannot read path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil || relPath == "." {
			return nil
		}

		if matcher != nil {
			pathToMatch := filepath.ToSlash(relPath)
			if d.IsDir() {
				pathToMatch += "/"
			}
			if matcher.MatchesPath(pathToMatch) {
				result.Ignored++
				l.logger.Debug("Ignored path", zap.String("path", relPath))
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() || !d.Type().IsRegular() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}

		records, err := readFile(path)
		if err != nil {
			result.Skipped = append(result.Skipped, relPath)
			l.logger.Error("Error reading file", zap.String("file", relPath), zap.Error(err))
			return nil
		}

		result.Records = append(result.Records, records...)
		result.Files = append(result.Files, relPath)
		l.logger.Info("File read", zap.String("file", relPath), zap.Int("records", len(records)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return result, nil
}

func (l *Loader) compileIgnore(root string) *ignore.GitIgnore {
	if l.ignoreFile == "" {
		return nil
	}

	content, err := os.ReadFile(filepath.Join(root, l.ignoreFile))
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("Cannot read ignore file", zap.String("file", l.ignoreFile), zap.Error(err))
		}
		return nil
	}

	lines := strings.Split(string(content), "\n")
	return ignore.CompileIgnoreLines(lines...)
}

// readFile parses one input file into its record documents
func readFile(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	data = bytes.TrimSpace(data)
	if data[0] != '[' {
		return []json.RawMessage{json.RawMessage(data)}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
