// Package store reads and writes the batch files used by import and export.
package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnreadable      = errors.New("unreadable")
	ErrParse           = errors.New("parse error")
	ErrUnknownTemplate = errors.New("unknown template type")
	timeNow            = func() time.Time { return time.Now().UTC() }
)

//go:embed templates/*.json
var templateFS embed.FS

const (
	TemplateTask    = "task"
	TemplateProject = "project"
	TemplateBatch   = "batch"
)

// TemplateTypes lists the export template names in display order.
func TemplateTypes() []string {
	return []string{TemplateTask, TemplateProject, TemplateBatch}
}

// Template returns the embedded JSON for kind.
func Template(kind string) ([]byte, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	for _, t := range TemplateTypes() {
		if t == kind {
			return templateFS.ReadFile("templates/" + kind + ".json")
		}
	}
	return nil, fmt.Errorf("%w %q (available types: %s)", ErrUnknownTemplate, kind, strings.Join(TemplateTypes(), ", "))
}

// WriteTemplate writes the template for kind to path and returns the
// resolved path.
func WriteTemplate(path, kind string) (string, error) {
	data, err := Template(kind)
	if err != nil {
		return "", err
	}
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return "", fmt.Errorf("%w: output path is required", ErrUnreadable)
	}
	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("error writing file: %w", err)
	}
	return path, nil
}

// LoadBatch reads a batch file and returns it as JSON. Files ending in
// .yaml or .yml are decoded as YAML first; anything else must be JSON.
// The payload shape is not checked here.
func LoadBatch(path string) ([]byte, error) {
	path = expandHome(strings.TrimSpace(path))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToJSON(data)
	default:
		if !json.Valid(bytes.TrimSpace(data)) {
			return nil, fmt.Errorf("%w: %s is not valid JSON", ErrParse, path)
		}
		return data, nil
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	v, err := jsonCompatible(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return buf.Bytes(), nil
}

// jsonCompatible rewrites YAML mappings with non-string keys so
// encoding/json can serialise them.
func jsonCompatible(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			c, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			c, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			out[key] = c
		}
		return out, nil
	case []any:
		for i, item := range t {
			c, err := jsonCompatible(item)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	case time.Time:
		return t.Format("2006-01-02"), nil
	case float64, int, int64, uint64, bool, string, nil:
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unsupported YAML value %T", ErrParse, v)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%d", timeNow().UnixNano()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
