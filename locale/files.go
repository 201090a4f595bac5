package locale

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Path returns the locale file path for lang inside dir.
func Path(dir, lang string) string {
	return filepath.Join(dir, lang+".json")
}

// ReadSource reads the stored table for lang. A missing file yields a zero Source.
func ReadSource(dir, lang string) (Source, error) {
	data, err := os.ReadFile(Path(dir, lang))
	if errors.Is(err, fs.ErrNotExist) {
		return Source{}, nil
	}
	if err != nil {
		return Source{}, fmt.Errorf("reading %s locale: %w", lang, err)
	}
	return Source{Raw: data}, nil
}

// ReadSources reads the stored tables for every language in langs.
func ReadSources(dir string, langs []string) (map[string]Source, error) {
	sources := make(map[string]Source, len(langs))
	for _, lang := range langs {
		src, err := ReadSource(dir, lang)
		if err != nil {
			return nil, err
		}
		sources[lang] = src
	}
	return sources, nil
}

// LoadReference reads the reference table. A malformed reference is
// repaired the same way as any other language; a missing one is empty.
func LoadReference(dir, lang string) (*Table, Status, error) {
	src, err := ReadSource(dir, lang)
	if err != nil {
		return nil, "", err
	}

	lr := &LanguageReport{Lang: lang}
	table := loadBase(src, lr)
	return table, lr.Status, nil
}

// WriteFile writes t to path, replacing any existing file.
func WriteFile(path string, t *Table) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".locale-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return os.Rename(tmp.Name(), path)
}

// WriteDir writes every table to <dir>/<lang>.json.
func WriteDir(dir string, tables map[string]*Table) error {
	for lang, t := range tables {
		if err := WriteFile(Path(dir, lang), t); err != nil {
			return err
		}
	}
	return nil
}
