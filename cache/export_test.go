package cache

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestExporter_Export(t *testing.T) {
	c := NewInMemoryCache(3600)
	c.Set("suggest:fa:h2", "ذخیره")
	c.Set("annotate:fp1:stations:h1", `{"content":"<p>x</p>"}`)

	exporter := NewExporter(c)
	var buf bytes.Buffer

	err := exporter.Export(&buf, map[string]string{"catalog": "fp1"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !strings.Contains(buf.String(), "ذخیره") {
		t.Error("Export should keep non-ASCII text unescaped")
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	if export.Version != FormatVersion {
		t.Errorf("Expected version %s, got %s", FormatVersion, export.Version)
	}

	if len(export.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(export.Entries))
	}
	if export.Entries[0].Key != "annotate:fp1:stations:h1" {
		t.Errorf("Entries should be sorted by key, got %q first", export.Entries[0].Key)
	}

	if export.Metadata["catalog"] != "fp1" {
		t.Errorf("Expected metadata catalog=fp1, got %v", export.Metadata)
	}
}

func TestImporter_Import(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"exported_at": "2025-01-01T00:00:00Z",
		"entries": [
			{"key": "key1", "value": "value1"},
			{"key": "key2", "value": "value2"}
		],
		"metadata": {"catalog": "fp1"}
	}`

	c := NewInMemoryCache(3600)
	importer := NewImporter(c)

	result, err := importer.Import(strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}

	if result.Failed != 0 {
		t.Errorf("Expected 0 failed, got %d", result.Failed)
	}

	if val, ok := c.Get("key1"); !ok || val != "value1" {
		t.Errorf("key1 not found or wrong value: %s", val)
	}
}

func TestImporter_WithFingerprint(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"entries": [
			{"key": "annotate:current:users:h1", "value": "a"},
			{"key": "annotate:stale:users:h1", "value": "b"},
			{"key": "suggest:ar:h9", "value": "c"}
		]
	}`

	c := NewInMemoryCache(0)
	result, err := NewImporter(c, WithFingerprint("current")).Import(strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 || result.Skipped != 1 {
		t.Errorf("Expected 2 imported and 1 skipped, got %+v", result)
	}
	if _, ok := c.Get("annotate:stale:users:h1"); ok {
		t.Error("Stale annotation should not be imported")
	}
}

func TestExportImport_FileRoundTrip(t *testing.T) {
	src := NewInMemoryCache(3600)
	src.Set("suggest:fa:hash1", "سلام")
	src.Set("suggest:ar:hash1", "مرحبا")

	path := filepath.Join(t.TempDir(), "cache.json")
	if err := NewExporter(src).ExportToFile(path, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	dst := NewInMemoryCache(3600)
	result, err := NewImporter(dst).ImportFromFile(path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}

	if val, ok := dst.Get("suggest:fa:hash1"); !ok || val != "سلام" {
		t.Errorf("suggest:fa:hash1 not found or wrong value")
	}
}

func TestExporter_EmptyCache(t *testing.T) {
	c := NewInMemoryCache(3600)
	exporter := NewExporter(c)

	var buf bytes.Buffer
	err := exporter.Export(&buf, nil)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	json.Unmarshal(buf.Bytes(), &export)

	if len(export.Entries) != 0 {
		t.Errorf("Expected 0 entries for empty cache, got %d", len(export.Entries))
	}
}

func TestImporter_InvalidJSON(t *testing.T) {
	c := NewInMemoryCache(3600)
	importer := NewImporter(c)

	_, err := importer.Import(strings.NewReader("invalid json"))
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestImporter_MissingFile(t *testing.T) {
	_, err := NewImporter(NewInMemoryCache(0)).ImportFromFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
