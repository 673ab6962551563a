package testutil

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// Case is one golden payload: the uplink and the fields it must decode to.
// Fields holds the raw record; Converted holds the record after the
// console conversion. Error, when set, is a substring of the expected
// decode error.
type Case struct {
	Name      string         `yaml:"name"`
	Port      uint8          `yaml:"port"`
	Hex       string         `yaml:"hex"`
	Schema    string         `yaml:"schema"`
	Error     string         `yaml:"error"`
	Fields    map[string]any `yaml:"fields"`
	Converted map[string]any `yaml:"converted"`
}

// Bytes decodes the case payload.
func (c Case) Bytes(t *testing.T) []byte {
	t.Helper()
	data, err := hex.DecodeString(strings.ReplaceAll(c.Hex, " ", ""))
	if err != nil {
		t.Fatalf("case %s: decode hex: %v", c.Name, err)
	}
	return data
}

// LoadCases loads golden cases from a YAML fixture under testdata.
func LoadCases(t *testing.T, rel string) []Case {
	t.Helper()
	var doc struct {
		Cases []Case `yaml:"cases"`
	}
	LoadYAML(t, rel, &doc)
	if len(doc.Cases) == 0 {
		t.Fatalf("fixture %s has no cases", rel)
	}
	return doc.Cases
}

// LoadYAML loads a YAML fixture from testdata relative to the repo root.
func LoadYAML(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := yaml.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadJSON loads a JSON fixture from testdata relative to the repo root.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	data := readTestdata(t, rel)
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns a trimmed hex string from testdata relative path.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	data := readTestdata(t, rel)
	return strings.TrimSpace(string(data))
}

// Normalize round-trips a JSON document into plain maps so it compares
// against YAML fixtures: numbers become float64, objects map[string]any.
func Normalize(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("normalize %s: %v", data, err)
	}
	return out
}

// Expected converts fixture values the same way Normalize does.
func Expected(t *testing.T, fields map[string]any) map[string]any {
	t.Helper()
	if fields == nil {
		fields = map[string]any{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal expected fields: %v", err)
	}
	return Normalize(t, data)
}

func readTestdata(t *testing.T, rel string) []byte {
	t.Helper()
	candidates := []string{
		filepath.Join("testdata", rel),
		filepath.Join("..", "testdata", rel),
		filepath.Join("..", "..", "testdata", rel),
		filepath.Join("..", "..", "..", "testdata", rel),
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	t.Fatalf("unable to locate testdata file %s", rel)
	return nil
}
