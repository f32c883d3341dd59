package recovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONParser_ParseKeys(t *testing.T) {
	parser := &JSONParser{}

	keys, err := parser.ParseKeys(fixturePath("test_keys.json"))
	if err != nil {
		t.Fatalf("Failed to parse keys: %v", err)
	}

	if len(keys) != 4 {
		t.Fatalf("Expected 4 keys, got %d", len(keys))
	}

	want := []struct{ n, e string }{
		{"268970693", "85"},
		{"35", "5"},
		{"9998000099", "65537"},
		{"1022117", "17"},
	}
	for i, w := range want {
		if keys[i].N.String() != w.n {
			t.Errorf("Key %d: n = %s, want %s", i, keys[i].N, w.n)
		}
		if keys[i].E.String() != w.e {
			t.Errorf("Key %d: e = %s, want %s", i, keys[i].E, w.e)
		}
	}
}

func TestCSVParser_ParseKeys(t *testing.T) {
	parser := &CSVParser{}

	keys, err := parser.ParseKeys(fixturePath("test_keys.csv"))
	if err != nil {
		t.Fatalf("Failed to parse keys: %v", err)
	}

	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
	if keys[1].N.String() != "9998000099" || keys[1].E.String() != "65537" {
		t.Errorf("Unexpected second key: n=%s e=%s", keys[1].N, keys[1].E)
	}
}

func TestParsers_CustomFieldNames(t *testing.T) {
	dir := t.TempDir()

	jsonFile := filepath.Join(dir, "keys.json")
	if err := os.WriteFile(jsonFile, []byte(`[{"modulus": "35", "exponent": "5"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	keys, err := (&JSONParser{NField: "modulus", EField: "exponent"}).ParseKeys(jsonFile)
	if err != nil {
		t.Fatalf("Failed to parse keys: %v", err)
	}
	if len(keys) != 1 || keys[0].N.String() != "35" {
		t.Errorf("Unexpected keys: %+v", keys)
	}

	csvFile := filepath.Join(dir, "keys.csv")
	if err := os.WriteFile(csvFile, []byte("exponent, modulus\n5, 35\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	keys, err = (&CSVParser{NCol: "modulus", ECol: "exponent"}).ParseKeys(csvFile)
	if err != nil {
		t.Fatalf("Failed to parse keys: %v", err)
	}
	if len(keys) != 1 || keys[0].N.String() != "35" || keys[0].E.String() != "5" {
		t.Errorf("Unexpected keys: %+v", keys)
	}
}

func TestParsers_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	cases := []struct {
		name   string
		parser KeyParser
		path   string
	}{
		{"missing file", &JSONParser{}, filepath.Join(dir, "nope.json")},
		{"not json", &JSONParser{}, write("bad.json", "{")},
		{"missing e", &JSONParser{}, write("no_e.json", `[{"n": "35"}]`)},
		{"bad number", &JSONParser{}, write("bad_n.json", `[{"n": "3x5", "e": "5"}]`)},
		{"bad hex", &JSONParser{}, write("bad_hex.json", `[{"n": "0xzz", "e": "5"}]`)},
		{"bool value", &JSONParser{}, write("bool.json", `[{"n": true, "e": "5"}]`)},
		{"missing column", &CSVParser{}, write("no_col.csv", "n,x\n35,5\n")},
		{"bad csv number", &CSVParser{}, write("bad.csv", "n,e\n35,-\n")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.parser.ParseKeys(tc.path); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
