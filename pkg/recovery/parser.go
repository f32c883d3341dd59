package recovery

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mahdiidarabi/chonker/pkg/bigint"
)

// KeyParser defines the interface for parsing public keys from various sources.
type KeyParser interface {
	// ParseKeys parses public keys from a source and returns them.
	ParseKeys(source string) ([]*PublicKey, error)
}

// JSONParser parses public keys from JSON files.
type JSONParser struct {
	NField string // Field name for the modulus (default: "n")
	EField string // Field name for the public exponent (default: "e")
}

// ParseKeys parses public keys from a JSON file.
//
// Expected format:
// [
//   {"n": "268970693", "e": "85"},
//   {"n": 35, "e": "0x05"}
// ]
func (p *JSONParser) ParseKeys(jsonFile string) ([]*PublicKey, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	nField := p.NField
	if nField == "" {
		nField = "n"
	}
	eField := p.EField
	if eField == "" {
		eField = "e"
	}

	keys := make([]*PublicKey, 0, len(items))
	for i, item := range items {
		nVal, ok := item[nField]
		if !ok {
			return nil, fmt.Errorf("key %d: missing %s field", i, nField)
		}
		n, err := parseNumber(nVal)
		if err != nil {
			return nil, fmt.Errorf("key %d: failed to parse n: %w", i, err)
		}

		eVal, ok := item[eField]
		if !ok {
			return nil, fmt.Errorf("key %d: missing %s field", i, eField)
		}
		e, err := parseNumber(eVal)
		if err != nil {
			return nil, fmt.Errorf("key %d: failed to parse e: %w", i, err)
		}

		keys = append(keys, &PublicKey{N: n, E: e})
	}

	return keys, nil
}

// CSVParser parses public keys from CSV files.
type CSVParser struct {
	NCol string // Column name for the modulus (default: "n")
	ECol string // Column name for the public exponent (default: "e")
}

// ParseKeys parses public keys from a CSV file with a header row.
func (p *CSVParser) ParseKeys(csvFile string) ([]*PublicKey, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nCol := p.NCol
	if nCol == "" {
		nCol = "n"
	}
	eCol := p.ECol
	if eCol == "" {
		eCol = "e"
	}

	nIdx, eIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case nCol:
			nIdx = i
		case eCol:
			eIdx = i
		}
	}
	if nIdx == -1 || eIdx == -1 {
		return nil, fmt.Errorf("missing required columns: %s or %s", nCol, eCol)
	}

	keys := make([]*PublicKey, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		n, err := parseNumber(record[nIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse n: %w", line, err)
		}
		e, err := parseNumber(record[eIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse e: %w", line, err)
		}

		keys = append(keys, &PublicKey{N: n, E: e})
	}

	return keys, nil
}

// parseNumber parses an integer given as a decimal string, a 0x-prefixed hex string or a
// JSON number.
func parseNumber(val interface{}) (bigint.BigInt, error) {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			if len(s)%2 == 1 {
				s = "0" + s
			}
			b, err := hex.DecodeString(s)
			if err != nil {
				return bigint.Zero(), fmt.Errorf("invalid hex number %q: %w", v, err)
			}
			return bigint.FromBytes(b), nil
		}
		return bigint.FromString(s)

	case json.Number:
		return bigint.FromString(string(v))

	default:
		return bigint.Zero(), fmt.Errorf("unsupported type: %T", val)
	}
}
