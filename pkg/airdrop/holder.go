// Package airdrop turns a holder snapshot into gas-bounded distribution batches.
package airdrop

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Snapshot formats
const (
	FormatAuto = "auto"
	// FormatMap is a JSON object mapping holder address to balance.
	FormatMap = "map"
	// FormatList is a JSON array of {"HolderAddress": ..., "Balance": ...} records.
	FormatList = "list"
)

// Holder is a single snapshot record. Balance is kept as text so no precision is lost before scaling.
type Holder struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// Snapshot is a parsed holder snapshot together with the hash of its raw content.
type Snapshot struct {
	Holders []Holder
	Hash    common.Hash
}

type listEntry struct {
	HolderAddress string          `json:"HolderAddress"`
	Address       string          `json:"address"`
	Balance       json.RawMessage `json:"Balance"`
}

// LoadSnapshot reads and parses a holder snapshot file.
func LoadSnapshot(path, format string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadSnapshot(f, format)
}

// ReadSnapshot parses a holder snapshot from r.
func ReadSnapshot(r io.Reader, format string) (*Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	holders, err := ParseSnapshot(raw, format)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Holders: holders, Hash: crypto.Keccak256Hash(raw)}, nil
}

// ParseSnapshot decodes raw snapshot JSON in the given format, preserving document order.
func ParseSnapshot(raw []byte, format string) ([]Holder, error) {
	if format == "" || format == FormatAuto {
		format = detectFormat(raw)
	}

	switch format {
	case FormatMap:
		return parseMap(raw)
	case FormatList:
		return parseList(raw)
	default:
		return nil, ErrUnknownSnapshotFormat
	}
}

func detectFormat(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{':
		return FormatMap
	case '[':
		return FormatList
	}
	return ""
}

// parseMap walks the object token by token since a Go map would lose key order.
func parseMap(raw []byte) ([]Holder, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected object", ErrUnknownSnapshotFormat)
	}

	var holders []Holder
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot key: %w", err)
		}
		addr, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("failed to decode snapshot: unexpected key %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to decode balance for %s: %w", addr, err)
		}

		holders = append(holders, Holder{Address: addr, Balance: rawBalance(value)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return holders, nil
}

func parseList(raw []byte) ([]Holder, error) {
	var entries []listEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	holders := make([]Holder, 0, len(entries))
	for _, e := range entries {
		addr := e.HolderAddress
		if addr == "" {
			addr = e.Address
		}
		holders = append(holders, Holder{Address: addr, Balance: rawBalance(e.Balance)})
	}
	return holders, nil
}

// rawBalance returns the textual form of a JSON string or number. Anything else yields
// the raw text, which fails decimal parsing later and is reported as non-numeric.
func rawBalance(v json.RawMessage) string {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return string(trimmed)
}
