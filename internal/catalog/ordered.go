package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// orderedEntry is one key of a JSON object in document order. encoding/json
// maps drop the source ordering, which would shuffle menu pagination between
// deployments, so object levels whose order matters are walked with the
// token decoder instead.
type orderedEntry struct {
	Key   string
	Value json.RawMessage
}

func decodeOrderedObject(raw []byte) ([]orderedEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var entries []orderedEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		entries = append(entries, orderedEntry{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}
