package importer

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

// Document is an import batch: one list of raw field sets per kind.
type Document map[models.Kind][]json.RawMessage

// labelFields name the entry in logs, first match wins.
var labelFields = []string{"title", "name", "role"}

// ParseDocument decodes an import body. Keys other than the five kinds are
// ignored and a null list is empty. A body that is not an object, or a kind
// that does not hold a list, is a VALIDATION_ERROR.
func ParseDocument(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, models.NewValidationError("import body must be a JSON object", nil)
	}

	doc := make(Document)
	invalid := make(map[string]string)
	for _, kind := range models.Kinds() {
		value, ok := raw[kind.String()]
		if !ok || isNull(value) {
			continue
		}
		var entries []json.RawMessage
		if err := json.Unmarshal(value, &entries); err != nil {
			invalid[kind.String()] = "list"
			continue
		}
		doc[kind] = entries
	}
	if len(invalid) > 0 {
		return nil, models.NewValidationError("import lists must be JSON arrays", invalid)
	}
	return doc, nil
}

// entry is one import item with its client id and log label. The payload
// still carries the server fields; DecodeRecord drops them.
type entry struct {
	id      *int64
	label   string
	payload []byte
}

func splitEntry(raw json.RawMessage) (entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return entry{}, models.NewValidationError("import entry must be a JSON object", nil)
	}

	e := entry{id: parseID(fields["id"])}
	for _, key := range labelFields {
		var label string
		if json.Unmarshal(fields[key], &label) == nil && label != "" {
			e.label = label
			break
		}
	}
	e.payload = raw
	return e, nil
}

// parseID accepts a JSON integer or a numeric string.
func parseID(value json.RawMessage) *int64 {
	if len(value) == 0 || isNull(value) {
		return nil
	}
	var id int64
	if err := json.Unmarshal(value, &id); err == nil {
		return &id
	}
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		if parsed, err := strconv.ParseInt(text, 10, 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
