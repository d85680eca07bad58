package metadata

import (
	"encoding/json"
	"io"
)

// WriteJSON writes t as an indented JSON object. Map keys are sorted by
// encoding/json; shifts encode through [Shift.MarshalJSON].
func WriteJSON(w io.Writer, t Table) error {
	doc := make(map[string]any, len(t)+1)
	for k, v := range t {
		doc[k] = v
	}
	doc[VersionKey] = version()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
