package domain

import (
	"encoding/json"
	"fmt"
)

// DocumentEntry is one dialog seed inside a source document.
type DocumentEntry struct {
	ID         string  `json:"_id,omitempty"`
	Key        string  `json:"key"`
	SourceText *string `json:"en-US,omitempty"`
	TargetText *string `json:"es-ES,omitempty"`
}

// Document is a parsed seed document. Its "text" field carries the dialog
// entries; every other field is preserved verbatim across a round trip so
// a patched export keeps the original file's metadata intact.
type Document struct {
	Text  []DocumentEntry
	extra map[string]json.RawMessage
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if txt, ok := raw["text"]; ok {
		if err := json.Unmarshal(txt, &d.Text); err != nil {
			return fmt.Errorf("parse document text entries: %w", err)
		}
		delete(raw, "text")
	}
	d.extra = raw
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+1)
	for k, v := range d.extra {
		out[k] = v
	}
	entries := d.Text
	if entries == nil {
		entries = []DocumentEntry{}
	}
	out["text"] = entries
	return json.Marshal(out)
}

// WithText returns a copy of the document with its entries replaced.
func (d Document) WithText(entries []DocumentEntry) Document {
	return Document{Text: entries, extra: d.extra}
}
