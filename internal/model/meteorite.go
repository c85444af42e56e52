package model

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// DocumentKey is the single top-level key of an exported document.
const DocumentKey = "meteorites"

// Meteorite is one exported record. Every value is kept as text, including
// numeric-looking fields, so the output mirrors the source CSV.
type Meteorite struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Recclass  string `json:"recclass"`
	Mass      string `json:"mass"`
	Fall      string `json:"fall"`
	Year      string `json:"year"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Entry pairs a synthetic key (meteorite_1, meteorite_2, ...) with its record.
type Entry struct {
	Key       string
	Meteorite Meteorite
}

// Document is the exported JSON document. Entries are serialized in slice
// order, which is why this is not a plain map.
type Document struct {
	Meteorites []Entry
}

// Len returns the number of records in the document.
func (d Document) Len() int {
	return len(d.Meteorites)
}

// MarshalJSON writes {"meteorites": {"<key>": {...}, ...}} preserving entry order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + DocumentKey + `":{`)
	for i, e := range d.Meteorites {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeCompact(e.Key)
		if err != nil {
			return nil, eris.Wrapf(err, "model: encode key %s", e.Key)
		}
		buf.Write(key)
		buf.WriteByte(':')
		rec, err := encodeCompact(e.Meteorite)
		if err != nil {
			return nil, eris.Wrapf(err, "model: encode meteorite %s", e.Key)
		}
		buf.Write(rec)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// encodeCompact marshals v without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
