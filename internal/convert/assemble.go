package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"

	"github.com/rotisserie/eris"

	"github.com/sells-group/meteorite-cli/internal/model"
)

// indent matches the four-space layout of the published dataset files.
const indent = "    "

// NewRand returns the shuffle source. A zero seed draws a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Assemble shuffles a copy of records and keys them meteorite_1..N in the
// shuffled order.
func Assemble(records []model.Meteorite, rng *rand.Rand) model.Document {
	shuffled := slices.Clone(records)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	entries := make([]model.Entry, len(shuffled))
	for i, m := range shuffled {
		entries[i] = model.Entry{Key: EntryKey(i + 1), Meteorite: m}
	}
	return model.Document{Meteorites: entries}
}

// EntryKey returns the synthetic key for the 1-based position n.
func EntryKey(n int) string {
	return fmt.Sprintf("meteorite_%d", n)
}

// WriteDocument writes doc to path, creating parent directories. The file is
// written next to the destination and renamed into place, so a failed write
// never leaves a truncated document behind.
func WriteDocument(path string, doc model.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "convert: create output directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrap(err, "convert: create temp output")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "convert: encode document")
	}
	// The file ends at the closing brace, without the encoder's newline.
	if _, err := tmp.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "convert: write document")
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return eris.Wrap(err, "convert: chmod output")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "convert: close temp output")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "convert: rename output to %s", path)
	}
	return nil
}
