package convert

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/meteorite-cli/internal/model"
)

func sampleRecords(n int) []model.Meteorite {
	recs := make([]model.Meteorite, n)
	for i := range recs {
		id := strconv.Itoa(i + 1)
		recs[i] = model.Meteorite{ID: id, Name: "M" + id, Latitude: id, Longitude: id}
	}
	return recs
}

func TestAssemble_KeysAreSequential(t *testing.T) {
	recs := sampleRecords(25)
	doc := Assemble(recs, NewRand(42))

	require.Equal(t, 25, doc.Len())
	got := make([]model.Meteorite, doc.Len())
	for i, e := range doc.Meteorites {
		assert.Equal(t, "meteorite_"+strconv.Itoa(i+1), e.Key)
		got[i] = e.Meteorite
	}
	assert.ElementsMatch(t, recs, got)
}

func TestAssemble_DoesNotMutateInput(t *testing.T) {
	recs := sampleRecords(10)
	orig := append([]model.Meteorite(nil), recs...)
	Assemble(recs, NewRand(7))
	assert.Equal(t, orig, recs)
}

func TestAssemble_SeedIsReproducible(t *testing.T) {
	recs := sampleRecords(30)
	assert.Equal(t, Assemble(recs, NewRand(99)), Assemble(recs, NewRand(99)))
}

func TestAssemble_Shuffles(t *testing.T) {
	recs := sampleRecords(30)
	moved := false
	for seed := uint64(1); seed <= 5 && !moved; seed++ {
		doc := Assemble(recs, NewRand(seed))
		for i, e := range doc.Meteorites {
			if e.Meteorite != recs[i] {
				moved = true
				break
			}
		}
	}
	assert.True(t, moved, "expected at least one seed to reorder 30 records")
}

func TestAssemble_Empty(t *testing.T) {
	doc := Assemble(nil, NewRand(1))
	assert.Zero(t, doc.Len())
}

func TestWriteDocument_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	recs := sampleRecords(12)
	doc := Assemble(recs, NewRand(3))

	require.NoError(t, WriteDocument(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed map[string]map[string]model.Meteorite
	require.NoError(t, json.Unmarshal(data, &parsed))
	require.Len(t, parsed, 1)
	require.Contains(t, parsed, model.DocumentKey)
	assert.Len(t, parsed[model.DocumentKey], 12)
	for _, e := range doc.Meteorites {
		assert.Equal(t, e.Meteorite, parsed[model.DocumentKey][e.Key])
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteDocument_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	doc := model.Document{Meteorites: []model.Entry{
		{Key: "meteorite_1", Meteorite: model.Meteorite{ID: "2", Name: "B & <C>"}},
		{Key: "meteorite_2", Meteorite: model.Meteorite{ID: "1", Name: "Österplana"}},
	}}
	require.NoError(t, WriteDocument(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "{\n    \"meteorites\": {\n        \"meteorite_1\": {\n            \"id\": \"2\","))
	assert.True(t, strings.HasSuffix(text, "\n    }\n}"), "document ends at the closing brace with no trailing newline")
	assert.Contains(t, text, `"name": "B & <C>"`)
	assert.Contains(t, text, `"name": "Österplana"`)
	assert.Less(t, strings.Index(text, `"meteorite_1"`), strings.Index(text, `"meteorite_2"`))

	// Field order follows the record layout.
	fields := []string{`"id"`, `"name"`, `"recclass"`, `"mass"`, `"fall"`, `"year"`, `"latitude"`, `"longitude"`}
	prev := -1
	for _, f := range fields {
		idx := strings.Index(text, f)
		assert.Greater(t, idx, prev, "field %s out of order", f)
		prev = idx
	}
}

func TestWriteDocument_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, WriteDocument(path, model.Document{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"meteorites\": {}\n}", string(data))
}

func TestWriteDocument_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDocument(filepath.Join(dir, "out.json"), Assemble(sampleRecords(3), NewRand(1))))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestWriteDocument_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteDocument(filepath.Join(blocker, "out.json"), model.Document{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output directory")
}
