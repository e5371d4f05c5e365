package jsonl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.jsonl")

	records := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Alice"}`),
		json.RawMessage(`{"id":2,"name":"Bob"}`),
	}
	require.NoError(t, Write(path, records))

	lines, err := Read(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Number)
	assert.JSONEq(t, `{"id":2,"name":"Bob"}`, string(lines[1].Data))
}

func TestWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clients.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	require.NoError(t, Write(path, []json.RawMessage{json.RawMessage(`{"a":1}`)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	require.NoError(t, Write(path, nil))

	lines, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("\n{\"a\":1}\n   \n{\"b\":2}\n"), 0o644))

	lines, err := Read(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Number)
	assert.Equal(t, 4, lines[1].Number)
}

func TestReadMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}\n{not json\n"), 0o644))

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrMalformedLine)
	assert.Contains(t, err.Error(), ":2:")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal(t *testing.T) {
	type rec struct {
		ID int `json:"id"`
	}
	records, err := Marshal([]rec{{ID: 1}, {ID: 2}})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `{"id":2}`, string(records[1]))
}
