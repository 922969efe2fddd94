// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefix(t *testing.T) {
	tests := []struct{ term, want string }{
		{"cats", "cats"},
		{"golden retriever", "golden_retriever"},
		{"a  b", "a__b"},
		{"tab\tseparated", "tab\tseparated"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Prefix(tt.term), tt.term)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "red_pandas_00002.jpg", Filename("red_pandas", 2, ".jpg"))
	assert.Equal(t, "x_123456.jpg", Filename("x", 123456, ".jpg"))
}

func TestSequencerStartsAfterInitialValue(t *testing.T) {
	dir := t.TempDir()
	seq := NewSequencer(dir, "red pandas", ".jpg")

	p, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "red_pandas_00002.jpg"), p)

	p, err = seq.Next()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "red_pandas_00003.jpg"), p)
}

func TestSequencerSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cats_00002.jpg", "cats_00003.jpg", "cats_00005.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old"), 0o644))
	}
	seq := NewSequencer(dir, "cats", ".jpg")

	var got []string
	for i := 0; i < 3; i++ {
		p, err := seq.Next()
		require.NoError(t, err)
		got = append(got, filepath.Base(p))
	}
	assert.Equal(t, []string{"cats_00004.jpg", "cats_00006.jpg", "cats_00007.jpg"}, got)
}

func TestSequencerDoesNotReclaimHoles(t *testing.T) {
	dir := t.TempDir()
	seq := NewSequencer(dir, "cats", ".jpg")

	first, err := Place(seq, []byte("a"))
	require.NoError(t, err)
	require.NoError(t, os.Remove(first))

	second, err := Place(seq, []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, "cats_00003.jpg", filepath.Base(second))
}

func TestSequencerProbeError(t *testing.T) {
	old := statFunc
	statFunc = func(string) (os.FileInfo, error) { return nil, fs.ErrPermission }
	defer func() { statFunc = old }()

	_, err := NewSequencer(t.TempDir(), "cats", ".jpg").Next()
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestWriteNewRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cats_00002.jpg")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	err := WriteNew(path, []byte("new"))
	assert.ErrorIs(t, err, fs.ErrExist)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestPlaceWritesExactBytes(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{0xff, 0xd8, 0xff, 0x00, 0x01}

	path, err := Place(NewSequencer(dir, "owls", ".jpg"), payload)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestPlaceMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := Place(NewSequencer(dir, "owls", ".jpg"), []byte("x"))
	assert.Error(t, err)
}
