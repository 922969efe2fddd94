// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store places downloaded files in the output directory under
// collision-free, sequence-numbered names.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// statFunc is swapped by tests to simulate probe failures.
var statFunc = os.Stat

// Prefix turns a search term into a filename prefix by replacing each
// space with an underscore.
func Prefix(term string) string {
	return strings.ReplaceAll(term, " ", "_")
}

// Filename returns "{prefix}_{seq:05d}{ext}". ext includes its leading dot.
func Filename(prefix string, seq int, ext string) string {
	return fmt.Sprintf("%s_%05d%s", prefix, seq, ext)
}

// Sequencer hands out file paths for one search term. The counter only
// moves forward, so a slot freed by a later delete is not handed out again.
// Probing is not a reservation: concurrent writers to the same directory
// and term can race.
type Sequencer struct {
	dir    string
	prefix string
	ext    string
	seq    int
}

// NewSequencer returns a Sequencer for term in dir. The counter starts at 1
// and is advanced before every probe, so the first candidate is _00002.
func NewSequencer(dir, term, ext string) *Sequencer {
	return &Sequencer{dir: dir, prefix: Prefix(term), ext: ext, seq: 1}
}

// Seq returns the last number handed out (or the initial value).
func (s *Sequencer) Seq() int { return s.seq }

// Next advances the counter past every existing file and returns the first
// path that did not exist when probed.
func (s *Sequencer) Next() (string, error) {
	for {
		s.seq++
		path := filepath.Join(s.dir, Filename(s.prefix, s.seq, s.ext))
		_, err := statFunc(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("probing %s: %w", path, err)
		}
	}
}

// WriteNew writes data to path, failing with fs.ErrExist if something is
// already there. A partial file is removed on write failure.
func WriteNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}
	return nil
}

// Place writes data under the next free name from seq. If a file appears
// between the probe and the create, it moves on to the following slot.
func Place(seq *Sequencer, data []byte) (string, error) {
	for {
		path, err := seq.Next()
		if err != nil {
			return "", err
		}
		err = WriteNew(path, data)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return path, nil
	}
}
