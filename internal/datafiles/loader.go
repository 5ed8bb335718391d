// Package datafiles reads the game's exported JSON dumps and the player
// save file from disk. It is deliberately thin: records come out as ordered
// lore.Raw slices and all cross-referencing happens in pkg/lore.
package datafiles

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"zeelore/pkg/lore"
)

// Loader reads dump files from one data directory.
type Loader struct {
	dir string
	log *slog.Logger
}

func New(dir string, log *slog.Logger) *Loader {
	return &Loader{dir: dir, log: log}
}

// LoadWorldData reads the five entity dumps. A missing or unreadable file
// logs an error and contributes an empty record set; the graph always
// builds from whatever is present.
func (l *Loader) LoadWorldData() *lore.Data {
	return &lore.Data{
		Qualities: l.loadRecords("qualities"),
		Areas:     l.loadRecords("areas"),
		Events:    l.loadRecords("events"),
		Exchanges: l.loadRecords("exchanges"),
		Tiles:     l.loadRecords("Tiles"),
	}
}

func (l *Loader) loadRecords(name string) []lore.Raw {
	path := filepath.Join(l.dir, "entities", name+"_import.json")
	l.log.Debug("loading data file", "entity", name, "path", path)

	f, err := os.Open(path)
	if err != nil {
		l.log.Error("could not load data file", "entity", name, "error", err)
		return nil
	}
	defer f.Close()

	var records []map[string]any
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		l.log.Error("could not decode data file", "entity", name, "error", err)
		return nil
	}

	out := make([]lore.Raw, len(records))
	for i, r := range records {
		out[i] = lore.Raw(r)
	}
	return out
}

// DataHash fingerprints the dump files so cached renderings can be keyed on
// content: unchanged dumps hit the cache, fresh exports miss it.
func (l *Loader) DataHash() string {
	sum := sha256.New()
	for _, name := range []string{"qualities", "areas", "events", "exchanges", "Tiles"} {
		path := filepath.Join(l.dir, "entities", name+"_import.json")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		sum.Write(data)
	}
	return hex.EncodeToString(sum.Sum(nil))
}

// LoadSave reads a player save file.
func (l *Loader) LoadSave(path string) (lore.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open save: %w", err)
	}
	defer f.Close()

	var record map[string]any
	if err := json.NewDecoder(f).Decode(&record); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	return lore.Raw(record), nil
}

// WriteSave writes an edited save back, copying the current file aside
// first so a bad write never costs the player their game.
func (l *Loader) WriteSave(path string, record lore.Raw) error {
	if err := l.backupSave(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(map[string]any(record), "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

func (l *Loader) backupSave(path string) error {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open save for backup: %w", err)
	}
	defer src.Close()

	backup := fmt.Sprintf("%s.bak-%s", path, uuid.New().String()[:8])
	dst, err := os.Create(backup)
	if err != nil {
		return fmt.Errorf("create save backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy save backup: %w", err)
	}
	l.log.Info("saved backup", "path", backup)
	return nil
}
