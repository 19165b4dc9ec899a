package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"fruitcat/model"
)

// Load reads the catalogue from a JSON file. Any failure (missing file,
// unreadable file, bad JSON) is returned to the caller, which is expected
// to fall back to the default starter catalogue.
func Load(path string) ([]model.Fruit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fruits []model.Fruit
	if err := json.Unmarshal(data, &fruits); err != nil {
		return nil, err
	}
	if fruits == nil {
		fruits = []model.Fruit{}
	}
	return fruits, nil
}

// Save writes the full catalogue to path, overwriting the previous
// content. The previous file is kept as a .bak copy, and the write goes
// through a temporary file plus atomic rename so a failed save never
// leaves a truncated catalogue behind.
func Save(path string, fruits []model.Fruit) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := backup(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fruits); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.WriteFile(path+".bak", data, 0o644)
}
