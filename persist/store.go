// Package persist provides concrete stores for machine snapshots and
// transition history. The core fsmx package defines only the flat,
// id-addressed snapshot shapes; the encodings and storage live here.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx"
)

// ErrNotFound reports a machine id with no stored snapshot.
var ErrNotFound = errors.New("snapshot not found")

// Store is the persistence boundary for machine snapshots.
type Store[I, C any] interface {
	Save(ctx context.Context, snap fsmx.MachineSnapshot[I, C]) error
	Load(ctx context.Context, machineID string) (fsmx.MachineSnapshot[I, C], error)
}

// JSONStore is a file-based snapshot store using JSON, one file per
// machine id.
type JSONStore[I, C any] struct {
	dir string
}

// NewJSONStore creates a JSONStore, ensuring the directory exists.
func NewJSONStore[I, C any](dir string) (*JSONStore[I, C], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONStore[I, C]{dir: dir}, nil
}

func (s *JSONStore[I, C]) Save(ctx context.Context, snap fsmx.MachineSnapshot[I, C]) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	fn := filepath.Join(s.dir, snap.MachineID+".json")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (s *JSONStore[I, C]) Load(ctx context.Context, machineID string) (fsmx.MachineSnapshot[I, C], error) {
	var snap fsmx.MachineSnapshot[I, C]

	fn := filepath.Join(s.dir, machineID+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, fmt.Errorf("machine %q: %w", machineID, ErrNotFound)
		}
		return snap, fmt.Errorf("read %s: %w", fn, err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("json unmarshal: %w", err)
	}
	snap.MachineID = machineID // Ensure ID
	return snap, nil
}

// YAMLStore is a file-based snapshot store using YAML, one file per
// machine id.
type YAMLStore[I, C any] struct {
	dir string
}

// NewYAMLStore creates a YAMLStore, ensuring the directory exists.
func NewYAMLStore[I, C any](dir string) (*YAMLStore[I, C], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLStore[I, C]{dir: dir}, nil
}

func (s *YAMLStore[I, C]) Save(ctx context.Context, snap fsmx.MachineSnapshot[I, C]) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	fn := filepath.Join(s.dir, snap.MachineID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func (s *YAMLStore[I, C]) Load(ctx context.Context, machineID string) (fsmx.MachineSnapshot[I, C], error) {
	var snap fsmx.MachineSnapshot[I, C]

	fn := filepath.Join(s.dir, machineID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, fmt.Errorf("machine %q: %w", machineID, ErrNotFound)
		}
		return snap, fmt.Errorf("read %s: %w", fn, err)
	}

	if err := yaml.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snap.MachineID = machineID // Ensure ID
	return snap, nil
}

var (
	_ Store[string, int] = (*JSONStore[string, int])(nil)
	_ Store[string, int] = (*YAMLStore[string, int])(nil)
)
