package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/EdgeApp/edge-gift-cards/internal/outsink"
)

var ErrFinalized = errors.New("batch already finalized")

// Entry maps one printed card to its key material.
type Entry struct {
	Address    string `json:"pub"`
	PrivateKey string `json:"priv"`
}

// Batch is the ordered record of a run. Entry i is the i-th card placed.
type Batch struct {
	Network string  `json:"network"`
	Keys    []Entry `json:"keysJson"`

	finalized bool
}

func NewBatch(network string) *Batch {
	return &Batch{Network: network, Keys: []Entry{}}
}

func (b *Batch) Append(e Entry) error {
	if b.finalized {
		return ErrFinalized
	}
	if e.Address == "" || e.PrivateKey == "" {
		return fmt.Errorf("manifest entry %d: empty field", len(b.Keys))
	}
	b.Keys = append(b.Keys, e)
	return nil
}

func (b *Batch) Len() int { return len(b.Keys) }

// Encode returns the JSON document without finalizing the batch.
func (b *Batch) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// Write serializes the batch to path and finalizes it. The file holds
// private keys and is created 0600.
func Write(path string, b *Batch) error {
	if b.finalized {
		return ErrFinalized
	}
	data, err := b.Encode()
	if err != nil {
		return err
	}
	if err := outsink.WriteFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	b.finalized = true
	return nil
}

func Read(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}
	var b Batch
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode manifest %q: %w", path, err)
	}
	b.finalized = true
	return &b, nil
}
