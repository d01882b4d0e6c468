package generator

import (
	"fmt"

	"github.com/EdgeApp/edge-gift-cards/internal/crypto"
	"github.com/EdgeApp/edge-gift-cards/internal/layout"
	"github.com/EdgeApp/edge-gift-cards/internal/network"
	"github.com/EdgeApp/edge-gift-cards/internal/outsink"
	"github.com/EdgeApp/edge-gift-cards/internal/qr"
)

// Batch failures. Every one of them aborts the whole run.
var (
	ErrUnknownNetwork      = network.ErrUnknownNetwork
	ErrKeyGenerationFailed = crypto.ErrKeyGeneration
	ErrDerivationInvariant = crypto.ErrDerivationInvariant
	ErrQREncodingFailed    = qr.ErrEncoding
	ErrDirectoryUnwritable = outsink.ErrDirectoryUnwritable
)

type Stage string

const (
	StageGenerate Stage = "generate"
	StageDerive   Stage = "derive"
	StageEncode   Stage = "encode"
	StagePlace    Stage = "place"
)

// SlotError reports which card broke the batch.
type SlotError struct {
	Index int
	Slot  layout.Slot
	Stage Stage
	Err   error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("slot %d (sheet %d row %d col %d) %s: %v",
		e.Index, e.Slot.Sheet, e.Slot.Row, e.Slot.Column, e.Stage, e.Err)
}

func (e *SlotError) Unwrap() error { return e.Err }
