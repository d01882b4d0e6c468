package generator

import (
	"io"
	"time"

	"github.com/EdgeApp/edge-gift-cards/internal/layout"
	"github.com/EdgeApp/edge-gift-cards/internal/outsink"
	"github.com/EdgeApp/edge-gift-cards/internal/qr"
)

type Options struct {
	Network       string
	OutputDir     string
	PrintToCard   bool // gift-card sheet instead of label sheet
	Sheets        int
	Scheme        string
	Discriminator string // outsink.Counter | outsink.Timestamp

	FrontTemplate string
	BackTemplate  string
	FrontOffset   layout.Offset
	BackOffset    layout.Offset
	MirrorBack    bool

	HideSecrets bool // keep WIFs out of the log entirely

	Rand    io.Reader  // nil: crypto/rand
	Encoder qr.Encoder // nil: go-qrcode
}

func (o Options) withDefaults() Options {
	if o.OutputDir == "" {
		o.OutputDir = "./output"
	}
	if o.Sheets < 1 {
		o.Sheets = 1
	}
	if o.Scheme == "" {
		o.Scheme = qr.DefaultScheme
	}
	if o.Discriminator == "" {
		o.Discriminator = outsink.Counter
	}
	if o.Encoder == nil {
		o.Encoder = qr.NewEncoder()
	}
	return o
}

// Result describes a finalized batch.
type Result struct {
	Network      string
	Strategy     string
	BaseName     string
	PDFPath      string
	ManifestPath string
	Cards        int
	Elapsed      time.Duration
}
