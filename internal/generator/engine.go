package generator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/EdgeApp/edge-gift-cards/internal/crypto"
	"github.com/EdgeApp/edge-gift-cards/internal/layout"
	"github.com/EdgeApp/edge-gift-cards/internal/manifest"
	"github.com/EdgeApp/edge-gift-cards/internal/network"
	"github.com/EdgeApp/edge-gift-cards/internal/outsink"
	"github.com/EdgeApp/edge-gift-cards/internal/qr"
	"github.com/EdgeApp/edge-gift-cards/internal/render"
	"github.com/EdgeApp/edge-gift-cards/pkg/logx"
)

type state int

const (
	stateInit state = iota
	stateReserved
	stateGenerating
	stateFinalized
	stateAborted
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateReserved:
		return "reserved"
	case stateGenerating:
		return "generating"
	case stateFinalized:
		return "finalized"
	default:
		return "aborted"
	}
}

// document is the canvas the batch draws on, serialized once at the end.
type document interface {
	layout.Canvas
	Bytes() ([]byte, error)
}

func newDocument(w, h float64) document { return render.NewDocument(w, h) }

type pipeline struct {
	opt      Options
	params   network.Params
	strategy layout.Strategy
	doc      document
	batch    *manifest.Batch
	state    state
	log      *zap.SugaredLogger
}

// Run generates one batch: every slot of opt.Sheets sheets gets a fresh key
// pair, then the PDF and its manifest are written side by side. On any error
// nothing is left in the output directory.
func Run(ctx context.Context, opt Options) (*Result, error) {
	return run(ctx, opt, newDocument)
}

func run(ctx context.Context, opt Options, newDoc func(w, h float64) document) (_ *Result, err error) {
	start := time.Now()
	opt = opt.withDefaults()

	params, err := network.Lookup(opt.Network)
	if err != nil {
		return nil, err
	}
	strategy, err := layout.New(opt.PrintToCard, opt.FrontOffset, opt.BackOffset, opt.MirrorBack)
	if err != nil {
		return nil, err
	}
	spec := strategy.Spec()
	bg, err := loadBackgrounds(opt, spec)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		opt:      opt,
		params:   params,
		strategy: strategy,
		doc:      newDoc(spec.PageWidth, spec.PageHeight),
		batch:    manifest.NewBatch(params.Name),
		log:      logx.With("generator").With("network", params.Name),
	}
	total := opt.Sheets * spec.PerSheet()
	p.log.Infow("batch started",
		"strategy", strategy.Name(),
		"sheets", opt.Sheets,
		"cards", total,
		"output", opt.OutputDir,
	)

	res, err := outsink.Reserve(opt.OutputDir, "keys-"+params.Name, opt.Discriminator)
	if err != nil {
		return nil, err
	}
	p.transition(stateReserved, "base", res.Base)

	defer func() {
		relErr := res.Release()
		if err != nil {
			p.transition(stateAborted, "err", err)
			err = multierr.Append(err, relErr)
			return
		}
		if relErr != nil {
			p.log.Warnw("reservation lock left behind", "base", res.Base, "err", relErr)
		}
	}()

	p.transition(stateGenerating)
	index := 0
	for sheet := 0; sheet < opt.Sheets; sheet++ {
		pages, err := strategy.AddSheet(p.doc, bg)
		if err != nil {
			return nil, fmt.Errorf("add sheet %d: %w", sheet, err)
		}
		for _, slot := range spec.Slots(1) {
			slot.Sheet = sheet
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("interrupted before slot %d: %w", index, err)
			}
			if err := p.placeSlot(index, slot, pages); err != nil {
				return nil, err
			}
			index++
		}
	}

	pdfPath, jsonPath := res.Path(".pdf"), res.Path(".json")
	if err := p.finalize(pdfPath, jsonPath); err != nil {
		return nil, err
	}
	p.transition(stateFinalized, "pdf", pdfPath, "manifest", jsonPath)

	result := &Result{
		Network:      params.Name,
		Strategy:     strategy.Name(),
		BaseName:     res.Base,
		PDFPath:      pdfPath,
		ManifestPath: jsonPath,
		Cards:        p.batch.Len(),
		Elapsed:      time.Since(start),
	}
	p.log.Infow("batch written",
		"base", result.BaseName,
		"cards", result.Cards,
		"elapsed", humanDuration(result.Elapsed),
	)
	return result, nil
}

// placeSlot runs generate → derive → encode → place for one card and records
// it in the manifest. The card and the manifest entry share one KeyPair.
func (p *pipeline) placeSlot(index int, slot layout.Slot, pages layout.Pages) error {
	fail := func(stage Stage, err error) error {
		return &SlotError{Index: index, Slot: slot, Stage: stage, Err: err}
	}

	kp, err := crypto.Generate(p.opt.Rand, p.params)
	if err != nil {
		if errors.Is(err, crypto.ErrDerivationInvariant) {
			return fail(StageDerive, err)
		}
		return fail(StageGenerate, err)
	}

	privPayload, err := qr.PrivatePayload(p.opt.Scheme, p.params.Name, kp.WIF)
	if err != nil {
		return fail(StageDerive, fmt.Errorf("%w: %v", crypto.ErrDerivationInvariant, err))
	}
	pubPayload, err := qr.PublicPayload(kp.Address)
	if err != nil {
		return fail(StageDerive, fmt.Errorf("%w: %v", crypto.ErrDerivationInvariant, err))
	}

	privQR, err := p.encode(privPayload)
	if err != nil {
		return fail(StageEncode, fmt.Errorf("private qr: %w", err))
	}
	pubQR, err := p.encode(pubPayload)
	if err != nil {
		return fail(StageEncode, fmt.Errorf("public qr: %w", err))
	}

	card := layout.Card{
		CurrencyCode: p.params.CurrencyCode,
		Address:      kp.Address,
		PrivateQR:    privQR,
		PublicQR:     pubQR,
	}
	if err := p.strategy.PlaceCard(p.doc, pages, slot, card); err != nil {
		return fail(StagePlace, err)
	}
	if err := p.batch.Append(manifest.Entry{Address: kp.Address, PrivateKey: kp.WIF}); err != nil {
		return fail(StagePlace, err)
	}

	fields := []any{"index", index, "sheet", slot.Sheet, "row", slot.Row, "col", slot.Column, "address", kp.Address}
	if !p.opt.HideSecrets {
		fields = append(fields, "wif", kp.WIF)
	}
	p.log.Debugw("card placed", fields...)
	return nil
}

func (p *pipeline) encode(payload string) (image.Image, error) {
	img, err := p.opt.Encoder.Encode(payload)
	if err != nil {
		if !errors.Is(err, qr.ErrEncoding) {
			err = fmt.Errorf("%w: %v", qr.ErrEncoding, err)
		}
		return nil, err
	}
	return img, nil
}

// finalize writes the document, then the manifest. A manifest failure takes
// the document back out so the pair is never split.
func (p *pipeline) finalize(pdfPath, jsonPath string) error {
	data, err := p.doc.Bytes()
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	if err := outsink.WriteFileAtomic(pdfPath, data, 0o600); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := manifest.Write(jsonPath, p.batch); err != nil {
		if rmErr := os.Remove(pdfPath); rmErr != nil {
			err = multierr.Append(err, fmt.Errorf("remove %q: %w", pdfPath, rmErr))
		}
		return err
	}
	return nil
}

func (p *pipeline) transition(to state, kv ...any) {
	from := p.state
	p.state = to
	if to == stateAborted {
		p.log.Errorw("batch aborted", append([]any{"from", from.String()}, kv...)...)
		return
	}
	p.log.Debugw("state", append([]any{"from", from.String(), "to", to.String()}, kv...)...)
}

func loadBackgrounds(opt Options, spec layout.Spec) (layout.Backgrounds, error) {
	var bg layout.Backgrounds
	if !opt.PrintToCard {
		return bg, nil
	}
	var err error
	if bg.Front, err = render.LoadTemplate(opt.FrontTemplate, spec.PageWidth, spec.PageHeight); err != nil {
		return bg, fmt.Errorf("front template: %w", err)
	}
	if bg.Back, err = render.LoadTemplate(opt.BackTemplate, spec.PageWidth, spec.PageHeight); err != nil {
		return bg, fmt.Errorf("back template: %w", err)
	}
	return bg, nil
}

func humanDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%02ds", m, s)
}
