package qr

import (
	"errors"
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrEncoding = errors.New("qr encoding failed")

type Encoder interface {
	Encode(payload string) (image.Image, error)
}

// CodeEncoder renders payloads with go-qrcode.
type CodeEncoder struct {
	Level  qrcode.RecoveryLevel
	Pixels int
}

func NewEncoder() *CodeEncoder {
	return &CodeEncoder{Level: qrcode.Medium, Pixels: 256}
}

func (e *CodeEncoder) Encode(payload string) (image.Image, error) {
	code, err := qrcode.New(payload, e.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return code.Image(e.Pixels), nil
}
