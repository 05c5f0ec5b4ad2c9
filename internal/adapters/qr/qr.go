// Package qr implements the optical-code ports with QR codes, rendering
// via skip2/go-qrcode and decoding via makiuchi-d/gozxing.
package qr

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	qrgen "github.com/skip2/go-qrcode"

	"github.com/ludovicl/gpg2qr/internal/domain"
	"github.com/ludovicl/gpg2qr/internal/framing"
)

// Config is the code geometry and error-correction parameter block. The
// framing core passes it through without interpreting it.
type Config struct {
	// Size is the rendered image edge in pixels.
	Size int

	// Recovery selects the error-correction level: "low", "medium",
	// "high" or "highest".
	Recovery string

	// DisableBorder drops the quiet zone around the code. Keep the
	// border for anything that will be printed.
	DisableBorder bool
}

// DefaultConfig returns the rendering parameters used for printed sheets.
func DefaultConfig() Config {
	return Config{
		Size:     256,
		Recovery: "high",
	}
}

func recoveryLevel(name string) (qrgen.RecoveryLevel, error) {
	switch name {
	case "low":
		return qrgen.Low, nil
	case "", "medium":
		return qrgen.Medium, nil
	case "high":
		return qrgen.High, nil
	case "highest":
		return qrgen.Highest, nil
	default:
		return 0, fmt.Errorf("%w: unknown recovery level %q", domain.ErrRenderFailed, name)
	}
}

// Renderer implements ports.CodeRenderer.
type Renderer struct {
	cfg Config
}

// NewRenderer creates a renderer with the given parameter block.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Size <= 0 {
		cfg.Size = DefaultConfig().Size
	}
	return &Renderer{cfg: cfg}
}

// Render encodes one serialized frame into a QR code image. Frames above
// the declared binary capacity are rejected rather than silently bumped
// to a denser code version.
func (r *Renderer) Render(frame []byte) (image.Image, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("%w: empty frame", domain.ErrRenderFailed)
	}
	if len(frame) > framing.MaxFrameLen {
		return nil, fmt.Errorf("%w: frame is %d bytes, capacity is %d",
			domain.ErrRenderFailed, len(frame), framing.MaxFrameLen)
	}
	level, err := recoveryLevel(r.cfg.Recovery)
	if err != nil {
		return nil, err
	}
	code, err := qrgen.New(string(frame), level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	code.DisableBorder = r.cfg.DisableBorder
	return code.Image(r.cfg.Size), nil
}

// Decoder implements ports.CodeDecoder.
type Decoder struct{}

// NewDecoder creates a QR code decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode recovers the serialized frame bytes from a QR code image.
func (d *Decoder) Decode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", domain.ErrScanFailed)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScanFailed, err)
	}
	reader := zxqrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrScanFailed, err)
	}
	return []byte(result.GetText()), nil
}
