package image

import (
	"bytes"
	"fmt"
	goimage "image"
	"image/draw"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// StdDecoder backs the Decoder port with the Go image registry (PNG, JPEG,
// GIF plus the x/image WebP and BMP decoders) and CatmullRom scaling.
type StdDecoder struct{}

func NewStdDecoder() *StdDecoder {
	return &StdDecoder{}
}

type stdFrame struct {
	img    goimage.Image
	closed bool
}

func (f *stdFrame) Bounds() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

func (f *stdFrame) Close() error {
	if f.closed {
		return fmt.Errorf("frame already released")
	}
	f.closed = true
	f.img = nil
	return nil
}

func (d *StdDecoder) Decode(data []byte) (Frame, error) {
	img, _, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &stdFrame{img: img}, nil
}

func (d *StdDecoder) Resize(src Frame, width, height int) (Frame, error) {
	frame, ok := src.(*stdFrame)
	if !ok || frame.closed {
		return nil, fmt.Errorf("resize source is not a live frame")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resize target %dx%d", width, height)
	}

	dst := goimage.NewRGBA(goimage.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), frame.img, frame.img.Bounds(), xdraw.Src, nil)
	return &stdFrame{img: dst}, nil
}

func (d *StdDecoder) RGBA(f Frame) ([]byte, error) {
	frame, ok := f.(*stdFrame)
	if !ok || frame.closed {
		return nil, fmt.Errorf("pixel source is not a live frame")
	}

	if rgba, ok := frame.img.(*goimage.RGBA); ok {
		pixels := make([]byte, len(rgba.Pix))
		copy(pixels, rgba.Pix)
		return pixels, nil
	}

	bounds := frame.img.Bounds()
	rgba := goimage.NewRGBA(bounds)
	draw.Draw(rgba, bounds, frame.img, bounds.Min, draw.Src)
	return rgba.Pix, nil
}
