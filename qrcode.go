// Package qrbyte encodes text into QR Code symbols using a single byte
// mode segment.
//
// A QR Code is created with New, which picks the smallest version that
// fits the content at the requested recovery level and the mask pattern
// with the lowest penalty. The result can be read as a module grid with
// Bitmap or rendered with PNG, JPEG, SVG or PDF.
//
//	q, err := qrbyte.New("https://example.org", qrbyte.Medium)
//	if err != nil {
//		return err
//	}
//
//	png, err := q.PNG(256)
//
// Only characters with a single byte ISO-8859-1 representation can be
// encoded.
package qrbyte

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"

	"github.com/signintech/gopdf"

	svgo "github.com/ajstarks/svgo"

	"github.com/RashadAnsari/qrbyte/internal/bitset"
)

// DefaultQuietZone is the width in modules of the light border drawn
// around a symbol.
const DefaultQuietZone = 4

type QRCode struct {
	// Original content encoded.
	content string

	// QR Code type.
	level         RecoveryLevel
	versionNumber int

	// User settable drawing options.
	ForegroundColor color.Color
	BackgroundColor color.Color

	// Qr Code margin in modules. Negative values are treated as zero.
	Margin int

	// Base 64 output.
	Base64 bool

	version qrCodeVersion

	data   *bitset.Bitset
	symbol *symbol
	mask   int
}

// New encodes content at the given recovery level.
func New(content string, level RecoveryLevel) (*QRCode, error) {
	data, err := toSingleBytes(content)
	if err != nil {
		return nil, err
	}

	version, err := chooseQRCodeVersion(len(data), level)
	if err != nil {
		return nil, err
	}

	log().Debug("version selected", "length", len(data), "level", level.String(), "version", version.version)

	encoder, err := newDataEncoder(version)
	if err != nil {
		return nil, err
	}

	encoded, err := encoder.encode(data, dataModeByte)
	if err != nil {
		return nil, err
	}

	q := &QRCode{
		content: content,

		level:         level,
		versionNumber: version.version,

		ForegroundColor: color.Black,
		BackgroundColor: color.White,

		Margin: DefaultQuietZone,

		version: version,
		data:    encoded,
	}

	if err := q.encode(); err != nil {
		return nil, err
	}

	return q, nil
}

// Encode returns the module grid for text, surrounded by a light border
// quietZone modules wide. True is dark.
func Encode(text string, level RecoveryLevel, quietZone int) ([][]bool, error) {
	q, err := New(text, level)
	if err != nil {
		return nil, err
	}

	return q.symbol.bitmap(quietZone), nil
}

// encode builds the symbol from the data codewords: error correction,
// module placement, masking and format information.
func (q *QRCode) encode() error {
	m := newMatrixBuilder(q.version)
	m.addFunctionPatterns()

	encoded, err := encodeBlocks(q.data, q.version, m.symbol.numFreeModules())
	if err != nil {
		return err
	}

	if err := m.addData(encoded); err != nil {
		return err
	}

	mask, penalty, err := selectMask(m.symbol)
	if err != nil {
		return err
	}

	m.symbol.applyMask(mask)

	format, err := formatInfo(q.level, mask)
	if err != nil {
		return err
	}

	m.addFormatInfo(format)

	version, ok, err := versionInfo(q.versionNumber)
	if err != nil {
		return err
	}

	if ok {
		m.addVersionInfo(version)
	}

	q.symbol = m.symbol
	q.mask = mask

	log().Debug("mask selected", "mask", mask, "penalty", penalty, "version", q.versionNumber)
	log().Debug("symbol built", "version", q.versionNumber, "size", m.size, "quiet_zone", q.Margin)

	return nil
}

// Content returns the encoded text.
func (q *QRCode) Content() string {
	return q.content
}

// Level returns the recovery level.
func (q *QRCode) Level() RecoveryLevel {
	return q.level
}

// Version returns the symbol version, 1 to 40.
func (q *QRCode) Version() int {
	return q.versionNumber
}

// Mask returns the selected mask pattern, 0 to 7.
func (q *QRCode) Mask() int {
	return q.mask
}

// Bitmap returns a copy of the module grid including the Margin. True is
// dark.
func (q *QRCode) Bitmap() [][]bool {
	return q.symbol.bitmap(q.Margin)
}

// String returns the symbol drawn with Unicode block characters, light
// modules as full blocks.
func (q *QRCode) String() string {
	return bitmapString(q.Bitmap())
}

// Image returns the symbol as an image of size*size pixels. A negative
// size sets the number of pixels per module instead. The image is never
// smaller than one pixel per module.
func (q *QRCode) Image(size int) image.Image {
	bitmap := q.Bitmap()

	// Minimum pixels (both width and height) required.
	realSize := len(bitmap)

	// Variable size support.
	if size < 0 {
		size = size * -1 * realSize
	}

	// Actual pixels available to draw the symbol. Automatically increase the
	// image size if it's not large enough.
	if size < realSize {
		size = realSize
	}

	rect := image.Rectangle{Min: image.Point{}, Max: image.Point{X: size, Y: size}}

	// Saves a few bytes to have them in this order.
	p := color.Palette([]color.Color{q.BackgroundColor, q.ForegroundColor})
	img := image.NewPaletted(rect, p)

	// Map each image pixel to the nearest QR code module.
	modulesPerPixel := float64(realSize) / float64(size)

	for y := 0; y < size; y++ {
		y2 := int(float64(y) * modulesPerPixel)

		for x := 0; x < size; x++ {
			x2 := int(float64(x) * modulesPerPixel)

			if bitmap[y2][x2] {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	return img
}

func (q *QRCode) dataURI(mediaType string, b []byte) []byte {
	if !q.Base64 {
		return b
	}

	return []byte(fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(b)))
}

// PNG returns the symbol as a PNG image, see Image for size.
func (q *QRCode) PNG(size int) ([]byte, error) {
	encoder := png.Encoder{CompressionLevel: png.BestCompression}

	var b bytes.Buffer

	if err := encoder.Encode(&b, q.Image(size)); err != nil {
		return nil, err
	}

	return q.dataURI("image/png", b.Bytes()), nil
}

// JPEG returns the symbol as a JPEG image, see Image for size.
func (q *QRCode) JPEG(size int) ([]byte, error) {
	var b bytes.Buffer

	if err := jpeg.Encode(&b, q.Image(size), &jpeg.Options{Quality: jpeg.DefaultQuality}); err != nil {
		return nil, err
	}

	return q.dataURI("image/jpeg", b.Bytes()), nil
}

// PDF returns a single page PDF document holding the symbol, see Image
// for size. The page measures size points.
func (q *QRCode) PDF(size int) ([]byte, error) {
	img := q.Image(size)
	side := float64(img.Bounds().Dx())

	var b bytes.Buffer

	pdf := gopdf.GoPdf{}

	rect := gopdf.Rect{W: side, H: side}

	pdf.Start(gopdf.Config{Unit: gopdf.UnitPT, PageSize: rect})
	pdf.AddPage()

	if err := pdf.ImageFrom(img, 0, 0, &rect); err != nil {
		return nil, err
	}

	if err := pdf.Write(&b); err != nil {
		return nil, err
	}

	return q.dataURI("application/pdf", b.Bytes()), nil
}

// SVG returns the symbol as an SVG document of at least size*size
// pixels, one square per dark module.
func (q *QRCode) SVG(size int) ([]byte, error) {
	var b bytes.Buffer

	bitmap := q.Bitmap()
	realSize := len(bitmap)

	scale := math.Floor(float64(size)/float64(realSize)) + float64(1)
	size = int(scale) * realSize

	svg := svgo.New(&b)

	svg.Start(size, size)
	svg.Rect(0, 0, size, size, svgStyle(q.BackgroundColor))
	svg.Group(svgStyle(q.ForegroundColor))
	svg.Scale(scale)

	for y, row := range bitmap {
		for x, v := range row {
			if v {
				svg.Rect(x, y, 1, 1)
			}
		}
	}

	svg.Gend()
	svg.Gend()
	svg.End()

	return q.dataURI("image/svg+xml", b.Bytes()), nil
}

func svgStyle(c color.Color) string {
	r, g, b, a := c.RGBA()

	return fmt.Sprintf("fill: rgb(%d, %d, %d); fill-opacity: %.2f",
		r>>8, g>>8, b>>8, float64(a>>8)/255,
	)
}
