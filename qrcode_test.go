package qrbyte

import (
	"bytes"
	"errors"
	"image/jpeg"
	"image/png"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

func TestHelloScenario(t *testing.T) {
	q, err := New("HELLO", Highest)
	if err != nil {
		t.Fatal(err)
	}

	if q.Version() != 1 || q.Level() != Highest || q.Content() != "HELLO" {
		t.Errorf("got version %d level %s content %q", q.Version(), q.Level(), q.Content())
	}

	if got := q.data.String()[:52]; got != "0100"+"00000101"+"0100100001000101010011000100110001001111" {
		t.Errorf("data bits = %s", got)
	}

	bitmap := q.Bitmap()
	if len(bitmap) != 17+4+8 {
		t.Fatalf("side = %d, want 29", len(bitmap))
	}

	for i := 0; i < len(bitmap); i++ {
		for j := 0; j < DefaultQuietZone; j++ {
			if bitmap[i][j] || bitmap[j][i] || bitmap[i][len(bitmap)-1-j] || bitmap[len(bitmap)-1-j][i] {
				t.Fatalf("dark module in the quiet zone at %d, %d", i, j)
			}
		}
	}

	// Top left corner of the finder pattern.
	if !bitmap[DefaultQuietZone][DefaultQuietZone] {
		t.Error("finder pattern missing")
	}
}

func TestEncodeQuietZone(t *testing.T) {
	for _, quietZone := range []int{0, 1, 4, 10} {
		grid, err := Encode("quiet zone", Medium, quietZone)
		if err != nil {
			t.Fatal(err)
		}

		if want := 21 + 2*quietZone; len(grid) != want || len(grid[0]) != want {
			t.Errorf("quiet zone %d: side %d, want %d", quietZone, len(grid), want)
		}
	}

	grid, err := Encode("quiet zone", Medium, -3)
	if err != nil {
		t.Fatal(err)
	}

	if len(grid) != 21 {
		t.Errorf("negative quiet zone: side %d, want 21", len(grid))
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	text := strings.Repeat("determinism ", 30)

	a, err := Encode(text, High, DefaultQuietZone)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Encode(text, High, DefaultQuietZone)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different symbols")
	}
}

func TestBitmapIsACopy(t *testing.T) {
	q, err := New("copy", Low)
	if err != nil {
		t.Fatal(err)
	}

	b := q.Bitmap()
	b[DefaultQuietZone][DefaultQuietZone] = false

	if !q.Bitmap()[DefaultQuietZone][DefaultQuietZone] {
		t.Error("Bitmap shares storage with the symbol")
	}
}

func TestErrorsAreNotPartial(t *testing.T) {
	tests := []struct {
		text  string
		level RecoveryLevel
		want  error
	}{
		{"€", Low, ErrInvalidCharacter},
		{strings.Repeat("x", 2332), Medium, ErrMessageTooLong},
	}

	for _, tc := range tests {
		q, err := New(tc.text, tc.level)
		if !errors.Is(err, tc.want) || q != nil {
			t.Errorf("New: q = %v, err = %v, want %v", q, err, tc.want)
		}

		grid, err := Encode(tc.text, tc.level, 4)
		if !errors.Is(err, tc.want) || grid != nil {
			t.Errorf("Encode: err = %v, want %v", err, tc.want)
		}
	}

	if _, err := New("level", RecoveryLevel(9)); err == nil || IsInternal(err) {
		t.Errorf("invalid level: err = %v", err)
	}
}

func decode(t *testing.T, q *QRCode) string {
	t.Helper()

	b, err := q.PNG(-4)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatal(err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE: true,
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		t.Fatalf("decode version %d-%s mask %d: %v", q.Version(), q.Level(), q.Mask(), err)
	}

	return result.GetText()
}

func TestRoundTrip(t *testing.T) {
	const alphabet = "The quick brown fox jumps over the lazy dog 0123456789 !#$%&()*+,-./:;<=>?@[]^_{|}"

	text := func(n int) string {
		return strings.Repeat(alphabet, n/len(alphabet)+1)[:n]
	}

	tests := []struct {
		name  string
		text  string
		level RecoveryLevel
	}{
		{"length 1", text(1), Medium},
		{"length 10", text(10), Medium},
		{"length 100", text(100), Medium},
		{"boundary 5-M", text(Capacity(5, Medium)), Medium},
		{"boundary 1-H", text(Capacity(1, Highest)), Highest},
		{"low", text(50), Low},
		{"high", text(50), High},
		{"highest", text(50), Highest},
		{"version information", text(300), Low},
		{"two groups", text(Capacity(15, High)), High},
		{"empty", "", Low},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := New(tc.text, tc.level)
			if err != nil {
				t.Fatal(err)
			}

			if got := decode(t, q); got != tc.text {
				t.Errorf("decoded %q, want %q", got, tc.text)
			}
		})
	}
}

func TestRoundTripEveryMask(t *testing.T) {
	seen := make(map[int]bool)

	for i := 0; i < 200 && len(seen) < numMasks; i++ {
		text := strings.Repeat("m", i)

		q, err := New(text, Low)
		if err != nil {
			t.Fatal(err)
		}

		if seen[q.Mask()] {
			continue
		}

		seen[q.Mask()] = true

		if got := decode(t, q); got != text {
			t.Errorf("mask %d: decoded %q, want %q", q.Mask(), got, text)
		}
	}
}

func TestImageSize(t *testing.T) {
	q, err := New("HELLO", Highest)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		size int
		want int
	}{
		{-4, 29 * 4},
		{-1, 29},
		{10, 29},
		{256, 256},
	}

	for _, tc := range tests {
		if got := q.Image(tc.size).Bounds().Dx(); got != tc.want {
			t.Errorf("Image(%d) width %d, want %d", tc.size, got, tc.want)
		}
	}

	q.Margin = 0
	if got := q.Image(-1).Bounds().Dx(); got != 21 {
		t.Errorf("no margin: width %d, want 21", got)
	}
}

func TestRenderers(t *testing.T) {
	q, err := New("https://rashadansari.github.io", Medium)
	if err != nil {
		t.Fatal(err)
	}

	b, err := q.PNG(200)
	if err != nil {
		t.Fatal(err)
	}

	if img, err := png.Decode(bytes.NewReader(b)); err != nil || img.Bounds().Dx() != 200 {
		t.Errorf("PNG: %v", err)
	}

	b, err = q.JPEG(200)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := jpeg.Decode(bytes.NewReader(b)); err != nil {
		t.Errorf("JPEG: %v", err)
	}

	b, err = q.SVG(200)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(b, []byte("<svg")) || !bytes.Contains(b, []byte("<rect")) {
		t.Errorf("SVG output: %.80s", b)
	}

	b, err = q.PDF(200)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Errorf("PDF output: %.20q", b)
	}

	q.Base64 = true

	formats := []struct {
		render func(int) ([]byte, error)
		prefix string
	}{
		{q.PNG, "data:image/png;base64,"},
		{q.JPEG, "data:image/jpeg;base64,"},
		{q.SVG, "data:image/svg+xml;base64,"},
		{q.PDF, "data:application/pdf;base64,"},
	}

	for _, f := range formats {
		b, err := f.render(100)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.HasPrefix(b, []byte(f.prefix)) {
			t.Errorf("got %.40s, want prefix %s", b, f.prefix)
		}
	}
}

func TestString(t *testing.T) {
	q, err := New("HELLO", Highest)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(q.String(), "\n"), "\n")
	if len(lines) != 29 {
		t.Fatalf("%d lines, want 29", len(lines))
	}

	// Quiet zone is light, drawn as full blocks.
	if !strings.HasPrefix(lines[0], "████") {
		t.Errorf("first line %q", lines[0])
	}
}

func TestLevels(t *testing.T) {
	for i, s := range []string{"L", "M", "Q", "H"} {
		l, err := ParseLevel(strings.ToLower(s))
		if err != nil {
			t.Fatal(err)
		}

		if l != RecoveryLevel(i) || l.String() != s {
			t.Errorf("ParseLevel(%q) = %v", s, l)
		}
	}

	for _, s := range []string{"", "X", "LM"} {
		if _, err := ParseLevel(s); err == nil {
			t.Errorf("ParseLevel(%q) succeeded", s)
		}
	}

	if Capacity(1, Highest) != 7 || Capacity(40, Low) != 2953 || Capacity(41, Low) != 0 {
		t.Error("Capacity disagrees with the byte mode capacity table")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer

	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	if _, err := New("HELLO", Highest); err != nil {
		t.Fatal(err)
	}

	for _, msg := range []string{"version selected", "mask selected", "symbol built"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("log missing %q:\n%s", msg, buf.String())
		}
	}

	SetLogger(nil)
	buf.Reset()

	if _, err := New("HELLO", Highest); err != nil {
		t.Fatal(err)
	}

	if buf.Len() != 0 {
		t.Errorf("discarding logger wrote %q", buf.String())
	}
}
