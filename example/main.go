package main

import (
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/RashadAnsari/qrbyte"
)

func main() {
	qrbyte.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	qr, err := qrbyte.New("https://rashadansari.github.io", qrbyte.High)
	if err != nil {
		log.Fatal(err.Error())
	}

	opacity := 100
	a := (float64(opacity) / float64(100)) * float64(255)
	qr.ForegroundColor = color.RGBA{R: 255, G: 0, B: 0, A: uint8(a)}

	writeToFile("qr.png", qr.PNG)
	writeToFile("qr.jpeg", qr.JPEG)
	writeToFile("qr.svg", qr.SVG)
	writeToFile("qr.pdf", qr.PDF)

	fmt.Printf("version %d-%s, mask %d\n", qr.Version(), qr.Level(), qr.Mask())
	fmt.Print(qr.String())

	qr.Base64 = true

	stdoutBase64(qr.PNG)
	fmt.Println("----------")
	stdoutBase64(qr.SVG)
}

func writeToFile(fileName string, FormatFunc func(_ int) ([]byte, error)) {
	size := 500
	fileMode := os.FileMode(0644)

	bytes, err := FormatFunc(size)
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := os.WriteFile(fileName, bytes, fileMode); err != nil {
		log.Fatal(err.Error())
	}
}

func stdoutBase64(FormatFunc func(_ int) ([]byte, error)) {
	bytes, err := FormatFunc(-4)
	if err != nil {
		log.Fatal(err.Error())
	}

	fmt.Println(string(bytes))
}
