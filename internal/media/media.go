// Package media turns photos from disk, a camera or the web into values for
// an item's image field.
package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder for gallery photos
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/image/draw"
)

// ErrCapture marks every failure to obtain an image. The caller leaves the
// image field untouched when it sees one.
var ErrCapture = errors.New("media capture failed")

const (
	// MaxDimension is the longest side an embedded image may have.
	MaxDimension = 1024
	// JPEGQuality is used when re-encoding embedded images.
	JPEGQuality = 80
)

// Capturer produces a value for the image field.
type Capturer interface {
	Capture(ctx context.Context) (string, error)
}

// CaptureError wraps the reason a capture failed.
type CaptureError struct {
	Err    error
	Source string
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCapture, e.Source, e.Err)
}

func (e *CaptureError) Unwrap() []error {
	return []error{ErrCapture, e.Err}
}

func captureErr(source string, err error) error {
	return &CaptureError{Source: source, Err: err}
}

// Embed sniffs raw image bytes, shrinks them to fit MaxDimension and
// returns a JPEG data URL. Only JPEG and PNG input is accepted.
func Embed(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if mime != "image/jpeg" && mime != "image/png" {
		return "", fmt.Errorf("not an image file (%s)", mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	img = fit(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fit scales img down so neither side exceeds limit, keeping the aspect
// ratio. Smaller images are returned as they are.
func fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}

	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// URLImage validates text typed into the image URL field. Blank input
// clears the image.
func URLImage(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", captureErr("url", fmt.Errorf("invalid image URL %q", s))
	}
	return s, nil
}
