// Package assets loads the title and background images. Decoding happens off
// the caller's goroutine; the result arrives on a channel once both images
// are ready.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // decoders register themselves with image.Decode
	_ "image/png"
	"log"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Sources are the file paths of the two images. An empty path selects the
// generated art.
type Sources struct {
	Title      string
	Background string
}

// Result carries both images. Err joins the per-image load failures; an
// image that failed is replaced with generated art, so Title and Background
// are never nil.
type Result struct {
	Title      image.Image
	Background image.Image
	Err        error
}

// Load decodes both sources concurrently and delivers exactly one Result.
// If ctx is cancelled first, the channel is closed without a value.
func Load(ctx context.Context, src Sources) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)

		var (
			wg              sync.WaitGroup
			res             Result
			errTitle, errBg error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			res.Title, errTitle = loadOne("title", src.Title, GenerateTitle)
		}()
		go func() {
			defer wg.Done()
			res.Background, errBg = loadOne("background", src.Background, GenerateBackground)
		}()
		wg.Wait()
		res.Err = errors.Join(errTitle, errBg)

		select {
		case <-ctx.Done():
		case out <- res:
		}
	}()
	return out
}

// loadOne decodes path, falling back to gen when path is empty or unusable.
func loadOne(name, path string, gen func() image.Image) (image.Image, error) {
	if path == "" {
		log.Printf("[Assets] %s: generated", name)
		return gen(), nil
	}
	img, err := decodeFile(path)
	if err != nil {
		log.Printf("[Assets] %s: %v, using generated art", name, err)
		return gen(), fmt.Errorf("load %s image: %w", name, err)
	}
	b := img.Bounds()
	log.Printf("[Assets] %s: %s (%dx%d)", name, path, b.Dx(), b.Dy())
	return img, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
