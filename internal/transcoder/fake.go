package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/png"

	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
)

// Fake is an in-memory transcoder for tests. It resizes Source with the same
// deterministic Lanczos pipeline on every call, so repeated invocations yield
// byte-identical output.
type Fake struct {
	// Source is served as the object behind every source URL.
	Source []byte
}

var _ port.Transcoder = (*Fake)(nil)

func (f *Fake) ResizeImage(ctx context.Context, req port.ResizeRequest) (*port.ResizeResult, error) {
	start := time.Now()
	img, _, err := image.Decode(bytes.NewReader(f.Source))
	if err != nil {
		return nil, fmt.Errorf("fake transcoder could not decode source: %w", err)
	}

	result := &port.ResizeResult{Variants: make(map[string]port.VariantPayload, len(req.Recipes))}
	for _, r := range req.Recipes {
		variant := apply(img, r)
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, variant, &jpeg.Options{Quality: quality(r)}); err != nil {
			return nil, fmt.Errorf("fake transcoder could not encode variant %q: %w", r.Name, err)
		}
		result.Variants[r.Name] = port.VariantPayload{
			Data:        buf.Bytes(),
			SizeBytes:   int64(buf.Len()),
			ContentType: "image/jpeg",
		}
	}
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

// ResizeVideo fabricates deterministic payloads without real frame
// extraction; the video contract's internals stay external.
func (f *Fake) ResizeVideo(ctx context.Context, req port.ResizeRequest) (*port.ResizeResult, error) {
	result := &port.ResizeResult{Variants: make(map[string]port.VariantPayload, len(req.Recipes))}
	for _, r := range req.Recipes {
		data := append([]byte(r.Name+":"), f.Source...)
		contentType := "image/jpeg"
		if r.Name == "preview" {
			contentType = "video/mp4"
		}
		result.Variants[r.Name] = port.VariantPayload{
			Data:        data,
			SizeBytes:   int64(len(data)),
			ContentType: contentType,
		}
	}
	return result, nil
}

func apply(img image.Image, r model.VariantRecipe) image.Image {
	switch r.Fit {
	case model.FitCover:
		return imaging.Fill(img, r.TargetWidth, r.TargetHeight, imaging.Center, imaging.Lanczos)
	default:
		b := img.Bounds()
		if b.Dx() <= r.TargetWidth && b.Dy() <= r.TargetHeight {
			return img
		}
		return imaging.Fit(img, r.TargetWidth, r.TargetHeight, imaging.Lanczos)
	}
}

func quality(r model.VariantRecipe) int {
	if r.Quality > 0 && r.Quality <= 100 {
		return r.Quality
	}
	return jpeg.DefaultQuality
}
