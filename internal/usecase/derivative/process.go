package derivative

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/classifier"
	"github.com/fvidal/derivatives-ms-go/internal/logger"
	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
)

const presignedSourceExpiry = 15 * time.Minute

type generatorSrv struct {
	strg          port.Storage
	rpc           port.Transcoder
	recipes       RecipeTable
	videoRecipes  []model.VariantRecipe
	publicBaseURL string
}

// compile-time check: *generatorSrv must satisfy port.DerivativeProcessor
var _ port.DerivativeProcessor = (*generatorSrv)(nil)

// NewGenerator constructs a DerivativeProcessor. publicBaseURL may be empty,
// in which case the transcoder is handed a presigned download URL instead.
func NewGenerator(strg port.Storage, rpc port.Transcoder, recipes RecipeTable, videoRecipes []model.VariantRecipe, publicBaseURL string) port.DerivativeProcessor {
	return &generatorSrv{strg, rpc, recipes, videoRecipes, publicBaseURL}
}

// Process fetches the original, asks the transcoder for every variant of the
// role's recipe set in one call, and persists the results. A missing original
// is a delete race, not a failure: there is nothing to retry productively.
// Any other failure returns a non-nil error so the caller can retry; a write
// that fails midway leaves earlier variants in place, and idempotent
// reprocessing self-heals on the next delivery.
func (s *generatorSrv) Process(ctx context.Context, in port.ProcessInput) (model.ProcessingResult, error) {
	start := time.Now()
	res := model.ProcessingResult{ObjectKey: in.ObjectKey}

	original, err := s.strg.GetFile(ctx, in.ObjectKey)
	if errors.Is(err, ErrObjectNotFound) {
		logger.Infof(ctx, "object %q is gone, nothing to process", in.ObjectKey)
		res.Success = true
		res.ProcessingTimeMs = time.Since(start).Milliseconds()
		return res, nil
	}
	if err != nil {
		return fail(res, start, err), err
	}
	// The transcoder pulls the source by URL itself; the fetch only proves
	// the object still exists.
	_ = original.Close()

	isVideo := classifier.IsVideo(in.ObjectKey)
	recipes := s.recipes.RecipesFor(in.Role)
	if isVideo {
		recipes = s.videoRecipes
	}
	if len(recipes) == 0 {
		res.Success = true
		res.ProcessingTimeMs = time.Since(start).Milliseconds()
		return res, nil
	}

	sourceURL, err := s.sourceURL(ctx, in.ObjectKey)
	if err != nil {
		err = fmt.Errorf("could not build source URL for %q: %w", in.ObjectKey, err)
		return fail(res, start, err), err
	}

	req := port.ResizeRequest{SourceURL: sourceURL, Recipes: recipes}
	var out *port.ResizeResult
	if isVideo {
		out, err = s.rpc.ResizeVideo(ctx, req)
	} else {
		out, err = s.rpc.ResizeImage(ctx, req)
	}
	if err != nil {
		err = fmt.Errorf("transcoding %q failed: %w", in.ObjectKey, err)
		return fail(res, start, err), err
	}

	for _, recipe := range recipes {
		payload, ok := out.Variants[recipe.Name]
		if !ok || len(payload.Data) == 0 {
			err = fmt.Errorf("transcoder returned no payload for variant %q of %q", recipe.Name, in.ObjectKey)
			return fail(res, start, err), err
		}

		destKey := destinationKey(in.ObjectKey, in.Role, recipe.Name, isVideo)
		opts := map[string]string{"Content-Type": contentTypeFor(payload, recipe.Name, isVideo)}
		if err := s.strg.SaveFile(ctx, destKey, bytes.NewReader(payload.Data), int64(len(payload.Data)), opts); err != nil {
			err = fmt.Errorf("failed to save variant %q: %w", destKey, err)
			return fail(res, start, err), err
		}
		res.VariantKeys = append(res.VariantKeys, destKey)
	}

	res.Success = true
	res.ProcessingTimeMs = time.Since(start).Milliseconds()
	return res, nil
}

func (s *generatorSrv) sourceURL(ctx context.Context, fileKey string) (string, error) {
	if s.publicBaseURL != "" {
		return url.JoinPath(s.publicBaseURL, fileKey)
	}
	return s.strg.GeneratePresignedDownloadURL(ctx, fileKey, presignedSourceExpiry)
}

// destinationKey computes where a variant lands. Avatars and covers have
// exactly one canonical stored location, so their single image variant
// overwrites the original in place. Everything else accumulates derived keys
// carrying a reserved infix, which keeps the loop guard effective.
func destinationKey(objectKey string, role model.MediaRole, variantName string, isVideo bool) string {
	if !isVideo && (role == model.RoleAvatar || role == model.RoleCover) {
		return objectKey
	}
	base := strings.TrimSuffix(objectKey, extOf(objectKey))
	if variantName == "preview" {
		return base + "." + variantName + ".mp4"
	}
	return base + "." + variantName + ".jpg"
}

func contentTypeFor(p port.VariantPayload, variantName string, isVideo bool) string {
	if p.ContentType != "" {
		return p.ContentType
	}
	if isVideo && variantName == "preview" {
		return "video/mp4"
	}
	return "image/jpeg"
}

func extOf(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 && i > strings.LastIndex(key, "/") {
		return key[i:]
	}
	return ""
}

func fail(res model.ProcessingResult, start time.Time, err error) model.ProcessingResult {
	res.Success = false
	res.Error = err.Error()
	res.ProcessingTimeMs = time.Since(start).Milliseconds()
	return res
}
