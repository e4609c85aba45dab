package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/fvidal/derivatives-ms-go/internal/classifier"
	"github.com/fvidal/derivatives-ms-go/internal/job_context"
	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
	"github.com/fvidal/derivatives-ms-go/internal/validation"
)

type processRequest struct {
	Key string `json:"key" validate:"required"`
}

// ProcessMediaHandler runs classification and derivative generation for a
// single key, synchronously, outside the queue path. Manual backfill and
// debugging only; the steady-state pipeline never calls this.
func ProcessMediaHandler(svc port.DerivativeProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid JSON body", err)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			errsJson, errJson := validation.ErrorsToJson(err)
			if errJson != nil {
				WriteError(w, http.StatusInternalServerError, "Could not serialise validation errors", errJson)
				return
			}
			WriteError(w, http.StatusBadRequest, errsJson, nil)
			return
		}

		if classifier.IsDerivative(req.Key) {
			WriteError(w, http.StatusUnprocessableEntity, "Key is a derivative and will not be reprocessed", nil)
			return
		}
		if !classifier.IsMedia(req.Key) {
			WriteError(w, http.StatusUnprocessableEntity, "Key is not a media file", nil)
			return
		}
		role := classifier.RoleOf(req.Key)
		if role == model.RoleNone {
			WriteError(w, http.StatusUnprocessableEntity, "No media role matches this key", nil)
			return
		}

		ctx := job_context.WithObjectKey(r.Context(), req.Key)
		res, err := svc.Process(ctx, port.ProcessInput{ObjectKey: req.Key, Role: role})
		if err != nil {
			log.Printf("❌  Manual processing of %q failed: %v", req.Key, err)
			RespondJSON(w, http.StatusBadGateway, res)
			return
		}

		log.Printf("✅  Manually processed %q: %d variants", req.Key, len(res.VariantKeys))
		RespondJSON(w, http.StatusOK, res)
	}
}
