package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
	"github.com/mmuslimabdulj/city-pulse/internal/usecase"
)

// defaultShapeCount is used when ?count= is absent
const defaultShapeCount = 10

type shapesResponse struct {
	Kind   domain.ShapeKind `json:"kind"`
	Count  int              `json:"count"`
	Shapes []domain.Shape   `json:"shapes"`
}

// HandleShapes returns generated descriptors: ?kind= (default dot),
// ?count= (default 10) and an optional ?seed= for reproducible output
func (h *Handler) HandleShapes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	kind := domain.ShapeDot
	if raw := q.Get("kind"); raw != "" {
		k, err := domain.ParseShapeKind(raw)
		if err != nil {
			h.writeError(w, err)
			return
		}
		kind = k
	}

	count := defaultShapeCount
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, fmt.Errorf("%w: count %q", usecase.ErrInvalidArgument, raw))
			return
		}
		count = n
	}
	if count > domain.MaxShapeCount {
		h.writeError(w, fmt.Errorf("%w: count above %d", usecase.ErrInvalidArgument, domain.MaxShapeCount))
		return
	}

	gen := h.shapes
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.writeError(w, fmt.Errorf("%w: seed %q", usecase.ErrInvalidArgument, raw))
			return
		}
		gen = usecase.NewSeededShapeGenerator(seed)
	}

	shapes, err := gen.Generate(count, kind)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if shapes == nil {
		shapes = []domain.Shape{}
	}
	h.writeJSON(w, http.StatusOK, shapesResponse{Kind: kind, Count: len(shapes), Shapes: shapes})
}

type validateRequest struct {
	Mode   string            `json:"mode"`
	Fields map[string]string `json:"fields"`
}

type validateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// HandleValidate runs the validator on a posted form without touching any
// session state
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		h.writeError(w, err)
		return
	}

	fields := domain.NewFormState()
	for name, value := range req.Fields {
		field, err := domain.ParseField(name)
		if err != nil {
			h.writeError(w, err)
			return
		}
		if fields, err = fields.With(field, value); err != nil {
			h.writeError(w, err)
			return
		}
	}

	errs := usecase.Validate(fields, mode)
	h.writeJSON(w, http.StatusOK, validateResponse{Valid: errs.Empty(), Errors: errs.Map()})
}
