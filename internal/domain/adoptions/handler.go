package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"animal-adoption/internal/platform/logger"
	"animal-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	log = log.With(logger.Fields{"module": "adoptions"})

	r.Post("/adopt/{animalID}", adoptHandler(svc, log))
}

// adoptRequest son los datos de contacto de quien quiere adoptar.
type adoptRequest struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,phone"`
	Message string `json:"message" validate:"required,notblank,min=10,max=500"`
}

// adoptionResponse representa la solicitud de adopción registrada.
type adoptionResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animalId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// adoptHandler godoc
// @Summary Solicitar adopción
// @Description Registra una solicitud de adopción para el animal indicado. Si el animal no existe no se crea nada.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body adoptRequest true "Datos de contacto"
// @Success 201 {object} adoptionResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "animal not found"
// @Router /adopt/{animalID} [post]
func adoptHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adoptRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			writeError(w, log, err)
			return
		}

		a, err := svc.Adopt(r.Context(), Submission{
			AnimalID: chi.URLParam(r, "animalID"),
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Message:  req.Message,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, adoptionResponse{
			ID:        a.ID,
			AnimalID:  a.AnimalID,
			Name:      a.Name,
			Email:     a.Email,
			Phone:     a.Phone,
			Message:   a.Message,
			CreatedAt: a.CreatedAt,
		})
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAnimalNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	default:
		log.Error("adoption request failed", logger.Fields{"error": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
