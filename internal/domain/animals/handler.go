package animals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"animal-adoption/internal/platform/logger"
	"animal-adoption/internal/platform/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	log = log.With(logger.Fields{"module": "animals"})

	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", findAllHandler(svc, log))
		ar.Post("/", createAnimalHandler(svc, log))

		// antes de /{animalID} para que no se interprete como id
		ar.Get("/filters", filterOptionsHandler(svc, log))
		ar.Post("/seed", seedHandler(svc, log))

		ar.Get("/{animalID}", getAnimalHandler(svc, log))
		ar.Put("/{animalID}", updateAnimalHandler(svc, log))
		ar.Patch("/{animalID}", updateAnimalHandler(svc, log))
		ar.Delete("/{animalID}", deleteAnimalHandler(svc, log))
	})
}

// createAnimalRequest es el cuerpo para registrar un animal en el catálogo.
type createAnimalRequest struct {
	Name         string   `json:"name" validate:"required,notblank"`
	Age          *int     `json:"age" validate:"omitempty,min=0"`
	Gender       string   `json:"gender" validate:"required,oneofci=male female other" enums:"male,female,other"`
	IsVaccinated bool     `json:"isVaccinated"`
	IsNeutered   bool     `json:"isNeutered"`
	Size         string   `json:"size" validate:"required,oneofci=small medium large" enums:"small,medium,large"`
	Breed        string   `json:"breed" validate:"required,notblank"`
	Traits       []string `json:"traits"`
	PhotoURL     string   `json:"photoUrl" validate:"omitempty,photourl"`
}

// updateAnimalRequest: punteros, nil = no tocar.
type updateAnimalRequest struct {
	Name         *string   `json:"name" validate:"omitempty,notblank"`
	Age          *int      `json:"age" validate:"omitempty,min=0"`
	Gender       *string   `json:"gender" validate:"omitempty,oneofci=male female other"`
	IsVaccinated *bool     `json:"isVaccinated"`
	IsNeutered   *bool     `json:"isNeutered"`
	Size         *string   `json:"size" validate:"omitempty,oneofci=small medium large"`
	Breed        *string   `json:"breed" validate:"omitempty,notblank"`
	Traits       *[]string `json:"traits"`
	PhotoURL     *string   `json:"photoUrl" validate:"omitempty,photourl"`
}

// findAllQuery son los query params del listado, ya convertidos a tipos.
type findAllQuery struct {
	Search string `json:"search"`
	Breed  string `json:"breed"`
	Age    *int   `json:"age"`
	Size   string `json:"size"`
	Gender string `json:"gender"`
	Page   int    `json:"page" validate:"min=1"`
}

// animalResponse representa un animal del catálogo devuelto por la API.
type animalResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Age          *int      `json:"age,omitempty"`
	Gender       Gender    `json:"gender"`
	IsVaccinated bool      `json:"isVaccinated"`
	IsNeutered   bool      `json:"isNeutered"`
	Size         Size      `json:"size"`
	Breed        string    `json:"breed"`
	Traits       []string  `json:"traits"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// pageResponse es una página del catálogo.
type pageResponse struct {
	Data     []animalResponse `json:"data"`
	Page     int              `json:"page"`
	LastPage int              `json:"lastPage"`
	Total    int              `json:"total"`
}

// filterOptionsResponse son las opciones de filtro disponibles.
type filterOptionsResponse struct {
	Breeds []string `json:"breeds"`
}

// findAllHandler godoc
// @Summary Listar animales
// @Description Lista paginada (20 por página) del catálogo. `search` busca sin distinguir mayúsculas en nombre o raza; breed, size y gender filtran por igualdad sin distinguir mayúsculas. `lastPage` se calcula sobre el total filtrado.
// @Tags animals
// @Produce json
// @Param search query string false "Texto a buscar en nombre o raza"
// @Param breed query string false "Raza"
// @Param age query int false "Edad exacta"
// @Param size query string false "Tamaño" Enums(small, medium, large)
// @Param gender query string false "Género" Enums(male, female, other)
// @Param page query int false "Página (desde 1)" default(1)
// @Success 200 {object} pageResponse
// @Failure 400 {string} string "parámetros inválidos"
// @Router /animals [get]
func findAllHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseFindAllQuery(r)
		if err != nil {
			writeError(w, log, err)
			return
		}

		res, err := svc.FindAll(r.Context(), Filter{
			Search: q.Search,
			Breed:  q.Breed,
			Age:    q.Age,
			Size:   q.Size,
			Gender: q.Gender,
			Page:   q.Page,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}

		out := make([]animalResponse, 0, len(res.Items))
		for _, a := range res.Items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, pageResponse{
			Data:     out,
			Page:     res.Page,
			LastPage: res.LastPage,
			Total:    res.Total,
		})
	}
}

// filterOptionsHandler godoc
// @Summary Opciones de filtro
// @Description Razas distintas presentes en el catálogo (sin orden garantizado).
// @Tags animals
// @Produce json
// @Success 200 {object} filterOptionsResponse
// @Router /animals/filters [get]
func filterOptionsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := svc.GetFilterOptions(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, filterOptionsResponse{Breeds: opts.Breeds})
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.FindOne(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// createAnimalHandler godoc
// @Summary Crear animal
// @Description Breed, size y gender se guardan en minúsculas.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / validación"
// @Router /animals [post]
func createAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			writeError(w, log, err)
			return
		}

		a, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar animal
// @Description Actualización parcial: solo cambian los campos enviados. Acepta PUT y PATCH.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a actualizar"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [patch]
func updateAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validation.Struct(req); err != nil {
			writeError(w, log, err)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
			Name:         req.Name,
			Age:          req.Age,
			Gender:       req.Gender,
			Size:         req.Size,
			Breed:        req.Breed,
			IsVaccinated: req.IsVaccinated,
			IsNeutered:   req.IsNeutered,
			Traits:       req.Traits,
			PhotoURL:     req.PhotoURL,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// deleteAnimalHandler godoc
// @Summary Borrar animal
// @Description Devuelve el animal borrado. Las adopciones que lo referencian no se tocan.
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [delete]
func deleteAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Delete(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// seedHandler godoc
// @Summary Reemplazar catálogo
// @Description Borra todos los animales e inserta la lista enviada. Solo habilitado con APP_ENV=development o test.
// @Tags animals
// @Accept json
// @Param payload body []createAnimalRequest true "Catálogo completo"
// @Success 204
// @Failure 400 {string} string "invalid json / validación"
// @Failure 403 {string} string "seed is disabled in this environment"
// @Router /animals/seed [post]
func seedHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// fuera de development/test se rechaza sin mirar el body
		if !svc.SeedEnabled() {
			writeError(w, log, ErrSeedDisabled)
			return
		}

		var req []createAnimalRequest
		if err := decodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		items := make([]CreateInput, 0, len(req))
		for i, item := range req {
			if err := validation.Struct(item); err != nil {
				var verr *validation.Error
				if errors.As(err, &verr) {
					for j := range verr.Fields {
						verr.Fields[j].Field = fmt.Sprintf("[%d].%s", i, verr.Fields[j].Field)
					}
				}
				writeError(w, log, err)
				return
			}
			items = append(items, item.toInput())
		}

		if err := svc.Seed(r.Context(), items); err != nil {
			writeError(w, log, err)
			return
		}

		log.Warn("catalog replaced by seed", logger.Fields{"count": len(items)})
		w.WriteHeader(http.StatusNoContent)
	}
}

func (req createAnimalRequest) toInput() CreateInput {
	return CreateInput{
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		Size:         req.Size,
		Breed:        req.Breed,
		IsVaccinated: req.IsVaccinated,
		IsNeutered:   req.IsNeutered,
		Traits:       req.Traits,
		PhotoURL:     req.PhotoURL,
	}
}

func parseFindAllQuery(r *http.Request) (findAllQuery, error) {
	v := r.URL.Query()
	q := findAllQuery{
		Search: v.Get("search"),
		Breed:  strings.TrimSpace(v.Get("breed")),
		Size:   strings.TrimSpace(v.Get("size")),
		Gender: strings.TrimSpace(v.Get("gender")),
		Page:   1,
	}

	var fields []validation.FieldError
	if s := strings.TrimSpace(v.Get("age")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fields = append(fields, validation.FieldError{Field: "age", Message: "must be an integer"})
		} else {
			q.Age = &n
		}
	}
	if s := strings.TrimSpace(v.Get("page")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			fields = append(fields, validation.FieldError{Field: "page", Message: "must be an integer"})
		} else {
			q.Page = n
		}
	}
	if len(fields) > 0 {
		return findAllQuery{}, &validation.Error{Fields: fields}
	}

	if err := validation.Struct(q); err != nil {
		return findAllQuery{}, err
	}
	return q, nil
}

func toAnimalResponse(a Animal) animalResponse {
	traits := a.Traits
	if traits == nil {
		traits = []string{}
	}
	return animalResponse{
		ID:           a.ID,
		Name:         a.Name,
		Age:          a.Age,
		Gender:       a.Gender,
		IsVaccinated: a.IsVaccinated,
		IsNeutered:   a.IsNeutered,
		Size:         a.Size,
		Breed:        a.Breed,
		Traits:       traits,
		PhotoURL:     a.PhotoURL,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
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
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrSeedDisabled):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		log.Error("animals request failed", logger.Fields{"error": err})
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
