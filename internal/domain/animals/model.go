package animals

import (
	"strings"
	"time"
)

// Gender define el género del animal.
// @Enum male, female, other
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Size define el tamaño del animal.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Animal es un registro del catálogo de adopción.
// Gender, Size y Breed se guardan siempre en minúsculas.
type Animal struct {
	ID string

	Name   string
	Age    *int
	Gender Gender
	Size   Size
	Breed  string

	IsVaccinated bool
	IsNeutered   bool

	Traits   []string
	PhotoURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// normalize aplica la regla de minúsculas para los campos filtrables por igualdad.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
