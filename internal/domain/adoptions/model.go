package adoptions

import "time"

// Adoption es una solicitud de interés ligada a un animal por su ID.
// Solo se crea desde Service.Adopt; nunca se actualiza ni se borra.
type Adoption struct {
	ID       string
	AnimalID string

	Name    string
	Email   string
	Phone   string
	Message string

	CreatedAt time.Time
}

// Submission son los datos de contacto ya validados por la capa HTTP.
type Submission struct {
	AnimalID string
	Name     string
	Email    string
	Phone    string
	Message  string
}
