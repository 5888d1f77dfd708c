package animals

import (
	"math"
	"strings"
)

// PageSize es la cantidad fija de animales por página del catálogo.
const PageSize = 20

// Filter es la consulta del catálogo tal como llega desde la capa de validación.
// Campos vacíos (o Age nil) no restringen.
type Filter struct {
	Search string
	Breed  string
	Age    *int
	Size   string
	Gender string
	Page   int // 1-based; <1 se trata como 1
}

// Field identifica un atributo filtrable, independiente del motor de storage.
type Field string

const (
	FieldName   Field = "name"
	FieldBreed  Field = "breed"
	FieldAge    Field = "age"
	FieldSize   Field = "size"
	FieldGender Field = "gender"
)

type Op string

const (
	// OpEq compara igualdad exacta (los valores ya vienen normalizados).
	OpEq Op = "eq"
	// OpContainsFold busca el valor como substring sin distinguir mayúsculas.
	OpContainsFold Op = "contains_fold"
)

type Condition struct {
	Field Field
	Op    Op
	Value any // string o int
}

// Predicate describe un filtro: todas las condiciones de All y,
// si Any no está vacío, al menos una de Any.
type Predicate struct {
	All []Condition
	Any []Condition
}

// NewPredicate traduce un Filter al descriptor neutral que consumen los adapters.
func NewPredicate(f Filter) Predicate {
	var p Predicate

	if f.Search != "" {
		p.Any = append(p.Any,
			Condition{Field: FieldName, Op: OpContainsFold, Value: f.Search},
			Condition{Field: FieldBreed, Op: OpContainsFold, Value: f.Search},
		)
	}

	if v := normalize(f.Breed); v != "" {
		p.All = append(p.All, Condition{Field: FieldBreed, Op: OpEq, Value: v})
	}
	if f.Age != nil {
		p.All = append(p.All, Condition{Field: FieldAge, Op: OpEq, Value: *f.Age})
	}
	if v := normalize(f.Size); v != "" {
		p.All = append(p.All, Condition{Field: FieldSize, Op: OpEq, Value: v})
	}
	if v := normalize(f.Gender); v != "" {
		p.All = append(p.All, Condition{Field: FieldGender, Op: OpEq, Value: v})
	}

	return p
}

// IsEmpty indica si el predicado no restringe nada.
func (p Predicate) IsEmpty() bool {
	return len(p.All) == 0 && len(p.Any) == 0
}

// Matches evalúa el predicado contra un animal en memoria.
func (p Predicate) Matches(a Animal) bool {
	for _, c := range p.All {
		if !c.matches(a) {
			return false
		}
	}
	if len(p.Any) == 0 {
		return true
	}
	for _, c := range p.Any {
		if c.matches(a) {
			return true
		}
	}
	return false
}

func (c Condition) matches(a Animal) bool {
	if c.Field == FieldAge {
		n, ok := c.Value.(int)
		if !ok || a.Age == nil {
			return false
		}
		// solo igualdad para enteros
		return c.Op == OpEq && *a.Age == n
	}

	s, ok := c.Value.(string)
	if !ok {
		return false
	}
	got := fieldString(a, c.Field)

	switch c.Op {
	case OpEq:
		return got == s
	case OpContainsFold:
		return strings.Contains(strings.ToLower(got), strings.ToLower(s))
	default:
		return false
	}
}

func fieldString(a Animal, f Field) string {
	switch f {
	case FieldName:
		return a.Name
	case FieldBreed:
		return a.Breed
	case FieldSize:
		return string(a.Size)
	case FieldGender:
		return string(a.Gender)
	default:
		return ""
	}
}

// Query es lo que el servicio pide al Repository para una página.
type Query struct {
	Predicate Predicate
	Offset    int
	Limit     int
}

// PageQuery arma la Query de la página pedida (page <1 se normaliza a 1).
// Si el offset no entra en un int queda en math.MaxInt: la página sale vacía.
func PageQuery(p Predicate, page int) (Query, int) {
	if page < 1 {
		page = 1
	}
	offset := math.MaxInt
	if page-1 <= math.MaxInt/PageSize {
		offset = (page - 1) * PageSize
	}
	return Query{
		Predicate: p,
		Offset:    offset,
		Limit:     PageSize,
	}, page
}

// LastPage calcula ceil(total / PageSize).
func LastPage(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}
