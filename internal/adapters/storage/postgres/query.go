package postgres

import (
	"fmt"
	"strings"

	"animal-adoption/internal/domain/animals"
)

var animalColumns = map[animals.Field]string{
	animals.FieldName:   "name",
	animals.FieldBreed:  "breed",
	animals.FieldAge:    "age",
	animals.FieldSize:   "size",
	animals.FieldGender: "gender",
}

// buildWhere traduce el predicado a una cláusula WHERE con placeholders desde $argN.
// Devuelve "" si el predicado no restringe nada.
func buildWhere(p animals.Predicate, argN int) (string, []any, error) {
	args := []any{}
	all := make([]string, 0, len(p.All)+1)

	for _, c := range p.All {
		sql, arg, err := conditionSQL(c, argN)
		if err != nil {
			return "", nil, err
		}
		all = append(all, sql)
		args = append(args, arg)
		argN++
	}

	if len(p.Any) > 0 {
		anyOf := make([]string, 0, len(p.Any))
		for _, c := range p.Any {
			sql, arg, err := conditionSQL(c, argN)
			if err != nil {
				return "", nil, err
			}
			anyOf = append(anyOf, sql)
			args = append(args, arg)
			argN++
		}
		all = append(all, "("+strings.Join(anyOf, " OR ")+")")
	}

	if len(all) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(all, " AND "), args, nil
}

func conditionSQL(c animals.Condition, argN int) (string, any, error) {
	col, ok := animalColumns[c.Field]
	if !ok {
		return "", nil, fmt.Errorf("unsupported field %q", c.Field)
	}

	switch c.Op {
	case animals.OpEq:
		return fmt.Sprintf("%s = $%d", col, argN), c.Value, nil
	case animals.OpContainsFold:
		s, ok := c.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("contains on non-text value for %q", c.Field)
		}
		return fmt.Sprintf("%s ILIKE $%d", col, argN), "%" + escapeLike(s) + "%", nil
	default:
		return "", nil, fmt.Errorf("unsupported op %q", c.Op)
	}
}

// escapeLike escapa los comodines de LIKE para que la búsqueda sea un substring literal.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
