package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// Statement is one rendered query with its bind arguments.
type Statement struct {
	SQL  string
	Args []any
}

// InsertModels renders multi-row inserts for models, split so that no
// statement exceeds MaxBindParams. Every model must share the same columns.
func InsertModels[T any](table string, models []T, suffix string) ([]Statement, error) {
	if len(models) == 0 {
		return nil, nil
	}

	cols, _, err := columnsAndValuesFromModel(models[0])
	if err != nil {
		return nil, err
	}
	chunk := ChunkSize(len(cols))

	out := make([]Statement, 0, (len(models)+chunk-1)/chunk)
	for start := 0; start < len(models); start += chunk {
		end := min(start+chunk, len(models))

		builder := InsertInto(table).Columns(cols...).Suffix(suffix)
		for i := start; i < end; i++ {
			_, vals, err := columnsAndValuesFromModel(models[i])
			if err != nil {
				return nil, fmt.Errorf("model %d: %w", i, err)
			}
			builder.Values(vals...)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return nil, err
		}
		out = append(out, Statement{SQL: query, Args: args})
	}
	return out, nil
}

// ModelColumns lists the db columns a model contributes, in insert order.
func ModelColumns(model any) ([]string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	return cols, err
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	cols := make([]string, 0, value.NumField())
	vals := make([]any, 0, value.NumField())
	collectColumns(value, &cols, &vals)

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

// collectColumns walks exported db-tagged fields, flattening untagged
// embedded structs into the parent row.
func collectColumns(value reflect.Value, cols *[]string, vals *[]any) {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := strings.TrimSpace(field.Tag.Get("db"))

		if field.Anonymous && field.IsExported() && tag == "" {
			embedded := value.Field(i)
			if embedded.Kind() == reflect.Pointer {
				if embedded.IsNil() {
					continue
				}
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectColumns(embedded, cols, vals)
				continue
			}
		}

		if !field.IsExported() {
			continue
		}
		if tag == "" || tag == "-" {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		*cols = append(*cols, col)
		*vals = append(*vals, value.Field(i).Interface())
	}
}
