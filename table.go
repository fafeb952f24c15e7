package repr

import (
	"bytes"
	"reflect"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// TableComponent renders slices of structs, or of maps keyed by strings, as
// an aligned table with one row per element. It claims the slice types it
// was built for only; other shapes fall back to the generic formatter.
type TableComponent struct {
	types []reflect.Type
}

func NewTableComponent(types ...reflect.Type) *TableComponent {
	return &TableComponent{types: slices.Clone(types)}
}

func (c *TableComponent) ArraysOnly() bool      { return true }
func (c *TableComponent) Types() []reflect.Type { return c.types }

func (c *TableComponent) Render(s *State, v any) string {
	headers, rows, ok := tabulate(s, reflect.ValueOf(v))
	if !ok {
		return s.Fallback(v)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("   ")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetHeader(headers)
	table.AppendBulk(rows)
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// tabulate computes the header and the cells of the rows of list. All
// elements must be structs of one type, or maps with string keys.
func tabulate(s *State, list reflect.Value) ([]string, [][]string, bool) {
	items := make([]reflect.Value, 0, list.Len())
	for i := range list.Len() {
		item := list.Index(i)
		for item.Kind() == reflect.Interface || item.Kind() == reflect.Pointer {
			if item.IsNil() {
				return nil, nil, false
			}
			item = item.Elem()
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, nil, false
	}

	switch first := items[0].Type(); {
	case first.Kind() == reflect.Struct:
		return structRows(s, first, items)
	case first.Kind() == reflect.Map && first.Key().Kind() == reflect.String:
		return mapRows(s, items)
	}
	return nil, nil, false
}

func structRows(s *State, t reflect.Type, items []reflect.Value) ([]string, [][]string, bool) {
	fields := s.r.info(t).fields
	if len(fields) == 0 {
		return nil, nil, false
	}
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.name
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		if item.Type() != t {
			return nil, nil, false
		}
		item = addressable(item)
		row := make([]string, len(fields))
		for i, f := range fields {
			if fv, ok := fieldValue(item, f.index); ok {
				row[i] = cell(s, fv.Interface())
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, true
}

func mapRows(s *State, items []reflect.Value) ([]string, [][]string, bool) {
	var headers []string
	for _, item := range items {
		if item.Kind() != reflect.Map || item.Type().Key().Kind() != reflect.String {
			return nil, nil, false
		}
		for _, k := range item.MapKeys() {
			if !slices.Contains(headers, k.String()) {
				headers = append(headers, k.String())
			}
		}
	}
	slices.Sort(headers)

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(headers))
		for i, h := range headers {
			if val := item.MapIndex(reflect.ValueOf(h).Convert(item.Type().Key())); val.IsValid() {
				row[i] = cell(s, val.Interface())
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, true
}

func cell(s *State, v any) string {
	return s.truncate(strings.ReplaceAll(s.Render(v), "\n", " "))
}
