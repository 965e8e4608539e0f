package format

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rlch/cypherparse/ast"
)

// Dump returns an indented outline of the tree rooted at node. Each line
// holds a node's type, its span and its non-zero scalar fields; children
// follow one level deeper.
func Dump(node ast.Node) string {
	var b strings.Builder

	dump(&b, node, 0)

	return b.String()
}

func dump(b *strings.Builder, node ast.Node, depth int) {
	v := reflect.ValueOf(node)
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return
	}

	span := node.Span()
	fmt.Fprintf(b, "%s%s %d:%d-%d:%d", strings.Repeat("  ", depth), typeName(v),
		span.Start.Line, span.Start.Column, span.End.Line, span.End.Column)

	for _, field := range scalarFields(v) {
		b.WriteString(" ")
		b.WriteString(field)
	}

	b.WriteString("\n")

	for _, child := range ast.Children(node) {
		dump(b, child, depth+1)
	}
}

func typeName(v reflect.Value) string {
	t := v.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}

// scalarFields formats the exported non-node fields of v that hold a
// non-zero value, as name=value.
func scalarFields(v reflect.Value) []string {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil
	}

	var out []string

	t := v.Type()
	for i := range v.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}

		fv := v.Field(i)
		if fv.IsZero() {
			continue
		}

		if s, ok := scalar(fv); ok {
			out = append(out, f.Name+"="+s)
		}
	}

	return out
}

func scalar(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return fmt.Sprintf("%q", v.String()), true
	case reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
		return fmt.Sprint(v.Interface()), true
	case reflect.Pointer:
		if v.Elem().Kind() == reflect.Int64 || v.Elem().Kind() == reflect.Bool {
			return fmt.Sprint(v.Elem().Interface()), true
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.String {
			return fmt.Sprintf("%q", v.Interface()), true
		}
	}

	return "", false
}
