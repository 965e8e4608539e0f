package ast

import "reflect"

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f for every node; if f returns false the children of that node are
// skipped. Nil children are not visited.
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) {
		return
	}

	if !f(node) {
		return
	}

	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// Children returns the direct child nodes of node in field order.
func Children(node Node) []Node {
	v := reflect.ValueOf(node)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil
	}

	var out []Node

	for i := range v.NumField() {
		if !v.Type().Field(i).IsExported() {
			continue
		}

		out = collect(v.Field(i), out)
	}

	return out
}

func collect(v reflect.Value, out []Node) []Node {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return out
		}

		if n, ok := v.Interface().(Node); ok {
			return append(out, n)
		}
	case reflect.Slice:
		for i := range v.Len() {
			out = collect(v.Index(i), out)
		}
	}

	return out
}

func isNil(node Node) bool {
	if node == nil {
		return true
	}

	v := reflect.ValueOf(node)

	return v.Kind() == reflect.Pointer && v.IsNil()
}
