package aionxml

import (
	"encoding/xml"
	"github.com/casbin/govaluate"
	"github.com/pkg/errors"
	"strings"
)

var exprFunctions = map[string]govaluate.ExpressionFunction{
	"not": func(arguments ...interface{}) (interface{}, error) {
		if len(arguments) != 1 {
			return nil, errors.New("not expects one argument")
		}
		value, ok := arguments[0].(bool)
		if !ok {
			return nil, errors.Errorf("not expects a bool, got %T", arguments[0])
		}
		return !value, nil
	},
	"len": func(arguments ...interface{}) (interface{}, error) {
		if len(arguments) != 1 {
			return nil, errors.New("len expects one argument")
		}
		value, ok := arguments[0].(string)
		if !ok {
			return nil, errors.Errorf("len expects a string, got %T", arguments[0])
		}
		return float64(len(value)), nil
	},
	"contains": func(arguments ...interface{}) (interface{}, error) {
		if len(arguments) != 2 {
			return nil, errors.New("contains expects two arguments")
		}
		value, ok := arguments[0].(string)
		sub, subOk := arguments[1].(string)
		if !ok || !subOk {
			return nil, errors.New("contains expects strings")
		}
		return strings.Contains(value, sub), nil
	},
}

func CompileExpression(value string) (*govaluate.EvaluableExpression, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(value, exprFunctions)
	if err != nil {
		return nil, errors.Wrapf(err, "compile %q", value)
	}
	return expr, nil
}

func Eval[T any](expr *govaluate.EvaluableExpression, params govaluate.Parameters) (T, error) {
	var zero T
	response, err := expr.Eval(params)
	if err != nil {
		return zero, errors.WithStack(err)
	}
	value, ok := response.(T)
	if !ok {
		return zero, errors.Errorf("expression %q returned %T, want %T", expr.String(), response, zero)
	}
	return value, nil
}

// entryParameters exposes an IndexEntry to expressions. Reserved names are tag, text,
// parent, parent_text and children; every other name resolves to an attribute of the
// entry, or "" when the attribute is missing.
type entryParameters struct {
	entry *IndexEntry
}

func (p entryParameters) Get(name string) (interface{}, error) {
	switch name {
	case "tag":
		return p.entry.Tag, nil
	case "text":
		return p.entry.Text, nil
	case "parent":
		return p.entry.Parent.Tag, nil
	case "parent_text":
		return p.entry.Parent.Text, nil
	case "children":
		return float64(len(p.entry.ChildrenTags)), nil
	}
	return p.entry.Attrs[name], nil
}

func attrsToXML(input Attrs) []xml.Attr {
	attrs := make([]xml.Attr, 0, len(input))
	for _, k := range input.Keys() {
		attrs = append(attrs, xml.Attr{
			Name:  xml.Name{Local: k},
			Value: input[k],
		})
	}
	return attrs
}
