package teksel

import (
	"encoding/json"
	"fmt"

	"github.com/jmespath-community/go-jmespath"
)

// Query applies a JMESPath expression to the JSON form of v, for example
// "cells[1][1].value.value" on a Result. An empty expression returns the JSON form
// of v unchanged.
func Query(v any, expression string) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if expression == "" {
		return doc, nil
	}
	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expression, err)
	}
	return compiled.Search(doc)
}
