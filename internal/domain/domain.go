// Package domain classifies discovered functions into heuristic categories
// and produces per-function adaptation configurations.
package domain

import (
	"strings"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
)

// keywordSets holds the category keyword heuristics in precedence order.
// Order matters: "load_model" is ml, not file_ops, because ml is evaluated
// first.
var keywordSets = []struct {
	domain   model.Domain
	keywords []string
}{
	{model.ML, []string{"train", "model", "predict", "accuracy", "dataset", "feature"}},
	{model.DataProcessing, []string{"process", "transform", "filter", "clean", "parse", "data"}},
	{model.API, []string{"api", "request", "response", "http", "url", "endpoint"}},
	{model.FileOps, []string{"file", "read", "write", "save", "load", "path"}},
}

// Classify assigns a domain tag from the function name and docstring,
// first-match-wins in fixed precedence order. Functions matching no category
// default to business_logic.
func Classify(name, docstring string) model.Domain {
	combined := strings.ToLower(name) + " " + strings.ToLower(docstring)
	for _, set := range keywordSets {
		for _, kw := range set.keywords {
			if strings.Contains(combined, kw) {
				return set.domain
			}
		}
	}
	return model.BusinessLogic
}
