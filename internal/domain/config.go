package domain

import (
	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
)

// templates maps each domain to its parameter renames and result key. Every
// config starts from the base flags (validation, tracing, metrics all on).
var templates = map[model.Domain]struct {
	mapping   map[string]string
	resultKey string
}{
	model.ML: {
		mapping: map[string]string{
			"data":     "training_data",
			"model":    "ml_model",
			"X":        "features",
			"y":        "target",
			"features": "input_features",
		},
		resultKey: "ml_result",
	},
	model.DataProcessing: {
		mapping: map[string]string{
			"data":  "input_data",
			"df":    "dataframe",
			"items": "input_items",
		},
		resultKey: "processed_data",
	},
	model.API: {
		mapping: map[string]string{
			"url":      "api_endpoint",
			"endpoint": "api_endpoint",
			"data":     "request_data",
		},
		resultKey: "api_response",
	},
	model.FileOps: {
		mapping: map[string]string{
			"path":     "file_path",
			"filename": "file_path",
			"data":     "file_data",
		},
		resultKey: "file_result",
	},
	model.BusinessLogic: {
		mapping:   map[string]string{},
		resultKey: "result",
	},
}

// ConfigFor returns the adaptation configuration template for a domain.
// Unknown domains fall back to the business_logic template.
func ConfigFor(d model.Domain) model.AdaptationConfig {
	tpl, ok := templates[d]
	if !ok {
		tpl = templates[model.BusinessLogic]
	}
	mapping := make(map[string]string, len(tpl.mapping))
	for k, v := range tpl.mapping {
		mapping[k] = v
	}
	return model.AdaptationConfig{
		EnableValidation: true,
		EnableTracing:    true,
		EnableMetrics:    true,
		ParamMapping:     mapping,
		ResultKey:        tpl.resultKey,
	}
}

// MapConfigs groups the discovered functions by domain and produces one
// adaptation configuration per function. A missing or empty function map is
// reported as a structured error rather than raised.
func MapConfigs(functions map[string]model.FunctionRecord) (map[string]model.AdaptationConfig, map[model.Domain]int, *model.Error) {
	if len(functions) == 0 {
		return nil, nil, &model.Error{
			Kind:    model.MissingInput,
			Message: "no discovered functions to map",
		}
	}

	configs := make(map[string]model.AdaptationConfig, len(functions))
	counts := make(map[model.Domain]int)

	for qualifiedName, fn := range functions {
		configs[qualifiedName] = ConfigFor(fn.Domain)
		counts[fn.Domain]++
	}

	return configs, counts, nil
}
