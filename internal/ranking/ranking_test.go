package ranking

import (
	"testing"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
)

func makeResult() *model.DiscoveryResult {
	return &model.DiscoveryResult{
		Root: "/repo",
		Functions: map[string]model.FunctionRecord{
			"a.heavy":  {Name: "heavy", Domain: model.ML, Complexity: model.Complexity{FunctionCalls: 9}},
			"a.medium": {Name: "medium", Domain: model.ML, Complexity: model.Complexity{FunctionCalls: 5}},
			"b.light":  {Name: "light", Domain: model.FileOps, Complexity: model.Complexity{FunctionCalls: 1}},
		},
		Configs: map[string]model.AdaptationConfig{
			"a.heavy":  {ResultKey: "ml_result"},
			"a.medium": {ResultKey: "ml_result"},
			"b.light":  {ResultKey: "file_result"},
		},
		DomainCounts: map[model.Domain]int{model.ML: 2, model.FileOps: 1},
		Success:      true,
	}
}

func TestSelectFunctionsAll(t *testing.T) {
	t.Parallel()

	res := makeResult()
	if got := SelectFunctions(res, 0); got != res {
		t.Error("maxFuncs=0 should return original")
	}
	if got := SelectFunctions(res, 3); got != res {
		t.Error("maxFuncs == len should return original")
	}
	if got := SelectFunctions(res, 10); got != res {
		t.Error("maxFuncs > len should return original")
	}
}

func TestSelectFunctionsSubset(t *testing.T) {
	t.Parallel()

	res := makeResult()
	got := SelectFunctions(res, 2)

	if len(got.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(got.Functions))
	}
	if _, ok := got.Functions["a.heavy"]; !ok {
		t.Error("a.heavy should survive")
	}
	if _, ok := got.Functions["a.medium"]; !ok {
		t.Error("a.medium should survive")
	}
	if _, ok := got.Functions["b.light"]; ok {
		t.Error("b.light should be dropped")
	}

	if len(got.Configs) != 2 {
		t.Errorf("configs not restricted: %v", got.Configs)
	}
	if got.DomainCounts[model.ML] != 2 || got.DomainCounts[model.FileOps] != 0 {
		t.Errorf("domain counts not recomputed: %v", got.DomainCounts)
	}

	// Original untouched.
	if len(res.Functions) != 3 {
		t.Error("original result mutated")
	}
}

func TestSelectFunctionsTieBreak(t *testing.T) {
	t.Parallel()

	res := &model.DiscoveryResult{
		Functions: map[string]model.FunctionRecord{
			"z.f": {Complexity: model.Complexity{Returns: 1}},
			"a.f": {Complexity: model.Complexity{Returns: 1}},
			"m.f": {Complexity: model.Complexity{Returns: 1}},
		},
	}

	got := SelectFunctions(res, 2)
	if _, ok := got.Functions["a.f"]; !ok {
		t.Error("tie should break toward lexicographically smaller names")
	}
	if _, ok := got.Functions["m.f"]; !ok {
		t.Error("m.f should survive")
	}
	if _, ok := got.Functions["z.f"]; ok {
		t.Error("z.f should be dropped")
	}
}
