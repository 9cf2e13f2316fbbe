// Package ranking implements bounded-output selection over discovery results.
package ranking

import (
	"sort"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
)

// SelectFunctions returns a new DiscoveryResult keeping only the maxFuncs
// highest-complexity functions, with configs and domain counts restricted to
// the surviving set. Ties break on qualified name so output is deterministic.
// If maxFuncs is <= 0 or >= the function count, the original is returned.
func SelectFunctions(res *model.DiscoveryResult, maxFuncs int) *model.DiscoveryResult {
	if maxFuncs <= 0 || maxFuncs >= len(res.Functions) {
		return res
	}

	names := make([]string, 0, len(res.Functions))
	for qn := range res.Functions {
		names = append(names, qn)
	}
	sort.Slice(names, func(i, j int) bool {
		si := res.Functions[names[i]].Complexity.Score()
		sj := res.Functions[names[j]].Complexity.Score()
		if si != sj {
			return si > sj
		}
		return names[i] < names[j]
	})
	names = names[:maxFuncs]

	functions := make(map[string]model.FunctionRecord, maxFuncs)
	counts := make(map[model.Domain]int)
	for _, qn := range names {
		fn := res.Functions[qn]
		functions[qn] = fn
		counts[fn.Domain]++
	}

	var configs map[string]model.AdaptationConfig
	if res.Configs != nil {
		configs = make(map[string]model.AdaptationConfig, maxFuncs)
		for _, qn := range names {
			if cfg, ok := res.Configs[qn]; ok {
				configs[qn] = cfg
			}
		}
	}

	out := *res
	out.Functions = functions
	out.Configs = configs
	out.DomainCounts = counts
	return &out
}
