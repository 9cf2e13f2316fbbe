// Package toon implements TOON (Token-Oriented Object Notation) encoding of
// discovery results.
package toon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
)

// Encode converts a DiscoveryResult into TOON format.
func Encode(res *model.DiscoveryResult) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("root: %s", encodeValue(res.Root)))
	parts = append(parts, fmt.Sprintf("success: %t", res.Success))
	parts = append(parts, fmt.Sprintf("files: %d/%d", res.Stats.FilesAfterFiltering, res.Stats.TotalFilesFound))
	parts = append(parts, fmt.Sprintf("functions: %d", res.Stats.FunctionsDiscovered))
	if res.Stats.FilesWithErrors > 0 {
		parts = append(parts, fmt.Sprintf("file_errors: %d", res.Stats.FilesWithErrors))
	}

	names := sortedNames(res.Functions)

	var funcRows [][]string
	for _, qn := range names {
		fn := res.Functions[qn]
		funcRows = append(funcRows, []string{
			qn,
			string(fn.Domain),
			fmt.Sprintf("%t", fn.IsAsync),
			strings.Join(fn.ParameterNames, " "),
			fmt.Sprintf("%d", fn.Complexity.Score()),
			fmt.Sprintf("%d", fn.StartLine),
			fmt.Sprintf("%d", fn.EndLine),
		})
	}
	parts = append(parts, formatTabular("functions",
		[]string{"qualified_name", "domain", "async", "params", "complexity", "start", "end"}, funcRows))

	var domainRows [][]string
	for _, d := range model.Domains {
		if count := res.DomainCounts[d]; count > 0 {
			domainRows = append(domainRows, []string{string(d), fmt.Sprintf("%d", count)})
		}
	}
	parts = append(parts, formatTabular("domains", []string{"domain", "count"}, domainRows))

	var configRows [][]string
	for _, qn := range names {
		cfg, ok := res.Configs[qn]
		if !ok {
			continue
		}
		configRows = append(configRows, []string{qn, cfg.ResultKey, joinMapping(cfg.ParamMapping)})
	}
	parts = append(parts, formatTabular("configs", []string{"function", "result_key", "param_mapping"}, configRows))

	if len(res.Errors) > 0 {
		var errRows [][]string
		for i := range res.Errors {
			e := &res.Errors[i]
			errRows = append(errRows, []string{string(e.Kind), e.Path, e.Message})
		}
		parts = append(parts, formatTabular("errors", []string{"kind", "path", "message"}, errRows))
	}

	return strings.Join(parts, "\n")
}

func sortedNames(functions map[string]model.FunctionRecord) []string {
	names := make([]string, 0, len(functions))
	for qn := range functions {
		names = append(names, qn)
	}
	sort.Strings(names)
	return names
}

func joinMapping(mapping map[string]string) string {
	if len(mapping) == 0 {
		return ""
	}
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + mapping[k]
	}
	return strings.Join(pairs, " ")
}

func formatTabular(name string, columns []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d]{%s}:", name, len(rows), strings.Join(columns, ","))
	for _, row := range rows {
		encoded := make([]string, len(row))
		for i, cell := range row {
			encoded[i] = encodeValue(cell)
		}
		fmt.Fprintf(&b, "\n  %s", strings.Join(encoded, ","))
	}
	return b.String()
}
