// Package model defines core data structures for the discovery pipeline.
package model

// Domain is a heuristic category assigned to a discovered function. It
// selects the adaptation configuration template used downstream.
type Domain string

const (
	ML             Domain = "ml"
	DataProcessing Domain = "data_processing"
	API            Domain = "api"
	FileOps        Domain = "file_ops"
	BusinessLogic  Domain = "business_logic"
)

// Domains lists all domain tags in classification precedence order.
var Domains = []Domain{ML, DataProcessing, API, FileOps, BusinessLogic}

// ErrorKind identifies a class of pipeline failure.
type ErrorKind string

const (
	InvalidPath  ErrorKind = "invalid_path"
	ParseError   ErrorKind = "parse_error"
	MissingInput ErrorKind = "missing_input"
)

// Error is a structured pipeline error. File-level errors (parse failures)
// are recorded and do not abort the run; stage-level errors (invalid root,
// missing input) mark the whole run as failed.
type Error struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Path    string    `json:"path,omitempty" yaml:"path,omitempty"`
	Message string    `json:"message" yaml:"message"`
}

func (e *Error) Error() string {
	if e.Path != "" {
		return string(e.Kind) + ": " + e.Path + ": " + e.Message
	}
	return string(e.Kind) + ": " + e.Message
}

// SourceFile is a candidate file produced by the scanner.
type SourceFile struct {
	Path    string // absolute
	RelPath string // relative to the scan root
}

// Complexity is a flat census of structural constructs in a function body.
// It is a rough fingerprint, not nested or weighted cyclomatic complexity.
type Complexity struct {
	Conditions    int `json:"conditions" yaml:"conditions"`
	Loops         int `json:"loops" yaml:"loops"`
	TryExcept     int `json:"try_except" yaml:"try_except"`
	FunctionCalls int `json:"function_calls" yaml:"function_calls"`
	Returns       int `json:"returns" yaml:"returns"`
}

// Score sums the counters into a single comparable value.
func (c Complexity) Score() int {
	return c.Conditions + c.Loops + c.TryExcept + c.FunctionCalls + c.Returns
}

// FunctionRecord describes one discovered function definition.
type FunctionRecord struct {
	Name           string            `json:"name" yaml:"name"`
	QualifiedName  string            `json:"qualified_name" yaml:"qualified_name"`
	ModulePath     string            `json:"module_path" yaml:"module_path"`
	FilePath       string            `json:"file_path" yaml:"file_path"`
	IsAsync        bool              `json:"is_async" yaml:"is_async"`
	ParameterNames []string          `json:"args" yaml:"args"`
	DefaultCount   int               `json:"defaults" yaml:"defaults"`
	Docstring      string            `json:"docstring" yaml:"docstring"`
	ReturnType     string            `json:"returns,omitempty" yaml:"returns,omitempty"`
	TypeHints      map[string]string `json:"type_hints,omitempty" yaml:"type_hints,omitempty"`
	Complexity     Complexity        `json:"complexity" yaml:"complexity"`
	Domain         Domain            `json:"domain" yaml:"domain"`
	Dependencies   []string          `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	StartLine      int               `json:"start_line" yaml:"start_line"`
	EndLine        int               `json:"end_line" yaml:"end_line"`
}

// AdaptationConfig is the per-function configuration record handed to the
// downstream adaptation step. ParamMapping renames generic parameter names
// to domain-specific semantic names.
type AdaptationConfig struct {
	EnableValidation bool              `json:"enable_validation" yaml:"enable_validation"`
	EnableTracing    bool              `json:"enable_tracing" yaml:"enable_tracing"`
	EnableMetrics    bool              `json:"enable_metrics" yaml:"enable_metrics"`
	ParamMapping     map[string]string `json:"user_mapping" yaml:"user_mapping"`
	ResultKey        string            `json:"result_key" yaml:"result_key"`
}

// Stats aggregates scan and extraction statistics for one discovery run.
type Stats struct {
	TotalFilesFound     int     `json:"total_files_found" yaml:"total_files_found"`
	FilesAfterFiltering int     `json:"files_after_filtering" yaml:"files_after_filtering"`
	FilteredOut         int     `json:"filtered_out" yaml:"filtered_out"`
	SkippedEntries      int     `json:"skipped_entries" yaml:"skipped_entries"`
	OversizeFiles       int     `json:"oversize_files" yaml:"oversize_files"`
	FilesProcessed      int     `json:"files_processed" yaml:"files_processed"`
	FilesWithErrors     int     `json:"files_with_errors" yaml:"files_with_errors"`
	FunctionsDiscovered int     `json:"functions_discovered" yaml:"functions_discovered"`
	FunctionsPerFile    float64 `json:"functions_per_file_avg" yaml:"functions_per_file_avg"`
	NameCollisions      int     `json:"name_collisions" yaml:"name_collisions"`
}

// DiscoveryResult is the aggregate output of one discovery run. It is
// immutable after the pipeline returns it; ownership belongs to the caller.
type DiscoveryResult struct {
	Root         string                      `json:"root" yaml:"root"`
	Functions    map[string]FunctionRecord   `json:"functions" yaml:"functions"`
	Configs      map[string]AdaptationConfig `json:"function_configs,omitempty" yaml:"function_configs,omitempty"`
	DomainCounts map[Domain]int              `json:"domain_distribution,omitempty" yaml:"domain_distribution,omitempty"`
	Stats        Stats                       `json:"stats" yaml:"stats"`
	Success      bool                        `json:"success" yaml:"success"`
	Errors       []Error                     `json:"errors,omitempty" yaml:"errors,omitempty"`
}
