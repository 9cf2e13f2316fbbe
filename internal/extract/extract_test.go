package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchestrate-solutions/bird-bone-ai/internal/model"
)

// extractSource runs extraction over an in-memory file.
func extractSource(t *testing.T, relPath, source string) (map[string]model.FunctionRecord, int, *model.Error) {
	t.Helper()
	ex, err := New()
	require.NoError(t, err)
	return ex.File(model.SourceFile{Path: "/repo/" + relPath, RelPath: relPath}, []byte(source))
}

func TestQualifiedNameDerivation(t *testing.T) {
	t.Parallel()

	funcs, _, perr := extractSource(t, "pkg/sub/mod.py", "def helper(x):\n    return x\n")
	require.Nil(t, perr)
	require.Len(t, funcs, 1)

	rec, ok := funcs["pkg.sub.mod.helper"]
	require.True(t, ok, "expected qualified name pkg.sub.mod.helper, got %v", funcs)
	assert.Equal(t, "helper", rec.Name)
	assert.Equal(t, "pkg.sub.mod", rec.ModulePath)
	assert.Equal(t, "pkg/sub/mod.py", rec.FilePath)
}

func TestBasicMetadata(t *testing.T) {
	t.Parallel()

	source := `def predict(model, features: list, threshold: float = 0.5) -> bool:
    """Predict a label."""
    return True
`
	funcs, _, perr := extractSource(t, "a.py", source)
	require.Nil(t, perr)
	rec, ok := funcs["a.predict"]
	require.True(t, ok)

	assert.Equal(t, []string{"model", "features", "threshold"}, rec.ParameterNames)
	assert.Equal(t, 1, rec.DefaultCount)
	assert.Equal(t, "Predict a label.", rec.Docstring)
	assert.Equal(t, "bool", rec.ReturnType)
	assert.Equal(t, map[string]string{"features": "list", "threshold": "float"}, rec.TypeHints)
	assert.False(t, rec.IsAsync)
	assert.Equal(t, model.ML, rec.Domain)
	assert.Equal(t, 1, rec.StartLine)
	assert.Equal(t, 3, rec.EndLine)
}

func TestAsyncFunction(t *testing.T) {
	t.Parallel()

	funcs, _, perr := extractSource(t, "client.py", "async def fetch(url):\n    pass\n")
	require.Nil(t, perr)
	rec, ok := funcs["client.fetch"]
	require.True(t, ok)
	assert.True(t, rec.IsAsync)
	assert.Equal(t, model.API, rec.Domain)
}

func TestDomainPrecedence(t *testing.T) {
	t.Parallel()

	// "train" (ml) wins over "save" (file_ops): category 1 precedes 4.
	funcs, _, perr := extractSource(t, "m.py", "def train_and_save_model(data):\n    return data\n")
	require.Nil(t, perr)
	rec, ok := funcs["m.train_and_save_model"]
	require.True(t, ok)
	assert.Equal(t, model.ML, rec.Domain)
}

func TestPrivateExcludedDunderIncluded(t *testing.T) {
	t.Parallel()

	source := `def _internal(x):
    return x

def __init__(self):
    pass
`
	funcs, _, perr := extractSource(t, "mod.py", source)
	require.Nil(t, perr)

	assert.NotContains(t, funcs, "mod._internal")
	assert.Contains(t, funcs, "mod.__init__")
}

func TestReservedZeroArgExcluded(t *testing.T) {
	t.Parallel()

	source := `def main():
    pass

def setup():
    pass

def configure(options):
    return options
`
	funcs, _, perr := extractSource(t, "entry.py", source)
	require.Nil(t, perr)

	assert.NotContains(t, funcs, "entry.main")
	assert.NotContains(t, funcs, "entry.setup")
	assert.Contains(t, funcs, "entry.configure")

	// With a parameter, main qualifies.
	funcs, _, perr = extractSource(t, "entry.py", "def main(argv):\n    return argv\n")
	require.Nil(t, perr)
	assert.Contains(t, funcs, "entry.main")
}

func TestComplexityCensus(t *testing.T) {
	t.Parallel()

	source := `def crunch(items):
    results = []
    for item in items:
        if item:
            results.append(item)
    while False:
        break
    try:
        return results
    except ValueError:
        return []
`
	funcs, _, perr := extractSource(t, "c.py", source)
	require.Nil(t, perr)
	rec, ok := funcs["c.crunch"]
	require.True(t, ok)

	assert.Equal(t, 1, rec.Complexity.Conditions)
	assert.Equal(t, 2, rec.Complexity.Loops)
	assert.Equal(t, 2, rec.Complexity.TryExcept) // try + except clause
	assert.Equal(t, 1, rec.Complexity.FunctionCalls)
	assert.Equal(t, 2, rec.Complexity.Returns)
	assert.Equal(t, 8, rec.Complexity.Score())
}

func TestDependencies(t *testing.T) {
	t.Parallel()

	source := `def sync(db, cache):
    rows = db.query()
    cache.set(rows)
    db.close()
    helper(rows)
`
	funcs, _, perr := extractSource(t, "d.py", source)
	require.Nil(t, perr)
	rec, ok := funcs["d.sync"]
	require.True(t, ok)

	// Deduplicated, sorted receivers; bare calls are ignored.
	assert.Equal(t, []string{"cache", "db"}, rec.Dependencies)
}

func TestNestedFunctionsExtracted(t *testing.T) {
	t.Parallel()

	source := `def outer(x):
    def inner(y):
        return y
    return inner(x)
`
	funcs, _, perr := extractSource(t, "n.py", source)
	require.Nil(t, perr)

	assert.Contains(t, funcs, "n.outer")
	assert.Contains(t, funcs, "n.inner")
}

func TestMethodsQualifiedAtModuleLevel(t *testing.T) {
	t.Parallel()

	source := `class Trainer:
    def fit(self, data):
        return data
`
	funcs, _, perr := extractSource(t, "t.py", source)
	require.Nil(t, perr)

	// Methods share the module namespace with plain functions.
	assert.Contains(t, funcs, "t.fit")
}

func TestCollisionLastWins(t *testing.T) {
	t.Parallel()

	source := `def compute(a):
    return a

def compute(a, b):
    return a
`
	funcs, collisions, perr := extractSource(t, "dup.py", source)
	require.Nil(t, perr)

	assert.Equal(t, 1, collisions)
	rec, ok := funcs["dup.compute"]
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rec.ParameterNames, "later definition wins")
}

func TestParseError(t *testing.T) {
	t.Parallel()

	funcs, _, perr := extractSource(t, "broken.py", "def broken(:\n")
	require.NotNil(t, perr)
	assert.Equal(t, model.ParseError, perr.Kind)
	assert.Equal(t, "broken.py", perr.Path)
	assert.Nil(t, funcs)
}

func TestSplatParamsNotCollected(t *testing.T) {
	t.Parallel()

	funcs, _, perr := extractSource(t, "v.py", "def variadic(a, *args, **kwargs):\n    return a\n")
	require.Nil(t, perr)
	rec, ok := funcs["v.variadic"]
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, rec.ParameterNames)
}

func TestNoReturnAnnotation(t *testing.T) {
	t.Parallel()

	funcs, _, perr := extractSource(t, "r.py", "def plain(x):\n    return x\n")
	require.Nil(t, perr)
	rec := funcs["r.plain"]
	assert.Empty(t, rec.ReturnType)
	assert.Empty(t, rec.TypeHints)
}

func TestDeterministicExtraction(t *testing.T) {
	t.Parallel()

	source := `def transform(data):
    """Transform records."""
    return [d.strip() for d in data]
`
	first, _, perr := extractSource(t, "det.py", source)
	require.Nil(t, perr)
	second, _, perr := extractSource(t, "det.py", source)
	require.Nil(t, perr)

	assert.Equal(t, first, second)
}
