package seed

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierbench/internal/domain"
)

var hexIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

func fixedClock() time.Time {
	return time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC)
}

func newTestGenerator(opts ...Option) *Generator {
	return NewGenerator(NewSource(DefaultSeed), append([]Option{WithClock(fixedClock)}, opts...)...)
}

func TestAnimalsReturnsDistinctNames(t *testing.T) {
	for _, count := range []int{1, 2, 17, 50, 100} {
		animals, err := newTestGenerator().Animals(count)
		require.NoError(t, err)
		require.Len(t, animals, count)

		seen := make(map[string]struct{}, count)
		for _, a := range animals {
			_, dup := seen[a.Name]
			require.Falsef(t, dup, "duplicate name %q for count %d", a.Name, count)
			seen[a.Name] = struct{}{}
		}
	}
}

func TestAnimalsClampsToMaxBatch(t *testing.T) {
	animals, err := newTestGenerator().Animals(150)
	require.NoError(t, err)
	assert.Len(t, animals, MaxBatch)
}

func TestAnimalsRejectsNonPositiveCount(t *testing.T) {
	for _, count := range []int{0, -3} {
		_, err := newTestGenerator().Animals(count)
		assert.ErrorIs(t, err, ErrInvalidCount)
	}
}

func TestAnimalsFailsWhenWordSourceIsExhausted(t *testing.T) {
	words := []string{"lion", "tiger"}
	i := 0
	gen := newTestGenerator(WithWords(func() string {
		w := words[i%len(words)]
		i++
		return w
	}))

	_, err := gen.Animals(3)
	require.ErrorIs(t, err, ErrExhaustedSource)
	assert.Equal(t, 3*attemptsPerItem, i)
}

func TestAnimalsValuesHaveOneDecimal(t *testing.T) {
	animals, err := newTestGenerator().Animals(100)
	require.NoError(t, err)
	for _, a := range animals {
		for _, v := range []float64{a.Size, a.Weight} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 99.9)
			scaled := v * 10
			assert.InDelta(t, math.Round(scaled), scaled, 1e-9)
		}
	}
}

func TestBranchesAssignsSequentialIDs(t *testing.T) {
	for _, shift := range []int{0, 7, 1000} {
		branches, err := newTestGenerator().Branches(25, shift)
		require.NoError(t, err)
		require.Len(t, branches, 25)
		for i, b := range branches {
			assert.Equal(t, shift+i+1, b.ID)
			assert.NotEmpty(t, b.Name)
			assert.NotEmpty(t, b.Address)
		}
	}
}

func TestBranchesValidatesInput(t *testing.T) {
	branches, err := newTestGenerator().Branches(500, 0)
	require.NoError(t, err)
	assert.Len(t, branches, MaxBatch)
	assert.Equal(t, MaxBatch, branches[len(branches)-1].ID)

	_, err = newTestGenerator().Branches(0, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = newTestGenerator().Branches(3, -1)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func requireDistinctKeys(t *testing.T, relations []domain.Relation) map[domain.RelationKey]struct{} {
	t.Helper()
	keys := make(map[domain.RelationKey]struct{}, len(relations))
	for _, r := range relations {
		_, dup := keys[r.Key()]
		require.Falsef(t, dup, "duplicate relation %+v", r.Key())
		keys[r.Key()] = struct{}{}
	}
	return keys
}

func batchInputs(t *testing.T, gen *Generator, branchCount, animalCount int) ([]domain.Branch, []domain.Animal) {
	t.Helper()
	branches, err := gen.Branches(branchCount, 0)
	require.NoError(t, err)
	animals, err := gen.Animals(animalCount)
	require.NoError(t, err)
	return branches, animals
}

func TestRelationsWithReplacementAreDistinct(t *testing.T) {
	gen := newTestGenerator()
	branches, animals := batchInputs(t, gen, 10, 20)

	relations, err := gen.Relations(branches, animals, 120, 7, WithReplacement)
	require.NoError(t, err)
	require.Len(t, relations, 120)
	requireDistinctKeys(t, relations)

	for _, r := range relations {
		assert.GreaterOrEqual(t, r.Count, 1)
		assert.LessOrEqual(t, r.Count, 7)
	}
}

func TestRelationsOversizedRequestTerminates(t *testing.T) {
	gen := newTestGenerator()
	branches, animals := batchInputs(t, gen, 10, 10)

	relations, err := gen.Relations(branches, animals, 1_000_000, 0, WithReplacement)
	require.NoError(t, err)
	require.Len(t, relations, 100)
	assert.Len(t, requireDistinctKeys(t, relations), 100)
}

func TestRelationsWithoutReplacementUsesEachBranchOnce(t *testing.T) {
	gen := newTestGenerator()
	branches, animals := batchInputs(t, gen, 8, 30)

	relations, err := gen.Relations(branches, animals, 50, 0, WithoutReplacement)
	require.NoError(t, err)
	require.Len(t, relations, 8)

	used := make(map[int]struct{})
	for _, r := range relations {
		_, dup := used[r.BranchID]
		require.False(t, dup, "branch %d used twice", r.BranchID)
		used[r.BranchID] = struct{}{}
	}
	requireDistinctKeys(t, relations)
}

func TestRelationsValidatesInput(t *testing.T) {
	gen := newTestGenerator()
	branches, animals := batchInputs(t, gen, 2, 2)

	_, err := gen.Relations(branches, animals, -1, 0, WithReplacement)
	assert.ErrorIs(t, err, ErrInvalidRelationCount)

	_, err = gen.Relations(nil, animals, 1, 0, WithReplacement)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = gen.Relations(branches, nil, 1, 0, WithoutReplacement)
	assert.ErrorIs(t, err, ErrInvalidCount)

	relations, err := gen.Relations(branches, animals, 0, 0, WithReplacement)
	require.NoError(t, err)
	assert.Empty(t, relations)
}

func TestBatchSmallExampleCoversAllPairs(t *testing.T) {
	batch, err := newTestGenerator().Batch(Request{AnimalCount: 5, BranchCount: 3, RelationCount: 20}, WithReplacement)
	require.NoError(t, err)

	require.Len(t, batch.Animals, 5)
	require.Len(t, batch.Branches, 3)
	require.Len(t, batch.Relations, 15)

	ids := []int{batch.Branches[0].ID, batch.Branches[1].ID, batch.Branches[2].ID}
	assert.Equal(t, []int{1, 2, 3}, ids)

	keys := requireDistinctKeys(t, batch.Relations)
	for _, b := range batch.Branches {
		for _, a := range batch.Animals {
			_, ok := keys[domain.RelationKey{BranchID: b.ID, AnimalName: a.Name}]
			assert.Truef(t, ok, "missing pair (%d, %s)", b.ID, a.Name)
		}
	}
}

func TestBatchRejectsNegativeRelationCount(t *testing.T) {
	_, err := newTestGenerator().Batch(Request{AnimalCount: 5, BranchCount: 3, RelationCount: -2}, WithReplacement)
	assert.ErrorIs(t, err, ErrInvalidRelationCount)
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}

func TestBatchIsDeterministic(t *testing.T) {
	req := Request{AnimalCount: 40, BranchCount: 12, RelationCount: 90, RelationMaxPerItem: 9}
	for _, policy := range []Policy{WithReplacement, WithoutReplacement} {
		first, err := newTestGenerator().Batch(req, policy)
		require.NoError(t, err)
		second, err := newTestGenerator().Batch(req, policy)
		require.NoError(t, err)
		assert.Equal(t, marshal(t, first), marshal(t, second), "policy %s", policy)
	}
}

func TestResetSourceReproducesBatch(t *testing.T) {
	gen := newTestGenerator()
	req := Request{AnimalCount: 10, BranchCount: 4, RelationCount: 12}

	first, err := gen.Batch(req, WithReplacement)
	require.NoError(t, err)
	advanced, err := gen.Batch(req, WithReplacement)
	require.NoError(t, err)
	assert.NotEqual(t, marshal(t, first), marshal(t, advanced))

	gen.Source().Reset()
	again, err := gen.Batch(req, WithReplacement)
	require.NoError(t, err)
	assert.Equal(t, marshal(t, first), marshal(t, again))
}

func TestDifferentSeedsProduceDifferentBatches(t *testing.T) {
	req := Request{AnimalCount: 10, BranchCount: 10, RelationCount: 10}
	a, err := NewGenerator(NewSource(1)).Batch(req, WithReplacement)
	require.NoError(t, err)
	b, err := NewGenerator(NewSource(2)).Batch(req, WithReplacement)
	require.NoError(t, err)
	assert.NotEqual(t, marshal(t, a), marshal(t, b))
}

func TestHexIDShape(t *testing.T) {
	gen := NewGenerator(NewSource(DefaultSeed))
	for i := 0; i < 200; i++ {
		id := gen.HexID()
		require.Len(t, id, 24)
		require.Regexp(t, hexIDPattern, id)
	}
}

func TestHexIDAdvancesSharedSource(t *testing.T) {
	gen := newTestGenerator()
	prefix := strconv.FormatInt(fixedClock().UnixNano(), 10)

	first := gen.HexID()
	second := gen.HexID()
	assert.True(t, strings.HasPrefix(first, prefix))
	assert.True(t, strings.HasPrefix(second, prefix))
	assert.NotEqual(t, first, second)
}

func TestDocBranchesEmbedsDisjointAnimals(t *testing.T) {
	branches, err := newTestGenerator().DocBranches(6, 4)
	require.NoError(t, err)
	require.Len(t, branches, 6)

	ids := make(map[string]struct{})
	names := make(map[string]struct{})
	for i, b := range branches {
		require.Regexp(t, hexIDPattern, b.ID)
		_, dup := ids[b.ID]
		require.False(t, dup)
		ids[b.ID] = struct{}{}

		require.Len(t, b.Animals, 4)
		for j, a := range b.Animals {
			assert.True(t, strings.HasSuffix(a.Name, strconv.Itoa(i*4+j)), "animal %q of branch %d", a.Name, i)
			assert.GreaterOrEqual(t, a.Count, 1)
			assert.LessOrEqual(t, a.Count, DefaultMaxCount)
			_, dup := names[a.Name]
			require.Falsef(t, dup, "animal name %q reused", a.Name)
			names[a.Name] = struct{}{}
		}
	}
}

func TestDocBatchIsDeterministic(t *testing.T) {
	req := DocRequest{BranchCount: 5, AnimalsPerBranch: 3}
	first, err := newTestGenerator().DocBatch(req)
	require.NoError(t, err)
	second, err := newTestGenerator().DocBatch(req)
	require.NoError(t, err)
	assert.Equal(t, marshal(t, first), marshal(t, second))
	assert.Equal(t, 15, first.AnimalCount())
}

func TestDocBranchesValidatesInput(t *testing.T) {
	_, err := newTestGenerator().DocBranches(0, 3)
	assert.ErrorIs(t, err, ErrInvalidCount)
	_, err = newTestGenerator().DocBranches(3, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, WithReplacement, p)

	p, err = ParsePolicy(" Without_Replacement ")
	require.NoError(t, err)
	assert.Equal(t, WithoutReplacement, p)
	assert.Equal(t, "without_replacement", p.String())

	_, err = ParsePolicy("sometimes")
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
