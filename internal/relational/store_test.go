package relational

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierbench/internal/domain"
	"tierbench/internal/seed"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "tierbench.db"), BatchSize: 7}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func fixture() domain.BatchSet {
	return domain.BatchSet{
		Branches: []domain.Branch{
			{ID: 1, Name: "Zoo Nord", Address: "Hauptstrasse 1"},
			{ID: 2, Name: "Alpha Pets", Address: "Ringweg 2"},
		},
		Animals: []domain.Animal{
			{Name: "lion", Size: 1.5, Weight: 90.1},
			{Name: "aardvark", Size: 0.7, Weight: 40},
			{Name: "zebra", Size: 1.4, Weight: 80},
		},
		Relations: []domain.Relation{
			{BranchID: 1, AnimalName: "lion", Count: 2},
			{BranchID: 1, AnimalName: "aardvark", Count: 5},
			{BranchID: 2, AnimalName: "lion", Count: 1},
		},
	}
}

func seeded(t *testing.T) *Store {
	t.Helper()
	store := newTestStore(t)
	require.NoError(t, store.InsertBatch(context.Background(), fixture()))
	return store
}

func TestOpenValidatesConfig(t *testing.T) {
	_, err := Open(Config{Driver: "sqlite"}, nil)
	assert.Error(t, err)

	_, err = Open(Config{Driver: "oracle", DSN: "x"}, nil)
	assert.Error(t, err)
}

func TestInsertGeneratedBatchAndClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	batch, err := seed.NewGenerator(seed.NewSource(seed.DefaultSeed)).Batch(
		seed.Request{AnimalCount: 40, BranchCount: 25, RelationCount: 300}, seed.WithReplacement)
	require.NoError(t, err)
	require.NoError(t, store.InsertBatch(ctx, batch))

	branches, animals, relations, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 25, branches)
	assert.EqualValues(t, 40, animals)
	assert.EqualValues(t, 300, relations)

	require.NoError(t, store.ClearAll(ctx))
	branches, animals, relations, err = store.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, branches+animals+relations)
}

func TestInsertBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	batch := fixture()
	batch.Relations = append(batch.Relations, batch.Relations[0])
	require.Error(t, store.InsertBatch(ctx, batch))

	branches, animals, relations, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, branches+animals+relations)
}

func TestInsertEmptyBatch(t *testing.T) {
	assert.NoError(t, newTestStore(t).InsertBatch(context.Background(), domain.BatchSet{}))
}

func TestRecreateDropsData(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)
	require.NoError(t, store.Recreate(ctx))

	branches, err := store.Branches(ctx)
	require.NoError(t, err)
	assert.Empty(t, branches)
	assert.NoError(t, store.Ping(ctx))
}

func TestJoinQueries(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)

	animals, err := store.AnimalsByBranch(ctx, 1)
	require.NoError(t, err)
	require.Len(t, animals, 2)
	assert.Equal(t, "aardvark", animals[0].Name)

	names, err := store.AnimalNamesByBranch(ctx, 1, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"aardvark", "lion"}, names)

	names, err = store.AnimalNamesByBranch(ctx, 1, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"aardvark", "lion"}, names)

	branches, err := store.BranchesByAnimal(ctx, "lion")
	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, 1, branches[0].ID)

	names, err = store.BranchNamesByAnimal(ctx, "lion", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Pets", "Zoo Nord"}, names)

	names, err = store.BranchNamesByAnimal(ctx, "zebra", true)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)
}

func TestAnimalCRUD(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)

	_, err := store.CreateAnimal(ctx, domain.Animal{Name: "lion"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = store.CreateAnimal(ctx, domain.Animal{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	created, err := store.CreateAnimal(ctx, domain.Animal{Name: "otter", Size: 0.5, Weight: 9})
	require.NoError(t, err)
	assert.Equal(t, "otter", created.Name)

	_, err = store.UpdateAnimal(ctx, domain.Animal{Name: "otter", Size: 0.6, Weight: 10})
	require.NoError(t, err)
	got, err := store.Animal(ctx, "otter")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Weight)

	_, err = store.UpdateAnimal(ctx, domain.Animal{Name: "unicorn"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.DeleteAnimal(ctx, "lion"))
	_, err = store.Animal(ctx, "lion")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	relations, err := store.RelationsByAnimal(ctx, "lion")
	require.NoError(t, err)
	assert.Empty(t, relations)

	assert.ErrorIs(t, store.DeleteAnimal(ctx, "lion"), domain.ErrNotFound)
}

func TestAnimalWritesRejectNegativeMeasures(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)

	_, err := store.CreateAnimal(ctx, domain.Animal{Name: "ghost", Size: -3.5, Weight: -1})
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = store.Animal(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.UpdateAnimal(ctx, domain.Animal{Name: "lion", Size: -99, Weight: -99})
	assert.ErrorIs(t, err, domain.ErrInvalid)
	got, err := store.Animal(ctx, "lion")
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.Size)
	assert.Equal(t, 90.1, got.Weight)

	created, err := store.CreateAnimal(ctx, domain.Animal{Name: "pebble"})
	require.NoError(t, err)
	assert.Zero(t, created.Size)
}

func TestBranchCRUD(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)

	created, err := store.CreateBranch(ctx, domain.Branch{Name: "New", Address: "Somewhere 3"})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)

	_, err = store.CreateBranch(ctx, domain.Branch{ID: 1, Name: "dup"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = store.CreateBranch(ctx, domain.Branch{ID: -1})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = store.UpdateBranch(ctx, domain.Branch{ID: 3, Name: "Renamed", Address: "Elsewhere 4"})
	require.NoError(t, err)
	got, err := store.Branch(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	_, err = store.UpdateBranch(ctx, domain.Branch{ID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.DeleteBranch(ctx, 1))
	relations, err := store.RelationsByBranch(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, relations)
	_, err = store.Branch(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelationCRUD(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)

	_, err := store.CreateRelation(ctx, domain.Relation{BranchID: 2, AnimalName: "zebra", Count: 0})
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = store.CreateRelation(ctx, domain.Relation{BranchID: 9, AnimalName: "zebra", Count: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.CreateRelation(ctx, domain.Relation{BranchID: 2, AnimalName: "unicorn", Count: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.CreateRelation(ctx, domain.Relation{BranchID: 1, AnimalName: "lion", Count: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = store.CreateRelation(ctx, domain.Relation{BranchID: 2, AnimalName: "zebra", Count: 4})
	require.NoError(t, err)

	_, err = store.UpdateRelation(ctx, domain.Relation{BranchID: 2, AnimalName: "zebra", Count: 8})
	require.NoError(t, err)
	relations, err := store.RelationsByBranch(ctx, 2)
	require.NoError(t, err)
	require.Len(t, relations, 2)
	assert.Equal(t, 8, relations[1].Count)

	all, err := store.Relations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	require.NoError(t, store.DeleteRelation(ctx, 2, "zebra"))
	assert.ErrorIs(t, store.DeleteRelation(ctx, 2, "zebra"), domain.ErrNotFound)
	_, err = store.UpdateRelation(ctx, domain.Relation{BranchID: 2, AnimalName: "zebra", Count: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
