package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelPattern(t *testing.T) {
	assert.Equal(t, ":Animal:Seeded", LabelPattern([]string{LabelSeeded, LabelAnimal}))
	assert.Equal(t, "", LabelPattern(nil))
}

func TestLabelPatternDedupesWithoutReorderingInput(t *testing.T) {
	labels := []string{LabelSeeded, LabelBranch, LabelSeeded, ""}
	assert.Equal(t, ":Branch:Seeded", LabelPattern(labels))
	assert.Equal(t, []string{LabelSeeded, LabelBranch, LabelSeeded, ""}, labels)
}

func TestMakeKey(t *testing.T) {
	assert.Equal(t, "BRANCH_7", MakeKey(PrefixBranch, 7))
	assert.Equal(t, "ANIMAL_lorem", MakeKey(PrefixAnimal, "lorem"))
}

func TestHoldsEndpoints(t *testing.T) {
	ep, ok := RelEndpoints[RelHolds]
	assert.True(t, ok)
	assert.Equal(t, LabelBranch, ep.Start)
	assert.Equal(t, LabelAnimal, ep.End)
}

func TestDocBatchAnimalCount(t *testing.T) {
	set := DocBatchSet{Branches: []DocBranch{
		{ID: "a", Animals: make([]DocAnimal, 3)},
		{ID: "b"},
		{ID: "c", Animals: make([]DocAnimal, 2)},
	}}
	assert.Equal(t, 5, set.AnimalCount())
}

func TestCheckMeasures(t *testing.T) {
	assert.NoError(t, CheckMeasures("lion", 0, 0))
	assert.NoError(t, CheckMeasures("lion", 1.5, 90))
	assert.ErrorIs(t, CheckMeasures("lion", -0.1, 90), ErrInvalid)
	assert.ErrorIs(t, CheckMeasures("lion", 1.5, -1), ErrInvalid)
}
