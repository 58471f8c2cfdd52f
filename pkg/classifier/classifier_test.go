package classifier

import (
	"math"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	jeopardy       = "Jeopardy!"
	doubleJeopardy = "Double Jeopardy!"
	finalJeopardy  = "Final Jeopardy!"
	tiebreaker     = "Tiebreaker"
)

var (
	catHistory    = NewFeature("Category of Question", String("HISTORY"))
	catStates     = NewFeature("Category of Question", String("PRESIDENTIAL STATES OF BIRTH"))
	catHomophones = NewFeature("Category of Question", String("HOMOPHONIC PAIRS"))
	catNovels     = NewFeature("Category of Question", String("BRITISH NOVELS"))
	catChildsPlay = NewFeature("Category of Question", String("CHILD'S PLAY"))
	longQuestion  = NewFeature("Amount of characters is >80", Bool(true))
	shortQuestion = NewFeature("Amount of characters is <80", Bool(true))
	value200      = NewFeature("Value of Question", Int(200))
	value400      = NewFeature("Value of Question", Int(400))
)

func roundUniverse(t *testing.T) *Universe[string] {
	t.Helper()
	u, err := NewUniverse(jeopardy, doubleJeopardy, finalJeopardy, tiebreaker)
	require.NoError(t, err)
	return u
}

func fiveQuestions() []*FeatureSet[string] {
	return []*FeatureSet[string]{
		NewLabeledFeatureSet(jeopardy, catHistory, longQuestion, value200),
		NewLabeledFeatureSet(doubleJeopardy, catStates, value400, shortQuestion),
		NewLabeledFeatureSet(jeopardy, catHomophones, value400, shortQuestion),
		NewLabeledFeatureSet(finalJeopardy, catNovels, shortQuestion),
		NewLabeledFeatureSet(tiebreaker, catChildsPlay, longQuestion),
	}
}

func trainFive(t *testing.T) *Classifier[string] {
	t.Helper()
	c, err := Train(roundUniverse(t), fiveQuestions())
	require.NoError(t, err)
	return c
}

func TestTrainFrequencies(t *testing.T) {
	c := trainFive(t)

	expected := map[Feature][]float64{
		longQuestion:  {0.5, 0.0, 0.0, 1.0},
		catHistory:    {0.5, 0.0, 0.0, 0.0},
		value200:      {0.5, 0.0, 0.0, 0.0},
		catStates:     {0.0, 1.0, 0.0, 0.0},
		shortQuestion: {0.5, 1.0, 1.0, 0.0},
		value400:      {0.5, 1.0, 0.0, 0.0},
		catHomophones: {0.5, 0.0, 0.0, 0.0},
		catNovels:     {0.0, 0.0, 1.0, 0.0},
		catChildsPlay: {0.0, 0.0, 0.0, 1.0},
	}

	assert.Equal(t, len(expected), c.Len())
	for f, want := range expected {
		got, ok := c.Frequencies(f)
		require.True(t, ok, "feature %s should be trained", f)
		assert.Equal(t, want, got, "frequencies for %s", f)
	}

	assert.Equal(t, []float64{0.4, 0.2, 0.2, 0.2}, c.Priors())
}

func TestTrainInvariants(t *testing.T) {
	examples := fiveQuestions()
	c, err := Train(roundUniverse(t), examples)
	require.NoError(t, err)

	var sum float64
	for _, p := range c.Priors() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	classTotals := map[string]int{}
	for _, ex := range examples {
		label, _ := ex.Label()
		classTotals[label]++
	}

	for _, f := range c.Features() {
		freq, _ := c.Frequencies(f)
		for k, label := range c.Labels() {
			assert.GreaterOrEqual(t, freq[k], 0.0)
			assert.LessOrEqual(t, freq[k], 1.0)

			containing := 0
			for _, ex := range examples {
				if l, _ := ex.Label(); l == label && ex.Contains(f) {
					containing++
				}
			}
			assert.Equal(t, float64(containing)/float64(classTotals[label]), freq[k])
		}
	}
}

func TestTrainCountsEachExampleOnce(t *testing.T) {
	u, err := NewUniverse("pos", "neg")
	require.NoError(t, err)

	f := NewFeature("word", String("free"))
	examples := []*FeatureSet[string]{
		NewLabeledFeatureSet("pos", f, f, f),
		NewLabeledFeatureSet("pos"),
		NewLabeledFeatureSet("neg", f),
	}

	c, err := Train(u, examples)
	require.NoError(t, err)

	freq, ok := c.Frequencies(f)
	require.True(t, ok)
	assert.Equal(t, []float64{0.5, 1.0}, freq)
}

func TestTrainErrors(t *testing.T) {
	u, err := NewUniverse("pos", "neg")
	require.NoError(t, err)
	f := NewFeature("flag", Bool(true))

	tests := []struct {
		name     string
		universe *Universe[string]
		examples []*FeatureSet[string]
		target   error
	}{
		{
			name:     "empty training set",
			universe: u,
			examples: nil,
			target:   ErrTrainingData,
		},
		{
			name:     "nil universe",
			universe: nil,
			examples: []*FeatureSet[string]{NewLabeledFeatureSet("pos", f)},
			target:   ErrTrainingData,
		},
		{
			name:     "class without examples",
			universe: u,
			examples: []*FeatureSet[string]{NewLabeledFeatureSet("pos", f)},
			target:   ErrTrainingData,
		},
		{
			name:     "unlabeled example",
			universe: u,
			examples: []*FeatureSet[string]{NewLabeledFeatureSet("pos", f), NewFeatureSet[string](f)},
			target:   ErrTrainingData,
		},
		{
			name:     "unknown label",
			universe: u,
			examples: []*FeatureSet[string]{
				NewLabeledFeatureSet("pos", f),
				NewLabeledFeatureSet("neg", f),
				NewLabeledFeatureSet("maybe", f),
			},
			target: ErrUnknownLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Train(tt.universe, tt.examples)
			assert.Nil(t, c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "expected %v, got %v", tt.target, err)
		})
	}
}

func TestUnknownLabelIsTrainingDataError(t *testing.T) {
	assert.True(t, errors.Is(errors.Wrap(ErrUnknownLabel, "example 3"), ErrTrainingData))
}

func TestNewUniverseRejectsDuplicates(t *testing.T) {
	_, err := NewUniverse("a", "b", "a")
	assert.True(t, errors.Is(err, ErrTrainingData))

	_, err = NewUniverse[string]()
	assert.True(t, errors.Is(err, ErrTrainingData))
}

func TestGammaFiveQuestions(t *testing.T) {
	c := trainFive(t)
	examples := fiveQuestions()

	tests := []struct {
		name  string
		set   *FeatureSet[string]
		label string
		score float64
	}{
		{"jeopardy", examples[0], jeopardy, 1.0 / 20},
		{"double jeopardy", examples[1], doubleJeopardy, 1.0 / 5},
		{"final jeopardy", examples[3], finalJeopardy, 1.0 / 5},
		{"tiebreaker", examples[4], tiebreaker, 1.0 / 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.Gamma(tt.set)
			assert.Equal(t, tt.label, p.Label)
			assert.Equal(t, tt.score, p.Score)
			assert.Len(t, p.Scores, 4)
		})
	}
}

func TestGammaHeldOutMatchesProduct(t *testing.T) {
	c := trainFive(t)

	// only features of the Jeopardy! class, one of which covers half its examples
	heldOut := NewFeatureSet[string](catHistory, value200)
	p := c.Gamma(heldOut)

	assert.Equal(t, jeopardy, p.Label)
	assert.Equal(t, 0.4*0.5*0.5, p.Score)
	assert.Equal(t, []float64{0.4 * 0.5 * 0.5, 0, 0, 0}, p.Scores)
}

func TestGammaTwoClass(t *testing.T) {
	u, err := NewUniverse("positive", "negative")
	require.NoError(t, err)

	marker := NewFeature("marker", Bool(true))
	other := NewFeature("other", Int(7))
	examples := []*FeatureSet[string]{
		NewLabeledFeatureSet("positive", marker),
		NewLabeledFeatureSet("positive", marker, other),
		NewLabeledFeatureSet("negative", other),
		NewLabeledFeatureSet("negative"),
	}

	c, err := Train(u, examples)
	require.NoError(t, err)

	freq, ok := c.Frequencies(marker)
	require.True(t, ok)
	assert.Equal(t, []float64{1.0, 0.0}, freq)
	assert.Equal(t, []float64{0.5, 0.5}, c.Priors())

	p := c.Gamma(NewFeatureSet[string](marker))
	assert.Equal(t, "positive", p.Label)
	assert.Equal(t, 0.5, p.Score)
}

func TestGammaUnseenFeatureIsIdentity(t *testing.T) {
	c := trainFive(t)

	unseen := NewFeature("Category of Question", String("POTENT POTABLES"))
	with := c.Gamma(NewFeatureSet[string](catNovels, unseen))
	without := c.Gamma(NewFeatureSet[string](catNovels))

	assert.Equal(t, without, with)
	assert.Equal(t, finalJeopardy, with.Label)
	assert.Equal(t, 0.2, with.Score)
}

func TestGammaEmptySetPicksHighestPrior(t *testing.T) {
	c := trainFive(t)

	p := c.Gamma(NewFeatureSet[string]())
	assert.Equal(t, jeopardy, p.Label)
	assert.Equal(t, 0.4, p.Score)
}

func TestGammaZeroValueSet(t *testing.T) {
	c := trainFive(t)

	p := c.Gamma(&FeatureSet[string]{})
	assert.Equal(t, jeopardy, p.Label)
	assert.Equal(t, 0.4, p.Score)
	assert.Equal(t, c.Priors(), p.Scores)
}

func TestTrainRejectsZeroValueExample(t *testing.T) {
	examples := append(fiveQuestions(), &FeatureSet[string]{})

	_, err := Train(roundUniverse(t), examples)
	assert.True(t, errors.Is(err, ErrTrainingData), "got %v", err)
}

func TestGammaTieBreaksByUniverseOrder(t *testing.T) {
	u, err := NewUniverse("b", "a")
	require.NoError(t, err)

	shared := NewFeature("shared", Bool(true))
	c, err := Train(u, []*FeatureSet[string]{
		NewLabeledFeatureSet("a", shared),
		NewLabeledFeatureSet("b", shared),
	})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		p := c.Gamma(NewFeatureSet[string](shared))
		assert.Equal(t, "b", p.Label)
		assert.Equal(t, 0.5, p.Score)
	}

	onlyA := NewFeature("only", String("a"))
	onlyB := NewFeature("only", String("b"))
	c, err = Train(u, []*FeatureSet[string]{
		NewLabeledFeatureSet("a", onlyA),
		NewLabeledFeatureSet("b", onlyB),
	})
	require.NoError(t, err)

	// every class score is zero
	p := c.Gamma(NewFeatureSet[string](onlyA, onlyB))
	assert.Equal(t, "b", p.Label)
	assert.Equal(t, []float64{0, 0}, p.Scores)
}

func TestGammaIgnoresKnownLabel(t *testing.T) {
	c := trainFive(t)

	labeled := NewLabeledFeatureSet(tiebreaker, catNovels, shortQuestion)
	p := c.Gamma(labeled)
	assert.Equal(t, finalJeopardy, p.Label)
}

func TestGammaConcurrent(t *testing.T) {
	c := trainFive(t)
	want := c.Gamma(fiveQuestions()[0])

	var wg sync.WaitGroup
	results := make([]Prediction[string], 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Gamma(fiveQuestions()[0])
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := trainFive(t)

	priors := c.Priors()
	priors[0] = math.NaN()
	assert.Equal(t, 0.4, c.Priors()[0])

	freq, _ := c.Frequencies(longQuestion)
	freq[3] = 0
	again, _ := c.Frequencies(longQuestion)
	assert.Equal(t, 1.0, again[3])

	p := c.Gamma(NewFeatureSet[string](longQuestion))
	p.Scores[0] = 99
	assert.Equal(t, 0.2, c.Gamma(NewFeatureSet[string](longQuestion)).Score)
}

func TestInfo(t *testing.T) {
	c := trainFive(t)
	info := c.Info()

	assert.Equal(t, 5, info.Examples)
	assert.Equal(t, 9, info.Features)
	assert.Equal(t, []int{2, 1, 1, 1}, info.ClassCounts)
	assert.Equal(t, []string{jeopardy, doubleJeopardy, finalJeopardy, tiebreaker}, info.Labels)
}
