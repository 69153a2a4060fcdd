package tune_test

import (
	"testing"

	"github.com/plus3/bardmages/tune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizeTunesRespectsEnabledRhythms(t *testing.T) {
	bard := tune.NewBard(7)
	bard.RandomizeTunes(tune.DefaultCatalog(), []tune.RhythmType{tune.RhythmMarch}, 3)

	require.Len(t, bard.Tunes, 2, "only two march tunes exist")
	for _, tn := range bard.Tunes {
		assert.Equal(t, tune.RhythmMarch, tn.Rhythm)
	}
	assert.NotEqual(t, bard.Tunes[0].Name, bard.Tunes[1].Name)
}

func TestRandomizeTunesWithoutEnabledUsesWholeCatalog(t *testing.T) {
	bard := tune.NewBard(7)
	bard.RandomizeTunes(tune.DefaultCatalog(), nil, 4)

	assert.Len(t, bard.Tunes, 4)
}

func TestRandomizeTunesIsDeterministicPerSeed(t *testing.T) {
	a, b := tune.NewBard(99), tune.NewBard(99)
	a.RandomizeTunes(tune.DefaultCatalog(), nil, 3)
	b.RandomizeTunes(tune.DefaultCatalog(), nil, 3)

	assert.Equal(t, a.Tunes, b.Tunes)
}

func TestPlayAndCast(t *testing.T) {
	bard := tune.NewBard(1)
	bard.TimingAccuracy = 1
	bard.Tunes = []tune.Tune{{Name: "drum", Rhythm: tune.RhythmMarch, Beats: 2, BeatInterval: 0.5, Power: 10}}

	assert.False(t, bard.Play(3))
	require.True(t, bard.Play(0))
	assert.False(t, bard.Play(0), "already playing")

	bard.UpdateTune(0.6)
	assert.InDelta(t, 0.5, bard.Progress(), 1e-12)
	_, ok := bard.TakeCast()
	assert.False(t, ok)

	bard.UpdateTune(0.5)
	_, playing := bard.Playing()
	assert.False(t, playing)

	cast, ok := bard.TakeCast()
	require.True(t, ok)
	assert.Equal(t, 2, cast.PerfectBeats)
	assert.Equal(t, 10.0, cast.Power)

	_, ok = bard.TakeCast()
	assert.False(t, ok, "casts are taken once")
}

func TestMissedBeatsWeakenTheCast(t *testing.T) {
	bard := tune.NewBard(1)
	bard.TimingAccuracy = 0
	bard.Tunes = []tune.Tune{{Name: "flub", Rhythm: tune.RhythmReel, Beats: 4, BeatInterval: 0.1, Power: 10}}

	require.True(t, bard.Play(0))
	bard.UpdateTune(1)

	cast, ok := bard.TakeCast()
	require.True(t, ok)
	assert.Equal(t, 0, cast.PerfectBeats)
	assert.Equal(t, 5.0, cast.Power)
}

func TestZeroBardIsInert(t *testing.T) {
	var bard tune.Bard
	bard.UpdateTune(1)
	assert.False(t, bard.Play(0))
	assert.Equal(t, 0.0, bard.Progress())
}

func TestRhythmValid(t *testing.T) {
	assert.True(t, tune.RhythmSwing.Valid())
	assert.False(t, tune.RhythmType("polka").Valid())
}
