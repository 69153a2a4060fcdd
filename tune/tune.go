// Package tune models the songs a bardmage plays. A tune is a fixed number of
// beats; every beat is either hit perfectly or not, and the finished tune is
// cast with power scaled by how well it was played.
package tune

import (
	"math/rand/v2"
	"slices"
)

// RhythmType names the rhythm family a tune belongs to. A level enables a
// subset of rhythms.
type RhythmType string

const (
	RhythmWaltz RhythmType = "waltz"
	RhythmMarch RhythmType = "march"
	RhythmSwing RhythmType = "swing"
	RhythmReel  RhythmType = "reel"
)

// AllRhythms lists every known rhythm.
var AllRhythms = []RhythmType{RhythmWaltz, RhythmMarch, RhythmSwing, RhythmReel}

// Valid reports whether r is a known rhythm.
func (r RhythmType) Valid() bool {
	return slices.Contains(AllRhythms, r)
}

type Tune struct {
	Name         string
	Rhythm       RhythmType
	Beats        int
	BeatInterval float64 // seconds
	Power        float64
}

// Duration is the time needed to play the whole tune.
func (t Tune) Duration() float64 {
	return float64(t.Beats) * t.BeatInterval
}

// DefaultCatalog returns the stock tunes.
func DefaultCatalog() []Tune {
	return []Tune{
		{Name: "Ember Waltz", Rhythm: RhythmWaltz, Beats: 3, BeatInterval: 0.4, Power: 12},
		{Name: "Glass Waltz", Rhythm: RhythmWaltz, Beats: 6, BeatInterval: 0.3, Power: 20},
		{Name: "Iron March", Rhythm: RhythmMarch, Beats: 4, BeatInterval: 0.5, Power: 18},
		{Name: "Quick March", Rhythm: RhythmMarch, Beats: 2, BeatInterval: 0.35, Power: 7},
		{Name: "Lantern Swing", Rhythm: RhythmSwing, Beats: 5, BeatInterval: 0.3, Power: 15},
		{Name: "Hollow Reel", Rhythm: RhythmReel, Beats: 8, BeatInterval: 0.2, Power: 22},
	}
}

// Cast is a finished tune ready to take effect.
type Cast struct {
	Tune         Tune
	PerfectBeats int
	Power        float64
}

// Bard is the tune-playing component of a character. The zero value is
// usable and plays nothing.
type Bard struct {
	Tunes          []Tune
	TimingAccuracy float64

	rng     *rand.Rand
	active  bool
	current Tune
	beat    int
	perfect int
	elapsed float64
	cast    *Cast
}

// NewBard creates a bard whose dice are seeded deterministically.
func NewBard(seed uint64) Bard {
	return Bard{
		TimingAccuracy: 0.75,
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (b *Bard) random() *rand.Rand {
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(1, 2))
	}
	return b.rng
}

// RandomizeTunes replaces the bard's tunes with up to count distinct tunes
// drawn from the catalog. Only enabled rhythms are considered unless none are
// enabled, in which case the whole catalog is.
func (b *Bard) RandomizeTunes(catalog []Tune, enabled []RhythmType, count int) {
	pool := make([]Tune, 0, len(catalog))
	for _, t := range catalog {
		if len(enabled) == 0 || slices.Contains(enabled, t.Rhythm) {
			pool = append(pool, t)
		}
	}

	b.Tunes = b.Tunes[:0]
	for _, i := range b.random().Perm(len(pool)) {
		if len(b.Tunes) >= count {
			break
		}
		b.Tunes = append(b.Tunes, pool[i])
	}
}

// Playing returns the tune being played, if any.
func (b *Bard) Playing() (Tune, bool) {
	return b.current, b.active
}

// Progress is the fraction of the current tune already played.
func (b *Bard) Progress() float64 {
	if !b.active || b.current.Beats == 0 {
		return 0
	}
	return float64(b.beat) / float64(b.current.Beats)
}

// Play starts the tune at index. It fails while another tune is playing or
// when the index is out of range.
func (b *Bard) Play(index int) bool {
	if b.active || index < 0 || index >= len(b.Tunes) {
		return false
	}
	b.active = true
	b.current = b.Tunes[index]
	b.beat = 0
	b.perfect = 0
	b.elapsed = 0
	return true
}

// UpdateTune advances playback by dt seconds, rolling each beat that falls
// due against TimingAccuracy. The final beat produces a Cast.
func (b *Bard) UpdateTune(dt float64) {
	if !b.active {
		return
	}
	b.elapsed += dt
	for b.active && b.elapsed >= b.current.BeatInterval {
		b.elapsed -= b.current.BeatInterval
		b.beat++
		if b.random().Float64() < b.TimingAccuracy {
			b.perfect++
		}
		if b.beat >= b.current.Beats {
			b.finish()
		}
	}
}

func (b *Bard) finish() {
	quality := 1.0
	if b.current.Beats > 0 {
		quality = 0.5 + 0.5*float64(b.perfect)/float64(b.current.Beats)
	}
	b.cast = &Cast{
		Tune:         b.current,
		PerfectBeats: b.perfect,
		Power:        b.current.Power * quality,
	}
	b.active = false
	b.elapsed = 0
}

// TakeCast returns the most recent finished tune once.
func (b *Bard) TakeCast() (Cast, bool) {
	if b.cast == nil {
		return Cast{}, false
	}
	c := *b.cast
	b.cast = nil
	return c, true
}
