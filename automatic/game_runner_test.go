package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/solitaire/config"
	"github.com/domino14/solitaire/game"
	"github.com/domino14/solitaire/move"
)

func seededRNG(b byte) *frand.RNG {
	seed := make([]byte, 32)
	seed[0] = b
	return frand.NewCustom(seed, 1024, 12)
}

func TestPlayGameIsDeterministic(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner()
	r.keepHistory = true
	r.validate = true

	rec1, err := r.PlayGame(context.Background(), seededRNG(7))
	is.NoErr(err)
	rec2, err := r.PlayGame(context.Background(), seededRNG(7))
	is.NoErr(err)
	is.Equal(rec1.History, rec2.History)
	is.Equal(rec1.Returns, rec2.Returns)
	is.Equal(rec1.Actions, len(rec1.History))
	is.Equal(rec1.Actions, rec1.Moves+rec1.Draws+rec1.Reveals+1)
	// every card is dealt at most once
	is.True(rec1.Reveals <= 52)
	is.True(rec1.Returns >= game.MinUtility && rec1.Returns <= game.MaxUtility)
	is.True(rec1.DistinctPositions > 0)
}

func TestPlayGameStopsAtCap(t *testing.T) {
	is := is.New(t)
	r := NewGameRunner()
	r.maxActions = 10
	rec, err := r.PlayGame(context.Background(), seededRNG(1))
	is.NoErr(err)
	is.True(rec.Capped)
	is.Equal(rec.Actions, 10)
	is.True(!rec.Won)
}

func TestPlayGameCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlayGame(ctx, seededRNG(1))
	is.Equal(err, context.Canceled)
}

func TestSampleChance(t *testing.T) {
	is := is.New(t)
	g := game.NewGame()
	rng := seededRNG(3)
	for iter := 0; iter < 10; iter++ {
		a := sampleChance(g.ChanceOutcomes(), rng)
		is.Equal(a, g.LegalActions()[0])
	}
}

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	master, err := ParseSeed(strings.Repeat("ab", 32))
	is.NoErr(err)
	seeds := GenerateSeeds(master, 5)
	is.Equal(seeds, GenerateSeeds(master, 5))
	is.True(seeds[0] != seeds[1])

	path := filepath.Join(t.TempDir(), "seeds")
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	_, err = ParseSeed("abcd")
	is.True(err != nil)
	_, err = ParseSeed("zz")
	is.True(err != nil)
}

func TestStartSelfPlay(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "autoplay.csv")
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAutoplaySeed, strings.Repeat("01", 32))
	cfg.Set(config.ConfigAutoplayRecordObservations, true)
	cfg.Set(config.ConfigAutoplayValidate, true)

	sum, err := StartSelfPlay(context.Background(), cfg, 20, 3, out)
	is.NoErr(err)
	is.Equal(sum.Games, 20)
	is.True(sum.CI95Low <= sum.MeanReturns && sum.MeanReturns <= sum.CI95High)
	is.Equal(GamesPlayed.Value(), int64(20))
	is.Equal(IsPlaying.Value(), int64(0))

	contents, err := os.ReadFile(out)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	is.Equal(len(lines), 21)
	is.True(strings.HasPrefix(lines[0], "gameID,seed,actions"))

	analyzed, err := AnalyzeLogFile(out)
	is.NoErr(err)
	is.Equal(analyzed.Games, sum.Games)
	is.Equal(analyzed.Wins, sum.Wins)
	assert.InDelta(t, sum.MeanReturns, analyzed.MeanReturns, 1e-6)

	raw, err := os.ReadFile(out + ".summary.yaml")
	is.NoErr(err)
	var fromFile Summary
	is.NoErr(yaml.Unmarshal(raw, &fromFile))
	is.Equal(fromFile.Games, 20)

	obs, err := os.ReadFile(out + ".obs")
	is.NoErr(err)
	is.True(len(obs) > 0)
	is.Equal(len(obs)%(4*game.ObservationSize), 0)
	vec, err := ReadObservation(bytes.NewReader(obs))
	is.NoErr(err)
	for _, v := range vec {
		is.True((v >= 0 && v < 52) || v == game.HiddenCard || v == game.NoCard)
	}

	// Replaying the saved seeds plays the same games.
	cfg2 := config.DefaultConfig()
	cfg2.Set(config.ConfigAutoplaySeedFile, out+".seeds")
	out2 := filepath.Join(dir, "replay.csv")
	sum2, err := StartSelfPlay(context.Background(), cfg2, 20, 2, out2)
	is.NoErr(err)
	is.Equal(sum2.Wins, sum.Wins)
	assert.InDelta(t, sum.MeanReturns, sum2.MeanReturns, 1e-6)
	assert.Equal(t, sum.MaxReturns, sum2.MaxReturns)
}

func TestSelfPlayStoreReplays(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "games.csv")
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAutoplaySeed, strings.Repeat("03", 32))
	cfg.Set(config.ConfigAutoplayDB, filepath.Join(dir, "games.db"))

	_, err := StartSelfPlay(context.Background(), cfg, 6, 2, out)
	is.NoErr(err)

	store, err := OpenResultStore(filepath.Join(dir, "games.db"))
	is.NoErr(err)
	defer store.Close()
	n, err := store.Count(context.Background())
	is.NoErr(err)
	is.Equal(n, 6)

	contents, err := os.ReadFile(out)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		history, err := store.History(context.Background(), fields[0])
		is.NoErr(err)
		is.Equal(strconv.Itoa(len(history)), fields[2])

		g, err := Replay(history)
		is.NoErr(err)
		is.Equal(strconv.FormatFloat(g.Returns(), 'f', -1, 64), fields[7])
	}
}

func TestHistoryEncoding(t *testing.T) {
	is := is.New(t)
	h := []move.Action{move.Setup, 10, 22, move.Draw, 126}
	s := encodeHistory(h)
	is.Equal(s, "0,10,22,53,126")
	back, err := decodeHistory(s)
	is.NoErr(err)
	is.Equal(back, h)
	empty, err := decodeHistory("")
	is.NoErr(err)
	is.Equal(len(empty), 0)
}

func TestStartSelfPlayRejectsSecondRun(t *testing.T) {
	is := is.New(t)
	is.True(playing.CompareAndSwap(0, 1))
	defer playing.Store(0)

	cfg := config.DefaultConfig()
	out := filepath.Join(t.TempDir(), "games.csv")
	_, err := StartSelfPlay(context.Background(), cfg, 1, 1, out)
	is.Equal(err, ErrAlreadyPlaying)
	_, err = os.Stat(out)
	is.True(os.IsNotExist(err))
}

func TestConcurrentStartSelfPlay(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAutoplaySeed, strings.Repeat("05", 32))

	// Every caller either runs alone or is turned away.
	errs := make([]error, 4)
	var wg sync.WaitGroup
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := filepath.Join(dir, "games"+strconv.Itoa(i)+".csv")
			_, errs[i] = StartSelfPlay(context.Background(), cfg, 3, 1, out)
		}()
	}
	wg.Wait()

	ran := 0
	for _, err := range errs {
		if err == nil {
			ran++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyPlaying)
	}
	assert.GreaterOrEqual(t, ran, 1)
	assert.Equal(t, int64(0), IsPlaying.Value())
	assert.Equal(t, int32(0), playing.Load())
}
