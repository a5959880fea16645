package automatic

// Batch self-play. Games are spread over worker threads and their results
// stream to a CSV file, with an optional binary file of observations.

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"expvar"
	"io"
	"math"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"

	"github.com/domino14/solitaire/config"
	"github.com/domino14/solitaire/game"
	"github.com/domino14/solitaire/stats"
)

var (
	GamesPlayed *expvar.Int
	IsPlaying   *expvar.Int
)

// playing guards StartSelfPlay; IsPlaying mirrors it for expvar.
var playing atomic.Int32

func init() {
	GamesPlayed = expvar.NewInt("gamesPlayed")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

var csvHeader = []string{"gameID", "seed", "actions", "moves", "draws", "reveals",
	"rebuilds", "returns", "won", "capped", "distinct"}

func (rec *GameRecord) csvRow() []string {
	return []string{
		rec.ID,
		rec.Seed,
		strconv.Itoa(rec.Actions),
		strconv.Itoa(rec.Moves),
		strconv.Itoa(rec.Draws),
		strconv.Itoa(rec.Reveals),
		strconv.Itoa(rec.Rebuilds),
		strconv.FormatFloat(rec.Returns, 'f', -1, 64),
		strconv.FormatBool(rec.Won),
		strconv.FormatBool(rec.Capped),
		strconv.Itoa(rec.DistinctPositions),
	}
}

// Summary describes a batch of games.
type Summary struct {
	Games        int     `yaml:"games"`
	Wins         int     `yaml:"wins"`
	WinRate      float64 `yaml:"win_rate"`
	Capped       int     `yaml:"capped"`
	MeanReturns  float64 `yaml:"mean_returns"`
	StdevReturns float64 `yaml:"stdev_returns"`
	CI95Low      float64 `yaml:"ci95_low"`
	CI95High     float64 `yaml:"ci95_high"`
	MinReturns   float64 `yaml:"min_returns"`
	MaxReturns   float64 `yaml:"max_returns"`
	MeanActions  float64 `yaml:"mean_actions"`
}

type summarizer struct {
	returns stats.Statistic
	actions stats.Statistic
	wins    int
	capped  int
}

func (s *summarizer) push(returns float64, actions int, won, capped bool) {
	s.returns.Push(returns)
	s.actions.Push(float64(actions))
	if won {
		s.wins++
	}
	if capped {
		s.capped++
	}
}

func (s *summarizer) summary() *Summary {
	sum := &Summary{
		Games:        s.returns.Iterations(),
		Wins:         s.wins,
		Capped:       s.capped,
		MeanReturns:  s.returns.Mean(),
		StdevReturns: s.returns.Stdev(),
		MinReturns:   s.returns.Min(),
		MaxReturns:   s.returns.Max(),
		MeanActions:  s.actions.Mean(),
	}
	if sum.Games > 0 {
		sum.WinRate = float64(sum.Wins) / float64(sum.Games)
		sum.CI95Low, sum.CI95High = s.returns.ConfidenceInterval(95)
	}
	return sum
}

// writeObservation appends one observation as little-endian float32s.
func writeObservation(w io.Writer, vec []float64) error {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(float32(v)))
	}
	_, err := w.Write(buf)
	return err
}

// ReadObservation reads back one observation written during self-play.
func ReadObservation(r io.Reader) ([]float32, error) {
	vec := make([]float32, game.ObservationSize)
	if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
		return nil, err
	}
	return vec, nil
}

func gameSeeds(cfg *config.Config, numGames int) ([][32]byte, error) {
	if path := cfg.GetString(config.ConfigAutoplaySeedFile); path != "" {
		seeds, err := LoadSeeds(path)
		if err != nil {
			return nil, err
		}
		if len(seeds) < numGames {
			log.Warn().Int("seeds", len(seeds)).Int("requested", numGames).
				Msg("seed file is short; playing fewer games")
			numGames = len(seeds)
		}
		return seeds[:numGames], nil
	}
	master, err := ParseSeed(cfg.GetString(config.ConfigAutoplaySeed))
	if err != nil {
		return nil, err
	}
	log.Info().Str("seed", hex.EncodeToString(master[:])).Msg("self-play master seed")
	return GenerateSeeds(master, numGames), nil
}

type job struct {
	id   string
	seed [32]byte
}

// StartSelfPlay plays numGames random games over the given number of
// threads and blocks until they are done or ctx is canceled. Results go to
// outputFilename as CSV; the per-game seeds go next to it with a .seeds
// suffix and the summary with a .summary.yaml suffix. If the config asks for
// it, every decision node's observation is written to a .obs file and every
// game's history to a SQLite store.
func StartSelfPlay(ctx context.Context, cfg *config.Config, numGames, threads int,
	outputFilename string) (*Summary, error) {

	if !playing.CompareAndSwap(0, 1) {
		return nil, ErrAlreadyPlaying
	}
	IsPlaying.Set(1)
	defer func() {
		IsPlaying.Set(0)
		playing.Store(0)
	}()
	threads = max(threads, 1)

	seeds, err := gameSeeds(cfg, numGames)
	if err != nil {
		return nil, err
	}
	if err := SaveSeeds(seeds, outputFilename+".seeds"); err != nil {
		return nil, err
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	defer logfile.Close()

	var store *ResultStore
	if path := cfg.GetString(config.ConfigAutoplayDB); path != "" {
		store, err = OpenResultStore(path)
		if err != nil {
			return nil, err
		}
		defer store.Close()
	}

	var obsChan chan *[]float64
	var obsfile *os.File
	if cfg.GetBool(config.ConfigAutoplayRecordObservations) {
		obsfile, err = os.Create(outputFilename + ".obs")
		if err != nil {
			return nil, err
		}
		defer obsfile.Close()
		obsChan = make(chan *[]float64, 100)
	}

	log.Debug().Msgf("Starting %v games, %v threads", len(seeds), threads)
	GamesPlayed.Set(0)

	results := make(chan *GameRecord, 100)
	acc := &summarizer{}
	writer := errgroup.Group{}
	writer.Go(func() error {
		// Keep draining results after a write error so workers never block.
		w := csv.NewWriter(logfile)
		werr := w.Write(csvHeader)
		for rec := range results {
			if werr == nil {
				werr = w.Write(rec.csvRow())
			}
			if werr == nil && store != nil {
				// Finished games are kept even if the run is being canceled.
				werr = store.Insert(context.Background(), rec)
			}
			acc.push(rec.Returns, rec.Actions, rec.Won, rec.Capped)
		}
		if werr != nil {
			return werr
		}
		w.Flush()
		return w.Error()
	})
	if obsChan != nil {
		writer.Go(func() error {
			bw := bufio.NewWriter(obsfile)
			var werr error
			for vp := range obsChan {
				if werr == nil {
					werr = writeObservation(bw, *vp)
				}
				game.ObservationPool.Put(vp)
			}
			if werr != nil {
				return werr
			}
			return bw.Flush()
		})
	}

	jobChans := make([]chan job, threads)
	for i := range jobChans {
		jobChans[i] = make(chan job, 100)
	}
	g, gctx := errgroup.WithContext(ctx)

	for t := 0; t < threads; t++ {
		t := t
		jobs := jobChans[t]
		g.Go(func() error {
			r := NewGameRunner()
			r.validate = cfg.GetBool(config.ConfigAutoplayValidate)
			r.keepHistory = store != nil
			if obsChan != nil {
				r.onDecision = func(gm *game.Game) {
					vp := game.ObservationPool.Get().(*[]float64)
					gm.EncodeObservation(*vp)
					obsChan <- vp
				}
			}
			for j := range jobs {
				rec, err := r.PlayGame(gctx, frand.NewCustom(j.seed[:], 1024, 12))
				if err != nil {
					return err
				}
				rec.ID = j.id
				rec.Seed = hex.EncodeToString(j.seed[:])
				results <- rec
				GamesPlayed.Add(1)
			}
			log.Debug().Msgf("Thread %v exiting", t)
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			for _, ch := range jobChans {
				close(ch)
			}
		}()
		for i, seed := range seeds {
			// Game ids come from the seed, so a replayed run keeps its ids.
			id := uuid.NewSHA1(uuid.NameSpaceOID, seed[:]).String()
			w := xxhash.Sum64String(id) % uint64(threads)
			select {
			case jobChans[w] <- job{id: id, seed: seed}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%1000 == 0 {
				log.Info().Msgf("Queued %v games", i+1)
			}
		}
		log.Info().Msg("Finished queueing all games.")
		return nil
	})

	err = g.Wait()
	close(results)
	if obsChan != nil {
		close(obsChan)
	}
	if werr := writer.Wait(); werr != nil && err == nil {
		err = werr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	sum := acc.summary()
	out, merr := yaml.Marshal(sum)
	if merr != nil {
		return nil, merr
	}
	if werr := os.WriteFile(outputFilename+".summary.yaml", out, 0o644); werr != nil {
		return nil, werr
	}
	log.Info().Int("games", sum.Games).Float64("mean-returns", sum.MeanReturns).
		Float64("win-rate", sum.WinRate).Msg("self-play finished")
	return sum, err
}
