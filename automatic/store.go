package automatic

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/domino14/solitaire/game"
	"github.com/domino14/solitaire/move"
)

const schema = `CREATE TABLE IF NOT EXISTS games (
	id      TEXT PRIMARY KEY,
	seed    TEXT NOT NULL,
	returns REAL NOT NULL,
	won     INTEGER NOT NULL,
	capped  INTEGER NOT NULL,
	actions INTEGER NOT NULL,
	history TEXT NOT NULL
)`

// ResultStore keeps self-play games in a SQLite file. A game is stored as
// its action history, which is enough to replay it exactly.
type ResultStore struct {
	db *sql.DB
}

func OpenResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

func encodeHistory(h []move.Action) string {
	strs := make([]string, len(h))
	for i, a := range h {
		strs[i] = strconv.Itoa(int(a))
	}
	return strings.Join(strs, ",")
}

func decodeHistory(s string) ([]move.Action, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	h := make([]move.Action, len(fields))
	for i, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		h[i] = move.Action(id)
	}
	return h, nil
}

func (s *ResultStore) Insert(ctx context.Context, rec *GameRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO games (id, seed, returns, won, capped, actions, history)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.Returns, rec.Won, rec.Capped, rec.Actions,
		encodeHistory(rec.History))
	return err
}

func (s *ResultStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n)
	return n, err
}

// History returns the stored action history of a game.
func (s *ResultStore) History(ctx context.Context, id string) ([]move.Action, error) {
	var h string
	err := s.db.QueryRowContext(ctx, `SELECT history FROM games WHERE id = ?`, id).Scan(&h)
	if err != nil {
		return nil, err
	}
	return decodeHistory(h)
}

// Replay rebuilds a game from its action history.
func Replay(history []move.Action) (*game.Game, error) {
	g := game.NewGame()
	if err := g.ApplyActions(history...); err != nil {
		return nil, err
	}
	return g, nil
}
