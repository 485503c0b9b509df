package sessionlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"golang.org/x/sync/singleflight"
)

// Ply is a single recorded half-move: the move played, the resulting
// FEN, and the engine's evaluation of the position it produced.
type Ply struct {
	Index int     `json:"index"`
	Move  string  `json:"move"`
	FEN   string  `json:"fen"`
	Eval  int     `json:"eval"`
	Time  float64 `json:"time_seconds"`
}

// GameRecord is the append-only log for one played game, the
// persisted equivalent of the text-file move log a bare REPL would
// print to stdout.
type GameRecord struct {
	ID        string `json:"id"`
	StartFEN  string `json:"start_fen"`
	Plies     []Ply  `json:"plies"`
	Result    string `json:"result,omitempty"`
	StartedAt int64  `json:"started_at"`
}

// Stats aggregates outcomes across every recorded game.
type Stats struct {
	GamesPlayed   int     `json:"games_played"`
	WhiteWins     int     `json:"white_wins"`
	BlackWins     int     `json:"black_wins"`
	Draws         int     `json:"draws"`
	TotalPlies    int     `json:"total_plies"`
	AverageEval   float64 `json:"average_eval"`
}

// Store persists game records and derived statistics in an embedded
// BadgerDB instance rooted at a data directory, the way the teacher
// persists user preferences and game stats, but keyed on games rather
// than on a single preferences blob.
type Store struct {
	db    *badger.DB
	group singleflight.Group
}

const (
	gameKeyPrefix = "game:"
	statsKey      = "stats:aggregate"
)

// DefaultDataDir returns the directory session data is stored in when
// no explicit path is given: a "chessrepl" subdirectory of the user's
// config directory, mirroring how the teacher resolves its own
// storage path.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("sessionlog: resolving config dir: %w", err)
	}
	return filepath.Join(base, "chessrepl"), nil
}

// Open opens (creating if necessary) a Store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sessionlog: creating data dir %q: %w", dir, err)
	}
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("sessionlog: opening badger db at %q: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendPly records one played half-move into the game's record,
// creating the record on its first ply.
func (s *Store) AppendPly(gameID string, ply Ply) error {
	return s.db.Update(func(txn *badger.Txn) error {
		record, err := loadGame(txn, gameID)
		if err != nil {
			record = &GameRecord{ID: gameID, StartedAt: nowUnix()}
		}
		record.Plies = append(record.Plies, ply)
		return saveGame(txn, record)
	})
}

// FinishGame marks a game's final result and folds it into the
// aggregate stats.
func (s *Store) FinishGame(gameID, result string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		record, err := loadGame(txn, gameID)
		if err != nil {
			return fmt.Errorf("sessionlog: finishing unknown game %q: %w", gameID, err)
		}
		record.Result = result
		if err := saveGame(txn, record); err != nil {
			return err
		}
		return foldIntoStats(txn, record)
	})
}

// Game returns the record for gameID.
func (s *Store) Game(gameID string) (*GameRecord, error) {
	var record *GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		r, err := loadGame(txn, gameID)
		record = r
		return err
	})
	return record, err
}

// Stats returns the current aggregate statistics. Concurrent callers
// are coalesced through singleflight so a burst of status queries
// against a busy store only costs one database read.
func (s *Store) Stats() (Stats, error) {
	v, err, _ := s.group.Do(statsKey, func() (interface{}, error) {
		var stats Stats
		err := s.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(statsKey))
			if err == badger.ErrKeyNotFound {
				return nil
			}
			if err != nil {
				return err
			}
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, &stats)
			})
		})
		return stats, err
	})
	if err != nil {
		return Stats{}, fmt.Errorf("sessionlog: reading stats: %w", err)
	}
	return v.(Stats), nil
}

func loadGame(txn *badger.Txn, gameID string) (*GameRecord, error) {
	item, err := txn.Get([]byte(gameKeyPrefix + gameID))
	if err != nil {
		return nil, err
	}
	var record GameRecord
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &record)
	})
	return &record, err
}

func saveGame(txn *badger.Txn, record *GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("sessionlog: marshaling game %q: %w", record.ID, err)
	}
	return txn.Set([]byte(gameKeyPrefix+record.ID), data)
}

func foldIntoStats(txn *badger.Txn, record *GameRecord) error {
	var stats Stats
	item, err := txn.Get([]byte(statsKey))
	if err == nil {
		_ = item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stats)
		})
	} else if err != badger.ErrKeyNotFound {
		return err
	}

	stats.GamesPlayed++
	switch record.Result {
	case "1-0":
		stats.WhiteWins++
	case "0-1":
		stats.BlackWins++
	case "1/2-1/2":
		stats.Draws++
	}

	evalSum := stats.AverageEval * float64(stats.TotalPlies)
	for _, ply := range record.Plies {
		evalSum += float64(ply.Eval)
	}
	stats.TotalPlies += len(record.Plies)
	if stats.TotalPlies > 0 {
		stats.AverageEval = evalSum / float64(stats.TotalPlies)
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("sessionlog: marshaling stats: %w", err)
	}
	return txn.Set([]byte(statsKey), data)
}

func nowUnix() int64 { return time.Now().Unix() }
