package sessionlog

import "testing"

func TestAppendPlyAndFinishGameUpdatesStats(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	const gameID = "game-1"
	if err := store.AppendPly(gameID, Ply{Index: 0, Move: "e2e4", FEN: "startpos-after-e4", Eval: 25}); err != nil {
		t.Fatalf("AppendPly: %v", err)
	}
	if err := store.AppendPly(gameID, Ply{Index: 1, Move: "e7e5", FEN: "startpos-after-e5", Eval: 10}); err != nil {
		t.Fatalf("AppendPly: %v", err)
	}

	record, err := store.Game(gameID)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if len(record.Plies) != 2 {
		t.Fatalf("plies recorded = %d, want 2", len(record.Plies))
	}

	if err := store.FinishGame(gameID, "1-0"); err != nil {
		t.Fatalf("FinishGame: %v", err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.GamesPlayed != 1 {
		t.Fatalf("games played = %d, want 1", stats.GamesPlayed)
	}
	if stats.WhiteWins != 1 {
		t.Fatalf("white wins = %d, want 1", stats.WhiteWins)
	}
	if stats.TotalPlies != 2 {
		t.Fatalf("total plies = %d, want 2", stats.TotalPlies)
	}
}
