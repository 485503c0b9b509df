package boardrules

import (
	"testing"

	"github.com/guo-vincent/Classical-Chess-Engine/rules"
)

func TestStartingPositionLegalMoveCount(t *testing.T) {
	pos := NewStartingPosition()
	moves := pos.LegalMoves()
	if got, want := moves.Len(), 20; got != want {
		t.Fatalf("legal moves from start = %d, want %d", got, want)
	}
}

func TestPerftDepth2(t *testing.T) {
	pos := NewStartingPosition()
	got := perft(pos, 2)
	if want := 400; got != want {
		t.Fatalf("perft(2) = %d, want %d", got, want)
	}
}

func perft(pos *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return moves.Len()
	}
	nodes := 0
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		nodes += perft(pos, depth-1)
		pos.UnmakeMove(m, undo)
	}
	return nodes
}

func TestFoolsMateCheckmate(t *testing.T) {
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	reason, result := pos.IsGameOver()
	if reason != rules.Checkmate {
		t.Fatalf("reason = %v, want Checkmate", reason)
	}
	if result != rules.BlackWins {
		t.Fatalf("result = %v, want BlackWins", result)
	}
}

func TestStalemate(t *testing.T) {
	pos, err := ParseFEN("7k/5Q2/8/8/8/8/8/1K6 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	reason, result := pos.IsGameOver()
	if reason != rules.Stalemate {
		t.Fatalf("reason = %v, want Stalemate", reason)
	}
	if result != rules.Draw {
		t.Fatalf("result = %v, want Draw", result)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := pos.ToFEN(); got != fen {
		t.Fatalf("ToFEN round trip = %q, want %q", got, fen)
	}
}

func TestMakeUnmakeRestoresHash(t *testing.T) {
	pos := NewStartingPosition()
	original := pos.Hash()
	moves := pos.LegalMoves()
	m := moves.Get(0)
	undo := pos.MakeMove(m)
	pos.UnmakeMove(m, undo)
	if pos.Hash() != original {
		t.Fatalf("hash after make/unmake = %d, want %d", pos.Hash(), original)
	}
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	from, to := rules.E5, rules.F6
	moves := pos.LegalMoves()
	found := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() == from && m.To() == to && m.IsEnPassant() {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected en passant capture e5xf6 among legal moves")
	}
}
