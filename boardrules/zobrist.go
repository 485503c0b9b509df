package boardrules

import "github.com/guo-vincent/Classical-Chess-Engine/rules"

// Zobrist hash keys, generated at init time from a fixed-seed PRNG
// so hashes are reproducible across runs (needed for deterministic
// transposition-table tests, property 6 in SPEC_FULL.md §8).
var (
	zobristPiece      [2][6][64]uint64
	zobristEnPassant  [8]uint64
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

type splitmix64 struct{ state uint64 }

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func initZobrist() {
	rng := &splitmix64{state: 0x98F107A2BEEF1234}
	for c := rules.White; c <= rules.Black; c++ {
		for pk := rules.Pawn; pk <= rules.King; pk++ {
			for sq := rules.A1; sq <= rules.H8; sq++ {
				zobristPiece[c][pk][sq] = rng.next()
			}
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}
