package rules

// GameResult is the outcome the core folds into terminal evaluation
// sentinels.
type GameResult uint8

// Possible outcomes of IsGameOver.
const (
	NoResult GameResult = iota
	WhiteWins
	BlackWins
	Draw
)

func (r GameResult) String() string {
	switch r {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}

// GameOverReason explains why IsGameOver reported a terminal state.
type GameOverReason uint8

// Reasons a position can be terminal.
const (
	NotOver GameOverReason = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
)

func (r GameOverReason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	default:
		return "not over"
	}
}

// UndoToken is an opaque handle returned by MakeMove and required by
// the matching UnmakeMove call. Implementations may use it to store
// whatever state is needed to reverse the move; the core never
// inspects its contents.
type UndoToken interface{}

// Position is the Rules capability the evaluation and search core
// consumes. The core never constructs, mutates, or inspects a
// concrete board representation directly — every read goes through
// this interface, so a different rules engine can be substituted
// without touching engine.
//
// Implementations must keep MakeMove/UnmakeMove perfectly balanced:
// every MakeMove on any exit path must be followed by the matching
// UnmakeMove before the caller returns, per §5's ordering guarantee.
type Position interface {
	// SideToMove returns the color to move.
	SideToMove() Color

	// Pieces returns the bitboard of pieces of the given kind and
	// color.
	Pieces(kind PieceKind, c Color) Bitboard

	// Occupied returns the bitboard of all pieces of the given color.
	Occupied(c Color) Bitboard

	// AllOccupied returns the bitboard of all pieces on the board.
	AllOccupied() Bitboard

	// KingSquare returns the square of the given color's king.
	KingSquare(c Color) Square

	// EnPassantSquare returns the en passant target square, or
	// NoSquare if none is available.
	EnPassantSquare() Square

	// Hash returns the Zobrist hash of the current position.
	Hash() uint64

	// IsGameOver reports whether the position is terminal, and why.
	IsGameOver() (GameOverReason, GameResult)

	// LegalMoves returns every fully-legal move for SideToMove.
	LegalMoves() *MoveList

	// MoveKind classifies m against the current position.
	MoveKind(m Move) MoveKind

	// GivesCheck reports whether making m would leave the opponent
	// in check. Implementations must make, test, and unmake without
	// leaking state on any path (see SPEC_FULL.md §9 on the source's
	// quiescence noisy-move leak).
	GivesCheck(m Move) bool

	// InCheck reports whether SideToMove is currently in check.
	InCheck() bool

	// MakeMove applies m and returns an undo token.
	MakeMove(m Move) UndoToken

	// UnmakeMove reverses the effect of the MakeMove call that
	// produced undo.
	UnmakeMove(m Move, undo UndoToken)

	// AttackersByColor returns the bitboard of pieces of color c
	// attacking sq, given the current occupancy.
	AttackersByColor(sq Square, c Color) Bitboard
}

// AttackTable is the stateless leaper/slider attack lookup the Rules
// capability exposes alongside Position, used directly by
// engine.AttackQuery and engine.Evaluator for mobility and
// king-pressure computations that need attacks from an arbitrary
// (square, occupancy) pair rather than from the live position.
type AttackTable interface {
	PawnAttacks(sq Square, c Color) Bitboard
	KnightAttacks(sq Square) Bitboard
	KingAttacks(sq Square) Bitboard
	BishopAttacks(sq Square, occupied Bitboard) Bitboard
	RookAttacks(sq Square, occupied Bitboard) Bitboard
	QueenAttacks(sq Square, occupied Bitboard) Bitboard
}
