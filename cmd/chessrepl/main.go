// Command chessrepl is a text REPL for playing against the engine:
// the human enters moves in coordinate notation, the engine replies
// with its own move and a short evaluation line.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guo-vincent/Classical-Chess-Engine/boardrules"
	"github.com/guo-vincent/Classical-Chess-Engine/engine"
	"github.com/guo-vincent/Classical-Chess-Engine/rules"
	"github.com/guo-vincent/Classical-Chess-Engine/sessionlog"
)

// diagnostics wraps a *log.Logger so the REPL's error/status chatter
// can go to stderr as either plain text (matching the teacher's own
// log.Printf-style CLI) or single-line JSON, while the human-facing
// board/prompt transcript on stdout is left untouched either way.
type diagnostics struct {
	logger *log.Logger
	json   bool
}

func (d diagnostics) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !d.json {
		d.logger.Print(msg)
		return
	}
	line, err := json.Marshal(map[string]string{"message": msg})
	if err != nil {
		d.logger.Print(msg)
		return
	}
	d.logger.Print(string(line))
}

func (d diagnostics) Fatalf(format string, args ...interface{}) {
	d.Printf(format, args...)
	os.Exit(1)
}

func main() {
	depth := flag.Int("depth", 5, "search depth in plies")
	fen := flag.String("fen", boardrules.StartFEN, "starting position FEN")
	sessionDB := flag.String("sessiondb", "", "data directory for session logging (empty disables logging)")
	humanColor := flag.String("side", "white", "human side: white or black")
	logFormat := flag.String("log-format", "text", "diagnostic log format: text or json")
	flag.Parse()

	diag := diagnostics{logger: log.New(os.Stderr, "", log.LstdFlags), json: *logFormat == "json"}
	transcript := log.New(os.Stdout, "", 0)

	pos, err := boardrules.ParseFEN(*fen)
	if err != nil {
		diag.Fatalf("chessrepl: bad starting FEN: %v", err)
	}

	var store *sessionlog.Store
	var gameID string
	if *sessionDB != "" {
		store, err = sessionlog.Open(*sessionDB)
		if err != nil {
			diag.Fatalf("chessrepl: opening session store: %v", err)
		}
		defer store.Close()
		gameID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	eng := engine.New(boardrules.AttackTable)
	human := rules.White
	if strings.EqualFold(*humanColor, "black") {
		human = rules.Black
	}

	reader := bufio.NewScanner(os.Stdin)
	plyIndex := 0

	for {
		if reason, result := pos.IsGameOver(); reason != rules.NotOver {
			transcript.Printf("game over: %s (%s)", reason, result)
			if store != nil {
				if err := store.FinishGame(gameID, resultString(result)); err != nil {
					diag.Printf("chessrepl: finishing session record: %v", err)
				}
			}
			return
		}

		if pos.SideToMove() == human {
			transcript.Print("your move> ")
			if !reader.Scan() {
				return
			}
			text := strings.TrimSpace(reader.Text())
			if text == "quit" || text == "exit" {
				return
			}
			m, err := parseCoordinateMove(pos, text)
			if err != nil {
				transcript.Printf("invalid move %q: %v", text, err)
				continue
			}
			applyAndLog(pos, m, eng, store, gameID, &plyIndex, transcript, diag)
			continue
		}

		m, ok := engineMoveWithRecovery(eng, pos, *depth, diag)
		if !ok {
			diag.Fatalf("chessrepl: engine selected an illegal move twice in a row, aborting")
		}
		if m == rules.NoMove {
			transcript.Print("engine has no legal move")
			return
		}
		applyAndLog(pos, m, eng, store, gameID, &plyIndex, transcript, diag)
	}
}

// engineMoveWithRecovery implements the EngineInternal recovery
// policy: if the selected move is somehow not in the current legal
// move list, clear the transposition cache and retry the root search
// once before giving up.
func engineMoveWithRecovery(eng *engine.Engine, pos *boardrules.Position, depth int, diag diagnostics) (rules.Move, bool) {
	for attempt := 0; attempt < 2; attempt++ {
		start := time.Now()
		result := eng.FindBestMove(pos, depth, pos.SideToMove())
		elapsed := time.Since(start)

		if result.BestMove == rules.NoMove || isLegalMove(pos, result.BestMove) {
			diag.Printf("engine move %s eval=%d depth=%d elapsed=%.2fs", result.BestMove, result.Score, result.Depth, elapsed.Seconds())
			return result.BestMove, true
		}

		diag.Printf("chessrepl: engine selected illegal move %s, clearing cache and retrying", result.BestMove)
		eng.ResetCache()
	}
	return rules.NoMove, false
}

func isLegalMove(pos *boardrules.Position, m rules.Move) bool {
	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == m {
			return true
		}
	}
	return false
}

func applyAndLog(pos *boardrules.Position, m rules.Move, eng *engine.Engine, store *sessionlog.Store, gameID string, plyIndex *int, transcript *log.Logger, diag diagnostics) {
	pos.MakeMove(m)
	transcript.Printf("%s plays %s", pos.SideToMove().Other(), m)

	fen := pos.ToFEN()
	evalScore := eng.StaticEval(pos)
	if store != nil {
		err := store.AppendPly(gameID, sessionlog.Ply{
			Index: *plyIndex,
			Move:  m.String(),
			FEN:   fen,
			Eval:  evalScore,
		})
		if err != nil {
			diag.Printf("chessrepl: session log append failed: %v", err)
		}
	}
	*plyIndex++
}

func resultString(r rules.GameResult) string {
	switch r {
	case rules.WhiteWins:
		return "1-0"
	case rules.BlackWins:
		return "0-1"
	case rules.Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// parseCoordinateMove accepts UCI-style coordinate moves (e2e4,
// e7e8q) and the two castling notations (O-O, O-O-O), resolving them
// against the position's legal move list.
func parseCoordinateMove(pos *boardrules.Position, text string) (rules.Move, error) {
	text = strings.ToUpper(text)
	moves := pos.LegalMoves()

	if text == "O-O" || text == "O-O-O" {
		us := pos.SideToMove()
		var from, to rules.Square
		if us == rules.White {
			from = rules.E1
			if text == "O-O" {
				to = rules.G1
			} else {
				to = rules.C1
			}
		} else {
			from = rules.E8
			if text == "O-O" {
				to = rules.G8
			} else {
				to = rules.C8
			}
		}
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			if m.IsCastling() && m.From() == from && m.To() == to {
				return m, nil
			}
		}
		return rules.NoMove, fmt.Errorf("castling move not legal in this position")
	}

	text = strings.ToLower(text)
	if len(text) < 4 {
		return rules.NoMove, fmt.Errorf("expected coordinate notation like e2e4")
	}
	from, err := rules.ParseSquare(text[0:2])
	if err != nil {
		return rules.NoMove, err
	}
	to, err := rules.ParseSquare(text[2:4])
	if err != nil {
		return rules.NoMove, err
	}
	var promo rules.PieceKind = rules.NoPieceKind
	if len(text) >= 5 {
		promo, err = rules.ParsePromotionChar(text[4])
		if err != nil {
			return rules.NoMove, err
		}
	}

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() && m.Promotion() != promo {
			continue
		}
		return m, nil
	}
	return rules.NoMove, fmt.Errorf("no legal move %s%s", from, to)
}
