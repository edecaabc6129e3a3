package sgf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"termthello/othello"
)

// Errors returned while reading records.
var (
	ErrNotSGF      = errors.New("not an SGF record")
	ErrNotOthello  = errors.New("not an 8x8 Othello record")
	ErrOutOfTurn   = errors.New("move out of turn")
	ErrIllegalMove = errors.New("illegal move in record")
)

// GameInfo holds metadata parsed from an SGF header.
type GameInfo struct {
	BoardSize   int
	PlayerBlack string
	PlayerWhite string
	Date        string
	Name        string
	Result      string
	MoveCount   int // placed pieces, passes excluded
}

// ParseHeader extracts metadata from the root node.
func ParseHeader(content string) (*GameInfo, error) {
	if !strings.Contains(content, "(;") {
		return nil, ErrNotSGF
	}
	props := parseProperties(content)

	boardSize := BoardSize
	if v, ok := props["SZ"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad SZ[%s]: %w", v, err)
		}
		boardSize = n
	}

	info := &GameInfo{
		BoardSize:   boardSize,
		PlayerBlack: props["PB"],
		PlayerWhite: props["PW"],
		Date:        props["DT"],
		Name:        props["GN"],
		Result:      props["RE"],
		MoveCount:   countMoves(content),
	}
	return info, nil
}

// ParseMoves returns every move node after the root, passes included.
func ParseMoves(content string) ([]Move, error) {
	if !strings.Contains(content, "(;") {
		return nil, ErrNotSGF
	}
	var moves []Move
	for _, node := range parseNodes(content) {
		m, ok, err := parseMoveNode(node)
		if err != nil {
			return nil, err
		}
		if ok {
			moves = append(moves, m)
		}
	}
	return moves, nil
}

// Replay plays a record from the starting position. Pass nodes are checked
// only through the turn order: every placed piece must belong to the player
// the rules give the move to.
func Replay(content string) (*othello.Game, error) {
	info, err := ParseHeader(content)
	if err != nil {
		return nil, err
	}
	if info.BoardSize != BoardSize {
		return nil, fmt.Errorf("%w: SZ[%d]", ErrNotOthello, info.BoardSize)
	}
	if gm, ok := parseProperties(content)["GM"]; ok && gm != "2" {
		return nil, fmt.Errorf("%w: GM[%s]", ErrNotOthello, gm)
	}
	moves, err := ParseMoves(content)
	if err != nil {
		return nil, err
	}

	game := othello.NewGame()
	for i, m := range moves {
		if m.IsPass() {
			continue
		}
		if err := playRecorded(game, m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return game, nil
}

func playRecorded(game *othello.Game, m Move) error {
	at := othello.Coordinates{Row: m.Y, Column: m.X}
	if game.Status() != othello.InProgress {
		return fmt.Errorf("%w: %s after the game ended", ErrIllegalMove, at)
	}
	if want := playerOf(game.CurrentPlayer()); m.Color != want {
		return fmt.Errorf("%w: %s played %s, %s to move", ErrOutOfTurn, colorChar(m.Color), at, colorChar(want))
	}
	if res := game.PlayMove(m.Y, m.X, 0); !res.Valid {
		return fmt.Errorf("%w: %s %s", ErrIllegalMove, colorChar(m.Color), at)
	}
	return nil
}

// ReplayMoves plays a list of moves for whichever side is to move. When rec
// is not nil every move is added to it, and the result is set once the
// game is over.
func ReplayMoves(moves []othello.Coordinates, rec *GameRecord) (*othello.Game, error) {
	game := othello.NewGame()
	for i, at := range moves {
		m := Move{X: at.Column, Y: at.Row, Color: playerOf(game.CurrentPlayer())}
		if err := playRecorded(game, m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if rec != nil {
			if err := rec.AddMove(m.X, m.Y, m.Color); err != nil {
				return nil, fmt.Errorf("move %d: %w", i+1, err)
			}
		}
	}
	if rec != nil && game.Status() != othello.InProgress {
		board := game.Board()
		rec.SetResult(board.CountPieces(othello.Black), board.CountPieces(othello.White), true)
	}
	return game, nil
}

// ParseMoveList reads moves in board notation separated by spaces or commas,
// e.g. "d3 c5, f6".
func ParseMoveList(s string) ([]othello.Coordinates, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	moves := make([]othello.Coordinates, 0, len(fields))
	for _, f := range fields {
		c, err := othello.ParseCoordinates(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, c)
	}
	return moves, nil
}

func playerOf(p othello.Player) int {
	if p == othello.White {
		return White
	}
	return Black
}

// parseProperties extracts KEY[value] pairs from the root node of an SGF string.
func parseProperties(content string) map[string]string {
	props := make(map[string]string)

	// Find the root node: starts after "(;"
	start := strings.Index(content, "(;")
	if start == -1 {
		return props
	}
	start += 2 // skip "(;"

	// Root node ends at the next ";" or ")" outside a value
	end := len(content)
	for i := start; i < len(content); i++ {
		if content[i] == '[' {
			i = skipValue(content, i)
			continue
		}
		if content[i] == ';' || content[i] == ')' {
			end = i
			break
		}
	}

	extractProps(content[start:end], props)
	return props
}

// skipValue returns the index of the ']' closing the value opened at i.
func skipValue(content string, i int) int {
	i++
	for i < len(content) && content[i] != ']' {
		if content[i] == '\\' && i+1 < len(content) {
			i++
		}
		i++
	}
	return i
}

// extractProps parses KEY[value] pairs from a node string into the map.
func extractProps(node string, props map[string]string) {
	i := 0
	for i < len(node) {
		// Skip whitespace
		for i < len(node) && (node[i] == ' ' || node[i] == '\n' || node[i] == '\r' || node[i] == '\t') {
			i++
		}
		if i >= len(node) {
			break
		}

		// Read property identifier (uppercase letters)
		keyStart := i
		for i < len(node) && node[i] >= 'A' && node[i] <= 'Z' {
			i++
		}
		if i == keyStart {
			i++
			continue
		}
		key := node[keyStart:i]

		for i < len(node) && node[i] == '[' {
			end := skipValue(node, i)
			props[key] = unescape(node[i+1 : min(end, len(node))]) // last value wins
			i = end + 1
		}
	}
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// countMoves counts the placed pieces (;B[xy] or ;W[xy]) in the SGF.
func countMoves(content string) int {
	count := 0
	for _, node := range parseNodes(content) {
		if m, ok, err := parseMoveNode(node); err == nil && ok && !m.IsPass() {
			count++
		}
	}
	return count
}

// parseNodes returns all node strings after the root node.
func parseNodes(content string) []string {
	var nodes []string

	start := strings.Index(content, "(;")
	if start == -1 {
		return nodes
	}

	// Skip root node to find the next ";"
	i := start + 2
	for i < len(content) && content[i] != ';' {
		if content[i] == '[' {
			i = skipValue(content, i)
		}
		i++
	}

	for i < len(content) {
		if content[i] != ';' {
			i++
			continue
		}
		nodeStart := i
		i++
		// Read until next ';' or ')'
		for i < len(content) && content[i] != ';' && content[i] != ')' {
			if content[i] == '[' {
				i = skipValue(content, i)
			}
			i++
		}
		nodes = append(nodes, content[nodeStart:min(i, len(content))])
	}

	return nodes
}

// parseMoveNode extracts a move from a node like ";B[dc]". ok is false for
// nodes that carry no move; a move with a malformed coordinate is an error.
func parseMoveNode(node string) (m Move, ok bool, err error) {
	node = strings.TrimSpace(node)
	if len(node) < 2 || node[0] != ';' {
		return Move{}, false, nil
	}

	switch node[1] {
	case 'B':
		m.Color = Black
	case 'W':
		m.Color = White
	default:
		return Move{}, false, nil
	}

	rest := strings.TrimSpace(node[2:])
	if !strings.HasPrefix(rest, "[") {
		return Move{}, false, nil
	}
	end := strings.Index(rest, "]")
	if end == -1 {
		return Move{}, false, fmt.Errorf("%w: unterminated %s", ErrNotSGF, node)
	}

	coord := rest[1:end]
	// "tt" is the FF[3] spelling of a pass.
	if coord == "" || coord == "tt" {
		m.X, m.Y = -1, -1
		return m, true, nil
	}
	if len(coord) != 2 {
		return Move{}, false, fmt.Errorf("%w: bad coordinate %q", ErrNotSGF, coord)
	}
	m.X = int(coord[0] - 'a')
	m.Y = int(coord[1] - 'a')
	if m.X < 0 || m.X >= BoardSize || m.Y < 0 || m.Y >= BoardSize {
		return Move{}, false, fmt.Errorf("%w: coordinate %q off board", ErrNotOthello, coord)
	}
	return m, true, nil
}
