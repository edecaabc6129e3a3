package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"termthello/engine/local"
	"termthello/othello"
	"termthello/sgf"
)

// runHeadless replays the --replay move list or the --replay-sgf record and
// prints the final board state as JSON. A move list also prints its SGF
// record.
func runHeadless(w io.Writer) error {
	var game *othello.Game
	var rec *sgf.GameRecord

	if opts.ReplaySGF != "" {
		content, err := readInput(opts.ReplaySGF)
		if err != nil {
			return err
		}
		info, err := sgf.ParseHeader(content)
		if err != nil {
			return err
		}
		if game, err = sgf.Replay(content); err != nil {
			return err
		}
		fmt.Fprintf(w, "Black: %s  White: %s  Date: %s  Result: %s  Moves: %d\n",
			info.PlayerBlack, info.PlayerWhite, info.Date, info.Result, info.MoveCount)
	} else {
		moves, err := sgf.ParseMoveList(opts.Replay)
		if err != nil {
			return err
		}
		rec = sgf.NewGameRecord("Black", "White", uuid.NewString())
		if game, err = sgf.ReplayMoves(moves, rec); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(local.StateOf(game), "", "  ")
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return err
	}
	if rec != nil {
		if _, err := rec.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

// readInput reads a whole file, or stdin for "-".
func readInput(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read record: %w", err)
	}
	return string(data), nil
}
