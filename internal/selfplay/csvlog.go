package selfplay

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"ataxx_go/internal/game"
)

// Header names the columns of a self-play CSV, one row per finished game.
var Header = []string{"id", "winner", "plies", "red", "blue", "think_ms", "moves"}

// Row is r as a CSV record matching Header.
func (r Result) Row() []string {
	winner := "draw"
	if r.Winner != game.Empty {
		winner = r.Winner.String()
	}
	return []string{
		strconv.Itoa(r.ID), winner, strconv.Itoa(r.Plies),
		strconv.Itoa(r.Red), strconv.Itoa(r.Blue),
		strconv.FormatInt(r.Think.Milliseconds(), 10), r.MoveList(),
	}
}

// RepairCSV prepares the self-play CSV at path for appending. A torn or
// malformed line left by an interrupted run is cut off together with
// everything after it. It returns the ids of the games already recorded,
// which need not be contiguous since games finish out of order.
func RepairCSV(path string) (map[int]bool, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	done := map[int]bool{}
	var offset int64
	rdr := bufio.NewReader(f)
	torn := false
	for first := true; ; first = false {
		line, err := rdr.ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			torn = len(line) > 0
			break
		} else if err != nil {
			return nil, err
		}
		rec, perr := csv.NewReader(bytes.NewReader(line)).Read()
		if perr != nil || len(rec) != len(Header) {
			torn = true
			break
		}
		if !first || rec[0] != Header[0] {
			id, err := strconv.Atoi(rec[0])
			if err != nil {
				torn = true
				break
			}
			done[id] = true
		}
		offset += int64(len(line))
	}
	if torn {
		if err := f.Truncate(offset); err != nil {
			return nil, err
		}
		log.Warn().Int64("offset", offset).Int("games", len(done)).Msg("truncated-torn-line")
	}
	return done, nil
}
