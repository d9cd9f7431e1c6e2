package game

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/notnil/chess"
)

// Skipped describes a game segment that could not be decoded.
type Skipped struct {
	// Index is the zero-based position of the segment in the input.
	Index int
	Err   error
}

// Batch is the result of parsing a PGN stream.
type Batch struct {
	Records []Record
	Skipped []Skipped
}

// Parse reads every game in a PGN stream.
// A game that fails to decode is recorded in Batch.Skipped and does not
// stop the rest of the stream from being read. Only read errors are returned.
func Parse(r io.Reader) (*Batch, error) {
	segments, err := Split(r)
	if err != nil {
		return nil, err
	}

	batch := &Batch{Records: make([]Record, 0, len(segments))}
	for i, text := range segments {
		rec, err := decode(text)
		if err != nil {
			batch.Skipped = append(batch.Skipped, Skipped{Index: i, Err: err})
			continue
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch, nil
}

// tagLine matches a tag pair such as [White "SlowMate"].
var tagLine = regexp.MustCompile(`^\[\w+\s+"`)

// Split separates a PGN stream into per-game text segments.
// A new game starts at a tag line that follows movetext. Comments are
// removed from movetext, so a comment line that begins with "[" (such as
// [%eval ...] or [%clk ...]) never starts a game.
func Split(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long movetext lines.
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var (
		segments []string
		gameText strings.Builder
		inMoves  bool
		text     movetext
	)

	flush := func() {
		if strings.TrimSpace(gameText.String()) != "" {
			segments = append(segments, gameText.String())
		}
		gameText.Reset()
		inMoves = false
	}

	for scanner.Scan() {
		line := scanner.Text()

		if !text.inComment && tagLine.MatchString(strings.TrimSpace(line)) {
			if inMoves {
				flush()
			}
			gameText.WriteString(line)
			gameText.WriteString("\n")
			continue
		}

		kept := text.strip(line)
		if strings.TrimSpace(kept) != "" {
			inMoves = true
		}
		gameText.WriteString(kept)
		gameText.WriteString("\n")
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}
	return segments, nil
}

// movetext removes {...} and ; comments, which may span lines.
type movetext struct {
	inComment bool
}

func (m *movetext) strip(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case m.inComment:
			if ch == '}' {
				m.inComment = false
			}
		case ch == '{':
			m.inComment = true
			b.WriteByte(' ')
		case ch == ';':
			return b.String()
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func decode(pgnText string) (rec Record, err error) {
	// The decoder has panicked on malformed movetext in the past.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding game: %v", r)
		}
	}()

	pgnFunc, err := chess.PGN(strings.NewReader(pgnText))
	if err != nil {
		return Record{}, err
	}
	return FromChess(chess.NewGame(pgnFunc)), nil
}
