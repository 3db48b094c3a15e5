package readfiles

import (
	"bufio"
	"io"
	"strings"
)

// CalculiX decks can carry very long lines, e.g. unwrapped node set listings
const maxDeckLineLength = 1 << 20

type deckLine struct {
	Number int
	Text   string // trimmed
}

func (dl deckLine) IsComment() bool {
	return strings.HasPrefix(dl.Text, "**")
}

func (dl deckLine) IsKeyword() bool {
	return strings.HasPrefix(dl.Text, "*") && !dl.IsComment()
}

/*
Keyword splits a keyword line like "*Nset, nset=Fixed, generate" into the upper cased keyword "*NSET" and
its upper cased parameter names mapped to their values. Values keep their case, parameters without a value
map to the empty string.
*/
func (dl deckLine) Keyword() (keyword string, params map[string]string) {
	fields := strings.Split(dl.Text, ",")
	keyword = strings.ToUpper(strings.Join(strings.Fields(fields[0]), " "))
	params = make(map[string]string)
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if ind := strings.Index(f, "="); ind >= 0 {
			params[strings.ToUpper(strings.TrimSpace(f[:ind]))] = strings.TrimSpace(f[ind+1:])
		} else {
			params[strings.ToUpper(f)] = ""
		}
	}
	return
}

// dataFields splits a data line on commas, a trailing comma does not produce an empty field
func (dl deckLine) dataFields() (fields []string) {
	fields = strings.Split(dl.Text, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) > 1 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return
}

// scanDeck calls fn for every non blank line of the deck, stopping at the first error returned by fn
func scanDeck(r io.Reader, fn func(dl deckLine) error) (err error) {
	var (
		lineNo int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxDeckLineLength)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err = fn(deckLine{Number: lineNo, Text: line}); err != nil {
			return
		}
	}
	return scanner.Err()
}
