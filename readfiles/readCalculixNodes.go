package readfiles

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

// ReadCalculixNodesFile reads the node coordinates of a CalculiX input deck (.inp)
func ReadCalculixNodesFile(filename string) (nt *types.NodeTable, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCalculixNodes(file)
}

/*
ReadCalculixNodes collects the "id, x, y, z" records of every *NODE section in the deck.
A section ends at the next comment or keyword line. When the deck has no *NODE section the returned table is
empty and has SectionFound == false, a malformed record inside a section is an error.
*/
func ReadCalculixNodes(r io.Reader) (nt *types.NodeTable, err error) {
	var (
		inNodes bool
	)
	nt = types.NewNodeTable()
	err = scanDeck(r, func(dl deckLine) error {
		if dl.IsComment() {
			inNodes = false
			return nil
		}
		if dl.IsKeyword() {
			keyword, _ := dl.Keyword()
			inNodes = keyword == "*NODE"
			if inNodes {
				nt.SectionFound = true
			}
			return nil
		}
		if !inNodes {
			return nil
		}
		id, p, err := parseNodeRecord(dl)
		if err != nil {
			return err
		}
		nt.Add(id, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return
}

func parseNodeRecord(dl deckLine) (id types.NodeID, p types.Point, err error) {
	var (
		fields = dl.dataFields()
		n      int
		coords [3]float64
	)
	if len(fields) != 4 {
		err = fmt.Errorf("line %d: invalid node record %q: expected 4 fields (id, x, y, z), got %d",
			dl.Number, dl.Text, len(fields))
		return
	}
	if n, err = strconv.Atoi(fields[0]); err != nil {
		err = fmt.Errorf("line %d: invalid node id: %w", dl.Number, err)
		return
	}
	if n <= 0 {
		err = fmt.Errorf("line %d: invalid node id %d: node numbers must be positive", dl.Number, n)
		return
	}
	for j := 0; j < 3; j++ {
		if coords[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
			err = fmt.Errorf("line %d: invalid coordinate: %w", dl.Number, err)
			return
		}
	}
	id = types.NodeID(n)
	p = types.Point{X: coords[0], Y: coords[1], Z: coords[2]}
	return
}
