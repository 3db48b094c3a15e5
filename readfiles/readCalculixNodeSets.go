package readfiles

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

var ErrNodeSetNotFound = errors.New("node set not found")

/*
ReadCalculixNodeSets returns every node set of the deck keyed by its upper cased name.
Sets are filled from *NSET sections, with or without the GENERATE option, and from the NSET parameter of
*NODE sections. Repeated sections with the same name append to the set, a set may list a previously defined
set by name.
*/
func ReadCalculixNodeSets(r io.Reader) (sets map[string][]types.NodeID, err error) {
	var (
		current  string
		generate bool
		inNodes  bool
	)
	sets = make(map[string][]types.NodeID)
	err = scanDeck(r, func(dl deckLine) (err error) {
		if dl.IsComment() {
			// Comments end a *NODE section, as in ReadCalculixNodes, but not a *NSET
			if inNodes {
				current, inNodes = "", false
			}
			return
		}
		if dl.IsKeyword() {
			keyword, params := dl.Keyword()
			current, generate, inNodes = "", false, false
			switch keyword {
			case "*NSET":
				name, ok := params["NSET"]
				if !ok || name == "" {
					return fmt.Errorf("line %d: *NSET without NSET parameter", dl.Number)
				}
				current = strings.ToUpper(name)
				_, generate = params["GENERATE"]
				if _, ok = sets[current]; !ok {
					sets[current] = []types.NodeID{}
				}
			case "*NODE":
				inNodes = true
				if name, ok := params["NSET"]; ok && name != "" {
					current = strings.ToUpper(name)
				}
			}
			return
		}
		if current == "" {
			return
		}
		var ids []types.NodeID
		switch {
		case inNodes:
			var id types.NodeID
			if id, _, err = parseNodeRecord(dl); err != nil {
				return
			}
			ids = []types.NodeID{id}
		case generate:
			if ids, err = parseGenerateRecord(dl); err != nil {
				return
			}
		default:
			if ids, err = parseSetRecord(dl, sets); err != nil {
				return
			}
		}
		sets[current] = append(sets[current], ids...)
		return
	})
	if err != nil {
		return nil, err
	}
	return
}

// ReadCalculixNodeSet returns the members of the named node set in deck order, the name is case insensitive
func ReadCalculixNodeSet(r io.Reader, name string) (ids []types.NodeID, err error) {
	var (
		sets map[string][]types.NodeID
		ok   bool
	)
	if sets, err = ReadCalculixNodeSets(r); err != nil {
		return
	}
	if ids, ok = sets[strings.ToUpper(name)]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeSetNotFound, name)
	}
	return
}

func ReadCalculixNodeSetFile(filename, name string) (ids []types.NodeID, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCalculixNodeSet(file, name)
}

func parseSetRecord(dl deckLine, sets map[string][]types.NodeID) (ids []types.NodeID, err error) {
	var (
		n int
	)
	for _, f := range dl.dataFields() {
		if f == "" {
			continue
		}
		if n, err = strconv.Atoi(f); err == nil {
			if n <= 0 {
				return nil, fmt.Errorf("line %d: invalid node id %d: node numbers must be positive", dl.Number, n)
			}
			ids = append(ids, types.NodeID(n))
			continue
		}
		nested, ok := sets[strings.ToUpper(f)]
		if !ok {
			return nil, fmt.Errorf("line %d: invalid node set entry %q: %w", dl.Number, f, ErrNodeSetNotFound)
		}
		err = nil
		ids = append(ids, nested...)
	}
	return
}

// parseGenerateRecord expands "start, end[, step]"
func parseGenerateRecord(dl deckLine) (ids []types.NodeID, err error) {
	var (
		fields = dl.dataFields()
		vals   = [3]int{0, 0, 1}
	)
	if len(fields) < 2 || len(fields) > 3 {
		return nil, fmt.Errorf("line %d: invalid generate record %q: expected start, end[, step]", dl.Number, dl.Text)
	}
	for i, f := range fields {
		if vals[i], err = strconv.Atoi(f); err != nil {
			return nil, fmt.Errorf("line %d: invalid generate record: %w", dl.Number, err)
		}
	}
	start, end, step := vals[0], vals[1], vals[2]
	if start <= 0 || step <= 0 || end < start {
		return nil, fmt.Errorf("line %d: invalid generate range %d to %d by %d", dl.Number, start, end, step)
	}
	for n := start; n <= end; n += step {
		ids = append(ids, types.NodeID(n))
	}
	return
}
