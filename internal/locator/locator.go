// Package locator maps displayed graph elements back to token addresses.
package locator

import (
	"fmt"
	"strconv"

	"github.com/kobzarvs/depedit/internal/sentence"
)

// Node id prefixes used by the graph renderer.
const (
	PrefixForm       = "nf"
	PrefixSupertoken = "st"
)

// Graph is the structural view of the rendered graph.
type Graph interface {
	// Parent returns the compound parent of a node.
	Parent(id string) (string, bool)
	// Children returns the direct children of a compound node, in order.
	Children(id string) []string
}

// Locate resolves the node nodeID to an address in s. A node whose
// grandparent is a supertoken node addresses a child of that group; any
// other node is matched by its numeric id against the top-level tokens.
func Locate(g Graph, nodeID string, s *sentence.Sentence) (sentence.Address, error) {
	parent, hasParent := g.Parent(nodeID)
	if hasParent {
		if grand, ok := g.Parent(parent); ok && isKind(grand, PrefixSupertoken) {
			return locateChild(g, nodeID, parent, grand, s)
		}
	}

	id, err := number(nodeID)
	if err != nil {
		return sentence.Address{}, err
	}
	for i, el := range s.Elements {
		if t, ok := el.(*sentence.Token); ok && t.ID == id {
			return sentence.TopLevel(i), nil
		}
	}
	return sentence.Address{}, fmt.Errorf("%w: node %s", sentence.ErrNotFound, nodeID)
}

func locateChild(g Graph, nodeID, parent, grand string, s *sentence.Sentence) (sentence.Address, error) {
	outer, err := number(grand)
	if err != nil {
		return sentence.Address{}, err
	}
	if outer < 0 || outer >= s.Len() {
		return sentence.Address{}, fmt.Errorf("%w: supertoken %s", sentence.ErrNotFound, grand)
	}
	m, ok := s.Elements[outer].(*sentence.MultiwordToken)
	if !ok {
		return sentence.Address{}, fmt.Errorf("%w: %s is not a multiword group", sentence.ErrNotFound, grand)
	}
	for i, child := range g.Children(grand) {
		if child != nodeID && child != parent {
			continue
		}
		if i >= len(m.Tokens) {
			break
		}
		return sentence.Sub(outer, i), nil
	}
	return sentence.Address{}, fmt.Errorf("%w: node %s under %s", sentence.ErrNotFound, nodeID, grand)
}

// ByID resolves a token id, looking inside multiword groups too.
func ByID(s *sentence.Sentence, id int) (sentence.Address, error) {
	for i, el := range s.Elements {
		switch el := el.(type) {
		case *sentence.Token:
			if el.ID == id {
				return sentence.TopLevel(i), nil
			}
		case *sentence.MultiwordToken:
			for j, t := range el.Tokens {
				if t.ID == id {
					return sentence.Sub(i, j), nil
				}
			}
		}
	}
	return sentence.Address{}, fmt.Errorf("%w: token %d", sentence.ErrNotFound, id)
}

// NodeID returns the renderer id of the form node for token id.
func NodeID(id int) string {
	return PrefixForm + strconv.Itoa(id)
}

func isKind(id, prefix string) bool {
	return len(id) > len(prefix) && id[:len(prefix)] == prefix
}

func number(nodeID string) (int, error) {
	if len(nodeID) < 3 {
		return 0, fmt.Errorf("%w: node %q", sentence.ErrNotFound, nodeID)
	}
	n, err := strconv.Atoi(nodeID[2:])
	if err != nil {
		return 0, fmt.Errorf("%w: node %q", sentence.ErrNotFound, nodeID)
	}
	return n, nil
}
