package urlscan

// A small Aho-Corasick automaton over raw bytes. Scheme prefixes are
// ASCII so matching bytes is enough; a fixed 256-way transition table
// per node keeps the hot loop free of map lookups

type acNode struct {
	// trans[b] = next state or -1 if absent
	trans  [256]int
	fail   int
	output []int // prefix IDs ending at this node
}

type acAutomaton struct {
	nodes []acNode
	lens  []int // pattern length by ID
}

func newNode() acNode {
	var n acNode
	for i := range n.trans {
		n.trans[i] = -1
	}
	return n
}

func newAutomaton(patterns ...string) *acAutomaton {
	a := &acAutomaton{nodes: []acNode{newNode()}}
	for id, p := range patterns {
		a.add([]byte(p), id)
	}
	a.build()
	return a
}

func (a *acAutomaton) add(pat []byte, id int) {
	for len(a.lens) <= id {
		a.lens = append(a.lens, 0)
	}
	a.lens[id] = len(pat)
	if len(pat) == 0 {
		return
	}
	state := 0
	for _, b := range pat {
		nxt := a.nodes[state].trans[b]
		if nxt == -1 {
			nxt = len(a.nodes)
			a.nodes[state].trans[b] = nxt
			a.nodes = append(a.nodes, newNode())
		}
		state = nxt
	}
	a.nodes[state].output = append(a.nodes[state].output, id)
}

// build computes failure links breadth first
func (a *acAutomaton) build() {
	q := make([]int, 0, 16)
	for b := range 256 {
		if s := a.nodes[0].trans[b]; s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}

	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := range 256 {
			s := a.nodes[r].trans[b]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].trans[b] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].trans[b]; nxt != -1 {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}
			a.nodes[s].output = append(a.nodes[s].output, a.nodes[a.nodes[s].fail].output...)
		}
	}
}

// findAll calls cb(start, end, id) for each match in ascending end order.
// If cb returns false, scanning stops early
func (a *acAutomaton) findAll(text string, cb func(start, end, id int) bool) {
	state := 0
	for i := 0; i < len(text); i++ {
		b := text[i]
		for state != 0 && a.nodes[state].trans[b] == -1 {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].trans[b]; nxt != -1 {
			state = nxt
		}
		for _, id := range a.nodes[state].output {
			end := i + 1
			if !cb(end-a.lens[id], end, id) {
				return
			}
		}
	}
}
