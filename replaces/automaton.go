package replaces

// Automaton matches all needles in one pass over the haystack with an
// Aho-Corasick trie. Construction is linear in the total needle length.
type Automaton struct{}

var _ Strategy = Automaton{}

func (Automaton) Find(haystack string, needles map[string]string, options ...Option) []Match {
	return find(automatonFind, haystack, needles, options)
}

func (Automaton) Replace(haystack string, needles map[string]string, options ...Option) string {
	return replace(automatonFind, haystack, needles, options)
}

type trieNode struct {
	children map[rune]int32
	fail     int32
	// nearest node on the failure chain that ends a pattern, -1 if none
	output  int32
	pattern int32
	depth   int32
}

type trie struct {
	nodes []trieNode
}

func newTrie(patterns []pattern) *trie {
	t := &trie{
		nodes: []trieNode{
			{
				output:  -1,
				pattern: -1,
			},
		},
	}

	for i, p := range patterns {
		n := int32(0)
		for _, r := range p.units {
			child, ok := t.nodes[n].children[r]
			if !ok {
				child = int32(len(t.nodes))
				t.nodes = append(t.nodes, trieNode{
					output:  -1,
					pattern: -1,
					depth:   t.nodes[n].depth + 1,
				})
				if t.nodes[n].children == nil {
					t.nodes[n].children = make(map[rune]int32)
				}
				t.nodes[n].children[r] = child
			}
			n = child
		}
		t.nodes[n].pattern = int32(i)
	}

	// failure links, breadth first
	queue := make([]int32, 0, len(t.nodes))
	for _, child := range t.nodes[0].children {
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for r, child := range t.nodes[n].children {
			f := t.nodes[n].fail
			for {
				if next, ok := t.nodes[f].children[r]; ok {
					t.nodes[child].fail = next
					break
				}
				if f == 0 {
					t.nodes[child].fail = 0
					break
				}
				f = t.nodes[f].fail
			}
			fail := t.nodes[child].fail
			if t.nodes[fail].pattern >= 0 {
				t.nodes[child].output = fail
			} else {
				t.nodes[child].output = t.nodes[fail].output
			}
			queue = append(queue, child)
		}
	}

	return t
}

func (t *trie) step(n int32, r rune) int32 {
	for {
		if next, ok := t.nodes[n].children[r]; ok {
			return next
		}
		if n == 0 {
			return 0
		}
		n = t.nodes[n].fail
	}
}

func automatonFind(s *subject, patterns []pattern) (ret []span) {
	t := newTrie(patterns)

	// longest valid pattern per start position
	longest := make([]int32, len(s.units))
	for i := range longest {
		longest[i] = -1
	}
	consider := func(n int32, end int) {
		node := t.nodes[n]
		start := end - int(node.depth)
		if !s.valid(start, end) {
			return
		}
		if cur := longest[start]; cur < 0 || len(patterns[cur].units) < int(node.depth) {
			longest[start] = node.pattern
		}
	}

	state := int32(0)
	for i, r := range s.units {
		state = t.step(state, r)
		n := state
		if t.nodes[n].pattern < 0 {
			n = t.nodes[n].output
		}
		for n > 0 {
			consider(n, i+1)
			n = t.nodes[n].output
		}
	}

	for i := 0; i < len(longest); {
		p := longest[i]
		if p < 0 {
			i++
			continue
		}
		end := i + len(patterns[p].units)
		ret = append(ret, span{
			start:   i,
			end:     end,
			pattern: int(p),
		})
		i = end
	}
	return
}
