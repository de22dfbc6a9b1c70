package minimumtree

import (
	"context"

	"github.com/emirpasic/gods/queues/priorityqueue"
	log "github.com/sirupsen/logrus"
)

// DefaultIterationLimit bounds the number of candidates expanded by a search.
const DefaultIterationLimit = 10000

type candidate struct {
	size int
	seq  int
	node node
}

func byCandidateOrder(a, b interface{}) int {
	x, y := a.(candidate), b.(candidate)

	switch {
	case x.size != y.size:
		return x.size - y.size
	default:
		return x.seq - y.seq
	}
}

type searcher struct {
	instances [][]token
	envs      []env
	limit     int
}

// search pops the smallest candidate until one matches every instance to the
// end without placeholders. It returns nil when the queue runs dry or the
// iteration limit is reached.
func (s *searcher) search(ctx context.Context, initial node) (node, error) {
	queue := priorityqueue.NewWith(byCandidateOrder)
	seq := 0

	push := func(n node) {
		queue.Enqueue(candidate{size: n.treeSize(), seq: seq, node: n})
		seq++
	}

	push(initial)

	for iteration := 0; !queue.Empty(); iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		popped, _ := queue.Dequeue()
		cur := popped.(candidate).node

		states, ok := s.matchAll(cur)
		if !ok {
			continue
		}

		if s.allAtEnd(states) && countPlaceholders(cur) == 0 {
			log.WithField("tree", cur.String()).WithField("iterations", iteration).Debug("found minimum tree")
			return cur, nil
		}

		for _, next := range s.nextPossibleNodes(states) {
			replaced, ok := replaceFirstPlaceholder(cur, next)
			if !ok {
				break
			}

			push(replaced)
		}

		if iteration >= s.limit {
			log.WithField("limit", s.limit).Debug("minimum tree search reached the iteration limit")
			return nil, nil
		}
	}

	log.Debug("minimum tree search exhausted its candidates")

	return nil, nil
}

// matchAll runs n on every instance. Each run must either be suspended at a
// placeholder or match to the end of its tokens.
func (s *searcher) matchAll(n node) ([]state, bool) {
	states := make([]state, len(s.instances))

	for i, tokens := range s.instances {
		st, o := run(n, tokens, state{env: s.envs[i]})

		switch o {
		case failed:
			return nil, false
		case matched:
			if st.offset != len(tokens) {
				return nil, false
			}
		}

		states[i] = st
	}

	return states, true
}

func (s *searcher) allAtEnd(states []state) bool {
	for i, st := range states {
		if st.offset != len(s.instances[i]) {
			return false
		}
	}

	return true
}

func (s *searcher) allNext(states []state, pred func(token) bool) bool {
	for i, st := range states {
		if !pred(s.instances[i][st.offset]) {
			return false
		}
	}

	return true
}

// nextPossibleNodes lists the replacements of the first placeholder that are
// consistent with the tokens every instance stands at.
func (s *searcher) nextPossibleNodes(states []state) []node {
	candidates := []node{eof{}}

	for i, st := range states {
		if st.offset == len(s.instances[i]) {
			return candidates
		}
	}

	loops := func(body node) []node {
		var nodes []node

		for index := range len(states[0].env) {
			for delta := -1; delta <= 1; delta++ {
				ok := true

				for _, st := range states {
					if v, bound := st.env.at(index); !bound || v+int64(delta) < 0 {
						ok = false
						break
					}
				}

				if ok {
					nodes = append(nodes, loopNode{index: index, delta: delta, body: body, next: placeholder{}})
				}
			}
		}

		return nodes
	}

	switch {
	case s.allNext(states, func(t token) bool { return t.kind == intToken }):
		candidates = append(candidates, intNode{next: placeholder{}})
		candidates = append(candidates, loops(intNode{next: placeholder{}})...)
	case s.allNext(states, func(t token) bool { return t.kind != newlineToken }):
		candidates = append(candidates, stringNode{next: placeholder{}})
		candidates = append(candidates, loops(stringNode{next: placeholder{}})...)
	case s.allNext(states, func(t token) bool { return t.kind == newlineToken }):
		// looping over newlines only adds degenerate trees
		candidates = append(candidates, newlineNode{next: placeholder{}})
	}

	return candidates
}
