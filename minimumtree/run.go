package minimumtree

// env holds the integers bound so far, the most recent last. Each search
// branch gets its own copy: push never writes into a shared backing array.
type env []int64

func (e env) push(v int64) env {
	return append(e[:len(e):len(e)], v)
}

// at returns the value bound index positions before the most recent one.
func (e env) at(index int) (int64, bool) {
	if index < 0 || index >= len(e) {
		return 0, false
	}

	return e[len(e)-1-index], true
}

type state struct {
	offset int
	env    env
}

type outcome int

const (
	failed outcome = iota
	matched
	// suspended means a placeholder was reached; the state is where it stands.
	suspended
)

// run matches n against tokens from s.
func run(n node, tokens []token, s state) (state, outcome) {
	switch n := n.(type) {
	case placeholder:
		return s, suspended
	case eof:
		return s, matched
	case intNode:
		if s.offset >= len(tokens) || tokens[s.offset].kind != intToken {
			return s, failed
		}

		return run(n.next, tokens, state{offset: s.offset + 1, env: s.env.push(tokens[s.offset].value)})
	case stringNode:
		// an int token is also a valid string
		if s.offset >= len(tokens) || tokens[s.offset].kind == newlineToken {
			return s, failed
		}

		return run(n.next, tokens, state{offset: s.offset + 1, env: s.env})
	case newlineNode:
		if s.offset >= len(tokens) || tokens[s.offset].kind != newlineToken {
			return s, failed
		}

		return run(n.next, tokens, state{offset: s.offset + 1, env: s.env})
	case loopNode:
		bound, ok := s.env.at(n.index)
		if !ok {
			return s, failed
		}

		// a loop running zero times would skip the placeholders in its body
		count := bound + int64(n.delta)
		if count <= 0 {
			return s, failed
		}

		for range count {
			r, o := run(n.body, tokens, s)
			if o != matched {
				return r, o
			}

			s = state{offset: r.offset, env: s.env}
		}

		return run(n.next, tokens, s)
	default:
		return s, failed
	}
}
