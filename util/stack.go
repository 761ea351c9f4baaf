package util

type Stack[A any] struct {
	items []A
}

func (s *Stack[A]) Push(v A) {
	s.items = append(s.items, v)
}

func (s *Stack[A]) Pop() (ret A, ok bool) {
	if len(s.items) <= 0 {
		return ret, false
	}
	lastIndex := len(s.items) - 1
	defer func() {
		s.items = s.items[:lastIndex]
	}()
	return s.items[len(s.items)-1], true
}

func (s *Stack[A]) Peek() (ret A, ok bool) {
	if len(s.items) <= 0 {
		return ret, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack[A]) Len() int {
	return len(s.items)
}

// All iterates the stack top-first
func (s *Stack[A]) All(yield func(A) bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if !yield(s.items[i]) {
			return
		}
	}
}

func (s *Stack[A]) PopAll() []A {
	defer func() {
		s.items = make([]A, 0)
	}()
	return s.items
}
