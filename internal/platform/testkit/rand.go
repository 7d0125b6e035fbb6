package testkit

// StubRand replays Values for IntN calls, cycling when exhausted
// Each value is reduced modulo n so it always lands in [0, n)
type StubRand struct {
	Values []int
	i      int
}

// IntN implements the IntN(n) contract of math/rand/v2
func (s *StubRand) IntN(n int) int {
	if len(s.Values) == 0 || n <= 0 {
		return 0
	}
	v := s.Values[s.i%len(s.Values)]
	s.i++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
