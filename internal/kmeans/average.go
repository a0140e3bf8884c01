package kmeans

type AverageStore struct {
	sum   float64
	count int
}

func (s *AverageStore) Add(value float64) {
	s.AddN(value, 1)
}

// AddN adds value n times.
func (s *AverageStore) AddN(value float64, n int) {
	s.sum += value * float64(n)
	s.count += n
}

func (s *AverageStore) Average() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

func (s *AverageStore) Count() int { return s.count }

func (s *AverageStore) Sum() float64 { return s.sum }
