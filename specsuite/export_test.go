package specsuite

import "github.com/roach88/specbecause/internal/report"

// FinalizeTo runs the TearDownTest reporting against t.
func FinalizeTo(s *Suite, t report.T) {
	s.finalize(t)
}
