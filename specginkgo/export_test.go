package specginkgo

import "io"

// SetLogWriter redirects finalize logging away from GinkgoWriter.
func SetLogWriter(s *Spec, w io.Writer) {
	s.log = w
}
