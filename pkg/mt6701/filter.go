package mt6701

// rpmFilter is a fixed-window moving average.  Writes overwrite the
// oldest slot; the mean is taken over every slot, so slots never
// written count as zero.
type rpmFilter struct {
	samples []float64
	next    int
}

func newRPMFilter(size int) rpmFilter {
	if size < 1 {
		size = 1
	} else if size > MaxRPMFilterSize {
		size = MaxRPMFilterSize
	}
	return rpmFilter{samples: make([]float64, size)}
}

func (f *rpmFilter) Add(v float64) {
	f.samples[f.next] = v
	f.next = (f.next + 1) % len(f.samples)
}

func (f *rpmFilter) Mean() float64 {
	var sum float64
	for _, v := range f.samples {
		sum += v
	}
	return sum / float64(len(f.samples))
}

func (f rpmFilter) Size() int {
	return len(f.samples)
}
