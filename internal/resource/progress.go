package resource

import (
	"io"
	"math"
)

// ProgressReader reports the loaded fraction of a stream as a whole percent.
// OnProgress is called only when the percent changes. With an unknown total
// nothing is reported until EOF, which reports 100.
type ProgressReader struct {
	R          io.Reader
	Total      int64
	OnProgress func(percent int)

	loaded int64
	last   int
	done   bool
}

// NewProgressReader wraps r.
func NewProgressReader(r io.Reader, total int64, fn func(percent int)) *ProgressReader {
	return &ProgressReader{R: r, Total: total, OnProgress: fn, last: -1}
}

func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.R.Read(b)
	p.loaded += int64(n)
	if p.Total > 0 {
		p.report(Percent(p.loaded, p.Total))
	}
	if err == io.EOF && !p.done {
		p.done = true
		p.report(100)
	}
	return n, err
}

func (p *ProgressReader) report(pct int) {
	if p.OnProgress == nil || pct == p.last {
		return
	}
	p.last = pct
	p.OnProgress(pct)
}

// Percent returns round(loaded/total*100), clamped to [0, 100].
func Percent(loaded, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(loaded) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
