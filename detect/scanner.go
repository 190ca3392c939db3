package detect

import (
	"fmt"

	"github.com/cwbudde/algo-modem/dsp/spectrum"
	"github.com/cwbudde/algo-modem/modem"
)

// DefaultMinScore is the score magnitude a slot needs to count as confident.
const DefaultMinScore = 64

// Match is a message found by a Scanner.
type Match struct {
	Payload     []byte
	Corrections int
	// Start and End are the sample positions, counted from the first sample
	// the Scanner received, of the analysed span.
	Start, End int64
}

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithHop sets the analysis hop in samples. Smaller hops find messages that
// do not start on a multiple of the frame length, at the cost of one
// analysis per hop. The hop must divide the frame length; other values are
// ignored.
func WithHop(samples int) ScanOption {
	return func(s *Scanner) {
		n := s.det.cfg.SamplesPerFrame
		if samples > 0 && samples <= n && n%samples == 0 {
			s.hop = samples
		}
	}
}

// WithMinScore sets the confidence a slot score needs. Values outside
// [1, 127] are ignored.
func WithMinScore(score int) ScanOption {
	return func(s *Scanner) {
		if score >= 1 && score <= 127 {
			s.minScore = score
		}
	}
}

// phase is the window history of one analysis grid offset.
type phase struct {
	powers []float64
	next   int
	count  int
}

// Scanner finds fixed-length messages in a continuous PCM stream fed in
// blocks of any size. Every hop it analyses the latest frame-length window
// and, once a whole message worth of windows has been seen on that grid,
// tries to decode them. A span decodes only when at least three quarters of
// its slots are confident and the error correction accepts it; a decoded
// span is consumed so the same message is not reported twice.
//
// Scanner is not safe for concurrent use.
type Scanner struct {
	det        *Detector
	dec        *modem.Decoder
	payloadLen int
	hop        int
	minScore   int

	frames int
	span   int
	stride int

	window   []float64
	pos      int64
	hops     int64
	consumed int64
	phases   []phase

	detected []int8
}

// NewScanner creates a Scanner for payloadLen-byte messages detected with
// det. payloadLen must be between 1 and the configuration's
// MaxPayloadBytes.
func NewScanner(det *Detector, payloadLen int, opts ...ScanOption) (*Scanner, error) {
	if det == nil {
		return nil, fmt.Errorf("detect: nil detector")
	}
	cfg := det.cfg
	if payloadLen < 1 || payloadLen > cfg.MaxPayloadBytes() {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", modem.ErrPayloadTooLarge, payloadLen, cfg.MaxPayloadBytes())
	}
	dec, err := modem.NewDecoder(modem.WithConfig(cfg))
	if err != nil {
		return nil, err
	}

	s := &Scanner{
		det:        det,
		dec:        dec,
		payloadLen: payloadLen,
		hop:        cfg.SamplesPerFrame,
		minScore:   DefaultMinScore,
		frames:     cfg.FramesFor(payloadLen),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	slots := det.table.Slots()
	s.span = s.frames * cfg.Repeat
	s.stride = 2 * slots
	s.window = make([]float64, 0, cfg.SamplesPerFrame)
	s.phases = make([]phase, cfg.SamplesPerFrame/s.hop)
	for i := range s.phases {
		s.phases[i].powers = make([]float64, s.span*s.stride)
	}
	s.detected = make([]int8, s.frames*slots)
	return s, nil
}

// PayloadLen returns the message length the Scanner looks for.
func (s *Scanner) PayloadLen() int { return s.payloadLen }

// Hop returns the analysis hop in samples.
func (s *Scanner) Hop() int { return s.hop }

// Position returns the number of samples received since creation or the
// last Reset.
func (s *Scanner) Position() int64 { return s.pos }

// ProcessBlock feeds pcm to the Scanner and returns the messages completed
// inside it, in stream order.
func (s *Scanner) ProcessBlock(pcm []float64) ([]Match, error) {
	var matches []Match
	n := s.det.cfg.SamplesPerFrame
	for len(pcm) > 0 {
		take := min(n-len(s.window), len(pcm))
		s.window = append(s.window, pcm[:take]...)
		pcm = pcm[take:]
		s.pos += int64(take)
		if len(s.window) < n {
			break
		}

		m, ok, err := s.analyse()
		if err != nil {
			return matches, err
		}
		if ok {
			matches = append(matches, m)
		}

		kept := copy(s.window, s.window[s.hop:])
		s.window = s.window[:kept]
	}
	return matches, nil
}

// Reset drops buffered samples and window history.
func (s *Scanner) Reset() {
	s.window = s.window[:0]
	s.pos = 0
	s.hops = 0
	s.consumed = 0
	s.clearHistory()
}

func (s *Scanner) clearHistory() {
	for i := range s.phases {
		s.phases[i].next = 0
		s.phases[i].count = 0
	}
}

// analyse measures the current window, stores it in its phase history and
// tries a decode over that history.
func (s *Scanner) analyse() (Match, bool, error) {
	d := s.det
	p := &s.phases[s.hops%int64(len(s.phases))]
	s.hops++

	// Windows mostly inside an already decoded span belong to no message.
	n := int64(d.cfg.SamplesPerFrame)
	if s.pos-n < s.consumed-n/2 {
		return Match{}, false, nil
	}

	clear(d.lo)
	clear(d.hi)
	if err := d.accumulate(s.window); err != nil {
		return Match{}, false, err
	}

	slots := len(d.lo)
	entry := p.powers[p.next*s.stride : (p.next+1)*s.stride]
	copy(entry[:slots], d.lo)
	copy(entry[slots:], d.hi)
	p.next = (p.next + 1) % s.span
	if p.count < s.span {
		p.count++
	}
	if p.count < s.span {
		return Match{}, false, nil
	}

	if !s.score(p) {
		return Match{}, false, nil
	}
	payload, corrections, err := s.dec.Recover(len(s.detected), s.detected)
	if err != nil {
		return Match{}, false, nil
	}

	s.clearHistory()
	end := s.pos
	start := end - int64(s.span)*n
	s.consumed = end
	return Match{Payload: payload, Corrections: corrections, Start: start, End: end}, true, nil
}

// score fills s.detected from a full phase history, oldest window first,
// and reports whether enough slots are confident to attempt a decode.
func (s *Scanner) score(p *phase) bool {
	repeat := s.det.cfg.Repeat
	slots := s.stride / 2
	confident := 0
	for f := 0; f < s.frames; f++ {
		for k := 0; k < slots; k++ {
			var lo, hi float64
			for r := 0; r < repeat; r++ {
				w := (p.next + f*repeat + r) % s.span
				lo += p.powers[w*s.stride+k]
				hi += p.powers[w*s.stride+slots+k]
			}
			score := spectrum.PairScore(lo, hi)
			s.detected[f*slots+k] = score
			if abs8(score) >= s.minScore {
				confident++
			}
		}
	}
	return 4*confident >= 3*len(s.detected)
}

func abs8(v int8) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}
