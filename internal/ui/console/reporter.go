package console

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

// Reporter prints rendered events and pauses after each one. The pause is
// pacing for a human reader only.
type Reporter struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *Renderer
	delay    time.Duration
	sleep    func(time.Duration)
}

type Option func(*Reporter)

func WithDelay(d time.Duration) Option {
	return func(p *Reporter) { p.delay = d }
}

func WithRenderer(r *Renderer) Option {
	return func(p *Reporter) {
		if r != nil {
			p.renderer = r
		}
	}
}

// WithSleep is useful for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Reporter) { p.sleep = sleep }
}

func NewReporter(w io.Writer, opts ...Option) *Reporter {
	p := &Reporter{
		w:        w,
		renderer: NewRenderer(DefaultTheme()),
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.Reporter = (*Reporter)(nil)

func (p *Reporter) Report(ev domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := p.renderer.Render(ev)
	if out == "" {
		return
	}
	_, _ = fmt.Fprint(p.w, out)
	if p.delay > 0 {
		p.sleep(p.delay)
	}
}

// JSONReporter writes one JSON object per event.
type JSONReporter struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w)}
}

var _ ports.Reporter = (*JSONReporter)(nil)

func (j *JSONReporter) Report(ev domain.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return
	}
	j.err = j.enc.Encode(ev)
}

// Err returns the first write error, if any.
func (j *JSONReporter) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// New picks the reporter for an output format.
func New(w io.Writer, format string, delay time.Duration) (ports.Reporter, error) {
	switch format {
	case domain.FormatPretty, "":
		return NewReporter(w, WithDelay(delay)), nil
	case domain.FormatPlain:
		return NewReporter(w, WithDelay(delay), WithRenderer(NewRenderer(PlainTheme()))), nil
	case domain.FormatJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, &domain.OpError{
			Op:   "console.new",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unsupported format %q (expected pretty|plain|json): %w", format, domain.ErrInvalidConfig),
		}
	}
}
