package encoding

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Progress is one ffmpeg progress block.
type Progress struct {
	Frame   int
	Total   int
	Percent float64
	OutTime time.Duration
	Speed   float64
	Done    bool
}

// Message renders a human readable progress line.
func (p Progress) Message() string {
	if p.Done {
		return "Encoding complete"
	}
	base := fmt.Sprintf("Encoding frame %d", p.Frame)
	if p.Total > 0 {
		base = fmt.Sprintf("Encoding %.1f%% (%d/%d)", p.Percent, p.Frame, p.Total)
	}
	extras := make([]string, 0, 2)
	if p.OutTime > 0 {
		extras = append(extras, "at "+formatClock(p.OutTime))
	}
	if p.Speed > 0 {
		extras = append(extras, fmt.Sprintf("@ %.1fx", p.Speed))
	}
	if len(extras) == 0 {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(extras, ", "))
}

func formatClock(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	minutes := d / time.Minute
	d -= minutes * time.Minute
	return fmt.Sprintf("%d:%04.1f", minutes, d.Seconds())
}

// ProgressParser accumulates key=value lines from ffmpeg -progress output.
type ProgressParser struct {
	total   int
	current Progress
}

// NewProgressParser returns a parser for an encode of total frames.
func NewProgressParser(total int) *ProgressParser {
	return &ProgressParser{total: total}
}

// Consume reads r until EOF, calling emit at the end of every block.
func (p *ProgressParser) Consume(r io.Reader, emit func(Progress)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if update, ok := p.Line(scanner.Text()); ok {
			emit(update)
		}
	}
	return scanner.Err()
}

// Line feeds one line and reports a completed block.
func (p *ProgressParser) Line(line string) (Progress, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok {
		return Progress{}, false
	}
	value = strings.TrimSpace(value)
	switch key {
	case "frame":
		if n, err := strconv.Atoi(value); err == nil {
			p.current.Frame = n
		}
	case "out_time_us", "out_time_ms":
		// ffmpeg reports microseconds under both keys.
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n >= 0 {
			p.current.OutTime = time.Duration(n) * time.Microsecond
		}
	case "speed":
		if n, err := strconv.ParseFloat(strings.TrimSuffix(value, "x"), 64); err == nil {
			p.current.Speed = n
		}
	case "progress":
		out := p.current
		out.Total = p.total
		out.Done = value == "end"
		if p.total > 0 {
			out.Percent = float64(out.Frame) / float64(p.total) * 100
			if out.Percent > 100 {
				out.Percent = 100
			}
		}
		if out.Done && p.total > 0 {
			out.Percent = 100
		}
		return out, true
	}
	return Progress{}, false
}
