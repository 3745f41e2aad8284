package profiler

import (
	"strings"
	"testing"
	"time"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	clock := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithInterval(time.Second),
		WithClock(func() time.Time { return clock }),
		WithLogger(func(format string, args ...any) { lines = append(lines, format) }),
	)

	for range 59 {
		clock = clock.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatal("logged before the interval elapsed")
		}
	}
	clock = clock.Add(410 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("did not log after the interval elapsed")
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "[Profiler]") {
		t.Fatalf("log lines\nhave %q\nwant one [Profiler] line", lines)
	}

	s := p.Last()
	if s.Frames != 60 || s.FPS != 60 {
		t.Fatalf("stats\nhave %d frames at %.2f fps\nwant 60 at 60", s.Frames, s.FPS)
	}
	if p.TotalFrames() != 60 {
		t.Fatalf("total frames\nhave %d\nwant 60", p.TotalFrames())
	}
}
