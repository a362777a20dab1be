package cmb

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tliron/commonlog"
)

type recordingLogger struct {
	commonlog.MockLogger
	lines []string
}

func (l *recordingLogger) AllowLevel(level commonlog.Level) bool {
	return level <= commonlog.Debug
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestTraceLogsOutcome(t *testing.T) {
	log := &recordingLogger{}
	a := Eq(byte('a'))
	p := Trace("a", a, log)

	if res := p.Parse(FromString("a")); !res.IsSuccess() {
		t.Fatal("traced parser failed on matching input")
	}
	if res := p.Parse(FromString("b")); !res.IsFailure() {
		t.Fatal("traced parser succeeded on mismatching input")
	}

	id := fmt.Sprintf("a#%d", a.ID())
	want := []string{
		"enter " + id + " at 0",
		"match " + id + " 0..1",
		"enter " + id + " at 0",
		"fail  " + id + " at 0, furthest 0",
	}
	if strings.Join(log.lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("log lines =\n%s\nwant\n%s", strings.Join(log.lines, "\n"), strings.Join(want, "\n"))
	}
}

func TestTraceSilentWhenDebugDisabled(t *testing.T) {
	p := Trace("a", Eq(byte('a')), commonlog.MockLogger{})

	v, rem := p.Parse(FromString("a")).Unwrap()
	if v != 'a' || rem != 1 {
		t.Errorf("Parse() = (%q, %d), want ('a', 1)", v, rem)
	}
}
