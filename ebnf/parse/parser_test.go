package parse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dhamidi/cmb/cmb"
	"github.com/dhamidi/cmb/ebnf/grammar"
	"github.com/tliron/commonlog"
)

const listGrammar = `
	List = "[" [ Item { "," Item } ] "]" .
	Item = number | List .
	number = digit { digit } .
	digit = "0" … "9" .
`

func mustCompile(t *testing.T, src, start string, opts ...Option) *Parser {
	t.Helper()
	g, err := grammar.Parse("test", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	p, err := Compile(g, start, opts...)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func TestParseList(t *testing.T) {
	p := mustCompile(t, listGrammar, "List")

	node, err := p.Parse("test", []byte("[1, [22 ,3] ]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if node.Kind != "List" {
		t.Errorf("Kind = %q, want List", node.Kind)
	}
	if node.Span != (Span{0, 13}) {
		t.Errorf("Span = %+v, want {0 13}", node.Span)
	}
	if len(node.Children) != 5 {
		t.Fatalf("len(Children) = %d, want 5\n%s", len(node.Children), node)
	}

	var kinds []string
	for _, child := range node.Children {
		kinds = append(kinds, child.Kind)
	}
	if got, want := strings.Join(kinds, " "), `"[" Item "," Item "]"`; got != want {
		t.Errorf("child kinds = %s, want %s", got, want)
	}

	inner := node.Children[3].Find("List")
	if inner == nil {
		t.Fatalf("nested List not found\n%s", node)
	}
	if inner.Span != (Span{4, 11}) {
		t.Errorf("nested Span = %+v, want {4 11}", inner.Span)
	}

	num := inner.Find("number")
	if num == nil || num.Text != "22" || !num.IsTerminal() {
		t.Errorf("first nested number = %+v, want terminal \"22\"", num)
	}
	if num != nil && num.Span != (Span{5, 7}) {
		t.Errorf("number Span = %+v, want {5 7}", num.Span)
	}
}

func TestParseTrailingTrivia(t *testing.T) {
	p := mustCompile(t, listGrammar, "List")

	if _, err := p.Parse("test", []byte("  [ ]\n\n")); err != nil {
		t.Errorf("Parse() error = %v", err)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	p := mustCompile(t, listGrammar, "List")

	tests := []struct {
		input      string
		offset     int
		line, col  int
		unexpected string
	}{
		{"[1, 2", 5, 1, 6, ""},
		{"[1 2]", 3, 1, 4, "2"},
		{"[1\n x]", 4, 2, 2, "x"},
		{"[1,]", 3, 1, 4, "]"},
		{"[1, [2, x]]", 8, 1, 9, "x"},
		{"[[1], [2 3]]", 9, 1, 10, "3"},
		{"[1]]", 3, 1, 4, "]"},
		{"[1 ü]", 3, 1, 4, "ü"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := p.Parse("in.txt", []byte(tt.input))
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Parse() error = %v, want *SyntaxError", err)
			}
			pos := serr.Position
			if pos.Offset != tt.offset || pos.Line != tt.line || pos.Column != tt.col {
				t.Errorf("Position = %+v, want offset %d at %d:%d", pos, tt.offset, tt.line, tt.col)
			}
			if serr.Unexpected != tt.unexpected {
				t.Errorf("Unexpected = %q, want %q", serr.Unexpected, tt.unexpected)
			}
			if !strings.HasPrefix(err.Error(), fmt.Sprintf("in.txt:%d:%d: syntax error", tt.line, tt.col)) {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestLexicalProductionsDoNotSkipTrivia(t *testing.T) {
	p := mustCompile(t, listGrammar, "List")

	_, err := p.Parse("test", []byte("[1 2]"))
	if err == nil {
		t.Fatal("whitespace was skipped inside a number")
	}

	node, err := p.Parse("test", []byte("[12]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if num := node.Find("number"); num == nil || num.Text != "12" {
		t.Errorf("number = %+v, want \"12\"", num)
	}
}

func TestTriviaProduction(t *testing.T) {
	src := `
		Call = ident "(" [ ident { "," ident } ] ")" .
		ident = letter { letter } .
		letter = "a" … "z" .
		trivia = " " | "\n" | "#" { letter | " " } "\n" .
	`
	p := mustCompile(t, src, "Call", WithTriviaProduction("trivia"))

	node, err := p.Parse("test", []byte("f( # args\n a, b )"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(node.Children) != 6 {
		t.Errorf("len(Children) = %d, want 6\n%s", len(node.Children), node)
	}
}

func TestWithSkip(t *testing.T) {
	underscore := cmb.Eq(byte('_'))
	p := mustCompile(t, listGrammar, "List", WithSkip(underscore))

	if _, err := p.Parse("test", []byte("[_1_,__2_]")); err != nil {
		t.Errorf("Parse() error = %v", err)
	}
	if _, err := p.Parse("test", []byte("[1, 2]")); err == nil {
		t.Error("default whitespace still skipped after WithSkip")
	}
}

func TestEmptyProduction(t *testing.T) {
	p := mustCompile(t, `S = "a" E "b" . E = .`, "S")

	node, err := p.Parse("test", []byte("ab"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	e := node.Find("E")
	if e == nil || e.Span != (Span{1, 1}) {
		t.Errorf("E = %+v, want empty span at 1", e)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
		start   string
		opts    []Option
		want    string
	}{
		{"missing start", `A = "a" .`, "B", nil, `start production "B" not found`},
		{"undefined", `A = "a" B .`, "A", nil, `undefined production "B"`},
		{"multi-byte range", `A = "α" … "ω" .`, "A", nil, "only single-byte bounds"},
		{"left recursion", `A = A "+" "a" | "a" .`, "A", nil, "left recursion: A -> A"},
		{"missing trivia", `A = "a" .`, "A", []Option{WithTriviaProduction("ws")}, `trivia production "ws" not found`},
		{"syntactic trivia", `A = "a" . Ws = " " .`, "A", []Option{WithTriviaProduction("Ws")}, "must be lexical"},
		{"trivia reaching syntax", `A = "a" B . B = "b" . ws = " " | B .`, "A", []Option{WithTriviaProduction("ws")}, `trivia production "ws" refers to syntactic production "B"`},
		{"indirect trivia reaching syntax", `A = "a" . ws = " " | comment . comment = "#" A .`, "A", []Option{WithTriviaProduction("ws")}, `trivia production "ws" refers to syntactic production "A"`},
		{"lexical reaching syntax", `A = "a" b . b = "b" C . C = "c" .`, "A", nil, `lexical production "b" refers to syntactic production "C"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := grammar.Parse("test", strings.NewReader(tt.grammar))
			if err != nil {
				t.Fatalf("parse grammar: %v", err)
			}
			_, err = Compile(g, tt.start, tt.opts...)
			if err == nil {
				t.Fatal("Compile() succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Compile() error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

type recordingLogger struct {
	commonlog.MockLogger
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) AllowLevel(level commonlog.Level) bool { return true }

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestWithLogger(t *testing.T) {
	log := &recordingLogger{}
	p := mustCompile(t, listGrammar, "List", WithLogger(log))

	if _, err := p.Parse("test", []byte("[7]")); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var entered, matched bool
	for _, line := range log.lines {
		if strings.HasPrefix(line, "enter List#") {
			entered = true
		}
		if strings.HasPrefix(line, "match number#") {
			matched = true
		}
	}
	if !entered || !matched {
		t.Errorf("trace lines missing enter/match:\n%s", strings.Join(log.lines, "\n"))
	}
}

func TestParseConcurrent(t *testing.T) {
	p := mustCompile(t, listGrammar, "List")
	inputs := []string{"[1]", "[[2],[3,4]]", "[5,", "[]"}

	var wg sync.WaitGroup
	errs := make([]error, 4*len(inputs))
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Parse("test", []byte(inputs[i%len(inputs)]))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		wantErr := inputs[i%len(inputs)] == "[5,"
		if (err != nil) != wantErr {
			t.Errorf("input %q: error = %v, want error %v", inputs[i%len(inputs)], err, wantErr)
		}
	}
}

func TestNewParser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.ebnf")
	if err := os.WriteFile(path, []byte(listGrammar), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := NewParser(path, "List")
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	if p.Start() != "List" {
		t.Errorf("Start() = %q, want List", p.Start())
	}

	res := p.Root().Parse(cmb.FromString("[1] trailing"))
	if v, rem := res.Unwrap(); v.Kind != "List" || rem != 3 {
		t.Errorf("Root() = (%s, %d), want (List, 3)", v.Kind, rem)
	}

	if _, err := NewParser(filepath.Join(t.TempDir(), "missing.ebnf"), "List"); err == nil {
		t.Error("NewParser() succeeded for a missing file")
	}
}

func TestPositionAt(t *testing.T) {
	src := []byte("ab\ncd\n")

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{5, 2, 3},
		{6, 3, 1},
		{99, 3, 1},
	}
	for _, tt := range tests {
		pos := PositionAt("f", src, tt.offset)
		if pos.Line != tt.line || pos.Column != tt.col {
			t.Errorf("PositionAt(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.col)
		}
	}
	if got := PositionAt("f", src, 3).String(); got != "f:2:1" {
		t.Errorf("String() = %q, want f:2:1", got)
	}
	if got := PositionAt("", src, 3).String(); got != "2:1" {
		t.Errorf("String() = %q, want 2:1", got)
	}
}

func TestNodeString(t *testing.T) {
	p := mustCompile(t, listGrammar, "List")
	node, err := p.Parse("test", []byte("[1]"))
	if err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"List [0,3)",
		`  "[" "[" [0,1)`,
		"  Item [1,2)",
		`    number "1" [1,2)`,
		`  "]" "]" [2,3)`,
		"",
	}, "\n")
	if got := node.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
