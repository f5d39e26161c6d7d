package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/flatfile/internal/line"
)

func texts[L interface{ String() string }](d *Document[L]) []string {
	out := make([]string, 0, d.LineCount())
	for _, l := range d.All() {
		out = append(out, l.String())
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew_Empty(t *testing.T) {
	d := New[*line.Line]()
	if d.LineCount() != 0 {
		t.Errorf("LineCount() = %d, want 0", d.LineCount())
	}
	if d.Lines() == nil {
		t.Error("Lines() should be empty, not nil")
	}
	if d.String() != "" {
		t.Errorf("String() = %q, want empty", d.String())
	}
}

func TestAddLine(t *testing.T) {
	d := New[*line.Line]()

	if !d.AddLine(line.New("a")) {
		t.Error("AddLine() = false, want true")
	}
	if d.AddLine(nil) {
		t.Error("AddLine(nil) = true, want false")
	}
	if d.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", d.LineCount())
	}
}

func TestInsertLine(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"front", 0, []string{"x", "a", "b", "c"}},
		{"middle", 1, []string{"a", "x", "b", "c"}},
		{"end", 3, []string{"a", "b", "c", "x"}},
		{"past end appends", 10, []string{"a", "b", "c", "x"}},
		{"negative appends", -1, []string{"a", "b", "c", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := From(line.New("a"), line.New("b"), line.New("c"))
			if !d.InsertLine(line.New("x"), tt.index) {
				t.Fatal("InsertLine() = false")
			}
			if got := texts(d); !equal(got, tt.want) {
				t.Errorf("lines = %q, want %q", got, tt.want)
			}
		})
	}

	d := From(line.New("a"))
	if d.InsertLine(nil, 0) {
		t.Error("InsertLine(nil) = true, want false")
	}
}

func TestLine_IndexChecked(t *testing.T) {
	d := From(line.New("a"), line.New("b"))

	l, err := d.Line(1)
	if err != nil {
		t.Fatalf("Line(1) error = %v", err)
	}
	if l.String() != "b" {
		t.Errorf("Line(1) = %q, want %q", l.String(), "b")
	}

	for _, i := range []int{-1, 2} {
		if _, err := d.Line(i); !errors.Is(err, line.ErrIndexOutOfRange) {
			t.Errorf("Line(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
		if _, err := d.RemoveLine(i); !errors.Is(err, line.ErrIndexOutOfRange) {
			t.Errorf("RemoveLine(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestRemoveLine(t *testing.T) {
	d := From(line.New("a"), line.New("b"), line.New("c"))

	removed, err := d.RemoveLine(1)
	if err != nil {
		t.Fatalf("RemoveLine() error = %v", err)
	}
	if removed.String() != "b" {
		t.Errorf("removed = %q, want %q", removed.String(), "b")
	}
	if got := texts(d); !equal(got, []string{"a", "c"}) {
		t.Errorf("lines = %q", got)
	}
}

func TestClear(t *testing.T) {
	d := From(line.New("a"), line.New("b"))
	d.Clear()
	if d.LineCount() != 0 {
		t.Errorf("LineCount() = %d, want 0", d.LineCount())
	}
	if d.Lines() == nil {
		t.Error("Lines() after Clear should be empty, not nil")
	}
}

func TestString(t *testing.T) {
	d := From(line.New("first"), line.New(""), line.New("third"))
	want := strings.Join([]string{"first", "", "third"}, LineSeparator)
	if d.String() != want {
		t.Errorf("String() = %q, want %q", d.String(), want)
	}

	var b strings.Builder
	n, err := d.WriteTo(&b)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if b.String() != want || n != int64(len(want)) {
		t.Errorf("WriteTo() wrote %q (%d bytes), want %q", b.String(), n, want)
	}
}

func TestString_ReflectsLineEdits(t *testing.T) {
	row := line.NewCSV("a,b,c")
	d := From(row)

	if err := row.SetColumn("B", 1); err != nil {
		t.Fatal(err)
	}
	if d.String() != "a,B,c" {
		t.Errorf("String() = %q, want %q", d.String(), "a,B,c")
	}
}

func TestLines_Copy(t *testing.T) {
	d := From(line.New("a"))
	lines := d.Lines()
	lines[0] = line.New("z")
	if l, _ := d.Line(0); l.String() != "a" {
		t.Errorf("Line(0) = %q, slice mutation leaked into document", l.String())
	}
}

func TestAll_StopsEarly(t *testing.T) {
	d := From(line.New("a"), line.New("b"), line.New("c"))
	seen := 0
	for range d.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("iterated %d lines, want 2", seen)
	}
}
