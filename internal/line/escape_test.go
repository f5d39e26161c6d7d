package line

import (
	"errors"
	"slices"
	"testing"
)

func TestMergeEscaped(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		start     int
		marker    string
		want      string
		wantCols  []string
		wantError error
	}{
		{
			name:     "embedded delimiter",
			text:     `a,"b,c",d`,
			start:    1,
			marker:   `"`,
			want:     "b,c",
			wantCols: []string{"a", "b,c", "d"},
		},
		{
			name:     "single column field",
			text:     `a,"solo",d`,
			start:    1,
			marker:   `"`,
			want:     "solo",
			wantCols: []string{"a", "solo", "d"},
		},
		{
			name:     "several embedded delimiters",
			text:     `"x,y,z",tail`,
			start:    0,
			marker:   `"`,
			want:     "x,y,z",
			wantCols: []string{"x,y,z", "tail"},
		},
		{
			name:     "field at end of row",
			text:     `a,"b,c"`,
			start:    1,
			marker:   `"`,
			want:     "b,c",
			wantCols: []string{"a", "b,c"},
		},
		{
			name:     "empty parts inside field",
			text:     `a,",,",d`,
			start:    1,
			marker:   `"`,
			want:     ",,",
			wantCols: []string{"a", ",,", "d"},
		},
		{
			name:     "lone marker opens field",
			text:     `",x"`,
			start:    0,
			marker:   `"`,
			want:     ",x",
			wantCols: []string{",x"},
		},
		{
			name:     "empty escaped field",
			text:     `a,"",b`,
			start:    1,
			marker:   `"`,
			want:     "",
			wantCols: []string{"a", "", "b"},
		},
		{
			name:     "multi-character marker",
			text:     `1|~~p|q~~|2`,
			start:    1,
			marker:   "~~",
			want:     "p|q",
			wantCols: []string{"1", "p|q", "2"},
		},
		{
			name:      "column not escaped",
			text:      `a,b,c`,
			start:     1,
			marker:    `"`,
			wantError: ErrMalformedColumn,
		},
		{
			name:      "never closed",
			text:      `a,"b,c,d`,
			start:     1,
			marker:    `"`,
			wantError: ErrMalformedColumn,
		},
		{
			name:      "start out of range",
			text:      `a,b`,
			start:     5,
			marker:    `"`,
			wantError: ErrMalformedColumn,
		},
		{
			name:      "empty marker",
			text:      `a,b`,
			start:     0,
			marker:    "",
			wantError: ErrMalformedColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDelimited(tt.text, delimiterOf(tt.text))
			before := d.Columns()

			got, err := d.MergeEscaped(tt.start, tt.marker)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("MergeEscaped() error = %v, want %v", err, tt.wantError)
				}
				if !slices.Equal(d.Columns(), before) {
					t.Errorf("columns changed after failed merge: %q", d.Columns())
				}
				return
			}
			if err != nil {
				t.Fatalf("MergeEscaped() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MergeEscaped() = %q, want %q", got, tt.want)
			}
			if !slices.Equal(d.Columns(), tt.wantCols) {
				t.Errorf("Columns() = %q, want %q", d.Columns(), tt.wantCols)
			}
			if d.Column(tt.start) != tt.want {
				t.Errorf("Column(%d) = %q, want merged value", tt.start, d.Column(tt.start))
			}
		})
	}
}

// delimiterOf picks the test row's delimiter: pipe if present, else comma.
func delimiterOf(s string) rune {
	for _, r := range s {
		if r == '|' {
			return '|'
		}
	}
	return ','
}

func TestMergeEscaped_ColumnCount(t *testing.T) {
	d := NewCSV(`a,"b,c,d",e`)
	if d.ColumnCount() != 5 {
		t.Fatalf("ColumnCount() before = %d, want 5", d.ColumnCount())
	}
	if _, err := d.MergeEscaped(1, `"`); err != nil {
		t.Fatal(err)
	}
	if d.ColumnCount() != 3 {
		t.Errorf("ColumnCount() after = %d, want 3", d.ColumnCount())
	}
	if d.Column(2) != "e" {
		t.Errorf("Column(2) = %q, want later column shifted left", d.Column(2))
	}
}

func TestIndexOfEscaped(t *testing.T) {
	d := NewCSV(`a,"b,c,"d"`)

	if got := d.IndexOfEscaped(`"`, 0); got != 1 {
		t.Errorf("IndexOfEscaped(0) = %d, want 1", got)
	}
	if got := d.IndexOfEscaped(`"`, 2); got != 3 {
		t.Errorf("IndexOfEscaped(2) = %d, want 3", got)
	}
	if got := d.IndexOfEscaped(`'`, 0); got != -1 {
		t.Errorf("IndexOfEscaped(') = %d, want -1", got)
	}
	if got := d.IndexOfEscaped("", 0); got != -1 {
		t.Errorf("IndexOfEscaped(empty) = %d, want -1", got)
	}
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		want      []string
		wantError bool
	}{
		{"nothing escaped", "a,b,c", []string{"a", "b", "c"}, false},
		{"one field", `a,"b,c",d`, []string{"a", "b,c", "d"}, false},
		{"two fields", `"a,b",x,"c,d"`, []string{"a,b", "x", "c,d"}, false},
		{"adjacent fields", `"a,b","c,d"`, []string{"a,b", "c,d"}, false},
		{"solo and split", `"a","b,c"`, []string{"a", "b,c"}, false},
		{"empty row", "", []string{}, false},
		{"unclosed", `a,"b,c`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewCSV(tt.text)
			err := d.CleanLine(`"`)
			if tt.wantError {
				if !errors.Is(err, ErrMalformedColumn) {
					t.Fatalf("CleanLine() error = %v, want ErrMalformedColumn", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanLine() error = %v", err)
			}
			if !slices.Equal(d.Columns(), tt.want) {
				t.Errorf("Columns() = %q, want %q", d.Columns(), tt.want)
			}
		})
	}
}

func TestCleanLine_StringReflectsMerge(t *testing.T) {
	d := NewCSV(`1,"x,y",2`)
	if err := d.CleanLine(`"`); err != nil {
		t.Fatal(err)
	}
	if d.String() != "1,x,y,2" {
		t.Errorf("String() = %q, want %q", d.String(), "1,x,y,2")
	}
}

func TestCleanLine_FailureLeavesRowUntouched(t *testing.T) {
	d := NewCSV(`"",a,"x`)
	before := d.Columns()

	if err := d.CleanLine(`"`); !errors.Is(err, ErrMalformedColumn) {
		t.Fatalf("CleanLine() error = %v, want ErrMalformedColumn", err)
	}

	// The first field closes on its own, but the second never does.
	if !slices.Equal(d.Columns(), before) {
		t.Errorf("Columns() = %q, want untouched %q", d.Columns(), before)
	}
	if d.String() != `"",a,"x` {
		t.Errorf("String() = %q, want original text", d.String())
	}
}

func TestCleanLine_EmptyMarker(t *testing.T) {
	d := NewCSV(`"a,b"`)
	if err := d.CleanLine(""); err != nil {
		t.Fatalf("CleanLine(empty) error = %v", err)
	}
	if d.ColumnCount() != 2 {
		t.Errorf("ColumnCount() = %d, want 2 (untouched)", d.ColumnCount())
	}
}
