package line

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestFromText(t *testing.T) {
	l, err := FromText(pgtype.Text{String: "hello", Valid: true})
	if err != nil {
		t.Fatalf("FromText() error = %v", err)
	}
	if l.String() != "hello" {
		t.Errorf("String() = %q, want %q", l.String(), "hello")
	}

	_, err = FromText(pgtype.Text{})
	if !errors.Is(err, ErrNullValue) {
		t.Errorf("FromText(invalid) error = %v, want ErrNullValue", err)
	}
}

func TestLine_SetNullableText(t *testing.T) {
	l := New("keep")

	if err := l.SetNullableText(pgtype.Text{}); !errors.Is(err, ErrNullValue) {
		t.Fatalf("SetNullableText(invalid) error = %v, want ErrNullValue", err)
	}
	if l.Text() != "keep" {
		t.Errorf("content changed after failed set: %q", l.Text())
	}

	if err := l.SetNullableText(pgtype.Text{String: "new", Valid: true}); err != nil {
		t.Fatalf("SetNullableText() error = %v", err)
	}
	if l.Text() != "new" {
		t.Errorf("Text() = %q, want %q", l.Text(), "new")
	}
}

func TestLine_Clear(t *testing.T) {
	l := New("something")
	l.Clear()
	if l.Text() != "" {
		t.Errorf("Text() after Clear = %q, want empty", l.Text())
	}
}

func TestLine_ReplaceAll(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		pattern     string
		replacement string
		want        string
	}{
		{"literal", "a-b-c", "-", "+", "a+b+c"},
		{"class", "a1b22c333", `\d+`, "#", "a#b#c#"},
		{"capture group", "2024-01-15", `(\d+)-(\d+)-(\d+)`, "$3/$2/$1", "15/01/2024"},
		{"no match", "abc", "x", "y", "abc"},
		{"empty text", "", ".*", "z", "z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.text)
			if err := l.ReplaceAll(tt.pattern, tt.replacement); err != nil {
				t.Fatalf("ReplaceAll() error = %v", err)
			}
			if l.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", l.Text(), tt.want)
			}
		})
	}
}

func TestLine_ReplaceAll_InvalidPattern(t *testing.T) {
	l := New("abc")
	err := l.ReplaceAll("(unclosed", "x")
	if !errors.Is(err, ErrPattern) {
		t.Fatalf("ReplaceAll() error = %v, want ErrPattern", err)
	}
	if l.Text() != "abc" {
		t.Errorf("content changed after failed replace: %q", l.Text())
	}
}

func TestLine_Equal(t *testing.T) {
	if !New("x").Equal(New("x")) {
		t.Error("lines with same content should be equal")
	}
	if New("x").Equal(New("y")) {
		t.Error("lines with different content should not be equal")
	}
	if New("x").Equal(nil) {
		t.Error("line should not equal nil")
	}
}
