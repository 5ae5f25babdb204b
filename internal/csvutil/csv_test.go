package csvutil

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestFieldQuoting(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"with;semi", `"with;semi"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
		{"comma, stays bare", "comma, stays bare"},
	}
	for _, c := range cases {
		if got := Field(c.in); got != c.want {
			t.Fatalf("Field(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func TestRenderCRLF(t *testing.T) {
	doc := Render([][]string{
		{"id", "name"},
		{"1", "Ivan; the elder"},
	})
	if !strings.HasSuffix(doc, "\r\n") {
		t.Fatalf("document must end with CRLF")
	}
	if strings.Count(doc, "\r\n") != 2 {
		t.Fatalf("expected 2 CRLF terminators, got %d", strings.Count(doc, "\r\n"))
	}
}

func TestRenderRoundTrip(t *testing.T) {
	rows := [][]string{
		{"id", "notes"},
		{"1", "quote \" semi ; and\nnewline"},
		{"2", "plain"},
	}

	r := csv.NewReader(strings.NewReader(Render(rows)))
	r.Comma = ';'
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	for i := range rows {
		for j := range rows[i] {
			if got[i][j] != rows[i][j] {
				t.Fatalf("row %d col %d: expected %q, got %q", i, j, rows[i][j], got[i][j])
			}
		}
	}
}
