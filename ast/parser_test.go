// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jsplit/ast"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		{`{}`, ast.Object{}},
		{`  []  `, ast.Array{}},
		{`"a b"`, ast.String("a b")},
		{`-6.32`, ast.Number("-6.32")},
		{`true`, ast.Bool(true)},
		{`null`, ast.Null{}},
		{`{"x":null, "y":[true, 15, "}"]}`, ast.Object{
			{Key: "x", Value: ast.Null{}},
			{Key: "y", Value: ast.Array{ast.Bool(true), ast.Number("15"), ast.String("}")}},
		}},
		{`{"k\"ey": {"in": [[], {}]}}`, ast.Object{
			{Key: `k"ey`, Value: ast.Object{
				{Key: "in", Value: ast.Array{ast.Array{}, ast.Object{}}},
			}},
		}},
	}
	for _, tc := range tests {
		got, err := ast.Parse([]byte(tc.input))
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse %#q: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		``,
		`   `,
		`{`,
		`[{}`,
		`{}{}`,
		`[] []`,
		`{"a":}`,
		`bogus`,
		`["abc]`,
	}
	for _, input := range tests {
		if got, err := ast.Parse([]byte(input)); err == nil {
			t.Errorf("Parse %#q: got %s, wanted error", input, got.JSON())
		}
	}
}

func TestParseJWCC(t *testing.T) {
	const input = `{
  // The answer.
  "a": 42,
  "b": [1, 2,], /* trailing */
}`
	want := ast.Object{
		{Key: "a", Value: ast.Number("42")},
		{Key: "b", Value: ast.Array{ast.Number("1"), ast.Number("2")}},
	}

	if got, err := ast.Parse([]byte(input)); !errors.Is(err, ast.ErrNonStandard) {
		t.Errorf("Parse: got (%v, %v), want %v", got, err, ast.ErrNonStandard)
	}
	got, err := ast.ParseJWCC([]byte(input))
	if err != nil {
		t.Fatalf("ParseJWCC: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseJWCC: (-want, +got)\n%s", diff)
	}
}

func TestSplitter(t *testing.T) {
	const input = `{"love": true} [] garbage ["}", {"a": [1]}]` + "\n" + `{"tail": `

	s := ast.NewSplitter(strings.NewReader(input))
	var got []string
	for v := range s.All() {
		got = append(got, v.JSON())
	}
	if err := s.Err(); err != io.EOF {
		t.Errorf("Err: got %v, want %v", err, io.EOF)
	}

	// The text "garbage" is absorbed into the third value's buffer, which
	// therefore never parses; the splitter drops it with the tail.
	want := []string{`{"love":true}`, `[]`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values: (-want, +got)\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []ast.Value{
		ast.ToValue(map[string]any{
			"name":  "widget } ]",
			"tags":  []any{"a", "b", map[string]any{"c": nil}},
			"count": 3,
			"ok":    true,
		}),
		ast.ToValue([]any{[]any{}, map[string]any{}, 1.5, "☃"}),
		ast.ToValue(map[string]any{
			`say "hi"`: `back\slash \"}`,
			"ctl":      "bell\x07 and\x1f",
			"sep":      "line\u2028para\u2029",
		}),
		ast.Object{},
		ast.Array{},
	}
	for _, v := range values {
		for _, n := range []int{1, 2, 5} {
			input := strings.Repeat(v.JSON(), n)

			var got []ast.Value
			s := ast.NewSplitter(strings.NewReader(input))
			for elt := range s.All() {
				got = append(got, elt)
			}
			if len(got) != n {
				t.Errorf("Split %#q: got %d values, want %d", input, len(got), n)
			}
			for i, elt := range got {
				if diff := cmp.Diff(v, elt); diff != "" {
					t.Errorf("Value %d of %#q: (-want, +got)\n%s", i, input, diff)
				}
			}
		}
	}
}
