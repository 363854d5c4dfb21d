package report

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/utfstring/internal/engine/ustring"
)

func sample() *ustring.String {
	return ustring.FromUnits([]uint16{'a', 0xD83D, 0xDE00, 0xDC00})
}

func TestBuild(t *testing.T) {
	r := Build(sample(), "utf-16le", Options{HexGroup: 2})

	if r.Encoding != "utf-16le" {
		t.Errorf("Encoding = %q", r.Encoding)
	}
	checks := []struct {
		name      string
		got, want int
	}{
		{"Units", r.Units, 4},
		{"Characters", r.Characters, 3},
		{"Supplementary", r.Supplementary, 1},
		{"LoneSurrogates", r.LoneSurrogates, 1},
		{"UTF8Bytes", r.UTF8Bytes, 8},
		{"Graphemes", r.Graphemes, 3},
		{"Width", r.Width, 4},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if r.Text != "a\U0001F600\uFFFD" {
		t.Errorf("Text = %q", r.Text)
	}

	wantDump := []string{"0000: 0061 d83d", "0002: de00 dc00"}
	if !slices.Equal(r.Dump, wantDump) {
		t.Errorf("Dump = %q, want %q", r.Dump, wantDump)
	}

	wantChars := []Char{
		{Index: 0, Units: 1, CodePoint: "U+0061"},
		{Index: 1, Units: 2, CodePoint: "U+1F600"},
		{Index: 3, Units: 1, CodePoint: "U+DC00", Lone: true},
	}
	if !slices.Equal(r.Chars, wantChars) {
		t.Errorf("Chars = %+v, want %+v", r.Chars, wantChars)
	}
	if r.Truncated {
		t.Error("report should not be truncated")
	}
}

func TestBuildTruncated(t *testing.T) {
	r := Build(sample(), "", Options{MaxUnits: 2})

	if !r.Truncated {
		t.Error("report should be truncated")
	}
	if want := []string{"0000: 0061 d83d"}; !slices.Equal(r.Dump, want) {
		t.Errorf("Dump = %q, want %q", r.Dump, want)
	}
	if len(r.Chars) != 2 {
		t.Errorf("len(Chars) = %d, want 2", len(r.Chars))
	}
	if r.Characters != 3 {
		t.Errorf("Characters = %d, want 3 regardless of the limit", r.Characters)
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(ustring.New(), "", Options{HexGroup: 8})
	if r.Units != 0 || r.Characters != 0 || r.Dump != nil || r.Chars != nil {
		t.Errorf("empty report = %+v", r)
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Build(sample(), "utf-8", Options{HexGroup: 8}), "text"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"encoding:        utf-8\n",
		"code units:      4\n",
		"lone surrogates: 1\n",
		"0000: 0061 d83d de00 dc00\n",
		"U+DC00    1  lone\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, Build(sample(), "", Options{HexGroup: 2}), "json"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !gjson.ValidBytes(buf.Bytes()) {
		t.Fatalf("invalid json:\n%s", buf.String())
	}

	doc := gjson.ParseBytes(buf.Bytes())
	if got := doc.Get("units").Int(); got != 4 {
		t.Errorf("units = %d, want 4", got)
	}
	if got := doc.Get("dump.#").Int(); got != 2 {
		t.Errorf("dump length = %d, want 2", got)
	}
	if got := doc.Get("chars.1.codePoint").String(); got != "U+1F600" {
		t.Errorf("chars.1.codePoint = %q, want U+1F600", got)
	}
	if !doc.Get("chars.2.lone").Bool() {
		t.Error("chars.2.lone should be true")
	}
	if doc.Get("encoding").Exists() {
		t.Error("empty encoding should be omitted")
	}
	if got := doc.Get("text").String(); got != "a\U0001F600\uFFFD" {
		t.Errorf("text = %q", got)
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	want := Build(sample(), "utf-16be", Options{HexGroup: 4, MaxUnits: 3})
	if err := Render(&buf, want, "yaml"); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal: %v\n%s", err, buf.String())
	}
	if got.Encoding != "utf-16be" || got.Characters != 3 || !got.Truncated {
		t.Errorf("decoded report = %+v", got)
	}
	if !slices.Equal(got.Chars, want.Chars) {
		t.Errorf("Chars = %+v, want %+v", got.Chars, want.Chars)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, Build(sample(), "", Options{}), "xml")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Render error = %v, want ErrUnknownFormat", err)
	}
}
