// Package report describes the code unit structure of a string.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/utfstring/internal/engine/codec"
	"github.com/dshills/utfstring/internal/engine/ustring"
)

// ErrUnknownFormat is returned by Render for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

// Options controls the size of a report.
type Options struct {
	// HexGroup is the number of code units per dump line. 0 puts the whole
	// dump on one line.
	HexGroup int
	// MaxUnits caps the code units covered by the dump and the character
	// list. 0 means no limit.
	MaxUnits int
}

// Char describes one character of the string.
type Char struct {
	Index     int    `yaml:"index"`
	Units     int    `yaml:"units"`
	CodePoint string `yaml:"codePoint"`
	Lone      bool   `yaml:"lone,omitempty"`
}

// Report summarizes a string.
type Report struct {
	Encoding       string   `yaml:"encoding,omitempty"`
	Text           string   `yaml:"text"`
	Units          int      `yaml:"units"`
	Characters     int      `yaml:"characters"`
	Supplementary  int      `yaml:"supplementary"`
	LoneSurrogates int      `yaml:"loneSurrogates"`
	UTF8Bytes      int      `yaml:"utf8Bytes"`
	Graphemes      int      `yaml:"graphemes"`
	Width          int      `yaml:"width"`
	Dump           []string `yaml:"dump"`
	Chars          []Char   `yaml:"chars"`
	Truncated      bool     `yaml:"truncated,omitempty"`
}

// Build walks s and collects its report. encoding names the source encoding
// and may be empty.
func Build(s *ustring.String, encoding string, opts Options) *Report {
	r := &Report{
		Encoding:  encoding,
		Units:     s.Len(),
		UTF8Bytes: len(s.AsUTF8()),
	}

	limit := s.Len()
	if opts.MaxUnits > 0 && opts.MaxUnits < limit {
		limit = opts.MaxUnits
		r.Truncated = true
	}

	var text strings.Builder
	for c := s.Begin(); !c.AtEnd(); c.MoveNext() {
		ch, n := c.Char()
		r.Characters++

		lone := n == 1 && !codec.IsIndependent(uint16(ch))
		switch {
		case lone:
			r.LoneSurrogates++
			text.WriteRune(unicode.ReplacementChar)
		case n == 2:
			r.Supplementary++
			text.WriteRune(ch)
		default:
			text.WriteRune(ch)
		}

		if c.Index() < limit {
			r.Chars = append(r.Chars, Char{
				Index:     c.Index(),
				Units:     n,
				CodePoint: fmt.Sprintf("U+%04X", ch),
				Lone:      lone,
			})
		}
	}

	r.Text = text.String()
	r.Graphemes = uniseg.GraphemeClusterCount(r.Text)
	r.Width = uniseg.StringWidth(r.Text)
	r.Dump = dump(s.Units()[:limit], opts.HexGroup)
	return r
}

// dump formats units as hex lines of group units, each prefixed by the
// index of its first unit.
func dump(units []uint16, group int) []string {
	if len(units) == 0 {
		return nil
	}
	if group <= 0 {
		group = len(units)
	}

	var lines []string
	for start := 0; start < len(units); start += group {
		end := min(start+group, len(units))
		var b strings.Builder
		fmt.Fprintf(&b, "%04x:", start)
		for _, u := range units[start:end] {
			fmt.Fprintf(&b, " %04x", u)
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Render writes r to w as text, yaml or json.
func Render(w io.Writer, r *Report, format string) error {
	switch format {
	case "text", "":
		return renderText(w, r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		data, err := r.JSON()
		if err != nil {
			return err
		}
		_, err = w.Write(pretty.Pretty(data))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// JSON returns r as compact JSON.
func (r *Report) JSON() ([]byte, error) {
	data := []byte(`{}`)
	set := func(path string, value any) {
		if data == nil {
			return
		}
		var err error
		if data, err = sjson.SetBytes(data, path, value); err != nil {
			data = nil
		}
	}

	if r.Encoding != "" {
		set("encoding", r.Encoding)
	}
	set("text", r.Text)
	set("units", r.Units)
	set("characters", r.Characters)
	set("supplementary", r.Supplementary)
	set("loneSurrogates", r.LoneSurrogates)
	set("utf8Bytes", r.UTF8Bytes)
	set("graphemes", r.Graphemes)
	set("width", r.Width)
	set("dump", []string{})
	for _, line := range r.Dump {
		set("dump.-1", line)
	}
	set("chars", []any{})
	for _, c := range r.Chars {
		entry := map[string]any{
			"index":     c.Index,
			"units":     c.Units,
			"codePoint": c.CodePoint,
		}
		if c.Lone {
			entry["lone"] = true
		}
		set("chars.-1", entry)
	}
	if r.Truncated {
		set("truncated", true)
	}

	if data == nil {
		return nil, errors.New("building report json")
	}
	return data, nil
}

func renderText(w io.Writer, r *Report) error {
	var b strings.Builder
	if r.Encoding != "" {
		fmt.Fprintf(&b, "encoding:        %s\n", r.Encoding)
	}
	fmt.Fprintf(&b, "text:            %q\n", r.Text)
	fmt.Fprintf(&b, "code units:      %d\n", r.Units)
	fmt.Fprintf(&b, "characters:      %d\n", r.Characters)
	fmt.Fprintf(&b, "supplementary:   %d\n", r.Supplementary)
	fmt.Fprintf(&b, "lone surrogates: %d\n", r.LoneSurrogates)
	fmt.Fprintf(&b, "utf-8 bytes:     %d\n", r.UTF8Bytes)
	fmt.Fprintf(&b, "graphemes:       %d\n", r.Graphemes)
	fmt.Fprintf(&b, "width:           %d\n", r.Width)

	if len(r.Dump) > 0 {
		b.WriteString("\n")
		for _, line := range r.Dump {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if len(r.Chars) > 0 {
		b.WriteString("\n")
		for _, c := range r.Chars {
			fmt.Fprintf(&b, "%6d  %-9s %d", c.Index, c.CodePoint, c.Units)
			if c.Lone {
				b.WriteString("  lone")
			}
			b.WriteString("\n")
		}
	}
	if r.Truncated {
		b.WriteString("...\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
