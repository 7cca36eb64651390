package nuclide

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// DefaultListName is the Maxima variable the table is assigned to.
	DefaultListName = "%_NUCLIDE_DATA"
	// DefaultIndent prefixes every element header and entry line.
	DefaultIndent = "    "
)

// RenderOptions controls the document framing. Zero fields use the defaults.
type RenderOptions struct {
	ListName     string
	Indent       string
	ElementLabel func(z int) string
}

// Renderer writes entries as a Maxima list literal.
type Renderer struct {
	listName string
	indent   string
	label    func(z int) string
}

// NewRenderer constructs a renderer, filling unset options with defaults.
func NewRenderer(opts RenderOptions) *Renderer {
	r := &Renderer{
		listName: opts.ListName,
		indent:   opts.Indent,
		label:    opts.ElementLabel,
	}
	if r.listName == "" {
		r.listName = DefaultListName
	}
	if r.indent == "" {
		r.indent = DefaultIndent
	}
	if r.label == nil {
		r.label = ElementLabel
	}
	return r
}

// Render writes the opening marker, one line per entry grouped under element
// comments, and the terminator. Entries are written in the given order; a
// new header starts whenever Z differs from the previous entry.
func (r *Renderer) Render(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s: [\n", r.listName)

	started := false
	currentZ := 0
	for i, e := range entries {
		z := e.Record.Z
		if !started || z != currentZ {
			if started {
				bw.WriteString("\n")
			}
			fmt.Fprintf(bw, "%s/* %s (Z=%d) */\n", r.indent, r.label(z), z)
			started = true
			currentZ = z
		}
		bw.WriteString(r.indent)
		bw.WriteString(FormatEntry(e.ID, e.Record))
		if i < len(entries)-1 {
			bw.WriteString(",")
		}
		bw.WriteString("\n")
	}

	bw.WriteString("]$\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write nuclide list: %w", err)
	}
	return nil
}

// RenderString renders entries into a string.
func (r *Renderer) RenderString(entries []Entry) string {
	var b strings.Builder
	_ = r.Render(&b, entries)
	return b.String()
}

// FormatEntry renders one isotope line without indent or separator:
//
//	["185Tl", [81, 104, "185Tl", [null], [19.5], ["S"], [["A"]], [[100]]]]
func FormatEntry(id string, rec IsotopeRecord) string {
	var b strings.Builder
	b.WriteString(`["`)
	b.WriteString(id)
	b.WriteString(`", [`)
	b.WriteString(strconv.Itoa(rec.Z))
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(rec.N))
	b.WriteString(", ")
	b.WriteString(Text(rec.Name).Literal())
	for _, part := range []string{
		FormatList(rec.LevelEnergies),
		FormatList(rec.Halflives),
		FormatList(rec.HalflifeUnits),
		FormatNested(rec.DecayModes),
		FormatNested(rec.BranchingRatios),
	} {
		b.WriteString(", ")
		b.WriteString(part)
	}
	b.WriteString("]]")
	return b.String()
}
