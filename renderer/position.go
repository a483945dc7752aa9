package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/lots"
	md "github.com/nao1215/markdown"
)

// PositionMarkdown renders the position of a single instrument: a summary,
// its open lots and the disposals that realised gains.
func PositionMarkdown(title string, pos lots.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if title != "" {
		doc.H1(fmt.Sprintf("Position for %s", title))
	} else {
		doc.H1("Position")
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Value"},
		Rows: [][]string{
			{"Remaining", pos.Remaining.String()},
			{"Average Cost", pos.AverageCost.String()},
			{"Cost", pos.Cost().String()},
			{md.Bold("Realised"), md.Bold(pos.Realised.SignedString())},
		},
	})

	if len(pos.Lots) > 0 {
		doc.H2("Open Lots")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Acquired", "Quantity", "Price", "Cost"},
			Rows:      [][]string{},
		}
		for _, l := range pos.Lots {
			table.Rows = append(table.Rows, []string{
				l.Date,
				l.Quantity.String(),
				l.Price.String(),
				l.Cost().String(),
			})
		}
		doc.Table(table)
	}

	if len(pos.Disposals) > 0 {
		doc.H2("Disposals")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Sold", "Acquired", "Quantity", "Cost", "Proceeds", "Gain"},
			Rows:      [][]string{},
		}
		for _, d := range pos.Disposals {
			table.Rows = append(table.Rows, []string{
				d.Date,
				d.Acquired,
				d.Quantity.String(),
				d.Cost.String(),
				d.Proceeds.String(),
				d.Gain().SignedString(),
			})
		}
		doc.Table(table)
	}

	if !pos.Oversold.IsZero() {
		doc.PlainText(fmt.Sprintf("%s %s units were sold without any open lot to match, they are ignored.", md.Bold("Warning:"), pos.Oversold))
	}

	return doc.String()
}

// PositionsMarkdown renders one summary line per symbol.
func PositionsMarkdown(symbols []string, positions map[string]lots.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Symbol", "Remaining", "Average Cost", "Cost", "Realised"},
		Rows:      [][]string{},
	}
	for _, s := range symbols {
		pos, ok := positions[s]
		if !ok {
			continue
		}
		name := s
		if name == "" {
			name = "(none)"
		}
		table.Rows = append(table.Rows, []string{
			name,
			pos.Remaining.String(),
			pos.AverageCost.String(),
			pos.Cost().String(),
			pos.Realised.SignedString(),
		})
	}
	doc.Table(table)

	return doc.String()
}
