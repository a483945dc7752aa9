package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/lots"
	"github.com/etnz/lots/date"
	md "github.com/nao1215/markdown"
)

// RealisedMarkdown renders realised gains per period, with a total line.
func RealisedMarkdown(title string, period date.Period, rows []lots.PeriodRealised) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if title != "" {
		doc.H1(fmt.Sprintf("Realised Gains for %s", title))
	} else {
		doc.H1("Realised Gains")
	}
	doc.PlainText(fmt.Sprintf("Period: %s", period))

	if len(rows) == 0 {
		doc.PlainText("Nothing was sold.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Period", "From", "Lots Matched", "Realised"},
		Rows:      [][]string{},
	}
	total := lots.M(0, rows[0].Realised.Currency())
	matches := 0
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.Range.Identifier(),
			r.Range.From.String(),
			strconv.Itoa(r.Matches),
			r.Realised.SignedString(),
		})
		total = total.Add(r.Realised)
		matches += r.Matches
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		"",
		md.Bold(strconv.Itoa(matches)),
		md.Bold(total.SignedString()),
	})
	doc.Table(table)

	return doc.String()
}
