package output

import (
	"bytes"

	"ccx/internal/split"
	"ccx/internal/tokens"
)

// Unit is one pre-rendered record ready for greedy packing: a JSONL line or
// a Markdown section. Name identifies the record in budget-overrun reports.
type Unit struct {
	Name string
	Text string
}

// WriteGreedy partitions units under the byte and token budgets and writes
// one file per group under dir. The per-file names follow the greedy naming
// rule (see NumberedName). Returns the manifest entries and the names of
// units that exceeded a budget on their own.
func WriteGreedy(dir, base, ext string, compress bool, kind string, units []Unit, budget split.Budget) ([]WrittenFile, []string, error) {
	groups, oversizeIdx := split.Greedy(len(units), budget, func(i int) split.Measure {
		return split.Measure{
			Bytes:  len(units[i].Text),
			Tokens: tokens.Estimate(units[i].Text),
		}
	})

	var written []WrittenFile
	for gi, group := range groups {
		var buf bytes.Buffer
		for _, i := range group {
			buf.WriteString(units[i].Text)
		}
		name := NumberedName(base, ext, gi, len(groups), compress)
		wf, err := writeFile(dir, name, buf.Bytes(), compress, kind, len(group))
		if err != nil {
			return nil, nil, err
		}
		written = append(written, wf)
	}

	var oversize []string
	for _, i := range oversizeIdx {
		oversize = append(oversize, units[i].Name)
	}
	return written, oversize, nil
}
