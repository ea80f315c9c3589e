package scanner

import (
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/fsquery/fsq/fileinfo"
	"github.com/ZanzyTHEbar/fsquery/fsq/function"
)

// group buffers the rows sharing one group-by key.
type group struct {
	key       string
	first     []string
	firstPath string
	rows      []function.Row
}

// groupKey joins the group-by field values of rec.
func (p *plan) groupKey(rec *fileinfo.Record) string {
	parts := make([]string, len(p.q.GroupBy))
	for i, f := range p.q.GroupBy {
		parts[i] = rec.Text(f)
	}
	return strings.Join(parts, "\x00")
}

// accumulate adds a matching row to its group's buffer. Aggregate columns
// buffer the raw argument text; the rest keep their projected text so the
// group's first row by path can supply them.
func (s *Scanner) accumulate(p *plan, rec *fileinfo.Record) error {
	row := make(function.Row, len(p.q.Columns))
	cells := make([]string, len(p.q.Columns))
	for i, col := range p.q.Columns {
		if col.IsAggregate() {
			row[col.Key()] = aggregateArgument(rec, col)
			continue
		}
		text, err := s.project(rec, col)
		if err != nil {
			return err
		}
		row[col.Key()] = text
		cells[i] = text
	}

	key := p.groupKey(rec)
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.groups[key]
	if !ok {
		g = &group{key: key, first: cells, firstPath: rec.Path()}
		p.groups[key] = g
	} else if rec.Path() < g.firstPath {
		g.first, g.firstPath = cells, rec.Path()
	}
	g.rows = append(g.rows, row)
	return nil
}

// finalizeGroups reduces each group to one output row, ordered by group
// key. An ungrouped aggregate over no rows still yields one row.
func (p *plan) finalizeGroups() [][]string {
	if len(p.groups) == 0 && len(p.q.GroupBy) == 0 {
		p.groups[""] = &group{first: make([]string, len(p.q.Columns))}
	}

	keys := make([]string, 0, len(p.groups))
	for k := range p.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]string, 0, len(keys))
	for _, k := range keys {
		g := p.groups[k]
		cells := make([]string, len(p.q.Columns))
		for i, col := range p.q.Columns {
			cells[i] = function.EvaluateAggregate(col.Function, g.rows, col.Key(), g.first[i])
		}
		out = append(out, cells)
	}
	return out
}
