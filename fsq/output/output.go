// Package output renders scan results as a table, JSON, JSON lines or CSV.
package output

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Formatter writes a header and rows to its destination.
type Formatter interface {
	Format(header []string, rows [][]string) error
}

// New returns the formatter for format (table, json, jsonl or csv).
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "table", "":
		return &Table{w: w}, nil
	case "json":
		return &JSON{w: w}, nil
	case "jsonl":
		return &JSON{w: w, Lines: true}, nil
	case "csv":
		return &CSV{w: w}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

// Table renders an aligned text table.
type Table struct {
	w io.Writer
}

func (t *Table) Format(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(t.w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

// JSON renders an array of objects keyed by header, or one object per line
// when Lines is set. Keys keep the header order.
type JSON struct {
	w     io.Writer
	Lines bool
}

func (j *JSON) Format(header []string, rows [][]string) error {
	bw := bufio.NewWriter(j.w)
	if !j.Lines {
		bw.WriteString("[")
	}
	for i, row := range rows {
		obj, err := encodeObject(header, row)
		if err != nil {
			return err
		}
		switch {
		case j.Lines:
			bw.Write(obj)
			bw.WriteString("\n")
		default:
			if i > 0 {
				bw.WriteString(",")
			}
			bw.WriteString("\n  ")
			bw.Write(obj)
		}
	}
	if !j.Lines {
		if len(rows) > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString("]\n")
	}
	return bw.Flush()
}

func encodeObject(header, row []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range header {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		value := ""
		if i < len(row) {
			value = row[i]
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CSV renders comma separated values with a header record.
type CSV struct {
	w io.Writer
}

func (c *CSV) Format(header []string, rows [][]string) error {
	cw := csv.NewWriter(c.w)
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = escapeFormula(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// escapeFormula prefixes cells that spreadsheets would evaluate as
// formulas. Plain numbers are left alone.
func escapeFormula(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return s
		}
		return "'" + s
	}
	return s
}
