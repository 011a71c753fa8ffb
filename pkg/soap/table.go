package soap

import (
	"math"
	"strconv"
	"strings"
)

const (
	tableStartTag = "<Table>"
	tableEndTag   = "</Table>"
)

// Table is the raw content of one <Table> record block of a DataSet style response
type Table string

// ScanTables walks body and returns every <Table>...</Table> block in input order.
// Blocks are not nested and carry no attributes. A trailing block with no closing tag
// stops the scan.
func ScanTables(body string) []Table {
	tables := []Table{}

	offset := 0
	for {
		start := strings.Index(body[offset:], tableStartTag)
		if start == -1 {
			break
		}
		start += offset + len(tableStartTag)

		end := strings.Index(body[start:], tableEndTag)
		if end == -1 {
			break
		}
		end += start

		tables = append(tables, Table(body[start:end]))
		offset = end + len(tableEndTag)
	}

	return tables
}

// Text returns the content of the first <tag> child, or "" when it is missing
func (t Table) Text(tag string) string {
	block := string(t)
	startTag := "<" + tag + ">"
	endTag := "</" + tag + ">"

	start := strings.Index(block, startTag)
	if start == -1 {
		return ""
	}
	start += len(startTag)

	end := strings.Index(block[start:], endTag)
	if end == -1 {
		return ""
	}

	return UnescapeEntities(block[start : start+end])
}

// Int parses the <tag> child as an integer, defaulting to 0
func (t Table) Int(tag string) int {
	value := strings.TrimSpace(t.Text(tag))

	if n, err := strconv.Atoi(value); err == nil {
		return n
	}

	// upstream sometimes sends integral values as decimals, eg "12.0"
	if f, err := strconv.ParseFloat(value, 64); err == nil && isFinite(f) && f >= math.MinInt && f < math.MaxInt {
		return int(f)
	}

	return 0
}

// Float parses the <tag> child as a float, defaulting to 0.
// Decimal commas are accepted.
func (t Table) Float(tag string) float64 {
	value := strings.TrimSpace(t.Text(tag))
	value = strings.Replace(value, ",", ".", 1)

	if f, err := strconv.ParseFloat(value, 64); err == nil && isFinite(f) {
		return f
	}

	return 0
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
