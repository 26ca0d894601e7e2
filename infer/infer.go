// Package infer derives typed cells from text fields that have already been
// split out of some delimited source. It never reads raw bytes; callers hand
// it strings, it hands back motley Values, columns, or whole DataFrames.
//
// The default rules, applied in order:
//   - "", null, undefined, na, nan (case-insensitive) become Absent
//   - true, false (case-insensitive) become Bool
//   - anything strconv can parse as a float becomes Number (Go's grammar,
//     inf and hex floats included)
//   - digits with a trailing n (a big-integer literal) become Number, parsed
//     at full precision via math/big and then rounded to float64
//   - a valid JSON object or array literal becomes Struct
//   - everything else stays Text, unchanged
package infer

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-motley/motley"
	"github.com/tidwall/gjson"
)

// A Typer maps text fields onto motley Values according to its Config.
type Typer struct {
	conf   Config
	nulls  map[string]bool
	trues  map[string]bool
	falses map[string]bool
}

// NewTyper returns a Typer for the given Config. A nil conf uses the defaults.
func NewTyper(conf *Config) *Typer {
	var c Config
	if conf != nil {
		c = *conf
	}
	c = c.WithDefaults()
	return &Typer{
		conf:   c,
		nulls:  tokenSet(c.NullTokens),
		trues:  tokenSet(c.TrueTokens),
		falses: tokenSet(c.FalseTokens),
	}
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[strings.ToLower(tok)] = true
	}
	return set
}

var defaultTyper = NewTyper(nil)

// Parse maps one field onto a Value using the default Config.
func Parse(field string) motley.Value {
	return defaultTyper.Parse(field)
}

// Values maps each field onto a Value using the default Config.
func Values(fields []string) []motley.Value {
	return defaultTyper.Values(fields)
}

// Parse maps one field onto a Value. The numeric stage accepts everything
// strconv.ParseFloat does, so inf, Infinity, and hex floats like 0x1p4
// become Numbers. A nan field becomes a NaN Number only when the Config
// drops it from the null tokens; the defaults swallow it first.
func (t *Typer) Parse(field string) motley.Value {
	lower := strings.ToLower(field)
	if t.nulls[lower] {
		return motley.Absent
	}
	if t.trues[lower] {
		return motley.Bool(true)
	}
	if t.falses[lower] {
		return motley.Bool(false)
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return motley.Num(f)
	}
	if !t.conf.DisableBigInt {
		if v, ok := parseBigInt(field); ok {
			return v
		}
	}
	if !t.conf.DisableStructs && len(field) > 0 && (field[0] == '{' || field[0] == '[') {
		if gjson.Valid(field) {
			return motley.Obj(gjson.Parse(field).Value())
		}
	}
	return motley.Str(field)
}

// parseBigInt handles big-integer literals: an optional sign, digits, and a
// trailing n.
func parseBigInt(field string) (motley.Value, bool) {
	if len(field) < 2 || field[len(field)-1] != 'n' {
		return motley.Absent, false
	}
	digits := field[:len(field)-1]
	body := digits
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if len(body) == 0 {
		return motley.Absent, false
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return motley.Absent, false
		}
	}
	i, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return motley.Absent, false
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return motley.Num(f), true
}

// Values maps each field onto a Value.
func (t *Typer) Values(fields []string) []motley.Value {
	out := make([]motley.Value, len(fields))
	for i, field := range fields {
		out[i] = t.Parse(field)
	}
	return out
}

// Columns types each named column of fields and hands the result to
// motley.FromColumns.
func (t *Typer) Columns(data map[string][]string, order ...string) *motley.DataFrame {
	typed := make(map[string][]motley.Value, len(data))
	for name, fields := range data {
		typed[name] = t.Values(fields)
	}
	return motley.FromColumns(typed, order...)
}

// Records types each field of each record and hands the result to
// motley.FromRecords. Nil records are passed through so that FromRecords
// reports them.
func (t *Typer) Records(records []map[string]string, columns ...string) *motley.DataFrame {
	typed := make([]map[string]interface{}, len(records))
	for i, record := range records {
		if record == nil {
			continue
		}
		row := make(map[string]interface{}, len(record))
		for name, field := range record {
			row[name] = t.Parse(field)
		}
		typed[i] = row
	}
	return motley.FromRecords(typed, columns...)
}

// Frame types row-major fields under a header, one column per header name.
// Rows narrower than the header are padded with Absent; wider rows are an
// error.
func (t *Typer) Frame(header []string, rows [][]string) (*motley.DataFrame, error) {
	cols := make([]motley.Column, len(header))
	for k, name := range header {
		cols[k] = motley.Column{Name: name, Values: make([]motley.Value, len(rows))}
	}
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("inferring frame: row %d has %d fields, header has %d: %w",
				i, len(row), len(header), motley.ErrLengthMismatch)
		}
		for k := range header {
			if k < len(row) {
				cols[k].Values[i] = t.Parse(row[k])
			} else {
				cols[k].Values[i] = motley.Absent
			}
		}
	}
	df := motley.New(cols...)
	if err := df.Err(); err != nil {
		return nil, fmt.Errorf("inferring frame: %w", err)
	}
	return df, nil
}
