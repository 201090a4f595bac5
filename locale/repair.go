package locale

import "bytes"

// RepairResult is the outcome of recovering a table from a malformed blob.
type RepairResult struct {
	Table     *Table
	Recovered int  // Fragments parsed and merged
	Dropped   int  // Fragments that could not be parsed
	Closed    bool // The trailing fragment was unterminated and closed
}

// Repair recovers a table from a blob that is not a single JSON object, most
// commonly several objects written back to back by an earlier bad merge.
//
// Every top-level object is located with a string-aware bracket scanner and
// parsed on its own. Fragments are merged in order and later values win. A
// trailing object cut off before its closing brace is completed with the
// missing closers when that produces valid JSON. Unparseable fragments are
// dropped and counted. Repair never fails; with nothing recoverable the
// result is an empty table.
func Repair(data []byte) *RepairResult {
	result := &RepairResult{Table: NewTable()}

	for _, frag := range scanFragments(data) {
		body := frag.data
		if !frag.complete {
			body = closeFragment(frag.data, frag.open, frag.inString)
		}

		t, err := Parse(body)
		if err != nil {
			result.Dropped++
			continue
		}

		if !frag.complete {
			result.Closed = true
		}
		result.Recovered++
		result.Table.Merge(t)
	}

	return result
}

type fragment struct {
	data     []byte
	complete bool
	open     []byte // Unclosed brackets, innermost last (incomplete fragments only)
	inString bool   // Fragment ends inside a string literal
}

// scanFragments splits data into top-level {...} regions. Text between
// objects, including stray closing brackets, is skipped.
func scanFragments(data []byte) []fragment {
	var (
		frags    []fragment
		stack    []byte
		start    = -1
		inString bool
		escaped  bool
	)

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			stack = append(stack, '{')
		case '[':
			if start >= 0 {
				stack = append(stack, '[')
			}
		case '}', ']':
			if start < 0 || len(stack) == 0 {
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				frags = append(frags, fragment{data: data[start : i+1], complete: true})
				start = -1
			}
		}
	}

	if start >= 0 {
		open := make([]byte, len(stack))
		copy(open, stack)
		frags = append(frags, fragment{
			data:     data[start:],
			open:     open,
			inString: inString,
		})
	}

	return frags
}

// closeFragment appends the closers an unterminated fragment is missing.
// A dangling comma before the closers is removed.
func closeFragment(data, open []byte, inString bool) []byte {
	var b bytes.Buffer
	b.Write(data)
	if inString {
		b.WriteByte('"')
	}

	out := bytes.TrimRight(b.Bytes(), " \t\r\n")
	out = bytes.TrimSuffix(out, []byte(","))

	closed := make([]byte, len(out), len(out)+len(open))
	copy(closed, out)
	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == '{' {
			closed = append(closed, '}')
		} else {
			closed = append(closed, ']')
		}
	}
	return closed
}
