/*
File: classc/internal/emit/emit.go
*/

// Package emit implements the quadruple wire format: one instruction per
// line, "op_int,arg1,arg2,result", UTF-8, trailing newline.
package emit

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/classc-lang/classc/internal/ir"
)

// WriteFile writes quads to path in the on-disk quadruple format.
func WriteFile(path string, quads []ir.Quadruple) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("emit: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, q := range quads {
		if _, err := fmt.Fprintf(w, "%d,%s,%s,%s\n", int(q.Op), q.Arg1, q.Arg2, q.Result); err != nil {
			return fmt.Errorf("emit: write %s: %w", path, err)
		}
	}
	return w.Flush()
}

// ReadFile parses the quadruple file at path back into a []ir.Quadruple,
// the inverse of WriteFile, chiefly used by round-trip tests.
func ReadFile(path string) ([]ir.Quadruple, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("emit: open %s: %w", path, err)
	}
	defer f.Close()

	var quads []ir.Quadruple
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ",", 4)
		if len(fields) != 4 {
			return nil, fmt.Errorf("emit: %s:%d: expected 4 comma-separated fields, got %d", path, lineNo, len(fields))
		}
		opInt, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("emit: %s:%d: invalid opcode %q: %w", path, lineNo, fields[0], err)
		}
		quads = append(quads, ir.Quadruple{
			Op:     ir.Opcode(opInt),
			Arg1:   fields[1],
			Arg2:   fields[2],
			Result: fields[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("emit: %s: %w", path, err)
	}
	return quads, nil
}
