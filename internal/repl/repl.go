/*
File: classc/internal/repl/repl.go
*/

// Package repl implements the classc interactive Read-Eval-Print Loop: each
// line the user types is wrapped in a throwaway `class REPL { public int
// main() { ... } }` shell, run through the same lexer/parser/generator
// pipeline as a file, and the resulting quadruples are printed.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/classc-lang/classc/internal/diagnostics"
	"github.com/classc-lang/classc/internal/ir"
	"github.com/classc-lang/classc/internal/lexer"
	"github.com/classc-lang/classc/internal/parser"
	"github.com/classc-lang/classc/internal/prettyprint"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for one interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl builds a Repl with the given banner/version/author/separator/
// license/prompt.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo prints the startup banner to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to classc!")
	cyanColor.Fprintf(writer, "%s\n", "Type a statement and press enter — it runs inside an implicit main().")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop against reader/writer until the user exits or
// readline hits EOF.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt: r.Prompt,
		Stdin:  io.NopCloser(reader),
		Stdout: writer,
	})
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.execute(writer, line)
	}
}

// execute runs one REPL line through the full pipeline and prints either
// its quadruples or the diagnostic that stopped it. Every front-end stage
// returns structured errors rather than panicking, so the recover here only
// guards against a genuinely unexpected bug instead of doubling as the
// normal error path.
func (r *Repl) execute(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[INTERNAL ERROR] %v\n", recovered)
		}
	}()

	quads, err := Compile(wrapInShell(line))
	if err != nil {
		if diag, ok := err.(*diagnostics.Error); ok {
			redColor.Fprintf(writer, "%s\n%s\n", diag.Prefix(), diag.Error())
		} else {
			redColor.Fprintf(writer, "%v\n", err)
		}
		return
	}
	yellowColor.Fprint(writer, prettyprint.Quadruples(quads))
}

func wrapInShell(line string) string {
	return "class REPL {\npublic int main() {\n" + line + "\n}\n}\n"
}

// Compile runs the full lexer -> parser -> IR pipeline over src, returning
// its quadruple list or the first diagnostic that stopped it.
func Compile(src string) ([]ir.Quadruple, error) {
	tokens, lines, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	tree, err := parser.Parse(tokens, lines)
	if err != nil {
		return nil, err
	}
	return ir.Generate(tree)
}
