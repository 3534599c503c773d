/*
File: classc/cmd/classc/main.go
*/

// Command classc is the entry point for the front end. It runs a source
// file through the lexer, parser, and IR generator and writes out its
// quadruples, or drops the caller into an interactive REPL when given no
// file argument.
package main

import (
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/classc-lang/classc/internal/diagnostics"
	"github.com/classc-lang/classc/internal/emit"
	"github.com/classc-lang/classc/internal/ir"
	"github.com/classc-lang/classc/internal/lexer"
	"github.com/classc-lang/classc/internal/parser"
	"github.com/classc-lang/classc/internal/prettyprint"
	"github.com/classc-lang/classc/internal/repl"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

const (
	version = "v0.1.0"
	author  = "classc contributors"
	license = "MIT"
	prompt  = "classc >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
   _____ _               _____
  / ____| |        /\   / ____|
 | |    | |       /  \ | (___
 | |    | |      / /\ \ \___ \
 | |____| |____ / ____ \____) |
  \_____|______/_/    \_\_____/
`
)

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		repl.NewRepl(banner, version, author, line, license, prompt).Start(os.Stdin, os.Stdout)
		return
	}

	switch args[0] {
	case "--help", "-h":
		showHelp()
		return
	case "--version", "-v":
		showVersion()
		return
	case "server":
		if len(args) < 2 {
			redColor.Fprintf(os.Stderr, "[USAGE ERROR] missing port. Usage: classc server <port>\n")
			os.Exit(1)
		}
		startServer(args[1])
		return
	}

	runFile(args)
}

func showHelp() {
	cyanColor.Println("classc - a recursive-descent front end for a small C-like language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  classc                      Start an interactive REPL")
	yellowColor.Println("  classc <file>               Compile a file to quadruples")
	yellowColor.Println("  classc -verbose <file>      Also print the parsed syntax tree")
	yellowColor.Println("  classc -o <out> <file>      Write quadruples to <out> instead of stdout")
	yellowColor.Println("  classc server <port>        Start a REPL server on <port>")
	yellowColor.Println("  classc --help               Display this help message")
	yellowColor.Println("  classc --version            Display version information")
}

func showVersion() {
	cyanColor.Printf("classc %s (license: %s, %s)\n", version, license, author)
}

// runFile parses classc's tiny flag surface (-verbose, -o <path>) off the
// front of args; the first non-flag argument is the source file.
func runFile(args []string) {
	verbose := false
	outPath := ""
	var file string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-verbose":
			verbose = true
		case "-o":
			if i+1 >= len(args) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] -o requires a path\n")
				os.Exit(1)
			}
			i++
			outPath = args[i]
		default:
			file = args[i]
		}
	}

	if file == "" {
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] no source file given\n")
		os.Exit(1)
	}

	source, err := os.ReadFile(file)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read %s: %v\n", file, err)
		os.Exit(1)
	}

	tokens, lines, err := lexer.Scan(string(source))
	if err != nil {
		reportAndExit(err)
	}

	tree, err := parser.Parse(tokens, lines)
	if err != nil {
		reportAndExit(err)
	}
	if verbose {
		cyanColor.Println(prettyprint.Tree(tree))
	}

	quads, err := ir.Generate(tree)
	if err != nil {
		reportAndExit(err)
	}

	if outPath != "" {
		if err := emit.WriteFile(outPath, quads); err != nil {
			redColor.Fprintf(os.Stderr, "[FILE ERROR] %v\n", err)
			os.Exit(1)
		}
		return
	}
	yellowColor.Print(prettyprint.Quadruples(quads))
}

func reportAndExit(err error) {
	if diag, ok := err.(*diagnostics.Error); ok {
		redColor.Fprintf(os.Stderr, "%s\n%s\n", diag.Prefix(), diag.Error())
	} else {
		redColor.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to listen on port %s: %v\n", port, err)
		os.Exit(1)
	}
	cyanColor.Printf("classc REPL server listening on :%s\n", port)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("new client connected from %s\n", conn.RemoteAddr())
	repl.NewRepl(banner, version, author, line, license, prompt).Start(conn, conn)
	cyanColor.Printf("client disconnected from %s\n", conn.RemoteAddr())
}
