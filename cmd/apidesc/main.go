package main

import (
	"fmt"
	"os"

	"github.com/erraggy/apidesc"
	"github.com/erraggy/apidesc/cmd/apidesc/commands"
)

var handlers = map[string]func([]string) error{
	"schema":   commands.HandleSchema,
	"table":    commands.HandleTable,
	"describe": commands.HandleDescribe,
	"doc":      commands.HandleDoc,
	"publish":  commands.HandlePublish,
	"mcp":      commands.HandleMCP,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apidesc v%s\n", apidesc.Version())
		fmt.Print(apidesc.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handle, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err := handle(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// knownCommands lists every command name in usage order.
var knownCommands = []string{"schema", "table", "describe", "doc", "publish", "mcp", "version", "help"}

// suggestCommand returns the known command closest to input, or "" when none
// is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, cmd := range knownCommands {
		if d := editDistance(input, cmd); d < bestDist {
			best, bestDist = cmd, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`apidesc - API descriptions from Go source

Usage:
  apidesc <command> [options]

Commands:
  schema      Render the schema of a Go type as JSON or YAML
  table       Render the fields of a Go struct type as a Markdown table
  describe    Describe controller methods as HTTP endpoints
  doc         Write Markdown documents for a type, controller or method
  publish     Save endpoint descriptions to a YApi-compatible API catalog
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  apidesc schema Order
  apidesc table -pkg ./api Order
  apidesc describe -format json OrderController
  apidesc doc -o docs/api OrderController
  apidesc publish -url https://yapi.example.com -token $TOKEN OrderController

Run 'apidesc <command> --help' for more information on a command.`)
}
