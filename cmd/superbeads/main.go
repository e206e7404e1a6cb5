// Package main is the superbeads CLI: it archives work-session
// summaries as markdown session logs and assembles resume context
// from them, so a context-limited assistant can pick up prior work
// without replaying full transcripts.
package main

import "github.com/EliaAlberti/superbeads/cmd/superbeads/commands"

func main() {
	commands.Execute()
}
