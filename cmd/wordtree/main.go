// Command wordtree adds, updates and looks up words in the word-storage
// backend and shows a word's parents and children as a collapsible tree.
//
// Usage:
//
//	wordtree query <word> [-o tree|json|yaml] [--expand]
//	wordtree add <word> <meaning...>
//	wordtree update <word> <meaning...>
//	wordtree speak <text...>
//	wordtree tui
//	wordtree serve
//	wordtree version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
