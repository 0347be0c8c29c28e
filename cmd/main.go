package main

import (
	"fmt"
	"os"

	"github.com/ostafen/growtable/cmd/cmd"
	"github.com/ostafen/growtable/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// PrintLogo writes to stderr so that command output can be piped.
func PrintLogo() {
	w := os.Stderr
	fmt.Fprintln(w, "                          _        _     _      ")
	fmt.Fprintln(w, "  __ _ _ __ _____      __| |_ __ _| |__ | | ___ ")
	fmt.Fprintln(w, " / _` | '__/ _ \\ \\ /\\ / /| __/ _` | '_ \\| |/ _ \\")
	fmt.Fprintln(w, "| (_| | | | (_) \\ V  V / | || (_| | |_) | |  __/")
	fmt.Fprintln(w, " \\__, |_|  \\___/ \\_/\\_/   \\__\\__,_|_.__/|_|\\___|")
	fmt.Fprintln(w, " |___/                                          ")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Growable chained hash table")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Version:    %s\n", env.Version)
	fmt.Fprintf(w, "Commit:     %s\n", env.CommitHash)
	fmt.Fprintf(w, "Build Time: %s\n", env.BuildTime)
	fmt.Fprintln(w)
}
