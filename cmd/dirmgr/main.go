package main

import (
	"fmt"
	"os"

	"github.com/kerem-kaynak/mention-tokenizer/internal/observability"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/directory"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
)

func main() {
	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}

	dirPath := os.Args[1]
	command := os.Args[2]
	log := observability.WithFields("directory", dirPath, "command", command)

	dir, err := directory.New(dirPath)
	if err != nil {
		log.Error("loading directory", "error", err)
		os.Exit(1)
	}
	defer dir.Close()

	switch command {
	case "add":
		if len(os.Args) < 4 {
			fmt.Println("Error: add requires at least one identifier")
			os.Exit(1)
		}
		ids := os.Args[3:]
		for _, id := range ids {
			if !validIdentifier(id) {
				fmt.Fprintf(os.Stderr, "Error: '%s' is not a valid identifier\n", id)
				os.Exit(1)
			}
		}
		if err := dir.Add(ids...); err != nil {
			log.Error("adding identifiers", "error", err)
			os.Exit(1)
		}
		for _, id := range ids {
			fmt.Printf("Added: %s\n", id)
		}
		fmt.Printf("Total identifiers: %d\n", dir.Count())

	case "remove":
		if len(os.Args) < 4 {
			fmt.Println("Error: remove requires at least one identifier")
			os.Exit(1)
		}
		if err := dir.Remove(os.Args[3:]...); err != nil {
			log.Error("removing identifiers", "error", err)
			os.Exit(1)
		}
		for _, id := range os.Args[3:] {
			fmt.Printf("Removed: %s\n", id)
		}
		fmt.Printf("Total identifiers: %d\n", dir.Count())

	case "contains":
		if len(os.Args) < 4 {
			fmt.Println("Error: contains requires an identifier")
			os.Exit(1)
		}
		id := os.Args[3]
		if dir.Contains(id) {
			fmt.Printf("'%s' exists in directory\n", id)
		} else {
			fmt.Printf("'%s' NOT in directory\n", id)
			os.Exit(1)
		}

	case "rebuild":
		if err := dir.Rebuild(); err != nil {
			log.Error("rebuilding FST", "error", err)
			os.Exit(1)
		}
		fmt.Printf("FST rebuilt. Total identifiers: %d\n", dir.Count())

	case "stats":
		fmt.Printf("Directory: %s\n", dirPath)
		fmt.Printf("Identifier count: %d\n", dir.Count())

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// validIdentifier reports whether id could appear in a mention token.
func validIdentifier(id string) bool {
	if id == "" || len(id) > mention.MaxIdentifierLen || !mention.IsIdentStart(rune(id[0])) {
		return false
	}
	for i := 1; i < len(id); i++ {
		if !mention.IsIdentChar(rune(id[i])) {
			return false
		}
	}
	return true
}

func printUsage() {
	fmt.Println("Usage: dirmgr <ids.txt> <command> [args...]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  add <id> [id...]        Add identifiers to the directory")
	fmt.Println("  remove <id> [id...]     Remove identifiers from the directory")
	fmt.Println("  contains <id>           Check if an identifier exists")
	fmt.Println("  rebuild                 Rebuild FST from text file")
	fmt.Println("  stats                   Show directory statistics")
}
