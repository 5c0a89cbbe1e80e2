package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	initialized(ctx context.Context) bool
	unlocked() bool
	touch()

	Initialize(ctx context.Context) error
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	Rekey(ctx context.Context) error

	AddEntry(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	ToggleFavorite(ctx context.Context, args []string) error

	Categories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context, args []string) error
	DeleteCategory(ctx context.Context, args []string) error

	Generate(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Backup(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
}

// runREPL starts a read-eval-print loop over the vault commands.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit". Every accepted command counts as activity for the
// auto-lock timer.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pm (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		a.touch()

		switch cmd {
		case "help":
			printHelp(ctx, a)

		case "init":
			_ = a.Initialize(ctx)

		case "login", "unlock":
			_ = a.Unlock(ctx)

		case "lock":
			_ = a.Lock(ctx)

		case "rekey":
			_ = a.Rekey(ctx)

		case "add":
			_ = a.AddEntry(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete", "del":
			_ = a.Delete(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "favorites", "favs":
			_ = a.Favorites(ctx)

		case "fav":
			_ = a.ToggleFavorite(ctx, args)

		case "cats", "categories":
			_ = a.Categories(ctx)

		case "addcat":
			_ = a.AddCategory(ctx)

		case "editcat":
			_ = a.EditCategory(ctx, args)

		case "delcat":
			_ = a.DeleteCategory(ctx, args)

		case "gen":
			_ = a.Generate(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "import":
			_ = a.Import(ctx, args)

		case "backup":
			_ = a.Backup(ctx, args)

		case "settings":
			_ = a.Settings(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(ctx context.Context, a execIface) {
	switch {
	case !a.initialized(ctx):
		printlnFn("Available commands: init, exit")
	case !a.unlocked():
		printlnFn("Available commands: login, backup, exit")
	default:
		printlnFn("Entries:    add, (l)ist [category-id], show <id>, edit <id>, delete <id>, search <text>, favorites, fav <id>")
		printlnFn("Categories: cats, addcat, editcat <id>, delcat <id>")
		printlnFn("Tools:      gen pin|pw|words|check, export csv|json <file>, import csv|json <file>, backup create|list|restore|delete")
		printlnFn("Vault:      lock, rekey, settings, exit")
	}
}
