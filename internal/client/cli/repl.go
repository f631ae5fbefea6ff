package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasConversation() bool
	Open(ctx context.Context, args []string) error
	SendText(ctx context.Context) error
	Knock(ctx context.Context) error
	SendLocation(ctx context.Context) error
	Attach(ctx context.Context) error
	CancelUpload(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	SaveAsset(ctx context.Context, args []string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Command handlers log their own errors; the loop stays resilient and only
// does I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.hasConversation() {
				printlnFn("Available commands: open <id>, send, knock, location, attach, cancel <upload-id>, (l)ist, delete <message-id>, save <asset-id> <path>, exit")
			} else {
				printlnFn("Available commands: open <conversation-id>, exit")
			}

		case "open":
			_ = a.Open(ctx, args)

		case "send":
			_ = a.SendText(ctx)

		case "knock":
			_ = a.Knock(ctx)

		case "location":
			_ = a.SendLocation(ctx)

		case "attach":
			_ = a.Attach(ctx)

		case "cancel":
			_ = a.CancelUpload(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "delete":
			_ = a.Delete(ctx, args)

		case "save":
			_ = a.SaveAsset(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
