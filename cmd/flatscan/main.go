// Command flatscan parses and inspects flat text files.
//
//	flatscan parse orders.csv            # print the normalized rows
//	flatscan inspect --format json *.csv # per-file column-count report
//	cat export.txt | flatscan parse -    # read standard input
//
// Settings come from struct defaults, an optional YAML profile (--profile),
// FLATFILE_* environment variables (a .env file is loaded first) and
// finally command-line flags.
//
// SIGINT or SIGTERM cancels the run: files not yet parsed fail with RUN001.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/flatfile/internal/core"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := execute(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		}
		fmt.Fprintln(os.Stderr, "flatscan:", err)
		os.Exit(1)
	}
}
