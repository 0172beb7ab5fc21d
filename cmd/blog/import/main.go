// Command import loads post documents from a directory into the blog store,
// honoring the write-once contract, and optionally re-syncs the curated index.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("import: %v", err)
	}
}

func runImport(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("import", flag.ExitOnError)
	postsDir := flags.String("posts-dir", "content/_posts", "directory holding post documents")
	indexPath := flags.String("index", "content/index.md", "curated index document")
	pattern := flags.String("pattern", "", "glob pattern for post documents")
	recursive := flags.Bool("recursive", false, "walk nested directories")
	force := flags.Bool("force", false, "replace stored posts whose documents drifted")
	dryRun := flags.Bool("dry-run", false, "report changes without writing")
	syncIndex := flags.Bool("sync-index", true, "re-sync the curated index after the pass")
	driver := flags.String("driver", "sqlite3", "database driver (sqlite3 or postgres)")
	dsn := flags.String("dsn", "", "database DSN; empty keeps the in-memory store")
	logLevel := flags.String("log-level", "info", "logging level")
	if err := flags.Parse(args); err != nil {
		return err
	}

	res, err := moduleBuilder(bootstrap.Options{
		PostsDir:  *postsDir,
		IndexPath: *indexPath,
		Pattern:   *pattern,
		Recursive: *recursive,
		Driver:    *driver,
		DSN:       *dsn,
		LogLevel:  *logLevel,
	})
	if err != nil {
		return err
	}
	defer res.Close()

	result, err := res.Module.ImportPosts(context.Background(), blog.ImportOptions{
		Force:     *force,
		DryRun:    *dryRun,
		SyncIndex: *syncIndex,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "imported %d, replaced %d, skipped %d, conflicts %d, failed %d\n",
		len(result.Imported), len(result.Replaced), len(result.Skipped), len(result.Conflicts), len(result.Failed))
	for _, conflict := range result.Conflicts {
		fmt.Fprintf(out, "conflict: %s (use -force to replace)\n", conflict.Path)
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(out, "failed: %s: %v\n", failure.Path, failure.Err)
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d documents failed to import", len(result.Failed))
	}
	return nil
}
