// Command list prints the curated (title, path) pairs from the index
// document in document order.
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
	if err := runList(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("list: %v", err)
	}
}

func runList(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("list", flag.ExitOnError)
	postsDir := flags.String("posts-dir", "content/_posts", "directory holding post documents")
	indexPath := flags.String("index", "content/index.md", "curated index document")
	skipImport := flags.Bool("skip-import", false, "list from the store without importing first")
	driver := flags.String("driver", "sqlite3", "database driver (sqlite3 or postgres)")
	dsn := flags.String("dsn", "", "database DSN; empty keeps the in-memory store")
	logLevel := flags.String("log-level", "warn", "logging level")
	if err := flags.Parse(args); err != nil {
		return err
	}

	res, err := moduleBuilder(bootstrap.Options{
		PostsDir:  *postsDir,
		IndexPath: *indexPath,
		Driver:    *driver,
		DSN:       *dsn,
		LogLevel:  *logLevel,
	})
	if err != nil {
		return err
	}
	defer res.Close()

	ctx := context.Background()
	if !*skipImport {
		if _, err := res.Module.ImportPosts(ctx, blog.ImportOptions{SyncIndex: true}); err != nil {
			return fmt.Errorf("import posts: %w", err)
		}
	}

	posts, err := res.Module.ListPosts(ctx)
	if err != nil {
		return err
	}

	for title, path := range posts {
		fmt.Fprintf(out, "%s\t%s\n", title, path)
	}
	return nil
}
