// Command build renders the stored posts and curated index into a static
// site: one page per post, the index page, feeds, sitemap, and robots.txt.
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
	if err := runBuild(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("build: %v", err)
	}
}

func runBuild(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("build", flag.ExitOnError)
	postsDir := flags.String("posts-dir", "content/_posts", "directory holding post documents")
	indexPath := flags.String("index", "content/index.md", "curated index document")
	outputDir := flags.String("out", "public", "output directory for the generated site")
	baseURL := flags.String("base-url", "", "absolute site base URL used for links and feeds")
	drafts := flags.Bool("drafts", false, "include draft posts in the build")
	dryRun := flags.Bool("dry-run", false, "report what would be built without writing")
	skipImport := flags.Bool("skip-import", false, "build from the store without importing first")
	driver := flags.String("driver", "sqlite3", "database driver (sqlite3 or postgres)")
	dsn := flags.String("dsn", "", "database DSN; empty keeps the in-memory store")
	logLevel := flags.String("log-level", "info", "logging level")
	if err := flags.Parse(args); err != nil {
		return err
	}

	res, err := moduleBuilder(bootstrap.Options{
		PostsDir:  *postsDir,
		IndexPath: *indexPath,
		OutputDir: *outputDir,
		BaseURL:   *baseURL,
		Generator: true,
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

	result, err := res.Module.Generator().Build(ctx, blog.BuildOptions{
		DryRun:        *dryRun,
		IncludeDrafts: *drafts,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "built %d pages, %d assets, %d feeds in %s\n",
		result.PagesBuilt, result.AssetsBuilt, result.FeedsBuilt, result.Duration)
	for _, ref := range result.BrokenRefs {
		fmt.Fprintf(out, "broken reference: %s\n", ref)
	}
	if result.DryRun {
		fmt.Fprintln(out, "dry run: nothing was written")
	}
	return nil
}
