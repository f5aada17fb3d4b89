package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"media-ingest/internal/database"
	"media-ingest/internal/engine"
	"media-ingest/internal/ingest"
	"media-ingest/internal/mediatypes"
	"media-ingest/internal/startup"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitPartial = 3
)

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.NewFFmpeg(os.Getenv("FFMPEG_PATH"), os.Getenv("FFPROBE_PATH"))
	os.Exit(run(ctx, eng, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, eng engine.Engine, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return exitUsage
	}

	var err error
	code := exitOK
	switch args[0] {
	case "import":
		code, err = runImport(ctx, eng, args[1:], stdout, stderr)
	case "replace":
		err = runReplace(ctx, eng, args[1:], stdout, stderr)
	case "list":
		err = runList(ctx, args[1:], stdout, stderr)
	case "version":
		err = writeResult(stdout, startup.GetBuildInfo())
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		// Sanitize command input using allowlist to break taint chain
		fmt.Fprintf(stderr, "Unknown command: %s\n", sanitizeCommand(args[0]))
		printUsage(stderr)
		return exitUsage
	}

	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitUsage
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	return code
}

// sanitizeCommand returns a safe representation of a command string for display.
// It uses an allowlist approach, replacing any character that is not alphanumeric,
// a hyphen, or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Media Ingest")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: ingest <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  import  -project DIR [-kind video|audio|image] FILE...")
	fmt.Fprintln(w, "  replace -project DIR -path RELATIVE FILE")
	fmt.Fprintln(w, "  list    -project DIR [-kind video|audio|image]")
	fmt.Fprintln(w, "  version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DATABASE_DIR  - Catalog directory; imports are recorded when set")
	fmt.Fprintln(w, "  FFMPEG_PATH   - ffmpeg binary (default: ffmpeg)")
	fmt.Fprintln(w, "  FFPROBE_PATH  - ffprobe binary (default: ffprobe)")
}

// commonFlags are shared by every subcommand that touches a project.
type commonFlags struct {
	project string
	dbDir   string
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := &commonFlags{}
	fs.StringVar(&c.project, "project", "", "project root directory (required)")
	fs.StringVar(&c.dbDir, "db", os.Getenv("DATABASE_DIR"), "catalog directory")
	return fs, c
}

// parseFlags parses args, reporting bad flags as usage errors. The flag
// package has already printed the details.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func (c *commonFlags) validate() error {
	if c.project == "" {
		return fmt.Errorf("%w: -project is required", errUsage)
	}
	return nil
}

// openCatalog opens the catalog when a directory is configured. The returned
// close func is never nil.
func (c *commonFlags) openCatalog(ctx context.Context) (*database.Database, func(), error) {
	if c.dbDir == "" {
		return nil, func() {}, nil
	}
	if err := os.MkdirAll(c.dbDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create catalog directory: %w", err)
	}
	db, err := database.New(ctx, filepath.Join(c.dbDir, startup.DatabaseFile))
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	return db, func() { _ = db.Close() }, nil
}

func parseKindFlag(s string) (mediatypes.Kind, error) {
	if s == "" {
		return "", nil
	}
	kind, ok := mediatypes.ParseKind(s)
	if !ok {
		return "", fmt.Errorf("%w: -kind must be video, audio or image", errUsage)
	}
	return kind, nil
}

func newImporter(ctx context.Context, eng engine.Engine, c *commonFlags) (*ingest.Importer, func(), error) {
	db, closeDB, err := c.openCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	var opts []ingest.Option
	if db != nil {
		opts = append(opts, ingest.WithCatalog(db))
	}
	return ingest.New(eng, opts...), closeDB, nil
}

// runImport imports one file, or several as a batch. A batch where some
// files fail exits with exitPartial.
func runImport(ctx context.Context, eng engine.Engine, args []string, stdout, stderr io.Writer) (int, error) {
	fs, c := newFlagSet("import", stderr)
	kindFlag := fs.String("kind", "", "force the media kind")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}
	if err := c.validate(); err != nil {
		return exitUsage, err
	}
	if fs.NArg() == 0 {
		return exitUsage, fmt.Errorf("%w: at least one file is required", errUsage)
	}
	kind, err := parseKindFlag(*kindFlag)
	if err != nil {
		return exitUsage, err
	}

	im, closeDB, err := newImporter(ctx, eng, c)
	if err != nil {
		return exitFailed, err
	}
	defer closeDB()

	if fs.NArg() == 1 {
		res, err := im.Import(ctx, c.project, fs.Arg(0), kind)
		if err != nil {
			return exitFailed, err
		}
		return exitOK, writeResult(stdout, res)
	}

	items := im.ImportBatch(ctx, c.project, fs.Args(), kind)
	code := exitOK
	for _, item := range items {
		if item.Err != nil {
			fmt.Fprintf(stderr, "Failed: %s: %v\n", item.SourcePath, item.Err)
			code = exitPartial
		}
	}
	return code, writeResult(stdout, items)
}

func runReplace(ctx context.Context, eng engine.Engine, args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("replace", stderr)
	rel := fs.String("path", "", "relative path of the managed file to replace (required)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}
	if *rel == "" || fs.NArg() != 1 {
		return fmt.Errorf("%w: replace needs -path and exactly one file", errUsage)
	}

	im, closeDB, err := newImporter(ctx, eng, c)
	if err != nil {
		return err
	}
	defer closeDB()

	res, err := im.Replace(ctx, c.project, *rel, fs.Arg(0))
	if err != nil {
		return err
	}
	return writeResult(stdout, res)
}

func runList(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("list", stderr)
	kindFlag := fs.String("kind", "", "only list assets of this kind")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}
	if c.dbDir == "" {
		return fmt.Errorf("%w: list needs -db or DATABASE_DIR", errUsage)
	}
	kind, err := parseKindFlag(*kindFlag)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(c.project)
	if err != nil {
		return err
	}

	db, closeDB, err := c.openCatalog(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	assets, err := db.ListAssets(ctx, root, string(kind))
	if err != nil {
		return err
	}
	return writeResult(stdout, assets)
}

func writeResult(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
