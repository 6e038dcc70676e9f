package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gitget/pkg/flatten"
	"gitget/pkg/gitrepo"
	"gitget/pkg/ignore"
	"gitget/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Ignore file gitget looks for in the root of the tree being flattened.
const ignoreFileName = ".gitgetignore"

// options holds the command-line flags for the root command.
type options struct {
	output        string
	treeFile      string
	workers       int
	bufferLimit   int
	maxFileSizeKB int
	excludes      []string
	extensions    []string
	binaryMode    string
	ssh           bool
	depth         int
	keep          bool
	debug         bool
}

// NewRootCmd builds the root command. gitget flattens a repository (cloned
// from a URL) or a local directory into a single delimited document.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "gitget <repository-url|directory>",
		Short: "gitget flattens a git repository into a single text document",
		Long: `gitget clones a git repository (or takes an existing directory) and
concatenates every file into one delimited document, reading files
concurrently while preserving a deterministic output order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger
			if opts.debug {
				var err error
				log, err = logging.New(true, "gitget")
				if err != nil {
					return fmt.Errorf("build debug logger: %w", err)
				}
				defer log.Sync()
			}
			return runGet(cmd.Context(), args[0], opts, log)
		},
	}

	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <repo>.md in the current directory)")
	rootCmd.Flags().StringVar(&opts.treeFile, "tree", "", "also write a directory tree structure to this file")
	rootCmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of concurrent file readers (default: number of CPUs)")
	rootCmd.Flags().IntVar(&opts.bufferLimit, "buffer-limit", flatten.DefaultBufferLimit, "max file contents held in memory awaiting their turn in the output")
	rootCmd.Flags().IntVar(&opts.maxFileSizeKB, "max-file-size", 0, "skip files larger than this many KB (0 = no limit)")
	rootCmd.Flags().StringArrayVarP(&opts.excludes, "exclude", "e", nil, "gitignore-style exclusion pattern (repeatable; .git/ is always excluded)")
	rootCmd.Flags().StringArrayVar(&opts.extensions, "ext", nil, "only include files with this extension, e.g. --ext .go (repeatable; classic set: .txt .md .py .cpp .js)")
	rootCmd.Flags().StringVar(&opts.binaryMode, "binary", string(flatten.BinarySkip), "how to handle binary files: skip, raw or base64")
	rootCmd.Flags().BoolVar(&opts.ssh, "ssh", false, "rewrite GitHub HTTPS URLs to SSH before cloning")
	rootCmd.Flags().IntVar(&opts.depth, "depth", 1, "clone depth (0 = full history)")
	rootCmd.Flags().BoolVar(&opts.keep, "keep", false, "keep the temporary clone directory")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	return rootCmd
}

// Execute runs the root command with signal-aware cancellation.
func Execute(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd(logger)
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd.ExecuteContext(ctx)
}

// runGet resolves the target into a local root directory, cloning if needed,
// then runs the flatten pipeline over it.
func runGet(ctx context.Context, target string, opts *options, logger *zap.Logger) error {
	binaryMode, err := flatten.ParseBinaryMode(opts.binaryMode)
	if err != nil {
		return err
	}

	root, label, cleanup, err := resolveTarget(ctx, target, opts, logger)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	output := opts.output
	if output == "" {
		output = label + ".md"
	}

	rules := ignore.New(".git/", ignoreFileName)
	if err := rules.AddFile(filepath.Join(root, ignoreFileName)); err != nil {
		return err
	}
	rules.AddLines(opts.excludes...)

	stats, err := flatten.Run(ctx, flatten.Config{
		Root:          root,
		Output:        output,
		Tree:          opts.treeFile,
		Label:         label,
		Rules:         rules,
		Extensions:    opts.extensions,
		Workers:       opts.workers,
		BufferLimit:   opts.bufferLimit,
		MaxFileSizeKB: opts.maxFileSizeKB,
		BinaryMode:    binaryMode,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("Wrote combined document",
		zap.String("output", output),
		zap.Int("files", stats.Files),
		zap.Int("unreadable", stats.Unreadable))
	return nil
}

// resolveTarget maps the positional argument to a directory on disk. URLs are
// cloned into a temporary directory that is removed after the run unless
// --keep is set; an existing directory is flattened in place.
func resolveTarget(ctx context.Context, target string, opts *options, logger *zap.Logger) (root, label string, cleanup func(), err error) {
	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		abs, absErr := filepath.Abs(target)
		if absErr != nil {
			return "", "", nil, fmt.Errorf("resolve directory %s: %w", target, absErr)
		}
		return abs, filepath.Base(abs), nil, nil
	}

	if !gitrepo.IsRemoteURL(target) {
		return "", "", nil, fmt.Errorf("target %q is neither an existing directory nor a repository URL", target)
	}

	tempDir, tmpErr := os.MkdirTemp("", "gitget-clone-")
	if tmpErr != nil {
		return "", "", nil, fmt.Errorf("create temporary clone directory: %w", tmpErr)
	}

	cloneDir := filepath.Join(tempDir, "repo")
	if cloneErr := gitrepo.Clone(ctx, target, cloneDir, gitrepo.CloneOptions{
		SSH:   opts.ssh,
		Depth: opts.depth,
	}, logger); cloneErr != nil {
		os.RemoveAll(tempDir)
		return "", "", nil, cloneErr
	}

	cleanup = func() {
		if opts.keep {
			logger.Info("Keeping clone directory", zap.String("dir", cloneDir))
			return
		}
		if rmErr := os.RemoveAll(tempDir); rmErr != nil {
			logger.Warn("Failed to remove clone directory",
				zap.String("dir", tempDir), zap.Error(rmErr))
		}
	}
	return cloneDir, gitrepo.RepoName(target), cleanup, nil
}
