// File: pkg/gitrepo/clone.go
package gitrepo

import (
	"context"
	"fmt"
	"io"
	"os"

	git "github.com/go-git/go-git/v5"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// CloneOptions configures a clone.
type CloneOptions struct {
	SSH   bool // rewrite GitHub HTTPS URLs to SSH before cloning
	Depth int  // history depth; 0 clones everything
}

// Clone clones url into dir. A clone failure is fatal to the run: without a
// working tree there is nothing to flatten. Transfer progress is shown only
// when stderr is a terminal.
func Clone(ctx context.Context, url, dir string, opts CloneOptions, logger *zap.Logger) error {
	cloneURL := url
	if opts.SSH {
		cloneURL = ConvertHTTPSToSSH(url)
	}

	var progress io.Writer
	if term.IsTerminal(int(os.Stderr.Fd())) {
		progress = os.Stderr
	}

	logger.Info("Cloning repository",
		zap.String("url", cloneURL), zap.String("dir", dir))

	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      cloneURL,
		Progress: progress,
		Depth:    opts.Depth,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", cloneURL, err)
	}

	logger.Info("Repository cloned", zap.String("dir", dir))
	return nil
}
