package sync

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/nodalhq/nodal-cli/internal/utils"
)

// Static exclusion rules for a project tree, gitignore syntax. Hidden
// entries are skipped except .gitignore itself, which the platform tracks.
// `types` holds auto-generated type declarations and is never synced.
var defaultExcludeLines = []string{
	".*",
	"!.gitignore",
	"types/",
	"node_modules/",
}

const (
	compiledExt = ".js"
	sourceExt   = ".ts"
)

// Scanner walks a project directory and produces the local fingerprint
// mapping: root-relative forward-slash path -> content fingerprint.
type Scanner struct {
	rootDir string
	exclude *gitignore.GitIgnore
}

func NewScanner(rootDir string) *Scanner {
	return &Scanner{
		rootDir: rootDir,
		exclude: gitignore.CompileIgnoreLines(defaultExcludeLines...),
	}
}

// Scan rebuilds the mapping from scratch. Exclusions apply top-down: an
// excluded directory is not descended into. Unreadable files are skipped
// with a warning and do not fail the scan.
func (s *Scanner) Scan() (map[string]string, error) {
	state := make(map[string]string)

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk error: %w", walkErr)
		}

		if path == s.rootDir {
			return nil
		}

		relPath, err := filepath.Rel(s.rootDir, path)
		if err != nil {
			return fmt.Errorf("walk rel path: %w", err)
		}
		relPath = utils.NormPath(relPath)

		if d.IsDir() {
			if s.exclude.MatchesPath(relPath + "/") {
				return fs.SkipDir
			}
			return nil
		}

		if s.exclude.MatchesPath(relPath) {
			return nil
		}

		// A compiled .js next to a .ts of the same base name is derived
		// output and not tracked; a standalone .js is a real source file.
		if strings.HasSuffix(path, compiledExt) {
			sourcePath := strings.TrimSuffix(path, compiledExt) + sourceExt
			if utils.FileExists(sourcePath) {
				return nil
			}
		}

		hash, err := FingerprintFile(path)
		if err != nil {
			slog.Warn("scan: skipping unreadable file", "path", relPath, "error", err)
			return nil
		}

		state[relPath] = hash
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", s.rootDir, err)
	}

	return state, nil
}
