package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/viper"

	"github.com/nodalhq/nodal-cli/internal/client/config"
	"github.com/nodalhq/nodal-cli/internal/client/project"
	filesync "github.com/nodalhq/nodal-cli/internal/client/sync"
	"github.com/nodalhq/nodal-cli/internal/nodalsdk"
)

var (
	errNotLoggedIn    = errors.New("not logged in, run 'nodal login' first")
	errSessionExpired = errors.New("session expired, run 'nodal login' again")
)

// activeConfig builds the session from viper state. The result is passed
// down explicitly; nothing below the command layer reads viper.
func activeConfig() (*config.Config, error) {
	path := viper.ConfigFileUsed()
	if path == "" {
		path = config.DefaultConfigPath
	}

	cfg := &config.Config{
		Path:         path,
		Email:        viper.GetString("email"),
		ServerURL:    viper.GetString("server_url"),
		RefreshToken: viper.GetString("refresh_token"),
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = config.DefaultServerURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSDK creates an authenticated SDK against serverURL, refreshing the
// access token from the saved refresh token.
func newSDK(ctx context.Context, cfg *config.Config, serverURL string) (*nodalsdk.NodalSDK, error) {
	if !cfg.LoggedIn() {
		return nil, errNotLoggedIn
	}

	// Opaque tokens parse-fail and fall through to the refresh call; only a
	// JWT with a past expiry is known-dead without asking the server.
	if claims, err := nodalsdk.ParseClaims(cfg.RefreshToken); err == nil && claims.IsExpired(0) {
		return nil, errSessionExpired
	}

	sdk, err := nodalsdk.New(serverURL)
	if err != nil {
		return nil, err
	}

	tokens, err := nodalsdk.Refresh(ctx, serverURL, cfg.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("session refresh failed, try 'nodal login' again: %w", err)
	}

	cfg.AccessToken = tokens.AccessToken
	sdk.SetAccessToken(tokens.AccessToken)

	// servers may rotate the refresh token
	if tokens.RefreshToken != "" && tokens.RefreshToken != cfg.RefreshToken {
		cfg.RefreshToken = tokens.RefreshToken
		if err := cfg.Save(); err != nil {
			slog.Warn("could not persist rotated refresh token", "error", err)
		}
	}

	return sdk, nil
}

// projectCtx bundles everything a project command needs: the resolved
// root, its record, an open hash journal and (optionally) the lock.
type projectCtx struct {
	Root    string
	Record  *project.Record
	Journal *filesync.HashJournal
	lock    *flock.Flock
}

// openProject resolves the project containing start. When exclusive is set
// it takes the advisory lock so concurrent mutating commands fail fast.
func openProject(start string, exclusive bool) (*projectCtx, error) {
	root, err := project.FindRoot(start)
	if err != nil {
		return nil, err
	}

	rec, err := project.LoadRecord(root)
	if err != nil {
		if errors.Is(err, project.ErrCorruptRecord) {
			return nil, fmt.Errorf("%w (fix or re-clone %s)", err, root)
		}
		return nil, err
	}

	pc := &projectCtx{Root: root, Record: rec}

	if exclusive {
		pc.lock = flock.New(project.LockPath(root))
		locked, err := pc.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire project lock: %w", err)
		}
		if !locked {
			return nil, errors.New("another nodal command is running in this project")
		}
	}

	journal := filesync.NewHashJournal(project.JournalPath(root))
	if err := journal.Open(); err != nil {
		pc.Close()
		return nil, err
	}
	pc.Journal = journal

	return pc, nil
}

// touchLastSync updates the record's sync timestamp.
func (p *projectCtx) touchLastSync() error {
	p.Record.LastSyncedAt = time.Now().UTC()
	return p.Record.Save(p.Root)
}

func (p *projectCtx) Close() {
	if p.Journal != nil {
		if err := p.Journal.Close(); err != nil {
			slog.Warn("close hash journal", "error", err)
		}
	}
	if p.lock != nil {
		if err := p.lock.Unlock(); err != nil {
			slog.Warn("release project lock", "error", err)
		}
	}
}

// printWarnings renders per-file, non-fatal sync problems.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("%s %s\n", yellow.Render("WARN"), w)
	}
}
