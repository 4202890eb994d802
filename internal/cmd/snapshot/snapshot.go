// Package snapshot provides the replay-only CLI verb that rebuilds an
// entity collection from a line-delimited JSON snapshot file, the forum
// core's replacement for a relational migrate step: there is no schema to
// migrate, only a journal to replay against an empty in-memory store.
package snapshot

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/chirino/forumcore/internal/authz"
	"github.com/chirino/forumcore/internal/collation"
	"github.com/chirino/forumcore/internal/config"
	"github.com/chirino/forumcore/internal/entitycollection"
	"github.com/chirino/forumcore/internal/events"
	"github.com/chirino/forumcore/internal/ids"
	"github.com/chirino/forumcore/internal/journal"
	"github.com/chirino/forumcore/internal/repository"
)

// Command returns the snapshot sub-command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Replay a journal snapshot into a fresh entity collection and report its size",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Sources:  cli.EnvVars("FORUMCORE_SNAPSHOT_FILE"),
				Usage:    "Path to the line-delimited JSON snapshot file to replay",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "collation-locale",
				Sources: cli.EnvVars("FORUMCORE_COLLATION_LOCALE"),
				Usage:   "BCP-47 locale used for name/content comparison during replay",
				Value:   "en",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.DefaultConfig()
			cfg.CollationLocale = cmd.String("collation-locale")

			f, err := os.Open(cmd.String("file"))
			if err != nil {
				return fmt.Errorf("open snapshot file: %w", err)
			}
			defer f.Close()

			collator := collation.New(cfg.CollationLocale)
			ec := entitycollection.New(collator)
			authorizer := authz.NewAuthorizer(ec, [5]authz.Limit{})
			repo := repository.New(ec, authorizer, events.NewBus(), ids.UUIDGenerator{})
			repo.ResetVoteExpiresIn = cfg.ResetVoteExpiresIn

			log.Info("Replaying snapshot", "file", cmd.String("file"))
			lines, err := journal.Replay(repo, f)
			if err != nil {
				return fmt.Errorf("replay failed after %d lines: %w", lines, err)
			}

			log.Info("Replay complete",
				"lines", lines,
				"users", ec.Users.Count(),
				"threads", ec.Threads.Count(),
				"messages", ec.Messages.Count(),
				"tags", ec.Tags.Count(),
				"categories", ec.Categories.Count(),
			)
			return nil
		},
	}
}
