package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/desertthunder/fanstats/internal/shared"
	"github.com/desertthunder/fanstats/internal/store"
	"github.com/urfave/cli/v3"
)

type keyLister interface {
	List() ([]string, error)
}

type historian interface {
	History(limit int) ([]store.HistoryEntry, error)
}

// StoreKeys lists the stored keys.
func (r *Runner) StoreKeys(ctx context.Context, cmd *cli.Command) error {
	lister, ok := r.store.(keyLister)
	if !ok {
		return fmt.Errorf("%w: store cannot list keys", shared.ErrNotImplemented)
	}

	keys, err := lister.List()
	if err != nil {
		return err
	}

	if !cmd.Bool("all") {
		for _, k := range keys {
			r.writePlain("%s\n", k)
		}
		return nil
	}

	for _, k := range store.Keys {
		state := "unset"
		if slices.Contains(keys, k) {
			state = "set"
		}
		r.writePlain("%-18s %s\n", k, state)
	}
	for _, k := range keys {
		if !slices.Contains(store.Keys, k) {
			r.writePlain("%-18s set (unknown)\n", k)
		}
	}
	return nil
}

// StoreGet prints the raw value under a key.
func (r *Runner) StoreGet(ctx context.Context, cmd *cli.Command) error {
	key := cmd.StringArg("key")
	if key == "" {
		return fmt.Errorf("%w: key", shared.ErrMissingArgument)
	}

	value, ok, err := r.store.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no value stored under %q", shared.ErrInvalidArgument, key)
	}
	r.writePlain("%s\n", value)
	return nil
}

// StoreHistory prints recent writes, newest first.
func (r *Runner) StoreHistory(ctx context.Context, cmd *cli.Command) error {
	h, ok := r.store.(historian)
	if !ok {
		return fmt.Errorf("%w: history is only recorded by the sqlite store", shared.ErrNotImplemented)
	}

	entries, err := h.History(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		r.writePlain("No writes recorded\n")
		return nil
	}
	for _, e := range entries {
		r.writePlain("%s  %-6s %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Op, e.Key)
	}
	return nil
}
