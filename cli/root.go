// Package cli is the hoteltracker command line: the front-desk commands
// and the HTTP server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"hotel-tracker/config"
	"hotel-tracker/services"
	"hotel-tracker/storage"
)

const serviceName = "hotel-tracker"

// Version is stamped at build time with -ldflags "-X hotel-tracker/cli.Version=...".
var Version = "dev"

// app carries what the commands share. The manager is opened on first use
// so that --help and flag errors never touch storage.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	store   storage.Store
	manager *services.HotelManager

	backend string
	dataDir string
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = a.backend
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = config.NewLogger(cfg, cmd.ErrOrStderr())
	return nil
}

func (a *app) open(ctx context.Context) (*services.HotelManager, error) {
	if a.manager != nil {
		return a.manager, nil
	}
	seed, err := config.LoadSeedRooms(a.cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	store, err := config.OpenStore(a.cfg, a.log)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", a.cfg.Backend, err)
	}
	m, err := services.NewHotelManager(ctx, store, services.Options{
		Logger:            a.log.With("component", "manager"),
		SeedRooms:         seed,
		StrictPersistence: a.cfg.StrictPersistence,
	})
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}
	a.store = store
	a.manager = m
	return m, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store, a.manager = nil, nil
	return err
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hoteltracker",
		Short:         "Track hotel rooms and reservations",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.backend, "backend", config.BackendCSV, "storage backend: csv, badger, mysql or memory (overrides STORAGE_BACKEND)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", ".", "directory for CSV files and the badger database (overrides DATA_DIR)")

	root.AddCommand(newServeCmd(a), newRoomsCmd(a), newReservationsCmd(a))
	return root
}

// Execute runs the command tree against args and reports a failure on
// stderr. It returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
	}
	if err != nil {
		fmt.Fprintln(stderr, styles.Error.Render(userMessage(err)))
		return 1
	}
	return 0
}
