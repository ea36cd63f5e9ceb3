package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/nvdata-service/internal/adapter/upstream"
	"github.com/couchcryptid/nvdata-service/internal/normalize"
	"github.com/couchcryptid/nvdata-service/internal/observability"
	"github.com/couchcryptid/nvdata-service/internal/regions"
	"github.com/couchcryptid/nvdata-service/internal/service"
)

// options are the flags shared by every subcommand.
type options struct {
	regionsDir string
	lang       string
	ainevaURL  string
	arpavURL   string
	timeout    time.Duration
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "regions",
		Short:        "Inspect avalanche regions, bulletins and advisories",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.regionsDir, "regions-dir", sharedcfg.EnvOrDefault("REGIONS_DIR", "data/eaws-regions/public"), "directory holding micro-regions and micro-regions_names")
	flags.StringVar(&opts.lang, "lang", sharedcfg.EnvOrDefault("REGIONS_LANG", "it"), "region names language")
	flags.StringVar(&opts.ainevaURL, "aineva-url", os.Getenv("AINEVA_URL"), "CAAML bulletin feed URL")
	flags.StringVar(&opts.arpavURL, "arpav-url", os.Getenv("ARPAV_URL"), "ARPAV advisory feed URL")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "upstream request timeout")
	flags.BoolVar(&opts.debug, "debug", false, "log to stderr")

	cmd.AddCommand(
		resolveCmd(opts),
		treeCmd(opts),
		bulletinCmd(opts),
		advisoryCmd(opts),
	)
	return cmd
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	if !o.debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *options) store(logger *slog.Logger, metrics *observability.Metrics) (*regions.Store, error) {
	store := regions.NewStore(os.DirFS(o.regionsDir), o.lang, clockwork.NewRealClock(), logger, metrics)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("load regions from %s: %w", o.regionsDir, err)
	}
	return store, nil
}

func (o *options) service(cmd *cobra.Command) (*service.Service, error) {
	logger := o.logger(cmd)
	metrics := observability.NewUnregisteredMetrics()

	store, err := o.store(logger, metrics)
	if err != nil {
		return nil, err
	}
	aineva := upstream.NewClient(upstream.SourceAineva, o.ainevaURL, o.timeout, logger, metrics)
	arpav := upstream.NewClient(upstream.SourceArpav, o.arpavURL, o.timeout, logger, metrics)
	return service.New(aineva, arpav, store, normalize.Compact{}, logger, metrics), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
