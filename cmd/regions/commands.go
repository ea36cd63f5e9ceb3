package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/nvdata-service/internal/geo"
	"github.com/couchcryptid/nvdata-service/internal/observability"
	"github.com/couchcryptid/nvdata-service/internal/regions"
)

func resolveCmd(opts *options) *cobra.Command {
	var unique bool

	c := &cobra.Command{
		Use:   "resolve <x> <y>",
		Short: "List the micro-regions containing a point (longitude, latitude)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := geo.ParsePoint(args[0], args[1])
			if err != nil {
				return err
			}
			store, err := opts.store(opts.logger(cmd), observability.NewUnregisteredMetrics())
			if err != nil {
				return err
			}

			ids := geo.ResolveMicroRegions(pt, store.Features(), true)
			if unique {
				ids = geo.Dedupe(ids)
			}
			if ids == nil {
				ids = []string{}
			}
			return printJSON(cmd.OutOrStdout(), ids)
		},
	}

	c.Flags().BoolVar(&unique, "unique", false, "drop repeated region ids")
	return c
}

func treeCmd(opts *options) *cobra.Command {
	var available bool

	c := &cobra.Command{
		Use:   "tree",
		Short: "Print the region navigation tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if available {
				svc, err := opts.service(cmd)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), svc.Navigation(cmd.Context()))
			}

			store, err := opts.store(opts.logger(cmd), observability.NewUnregisteredMetrics())
			if err != nil {
				return err
			}
			catalog := store.Catalog()
			return printJSON(cmd.OutOrStdout(), regions.BuildTree(catalog, catalog.IDs()))
		},
	}

	c.Flags().BoolVar(&available, "available", false, "restrict to regions with a current bulletin")
	return c
}

func bulletinCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bulletin <region-id>",
		Short: "Print the current bulletin record of a region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ainevaURL == "" {
				return errors.New("--aineva-url or AINEVA_URL is required")
			}
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			rec := svc.Region(cmd.Context(), args[0])
			if rec.IsZero() {
				return printJSON(cmd.OutOrStdout(), struct{}{})
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
}

func advisoryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "advisory",
		Short: "Print the current ARPAV advisory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.arpavURL == "" {
				return errors.New("--arpav-url or ARPAV_URL is required")
			}
			svc, err := opts.service(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), svc.Advisory(cmd.Context()))
		},
	}
}
