package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssc-cloud/ssc-billing-logger/pkg/cinder"
	"github.com/ssc-cloud/ssc-billing-logger/pkg/config"
	"github.com/ssc-cloud/ssc-billing-logger/pkg/export"
)

func newDeletedVolumesCmd() *cobra.Command {
	var (
		configPath string
		dsn        string
		windowDays int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "deleted-volumes",
		Short: "Print volumes deleted within the billing window as TSV",
		Long: `Queries the Cinder database for volumes with deleted = 1 and a
deleted_at inside the trailing billing window (14 days by default) and prints
one "id<TAB>unix-timestamp" line per volume to stdout. Cron redirects the
output for the billing logger to pick up. Diagnostics go to stderr only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			if dsn != "" {
				cfg.Database.DSN = dsn
			}
			if windowDays > 0 {
				cfg.WindowDays = windowDays
			}

			st, err := cinder.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.QueryTimeout())
			defer cancel()

			if err := st.Ping(ctx); err != nil {
				return err
			}

			cutoff := time.Now().UTC().Add(-cfg.Window())
			log.WithFields(logrus.Fields{
				"window_days": cfg.WindowDays,
				"cutoff":      cutoff.Format(time.RFC3339),
			}).Debug("querying deleted volumes")

			start := time.Now()
			vols, err := st.DeletedSince(ctx, cutoff)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"rows":    len(vols),
				"elapsed": time.Since(start).String(),
			}).Debug("query complete")

			return export.WriteTSV(cmd.OutOrStdout(), vols)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&dsn, "dsn", "", "database DSN override")
	cmd.Flags().IntVar(&windowDays, "window-days", 0, "trailing window in days (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	return cmd
}
