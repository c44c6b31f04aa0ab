package main

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/locusstats"
	"github.com/carbocation/pfx"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LOCUSSTATS"

// Config holds the resolved settings for one run.
type Config struct {
	Input    string
	Output   string
	DB       string
	Salvage  bool
	LogLevel string
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "locusstats",
		Short:         "Per-locus mean, variance and 5th/95th percentiles of a tab-separated table",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return pfx.Err(err)
			}

			conf, err := loadConfig(v)
			if err != nil {
				return err
			}

			level, err := log.ParseLevel(conf.LogLevel)
			if err != nil {
				return pfx.Err(err)
			}
			log.SetLevel(level)

			out, err := run(context.Background(), conf, log.StandardLogger())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", out)
			return nil
		},
	}

	initFlags(cmd.Flags())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func initFlags(flags *pflag.FlagSet) {
	flags.StringP("input", "i", "", "Input table (local path or gs://bucket/object, optionally gzip/BGZF/zstd compressed)")
	flags.StringP("output", "o", "", "Output report; defaults to the input name with its extension replaced by "+locusstats.OutputSuffix)
	flags.String("db", "", "Also write the summary records to this SQLite database")
	flags.Bool("salvage", false, "Drop unparseable fields instead of skipping the whole row")
	flags.String("log-level", "info", "Log verbosity (debug, info, warn, error)")
}

func loadConfig(v *viper.Viper) (Config, error) {
	conf := Config{
		Input:    v.GetString("input"),
		Output:   v.GetString("output"),
		DB:       v.GetString("db"),
		Salvage:  v.GetBool("salvage"),
		LogLevel: v.GetString("log-level"),
	}

	if conf.Input == "" {
		return conf, pfx.Err(fmt.Errorf("an input file is required (-i or %s_INPUT)", envPrefix))
	}

	var err error
	if conf.Input, err = locusstats.ExpandHome(conf.Input); err != nil {
		return conf, err
	}

	if conf.Output == "" {
		conf.Output = locusstats.OutputPath(conf.Input)
	} else if conf.Output, err = locusstats.ExpandHome(conf.Output); err != nil {
		return conf, err
	}

	if conf.DB != "" {
		if conf.DB, err = locusstats.ExpandHome(conf.DB); err != nil {
			return conf, err
		}
	}

	return conf, nil
}

func (c Config) policy() locusstats.ParsePolicy {
	if c.Salvage {
		return locusstats.Salvage
	}

	return locusstats.FailFast
}

func (c Config) needsStorage() bool {
	return locusstats.IsGoogleStorage(c.Input) || locusstats.IsGoogleStorage(c.Output)
}

// run processes conf.Input into conf.Output (and conf.DB, if set) and returns
// the report path.
func run(ctx context.Context, conf Config, logger *log.Logger) (output string, err error) {
	var client *storage.Client
	if conf.needsStorage() {
		client, err = storage.NewClient(ctx)
		if err != nil {
			return "", pfx.Err(err)
		}
		defer client.Close()
	}

	in, err := locusstats.OpenInput(ctx, conf.Input, client)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := locusstats.CreateOutput(ctx, conf.Output, client)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = pfx.Err(cerr)
		}
	}()

	tsv, err := locusstats.NewTSVWriter(out)
	if err != nil {
		return "", err
	}

	var sink locusstats.Sink = tsv
	if conf.DB != "" {
		db, dberr := locusstats.CreateSummaryDB(conf.DB, conf.Input)
		if dberr != nil {
			return "", dberr
		}
		defer func() {
			if err != nil {
				db.Abort()
				return
			}
			err = db.Close()
		}()
		logger.WithFields(log.Fields{"path": conf.DB, "driver": locusstats.WhichSQLiteDriver()}).Info("Writing summary database")
		sink = locusstats.MultiSink(tsv, db)
	}

	logger.WithFields(log.Fields{"input": conf.Input, "policy": conf.policy()}).Info("Summarizing loci")

	p := locusstats.NewProcessor(conf.policy(), logger)
	if _, err := p.Run(locusstats.NewRowReader(in), sink); err != nil {
		return "", err
	}

	if err := tsv.Flush(); err != nil {
		return "", err
	}

	return conf.Output, nil
}
