// Package main provides the splitwiser CLI. It loads group snapshots into an
// in-memory store and prints balances and settlement plans for them.
// Commands that change groups write the store back to the seed file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mmynk/splitwiser/internal/calculator"
	"github.com/mmynk/splitwiser/internal/config"
	"github.com/mmynk/splitwiser/internal/metrics"
	"github.com/mmynk/splitwiser/internal/models"
	"github.com/mmynk/splitwiser/internal/report"
	"github.com/mmynk/splitwiser/internal/seed"
	"github.com/mmynk/splitwiser/internal/service"
	"github.com/mmynk/splitwiser/internal/storage/memory"
	"github.com/mmynk/splitwiser/pkg/logging"
)

// app holds what the subcommands share once the root command has run.
type app struct {
	configPath  string
	logLevel    string
	showMetrics bool

	conf     *config.Config
	registry *prometheus.Registry
	store    *memory.MemoryStore
	groups   *service.GroupService
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "splitwiser",
		Short:        "Work out who owes whom in a group",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file path (default $CONF_FILE or "+config.DefaultFile+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.showMetrics, "metrics", false, "print collected metrics on exit")

	rootCmd.AddCommand(
		groupsCommand(a),
		showCommand(a),
		balancesCommand(a),
		settleCommand(a),
		newGroupCommand(a),
		addMemberCommand(a),
		addExpenseCommand(a),
		deleteGroupCommand(a),
	)
	return rootCmd
}

// setup loads config, configures logging and seeds the store.
func (a *app) setup(ctx context.Context) error {
	conf, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if a.logLevel != "" {
		conf.LogLevel = a.logLevel
	}
	a.conf = conf
	logging.SetupWithLevel(logging.ParseLevel(conf.LogLevel))

	a.registry = prometheus.NewRegistry()
	a.store = memory.New()
	a.groups = service.NewGroupService(a.store, metrics.New(a.registry))

	var groups []models.Group
	switch {
	case conf.SeedFile != "":
		groups, err = seed.LoadFile(conf.SeedFile)
		if err != nil {
			return err
		}
	case conf.SampleData:
		groups = seed.SampleGroups()
	}
	if err := seed.Apply(ctx, a.store, groups); err != nil {
		return err
	}

	slog.Debug("Store initialized", "groups", len(groups), "seed_file", conf.SeedFile)
	return nil
}

func (a *app) teardown(w io.Writer) error {
	if a.showMetrics && a.registry != nil {
		if err := writeMetrics(w, a.registry); err != nil {
			return err
		}
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func groupsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := a.groups.ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			return report.Groups(cmd.OutOrStdout(), groups)
		},
	}
}

func showCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <group-id>",
		Short: "Show the members and expenses of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseGroupID(args[0])
			if err != nil {
				return err
			}
			group, err := a.groups.GetGroup(cmd.Context(), groupID)
			if err != nil {
				return err
			}
			return report.Group(cmd.OutOrStdout(), group, a.conf.Currency)
		},
	}
}

func balancesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances <group-id>",
		Short: "Show what each member paid, owes and is owed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := parseGroupID(args[0])
			if err != nil {
				return err
			}
			balances, err := a.groups.GroupBalances(cmd.Context(), groupID)
			if err != nil {
				return err
			}
			return report.Balances(cmd.OutOrStdout(), balances, a.conf.Currency)
		},
	}
}

func settleCommand(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "settle [group-id]",
		Short: "Print the transfers that settle a group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && !all {
				groupID, err := parseGroupID(args[0])
				if err != nil {
					return err
				}
				return a.settle(cmd, groupID)
			}
			if !all {
				return errors.New("give a group id or --all")
			}
			return a.settleAll(cmd)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "settle every group")
	return cmd
}

func (a *app) settle(cmd *cobra.Command, groupID int) error {
	plan, err := a.groups.SettleGroup(cmd.Context(), groupID)
	if err != nil {
		return err
	}
	return report.Plan(cmd.OutOrStdout(), plan.Group, plan.Balances, plan.Settlements, a.conf.Currency)
}

// settleAll prints every group's plan. Groups that fail validation are
// reported and skipped so one bad expense does not hide the others.
func (a *app) settleAll(cmd *cobra.Command) error {
	groups, err := a.groups.ListGroups(cmd.Context())
	if err != nil {
		return err
	}

	var failed int
	out := cmd.OutOrStdout()
	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := a.settle(cmd, group.ID); err != nil {
			if !errors.Is(err, calculator.ErrInvalidGroup) {
				return err
			}
			failed++
			fmt.Fprintf(out, "%s\n\nCannot settle: %v\n", group.Name, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d groups could not be settled", failed, len(groups))
	}
	return nil
}

func parseGroupID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid group id %q", arg)
	}
	return id, nil
}
