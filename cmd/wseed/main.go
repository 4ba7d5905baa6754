package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"workseed/internal/config"
	"workseed/internal/db"
	"workseed/internal/gen"
	"workseed/internal/graph"
	"workseed/internal/migrate"
	"workseed/internal/sink"
	"workseed/internal/validate"
)

var rootCmd = &cobra.Command{
	Use:   "wseed",
	Short: "Workseed synthetic workspace generator",
	Long: `Workseed generates a complete, internally consistent project-management
workspace: one organization with teams, users, projects, tasks, comments,
custom fields, tags, attachments, and portfolios. The same seed always
produces the same dataset, byte for byte, so fixtures stay stable across
machines and runs.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(configCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	_ = godotenv.Load()
	viper.SetEnvPrefix("WORKSEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (YAML)")
	rootCmd.PersistentFlags().Int64("seed", 0, "override the run seed")
	rootCmd.PersistentFlags().Bool("verbose", false, "debug logging")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func logger() *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := viper.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if viper.IsSet("seed") && viper.GetInt64("seed") != 0 {
		cfg.Seed = viper.GetInt64("seed")
	}
	return cfg, nil
}

// run generates and validates a dataset. Violations abort before anything
// touches a sink.
func run(ctx context.Context, log *slog.Logger) (*config.Config, *graph.Graph, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log.Info("generating dataset", "seed", cfg.Seed, "employees", cfg.Employees)
	start := time.Now()
	g, err := gen.New(cfg, gen.Options{}).Generate(ctx)
	if err != nil {
		return nil, nil, err
	}
	log.Info("generation finished", "elapsed", time.Since(start).Round(time.Millisecond))

	if violations := validate.Check(g, cfg.Window().End); len(violations) > 0 {
		for i, v := range violations {
			if i == 10 {
				log.Error("further violations suppressed", "total", len(violations))
				break
			}
			log.Error("integrity violation", "kind", v.Kind, "id", v.ID, "rule", v.Rule, "detail", v.Detail)
		}
		return nil, nil, &validate.Error{Violations: violations}
	}
	return cfg, g, nil
}

func generateCmd() *cobra.Command {
	var out, jsonOut string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a dataset and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			_, g, err := run(cmd.Context(), log)
			if err != nil {
				return err
			}

			if jsonOut != "" {
				f, err := os.Create(jsonOut)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := g.Dump(f); err != nil {
					return fmt.Errorf("write %s: %w", jsonOut, err)
				}
				log.Info("wrote JSON dump", "path", jsonOut)
			}

			conn, err := db.Open(db.Config{Path: out})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			if err := (&sink.SQLite{DB: conn}).Persist(cmd.Context(), g); err != nil {
				return err
			}
			log.Info("committed dataset", "path", out)
			printCounts(g)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "workseed.db", "SQLite output path")
	cmd.Flags().StringVar(&jsonOut, "json-out", "", "also write a JSON dump to this path")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Generate in memory and print entity counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, err := run(cmd.Context(), logger())
			if err != nil {
				return err
			}
			printCounts(g)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{Use: "config", Short: "Inspect configuration"}
	cfg.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig()
			if err != nil {
				return err
			}
			return c.WriteYAML(os.Stdout)
		},
	})
	return cfg
}

func printCounts(g *graph.Graph) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Entity", "Count"})
	for _, kc := range g.Counts() {
		tw.AppendRow(table.Row{kc.Kind, kc.Count})
	}
	tw.Render()
}
