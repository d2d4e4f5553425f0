// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/numusel/internal/report"
	"github.com/pdiddy/numusel/internal/runlog"
	"github.com/pdiddy/numusel/internal/source"
	"github.com/pdiddy/numusel/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the 1muNp selection over spill files and tabulate rows",
	Long: `Process reads every spill file under the input directory, applies the
selection, and appends the tabulated rows to the output file. A run
summary with per-category counts is written as YAML.

With --resume, files already recorded in the state database at their
current modification time are skipped, so an interrupted run can pick
up where it left off.`,
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := processConfig(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rep, err := report.New(cfg.Output, cfg.Resume, os.Stderr)
	if err != nil {
		return err
	}
	defer rep.Close()

	var log *runlog.Log
	if cfg.Resume {
		log, err = runlog.Open(cfg.StateDB)
		if err != nil {
			return err
		}
		defer log.Close()
	}

	files, err := source.ListFiles(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no spill files under %s", cfg.InputDir)
	}

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", path, err)
		}
		if log != nil {
			seen, err := log.Seen(ctx, path, info.ModTime())
			if err != nil {
				return err
			}
			if seen {
				fmt.Fprintf(os.Stdout, "skipped %s (already processed)\n", path)
				continue
			}
		}

		spills, err := source.ReadFile(ctx, path, os.Stderr)
		if err != nil {
			return err
		}
		for k := range spills {
			if _, err := rep.Process(&spills[k]); err != nil {
				return fmt.Errorf("processing %s: %w", path, err)
			}
		}
		if log != nil {
			if err := log.Record(ctx, path, info.ModTime(), len(spills)); err != nil {
				return err
			}
		}
		fmt.Fprintf(os.Stdout, "processed %s: %d spills\n", path, len(spills))
	}

	sum := rep.Summary()
	fmt.Fprintf(os.Stdout, "spills %d, signal %d, selected %d, unmatched %d\n",
		sum.Spills, sum.Signal, sum.Selected, sum.Unmatched)

	if err := writeSummary(cfg.Summary, sum); err != nil {
		return err
	}
	return rep.Close()
}

func writeSummary(path string, sum report.Summary) error {
	raw, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

func processConfig(cmd *cobra.Command) types.ProcessConfig {
	resume, _ := cmd.Flags().GetBool("resume")
	return types.ProcessConfig{
		InputDir: setting(cmd, "input", "process.input"),
		Output:   setting(cmd, "output", "process.output"),
		Summary:  setting(cmd, "summary", "process.summary"),
		StateDB:  setting(cmd, "state-db", "process.state_db"),
		Resume:   resume,
	}
}

func init() {
	processCmd.Flags().String("input", "spills", "directory of spill record files (.json, .jsonl)")
	processCmd.Flags().String("output", "output_mc.log", "tabulated row output file")
	processCmd.Flags().String("summary", "summary.yaml", "run summary YAML file")
	processCmd.Flags().String("state-db", "numusel.db", "processed-file state database")
	processCmd.Flags().Bool("resume", false, "skip files already recorded in the state database")

	rootCmd.AddCommand(processCmd)
}
