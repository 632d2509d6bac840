package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Tyson-Skiba/codegen-apollo-suspense/generator"
)

var runGenerator = generator.Run

func newGenCmd() *cobra.Command {
	var (
		configPath    string
		outputPath    string
		dryRun        bool
		force         bool
		disableChecks bool
		watchMode     bool
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate suspense hooks from the schema and operation documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchMode && dryRun {
				return wrapError("gen: --watch cannot be combined with --dry-run", errors.New("invalid flag combination"), "Remove --dry-run to enable watch mode.", 2)
			}
			opts := generator.GenerateOptions{
				ConfigPath:    configPath,
				Output:        outputPath,
				DryRun:        dryRun,
				Force:         force,
				DisableChecks: disableChecks,
			}
			if watchMode {
				return runWatch(cmd, opts)
			}
			return executeGeneration(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the codegen config file (default codegen.yaml)")
	cmd.Flags().StringVar(&outputPath, "out", "", "Override the configured output file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Generate without writing the artifact")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate even if inputs and output are unchanged")
	cmd.Flags().BoolVar(&disableChecks, "disable-checks", false, "Skip output file extension validation")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Watch schema and document files and regenerate on change")
	return cmd
}

func executeGeneration(cmd *cobra.Command, opts generator.GenerateOptions) error {
	result, err := runGenerator(cmd.Context(), ".", opts)
	if err != nil {
		var cfgErr generator.ConfigError
		if errors.As(err, &cfgErr) {
			return wrapError(fmt.Sprintf("gen: %v", cfgErr), err, cfgErr.Hint(), 2)
		}
		var pathErr generator.OutputPathError
		if errors.As(err, &pathErr) {
			return wrapError(fmt.Sprintf("gen: %v", pathErr), err, pathErr.Suggestion(), 2)
		}
		return wrapError(fmt.Sprintf("gen: generation failed: %v", err), err, "Resolve the schema or document issue above and re-run `suspensegen gen`.", 1)
	}
	printRunSummary(cmd.OutOrStdout(), opts, result)
	return nil
}

func printRunSummary(out io.Writer, opts generator.GenerateOptions, result generator.RunResult) {
	switch {
	case opts.DryRun:
		fmt.Fprintln(out, "generator: dry-run - no files were written")
		fmt.Fprintf(out, "generator: %d hooks would be emitted to %s\n", len(result.Bindings), result.OutputPath)
	case result.Skipped:
		fmt.Fprintf(out, "generator: %s (%s)\n", result.Reason, result.OutputPath)
	case result.Written:
		fmt.Fprintf(out, "generator: wrote %s (%d hooks)\n", result.OutputPath, len(result.Bindings))
	default:
		fmt.Fprintf(out, "generator: output unchanged (%s)\n", result.OutputPath)
	}
	if !opts.DryRun && !result.Skipped {
		fmt.Fprintln(out, "Generation complete.")
	}
}

func runWatch(cmd *cobra.Command, opts generator.GenerateOptions) error {
	if err := executeGeneration(cmd, opts); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return wrapError(fmt.Sprintf("gen: watch failed: %v", err), err, "Install inotify/fsevents support and retry.", 1)
	}
	defer watcher.Close()

	dirs, err := watchDirs(opts)
	if err != nil {
		return wrapError(fmt.Sprintf("gen: watch failed: %v", err), err, "Fix the config file and retry.", 2)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return wrapError(fmt.Sprintf("gen: unable to watch %s: %v", dir, err), err, "Ensure the schema and document directories exist before using --watch.", 1)
		}
		logVerbose(cmd, "watching %s for changes", dir)
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event := <-watcher.Events:
			if !isGraphQLEvent(event) {
				continue
			}
			pending = true
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(200 * time.Millisecond)
		case err := <-watcher.Errors:
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "generator: watch error: %v\n", err)
			}
		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			if err := executeGeneration(cmd, opts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "generator: watch run failed: %v\n", err)
			}
		}
	}
}

// watchDirs resolves the directories holding the schema and the operation
// documents from the generation config.
func watchDirs(opts generator.GenerateOptions) ([]string, error) {
	cfg, err := generator.LoadConfig(generator.ResolveConfigPath(".", opts.ConfigPath))
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	dirs := []string{}
	add := func(dir string) {
		if dir == "" {
			dir = "."
		}
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	add(filepath.Dir(cfg.Schema))
	for _, glob := range cfg.Documents {
		add(filepath.Dir(glob))
	}
	return dirs, nil
}

func isGraphQLEvent(event fsnotify.Event) bool {
	if event.Name == "" {
		return false
	}
	return strings.HasSuffix(event.Name, ".graphql") || strings.HasSuffix(event.Name, ".graphqls") || strings.HasSuffix(event.Name, ".gql")
}
