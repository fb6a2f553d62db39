// Package main provides the CLI entrypoint for lookbusy.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/lookbusy/internal/config"
	"github.com/verte-zerg/lookbusy/internal/content"
	"github.com/verte-zerg/lookbusy/internal/logging"
	"github.com/verte-zerg/lookbusy/internal/model"
	"github.com/verte-zerg/lookbusy/internal/snippets"
	"github.com/verte-zerg/lookbusy/internal/stats"
	"github.com/verte-zerg/lookbusy/internal/statsui"
	"github.com/verte-zerg/lookbusy/internal/store"
	"github.com/verte-zerg/lookbusy/internal/tui"
	"github.com/verte-zerg/lookbusy/internal/typing"
	"github.com/verte-zerg/lookbusy/internal/vfs"
)

const (
	defaultLogLevel    = "info"
	defaultTreeOps     = 10
	defaultCurveWindow = 5
	defaultTopFiles    = 10
	defaultCurveHeight = 8
)

var (
	simJob        string
	simSeed       int64
	simFolderProb float64
	simMaxBuffer  int
	simExtensible []string
	simReserved   []string
	simSnippetDir string
	logLevel      string
	logPath       string

	treeOps  int
	treeSeed int64
	treeJob  string
	treeOp   string

	generateSeed int64

	statsJob         string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsTopFiles    int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lookbusy",
		Short:         "Pretend to work in a fake IDE",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runWorkspaceCmd,
	}

	rootCmd.Flags().StringVar(&simJob, "job", "", "job to simulate: frontend, analyst, manager (default: stored job)")
	rootCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 uses the clock)")
	rootCmd.Flags().Float64Var(&simFolderProb, "folder-prob", vfs.DefaultFolderProb, "probability that an added node is a folder (0-1)")
	rootCmd.Flags().IntVar(&simMaxBuffer, "max-buffer", typing.DefaultMaxBuffer, "maximum editor buffer size in characters")
	rootCmd.Flags().StringSliceVar(&simExtensible, "extensible", typing.DefaultExtensible, "file suffixes that keep growing once fully revealed")
	rootCmd.Flags().StringSliceVar(&simReserved, "reserved", vfs.DefaultReserved, "folder names never touched by tree mutations")
	rootCmd.Flags().StringVar(&simSnippetDir, "snippet-dir", config.DefaultSnippetDir(), "directory with extra typing snippets")
	rootCmd.Flags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runWorkspaceCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	sim := fileCfg.Simulation
	applyStringConfig(cmd, "job", &simJob, sim.Job)
	applyInt64Config(cmd, "seed", &simSeed, sim.Seed)
	applyFloatConfig(cmd, "folder-prob", &simFolderProb, sim.FolderProb)
	applyIntConfig(cmd, "max-buffer", &simMaxBuffer, sim.MaxBuffer)
	applySliceConfig(cmd, "extensible", &simExtensible, sim.Extensible)
	applySliceConfig(cmd, "reserved", &simReserved, sim.ReservedFolders)
	applyStringConfig(cmd, "snippet-dir", &simSnippetDir, sim.SnippetDir)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Logging.Level)
	logPath = config.DefaultLogPath()
	if fileCfg.Logging.Path != nil {
		logPath = *fileCfg.Logging.Path
	}

	job, err := model.ParseJob(simJob)
	if err != nil {
		return err
	}
	cfg := model.Config{
		Job:             job,
		Seed:            simSeed,
		FolderProb:      simFolderProb,
		MaxBuffer:       simMaxBuffer,
		Extensible:      simExtensible,
		ReservedFolders: simReserved,
		SnippetDir:      simSnippetDir,
	}
	if err := validateConfig(cfg, logLevel); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: logLevel, Path: logPath, Journal: true})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	pool, err := snippets.Load(cfg.SnippetDir)
	if err != nil {
		logErrf("ignoring snippet dir: %v\n", err)
		logger.Warn("failed to load snippets", "dir", cfg.SnippetDir, "error", err)
		pool = snippets.Builtin()
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	state, err := st.LoadState(context.Background())
	if err != nil {
		return err
	}
	logger.Info("workspace starting", "job", string(state.Job), "status", string(state.Status), "snippets", len(pool))

	m := tui.NewModel(tui.Options{
		Config:   cfg,
		State:    state,
		Store:    st,
		Logger:   logger.Logger,
		Snippets: pool,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := program.Run()
	m.Finish()
	if runErr != nil {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStateCmd() *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or change the persisted job and status",
	}
	stateCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(st *store.Store) error {
				state, err := st.LoadState(cmd.Context())
				if err != nil {
					return err
				}
				return printState(cmd.OutOrStdout(), state)
			})
		},
	})
	stateCmd.AddCommand(&cobra.Command{
		Use:   "set-job <job>",
		Short: "Store the job (frontend, analyst, manager or none)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := model.ParseJob(args[0])
			if err != nil {
				return err
			}
			return withStore(func(st *store.Store) error {
				state, err := st.LoadState(cmd.Context())
				if err != nil {
					return err
				}
				state = state.SetJob(job)
				if err := st.SaveState(cmd.Context(), state); err != nil {
					return err
				}
				return printState(cmd.OutOrStdout(), state)
			})
		},
	})
	stateCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the job and return to idle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(func(st *store.Store) error {
				state := model.DefaultAppState()
				if err := st.SaveState(cmd.Context(), state); err != nil {
					return err
				}
				return printState(cmd.OutOrStdout(), state)
			})
		},
	})
	return stateCmd
}

func printState(w io.Writer, state model.AppState) error {
	job := string(state.Job)
	if job == "" {
		job = "none"
	}
	_, err := fmt.Fprintf(w, "job:    %s\nstatus: %s\n", job, state.Status)
	return err
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print a project tree after random mutations",
		Args:  cobra.NoArgs,
		RunE:  runTreeCmd,
	}
	cmd.Flags().IntVar(&treeOps, "ops", defaultTreeOps, "number of mutations to apply")
	cmd.Flags().Int64Var(&treeSeed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().StringVar(&treeJob, "job", string(model.JobFrontend), "job whose project is mutated")
	cmd.Flags().StringVar(&treeOp, "op", "", "apply only this operation: add, delete, rename")
	return cmd
}

func runTreeCmd(cmd *cobra.Command, _ []string) error {
	if treeOps < 0 {
		return fmt.Errorf("--ops must be >= 0")
	}
	job, err := model.ParseJob(treeJob)
	if err != nil {
		return err
	}
	var fixed *vfs.Op
	if treeOp != "" {
		op, err := vfs.ParseOp(treeOp)
		if err != nil {
			return err
		}
		fixed = &op
	}

	mutator := vfs.NewMutator(newRand(treeSeed), vfs.DefaultReserved, vfs.DefaultFolderProb)
	tree := vfs.ProjectFor(job)
	out := cmd.OutOrStdout()
	for i := 0; i < treeOps; i++ {
		var op vfs.Op
		if fixed != nil {
			op = *fixed
			tree = mutator.Mutate(op, tree)
		} else {
			tree, op = mutator.Random(tree)
		}
		logErrf("%2d. %s\n", i+1, op)
	}
	return vfs.Render(out, tree, terminalWidth(out))
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Print the generated content for a file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := content.New(newRand(generateSeed), time.Now)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), gen.Generate(args[0]))
			return err
		},
	}
	cmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show work session stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsJob, "job", "", "job filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsTopFiles, "top-files", defaultTopFiles, "number of busiest files to show (0 shows all)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print tables instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	filter, err := statsFilter()
	if err != nil {
		return err
	}

	return withStore(func(st *store.Store) error {
		out := cmd.OutOrStdout()
		if statsPlain || !isTerminal(out) {
			report, err := stats.BuildReport(cmd.Context(), st, filter)
			if err != nil {
				return err
			}
			return renderPlainStats(out, report, filter, terminalWidth(out))
		}
		program := tea.NewProgram(statsui.NewModel(statsui.StoreLoader(st), filter), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	})
}

func statsFilter() (model.StatsFilter, error) {
	job, err := model.ParseJob(statsJob)
	if err != nil {
		return model.StatsFilter{}, err
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsFilter{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsFilter{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return model.StatsFilter{}, fmt.Errorf("--curve-window must be > 0")
	}
	if statsTopFiles < 0 {
		return model.StatsFilter{}, fmt.Errorf("--top-files must be >= 0")
	}
	return model.StatsFilter{
		Job:         job,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		TopFiles:    statsTopFiles,
	}, nil
}

func renderPlainStats(w io.Writer, report stats.Report, filter model.StatsFilter, width int) error {
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderSessionTable(w, report.Sessions); err != nil {
		return err
	}
	if err := stats.RenderFileTable(w, report.FilesWindow); err != nil {
		return err
	}
	return stats.RenderCurves(w, report.Sessions, filter.CurveWindow, width, defaultCurveHeight, false)
}

func withStore(fn func(st *store.Store) error) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(st)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns 0 (no truncation) when w is not a terminal.
func terminalWidth(w io.Writer) int {
	if !isTerminal(w) {
		return 0
	}
	return stats.TerminalWidth()
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applySliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lookbusy configuration
# Uncomment a value to enable it. CLI flags override config values.

[simulation]
# job = "frontend"          # frontend, analyst or manager
# seed = 0                  # Random seed (0 uses the clock)
# folder-prob = %.2f        # Probability that an added node is a folder (0-1)
# max-buffer = %d        # Maximum editor buffer size in characters
# extensible = %s  # Suffixes that keep growing once fully revealed
# reserved = %s
# snippet-dir = %q

[logging]
# level = %q
# path = %q
`,
		vfs.DefaultFolderProb,
		typing.DefaultMaxBuffer,
		tomlList(typing.DefaultExtensible),
		tomlList(vfs.DefaultReserved),
		config.DefaultSnippetDir(),
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func tomlList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func validateConfig(cfg model.Config, level string) error {
	if cfg.FolderProb < 0 || cfg.FolderProb > 1 {
		return fmt.Errorf("--folder-prob must be between 0 and 1")
	}
	if cfg.MaxBuffer < typing.MinMaxBuffer {
		return fmt.Errorf("--max-buffer must be >= %d", typing.MinMaxBuffer)
	}
	for _, suffix := range cfg.Extensible {
		if strings.TrimSpace(suffix) == "" {
			return fmt.Errorf("--extensible must not contain empty suffixes")
		}
	}
	for _, name := range cfg.ReservedFolders {
		if strings.TrimSpace(name) == "" || strings.Contains(name, "/") {
			return fmt.Errorf("--reserved entries must be plain folder names, got %q", name)
		}
	}
	if _, err := logging.ParseLevel(level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
