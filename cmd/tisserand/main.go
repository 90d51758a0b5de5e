package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/tisserand/internal/bodies"
	"github.com/san-kum/tisserand/internal/config"
)

var (
	logLevel   string
	configFile string
	preset     string
	epoch      string
)

// main registers the command tree. With no subcommand the reference run is
// executed with any flags given to run.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute and render tisserand curves",
		Args:  cobra.NoArgs,
		RunE:  runCurves,
	}
	addRunFlags(runCmd)

	rootCmd := &cobra.Command{
		Use:          "tisserand",
		Short:        "tisserand parameter curves for reference bodies",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runCurves,
	}
	addRunFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	bodiesCmd := &cobra.Command{
		Use:   "bodies [set]",
		Short: "list a reference body table",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listBodies,
	}
	bodiesCmd.Flags().StringVar(&epoch, "epoch", "", "epoch for the ephemeris set (YYYY-MM-DD or RFC3339)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tT\tI(DEG)\tEMAX\tSAMPLES\tBODIES")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				set := c.BodySet
				if len(c.Only) > 0 {
					set += " (" + strings.Join(c.Only, ",") + ")"
				}
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%d\t%s\n", name, c.Tisserand, c.InclinationDeg,
					c.Eccentricity.Max, c.Eccentricity.Samples, set)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file (default or --preset) to path",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "preset to start from")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(runCmd, bodiesCmd, presetsCmd, configCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64("tisserand", d.Tisserand, "tisserand parameter T_p")
	f.Float64("inclination", d.InclinationDeg, "orbital inclination in degrees")
	f.Float64("emax", d.Eccentricity.Max, "exclusive upper eccentricity bound")
	f.Int("samples", d.Eccentricity.Samples, "number of eccentricity samples")
	f.Float64("tolerance", d.Root.Tolerance, "newton residual tolerance")
	f.Int("max-iter", d.Root.MaxIterations, "newton iteration budget")
	f.String("body-set", d.BodySet, "reference body table ("+strings.Join(bodies.Sets(), ", ")+")")
	f.StringSlice("only", nil, "restrict to these bodies")
	f.String("epoch", "", "epoch for the ephemeris body set")
	f.Int("workers", d.Workers, "sweep parallelism (0 = all CPUs, 1 = sequential)")
	f.String("out", d.Output.Dir, "figure output directory")
	f.String("format", d.Output.Format, "figure format (png, svg, pdf)")
	f.Bool("figures", d.Output.Figures, "write figure files")
	f.Bool("terminal", d.Output.Terminal, "print terminal previews")
}

func listBodies(cmd *cobra.Command, args []string) error {
	set := bodies.SetDefault
	if len(args) > 0 {
		set = args[0]
	}
	cfg := config.DefaultConfig()
	cfg.BodySet = set
	cfg.Epoch = epoch

	table, err := cfg.ReferenceBodies()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tAXIS (AU)")
	for i, b := range table {
		fmt.Fprintf(w, "%d\t%s\t%.6f\n", i+1, b.Name, b.Axis)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

// newViper binds the command's flags and TISSERAND_* environment variables.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TISSERAND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

func envKey(key string) string {
	return "TISSERAND_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// splitList reads a comma separated environment value. Viper returns env
// values as a single string, so GetStringSlice would split on spaces only.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadConfig layers defaults, preset, config file, environment and flags,
// in increasing precedence.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	overridden := func(key string) bool {
		if cmd.Flags().Changed(key) {
			return true
		}
		_, ok := os.LookupEnv(envKey(key))
		return ok
	}

	if overridden("tisserand") {
		cfg.Tisserand = v.GetFloat64("tisserand")
	}
	if overridden("inclination") {
		cfg.InclinationDeg = v.GetFloat64("inclination")
	}
	if overridden("emax") {
		cfg.Eccentricity.Max = v.GetFloat64("emax")
	}
	if overridden("samples") {
		cfg.Eccentricity.Samples = v.GetInt("samples")
	}
	if overridden("tolerance") {
		cfg.Root.Tolerance = v.GetFloat64("tolerance")
	}
	if overridden("max-iter") {
		cfg.Root.MaxIterations = v.GetInt("max-iter")
	}
	if overridden("body-set") {
		cfg.BodySet = v.GetString("body-set")
		cfg.Bodies = nil
	}
	if cmd.Flags().Changed("only") {
		cfg.Only = v.GetStringSlice("only")
	} else if raw, ok := os.LookupEnv(envKey("only")); ok {
		cfg.Only = splitList(raw)
	}
	if overridden("epoch") {
		cfg.Epoch = v.GetString("epoch")
	}
	if overridden("workers") {
		cfg.Workers = v.GetInt("workers")
	}
	if overridden("out") {
		cfg.Output.Dir = v.GetString("out")
	}
	if overridden("format") {
		cfg.Output.Format = v.GetString("format")
	}
	if overridden("figures") {
		cfg.Output.Figures = v.GetBool("figures")
	}
	if overridden("terminal") {
		cfg.Output.Terminal = v.GetBool("terminal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func logLevelOption(name string) (level.Option, error) {
	switch strings.ToLower(name) {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("unknown log level %q", name)
	}
}
