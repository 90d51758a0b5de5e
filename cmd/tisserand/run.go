package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/tisserand/internal/render"
	"github.com/san-kum/tisserand/internal/tisserand"
)

func newLogger(w io.Writer, name string) (log.Logger, error) {
	opt, err := logLevelOption(name)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, opt), nil
}

func runCurves(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return err
	}

	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, v)
	if err != nil {
		return err
	}

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	sweep, err := cfg.Sweep()
	if err != nil {
		return err
	}
	table, err := cfg.ReferenceBodies()
	if err != nil {
		return err
	}

	gen, err := tisserand.NewGenerator(params, sweep,
		tisserand.WithRootOptions(cfg.RootOptions()),
		tisserand.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return err
	}

	level.Info(logger).Log(
		"msg", "computing curves",
		"tisserand", cfg.Tisserand,
		"inclination_deg", cfg.InclinationDeg,
		"emax", cfg.Eccentricity.Max,
		"samples", sweep.Len(),
		"bodies", len(table),
	)

	start := time.Now()
	curves := gen.All(table)
	level.Debug(logger).Log("msg", "curves computed", "elapsed", time.Since(start))

	for _, c := range curves {
		logMissing(logger, c)
	}

	scene := render.NewScene(cfg.Tisserand, cfg.InclinationDeg, cfg.Eccentricity.Max, curves, render.DefaultPalette)

	var renderers render.Multi
	if cfg.Output.Terminal {
		renderers = append(renderers, render.NewTerminal(cmd.OutOrStdout()))
	}
	var fig *render.Figure
	if cfg.Output.Figures {
		fig = render.NewFigure(cfg.Output.Dir, cfg.Output.Format,
			cfg.Output.WidthIn, cfg.Output.HeightIn,
			cfg.Output.CombinedWidth, cfg.Output.CombinedHeight)
		renderers = append(renderers, fig)
	}

	drawErr := render.Draw(renderers, scene)
	if fig != nil {
		for _, path := range fig.Files() {
			level.Info(logger).Log("msg", "wrote figure", "path", path)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Summary(scene))

	if drawErr != nil {
		level.Error(logger).Log("msg", "rendering failed", "err", drawErr)
		return drawErr
	}
	return nil
}

func logMissing(logger log.Logger, c tisserand.CurvePair) {
	missing := c.Missing()
	if missing == 0 {
		level.Debug(logger).Log("msg", "curve complete", "body", c.Body.Name, "samples", c.Len())
		return
	}

	var first error
	for _, b := range []tisserand.Samples{c.Branch1, c.Branch2} {
		for _, s := range b {
			if s.Missing && first == nil {
				first = s.Err
			}
		}
	}
	level.Warn(logger).Log(
		"msg", "samples excluded from curve",
		"body", c.Body.Name,
		"missing", missing,
		"of", 2*c.Len(),
		"first_err", first,
	)
}
