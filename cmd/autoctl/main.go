package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/luizn22/auto-control-tools/internal/config"
	"github.com/luizn22/auto-control-tools/internal/datainput"
	"github.com/luizn22/auto-control-tools/internal/ident"
	"github.com/luizn22/auto-control-tools/internal/plant"
	"github.com/luizn22/auto-control-tools/internal/report"
	"github.com/luizn22/auto-control-tools/internal/store"
	"github.com/luizn22/auto-control-tools/internal/tune"
)

var (
	dataDir    string
	configFile string
	method     string
	tuner      string
	structure  string
	sampleTime float64
	stepSignal float64
	settleBand float64
	ignoreD    float64
	kFlag      float64
	tauFlag    float64
	thetaFlag  float64
	refine     bool
	plotPath   string
	layoutOut  string
	exportOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autoctl",
		Short: "plant identification and PID gain approximation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".autoctl", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	layoutCmd := &cobra.Command{
		Use:   "layout [method]",
		Short: "write the CSV data-entry template a method expects",
		Args:  cobra.ExactArgs(1),
		RunE:  writeLayout,
	}
	layoutCmd.Flags().StringVar(&layoutOut, "out", "data_input.csv", "output file")

	identifyCmd := &cobra.Command{
		Use:   "identify [data.csv]",
		Short: "identify a first-order model from step-response data",
		Args:  cobra.ExactArgs(1),
		RunE:  runIdentify,
	}
	addIdentFlags(identifyCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune [data.csv]",
		Short: "identify a model and approximate PID gains for it",
		Long: "Identifies a model from the data file (or takes one directly via " +
			"--k/--tau/--theta) and derives controller gains with the chosen method.",
		Args: cobra.MaximumNArgs(1),
		RunE: runTune,
	}
	addIdentFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&tuner, "tuner", "", "gain-approximation method")
	tuneCmd.Flags().StringVar(&structure, "structure", "", "controller structure (P, PI, PID)")
	tuneCmd.Flags().Float64Var(&kFlag, "k", 0, "static gain (skip identification)")
	tuneCmd.Flags().Float64Var(&tauFlag, "tau", 0, "time constant (skip identification)")
	tuneCmd.Flags().Float64Var(&thetaFlag, "theta", 0, "dead time (skip identification)")
	tuneCmd.Flags().BoolVar(&refine, "refine", false, "grid-refine the gains by simulation")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "chart a stored run's step response",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as a single JSON document",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportOut, "out", "-", "output file, - for stdout")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list available identification and tuning methods",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("identification:", strings.Join(ident.Names(), ", "))
			fmt.Println("tuning:        ", strings.Join(tune.Names(), ", "))
		},
	}

	rootCmd.AddCommand(layoutCmd, identifyCmd, tuneCmd, plotCmd, listCmd, exportCmd, methodsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addIdentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", "", "identification method")
	cmd.Flags().Float64Var(&sampleTime, "sample-time", 0, "constant sampling interval")
	cmd.Flags().Float64Var(&stepSignal, "step", 0, "applied step magnitude")
	cmd.Flags().Float64Var(&settleBand, "settle-band", 0, "steady-state band")
	cmd.Flags().Float64Var(&ignoreD, "ignore-delay", -1, "zero out dead times below this")
	cmd.Flags().StringVar(&plotPath, "plot", "", "also save a PNG chart to this path")
}

// loadConfig merges the config file (when given) with flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	if method != "" {
		cfg.Method = method
	}
	if tuner != "" {
		cfg.Tuner = tuner
	}
	if structure != "" {
		cfg.Structure = structure
	}
	if sampleTime > 0 {
		cfg.SampleTime = sampleTime
	}
	if stepSignal != 0 {
		cfg.StepSignal = stepSignal
	}
	if settleBand > 0 {
		cfg.Ident.SettleBand = settleBand
	}
	if ignoreD >= 0 {
		cfg.Ident.IgnoreDelayBelow = ignoreD
	}
	if refine {
		cfg.Refine.Enabled = true
	}
	if plotPath != "" {
		cfg.Report.PlotPath = plotPath
	}
	return cfg, nil
}

func writeLayout(cmd *cobra.Command, args []string) error {
	m, err := ident.Lookup(args[0])
	if err != nil {
		return err
	}
	if err := datainput.WriteLayout(layoutOut, m.InputLayout()); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", layoutOut, strings.Join(m.InputLayout(), ","))
	return nil
}

// identifyFromFile runs the configured identification method on a CSV file.
func identifyFromFile(cfg *config.Config, path string) (*plant.FirstOrder, ident.Method, error) {
	m, err := ident.Lookup(cfg.Method)
	if err != nil {
		return nil, nil, err
	}
	applyIdentOptions(m, cfg)

	samples, step, err := datainput.Read(path, m.InputLayout(), datainput.ReadOptions{
		SampleTime: cfg.SampleTime,
		StepSignal: cfg.StepSignal,
	})
	if err != nil {
		return nil, nil, err
	}
	model, err := m.Identify(samples, step)
	if err != nil {
		return nil, nil, err
	}
	return model, m, nil
}

// applyIdentOptions pushes the configured knobs into the method struct.
func applyIdentOptions(m ident.Method, cfg *config.Config) {
	opts := ident.Options{
		SettleBand:       cfg.Ident.SettleBand,
		IgnoreDelayBelow: cfg.Ident.IgnoreDelayBelow,
	}
	switch v := m.(type) {
	case *ident.ZieglerNichols:
		v.Options = opts
	case *ident.Hagglund:
		v.Options = opts
	case *ident.Smith:
		v.Options = opts
	case *ident.SundaresanKrishnaswamy:
		v.Options = opts
	case *ident.Nishikawa:
		v.Options = opts
	}
}

func runIdentify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	model, m, err := identifyFromFile(cfg, args[0])
	if err != nil {
		return err
	}

	info, err := model.StepInfo(cfg.Ident.SettleBand)
	if err != nil {
		return err
	}
	times, y, err := model.TransferFunction().StepResponse(0, model.SimulationTime())
	if err != nil {
		return err
	}

	if cfg.Report.Terminal {
		fmt.Println(report.ModelSummary(model, info))
		fmt.Println(report.StepChart(y, "model step response"))
	}
	if cfg.Report.PlotPath != "" {
		if err := report.SaveStepPlot(cfg.Report.PlotPath, "Identified model", times, y, model.SourceData()); err != nil {
			return err
		}
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Kind:   "identify",
		Method: m.Name(),
		K:      model.K(),
		Tau:    model.Tau(),
		Theta:  model.Theta(),
		Metrics: map[string]float64{
			"rise_time":     info.RiseTime,
			"settling_time": info.SettlingTime,
			"overshoot":     info.Overshoot,
		},
	}, times, y)
	if err != nil {
		return err
	}
	fmt.Println("saved run:", runID)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var model *plant.FirstOrder
	methodName := "direct"
	if len(args) == 1 {
		var m ident.Method
		if model, m, err = identifyFromFile(cfg, args[0]); err != nil {
			return err
		}
		methodName = m.Name()
	} else {
		if kFlag == 0 || tauFlag <= 0 {
			return fmt.Errorf("either a data file or --k/--tau/--theta is required")
		}
		if model, err = plant.NewFirstOrder(kFlag, tauFlag, thetaFlag); err != nil {
			return err
		}
	}

	tn, err := tune.Lookup(cfg.Tuner)
	if err != nil {
		return err
	}
	ctrl, err := tn.Approximate(model, tune.Structure(cfg.Structure))
	if err != nil {
		return err
	}
	if cfg.Refine.Enabled {
		ctrl, err = tune.Refine(ctrl, tune.RefineConfig{
			Span:  cfg.Refine.Span,
			Steps: cfg.Refine.Steps,
		})
		if err != nil {
			return err
		}
	}

	info, err := ctrl.StepInfo(cfg.Ident.SettleBand)
	if err != nil {
		return err
	}
	cl, err := ctrl.ClosedLoop()
	if err != nil {
		return err
	}
	times, y, err := cl.StepResponse(0, 0)
	if err != nil {
		return err
	}

	if cfg.Report.Terminal {
		fmt.Println(report.GainsSummary(ctrl, info))
		fmt.Println(report.StepChart(y, "closed-loop step response"))
	}
	if cfg.Report.PlotPath != "" {
		if err := report.SaveStepPlot(cfg.Report.PlotPath, "Closed loop", times, y, nil); err != nil {
			return err
		}
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Kind:      "tune",
		Method:    methodName,
		Tuner:     tn.Name(),
		Structure: cfg.Structure,
		K:         model.K(),
		Tau:       model.Tau(),
		Theta:     model.Theta(),
		Kp:        ctrl.Kp(),
		Ki:        ctrl.Ki(),
		Kd:        ctrl.Kd(),
		Metrics: map[string]float64{
			"rise_time":     info.RiseTime,
			"settling_time": info.SettlingTime,
			"overshoot":     info.Overshoot,
		},
	}, times, y)
	if err != nil {
		return err
	}
	fmt.Println("saved run:", runID)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, y, err := st.LoadResponse(args[0])
	if err != nil {
		return err
	}
	fmt.Println(report.StepChart(y, meta.ID))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return store.New(dataDir).Export(args[0], exportOut)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tMETHOD\tK\tTAU\tTHETA\tKP\tKI\tKD")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			r.ID, r.Kind, r.Method, r.K, r.Tau, r.Theta, r.Kp, r.Ki, r.Kd)
	}
	return w.Flush()
}
