package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/trace3d/internal/compute"
	"github.com/san-kum/trace3d/internal/config"
	"github.com/san-kum/trace3d/internal/export"
	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/serve"
	"github.com/san-kum/trace3d/internal/store"
	"github.com/san-kum/trace3d/internal/viz"
)

var (
	dataDir     string
	configFile  string
	backendName string
	// render options
	canvasW int
	canvasH int
	rotX    float64
	rotY    float64
	svgOut  string
	// export options
	htmlOut string
	jsonOut string
	// serve options
	addr string
	// bench options
	benchPoints int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trace3d",
		Short: "3D geometry and camera visualization lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trace3d", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", "auto", "compute backend (auto|cpu|parallel|cuda)")

	viewCmd := &cobra.Command{
		Use:   "view [preset]",
		Short: "view a scene interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}

	renderCmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render a scene to the terminal or an SVG file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&canvasW, "width", 80, "canvas width (chars)")
	renderCmd.Flags().IntVar(&canvasH, "height", 24, "canvas height (chars)")
	renderCmd.Flags().Float64Var(&rotX, "rotx", 0.4, "view rotation around x (rad)")
	renderCmd.Flags().Float64Var(&rotY, "roty", 0.6, "view rotation around y (rad)")
	renderCmd.Flags().StringVar(&svgOut, "svg", "", "write SVG to file instead of stdout")

	exportCmd := &cobra.Command{
		Use:   "export [preset]",
		Short: "export a scene figure to the store and optional files",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&htmlOut, "html", "", "write standalone HTML to file")
	exportCmd.Flags().StringVar(&jsonOut, "json", "", "write figure JSON to file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored figures",
		RunE:  runList,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve [preset]",
		Short: "serve a live figure over HTTP with websocket updates",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8420", "listen address")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark compute backends",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchPoints, "points", 1_000_000, "number of points")

	rootCmd.AddCommand(viewCmd, renderCmd, exportCmd, listCmd, presetsCmd, serveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadScene resolves the scene from --config, a preset argument, or the
// default.
func loadScene(args []string) (*config.Scene, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if len(args) == 1 {
		scene := config.GetPreset(args[0])
		if scene == nil {
			return nil, fmt.Errorf("unknown preset %q (see 'trace3d presets')", args[0])
		}
		return scene, nil
	}
	return config.DefaultScene(), nil
}

func selectBackend() error {
	b, ok := compute.ByName(backendName)
	if !ok {
		return fmt.Errorf("unknown backend %q", backendName)
	}
	compute.SetBackend(b)
	return nil
}

// buildTraces materializes the scene into figure traces.
func buildTraces(scene *config.Scene) ([]viz.Trace, error) {
	objs, err := scene.Build()
	if err != nil {
		return nil, err
	}
	traces, err := viz.MakeTraces(objs...)
	if err != nil {
		return nil, err
	}
	if scene.ShowAxes {
		traces = append(traces, viz.AxesTraces(1)...)
	}
	return traces, nil
}

func runView(cmd *cobra.Command, args []string) error {
	if err := selectBackend(); err != nil {
		return err
	}
	scene, err := loadScene(args)
	if err != nil {
		return err
	}
	traces, err := buildTraces(scene)
	if err != nil {
		return err
	}
	return viz.RunInteractive(scene.Name, traces)
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := selectBackend(); err != nil {
		return err
	}
	scene, err := loadScene(args)
	if err != nil {
		return err
	}
	traces, err := buildTraces(scene)
	if err != nil {
		return err
	}

	canvas := viz.NewCanvas(canvasW, canvasH)
	view := viz.NewView()
	view.RotateX(rotX)
	view.RotateY(rotY)
	viz.RenderTraces(canvas, traces, view)

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CanvasSVG(canvas, 4)), 0644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", svgOut)
		return nil
	}
	fmt.Print(canvas.String())
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := selectBackend(); err != nil {
		return err
	}
	scene, err := loadScene(args)
	if err != nil {
		return err
	}
	objs, err := scene.Build()
	if err != nil {
		return err
	}
	fig, err := viz.NewFigure(objs...)
	if err != nil {
		return err
	}
	fig.Layout.Title = scene.Name
	if scene.ShowAxes {
		fig.Data = append(fig.Data, viz.AxesTraces(1)...)
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(scene.Name, fig)
	if err != nil {
		return err
	}
	fmt.Printf("Saved figure %s (%d traces)\n", id, len(fig.Data))

	if htmlOut != "" {
		data, err := export.FigureHTML(fig)
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlOut, data, 0644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", htmlOut)
	}
	if jsonOut != "" {
		data, err := export.FigureJSON(fig)
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonOut, data, 0644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", jsonOut)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	metas, err := st.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("No stored figures.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tTRACES")
	for _, m := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.ID, m.Name, m.Created.Format(time.RFC3339), m.TraceCount)
	}
	return w.Flush()
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := selectBackend(); err != nil {
		return err
	}
	scene, err := loadScene(args)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve.New(addr, scene, logger).Run(ctx)
}

func runBench(cmd *cobra.Command, args []string) error {
	pts := make([]geom.Vec3, benchPoints)
	for i := range pts {
		f := float64(i)
		pts[i] = geom.V(f*0.001, f*0.002, f*0.003)
	}
	flat := geom.Flatten(pts)
	r := geom.RotZ(0.5).Flat()
	t := [3]float64{1, 2, 3}

	for _, name := range []string{"cpu", "parallel"} {
		b, _ := compute.ByName(name)
		start := time.Now()
		b.TransformPoints(r, t, flat)
		fmt.Printf("%-10s %d points in %v\n", b.Name(), benchPoints, time.Since(start))
	}
	return nil
}
