// Package main provides the CLI entry point for gridcalc.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridcalc-go/internal/config"
	"github.com/ukaji3/gridcalc-go/internal/logging"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/output"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/xlsx"
)

var (
	configPath string
	colorMode  string
	logLevel   string
	sheetName  string
	showDepth  bool
	showRaw    bool
	values     bool
	pretty     bool

	cfg    config.Config
	logger *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridcalc",
		Short: "Evaluate small spreadsheets from the command line",
		Long: `gridcalc evaluates grids of text, numbers, formulas, IF conditions
and sum/average/min/max functions stored as text sheets or xlsx workbooks.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: nearest gridcalc.toml)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "Color output: auto, on, off")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Worksheet name for xlsx files")

	showCmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Render an evaluated sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	showCmd.Flags().BoolVar(&showDepth, "depth", false, "Show dependency depths instead of values")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Show raw cell text instead of values")

	getCmd := &cobra.Command{
		Use:   "get <file> <cell>",
		Short: "Print one cell",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}

	setCmd := &cobra.Command{
		Use:   "set <file> <cell> <text>",
		Short: "Set one cell and save the sheet",
		Args:  cobra.ExactArgs(3),
		RunE:  runSet,
	}

	convertCmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert between text sheets, xlsx and JSON",
		Long: `convert reads a text sheet or xlsx workbook and writes it as a text
sheet (.txt, .sheet), an xlsx workbook (.xlsx) or a JSON snapshot (.json).
Converting a workbook to JSON without --sheet includes every worksheet.`,
		Args: cobra.ExactArgs(2),
		RunE: runConvert,
	}
	convertCmd.Flags().BoolVar(&values, "values", false, "Write evaluated values instead of formulas to xlsx")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(showCmd, getCmd, setCmd, convertCmd, newStoreCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if colorMode != "" {
		cfg.Display.Color = colorMode
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	logger = logging.InitLogger(level, format, os.Stderr)
	if cfg.Path != "" {
		logging.Debug("config loaded", "path", cfg.Path)
	}
	return nil
}

func gridOptions() gridcalc.Options {
	opts := cfg.GridOptions()
	opts.Logger = logger
	return opts
}

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func loadGrid(path string) (*gridcalc.Grid, error) {
	start := time.Now()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	var (
		g   *gridcalc.Grid
		err error
	)
	if isWorkbook(path) {
		g, err = xlsx.Import(path, xlsx.ImportOptions{
			Sheet: sheetName,
			Grid:  gridcalc.Options{Logger: logger},
		})
	} else {
		g, err = gridcalc.New(gridOptions())
		if err == nil {
			err = g.LoadFile(path)
		}
	}
	if err != nil {
		return nil, err
	}
	logging.SheetLoaded(path, g.Width(), g.Height(), len(g.Entries()), time.Since(start))
	return g, nil
}

func saveGrid(g *gridcalc.Grid, path string) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = xlsx.Export(g, path, xlsx.ExportOptions{Sheet: sheetName, Values: values})
	case ".json":
		snapshot := g.Snapshot()
		snapshot.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		err = writeJSON(&snapshot, path)
	default:
		err = g.SaveFile(path)
	}
	if err != nil {
		return err
	}
	logging.SheetSaved(path, len(g.Entries()))
	return nil
}

func writeJSON(snapshot *models.SheetData, path string) error {
	data, err := output.SheetToJSON(snapshot, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func parseCell(g *gridcalc.Grid, text string) (gridcalc.Address, error) {
	addr := gridcalc.ParseAddress(text)
	if !addr.Valid() || !g.IsIn(addr.Col(), addr.Row()) {
		return addr, fmt.Errorf("invalid cell %q for a %dx%d sheet", text, g.Width(), g.Height())
	}
	return addr, nil
}

func stdoutRenderer() *renderer {
	return newRenderer(os.Stdout, cfg.Display.ColumnWidth, colorEnabled(cfg.Display.Color, os.Stdout))
}

func runShow(cmd *cobra.Command, args []string) error {
	if showDepth && showRaw {
		return errors.New("--depth and --raw are mutually exclusive")
	}
	g, err := loadGrid(args[0])
	if err != nil {
		return err
	}
	mode := renderValues
	switch {
	case showDepth:
		mode = renderDepth
	case showRaw:
		mode = renderRaw
	}
	return stdoutRenderer().Grid(g, mode)
}

func runGet(cmd *cobra.Command, args []string) error {
	g, err := loadGrid(args[0])
	if err != nil {
		return err
	}
	addr, err := parseCell(g, args[1])
	if err != nil {
		return err
	}
	return stdoutRenderer().Cell(g, addr)
}

func runSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	var (
		g   *gridcalc.Grid
		err error
	)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		g, err = gridcalc.New(gridOptions())
	} else {
		g, err = loadGrid(path)
	}
	if err != nil {
		return err
	}
	addr, err := parseCell(g, args[1])
	if err != nil {
		return err
	}
	g.Set(addr.Col(), addr.Row(), args[2])
	if err := saveGrid(g, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return stdoutRenderer().Cell(g, addr)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if strings.EqualFold(filepath.Ext(args[0]), ".json") {
		return fmt.Errorf("cannot read JSON snapshots: %s", args[0])
	}
	if isWorkbook(args[0]) && sheetName == "" && strings.EqualFold(filepath.Ext(args[1]), ".json") {
		return convertWorkbook(args[0], args[1])
	}
	g, err := loadGrid(args[0])
	if err != nil {
		return err
	}
	if err := saveGrid(g, args[1]); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	return nil
}

// convertWorkbook writes every worksheet of an xlsx file to one JSON file.
func convertWorkbook(input, path string) error {
	book, err := xlsx.ImportWorkbook(input, xlsx.ImportOptions{Grid: gridcalc.Options{Logger: logger}})
	if err != nil {
		return err
	}
	data, err := output.WorkbookToJSON(book, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return err
	}
	cells := 0
	for _, sheet := range book.Sheets {
		cells += len(sheet.Cells)
	}
	logging.SheetSaved(path, cells, "sheets", len(book.Sheets))
	return nil
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.Store.Path)
}
