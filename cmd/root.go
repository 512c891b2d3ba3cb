package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gridform/gridform/internal/aws"
	"github.com/gridform/gridform/internal/config"
	"github.com/gridform/gridform/internal/config/data"
	"github.com/gridform/gridform/internal/dao"
	"github.com/gridform/gridform/internal/logging"
	"github.com/gridform/gridform/internal/validate"
	"github.com/gridform/gridform/internal/view"
)

const (
	appName    = "gridform"
	appVersion = "0.1.0"
)

var (
	gfFlags *data.Flags
	rootCmd = &cobra.Command{
		Use:   appName,
		Short: "An editable grid for tabular datasets",
		Long:  `gridform edits rows of a local or S3 hosted dataset in a terminal grid, validating every change before it is saved.`,
		RunE:  run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
	validateCmd = &cobra.Command{
		Use:          "validate",
		Short:        "Validate a dataset against its table schema",
		SilenceUsage: true,
		RunE:         runValidate,
	}
)

func init() {
	gfFlags = config.NewFlags()
	initGridformFlags()
	rootCmd.AddCommand(versionCmd, validateCmd)
}

func initGridformFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(gfFlags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(gfFlags.LogFile, "logFile", "", "Log file path")
	pf.StringVarP(gfFlags.Data, "data", "d", "", "Dataset location (file path, s3://bucket/key or mem://name)")
	pf.StringVarP(gfFlags.TableFile, "table", "t", "", "Table definition file")
	pf.StringVarP(gfFlags.TableName, "name", "n", "", "Configured table to open")
	pf.BoolVar(gfFlags.ReadOnly, "readonly", false, "Enable read-only mode")

	// AWS-specific flags
	pf.StringVar(gfFlags.Profile, "profile", "", "AWS profile to use")
	pf.StringVar(gfFlags.Region, "region", "", "AWS region to use")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// loadConfig resolves locations, logging, configuration and the AWS client.
// The returned closer flushes the log file.
func loadConfig() (*config.Config, *config.KeyBindings, *aws.Client, func(), error) {
	if err := config.InitLocs(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize locations: %w", err)
	}
	if err := config.InitLogLoc(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize log location: %w", err)
	}

	logFile := *gfFlags.LogFile
	if logFile == "" {
		logFile = config.AppLogFile
	}
	closer, err := logging.Setup(*gfFlags.LogLevel, logFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	done := func() { _ = closer.Close() }

	cfg := config.NewConfig()
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		done()
		return nil, nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Refine(gfFlags); err != nil {
		done()
		return nil, nil, nil, nil, fmt.Errorf("failed to refine configuration: %w", err)
	}

	keys := config.NewKeyBindings()
	if err := keys.Load(); err != nil {
		slog.Warn("Failed to load key bindings, using defaults", "error", err)
	}

	timeout, err := cfg.Gridform.GetAPITimeout()
	if err != nil {
		done()
		return nil, nil, nil, nil, err
	}
	client := aws.NewClient(aws.ClientConfig{
		Profile: cfg.Gridform.AWS.Profile,
		Region:  cfg.Gridform.AWS.Region,
		Timeout: timeout,
	})

	return cfg, keys, client, done, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, keys, client, done, err := loadConfig()
	if err != nil {
		return err
	}
	defer done()

	slog.Info("Starting", "version", appVersion, "data", cfg.Gridform.DataLocation())

	app := view.NewApp(cfg, keys, appVersion, slog.Default())
	app.SetFactory(client)

	if err := app.Init(); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run()
}

// runValidate checks every record of the active dataset without starting
// the UI.
func runValidate(cmd *cobra.Command, args []string) error {
	cfg, _, client, done, err := loadConfig()
	if err != nil {
		return err
	}
	defer done()

	spec, ok := cfg.Gridform.ActiveTable()
	if !ok {
		return fmt.Errorf("no active table")
	}
	schema, err := spec.Schema()
	if err != nil {
		return err
	}
	timeout, err := cfg.Gridform.GetAPITimeout()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	ds, err := dao.Open(ctx, cfg.Gridform.DataLocation(), client)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	rr, err := ds.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", ds.Location(), err)
	}

	engine := validate.NewEngine(schema)
	fields := spec.Header().FieldNames()
	var errs validate.Errors
	for i, r := range rr {
		id := r.Key
		if id == "" {
			id = "#" + strconv.Itoa(i+1)
		}
		errs = append(errs, engine.ValidateRow(id, r.Fields, fields)...)
	}

	out := cmd.OutOrStdout()
	for _, fe := range errs {
		fmt.Fprintf(out, "%s\t%s\t%s\n", fe.RowID, fe.Field, fe.Message)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d validation error(s)", ds.Location(), len(errs))
	}
	fmt.Fprintf(out, "%s: %d rows OK\n", ds.Location(), len(rr))

	return nil
}
