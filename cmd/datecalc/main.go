package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/username/datecalc/internal/calendar"
	"github.com/username/datecalc/internal/config"
	"github.com/username/datecalc/internal/dateerr"
	"github.com/username/datecalc/internal/ops"
	"github.com/username/datecalc/internal/tz"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var version = "dev"

// app holds the state shared by all subcommands of one invocation
type app struct {
	configPath string
	jsonOutput bool
	noColor    bool

	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	logger *zap.Logger
	engine *ops.Engine
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{out: out, errOut: errOut, now: time.Now}
	rootCmd := a.rootCmd(in)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		color.New(color.FgRed).Fprint(errOut, "Error: ")
		fmt.Fprintf(errOut, "%v\n", err)
		return dateerr.ExitCode(err)
	}
	return dateerr.ExitSuccess
}

func (a *app) rootCmd(in io.Reader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "datecalc",
		Short:         "Calendar-aware date arithmetic",
		Long:          "Add calendar units to dates, walk business days and describe the time between two instants",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				color.NoColor = true
			}
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			return a.initialize(cfg)
		},
	}

	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)
	rootCmd.SetIn(in)

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (default ./datecalc.yaml)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		a.shiftCmd(ops.OpAdd),
		a.shiftCmd(ops.OpSubtract),
		a.businessCmd(),
		a.isBusinessDayCmd(),
		a.diffCmd(),
		a.decomposeCmd(),
		a.durationCmd(),
		a.execCmd(),
		versionCmd(),
	)

	return rootCmd
}

// initialize builds the logger and the operation engine from cfg
func (a *app) initialize(cfg *config.Config) error {
	var err error
	if cfg.Log.File != "" {
		a.logger, err = initFileLogger(cfg.Log.File, cfg.Log.GetLevel())
	} else {
		a.logger, err = initLogger(a.errOut, cfg.Log.GetLevel())
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	var holidays *calendar.HolidayCalendar
	if cfg.Business.HolidaysFile != "" {
		holidays = calendar.NewHolidayCalendar(cfg.Business.HolidaysFile, a.logger)
		if err := holidays.Load(); err != nil {
			return err
		}
	}

	a.engine = ops.NewEngine(
		tz.NewZones(cfg.Timezone),
		ops.Settings{
			Weekend:  cfg.Business.GetWeekend(),
			Holidays: holidays,
			Defaults: ops.RenderDefaults{
				Verbosity: cfg.Duration.GetVerbosity(),
				MaxUnits:  cfg.Duration.MaxUnits,
			},
		},
		a.logger,
	)

	a.logger.Debug("Engine initialized",
		zap.String("timezone", cfg.Timezone),
		zap.Stringer("weekend", cfg.Business.GetWeekend()),
		zap.String("holidays_file", cfg.Business.HolidaysFile))

	return nil
}

func initLogger(w io.Writer, level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zapLevel,
	)

	return zap.New(core), nil
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// skip config loading
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datecalc %s\n", version)
		},
	}
}
