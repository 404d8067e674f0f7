// Package main is the eventhub command-line client. It keeps the signed-in user in a local
// buntdb file and talks to the API server over HTTP.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eventhub/backend/internal/session"
	"github.com/eventhub/backend/pkg/client"
	"github.com/eventhub/backend/pkg/kvstore"
)

// app is the per-invocation state shared by every subcommand.
type app struct {
	v       *viper.Viper
	out     io.Writer
	logger  *zap.Logger
	kv      kvstore.Store
	api     *client.Client
	session *session.Store
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventhub.db"
	}
	return filepath.Join(home, ".eventhub.db")
}

// addGlobalFlags registers the flags every subcommand shares.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "http://localhost:8080", "EventHub API base URL")
	fs.String("store", defaultStorePath(), "path of the local session file (\":memory:\" for none)")
	fs.String("log-level", "warn", "log level (debug, info, warn, error)")
}

// wordSepNormalizeFunc maps flag names to viper keys ("api-url" -> "api_url").
func wordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
}

func newLogger(level string) *zap.Logger {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.WarnLevel
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (a *app) open(ctx context.Context) error {
	a.logger = newLogger(a.v.GetString("log_level"))
	kv, err := kvstore.OpenBunt(a.v.GetString("store"))
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	a.kv = kv
	a.api = client.New(a.v.GetString("api_url"), kv, nil, a.logger)
	if err := a.api.LoadToken(ctx); err != nil {
		return err
	}
	a.session = session.NewStore(a.api, kv, a.logger)
	return a.session.Init(ctx)
}

func (a *app) close() {
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.logger.Warn("close session store", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) print(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "eventhub",
		Short:         "EventHub command-line client",
		Long:          `eventhub signs in to an EventHub server, browses the catalog, shows your dashboard and drives live-session panels.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		eventsCmd(a),
		eventCmd(a),
		dashboardCmd(a),
		panelCmd(a),
		ticketsCmd(a),
		buyCmd(a),
	)
	root.SetGlobalNormalizationFunc(wordSepNormalizeFunc)
	_ = a.v.BindPFlags(root.PersistentFlags())
	a.v.SetEnvPrefix("EVENTHUB")
	a.v.AutomaticEnv()
	return root
}

// run executes one command line and releases the session file afterwards.
func run(ctx context.Context, args []string, out io.Writer) error {
	a := &app{v: viper.New(), out: out}
	defer a.close()
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
