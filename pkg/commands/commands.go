package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/promptdock/pkg/app"
	"tableflip.dev/promptdock/pkg/commands/options"
	"tableflip.dev/promptdock/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

// session lazily builds the config, store and service shared by every verb.
type session struct {
	log    options.LogOptions
	logger *zap.Logger

	cfg store.Config
	p   store.Persistence
	svc *app.Service
}

func (s *session) config() (store.Config, error) {
	if s.cfg == nil {
		cfg, err := store.LoadConfig()
		if err != nil {
			return nil, err
		}
		s.cfg = cfg
	}
	return s.cfg, nil
}

func (s *session) persistence() (store.Persistence, error) {
	if s.p == nil {
		cfg, err := s.config()
		if err != nil {
			return nil, err
		}
		p, err := store.Load(cfg)
		if err != nil {
			return nil, err
		}
		s.p = p
	}
	return s.p, nil
}

func (s *session) service() (*app.Service, error) {
	if s.svc == nil {
		p, err := s.persistence()
		if err != nil {
			return nil, err
		}
		s.svc = &app.Service{Persistence: p, Logger: s.zap()}
	}
	return s.svc, nil
}

func (s *session) zap() *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

func (s *session) initLogger() error {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	level := zapcore.WarnLevel
	if cfg, err := s.config(); err == nil {
		if parsed, err := zapcore.ParseLevel(cfg.LogLevel()); err == nil {
			level = parsed
		}
	}
	if s.log.Verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	s.logger = logger
	return nil
}

func New() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:   "promptdock",
		Short: base.Wrap80("Organize prompt templates in folders on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.logger != nil {
				_ = s.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddLogArgs(cmd, &s.log)

	addCommands(cmd, s)
	return cmd
}

func addCommands(topLevel *cobra.Command, s *session) {
	addTree(topLevel, s)
	addShow(topLevel, s)
	addAdd(topLevel, s)
	addRename(topLevel, s)
	addEdit(topLevel, s)
	addMove(topLevel, s)
	addCombine(topLevel, s)
	addReorder(topLevel, s)
	addRemove(topLevel, s)
	addFav(topLevel, s)
	addPick(topLevel, s)
	addExport(topLevel, s)
	addImport(topLevel, s)
	addWatch(topLevel, s)
	addInfo(topLevel, s)
	addKey(topLevel)
	addMCP(topLevel, s)
	addVersion(topLevel)
	addCompletions(topLevel, s)
}
