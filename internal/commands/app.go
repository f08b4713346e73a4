package commands

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipefinder/internal/api"
	"recipefinder/internal/config"
	"recipefinder/internal/logging"
	"recipefinder/internal/models"
	"recipefinder/internal/session"
	"recipefinder/internal/views"
)

// app wires the pieces every command needs
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
	session  *session.Store
	client   *api.Client
	env      views.Env
}

func newApp() (*app, error) {
	cfg := globalConfig
	if cfg == nil {
		loaded, err := config.LoadGlobalConfig()
		if err != nil {
			return nil, fmt.Errorf("error loading global config: %w", err)
		}
		cfg = loaded
	}

	// flags override the file without being saved to it
	effective := *cfg
	if serverURLFlag != "" {
		effective.ServerURL = strings.TrimRight(serverURLFlag, "/")
	}

	configDir, err := config.GetGlobalConfigDir()
	if err != nil {
		return nil, err
	}

	logPath := logFileFlag
	if logPath == "" {
		logPath = effective.LogFile
	}
	if logPath == "" {
		if logPath, err = config.DefaultLogPath(); err != nil {
			return nil, err
		}
	}
	level := effective.LogLevel
	if debugFlag {
		level = "debug"
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:   level,
		Format:  "json",
		Output:  logPath,
		Version: rootCmd.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	store := session.NewStore(models.NewTokenStore(configDir), logger)
	client := api.NewClient(effective.ServerURL, store,
		api.WithTimeout(effective.Timeout()),
		api.WithLogger(logger),
	)

	return &app{
		cfg:      &effective,
		logger:   logger,
		closeLog: closeLog,
		session:  store,
		client:   client,
		env: views.Env{
			API:      client,
			Session:  store,
			Logger:   logger,
			PageSize: effective.PageSize,
		},
	}, nil
}

func (a *app) close() {
	_ = a.closeLog()
}

// rememberEmail stores the last used address in the config file
func (a *app) rememberEmail(email string) {
	cfg, err := config.LoadGlobalConfigFile()
	if err != nil {
		a.logger.Warn("error loading global config", zap.Error(err))
		return
	}
	cfg.Email = email
	if err := config.SaveGlobalConfig(cfg); err != nil {
		a.logger.Warn("error saving global config", zap.Error(err))
	}
}

// viewError reports the message a view chose for a failure while still
// unwrapping to the error behind it
type viewError struct {
	msg string
	err error
}

func newViewError(msg string, err error) error {
	if msg == "" {
		return err
	}
	return &viewError{msg: msg, err: err}
}

func (e *viewError) Error() string { return e.msg }

func (e *viewError) Unwrap() error { return e.err }
