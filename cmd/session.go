package cmd

import (
	"context"
	"fmt"
	"os"

	"clientctl/internal/api"
	"clientctl/internal/cli"
	"clientctl/internal/clients"
	"clientctl/internal/config"
	"clientctl/pkg/logging"
)

// session is everything a command needs to talk to the client API.
type session struct {
	cfg  config.ClientctlConfig
	api  *api.Client
	ctrl *clients.Controller
}

// loadConfig layers config.yaml, .env, CLIENTCTL_* variables and flags, in
// that order, and validates the result.
func loadConfig(flags *cli.CommandFlags) (config.ClientctlConfig, error) {
	cfg, err := config.LoadConfig(flags.ConfigPath)
	if err != nil {
		return config.ClientctlConfig{}, err
	}
	if err := config.LoadDotEnv("."); err != nil {
		logging.Warn("Config", "Ignoring .env: %v", err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.ClientctlConfig{}, err
	}
	if flags.Endpoint != "" {
		cfg.Endpoint = flags.Endpoint
	}
	if err := cfg.Validate(); err != nil {
		return config.ClientctlConfig{}, err
	}
	return cfg, nil
}

// initLogging sends warnings, or everything with --debug, to stderr.
func initLogging(flags *cli.CommandFlags) {
	level := logging.LevelWarn
	if flags.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
}

// openSession loads configuration, prepares the anti-forgery pair and
// bootstraps the controller with the server's client list. When only the
// bootstrap fails the session is returned together with the error, its grid
// loaded empty.
func openSession(ctx context.Context, flags *cli.CommandFlags) (*session, error) {
	initLogging(flags)

	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(api.Options{
		BaseURL: cfg.Endpoint,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}

	prepareAntiForgery(ctx, client, cfg.CSRF, flags.Quiet)

	ctrl := clients.NewController(client, clients.ControllerOptions{
		ActorID:  cfg.ActorID,
		PageSize: cfg.PageSize,
	})
	err = cli.WithSpinner(flags.Quiet, "Loading clients...", func() error {
		return ctrl.Bootstrap(ctx)
	})
	s := &session{cfg: cfg, api: client, ctrl: ctrl}
	if err != nil {
		return s, cli.WrapConnectionError(err, cfg.Endpoint)
	}
	return s, nil
}

// prepareAntiForgery installs a static pair when configured, otherwise reads
// it from the endpoint page. Discovery never fails the session: writes then
// go out without the header, and an unreachable server is reported by the
// bootstrap that follows.
func prepareAntiForgery(ctx context.Context, client *api.Client, csrf config.CSRFConfig, quiet bool) {
	if csrf.HasStaticToken() {
		client.SetAntiForgery(api.AntiForgery{Header: csrf.Header, Token: csrf.Token})
		return
	}
	if !csrf.Discover {
		return
	}

	err := cli.WithSpinner(quiet, "Reading anti-forgery token...", func() error {
		_, err := client.DiscoverAntiForgery(ctx, "")
		return err
	})
	if err != nil {
		logging.Warn("API", "Anti-forgery discovery failed, writes will be sent without it: %v", err)
	}
}

// findClient looks an id up in the bootstrapped cache.
func (s *session) findClient(id int64) (clients.Client, error) {
	c, ok := s.ctrl.Cache().Find(id)
	if !ok {
		return clients.Client{}, fmt.Errorf("%w: %d", clients.ErrClientNotFound, id)
	}
	return c, nil
}
