package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwantia/vfsh"
	"github.com/mwantia/vfsh/cli/tui"
	"github.com/mwantia/vfsh/cmd"
	"github.com/mwantia/vfsh/cmd/builtin"
	"github.com/mwantia/vfsh/config"
	"github.com/mwantia/vfsh/data"
	"github.com/mwantia/vfsh/metrics"
)

const defaultLogFile = "vfsh.log"

func main() {
	configPath := flag.String("config", "", "Path to the configuration file (default: $XDG_CONFIG_HOME/vfsh/vfsh.yaml or ./vfsh.yaml)")
	user := flag.String("user", "", "Log in as this user instead of prompting")
	command := flag.String("c", "", "Execute a single command and exit, requires -user")
	plain := flag.Bool("plain", false, "Use the line based shell instead of the terminal UI")
	initConfig := flag.Bool("init", false, "Write a default configuration file and exit")
	force := flag.Bool("force", false, "Overwrite an existing configuration file with -init")
	logLevel := flag.String("log-level", "", "Override the configured log level (DEBUG, INFO, WARN, ERROR)")

	flag.Parse()

	if *initConfig {
		os.Exit(initialize(*configPath, *force))
	}

	if *command != "" && *user == "" {
		fmt.Fprintln(os.Stderr, "-c requires -user")
		os.Exit(2)
	}

	os.Exit(run(*configPath, *user, *command, *logLevel, *plain))
}

// initialize writes the default configuration and seeds the configured
// users backend with a root user when it holds no users yet.
func initialize(path string, force bool) int {
	if path == "" {
		path = config.GetDefaultConfigPath()
	}
	if err := config.InitConfigToPath(path, force); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write configuration: %v\n", err)
		return 1
	}
	fmt.Printf("Configuration written to %s\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if cfg.Users.Type == "record" {
		cfg.Users.Record["create_missing"] = true
	}

	seeded, err := config.SeedUsers(context.Background(), &cfg.Users, data.NewRootUser(time.Now()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed users: %v\n", err)
		return 1
	}
	if seeded {
		fmt.Printf("Seeded %s users backend with '%s'\n", cfg.Users.Type, data.RootID)
	} else {
		fmt.Printf("Users backend '%s' is ready\n", cfg.Users.Type)
	}

	return 0
}

func run(configPath, user, command, logLevel string, plain bool) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	// Shell output owns the terminal
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogFile
	}
	cfg.Logging.NoTerminal = true

	logger, err := config.NewLogger("vfsh", &cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := config.CreateBackends(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create backends: %v\n", err)
		return 1
	}

	fs, err := vfs.NewVirtualFileSystem(ctx,
		vfs.WithLogger(logger),
		vfs.WithCapacity(cfg.Store.Capacity),
		vfs.WithEntryBackend(backends.Entries),
		vfs.WithUserBackend(backends.Users),
		vfs.WithContentBackend(backends.Content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open filesystem: %v\n", err)
		return 1
	}
	defer func() {
		if err := fs.Close(context.Background()); err != nil {
			logger.Error("Failed to close filesystem: %v", err)
		}
	}()

	if len(fs.Users()) == 0 {
		logger.Warn("No users loaded, nobody will be able to log in")
	}

	if cfg.Metrics.Enabled {
		go func() {
			logger.Info("Serving metrics on '%s'", cfg.Metrics.Address)
			if err := metrics.Serve(ctx, cfg.Metrics.Address); err != nil {
				logger.Error("Metrics server failed: %v", err)
			}
		}()
	}

	manager, err := builtin.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register commands: %v\n", err)
		return 1
	}

	login := func(ctx context.Context, id string) (cmd.Session, error) {
		session, err := fs.Login(ctx, id)
		if err != nil {
			return nil, err
		}
		return session, nil
	}

	var session cmd.Session
	if user != "" {
		if session, err = login(ctx, user); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid ID. Login failed.")
			return 1
		}
	}

	switch {
	case command != "":
		return runCommand(ctx, manager, session, command)

	case plain:
		if err := runShell(ctx, manager, login, session, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Shell error: %v\n", err)
			return 1
		}
		return 0
	}

	model := tui.NewModel(ctx, manager, login, session)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		return 1
	}

	return 0
}

// runCommand executes a single command line and returns its exit code.
func runCommand(ctx context.Context, manager *cmd.CommandManager, session cmd.Session, line string) int {
	code, err := manager.ExecuteLine(ctx, session, os.Stdout, line)
	if err != nil && !errors.Is(err, cmd.ErrExit) {
		fmt.Fprintln(os.Stderr, err)
		if code == 0 {
			code = 1
		}
	}

	return code
}
