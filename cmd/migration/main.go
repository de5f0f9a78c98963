package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
)

type command struct {
	name   string
	steps  int
	target uint
}

func main() {
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("APP_LOG_LEVEL"))).Named("migration")
	defer func() {
		_ = logger.Sync()
	}()

	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := run(cmd, logger, os.Stdout); err != nil {
		logger.Error("migration failed", "command", cmd.name, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cmd command, logger *logging.Logger, out io.Writer) error {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return fmt.Errorf("DB_URL is required")
	}

	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer closeMigrator(m, logger)

	switch cmd.name {
	case "up":
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return err
		}
		logger.Info("migrations applied", "source", sourceURL)
	case "down":
		if err := ignoreNoChange(m.Steps(-cmd.steps), logger); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", cmd.steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "version: none")
			fmt.Fprintln(out, "dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(out, "version: %d\n", version)
		fmt.Fprintf(out, "dirty: %t\n", dirty)
	case "force":
		if err := m.Force(int(cmd.target)); err != nil {
			return fmt.Errorf("force version %d: %w", cmd.target, err)
		}
		logger.Info("migration version forced", "version", cmd.target)
	case "goto":
		if err := ignoreNoChange(m.Migrate(cmd.target), logger); err != nil {
			return err
		}
		logger.Info("migrated to version", "version", cmd.target)
	}

	return nil
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("missing command")
	}

	cmd := command{name: strings.ToLower(strings.TrimSpace(args[0]))}
	rest := args[1:]

	switch cmd.name {
	case "up", "version":
		return cmd, nil
	case "down":
		steps, err := parseSteps(rest)
		if err != nil {
			return command{}, err
		}
		cmd.steps = steps
		return cmd, nil
	case "force", "goto", "migrate":
		if cmd.name == "migrate" {
			cmd.name = "goto"
		}
		if len(rest) == 0 {
			return command{}, fmt.Errorf("%s requires a version argument", cmd.name)
		}
		target, err := parseVersion(rest[0])
		if err != nil {
			return command{}, err
		}
		cmd.target = target
		return cmd, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source failed", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db failed", "error", dbErr)
	}
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage(w io.Writer) {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down|version|force|goto> [args]\n", bin)
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s up\n", bin)
	fmt.Fprintf(w, "  %s down 1\n", bin)
	fmt.Fprintf(w, "  %s version\n", bin)
	fmt.Fprintf(w, "  %s force 1772000000\n", bin)
	fmt.Fprintf(w, "  %s goto 1772000000\n", bin)
}
