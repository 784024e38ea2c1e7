// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/adapters/repository"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/adapters/sandbox"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/config"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/logger"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/metrics"
	"github.com/mahabubulhasibshawon/glamour-storefront/pkg/auth"
)

// Init sets up JSON logging on w and reads the configuration.
func Init(w io.Writer) (*config.Config, error) {
	logger.SetupDefault(w, os.Getenv("STOREFRONT_LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Run executes the subcommand in args (os.Args[1:]). Command output goes
// to stdout and logs to stderr.
func Run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	cmd := ParseCommand(args)
	if cmd == CommandHelp {
		printUsage(stdout)
		return nil
	}
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	cfg, err := Init(stderr)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	log := slog.Default()
	log.Debug("running command",
		slog.String("command", string(cmd)),
		slog.String("storage", cfg.Storage),
		slog.String("api_base", cfg.APIBase),
	)

	switch cmd {
	case CommandSandbox:
		return runSandbox(ctx, cfg, log)
	case CommandMigrate:
		return runMigrate(cfg, stdout)
	case CommandSlots:
		return runSlots(stdout)
	}

	sf, err := OpenStorefront(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := sf.Close(); err != nil {
			log.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	return dispatch(ctx, sf, cmd, rest, stdout)
}

func dispatch(ctx context.Context, sf *Storefront, cmd Command, args []string, out io.Writer) error {
	switch cmd {
	case CommandProducts:
		return runProducts(ctx, sf, out)
	case CommandProduct:
		return runProduct(ctx, sf, args, out)
	case CommandCourses:
		return runCourses(ctx, sf, out)
	case CommandCourse:
		return runCourse(ctx, sf, args, out)
	case CommandPackages:
		return runPackages(ctx, sf, out)
	case CommandBanners:
		return runBanners(ctx, sf, out)
	case CommandRefresh:
		return runRefresh(ctx, sf, out)
	case CommandCart:
		return runCart(ctx, sf, args, out)
	case CommandLogin:
		return runLogin(ctx, sf, args, out)
	case CommandRegister:
		return runRegister(ctx, sf, args, out)
	case CommandLogout:
		return runLogout(ctx, sf, out)
	case CommandWhoami:
		return runWhoami(sf, out)
	case CommandCheckout:
		return runCheckout(ctx, sf, args, out)
	case CommandOrders:
		return runOrders(ctx, sf, out)
	case CommandBookings:
		return runBookings(ctx, sf, out)
	case CommandCancelBooking:
		return runCancelBooking(ctx, sf, args, out)
	case CommandEnrollments:
		return runEnrollments(ctx, sf, out)
	case CommandEnroll:
		return runEnroll(ctx, sf, args, out)
	case CommandReferral:
		return runReferral(ctx, sf, out)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// runSandbox serves the in-memory backend until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func runSandbox(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signalContext(ctx)
	defer stop()

	reg := prometheus.NewRegistry()
	issuer := auth.NewIssuer(cfg.SandboxJWTSecret, cfg.SandboxTokenTTL)
	srv := sandbox.NewServer(issuer, metrics.NewCollector(reg), reg, log)

	server := &http.Server{
		Addr:         ":" + cfg.SandboxPort,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("sandbox backend starting",
			slog.String("addr", server.Addr),
			slog.String("demo_email", sandbox.DemoEmail),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("sandbox server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info("shutting down sandbox backend...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sandbox shutdown failed: %w", err)
	}
	log.Info("sandbox backend stopped")
	return nil
}

func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// runMigrate applies the schema for the SQL drivers. Redis has none.
func runMigrate(cfg *config.Config, out io.Writer) error {
	var driver, dsn string
	switch cfg.Storage {
	case config.StoragePostgres:
		driver, dsn = repository.DriverPostgres, cfg.DatabaseURL
	case config.StorageSQLite:
		driver, dsn = repository.DriverSQLite, cfg.SQLitePath
	default:
		fmt.Fprintf(out, "Storage %q needs no migrations.\n", cfg.Storage)
		return nil
	}
	if err := repository.RunMigrations(driver, dsn); err != nil {
		return err
	}
	slog.Info("migrations applied", slog.String("driver", driver))
	fmt.Fprintln(out, "Migrations applied.")
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: storefront <command> [arguments]")
	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"products", "list services"},
		{"product <id>", "show one service"},
		{"courses", "list academy courses"},
		{"course <id>", "show one course"},
		{"packages", "list packages"},
		{"banners", "list promotional banners"},
		{"refresh", "drop the cached catalog"},
		{"cart [show|add|remove|set|clear]", "view or edit the cart"},
		{"login <email> <password>", "sign in"},
		{"register --first --email --password ...", "create an account"},
		{"logout", "sign out"},
		{"whoami", "show the signed-in user"},
		{"slots", "list bookable time slots"},
		{"checkout --service --date --slot ...", "place an order for the cart"},
		{"orders", "list your orders"},
		{"bookings", "list your bookings"},
		{"cancel-booking <id>", "cancel a booking"},
		{"enrollments", "list your course enrollments"},
		{"enroll <courseId>", "enroll in a course"},
		{"referral", "show your referral status"},
		{"sandbox", "serve the in-memory backend"},
		{"migrate", "apply storage migrations"},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\n", r[0], r[1])
	}
	tw.Flush()
}
