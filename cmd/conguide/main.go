// Command conguide renders convention program grids.
//
// @title conguide grid preview API
// @version 1.0
// @description Renders the convention program grid as HTML, InDesign tagged text, or InDesign XML.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"conguide/config"
	_ "conguide/docs"
	"conguide/internal/adapters/auth"
	"conguide/internal/adapters/csvimport"
	"conguide/internal/adapters/email"
	"conguide/internal/adapters/grid"
	"conguide/internal/adapters/sessionize"
	delivery "conguide/internal/delivery/http"
	"conguide/internal/delivery/http/controllers"
	"conguide/internal/delivery/http/middleware"
	"conguide/internal/domain"
	"conguide/internal/repository/postgres"
	"conguide/internal/services"
)

const (
	loadTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// extensions maps formats to output file extensions.
var extensions = map[string]string{
	domain.FormatHTML:     "html",
	domain.FormatInDesign: "txt",
	domain.FormatXML:      "xml",
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: conguide <command> [flags]

commands:
  grid    render grid documents to files (or stdout with -stdout)
  serve   run the grid preview server
  mail    mail an HTML grid proof to the proof recipients
  token   print a bearer token for the preview server
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "grid":
		err = runGrid(ctx, cfg, args)
	case "serve":
		err = runServe(ctx, cfg, args)
	case "mail":
		err = runMail(ctx, cfg, args)
	case "token":
		err = runToken(cfg, args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "conguide %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func runGrid(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("grid", flag.ExitOnError)
	quiet := fs.Bool("q", cfg.Quiet, "only report errors")
	toStdout := fs.Bool("stdout", false, "write the documents to stdout instead of files")
	outDir := fs.String("o", cfg.OutputDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := config.NewLogger(*quiet)

	app, err := loadApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	formats := fs.Args()
	if len(formats) == 0 {
		formats = app.grid.Formats()
	}
	for _, format := range formats {
		doc, err := app.grid.Document(ctx, format)
		if err != nil {
			return err
		}
		if *toStdout {
			if _, err := os.Stdout.Write(doc); err != nil {
				return fmt.Errorf("write %s grid: %w", format, err)
			}
			continue
		}
		path := filepath.Join(*outDir, "grid."+extensions[format])
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("write %s grid: %w", format, err)
		}
		logger.Info("grid written", "format", format, "path", path, "bytes", len(doc))
	}
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", cfg.Port, "listen port")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Quiet)

	app, err := loadApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	emailService, err := newEmailService(cfg, logger)
	if err != nil {
		return err
	}

	var verifier domain.TokenVerifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewJWTVerifier(cfg.JWTSecret)
	} else {
		logger.Warn("JWT_SECRET not set, grid routes are open")
	}

	gridController := controllers.NewGridController(logger, app.grid, emailService, app.convention.Name)
	router := delivery.NewRouter(gridController, verifier, logger)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, router))

	server := &http.Server{
		Addr:              ":" + *port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "err", err)
		}
	}()

	logger.Info("server starting", "port", *port, "formats", app.grid.Formats())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func runMail(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("mail", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Quiet)

	recipients := fs.Args()
	if len(recipients) == 0 {
		recipients = cfg.ProofRecipients
	}
	if len(recipients) == 0 {
		return errors.New("no recipients: set PROOF_RECIPIENTS or pass addresses")
	}

	app, err := loadApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	emailService, err := newEmailService(cfg, logger)
	if err != nil {
		return err
	}
	data, err := services.BuildGridProof(ctx, app.grid, app.convention.Name, generatedAt(cfg))
	if err != nil {
		return err
	}
	var errs []error
	for _, to := range recipients {
		proof := *data
		proof.Email = to
		if err := emailService.SendGridProof(ctx, &proof); err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Info("grid proof sent", "to", to, "slices", len(data.Slices))
	}
	return errors.Join(errs...)
}

func runToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	subject := fs.String("sub", "conguide", "token subject")
	expiry := fs.Duration("exp", cfg.TokenExpiry, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*subject, *expiry)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

type app struct {
	convention *config.Convention
	grid       domain.GridService
}

// loadApp reads the convention file, loads the program from the configured
// source and builds the grid service.
func loadApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	conv, err := config.LoadConvention(cfg.ConventionFile)
	if err != nil {
		return nil, err
	}
	source, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	loader := services.NewProgramLoader(conv.BuildRegistry(logger), conv.Changes, conv.MajorThreshold, logger)
	program, err := services.NewProgramService(source, loader, loadTimeout).Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("program loaded", "sessions", len(program.Sessions), "days", program.Days.Len(), "rooms", len(program.Registry.Rooms()))

	opts, err := gridOptions(conv, generatedAt(cfg))
	if err != nil {
		return nil, err
	}
	return &app{convention: conv, grid: services.NewGridService(program, opts, logger)}, nil
}

func gridOptions(conv *config.Convention, generated string) (services.GridOptions, error) {
	noPrint, err := services.CompileRules(conv.NoPrint)
	if err != nil {
		return services.GridOptions{}, fmt.Errorf("no_print: %w", err)
	}
	fromParticipants, err := services.CompileRules(conv.ParticipantsAsTitle)
	if err != nil {
		return services.GridOptions{}, fmt.Errorf("title_from_participants: %w", err)
	}

	ropts := grid.Options{
		Convention:   conv.Name,
		Generated:    generated,
		ScheduleLink: conv.ScheduleLink,
		TitlePrune:   conv.TitlePrune,
	}
	constructors := map[string]func(domain.GridLayout, grid.Options) domain.GridDocument{
		domain.FormatHTML:     grid.NewHTML,
		domain.FormatInDesign: grid.NewInDesign,
		domain.FormatXML:      grid.NewXML,
	}
	opts := services.GridOptions{
		Layouts:             make(map[string]domain.GridLayout),
		Renderers:           make(map[string]services.RendererFactory),
		NoPrint:             noPrint,
		ParticipantsAsTitle: fromParticipants,
	}
	for format, newDoc := range constructors {
		layout, ok, err := conv.Layout(format)
		if err != nil {
			return services.GridOptions{}, err
		}
		if !ok {
			continue
		}
		opts.Layouts[format] = layout
		opts.Renderers[format] = func(l domain.GridLayout) domain.GridDocument {
			return newDoc(l, ropts)
		}
	}
	return opts, nil
}

// newSource returns the configured session source and a func releasing it.
func newSource(ctx context.Context, cfg *config.Config) (domain.SessionSource, func(), error) {
	switch cfg.Source {
	case config.SourceSessionize:
		client := sessionize.NewClient(&http.Client{Timeout: 30 * time.Second}, "")
		return sessionize.NewSource(client, cfg.SessionizeID), func() {}, nil
	case config.SourcePostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewSessionRepository(db, time.Local)
		return postgres.NewEventSource(repo, cfg.EventID), func() { _ = db.Close() }, nil
	default:
		return csvimport.NewFileSource(cfg.InputFile), func() {}, nil
	}
}

func newEmailService(cfg *config.Config, logger *slog.Logger) (domain.EmailService, error) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFrom,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKey,
			SecretAccessKey: cfg.AWSSecretKey,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}
	return services.NewEmailService(mailer, renderer, logger), nil
}

// generatedAt is the timestamp printed on documents.
func generatedAt(cfg *config.Config) string {
	if cfg.Generated != "" {
		return cfg.Generated
	}
	return time.Now().Format(time.DateTime)
}
