package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/hemantsolanki/portfolio/internal/config"
	"github.com/hemantsolanki/portfolio/internal/content"
	"github.com/hemantsolanki/portfolio/internal/relay"
	"github.com/hemantsolanki/portfolio/internal/store"
	"github.com/hemantsolanki/portfolio/internal/widgets"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site with an AI demo relay",
	Long: `Serves the portfolio page, its static assets and the /api/analyze relay
that forwards demo text to Gemini. Running without a subcommand serves.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// site is the running web application.
type site struct {
	cfg     *config.Config
	content content.Site
	page    widgets.Config
	db      *store.DB
	admin   *adminService
	relay   *relay.Handler
}

func newSite(cfg *config.Config, db *store.DB, gen relay.Generator) (*site, error) {
	text, err := content.Load(cfg.ContentPath, defaultSite())
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return &site{
		cfg:     cfg,
		content: text,
		page:    widgets.DefaultConfig(text.TerminalLines),
		db:      db,
		admin:   newAdminService(db, cfg),
		relay:   relay.NewHandler(gen, db, cfg.Timeout()),
	}, nil
}

type projectView struct {
	content.Project
	HTML template.HTML
}

func (s *site) router() http.Handler {
	r := gin.Default()
	r.LoadHTMLGlob(s.cfg.TemplatesGlob)
	r.Static("/static", s.cfg.StaticDir)
	r.Use(s.admin.visitorTrackingMiddleware())

	r.GET("/", s.index)
	r.POST("/api/analyze", s.relay.Analyze)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.admin.setupRoutes(r)

	// CORS and request ids sit in front of gin so preflights never reach it.
	var h http.Handler = r
	h = cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Origins(),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})(h)
	return middleware.RequestID(h)
}

func (s *site) index(c *gin.Context) {
	pageConfig, err := json.Marshal(s.page)
	if err != nil {
		log.Printf("Error encoding page config: %v", err)
		c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": "Page unavailable"})
		return
	}
	projects := make([]projectView, 0, len(s.content.Projects))
	for _, p := range s.content.Projects {
		projects = append(projects, projectView{Project: p, HTML: content.MustMarkdown(p.Description)})
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":       s.content,
		"about":      content.MustMarkdown(s.content.About),
		"projects":   projects,
		"pageConfig": template.JS(pageConfig),
		"year":       time.Now().Year(),
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is not set; /api/analyze will fail upstream.")
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	gen := relay.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, &http.Client{Timeout: cfg.Timeout()})
	s, err := newSite(cfg, db, gen)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	s.admin.wg.Add(1)
	go func() {
		defer s.admin.wg.Done()
		s.admin.runCleanup(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	log.Printf("Server running on port %d (model %s)", cfg.Port, gen.Model())
	err = serveUntilDone(ctx, srv, ln)
	// Handlers have returned, so no new visitor writes can start.
	s.admin.wg.Wait()
	return err
}

const shutdownTimeout = 10 * time.Second

// serveUntilDone serves on ln until ctx ends, then returns once Shutdown
// has drained the in-flight requests.
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
