// admin.go - privacy-conscious admin: visitor tracking and relay usage
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hemantsolanki/portfolio/internal/config"
	"github.com/hemantsolanki/portfolio/internal/store"
)

type adminService struct {
	db        *store.DB
	token     string
	salt      string
	username  string
	password  string
	retention time.Duration

	// tracks in-flight visitor writes
	wg sync.WaitGroup
}

func newAdminService(db *store.DB, cfg *config.Config) *adminService {
	a := &adminService{
		db:        db,
		token:     generateAdminToken(),
		salt:      generateAdminToken(),
		username:  cfg.AdminUsername,
		password:  cfg.AdminPassword,
		retention: cfg.Retention(),
	}

	// Default credentials for development
	if a.username == "" {
		a.username = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if a.password == "" {
		a.password = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.token)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP for this process)
func (a *adminService) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *adminService) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Records page views with hashed IPs. Static assets, admin pages, the
// relay and health checks are not page views.
func (a *adminService) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/admin") ||
			strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/healthz") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		a.wg.Add(1)
		go a.trackVisitor(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

func (a *adminService) trackVisitor(ip, userAgent, path string) {
	defer a.wg.Done()
	err := a.db.RecordVisit(context.Background(), store.Visitor{
		HashedIP:  a.hashIP(ip),
		UserAgent: userAgent,
		Path:      path,
	})
	if err != nil {
		log.Printf("Error recording visitor: %v", err)
	}
}

// Removes visitor records older than the retention window.
func (a *adminService) cleanupOldVisitorData() {
	if a.retention <= 0 {
		return
	}
	rowsDeleted, err := a.db.CleanupVisitors(context.Background(), time.Now().Add(-a.retention))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %v", rowsDeleted, a.retention)
	}
}

// Runs the retention cleanup now and then daily until ctx ends.
func (a *adminService) runCleanup(ctx context.Context) {
	a.cleanupOldVisitorData()
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.cleanupOldVisitorData()
		}
	}
}

func (a *adminService) setupRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": int(a.retention.Hours() / 24),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(a.authMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.db.Stats(c.Request.Context(), time.Now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		analyses, err := a.db.RecentAnalyses(c.Request.Context(), 20)
		if err != nil {
			log.Printf("Error loading analyses: %v", err)
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title":    "Dashboard",
			"stats":    stats,
			"analyses": analyses,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.db.Stats(c.Request.Context(), time.Now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.db.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	adminGroup.GET("/api/analyses", func(c *gin.Context) {
		analyses, err := a.db.RecentAnalyses(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading analyses: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analyses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"analyses": analyses})
	})

	// Retention cleanup, plus an explicit wipe when asked
	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		if c.Query("all") == "true" {
			n, err := a.db.DeleteAllVisitors(c.Request.Context())
			if err != nil {
				log.Printf("Error deleting visitor data: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete visitor data"})
				return
			}
			log.Printf("Admin deleted %d visitor records from %s", n, a.hashIP(c.ClientIP()))
			c.JSON(http.StatusOK, gin.H{"message": "Visitor data deleted", "deleted": n})
			return
		}
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.cleanupOldVisitorData()
		}()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.db.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
