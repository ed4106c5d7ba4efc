package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hrdash/app"
	"hrdash/domain/core"
	"hrdash/domain/employee"
	"hrdash/internal/charts"
	"hrdash/internal/config"
	"hrdash/internal/container"
	"hrdash/internal/errors"
	"hrdash/ui"
)

// dashboardAPI is the slice of the dashboard service the JSON API serves
type dashboardAPI interface {
	Render(ctx context.Context, sel employee.Selection) (*app.Dashboard, error)
	Chart(ctx context.Context, sel employee.Selection, id string) (charts.Spec, error)
	Options(ctx context.Context) (employee.FilterOptions, error)
	DefaultSelection(ctx context.Context) (employee.Selection, error)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(context.Background(), appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if _, err := appContainer.Warm(context.Background()); err != nil {
		log.Fatalf("Failed to load employee data: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + appConfig.Server.APIPort,
		Handler:           newRouter(appContainer.Dashboard),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func newRouter(svc dashboardAPI) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1.GET("/options", func(c *gin.Context) {
		opts, err := svc.Options(c.Request.Context())
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, opts)
	})

	v1.GET("/dashboard", func(c *gin.Context) {
		sel, ok := selection(c, svc)
		if !ok {
			return
		}
		d, err := svc.Render(c.Request.Context(), sel)
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	})

	// Plotly figure for one chart
	v1.GET("/charts/:chart", func(c *gin.Context) {
		sel, ok := selection(c, svc)
		if !ok {
			return
		}
		spec, err := svc.Chart(c.Request.Context(), sel, c.Param("chart"))
		if err != nil {
			abort(c, err)
			return
		}
		c.JSON(http.StatusOK, spec.Plotly())
	})

	return router
}

func selection(c *gin.Context, svc dashboardAPI) (employee.Selection, bool) {
	defaults, err := svc.DefaultSelection(c.Request.Context())
	if err != nil {
		abort(c, err)
		return employee.Selection{}, false
	}
	return ui.ParseSelection(c.Request.URL.Query(), defaults), true
}

func abort(c *gin.Context, err error) {
	body := gin.H{"code": errors.GetCode(err), "error": err.Error()}
	if core.IsEmptySelection(err) {
		body["advisory"] = app.AdvisoryNoData
	}
	c.AbortWithStatusJSON(ui.StatusFor(err), body)
}
