package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/common"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/handlers"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/mcp"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/middleware"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/model"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"
)

func setupRouter(r *gin.RouterGroup, mcpServer *mcp.MCPServer) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/api/v1/version", version.GetVersion)
	r.GET("/api/v1/audit-logs", handlers.ListAuditLogs)

	// MCP streamable HTTP endpoint, same mount the upstream service used.
	streamable := mcpServer.StreamableHandler()
	r.Any("/openstack", gin.WrapH(streamable))

	sse := mcpServer.SSEHandler()
	r.Any("/openstack/sse/*path", gin.WrapH(sse))
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	common.LoadEnvs()

	if klog.V(1).Enabled() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	model.InitDB()

	client := openstack.NewClient(openstack.Credentials{
		AuthURL:           common.OSAuthURL,
		Username:          common.OSUsername,
		Password:          common.OSPassword,
		ProjectName:       common.OSProjectName,
		UserDomainName:    common.OSUserDomainName,
		ProjectDomainName: common.OSProjectDomainName,
	})
	mcpServer := mcp.NewMCPServer(client)

	if !common.DisableVersionCheck {
		go version.CheckLatestRelease()
	}

	if common.MCPTransport == "stdio" {
		if err := mcpServer.ServeStdio(); err != nil {
			klog.Fatalf("MCP stdio server failed: %v", err)
		}
		return
	}

	r := gin.New()
	r.Use(middleware.Metrics())
	if !common.DisableGZIP {
		klog.Info("GZIP compression is enabled")
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	base := r.Group(common.Base)
	setupRouter(base, mcpServer)

	srv := &http.Server{
		Addr:    common.Host + ":" + common.Port,
		Handler: r.Handler(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			klog.Fatalf("Failed to start server: %v", err)
		}
	}()
	klog.Infof("OpenStack MCP server started on port %s", common.Port)
	klog.Infof("Version: %s, Build Date: %s, Commit: %s",
		version.Version, version.BuildDate, version.CommitID)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	klog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		klog.Fatalf("Failed to shutdown server: %v", err)
	}
}
