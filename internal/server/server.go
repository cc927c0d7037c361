package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/SMEDTEC/2sanbusinesscase/internal/config"
	"github.com/SMEDTEC/2sanbusinesscase/internal/server/handlers"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP 服务器
type Server struct {
	router   *gin.Engine
	handlers *handlers.Handlers
}

// NewServer 创建服务器：初始化持久化适配器、加载项目集合、注册路由
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	repo, backend := newRepository(cfg, dataDir)
	projectStore := store.NewProjectStore(repo)
	projectStore.Load()

	exportDir := filepath.Join(dataDir, cfg.Export.Dir)
	h := handlers.NewHandlers(projectStore, backend, exportDir)

	s := &Server{
		router:   gin.Default(),
		handlers: h,
	}
	s.setupRoutes(devMode)
	return s
}

// newRepository 按配置选择持久化后端；sqlite 初始化失败时回退到文件存储
func newRepository(cfg *config.AppConfig, dataDir string) (store.Repository, string) {
	if cfg.Data.Backend == "sqlite" {
		dbPath := filepath.Join(dataDir, "bizcase.db")
		repo, err := store.NewSQLiteRepository(dbPath)
		if err == nil {
			return repo, "sqlite"
		}
		log.Printf("初始化 SQLite 失败，回退到文件存储: %v", err)
	}
	return store.NewFileRepository(dataDir), "file"
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	api := s.router.Group("/api/v1")
	{
		s.handlers.RegisterRoutes(api)
	}

	// 静态资源
	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 生产模式：使用 embed 的静态资源
		sub, _ := fs.Sub(staticFiles, "dist")

		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA 路由 fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
