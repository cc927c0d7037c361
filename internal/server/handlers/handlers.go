package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SMEDTEC/2sanbusinesscase/internal/exporter"
	"github.com/SMEDTEC/2sanbusinesscase/internal/model"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/calculator"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/sanitizer"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/store"
	"github.com/SMEDTEC/2sanbusinesscase/internal/service/timeline"
)

// Version 应用版本
const Version = "1.2.0"

// Handlers API 处理器
type Handlers struct {
	store     *store.ProjectStore
	backend   string
	exportDir string

	// 导出文件缓存：token → 文件路径
	downloads   map[string]string
	downloadsMu sync.RWMutex
}

// NewHandlers 创建处理器
func NewHandlers(projectStore *store.ProjectStore, backend, exportDir string) *Handlers {
	return &Handlers{
		store:     projectStore,
		backend:   backend,
		exportDir: exportDir,
		downloads: make(map[string]string),
	}
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// RegisterRoutes 注册 API 路由
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 项目管理
	router.GET("/projects", h.ListProjects)
	router.POST("/projects", h.CreateProject)
	router.GET("/projects/:id", h.GetProject)
	router.PUT("/projects/:id", h.UpdateProject)
	router.DELETE("/projects/:id", h.DeleteProject)

	// 阶段枚举
	router.GET("/stages", h.ListStages)

	// 商业模型实时预览（不落库）
	router.POST("/model/preview", h.PreviewModel)

	// 风险热力图
	router.GET("/projects/:id/risks/heatmap", h.RiskHeatmap)

	// 时间线 CSV 导入导出
	router.GET("/projects/:id/timeline/csv", h.ExportTimelineCSV)
	router.POST("/projects/:id/timeline/csv", h.ImportTimelineCSV)

	// Excel 导出
	router.POST("/projects/:id/export", h.ExportProject)
	router.GET("/export/download/:token", h.DownloadExport)

	// 仪表盘
	router.GET("/dashboard", h.Dashboard)
}

// GetStatus 系统状态
func (h *Handlers) GetStatus(c *gin.Context) {
	success(c, gin.H{
		"version":      Version,
		"backend":      h.backend,
		"projectCount": h.store.Count(),
	})
}

// ==================== Projects ====================

// ListProjects 获取项目列表
func (h *Handlers) ListProjects(c *gin.Context) {
	success(c, h.store.List())
}

// CreateProject 新建项目：草稿合并到默认模板之上
func (h *Handlers) CreateProject(c *gin.Context) {
	var draft model.Project
	if err := c.ShouldBindJSON(&draft); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}

	created, err := h.store.Add(&draft)
	if err != nil {
		errorResponse(c, 5002, "changes not saved: "+err.Error())
		return
	}
	success(c, created)
}

// GetProject 获取单个项目
func (h *Handlers) GetProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.store.Get(id)
	if err != nil {
		errorResponse(c, 4004, "项目不存在")
		return
	}
	success(c, p)
}

// UpdateProject 整体替换更新（保存即触发重算）
func (h *Handlers) UpdateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var p model.Project
	if err := c.ShouldBindJSON(&p); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}
	p.ID = id

	updated, err := h.store.Update(&p)
	if errors.Is(err, store.ErrNotFound) {
		errorResponse(c, 4004, "项目不存在")
		return
	}
	if err != nil {
		// 持久化失败：内存集合未变，提示调用方保留草稿重试
		errorResponse(c, 5002, "changes not saved: "+err.Error())
		return
	}
	success(c, updated)
}

// DeleteProject 删除项目
func (h *Handlers) DeleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.store.Remove(id)
	if errors.Is(err, store.ErrNotFound) {
		errorResponse(c, 4004, "项目不存在")
		return
	}
	if err != nil {
		errorResponse(c, 5002, "changes not saved: "+err.Error())
		return
	}
	success(c, gin.H{"id": id})
}

// ListStages 项目阶段枚举
func (h *Handlers) ListStages(c *gin.Context) {
	success(c, model.Stages)
}

// ==================== Commercial model ====================

// PreviewModel 编辑中的实时重算：规整 + 投影，不写库。
// 自上而下的投影收入与自下而上的客户表收入同时返回，不做对账。
func (h *Handlers) PreviewModel(c *gin.Context) {
	var raw model.CommercialModel
	if err := c.ShouldBindJSON(&raw); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}

	projected := calculator.Project(sanitizer.Sanitize(&raw))
	rows, total := calculator.AccountSummary(projected)

	success(c, gin.H{
		"model":                 projected,
		"accountSummary":        rows,
		"accountSummaryTotal":   total,
		"projectedRevenue":      projected.Projections.Years[0].TotalRevenue,
		"accountSummaryRevenue": total.Revenue,
	})
}

// ==================== Risks ====================

type heatmapRow struct {
	ID          string              `json:"id"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Score       float64             `json:"score"`
	Band        calculator.RiskBand `json:"band"`
}

// RiskHeatmap 风险热力图数据：逐条评分 + 区间
func (h *Handlers) RiskHeatmap(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.store.Get(id)
	if err != nil {
		errorResponse(c, 4004, "项目不存在")
		return
	}

	rows := make([]heatmapRow, 0, len(p.Risks))
	for _, risk := range p.Risks {
		if risk == nil {
			continue
		}
		score := calculator.RiskScore(risk, p.RiskScoringScheme)
		rows = append(rows, heatmapRow{
			ID:          risk.ID,
			Category:    risk.Category,
			Description: risk.Description,
			Score:       score,
			Band:        calculator.RiskBandFor(score, p.RiskScoringScheme),
		})
	}

	success(c, gin.H{
		"scheme": p.RiskScoringScheme,
		"risks":  rows,
	})
}

// ==================== Timeline CSV ====================

// ExportTimelineCSV 导出时间线 CSV
func (h *Handlers) ExportTimelineCSV(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.store.Get(id)
	if err != nil {
		errorResponse(c, 4004, "项目不存在")
		return
	}

	data, err := timeline.ExportCSV(p.Phases)
	if err != nil {
		errorResponse(c, 5003, "导出失败: "+err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="timeline.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ImportTimelineCSV 导入时间线 CSV：整体替换后保存并触发重算
func (h *Handlers) ImportTimelineCSV(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.store.Get(id)
	if err != nil {
		errorResponse(c, 4004, "项目不存在")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "缺少上传文件")
		return
	}
	src, err := file.Open()
	if err != nil {
		errorResponse(c, 1002, "读取上传文件失败")
		return
	}
	defer src.Close()

	phases, err := timeline.ImportCSV(src)
	if err != nil {
		errorResponse(c, 1003, err.Error())
		return
	}

	p.Phases = phases
	updated, err := h.store.Update(p)
	if err != nil {
		errorResponse(c, 5002, "changes not saved: "+err.Error())
		return
	}

	success(c, gin.H{
		"imported": len(phases),
		"project":  updated,
	})
}

// ==================== Excel export ====================

// ExportProject 生成 Excel 并返回下载 token
func (h *Handlers) ExportProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := h.store.Get(id)
	if err != nil {
		errorResponse(c, 4004, "项目不存在")
		return
	}

	path, err := exporter.SaveToDir(p, h.exportDir)
	if err != nil {
		errorResponse(c, 5003, "导出失败: "+err.Error())
		return
	}

	token := uuid.New().String()
	h.downloadsMu.Lock()
	h.downloads[token] = path
	h.downloadsMu.Unlock()

	success(c, gin.H{
		"token":    token,
		"fileName": exporter.ExportFileName(p),
	})
}

// DownloadExport 按 token 下载导出文件
func (h *Handlers) DownloadExport(c *gin.Context) {
	token := c.Param("token")

	h.downloadsMu.RLock()
	path, ok := h.downloads[token]
	h.downloadsMu.RUnlock()
	if !ok {
		errorResponse(c, 4004, "下载不存在或已过期")
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// ==================== Dashboard ====================

type dashboardRow struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Owner            string  `json:"owner"`
	Stage            string  `json:"stage"`
	TotalCost        float64 `json:"totalCost"`
	Year1Revenue     float64 `json:"year1Revenue"`
	HighestRiskScore float64 `json:"highestRiskScore"`
}

// Dashboard 组合视图：逐项目汇总行 + 组合合计。
// 只读已存的汇总字段，不在这里做任何派生计算。
func (h *Handlers) Dashboard(c *gin.Context) {
	projects := h.store.List()

	rows := make([]dashboardRow, 0, len(projects))
	var totalCost, totalRevenue float64
	for _, p := range projects {
		rows = append(rows, dashboardRow{
			ID:               p.ID,
			Name:             p.Name,
			Owner:            p.Owner,
			Stage:            p.Stage,
			TotalCost:        p.TotalCost,
			Year1Revenue:     p.Year1Revenue,
			HighestRiskScore: p.HighestRiskScore,
		})
		totalCost += p.TotalCost
		totalRevenue += p.Year1Revenue
	}

	success(c, gin.H{
		"projects": rows,
		"totals": gin.H{
			"projectCount": len(rows),
			"totalCost":    totalCost,
			"year1Revenue": totalRevenue,
		},
	})
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errorResponse(c, 1001, "无效的项目 id")
		return 0, false
	}
	return id, true
}
