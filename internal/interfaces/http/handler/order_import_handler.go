package handler

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	importapp "github.com/import1688/backend/internal/application/import"
	"github.com/import1688/backend/internal/domain/bulk"
	"github.com/import1688/backend/internal/domain/trade"
)

// OrderImporter is the application service surface the handler needs
type OrderImporter interface {
	Import(ctx context.Context, fileName string, data []byte, policy importapp.ResolverPolicy) (*importapp.ImportResult, error)
	ImportBase64(ctx context.Context, fileName, encoded string, policy importapp.ResolverPolicy) (*importapp.ImportResult, error)
	GetRun(ctx context.Context, id uuid.UUID) (*bulk.ImportRun, error)
	ListRuns(ctx context.Context, page, pageSize int) (*bulk.ImportRunListResult, error)
	ListImportedOrders(ctx context.Context, page, pageSize int) (*trade.PurchaseOrderListResult, error)
}

// OrderImportHandler exposes the 1688 order import over HTTP
type OrderImportHandler struct {
	BaseHandler
	importer      OrderImporter
	maxUploadSize int64
}

// NewOrderImportHandler creates a new OrderImportHandler
func NewOrderImportHandler(importer OrderImporter, maxUploadSize int64) *OrderImportHandler {
	return &OrderImportHandler{importer: importer, maxUploadSize: maxUploadSize}
}

// RegisterRoutes mounts the import endpoints on the given group
func (h *OrderImportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import/1688-orders", h.Import)
	rg.GET("/import/runs", h.ListRuns)
	rg.GET("/import/runs/:id", h.GetRun)
	rg.GET("/import/orders", h.ListOrders)
}

// base64ImportRequest is the JSON body variant of the import endpoint
type base64ImportRequest struct {
	FileName string `json:"file_name"`
	Content  string `json:"content" binding:"required"`
	Policy   string `json:"policy" binding:"omitempty,oneof=strict legacy"`
}

// Import accepts an order spreadsheet as a multipart upload (field
// "file", optional form field "policy") or as a JSON body with a base64
// "content" field, runs the import, and returns the result with the
// generated summary.
func (h *OrderImportHandler) Import(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		h.importFromJSON(c)
		return
	}
	h.importFromMultipart(c)
}

func (h *OrderImportHandler) importFromMultipart(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing uploaded file (multipart field \"file\")")
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		h.PayloadTooLarge(c, fmt.Sprintf("File exceeds the %d byte upload limit", h.maxUploadSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Could not open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Could not read uploaded file")
		return
	}

	policy := importapp.ResolverPolicy(c.PostForm("policy"))
	if policy != "" && !policy.IsValid() {
		h.BadRequest(c, fmt.Sprintf("Unknown resolver policy %q", policy))
		return
	}

	result, err := h.importer.Import(c.Request.Context(), fileHeader.Filename, data, policy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *OrderImportHandler) importFromJSON(c *gin.Context) {
	var req base64ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if h.maxUploadSize > 0 && int64(len(req.Content)) > h.maxUploadSize*4/3 {
		h.PayloadTooLarge(c, fmt.Sprintf("File exceeds the %d byte upload limit", h.maxUploadSize))
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "upload.xlsx"
	}

	result, err := h.importer.ImportBase64(c.Request.Context(), fileName, req.Content, importapp.ResolverPolicy(req.Policy))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetRun returns one import run with its stored summary and outcomes
func (h *OrderImportHandler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid run id")
		return
	}

	run, err := h.importer.GetRun(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, run)
}

// ListRuns returns import runs, newest first
func (h *OrderImportHandler) ListRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := h.importer.ListRuns(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.TotalCount, result.Page, result.PageSize)
}

// ListOrders returns the purchase orders created by imports, newest first
func (h *OrderImportHandler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := h.importer.ListImportedOrders(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.TotalCount, result.Page, result.PageSize)
}
