package handler

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Uncanny01/UchihaAi-Hackathon/middleware"
	"github.com/Uncanny01/UchihaAi-Hackathon/model"
	"github.com/Uncanny01/UchihaAi-Hackathon/pkg/logger"
	"github.com/Uncanny01/UchihaAi-Hackathon/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The handler depends on the narrow contracts of its collaborators rather
// than the concrete services, so each stage can be substituted in tests.
type (
	// Intake decodes uploaded bytes into raster pages.
	Intake interface {
		Pages(data []byte, mediaType string) ([]image.Image, error)
	}

	// StandardExtractor is the local recognition path.
	StandardExtractor interface {
		ExtractStandard(ctx context.Context, pages []image.Image) string
	}

	// VisionExtractor is the remote transcription path.
	VisionExtractor interface {
		ExtractVision(ctx context.Context, pages []image.Image, primary model.Provider) string
	}

	// Router makes the OCR-versus-vision routing decision.
	Router interface {
		Classify(ctx context.Context, img image.Image) string
	}

	// Categorizer labels extracted text for report naming.
	Categorizer interface {
		Categorize(ctx context.Context, text string, primary model.Provider) string
	}

	// Summarizer answers a summary preset or free-form instruction and
	// reports whether the primary provider failed.
	Summarizer interface {
		Respond(ctx context.Context, text, instruction string, primary model.Provider, language string) (string, bool)
	}
)

type DocumentHandler struct {
	intake     Intake
	ocr        StandardExtractor
	vision     VisionExtractor
	router     Router
	categorize Categorizer
	summarize  Summarizer
	report     *service.ReportService
	store      *service.DocumentStore
}

func NewDocumentHandler(
	intake Intake,
	ocr StandardExtractor,
	vision VisionExtractor,
	router Router,
	categorize Categorizer,
	summarize Summarizer,
	report *service.ReportService,
) *DocumentHandler {
	return &DocumentHandler{
		intake:     intake,
		ocr:        ocr,
		vision:     vision,
		router:     router,
		categorize: categorize,
		summarize:  summarize,
		report:     report,
		store:      service.GetDocumentStore(),
	}
}

// Upload handles document file upload
func (h *DocumentHandler) Upload(c *gin.Context) {
	owner := middleware.GetUsername(c)

	// Get file from form
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	// Validate file type - images and PDF allowed
	ext := strings.ToLower(filepath.Ext(header.Filename))
	mediaType, ok := mediaTypeForExt(ext)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PNG, JPG, JPEG and PDF files are allowed"})
		return
	}

	// Read the whole payload into memory; documents are transient and never
	// written to disk
	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	if len(content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty file"})
		return
	}

	// Cross-check the declared type against the payload
	detectedType := http.DetectContentType(content[:min(len(content), 512)])
	if ext == ".pdf" && !strings.Contains(detectedType, "pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	}

	documentID := uuid.New().String()

	doc := &model.Document{
		ID:        documentID,
		Filename:  header.Filename,
		MediaType: mediaType,
		Owner:     owner,
		Status:    model.StatusUploaded,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	h.store.Save(doc)

	logger.Info(c.Request.Context(), "document uploaded",
		"document_id", documentID,
		"filename", header.Filename,
		"media_type", mediaType,
		"size", len(content),
	)

	c.JSON(http.StatusOK, gin.H{
		"id":         documentID,
		"filename":   header.Filename,
		"media_type": mediaType,
		"status":     model.StatusUploaded,
	})
}

// ProcessRequest selects the extraction strategy for one process action.
type ProcessRequest struct {
	// Auto enables autonomous routing: a classification call picks the
	// extraction path. When false, Mode picks it directly.
	Auto    bool   `json:"auto"`
	Mode    string `json:"mode"`
	Primary string `json:"primary"`
}

// Process runs the extraction pipeline synchronously: routing decision,
// extraction via the chosen path, then categorization. A new run replaces
// all prior extraction state for the document.
func (h *DocumentHandler) Process(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	primary := model.ParseProvider(req.Primary)

	ctx := context.WithValue(c.Request.Context(), logger.DocumentIDKey, doc.ID)
	h.store.UpdateStatus(doc.ID, model.StatusProcessing, "")

	extracted, decision := h.extract(ctx, doc, req, primary)

	// Categorization runs on whatever text extraction produced, including
	// degraded error text; the label only affects the report filename.
	category := model.DefaultCategory
	if extracted != "" {
		category = h.categorize.Categorize(ctx, extracted, primary)
	}

	h.store.UpdateExtraction(doc.ID, extracted, decision, category)
	logger.Info(ctx, "document processed", "decision", string(decision), "category", category)

	c.JSON(http.StatusOK, gin.H{
		"id":             doc.ID,
		"status":         model.StatusProcessed,
		"scan_decision":  decision,
		"category":       category,
		"extracted_text": extracted,
	})
}

// extract performs the one-shot path selection and runs the selected path.
// The selection is made once per process action and not re-evaluated.
func (h *DocumentHandler) extract(ctx context.Context, doc *model.Document, req ProcessRequest, primary model.Provider) (string, model.ScanMode) {
	pages, err := h.intake.Pages(doc.Content, doc.MediaType)
	if err != nil {
		// Degraded but visible: the decode error becomes the "text"
		logger.Warn(ctx, "document intake failed", "error", err)
		return fmt.Sprintf("Decode Error: %v", err), model.ParseScanMode(req.Mode)
	}

	decision := model.ParseScanMode(req.Mode)
	if req.Auto {
		decision = model.ScanStandard
		if h.router.Classify(ctx, pages[0]) == service.DecisionVision {
			decision = model.ScanVision
		}
		logger.Info(ctx, "autonomous routing decision", "decision", string(decision))
	}

	if decision == model.ScanVision {
		return h.vision.ExtractVision(ctx, pages, primary), decision
	}
	return h.ocr.ExtractStandard(ctx, pages), decision
}

// RespondRequest asks for a summary or a free-form instruction response over
// the extracted text.
type RespondRequest struct {
	// Instruction is a preset style name or arbitrary user text; the two
	// are the same call shape.
	Instruction string `json:"instruction" binding:"required"`
	Language    string `json:"language"`
	Primary     string `json:"primary"`
}

// Respond produces the summary/instruction result for a processed document.
func (h *DocumentHandler) Respond(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if doc.ExtractedText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document has no extracted text; process it first"})
		return
	}

	primary := model.ParseProvider(req.Primary)
	language := model.ParseLanguage(req.Language)
	ctx := context.WithValue(c.Request.Context(), logger.DocumentIDKey, doc.ID)

	// The failover flag must be reset before each request; it is not
	// auto-cleared on success.
	h.store.ResetFailover(doc.ID)

	summary, primaryFailed := h.summarize.Respond(ctx, doc.ExtractedText, req.Instruction, primary, language)
	h.store.UpdateSummary(doc.ID, summary, primaryFailed)

	c.JSON(http.StatusOK, gin.H{
		"id":              doc.ID,
		"summary":         summary,
		"language":        language,
		"failover_active": primaryFailed,
	})
}

// Report renders the current summary as a downloadable PDF
func (h *DocumentHandler) Report(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}
	if doc.Summary == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document has no summary to report"})
		return
	}

	buf, err := h.report.Render(doc.Summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report: " + err.Error()})
		return
	}

	filename := service.ReportFilename(doc.Category)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// List returns all documents for the current user
func (h *DocumentHandler) List(c *gin.Context) {
	owner := middleware.GetUsername(c)
	documents := h.store.GetByOwner(owner)

	// Return without extracted text/summary for list view
	result := make([]gin.H, len(documents))
	for i, doc := range documents {
		result[i] = gin.H{
			"id":         doc.ID,
			"filename":   doc.Filename,
			"media_type": doc.MediaType,
			"status":     doc.Status,
			"category":   doc.Category,
			"created_at": doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at": doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"documents": result})
}

// Get returns a single document with extracted text and summary
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete discards a document and everything derived from it
func (h *DocumentHandler) Delete(c *gin.Context) {
	doc, ok := h.ownedDocument(c)
	if !ok {
		return
	}

	h.store.Delete(doc.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// ownedDocument resolves the :id parameter to a document owned by the
// current user, writing the error response itself when that fails.
func (h *DocumentHandler) ownedDocument(c *gin.Context) (*model.Document, bool) {
	owner := middleware.GetUsername(c)
	id := c.Param("id")

	doc := h.store.Get(id)
	if doc == nil || doc.Owner != owner {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return nil, false
	}
	return doc, true
}

func mediaTypeForExt(ext string) (string, bool) {
	switch ext {
	case ".png":
		return "image/png", true
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".pdf":
		return "application/pdf", true
	default:
		return "", false
	}
}
