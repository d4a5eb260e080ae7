package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"CO-PO-Mapping-Backend/internal/model"
	"CO-PO-Mapping-Backend/internal/service"
)

// ExamHandler serves the exam paper workflow: extract questions from an
// uploaded PDF, then align them against the subject's stored COs.
type ExamHandler struct {
	subjects  SubjectStore
	prompts   *service.PromptBuilder
	ai        Classifier
	parser    *service.ResponseParser
	extractor Extractor
}

func NewExamHandler(subjects SubjectStore, prompts *service.PromptBuilder, ai Classifier, parser *service.ResponseParser, extractor Extractor) *ExamHandler {
	return &ExamHandler{subjects: subjects, prompts: prompts, ai: ai, parser: parser, extractor: extractor}
}

func (h *ExamHandler) EvaluateExamPaperHandler(c *gin.Context) {
	var req model.EvaluateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	details, err := h.subjects.FindBySubject(c.Request.Context(), req.Subject)
	if err != nil {
		respondError(c, err, "evaluating exam paper failed")
		return
	}

	prompt := h.prompts.BuildAlignmentPrompt(details.COData, req.Questions)
	raw, err := h.ai.Classify(c.Request.Context(), prompt)
	if err != nil {
		respondError(c, err, "evaluating exam paper failed")
		return
	}

	parsed, err := h.parser.Parse(raw)
	if err != nil {
		respondError(c, err, "evaluating exam paper failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"subject":  req.Subject,
		"analysis": service.SanitizeAlignments(parsed),
	})
}

// UploadExamPaperHandler accepts a PDF and returns the questions found in
// it. The file type check is by extension only, not content sniffing.
func (h *ExamHandler) UploadExamPaperHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided: " + err.Error()})
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are supported"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "reading uploaded file failed")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err, "reading uploaded file failed")
		return
	}

	questions, err := h.extractor.Extract(data)
	if err != nil {
		respondError(c, err, "extracting questions failed")
		return
	}
	if len(questions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no questions found in the uploaded paper"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   fmt.Sprintf("extracted %d questions", len(questions)),
		"questions": questions,
	})
}
