package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"CO-PO-Mapping-Backend/internal/model"
)

// SubjectHandler serves subject management: the CO catalogue, text-based
// syllabus entries and raw syllabus file uploads.
type SubjectHandler struct {
	subjects  SubjectStore
	syllabus  SyllabusStore
	uploadDir string
}

func NewSubjectHandler(subjects SubjectStore, syllabus SyllabusStore, uploadDir string) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, syllabus: syllabus, uploadDir: uploadDir}
}

func (h *SubjectHandler) SaveCourseDetailsHandler(c *gin.Context) {
	var req model.CourseDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	id, err := h.subjects.Insert(c.Request.Context(), model.CourseDetails{
		Subject: req.Subject,
		COName:  req.COName,
		COID:    req.COID,
		Sem:     req.Sem,
		COData:  req.COData,
	})
	if err != nil {
		respondError(c, err, "saving course details failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "course details saved", "id": id})
}

func (h *SubjectHandler) AddSubjectHandler(c *gin.Context) {
	var req model.AddSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	id, err := h.syllabus.Insert(c.Request.Context(), model.SyllabusEntry{
		Subject:   req.Subject,
		Sem:       req.Sem,
		Content:   req.Content,
		Filename:  req.Filename,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		respondError(c, err, "adding subject failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "subject added", "id": id})
}

// UploadSyllabusHandler writes the uploaded file under the upload
// directory with a timestamp-based name. No type or size validation.
func (h *SubjectHandler) UploadSyllabusHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided: " + err.Error()})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(c, err, "saving syllabus file failed")
		return
	}

	filename := fmt.Sprintf("syllabus_%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(h.uploadDir, filename)); err != nil {
		respondError(c, err, "saving syllabus file failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"filename": filename,
		"message":  "syllabus uploaded",
	})
}
