package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"CO-PO-Mapping-Backend/internal/api"
)

// SetupRouter wires every route. Paths are kept flat to stay compatible
// with the existing frontend.
func SetupRouter(authHandler *api.AuthHandler, mappingHandler *api.MappingHandler, examHandler *api.ExamHandler, subjectHandler *api.SubjectHandler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowHeaders = append(config.AllowHeaders, "Content-Type")
	r.Use(cors.New(config))

	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{"welcome"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	r.POST("/register", authHandler.RegisterHandler)
	r.POST("/login", authHandler.LoginHandler)

	r.POST("/course_data", mappingHandler.CourseDataHandler)
	r.POST("/save_co-po_mapping", mappingHandler.SaveMappingHandler)
	r.POST("/get_mapping", mappingHandler.GetMappingHandler)

	r.POST("/save-course-details", subjectHandler.SaveCourseDetailsHandler)
	r.POST("/add-subject", subjectHandler.AddSubjectHandler)
	r.POST("/upload-syllabus", subjectHandler.UploadSyllabusHandler)

	r.POST("/evaluate-exam-paper", examHandler.EvaluateExamPaperHandler)
	r.POST("/upload-exam-paper", examHandler.UploadExamPaperHandler)

	return r
}
