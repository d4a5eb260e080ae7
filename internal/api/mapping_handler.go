package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"CO-PO-Mapping-Backend/internal/model"
	"CO-PO-Mapping-Backend/internal/service"
)

// MappingHandler serves the CO classification flow: submit a CO batch for
// AI classification, persist the reviewed mappings, query them by subject.
type MappingHandler struct {
	prompts  *service.PromptBuilder
	ai       Classifier
	parser   *service.ResponseParser
	mappings MappingStore
}

func NewMappingHandler(prompts *service.PromptBuilder, ai Classifier, parser *service.ResponseParser, mappings MappingStore) *MappingHandler {
	return &MappingHandler{prompts: prompts, ai: ai, parser: parser, mappings: mappings}
}

// CourseDataHandler classifies a CO batch against Bloom's Taxonomy and the
// POs. The parsed AI structure is returned as-is; persistence is a
// separate explicit call.
func (h *MappingHandler) CourseDataHandler(c *gin.Context) {
	var req model.CourseDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	outcomes := make([]service.LabeledOutcome, len(req.COData))
	for i, description := range req.COData {
		outcomes[i] = service.LabeledOutcome{
			Label:       fmt.Sprintf("CO%d", i+1),
			Description: description,
		}
	}

	prompt := h.prompts.BuildMappingPrompt(outcomes)
	raw, err := h.ai.Classify(c.Request.Context(), prompt)
	if err != nil {
		respondError(c, err, "classifying course outcomes failed")
		return
	}

	parsed, err := h.parser.Parse(raw)
	if err != nil {
		respondError(c, err, "classifying course outcomes failed")
		return
	}

	c.JSON(http.StatusOK, parsed)
}

// SaveMappingHandler bulk-inserts reviewed mapping records. An empty list
// yields an empty id list, not an error.
func (h *MappingHandler) SaveMappingHandler(c *gin.Context) {
	var mappings []model.COPOMapping
	if err := c.ShouldBindJSON(&mappings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	ids, err := h.mappings.InsertMany(c.Request.Context(), mappings)
	if err != nil {
		respondError(c, err, "saving mappings failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

func (h *MappingHandler) GetMappingHandler(c *gin.Context) {
	var req model.GetMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload: " + err.Error()})
		return
	}

	mappings, err := h.mappings.FindBySubject(c.Request.Context(), req.Subject)
	if err != nil {
		respondError(c, err, "querying mappings failed")
		return
	}
	if len(mappings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no mappings found for subject " + req.Subject})
		return
	}

	// Generated ids go out as plain strings, never as ObjectIDs.
	data := make([]gin.H, len(mappings))
	for i, m := range mappings {
		data[i] = gin.H{
			"_id":          m.ID.Hex(),
			"subject":      m.Subject,
			"CO_number":    m.CONumber,
			"CO_Objective": m.COObjective,
			"Bloom_Level":  m.BloomLevel,
			"Mapped_POs":   m.MappedPOs,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
