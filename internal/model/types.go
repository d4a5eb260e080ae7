package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseDataRequest is the CO batch an instructor submits for AI
// classification. CO_data holds one description string per outcome.
type CourseDataRequest struct {
	COName  string   `json:"CO_name" binding:"required"`
	COID    string   `json:"CO_ID" binding:"required"`
	Sem     string   `json:"sem" binding:"required"`
	Subject string   `json:"subject" binding:"required"`
	COData  []string `json:"CO_data" binding:"required,min=1"`
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Institution string `json:"institution" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type GetMappingRequest struct {
	Subject string `json:"subject" binding:"required"`
}

// CourseOutcome is one {id, description} entry of a CO catalogue.
type CourseOutcome struct {
	ID          int    `json:"id" bson:"id"`
	Description string `json:"description" bson:"description" binding:"required"`
}

type CourseDetailsRequest struct {
	Subject string          `json:"subject" binding:"required"`
	COName  string          `json:"CO_name"`
	COID    string          `json:"CO_ID"`
	Sem     string          `json:"sem"`
	COData  []CourseOutcome `json:"CO_data" binding:"required,min=1,dive"`
}

type AddSubjectRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Sem      string `json:"sem" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Filename string `json:"filename" binding:"required"`
}

type EvaluateExamRequest struct {
	Subject   string              `json:"subject" binding:"required"`
	Questions []ExtractedQuestion `json:"questions" binding:"required,min=1,dive"`
}

// User is a registered instructor account. The password field holds a
// bcrypt hash, never the clear text.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username     string             `bson:"username" json:"username"`
	Institution  string             `bson:"institution" json:"institution"`
	PasswordHash string             `bson:"password" json:"-"`
}

// CourseDetails is the persisted CO catalogue for one subject. Exam
// evaluation reads it back to recover the CO descriptions.
type CourseDetails struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Subject string             `bson:"subject" json:"subject"`
	COName  string             `bson:"CO_name" json:"CO_name"`
	COID    string             `bson:"CO_ID" json:"CO_ID"`
	Sem     string             `bson:"sem" json:"sem"`
	COData  []CourseOutcome    `bson:"CO_data" json:"CO_data"`
}

// SyllabusEntry is a text-based syllabus stored via /add-subject.
type SyllabusEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Subject   string             `bson:"subject" json:"subject"`
	Sem       string             `bson:"sem" json:"sem"`
	Content   string             `bson:"content" json:"content"`
	Filename  string             `bson:"filename" json:"filename"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// MappedPO is a single PO assignment inside a reviewed CO-PO mapping.
// Rank is 1 (low), 2 (medium) or 3 (high).
type MappedPO struct {
	PO            string `bson:"PO" json:"PO" binding:"required"`
	Justification string `bson:"Justification" json:"Justification"`
	Rank          int    `bson:"Rank" json:"Rank" binding:"required,min=1,max=3"`
}

// COPOMapping is one reviewed, accepted CO-PO mapping record.
type COPOMapping struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Subject     string             `bson:"subject" json:"subject"`
	CONumber    string             `bson:"CO_number" json:"CO_number" binding:"required"`
	COObjective string             `bson:"CO_Objective" json:"CO_Objective" binding:"required"`
	BloomLevel  string             `bson:"Bloom_Level" json:"Bloom_Level" binding:"required"`
	MappedPOs   []MappedPO         `bson:"Mapped_POs" json:"Mapped_POs" binding:"dive"`
}

// ExtractedQuestion is one question pulled out of an uploaded exam paper.
// It is never persisted; the evaluation route consumes it immediately.
type ExtractedQuestion struct {
	Text string `json:"text" binding:"required"`
	Page int    `json:"page"`
}
