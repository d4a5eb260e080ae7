package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"CO-PO-Mapping-Backend/internal/model"
	"CO-PO-Mapping-Backend/internal/repository"
	"CO-PO-Mapping-Backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUserStore struct {
	users map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (f *fakeUserStore) Insert(_ context.Context, user model.User) (string, error) {
	f.users[user.Username] = user
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type fakeClassifier struct {
	reply string
	err   error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

type fakeMappingStore struct {
	stored []model.COPOMapping
}

func (f *fakeMappingStore) InsertMany(_ context.Context, mappings []model.COPOMapping) ([]string, error) {
	ids := make([]string, 0, len(mappings))
	for _, m := range mappings {
		m.ID = primitive.NewObjectID()
		f.stored = append(f.stored, m)
		ids = append(ids, m.ID.Hex())
	}
	return ids, nil
}

func (f *fakeMappingStore) FindBySubject(_ context.Context, subject string) ([]model.COPOMapping, error) {
	var found []model.COPOMapping
	for _, m := range f.stored {
		if m.Subject == subject {
			found = append(found, m)
		}
	}
	return found, nil
}

type fakeSubjectStore struct {
	details map[string]model.CourseDetails
}

func (f *fakeSubjectStore) Insert(_ context.Context, details model.CourseDetails) (string, error) {
	if f.details == nil {
		f.details = make(map[string]model.CourseDetails)
	}
	f.details[details.Subject] = details
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeSubjectStore) FindBySubject(_ context.Context, subject string) (*model.CourseDetails, error) {
	details, ok := f.details[subject]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &details, nil
}

type fakeExtractor struct {
	questions []model.ExtractedQuestion
	err       error
}

func (f *fakeExtractor) Extract(_ []byte) ([]model.ExtractedQuestion, error) {
	return f.questions, f.err
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response body: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	r := gin.New()
	r.POST("/register", NewAuthHandler(users).RegisterHandler)

	payload := `{"username": "amrita", "institution": "NITK", "password": "secret"}`

	if w := postJSON(r, "/register", payload); w.Code != http.StatusOK {
		t.Fatalf("first register: status %d, body %s", w.Code, w.Body.String())
	}
	if w := postJSON(r, "/register", payload); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: status %d, want 400", w.Code)
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	users := newFakeUserStore()
	r := gin.New()
	r.POST("/register", NewAuthHandler(users).RegisterHandler)

	postJSON(r, "/register", `{"username": "amrita", "institution": "NITK", "password": "secret"}`)

	stored := users.users["amrita"]
	if stored.PasswordHash == "secret" {
		t.Fatal("password stored in the clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	users.users["amrita"] = model.User{Username: "amrita", PasswordHash: string(hash)}

	r := gin.New()
	r.POST("/login", NewAuthHandler(users).LoginHandler)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"unknown user", `{"username": "nobody", "password": "secret"}`, http.StatusNotFound},
		{"wrong password", `{"username": "amrita", "password": "nope"}`, http.StatusUnauthorized},
		{"correct credentials", `{"username": "amrita", "password": "secret"}`, http.StatusOK},
		{"missing fields", `{"username": "amrita"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if w := postJSON(r, "/login", tc.body); w.Code != tc.code {
			t.Errorf("%s: status %d, want %d (body %s)", tc.name, w.Code, tc.code, w.Body.String())
		}
	}
}

func newMappingRouter(ai Classifier, store MappingStore) *gin.Engine {
	h := NewMappingHandler(service.NewPromptBuilder(), ai, service.NewResponseParser(), store)
	r := gin.New()
	r.POST("/course_data", h.CourseDataHandler)
	r.POST("/save_co-po_mapping", h.SaveMappingHandler)
	r.POST("/get_mapping", h.GetMappingHandler)
	return r
}

func TestCourseDataReturnsParsedClassification(t *testing.T) {
	ai := &fakeClassifier{reply: "```json\n[{\"CO_number\": \"CO1\", \"Bloom_Level\": \"Apply\"}]\n```"}
	r := newMappingRouter(ai, &fakeMappingStore{})

	w := postJSON(r, "/course_data", `{"CO_name": "ML", "CO_ID": "CS301", "sem": "6", "subject": "Machine Learning", "CO_data": ["Explain neural networks"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	var parsed []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(parsed) != 1 || parsed[0]["CO_number"] != "CO1" {
		t.Errorf("unexpected classification body: %s", w.Body.String())
	}
}

func TestCourseDataMalformedAIReply(t *testing.T) {
	ai := &fakeClassifier{reply: "I cannot answer that."}
	r := newMappingRouter(ai, &fakeMappingStore{})

	w := postJSON(r, "/course_data", `{"CO_name": "ML", "CO_ID": "CS301", "sem": "6", "subject": "Machine Learning", "CO_data": ["Explain neural networks"]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
	if body := decodeBody(t, w); body["raw_response"] != "I cannot answer that." {
		t.Errorf("raw AI text not attached: %s", w.Body.String())
	}
}

func TestCourseDataValidation(t *testing.T) {
	r := newMappingRouter(&fakeClassifier{}, &fakeMappingStore{})

	if w := postJSON(r, "/course_data", `{"subject": "Machine Learning"}`); w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestSaveMappingEmptyList(t *testing.T) {
	r := newMappingRouter(&fakeClassifier{}, &fakeMappingStore{})

	w := postJSON(r, "/save_co-po_mapping", `[]`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if ids, ok := body["ids"].([]interface{}); !ok || len(ids) != 0 {
		t.Errorf("expected empty id list, got %s", w.Body.String())
	}
}

func TestGetMapping(t *testing.T) {
	store := &fakeMappingStore{}
	r := newMappingRouter(&fakeClassifier{}, store)

	if w := postJSON(r, "/get_mapping", `{"subject": "Machine Learning"}`); w.Code != http.StatusNotFound {
		t.Fatalf("empty store: status %d, want 404", w.Code)
	}

	saved := postJSON(r, "/save_co-po_mapping", `[
		{"subject": "Machine Learning", "CO_number": "CO1", "CO_Objective": "Explain neural networks", "Bloom_Level": "Understand", "Mapped_POs": [{"PO": "PO1", "Justification": "direct", "Rank": 3}]},
		{"subject": "Machine Learning", "CO_number": "CO2", "CO_Objective": "Apply regression", "Bloom_Level": "Apply", "Mapped_POs": []}
	]`)
	if saved.Code != http.StatusOK {
		t.Fatalf("save: status %d, body %s", saved.Code, saved.Body.String())
	}

	w := postJSON(r, "/get_mapping", `{"subject": "Machine Learning"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 2 {
		t.Fatalf("expected 2 mappings, got %s", w.Body.String())
	}
	for _, item := range data {
		record := item.(map[string]interface{})
		id, ok := record["_id"].(string)
		if !ok || len(id) != 24 {
			t.Errorf("generated id not rendered as hex string: %#v", record["_id"])
		}
	}
}

func TestEvaluateExamPaper(t *testing.T) {
	subjects := &fakeSubjectStore{}
	_, _ = subjects.Insert(context.Background(), model.CourseDetails{
		Subject: "Machine Learning",
		COData:  []model.CourseOutcome{{ID: 1, Description: "Explain neural networks"}},
	})

	ai := &fakeClassifier{reply: `[{"question": "What is backpropagation?", "aligned_COs": ["CO1", "PO3", 7], "alignment_strength": "High"}]`}
	h := NewExamHandler(subjects, service.NewPromptBuilder(), ai, service.NewResponseParser(), &fakeExtractor{})
	r := gin.New()
	r.POST("/evaluate-exam-paper", h.EvaluateExamPaperHandler)

	body := `{"subject": "Machine Learning", "questions": [{"text": "What is backpropagation?", "page": 1}]}`
	w := postJSON(r, "/evaluate-exam-paper", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	resp := decodeBody(t, w)
	if resp["subject"] != "Machine Learning" {
		t.Errorf("subject missing from response: %s", w.Body.String())
	}
	analysis := resp["analysis"].([]interface{})
	aligned := analysis[0].(map[string]interface{})["aligned_COs"].([]interface{})
	if len(aligned) != 1 || aligned[0] != "CO1" {
		t.Errorf("aligned_COs not sanitized: %#v", aligned)
	}

	unknown := postJSON(r, "/evaluate-exam-paper", `{"subject": "Quantum Basket Weaving", "questions": [{"text": "Why?", "page": 1}]}`)
	if unknown.Code != http.StatusNotFound {
		t.Errorf("unknown subject: status %d, want 404", unknown.Code)
	}
}

func postFile(r *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	_, _ = fw.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadExamPaper(t *testing.T) {
	extractor := &fakeExtractor{questions: []model.ExtractedQuestion{{Text: "What is X?", Page: 1}}}
	h := NewExamHandler(&fakeSubjectStore{}, service.NewPromptBuilder(), &fakeClassifier{}, service.NewResponseParser(), extractor)
	r := gin.New()
	r.POST("/upload-exam-paper", h.UploadExamPaperHandler)

	if w := postFile(r, "/upload-exam-paper", "paper.txt", []byte("hello")); w.Code != http.StatusBadRequest {
		t.Errorf("non-pdf upload: status %d, want 400", w.Code)
	}

	w := postFile(r, "/upload-exam-paper", "paper.pdf", []byte("%PDF-fake"))
	if w.Code != http.StatusOK {
		t.Fatalf("pdf upload: status %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if questions, ok := body["questions"].([]interface{}); !ok || len(questions) != 1 {
		t.Errorf("expected one extracted question, got %s", w.Body.String())
	}

	extractor.questions = nil
	if w := postFile(r, "/upload-exam-paper", "paper.pdf", []byte("%PDF-fake")); w.Code != http.StatusBadRequest {
		t.Errorf("empty extraction: status %d, want 400", w.Code)
	}
}

func TestSaveCourseDetailsAndAddSubject(t *testing.T) {
	subjects := &fakeSubjectStore{}
	syllabus := &fakeSyllabusStore{}
	h := NewSubjectHandler(subjects, syllabus, t.TempDir())
	r := gin.New()
	r.POST("/save-course-details", h.SaveCourseDetailsHandler)
	r.POST("/add-subject", h.AddSubjectHandler)

	w := postJSON(r, "/save-course-details", `{"subject": "Machine Learning", "CO_data": [{"id": 1, "description": "Explain neural networks"}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("save-course-details: status %d, body %s", w.Code, w.Body.String())
	}
	if _, ok := decodeBody(t, w)["id"].(string); !ok {
		t.Errorf("no id in response: %s", w.Body.String())
	}

	w = postJSON(r, "/add-subject", `{"subject": "Machine Learning", "sem": "6", "content": "Unit 1 ...", "filename": "ml.txt"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add-subject: status %d, body %s", w.Code, w.Body.String())
	}
	if syllabus.last.CreatedAt.IsZero() {
		t.Error("creation timestamp not set")
	}
}

type fakeSyllabusStore struct {
	last model.SyllabusEntry
}

func (f *fakeSyllabusStore) Insert(_ context.Context, entry model.SyllabusEntry) (string, error) {
	f.last = entry
	return primitive.NewObjectID().Hex(), nil
}

func TestUploadSyllabus(t *testing.T) {
	dir := t.TempDir()
	h := NewSubjectHandler(&fakeSubjectStore{}, &fakeSyllabusStore{}, dir)
	r := gin.New()
	r.POST("/upload-syllabus", h.UploadSyllabusHandler)

	w := postFile(r, "/upload-syllabus", "syllabus.docx", []byte("course content"))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	filename, ok := decodeBody(t, w)["filename"].(string)
	if !ok || !strings.HasPrefix(filename, "syllabus_") || !strings.HasSuffix(filename, ".docx") {
		t.Errorf("unexpected generated filename %q", filename)
	}
}
