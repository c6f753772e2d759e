package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store. Setting err makes every call fail.
type fakeStore struct {
	mu         sync.Mutex
	err        error
	resumes    []db.Resume
	interviews map[uuid.UUID]*db.Interview
	responses  map[uuid.UUID][]db.InterviewResponse // keyed by question id
	profiles   map[uuid.UUID]*db.Profile
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		interviews: make(map[uuid.UUID]*db.Interview),
		responses:  make(map[uuid.UUID][]db.InterviewResponse),
		profiles:   make(map[uuid.UUID]*db.Profile),
	}
}

func (f *fakeStore) Dashboard(_ context.Context, userID uuid.UUID) (*db.Dashboard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	var resumes []db.Resume
	for i := len(f.resumes) - 1; i >= 0 && len(resumes) < db.RecentLimit; i-- {
		if f.resumes[i].UserID == userID {
			resumes = append(resumes, f.resumes[i])
		}
	}

	var interviews []db.Interview
	for _, iv := range f.interviews {
		if iv.UserID == userID {
			interviews = append(interviews, *iv)
		}
	}
	sort.Slice(interviews, func(i, j int) bool { return interviews[i].CreatedAt.After(interviews[j].CreatedAt) })
	if len(interviews) > db.RecentLimit {
		interviews = interviews[:db.RecentLimit]
	}
	return db.NewDashboard(resumes, interviews), nil
}

func (f *fakeStore) CreateResume(_ context.Context, userID uuid.UUID, input *db.ResumeInput) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	now := time.Now()
	resume := db.Resume{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          input.Title,
		Content:        db.ResumeContent{Text: input.Text, Analysis: input.Analysis},
		JobDescription: input.JobDescription,
		FileURL:        input.FileURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if input.Analysis != nil {
		score := input.Analysis.ATSScore
		resume.ATSScore = &score
	}
	f.resumes = append(f.resumes, resume)
	return &resume, nil
}

func (f *fakeStore) GetResume(_ context.Context, userID, id uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	for _, r := range f.resumes {
		if r.ID == id && r.UserID == userID {
			copied := r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateInterview(_ context.Context, userID uuid.UUID, req *types.QuestionRequest, questions []types.GeneratedQuestion) (*db.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	now := time.Now()
	interview := &db.Interview{
		ID:              uuid.New(),
		UserID:          userID,
		Role:            req.Role,
		Industry:        req.Industry,
		ExperienceLevel: req.ExperienceLevel,
		JobDescription:  req.JobDescription,
		Status:          db.InterviewStatusInProgress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i, q := range questions {
		interview.Questions = append(interview.Questions, db.InterviewQuestion{
			ID:            uuid.New(),
			InterviewID:   interview.ID,
			QuestionText:  q.Text,
			QuestionOrder: i + 1,
			Category:      string(q.Category),
			CreatedAt:     now,
		})
	}
	f.interviews[interview.ID] = interview
	copied := *interview
	return &copied, nil
}

func (f *fakeStore) GetInterview(_ context.Context, userID, id uuid.UUID) (*db.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	iv, ok := f.interviews[id]
	if !ok || iv.UserID != userID {
		return nil, nil
	}
	copied := *iv
	return &copied, nil
}

func (f *fakeStore) GetQuestion(_ context.Context, interviewID, questionID uuid.UUID) (*db.InterviewQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	iv, ok := f.interviews[interviewID]
	if !ok {
		return nil, nil
	}
	for _, q := range iv.Questions {
		if q.ID == questionID {
			found := q
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateResponse(_ context.Context, questionID uuid.UUID, responseText string, analysis *types.ResponseAnalysis) (*db.InterviewResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	response := db.InterviewResponse{
		ID:           uuid.New(),
		QuestionID:   questionID,
		ResponseText: responseText,
		AIFeedback:   analysis,
		CreatedAt:    time.Now(),
	}
	if analysis != nil {
		score := analysis.Score
		response.Score = &score
	}
	f.responses[questionID] = append(f.responses[questionID], response)
	return &response, nil
}

func (f *fakeStore) CompleteInterview(_ context.Context, userID, id uuid.UUID) (*db.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	iv, ok := f.interviews[id]
	if !ok || iv.UserID != userID {
		return nil, nil
	}

	sum, n := 0, 0
	for _, q := range iv.Questions {
		for _, resp := range f.responses[q.ID] {
			if resp.Score != nil {
				sum += *resp.Score
				n++
			}
		}
	}
	iv.Status = db.InterviewStatusCompleted
	if n > 0 {
		avg := (2*sum + n) / (2 * n)
		iv.OverallScore = &avg
	}
	copied := *iv
	copied.Questions = nil
	return &copied, nil
}

func (f *fakeStore) GetProfile(_ context.Context, userID uuid.UUID) (*db.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) UpsertProfile(_ context.Context, userID uuid.UUID, input *db.ProfileInput) (*db.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	now := time.Now()
	p, ok := f.profiles[userID]
	if !ok {
		p = &db.Profile{ID: userID, CreatedAt: now}
		f.profiles[userID] = p
	}
	p.FullName = input.FullName
	p.AvatarURL = input.AvatarURL
	p.ProfessionalTitle = input.ProfessionalTitle
	p.TargetIndustry = input.TargetIndustry
	p.YearsOfExperience = input.YearsOfExperience
	p.UpdatedAt = now
	copied := *p
	return &copied, nil
}

// storeFixture is a server backed by a fakeStore plus a valid token for one user.
type storeFixture struct {
	server *Server
	store  *fakeStore
	userID uuid.UUID
	token  string
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	store := newFakeStore()
	s := newTestServer(t, store, nil)

	userID := uuid.New()
	return &storeFixture{server: s, store: store, userID: userID, token: mintToken(t, userID)}
}

func mintToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	svc := NewJWTService(&config.JWTConfig{Secret: testJWTSecret, Audience: "authenticated"})
	token, err := svc.GenerateToken(userID, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *storeFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return doJSON(t, f.server.Handler(), method, path, body, f.token).Result()
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (f *storeFixture) createInterview(t *testing.T) db.Interview {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/interviews", map[string]string{
		"role":            "Software Engineer",
		"industry":        "tech",
		"experienceLevel": "entry",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var interview db.Interview
	decodeBody(t, resp, &interview)
	return interview
}

func TestStoreRoutes_RequireAuth(t *testing.T) {
	f := newStoreFixture(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/dashboard"},
		{http.MethodPost, "/resumes"},
		{http.MethodGet, "/resumes/" + uuid.NewString()},
		{http.MethodPost, "/interviews"},
		{http.MethodGet, "/interviews/" + uuid.NewString()},
		{http.MethodPost, "/interviews/" + uuid.NewString() + "/responses"},
		{http.MethodPost, "/interviews/" + uuid.NewString() + "/complete"},
		{http.MethodGet, "/profile"},
		{http.MethodPut, "/profile"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := doJSON(t, f.server.Handler(), rt.method, rt.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Unauthorized", decodeError(t, w))
		})
	}

	t.Run("bad token", func(t *testing.T) {
		w := doJSON(t, f.server.Handler(), http.MethodGet, "/dashboard", nil, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandleDashboard_Empty(t *testing.T) {
	f := newStoreFixture(t)

	w := doJSON(t, f.server.Handler(), http.MethodGet, "/dashboard", nil, f.token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"resumes":[],"interviews":[],"stats":{"totalResumes":0,"totalInterviews":0,"avgScore":0}}`, w.Body.String())
}

func TestHandleCreateResume(t *testing.T) {
	f := newStoreFixture(t)

	resp := f.do(t, http.MethodPost, "/resumes", map[string]string{
		"title":          "Backend resume",
		"content":        "Experience\nBuilt Go services on Kubernetes.\nSkills: Go, Kubernetes",
		"jobDescription": "Kubernetes engineer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var resume db.Resume
	decodeBody(t, resp, &resume)
	assert.Equal(t, f.userID, resume.UserID)
	assert.Equal(t, "Backend resume", resume.Title)
	require.NotNil(t, resume.Content.Analysis)
	require.NotNil(t, resume.ATSScore)
	assert.Equal(t, resume.Content.Analysis.ATSScore, *resume.ATSScore)

	// The saved resume shows up on the dashboard
	w := doJSON(t, f.server.Handler(), http.MethodGet, "/dashboard", nil, f.token)
	var dashboard db.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, 1, dashboard.Stats.TotalResumes)
	assert.Equal(t, *resume.ATSScore, dashboard.Stats.AvgScore)
}

func TestHandleGetResume(t *testing.T) {
	f := newStoreFixture(t)

	resp := f.do(t, http.MethodPost, "/resumes", map[string]string{
		"title":   "Platform resume",
		"content": "Skills: Go, Terraform",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created db.Resume
	decodeBody(t, resp, &created)

	resp = f.do(t, http.MethodGet, "/resumes/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got db.Resume
	decodeBody(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Skills: Go, Terraform", got.Content.Text)
	require.NotNil(t, got.Content.Analysis)

	tests := []struct {
		name    string
		path    string
		token   string
		status  int
		message string
	}{
		{"other user", "/resumes/" + created.ID.String(), mintToken(t, uuid.New()), http.StatusNotFound, "Resume not found"},
		{"unknown id", "/resumes/" + uuid.NewString(), f.token, http.StatusNotFound, "Resume not found"},
		{"bad id", "/resumes/nope", f.token, http.StatusBadRequest, "Invalid ID format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, f.server.Handler(), http.MethodGet, tt.path, nil, tt.token)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
		})
	}
}

func TestHandleCreateResume_Invalid(t *testing.T) {
	f := newStoreFixture(t)

	tests := []struct {
		name    string
		body    any
		wantMsg string
	}{
		{"malformed", "{", "Invalid JSON body"},
		{"missing title", map[string]string{"content": "text"}, "Title and resume content are required"},
		{"bad file url", map[string]string{"title": "t", "content": "c", "fileUrl": "not a url"}, "Title and resume content are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, f.server.Handler(), http.MethodPost, "/resumes", tt.body, f.token)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, w))
		})
	}
	assert.Empty(t, f.store.resumes)
}

func TestHandleCreateInterview(t *testing.T) {
	f := newStoreFixture(t)

	interview := f.createInterview(t)

	assert.Equal(t, db.InterviewStatusInProgress, interview.Status)
	assert.Nil(t, interview.OverallScore)
	require.Len(t, interview.Questions, 9)
	for i, q := range interview.Questions {
		assert.Equal(t, i+1, q.QuestionOrder)
		assert.NotEmpty(t, q.QuestionText)
	}

	// Another user cannot read it
	other := mintToken(t, uuid.New())
	w := doJSON(t, f.server.Handler(), http.MethodGet, "/interviews/"+interview.ID.String(), nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, f.server.Handler(), http.MethodGet, "/interviews/"+interview.ID.String(), nil, f.token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleCreateInterview_Invalid(t *testing.T) {
	f := newStoreFixture(t)

	w := doJSON(t, f.server.Handler(), http.MethodPost, "/interviews", map[string]string{"role": "Engineer"}, f.token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Role, industry, and experience level are required", decodeError(t, w))
}

func TestHandleGetInterview_BadID(t *testing.T) {
	f := newStoreFixture(t)

	w := doJSON(t, f.server.Handler(), http.MethodGet, "/interviews/not-a-uuid", nil, f.token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid ID format", decodeError(t, w))
}

func TestHandleCreateResponse(t *testing.T) {
	f := newStoreFixture(t)
	interview := f.createInterview(t)
	question := interview.Questions[0]
	path := "/interviews/" + interview.ID.String() + "/responses"

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(t, f.server.Handler(), http.MethodPost, path, map[string]string{"questionId": question.ID.String()}, f.token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Question ID and response text are required", decodeError(t, w))
	})

	t.Run("unknown interview", func(t *testing.T) {
		w := doJSON(t, f.server.Handler(), http.MethodPost, "/interviews/"+uuid.NewString()+"/responses", map[string]string{
			"questionId":   question.ID.String(),
			"responseText": "An answer",
		}, f.token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Interview not found", decodeError(t, w))
	})

	t.Run("unknown question", func(t *testing.T) {
		w := doJSON(t, f.server.Handler(), http.MethodPost, path, map[string]string{
			"questionId":   uuid.NewString(),
			"responseText": "An answer",
		}, f.token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Question not found", decodeError(t, w))
	})

	t.Run("scored and saved", func(t *testing.T) {
		resp := f.do(t, http.MethodPost, path, map[string]string{
			"questionId":   question.ID.String(),
			"responseText": "I reduced build times by 30% by caching dependencies.",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var saved db.InterviewResponse
		decodeBody(t, resp, &saved)
		assert.Equal(t, question.ID, saved.QuestionID)
		require.NotNil(t, saved.Score)
		require.NotNil(t, saved.AIFeedback)
		assert.Equal(t, saved.AIFeedback.Score, *saved.Score)
	})
}

func TestHandleCompleteInterview(t *testing.T) {
	f := newStoreFixture(t)
	interview := f.createInterview(t)
	base := "/interviews/" + interview.ID.String()

	for _, q := range interview.Questions[:2] {
		resp := f.do(t, http.MethodPost, base+"/responses", map[string]string{
			"questionId":   q.ID.String(),
			"responseText": "I led the team through a migration and cut costs by 20%.",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := f.do(t, http.MethodPost, base+"/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var completed db.Interview
	decodeBody(t, resp, &completed)
	assert.Equal(t, db.InterviewStatusCompleted, completed.Status)
	require.NotNil(t, completed.OverallScore)
	assert.GreaterOrEqual(t, *completed.OverallScore, 40)
	assert.LessOrEqual(t, *completed.OverallScore, 100)

	// A completed interview takes no more answers
	w := doJSON(t, f.server.Handler(), http.MethodPost, base+"/responses", map[string]string{
		"questionId":   interview.Questions[2].ID.String(),
		"responseText": "Late answer",
	}, f.token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Interview is already completed", decodeError(t, w))

	w = doJSON(t, f.server.Handler(), http.MethodPost, "/interviews/"+uuid.NewString()+"/complete", nil, f.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleProfile(t *testing.T) {
	f := newStoreFixture(t)

	w := doJSON(t, f.server.Handler(), http.MethodGet, "/profile", nil, f.token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Profile not found", decodeError(t, w))

	years := 5
	resp := f.do(t, http.MethodPut, "/profile", types.ProfileRequest{
		FullName:          "Ada Lovelace",
		ProfessionalTitle: "Engineer",
		TargetIndustry:    "tech",
		YearsOfExperience: &years,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile db.Profile
	decodeBody(t, resp, &profile)
	assert.Equal(t, f.userID, profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.FullName)
	require.NotNil(t, profile.YearsOfExperience)
	assert.Equal(t, 5, *profile.YearsOfExperience)
}

func TestHandleUpdateProfile_Invalid(t *testing.T) {
	f := newStoreFixture(t)

	years := -1
	w := doJSON(t, f.server.Handler(), http.MethodPut, "/profile", types.ProfileRequest{YearsOfExperience: &years}, f.token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid profile fields", decodeError(t, w))
}

func TestStoreFailure(t *testing.T) {
	f := newStoreFixture(t)
	f.store.err = errors.New("connection refused")

	w := doJSON(t, f.server.Handler(), http.MethodGet, "/dashboard", nil, f.token)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to save data", decodeError(t, w))
}
