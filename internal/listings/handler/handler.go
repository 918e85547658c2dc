package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/statewisejobs/statewise-jobs/internal/listings"
	"github.com/statewisejobs/statewise-jobs/internal/listings/repository"
	"github.com/statewisejobs/statewise-jobs/internal/listings/service"
	"github.com/statewisejobs/statewise-jobs/pkg/logger"
)

// Handler serves the public listing pages and the admin CRUD console.
// Every mutation route is registered behind the admin guard passed to
// Register; the guard is the only authorization gate.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts all listing routes. adminGuard must be the role=admin
// access guard middleware.
func (h *Handler) Register(r *gin.Engine, adminGuard gin.HandlerFunc) {
	// public read surface
	r.GET("/api/jobs", h.ListJobs)
	r.GET("/api/jobs/state-counts", h.StateCounts)
	r.GET("/api/exam-calendar", h.ListExams)
	r.GET("/api/footer", h.GetFooter)
	r.POST("/api/contact", h.CreateContact)

	// admin console
	admin := r.Group("/api/admin", adminGuard)
	admin.GET("/jobs", h.ListJobs)
	admin.POST("/jobs", h.CreateJob)
	admin.PUT("/jobs/:id", h.UpdateJob)
	admin.DELETE("/jobs/:id", h.DeleteJob)
	admin.GET("/analytics", h.Analytics)
	admin.GET("/contacts", h.ListContacts)

	// exam-calendar mutations keep their public paths but sit behind the guard
	r.POST("/api/exam-calendar", adminGuard, h.CreateExam)
	r.PUT("/api/exam-calendar/:id", adminGuard, h.UpdateExam)
	r.DELETE("/api/exam-calendar/:id", adminGuard, h.DeleteExam)

	r.POST("/api/footer", adminGuard, h.CreateFooter)
	r.PUT("/api/footer/:id", adminGuard, h.UpdateFooter)

	// link listings: results, admit cards, answer keys, syllabus
	for _, res := range []struct {
		path string
		repo func() repository.DownloadRepository
	}{
		{"/api/results", func() repository.DownloadRepository { return h.svc.Results }},
		{"/api/admit-cards", func() repository.DownloadRepository { return h.svc.AdmitCards }},
		{"/api/answer-keys", func() repository.DownloadRepository { return h.svc.AnswerKeys }},
		{"/api/syllabus", func() repository.DownloadRepository { return h.svc.Syllabus }},
	} {
		repo := res.repo()
		r.GET(res.path, h.listDownloads(repo))
		r.POST(res.path, adminGuard, h.createDownload(repo))
		r.PUT(res.path+"/:id", adminGuard, h.updateDownload(repo))
		r.DELETE(res.path+"/:id", adminGuard, h.deleteDownload(repo))
	}
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func queryFromRequest(c *gin.Context) listings.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return service.NormalizeQuery(listings.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
}

// JobRequest is the validated payload for creating or replacing a job.
type JobRequest struct {
	Title           string `json:"title" binding:"required"`
	Department      string `json:"department" binding:"required"`
	State           string `json:"state" binding:"required"`
	Category        string `json:"category" binding:"required"`
	Vacancy         int    `json:"vacancy" binding:"required,gt=0"`
	LastDate        string `json:"lastDate" binding:"required"`
	Salary          string `json:"salary" binding:"required"`
	Qualification   string `json:"qualification" binding:"required"`
	Description     string `json:"description"`
	ApplicationLink string `json:"applicationLink"`
	IsActive        *bool  `json:"isActive"`
}

func (req *JobRequest) model() *listings.Job {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &listings.Job{
		Title:           req.Title,
		Department:      req.Department,
		State:           req.State,
		Category:        req.Category,
		Vacancy:         req.Vacancy,
		LastDate:        req.LastDate,
		Salary:          req.Salary,
		Qualification:   req.Qualification,
		Description:     req.Description,
		ApplicationLink: req.ApplicationLink,
		IsActive:        active,
	}
}

func (h *Handler) ListJobs(c *gin.Context) {
	q := queryFromRequest(c)
	jobs, total, err := h.svc.Jobs.List(c.Request.Context(), q)
	if err != nil {
		logger.Errorf("list jobs: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}
	ok(c, http.StatusOK, gin.H{"jobs": jobs, "pagination": service.Paginate(total, q)})
}

func (h *Handler) StateCounts(c *gin.Context) {
	counts, err := h.svc.StateCounts(c.Request.Context())
	if err != nil {
		logger.Errorf("state counts: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to fetch state counts")
		return
	}
	ok(c, http.StatusOK, counts)
}

func (h *Handler) CreateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	job := req.model()
	if _, err := h.svc.Jobs.Create(c.Request.Context(), job); err != nil {
		logger.Errorf("create job: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to create job")
		return
	}
	ok(c, http.StatusCreated, job)
}

func (h *Handler) UpdateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	id := c.Param("id")
	job := req.model()
	if err := h.svc.Jobs.Update(c.Request.Context(), id, job); err != nil {
		if err == repository.ErrNotFound {
			fail(c, http.StatusNotFound, "Job not found")
			return
		}
		logger.Errorf("update job %s: %v", id, err)
		fail(c, http.StatusInternalServerError, "Failed to update job")
		return
	}
	job.ID = id
	ok(c, http.StatusOK, job)
}

func (h *Handler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Jobs.Delete(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			fail(c, http.StatusNotFound, "Job not found")
			return
		}
		logger.Errorf("delete job %s: %v", id, err)
		fail(c, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": id})
}

// ExamRequest is the validated payload for exam-calendar entries.
type ExamRequest struct {
	Title                string     `json:"title" binding:"required"`
	ExamName             string     `json:"examName" binding:"required"`
	ExamDate             time.Time  `json:"examDate" binding:"required"`
	ApplicationStartDate time.Time  `json:"applicationStartDate" binding:"required"`
	ApplicationEndDate   time.Time  `json:"applicationEndDate" binding:"required"`
	ResultDate           *time.Time `json:"resultDate"`
	Status               string     `json:"status" binding:"omitempty,oneof=upcoming ongoing completed"`
	Description          string     `json:"description"`
	Organization         string     `json:"organization" binding:"required"`
	Category             string     `json:"category" binding:"required"`
	State                string     `json:"state"`
	NotificationLink     string     `json:"notificationLink"`
	ApplicationLink      string     `json:"applicationLink"`
	IsActive             *bool      `json:"isActive"`
}

func (req *ExamRequest) model() *listings.Exam {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	status := req.Status
	if status == "" {
		status = listings.ExamUpcoming
	}
	return &listings.Exam{
		Title:                req.Title,
		ExamName:             req.ExamName,
		ExamDate:             req.ExamDate,
		ApplicationStartDate: req.ApplicationStartDate,
		ApplicationEndDate:   req.ApplicationEndDate,
		ResultDate:           req.ResultDate,
		Status:               status,
		Description:          req.Description,
		Organization:         req.Organization,
		Category:             req.Category,
		State:                req.State,
		NotificationLink:     req.NotificationLink,
		ApplicationLink:      req.ApplicationLink,
		IsActive:             active,
	}
}

func (h *Handler) ListExams(c *gin.Context) {
	q := queryFromRequest(c)
	exams, total, err := h.svc.Exams.List(c.Request.Context(), q)
	if err != nil {
		logger.Errorf("list exams: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to fetch exam calendar")
		return
	}
	ok(c, http.StatusOK, gin.H{"exams": exams, "pagination": service.Paginate(total, q)})
}

func (h *Handler) CreateExam(c *gin.Context) {
	var req ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	exam := req.model()
	if _, err := h.svc.Exams.Create(c.Request.Context(), exam); err != nil {
		logger.Errorf("create exam: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to create exam calendar entry")
		return
	}
	ok(c, http.StatusCreated, exam)
}

func (h *Handler) UpdateExam(c *gin.Context) {
	var req ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	id := c.Param("id")
	exam := req.model()
	if err := h.svc.Exams.Update(c.Request.Context(), id, exam); err != nil {
		if err == repository.ErrNotFound {
			fail(c, http.StatusNotFound, "Exam not found")
			return
		}
		logger.Errorf("update exam %s: %v", id, err)
		fail(c, http.StatusInternalServerError, "Failed to update exam calendar entry")
		return
	}
	exam.ID = id
	ok(c, http.StatusOK, exam)
}

func (h *Handler) DeleteExam(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Exams.Delete(c.Request.Context(), id); err != nil {
		if err == repository.ErrNotFound {
			fail(c, http.StatusNotFound, "Exam not found")
			return
		}
		logger.Errorf("delete exam %s: %v", id, err)
		fail(c, http.StatusInternalServerError, "Failed to delete exam calendar entry")
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": id})
}

// DownloadRequest is the validated payload for results, admit cards,
// answer keys, and syllabus entries.
type DownloadRequest struct {
	Title        string `json:"title" binding:"required"`
	State        string `json:"state" binding:"required"`
	ExamDate     string `json:"examDate"`
	ResultDate   string `json:"resultDate"`
	DownloadLink string `json:"downloadLink" binding:"required"`
	IsActive     *bool  `json:"isActive"`
}

func (req *DownloadRequest) model() *listings.Download {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &listings.Download{
		Title:        req.Title,
		State:        req.State,
		ExamDate:     req.ExamDate,
		ResultDate:   req.ResultDate,
		DownloadLink: req.DownloadLink,
		IsActive:     active,
	}
}

func (h *Handler) listDownloads(repo repository.DownloadRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := queryFromRequest(c)
		items, total, err := repo.List(c.Request.Context(), q)
		if err != nil {
			logger.Errorf("list downloads: %v", err)
			fail(c, http.StatusInternalServerError, "Failed to fetch listings")
			return
		}
		ok(c, http.StatusOK, gin.H{"items": items, "pagination": service.Paginate(total, q)})
	}
}

func (h *Handler) createDownload(repo repository.DownloadRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DownloadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		d := req.model()
		if _, err := repo.Create(c.Request.Context(), d); err != nil {
			logger.Errorf("create download: %v", err)
			fail(c, http.StatusInternalServerError, "Failed to create listing")
			return
		}
		ok(c, http.StatusCreated, d)
	}
}

func (h *Handler) updateDownload(repo repository.DownloadRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DownloadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		id := c.Param("id")
		d := req.model()
		if err := repo.Update(c.Request.Context(), id, d); err != nil {
			if err == repository.ErrNotFound {
				fail(c, http.StatusNotFound, "Listing not found")
				return
			}
			logger.Errorf("update download %s: %v", id, err)
			fail(c, http.StatusInternalServerError, "Failed to update listing")
			return
		}
		d.ID = id
		ok(c, http.StatusOK, d)
	}
}

func (h *Handler) deleteDownload(repo repository.DownloadRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := repo.Delete(c.Request.Context(), id); err != nil {
			if err == repository.ErrNotFound {
				fail(c, http.StatusNotFound, "Listing not found")
				return
			}
			logger.Errorf("delete download %s: %v", id, err)
			fail(c, http.StatusInternalServerError, "Failed to delete listing")
			return
		}
		ok(c, http.StatusOK, gin.H{"deleted": id})
	}
}

// FooterRequest is the validated payload for footer content.
type FooterRequest struct {
	Title            string                    `json:"title" binding:"required"`
	Description      string                    `json:"description" binding:"required"`
	Links            []listings.FooterLink     `json:"links"`
	SocialLinks      []listings.SocialLink     `json:"socialLinks"`
	ContactInfo      listings.ContactInfo      `json:"contactInfo"`
	NewsletterSignup listings.NewsletterSignup `json:"newsletterSignup"`
	Copyright        string                    `json:"copyright" binding:"required"`
	IsActive         *bool                     `json:"isActive"`
}

func (req *FooterRequest) model() *listings.Footer {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return &listings.Footer{
		Title:            req.Title,
		Description:      req.Description,
		Links:            req.Links,
		SocialLinks:      req.SocialLinks,
		ContactInfo:      req.ContactInfo,
		NewsletterSignup: req.NewsletterSignup,
		Copyright:        req.Copyright,
		IsActive:         active,
	}
}

func (h *Handler) GetFooter(c *gin.Context) {
	f, err := h.svc.Footers.GetActive(c.Request.Context())
	if err != nil {
		logger.Errorf("get footer: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to fetch footer")
		return
	}
	if f == nil {
		fail(c, http.StatusNotFound, "Footer not found")
		return
	}
	ok(c, http.StatusOK, f)
}

func (h *Handler) CreateFooter(c *gin.Context) {
	var req FooterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	f := req.model()
	if _, err := h.svc.Footers.Create(c.Request.Context(), f); err != nil {
		logger.Errorf("create footer: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to create footer")
		return
	}
	ok(c, http.StatusCreated, f)
}

func (h *Handler) UpdateFooter(c *gin.Context) {
	var req FooterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	id := c.Param("id")
	f := req.model()
	if err := h.svc.Footers.Update(c.Request.Context(), id, f); err != nil {
		if err == repository.ErrNotFound {
			fail(c, http.StatusNotFound, "Footer not found")
			return
		}
		logger.Errorf("update footer %s: %v", id, err)
		fail(c, http.StatusInternalServerError, "Failed to update footer")
		return
	}
	f.ID = id
	ok(c, http.StatusOK, f)
}

// ContactRequest is the validated payload for the public contact form.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	msg := &listings.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if _, err := h.svc.Contacts.Create(c.Request.Context(), msg); err != nil {
		logger.Errorf("create contact: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to submit message")
		return
	}
	ok(c, http.StatusCreated, msg)
}

func (h *Handler) ListContacts(c *gin.Context) {
	q := queryFromRequest(c)
	msgs, total, err := h.svc.Contacts.List(c.Request.Context(), q)
	if err != nil {
		logger.Errorf("list contacts: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}
	ok(c, http.StatusOK, gin.H{"contacts": msgs, "pagination": service.Paginate(total, q)})
}

func (h *Handler) Analytics(c *gin.Context) {
	a, err := h.svc.BuildAnalytics(c.Request.Context())
	if err != nil {
		logger.Errorf("analytics: %v", err)
		fail(c, http.StatusInternalServerError, "Failed to fetch analytics data")
		return
	}
	ok(c, http.StatusOK, a)
}
