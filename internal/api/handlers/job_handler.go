package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireboard/internal/models"
	pgrepo "github.com/yoockh/hireboard/internal/repositories/postgres"
	"github.com/yoockh/hireboard/internal/services"
	"github.com/yoockh/hireboard/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

type JobRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Location     string     `json:"location"`
	SalaryMin    *float64   `json:"salary_min"`
	SalaryMax    *float64   `json:"salary_max"`
	JobType      string     `json:"job_type"`
	IsActive     *bool      `json:"is_active"`
	Deadline     *time.Time `json:"deadline"`
}

func (r JobRequest) input() services.JobInput {
	return services.JobInput{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Location:     r.Location,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		JobType:      models.JobType(r.JobType),
		IsActive:     r.IsActive,
		Deadline:     r.Deadline,
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}

	j, err := h.svc.Create(c.Request.Context(), userID, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *JobHandler) Edit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Edit", "invalid request body", err))
		return
	}

	j, err := h.svc.Edit(c.Request.Context(), userID, c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List is the public board: active jobs, filtered and paginated.
func (h *JobHandler) List(c *gin.Context) {
	f := pgrepo.JobFilters{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		JobType:  models.JobType(c.Query("job_type")),
	}
	if raw := c.Query("salary_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.SalaryMin = &v
		}
	}

	page, err := h.svc.ListActive(c.Request.Context(), f, pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *JobHandler) Get(c *gin.Context) {
	detail, err := h.svc.Get(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Mine lists the employer's own jobs, inactive ones included.
func (h *JobHandler) Mine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	jobs, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
