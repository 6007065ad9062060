package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireboard/internal/models"
	"github.com/yoockh/hireboard/internal/services"
	"github.com/yoockh/hireboard/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me returns the caller's role profile, 404 when it has not been created yet.
// Clients use the 404 to route to the profile-creation flow.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	role, _ := c.Get("role")
	roleStr, _ := role.(string)

	p, err := h.svc.Get(c.Request.Context(), userID, models.UserRole(roleStr))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type EmployerProfileRequest struct {
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description"`
	Location           string `json:"location"`
	Website            string `json:"website"`
	ContactEmail       string `json:"contact_email"`
	PhoneNumber        string `json:"phone_number"`
}

func (r EmployerProfileRequest) model() *models.EmployerProfile {
	return &models.EmployerProfile{
		CompanyName:        r.CompanyName,
		CompanyDescription: r.CompanyDescription,
		Location:           r.Location,
		Website:            r.Website,
		ContactEmail:       r.ContactEmail,
		PhoneNumber:        r.PhoneNumber,
	}
}

type SeekerProfileRequest struct {
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number"`
	Location     string `json:"location"`
	Skills       string `json:"skills"`
	Experience   string `json:"experience"`
	Education    string `json:"education"`
	LinkedinURL  string `json:"linkedin_url"`
	PortfolioURL string `json:"portfolio_url"`
}

func (r SeekerProfileRequest) model() *models.JobSeekerProfile {
	return &models.JobSeekerProfile{
		FullName:     r.FullName,
		PhoneNumber:  r.PhoneNumber,
		Location:     r.Location,
		Skills:       r.Skills,
		Experience:   r.Experience,
		Education:    r.Education,
		LinkedinURL:  r.LinkedinURL,
		PortfolioURL: r.PortfolioURL,
	}
}

func (h *ProfileHandler) UpsertEmployer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req EmployerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.UpsertEmployer", "invalid request body", err))
		return
	}

	p, err := h.svc.UpsertEmployer(c.Request.Context(), userID, req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) UpsertSeeker(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SeekerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.UpsertSeeker", "invalid request body", err))
		return
	}

	p, err := h.svc.UpsertSeeker(c.Request.Context(), userID, req.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type accountFields struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateEmployerAccount edits the account row and the employer profile as one
// atomic unit.
func (h *ProfileHandler) UpdateEmployerAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Account accountFields          `json:"account"`
		Profile EmployerProfileRequest `json:"profile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.UpdateEmployerAccount", "invalid request body", err))
		return
	}

	p, err := h.svc.UpdateEmployerWithAccount(c.Request.Context(), userID,
		services.AccountInput{Username: req.Account.Username, Email: req.Account.Email},
		req.Profile.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) UpdateSeekerAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Account accountFields        `json:"account"`
		Profile SeekerProfileRequest `json:"profile"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.UpdateSeekerAccount", "invalid request body", err))
		return
	}

	p, err := h.svc.UpdateSeekerWithAccount(c.Request.Context(), userID,
		services.AccountInput{Username: req.Account.Username, Email: req.Account.Email},
		req.Profile.model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// EmployerDetail is the public company page.
func (h *ProfileHandler) EmployerDetail(c *gin.Context) {
	p, jobs, err := h.svc.EmployerDetail(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p, "jobs": jobs})
}

func (h *ProfileHandler) SeekerDetail(c *gin.Context) {
	p, err := h.svc.SeekerDetail(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
