package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
	"gorm.io/gorm"
)

// RegisterCompanyRoutes registers the routes for companies with
// the RouterGroup that is passed.
func RegisterCompanyRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetCompanies)
	r.POST("", CreateCompany)
}

type CompanyEditable struct {
	Name            string  `json:"name" example:"Acme Inc."`
	Currency        string  `json:"currency" example:"EUR"`
	DayRate         string  `json:"dayRate" example:"10.50"`
	NightRate       string  `json:"nightRate" example:"12.00"`
	Withholding     float64 `json:"withholdingPercent" example:"15"`
	OtherDeductions string  `json:"otherDeductions" example:"50.00"`
	ProratedBonus   bool    `json:"proratedBonus" example:"false"`
}

type CompanyResponse struct {
	Data Company `json:"data"`
}

type CompanyListResponse struct {
	Data []Company `json:"data"`
}

// Company is the API representation of an employer.
type Company struct {
	ID              string  `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Name            string  `json:"name" example:"Acme Inc."`
	Currency        string  `json:"currency" example:"EUR"`
	DayRate         string  `json:"dayRate" example:"10.50"`
	NightRate       string  `json:"nightRate" example:"12.00"`
	Withholding     float64 `json:"withholdingPercent" example:"15"`
	OtherDeductions string  `json:"otherDeductions" example:"50.00"`
	ProratedBonus   bool    `json:"proratedBonus" example:"false"`
}

func newCompany(company models.Company) Company {
	return Company{
		ID:              company.ID.String(),
		Name:            company.Name,
		Currency:        company.Currency,
		DayRate:         money.CentsString(company.DayRateCents),
		NightRate:       money.CentsString(company.NightRateCents),
		Withholding:     company.WithholdingPercent,
		OtherDeductions: money.CentsString(company.OtherDeductionsCents),
		ProratedBonus:   company.ProratedBonus,
	}
}

// model converts the editable into a Company owned by the user.
// The default currency is EUR.
func (editable CompanyEditable) model(user models.User) (models.Company, error) {
	currency := strings.ToUpper(strings.TrimSpace(editable.Currency))
	if currency == "" {
		currency = "EUR"
	}

	dayRate, err := money.ParseCents(editable.DayRate, currency)
	if err != nil {
		return models.Company{}, err
	}

	nightRate, err := money.ParseCents(editable.NightRate, currency)
	if err != nil {
		return models.Company{}, err
	}

	var otherDeductions int64
	if strings.TrimSpace(editable.OtherDeductions) != "" {
		otherDeductions, err = money.ParseCents(editable.OtherDeductions, currency)
		if err != nil {
			return models.Company{}, err
		}
	}

	return models.Company{
		UserID:               user.ID,
		Name:                 editable.Name,
		Currency:             currency,
		DayRateCents:         dayRate,
		NightRateCents:       nightRate,
		WithholdingPercent:   editable.Withholding,
		OtherDeductionsCents: otherDeductions,
		ProratedBonus:        editable.ProratedBonus,
	}, nil
}

// GetCompanies returns the user's companies, sorted by name.
func GetCompanies(c *gin.Context) {
	var companies []models.Company
	err := models.DB.Where(&models.Company{UserID: currentUser(c).ID}).
		Order("name ASC").
		Find(&companies).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]Company, 0, len(companies))
	for _, company := range companies {
		data = append(data, newCompany(company))
	}

	c.JSON(http.StatusOK, CompanyListResponse{Data: data})
}

// CreateCompany creates a new company.
func CreateCompany(c *gin.Context) {
	var editable CompanyEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	company, err := editable.model(currentUser(c))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&company).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CompanyResponse{Data: newCompany(company)})
}
