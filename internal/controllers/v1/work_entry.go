package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/misfinanzas/backend/internal/httputil"
	"github.com/misfinanzas/backend/internal/models"
	"github.com/misfinanzas/backend/internal/money"
	"github.com/misfinanzas/backend/internal/types"
	"gorm.io/gorm"
)

// RegisterWorkEntryRoutes registers the routes for work entries with
// the RouterGroup that is passed.
func RegisterWorkEntryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetWorkEntries)
	r.POST("", CreateWorkEntry)
}

type WorkEntryEditable struct {
	CompanyID    string  `json:"companyId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Date         string  `json:"date" example:"2026-02-10"`
	ClockIn      string  `json:"clockIn" example:"09:00"`
	ClockOut     string  `json:"clockOut" example:"17:30"`
	BreakMinutes int     `json:"breakMinutes" example:"30"`
	DayHours     float64 `json:"dayHours" example:"8"`
	NightHours   float64 `json:"nightHours" example:"0"`
	Bonus        string  `json:"bonus" example:"0"`
	Pluses       string  `json:"pluses" example:"0"`
	Advances     string  `json:"advances" example:"100.00"`
}

type WorkEntryResponse struct {
	Data WorkEntry `json:"data"`
}

type WorkEntryListResponse struct {
	Data []WorkEntry `json:"data"`
}

// WorkEntry is the API representation of a day of work.
type WorkEntry struct {
	ID           string  `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	CompanyID    string  `json:"companyId" example:"44b09f33-2a67-4b23-9b64-0e93e544ef35"`
	Date         string  `json:"date" example:"2026-02-10"`
	ClockIn      string  `json:"clockIn" example:"09:00"`
	ClockOut     string  `json:"clockOut" example:"17:30"`
	BreakMinutes int     `json:"breakMinutes" example:"30"`
	DayHours     float64 `json:"dayHours" example:"8"`
	NightHours   float64 `json:"nightHours" example:"0"`
	Bonus        string  `json:"bonus" example:"0.00"`
	Pluses       string  `json:"pluses" example:"0.00"`
	Advances     string  `json:"advances" example:"100.00"`
	Gross        string  `json:"gross" example:"80.00"`
}

func newWorkEntry(entry models.WorkEntry) WorkEntry {
	return WorkEntry{
		ID:           entry.ID.String(),
		CompanyID:    entry.CompanyID.String(),
		Date:         entry.Date.Format("2006-01-02"),
		ClockIn:      entry.ClockIn,
		ClockOut:     entry.ClockOut,
		BreakMinutes: entry.BreakMinutes,
		DayHours:     entry.DayHours,
		NightHours:   entry.NightHours,
		Bonus:        money.CentsString(entry.BonusCents),
		Pluses:       money.CentsString(entry.PlusesCents),
		Advances:     money.CentsString(entry.AdvancesCents),
		Gross:        money.CentsString(entry.GrossCents),
	}
}

// optionalCents parses an optional monetary field. An empty string is zero.
func optionalCents(amount, currency string) (int64, error) {
	if strings.TrimSpace(amount) == "" {
		return 0, nil
	}

	return money.ParseCents(amount, currency)
}

func (editable WorkEntryEditable) model(tx *gorm.DB, user models.User) (models.WorkEntry, error) {
	companyID, err := httputil.UUIDFromString(editable.CompanyID)
	if err != nil {
		return models.WorkEntry{}, err
	}

	// The company determines the currency the amounts are parsed in.
	company, err := models.CompanyOf(tx, user.ID, companyID)
	if err != nil {
		return models.WorkEntry{}, err
	}

	date, err := types.ParseDate(editable.Date)
	if err != nil {
		return models.WorkEntry{}, err
	}

	bonus, err := optionalCents(editable.Bonus, company.Currency)
	if err != nil {
		return models.WorkEntry{}, err
	}

	pluses, err := optionalCents(editable.Pluses, company.Currency)
	if err != nil {
		return models.WorkEntry{}, err
	}

	advances, err := optionalCents(editable.Advances, company.Currency)
	if err != nil {
		return models.WorkEntry{}, err
	}

	return models.WorkEntry{
		UserID:        user.ID,
		CompanyID:     company.ID,
		Date:          date,
		ClockIn:       editable.ClockIn,
		ClockOut:      editable.ClockOut,
		BreakMinutes:  editable.BreakMinutes,
		DayHours:      editable.DayHours,
		NightHours:    editable.NightHours,
		BonusCents:    bonus,
		PlusesCents:   pluses,
		AdvancesCents: advances,
	}, nil
}

// GetWorkEntries returns the user's work entries, newest first. The
// optional month query parameter (YYYY-MM) restricts the list to one month.
func GetWorkEntries(c *gin.Context) {
	query := models.DB.Where(&models.WorkEntry{UserID: currentUser(c).ID})

	if raw, ok := c.GetQuery("month"); ok {
		month, err := types.ParseMonth(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}

		query = query.Where("date >= ? AND date < ?", month.First(), month.Next())
	}

	var entries []models.WorkEntry
	err := query.Order("date DESC, created_at DESC").Limit(500).Find(&entries).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]WorkEntry, 0, len(entries))
	for _, entry := range entries {
		data = append(data, newWorkEntry(entry))
	}

	c.JSON(http.StatusOK, WorkEntryListResponse{Data: data})
}

// CreateWorkEntry creates a new work entry. The gross pay is computed
// from the company's rates and stored with the entry.
func CreateWorkEntry(c *gin.Context) {
	var editable WorkEntryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var entry models.WorkEntry
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		entry, err = editable.model(tx, currentUser(c))
		if err != nil {
			return err
		}

		return tx.Create(&entry).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, WorkEntryResponse{Data: newWorkEntry(entry)})
}
