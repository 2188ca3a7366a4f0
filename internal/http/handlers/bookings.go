package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "railbook/internal/config"
	"railbook/internal/domain/models"
	"railbook/internal/http/middleware"
	"railbook/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	TrainNo    int64                   `json:"train_no" binding:"required"`
	AccountID  string                  `json:"account_id" binding:"required"`
	Passengers []models.PassengerInput `json:"passengers" binding:"required"`
}

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		DB:        intconfig.DB,
		Payments:  services.WalletPayments{},
		RequestID: middleware.GetRequestID(c),
	}
}

func cancellationService(c *gin.Context) services.CancellationService {
	return services.CancellationService{
		DB:        intconfig.DB,
		Payments:  services.WalletPayments{},
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if len(req.Passengers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one passenger is required"})
		return
	}
	for _, p := range req.Passengers {
		if strings.TrimSpace(p.Name) == "" || p.Age <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every passenger needs a name and a valid age"})
			return
		}
	}

	holder := middleware.AuthUsername(c)
	if holder == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	res, err := bookingService(c).Book(c.Request.Context(), services.BookRequest{
		TrainNo:    req.TrainNo,
		Holder:     holder,
		Account:    req.AccountID,
		Passengers: req.Passengers,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type cancelBookingRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

// DELETE /api/bookings/:pnr
func CancelBooking(c *gin.Context) {
	pnr, err := strconv.ParseInt(c.Param("pnr"), 10, 64)
	if err != nil || pnr <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pnr"})
		return
	}

	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required for the refund"})
		return
	}

	res, err := cancellationService(c).Cancel(c.Request.Context(), pnr, req.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/bookings/:pnr
func GetBookingStatus(c *gin.Context) {
	pnr, err := strconv.ParseInt(c.Param("pnr"), 10, 64)
	if err != nil || pnr <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pnr"})
		return
	}

	svc := services.StatusService{DB: intconfig.DB}
	view, err := svc.Lookup(c.Request.Context(), pnr)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/bookings/:pnr/e-ticket
func GetBookingETicket(c *gin.Context) {
	pnr, err := strconv.ParseInt(c.Param("pnr"), 10, 64)
	if err != nil || pnr <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pnr"})
		return
	}

	svc := services.DocsService{
		Status:    services.StatusService{DB: intconfig.DB},
		RequestID: middleware.GetRequestID(c),
	}
	data, filename, err := svc.GenerateETicket(c.Request.Context(), pnr)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
