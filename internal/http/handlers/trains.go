package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "railbook/internal/config"
	"railbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/trains?from=&to=
func SearchTrains(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))

	trains, err := repositories.TrainRepo{}.Search(intconfig.DB, from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

// GET /api/trains/:no
func GetTrain(c *gin.Context) {
	no, err := strconv.ParseInt(c.Param("no"), 10, 64)
	if err != nil || no <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid train number"})
		return
	}

	train, err := repositories.TrainRepo{}.GetByNo(intconfig.DB, no)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, train)
}
