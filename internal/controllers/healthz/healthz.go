package healthz

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/violet-vault/backend/internal/httputil"
	"github.com/violet-vault/backend/internal/models"
)

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

type Response struct {
	Error *string `json:"error"` // The error, if the backend is not healthy
}

// Options returns the allowed HTTP methods
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the application health, which currently is the health
// of the database connection
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c)
	}

	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		e := "the database cannot be accessed"
		c.JSON(http.StatusInternalServerError, Response{Error: &e})
		return
	}

	c.JSON(http.StatusOK, Response{})
}
