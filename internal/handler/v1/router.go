package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/healthvault/pkg/metrics"
)

type RouterDeps struct {
	Documents *DocumentHandler
	Family    *FamilyHandler
	Doctors   *DoctorHandler
	Share     *ShareHandler
	Assistant *AssistantHandler
	Insurance *InsuranceHandler

	Verifier  *auth.Verifier
	Collector *metrics.Collector
	Log       *zap.Logger
}

// NewRouter wires the HTTP surface. Everything under /api/v1 requires an
// identity-provider token except share-link resolution, which is
// authenticated by the token in the path alone.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(deps.Log), Observe(deps.Collector))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := r.Group("/api/v1")

	api.GET("/share/:token", deps.Share.Resolve)

	authed := api.Group("")
	authed.Use(AuthRequired(deps.Verifier))
	{
		authed.POST("/documents", deps.Documents.Upload)
		authed.GET("/documents", deps.Documents.List)
		authed.GET("/documents/:id", deps.Documents.Get)
		authed.PATCH("/documents/:id/claim-status", deps.Documents.UpdateClaimStatus)

		authed.POST("/family-members", deps.Family.Add)
		authed.GET("/family-members", deps.Family.List)

		authed.GET("/doctors", deps.Doctors.List)
		authed.POST("/doctors/grant", deps.Doctors.Grant)
		authed.DELETE("/doctors/:id", deps.Doctors.Revoke)
		authed.GET("/doctors/directory", deps.Doctors.SearchDirectory)

		authed.GET("/insurance/policy", deps.Insurance.GetPolicy)

		authed.POST("/assistant/insights", deps.Assistant.Insights)
		authed.POST("/assistant/chat", deps.Assistant.Chat)
		authed.POST("/assistant/visit-summary", deps.Assistant.VisitSummary)
		authed.POST("/assistant/bill-analysis", deps.Assistant.AnalyzeBill)
		authed.POST("/assistant/appeal-draft", deps.Assistant.DraftAppeal)
	}

	return r
}
