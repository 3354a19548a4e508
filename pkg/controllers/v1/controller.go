// Package v1 implements the v1 API. Mutating endpoints enqueue commands for
// the sequencer and return before the command is executed. Clients read the
// result from the snapshot endpoint.
package v1

import (
	"net/http"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/sequencer"
	"github.com/gin-gonic/gin"
)

// Controller holds what the handlers need to submit commands and read snapshots.
type Controller struct {
	Sequencer *sequencer.Sequencer
}

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts"`         // Endpoint to add accounts
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`     // Endpoint to add categories
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // Endpoint to post transactions
	Assignments  string `json:"assignments" example:"https://example.com/api/v1/assignments"`   // Endpoint to edit assignments
	Selection    string `json:"selection" example:"https://example.com/api/v1/selection"`       // Endpoint to select the account
	Month        string `json:"month" example:"https://example.com/api/v1/month"`               // Endpoint to change the viewed month
	Snapshot     string `json:"snapshot" example:"https://example.com/api/v1/snapshot"`         // Endpoint returning the latest snapshot
}

// RegisterRoutes registers all v1 routes on the group.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", httputil.OptionsGet)

	accounts := r.Group("/accounts")
	accounts.POST("", submitBody[sequencer.AddAccount](co))
	accounts.OPTIONS("", httputil.OptionsPost)
	accounts.POST("/:id/reconcile", co.ReconcileAccount)
	accounts.OPTIONS("/:id/reconcile", httputil.OptionsPost)

	r.POST("/categories", submitBody[sequencer.AddCategory](co))
	r.OPTIONS("/categories", httputil.OptionsPost)

	transactions := r.Group("/transactions")
	transactions.POST("", submitBody[sequencer.PostTransaction](co))
	transactions.OPTIONS("", httputil.OptionsPost)
	transactions.DELETE("/:id", co.DeleteTransaction)
	transactions.OPTIONS("/:id", httputil.OptionsDelete)

	r.PUT("/assignments", submitBody[sequencer.EditAssignment](co))
	r.OPTIONS("/assignments", httputil.OptionsPut)

	r.PUT("/selection", submitBody[sequencer.SelectAccount](co))
	r.OPTIONS("/selection", httputil.OptionsPut)

	r.PUT("/month", submitBody[sequencer.ChangeViewedMonth](co))
	r.OPTIONS("/month", httputil.OptionsPut)

	r.GET("/snapshot", co.GetSnapshot)
	r.OPTIONS("/snapshot", httputil.OptionsGet)
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(httputil.ContextURL)) + "/v1"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Accounts:     url + "/accounts",
			Categories:   url + "/categories",
			Transactions: url + "/transactions",
			Assignments:  url + "/assignments",
			Selection:    url + "/selection",
			Month:        url + "/month",
			Snapshot:     url + "/snapshot",
		},
	})
}

// submit enqueues the command and responds with 202 Accepted.
func (co Controller) submit(c *gin.Context, command sequencer.Command) {
	supersedes := co.Sequencer.Mailbox().Version()

	err := co.Sequencer.Submit(c.Request.Context(), command)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusAccepted, CommandResponse{
		Data: Accepted{
			Command:    command.Kind(),
			Supersedes: supersedes,
		},
	})
}

// submitBody returns a handler that binds the request body to a command of
// type T and submits it.
func submitBody[T sequencer.Command](co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var command T
		if err := httputil.BindData(c, &command); err != nil {
			httperrors.Handler(c, err)
			return
		}

		co.submit(c, command)
	}
}
