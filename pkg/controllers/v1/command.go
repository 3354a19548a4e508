package v1

import (
	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/envelope-zero/ledger/pkg/sequencer"
	"github.com/gin-gonic/gin"
)

// @Summary		Delete transaction
// @Description	Queues the removal of a transaction. Its effects on the account balance and the category are reversed.
// @Tags			Transactions
// @Success		202	{object}	CommandResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Param			id	path		int	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := httputil.IDParam(c, "id")
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	co.submit(c, sequencer.DeleteTransaction{TransactionID: id})
}

// @Summary		Reconcile account
// @Description	Queues the recomputation of the account balance from its transactions
// @Tags			Accounts
// @Success		202	{object}	CommandResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Param			id	path		int	true	"ID of the account"
// @Router			/v1/accounts/{id}/reconcile [post]
func (co Controller) ReconcileAccount(c *gin.Context) {
	id, err := httputil.IDParam(c, "id")
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	co.submit(c, sequencer.ReconcileAccount{AccountID: id})
}
