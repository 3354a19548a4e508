package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/envelope-zero/ledger/pkg/httperrors"
	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/gin-gonic/gin"
)

// maxWait is the longest time a snapshot request waits for a newer snapshot.
const maxWait = 30 * time.Second

// @Summary		Get snapshot
// @Description	Returns the latest snapshot. With "after", waits up to 30 seconds for a snapshot newer than that version and returns the latest one if there is none.
// @Tags			Snapshot
// @Success		200	{object}	SnapshotResponse
// @Failure		400	{object}	httperrors.HTTPError
// @Param			after	query	int	false	"Version to wait for a newer snapshot than"
// @Router			/v1/snapshot [get]
func (co Controller) GetSnapshot(c *gin.Context) {
	mailbox := co.Sequencer.Mailbox()

	after, ok := c.GetQuery("after")
	if !ok {
		snapshot, version := mailbox.Latest()
		c.JSON(http.StatusOK, SnapshotResponse{Data: snapshot, Version: version})
		return
	}

	version, err := strconv.ParseUint(after, 10, 64)
	if err != nil {
		httperrors.Handler(c, fmt.Errorf("%w: after must be a snapshot version", ledger.ErrValidation))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), maxWait)
	defer cancel()

	snapshot, version, err := mailbox.Wait(ctx, version)
	if errors.Is(err, context.DeadlineExceeded) {
		snapshot, version = mailbox.Latest()
	} else if err != nil {
		httperrors.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{Data: snapshot, Version: version})
}
