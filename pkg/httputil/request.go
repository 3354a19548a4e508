package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/envelope-zero/ledger/pkg/ledger"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestBodyEmpty = fmt.Errorf("%w: the request body must not be empty", ledger.ErrValidation)
	ErrInvalidBody      = fmt.Errorf("%w: the body of your request contains invalid or un-parseable data. Please check and try again", ledger.ErrValidation)
	ErrInvalidID        = fmt.Errorf("%w: the specified resource ID is not a valid positive integer", ledger.ErrValidation)
)

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return fmt.Errorf("%w: %w", ledger.ErrValidation, err)
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// IDParam parses the path parameter with the given name as a resource ID.
func IDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return uint(id), nil
}

// ContextKey is the type for keys set on the gin context.
type ContextKey string

// ContextURL is the key for the external URL of the API.
const ContextURL ContextKey = "ledgerAPIURL"
