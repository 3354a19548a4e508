package version

import (
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/envelope-zero/ledger/pkg/httputil"
	"github.com/gin-gonic/gin"
)

// Version of the ledger, passed in from main.
var ledgerVersion = "0.0.0"

type Response struct {
	Data Object `json:"data"`
}

type Object struct {
	Version   string `json:"version" example:"1.1.0"`              // Version of the running ledger
	GoVersion string `json:"goVersion" example:"go1.25.5"`         // Go toolchain the binary was built with
	Revision  string `json:"revision,omitempty" example:"4f2a9c1"` // VCS revision, if the binary carries one
}

func RegisterRoutes(r *gin.RouterGroup, version string) {
	ledgerVersion = version

	r.GET("", Get)
	r.OPTIONS("", Options)
}

// revision returns the vcs.revision build setting, shortened to 7 characters.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			return setting.Value[:7]
		}
	}
	return ""
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Ledger version
// @Description	Returns the version and build information of the running ledger
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Data: Object{
			Version:   ledgerVersion,
			GoVersion: runtime.Version(),
			Revision:  revision(),
		},
	})
}
