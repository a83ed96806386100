package dentallabserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/dentallab-tracker/internal/domains/orders/adapters/http/mapper"
	"github.com/Apurer/dentallab-tracker/internal/domains/orders/application"
	"github.com/Apurer/dentallab-tracker/internal/platform/i18n"
)

// PreferencesAPI exposes the stored interface language.
type PreferencesAPI struct {
	preferences *application.Preferences
}

// NewPreferencesAPI creates a PreferencesAPI.
func NewPreferencesAPI(preferences *application.Preferences) PreferencesAPI {
	return PreferencesAPI{preferences: preferences}
}

// Get /v1/preferences/language
func (api *PreferencesAPI) GetLanguage(c *gin.Context) {
	lang, err := api.preferences.Language(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.Language{Language: lang, Direction: i18n.Direction(lang)})
}

// Put /v1/preferences/language
func (api *PreferencesAPI) SetLanguage(c *gin.Context) {
	var payload orderhttpmapper.Language
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	lang, err := api.preferences.SetLanguage(c.Request.Context(), payload.Language)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.Language{Language: lang, Direction: i18n.Direction(lang)})
}
