package api

import (
	"net/http"

	"kenotrix/backend/internal/markdown"
	"kenotrix/backend/internal/model"
)

// ContentHandler serves static content and markdown rendering.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

// GetDiscover godoc
// @Summary      Discover feed
// @Description  Returns the fixed, illustrative discover entries.
// @Tags         Content
// @Produce      json
// @Success      200  {array}  model.DiscoveryItem
// @Router       /v1/discover [get]
func (h *ContentHandler) GetDiscover(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, model.DiscoveryItems())
}

// GetSuggestions godoc
// @Summary      Home suggestions
// @Description  Returns the suggested queries shown on the home view.
// @Tags         Content
// @Produce      json
// @Success      200  {array}  string
// @Router       /v1/suggestions [get]
func (h *ContentHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, model.Suggestions())
}

// Render godoc
// @Summary      Render markdown
// @Description  Splits text into line blocks with bold and link spans.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request  body      RenderRequest  true  "Text"
// @Success      200      {object}  RenderResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/render [post]
func (h *ContentHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	blocks := markdown.Render(req.Text)
	if blocks == nil {
		blocks = []markdown.Block{}
	}
	respondWithJSON(w, http.StatusOK, RenderResponse{Blocks: blocks})
}
