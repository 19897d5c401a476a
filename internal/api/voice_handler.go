package api

import (
	"net/http"

	"kenotrix/backend/internal/interfaces"
	"kenotrix/backend/internal/service"
)

// VoiceHandler handles speech input and output.
type VoiceHandler struct {
	service interfaces.VoiceService
}

func NewVoiceHandler(svc interfaces.VoiceService) *VoiceHandler {
	return &VoiceHandler{service: svc}
}

// GetCapabilities godoc
// @Summary      Voice capabilities
// @Description  Reports whether speech recognition and synthesis are available, and the synthesis voices.
// @Tags         Voice
// @Produce      json
// @Success      200  {object}  voice.Capabilities
// @Router       /v1/voice [get]
func (h *VoiceHandler) GetCapabilities(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Capabilities(r.Context()))
}

// HandleListen godoc
// @Summary      Recognise one utterance
// @Description  Records a single utterance and returns its transcript. Blocks until recognition ends; closing the request stops it.
// @Tags         Voice
// @Produce      json
// @Success      200  {object}  TranscriptResponse
// @Failure      501  {object}  ErrorResponse
// @Router       /v1/voice/listen [post]
func (h *VoiceHandler) HandleListen(w http.ResponseWriter, r *http.Request) {
	transcript, err := h.service.Listen(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TranscriptResponse{Transcript: transcript})
}

// HandleSpeak godoc
// @Summary      Read text aloud
// @Description  Speaks the given text, or the content of a stored message, replacing any utterance in progress.
// @Tags         Voice
// @Accept       json
// @Produce      json
// @Param        request  body      service.SpeakRequest  true  "Text or message reference"
// @Success      202      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/voice/speak [post]
func (h *VoiceHandler) HandleSpeak(w http.ResponseWriter, r *http.Request) {
	var req service.SpeakRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	spoken, err := h.service.Speak(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	status := "speaking"
	if !spoken {
		status = "unsupported"
	}
	respondWithJSON(w, http.StatusAccepted, StatusResponse{Status: status})
}
