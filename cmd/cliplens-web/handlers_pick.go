package main

import (
	"errors"
	"net/http"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
)

// POST /api/pick
// Opens a native OS file picker dialog and returns the selected video path.
func handlePick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	selected, err := zenity.SelectFile(
		zenity.Title("Select a video file"),
		zenity.FileFilters{
			{
				Name: "Video files",
				Patterns: []string{
					"*.mp4", "*.mov", "*.webm", "*.mkv", "*.avi",
				},
			},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"path":     "",
				"canceled": true,
			})
			return
		}
		log.Error().Err(err).Msg("File picker failed")
		httpError(w, http.StatusInternalServerError, "file picker failed")
		return
	}

	log.Info().Str("path", selected).Msg("Video picked via native dialog")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"path":     selected,
		"canceled": false,
	})
}
