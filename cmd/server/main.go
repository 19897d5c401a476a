package main

import (
	"os"

	"kenotrix/backend/internal/app"
)

//	@title			Kenotrix API
//	@version		1.0
//	@description	Conversational search backend: grounded streaming answers, thread storage and voice.
//	@host			localhost:8000
//	@BasePath		/api

func main() {
	os.Exit(app.Run())
}
