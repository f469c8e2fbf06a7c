package handler

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type setupStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

type setupResponse struct {
	Configured  bool        `json:"configured"`
	Provider    string      `json:"provider"`
	MissingVars []string    `json:"missingVars"`
	Steps       []setupStep `json:"steps"`
}

var keyPages = map[string]string{
	"gemini": "https://aistudio.google.com/app/apikey",
	"openai": "https://platform.openai.com/api-keys",
}

// GetSetupStatus handles GET /setup-status: which environment variables are
// still missing and how to provide them. Never reveals configured values.
func (s *Server) GetSetupStatus(w http.ResponseWriter, _ *http.Request) {
	missing := s.setup.Missing
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, setupResponse{
		Configured:  len(missing) == 0,
		Provider:    s.setup.Provider,
		MissingVars: missing,
		Steps:       setupSteps(s.setup),
	})
}

func setupSteps(st Setup) []setupStep {
	link := keyPages[st.Provider]
	return []setupStep{
		{Title: "Get an API key", Description: "Visit " + link + " to create an API key", Link: link},
		{Title: "Create a .env file", Description: "Create a .env file in the directory the server runs from"},
		{Title: "Add the API key", Description: "Add " + st.KeyEnv + "=your_api_key_here to the file"},
		{Title: "Restart the server", Description: "Restart the server so it loads the new environment variables"},
	}
}
