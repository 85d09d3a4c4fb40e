package simulate

import "time"

// Config holds configuration for a simulated ranking run.
type Config struct {
	BaseURL     string        // Base URL of the service
	List        string        // List name to create and rank
	Items       int           // Number of items in the hidden ordering
	Comparisons int           // Number of comparisons to submit
	Noise       float64       // Probability of reporting the wrong winner
	TieRate     float64       // Probability of reporting a tie
	ReviewRate  float64       // Probability of an undo/redo round after a choice
	Timeout     time.Duration // HTTP request timeout
	LogFile     string        // Log file for simulation output
	Verbose     bool          // Enable verbose logging
	Seed        int64         // RNG seed; 0 means time-based
}

// pairResponse mirrors GET /pair.
type pairResponse struct {
	List string `json:"list"`
	Pair struct {
		Left  string `json:"left"`
		Right string `json:"right"`
	} `json:"pair"`
}

// choiceRequest mirrors POST /choice.
type choiceRequest struct {
	List    string `json:"list"`
	Winner  string `json:"winner"`
	Loser   string `json:"loser"`
	Outcome string `json:"outcome"`
}

// createListRequest mirrors POST /lists.
type createListRequest struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// rankingEntry mirrors one element of GET /rankings.
type rankingEntry struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Comparisons int     `json:"comparisons"`
}

// rankingsResponse mirrors GET /rankings.
type rankingsResponse struct {
	List     string         `json:"list"`
	Rankings []rankingEntry `json:"rankings"`
}

// Stats holds simulation statistics.
type Stats struct {
	ChoicesSubmitted int
	Ties             int
	Undos            int
	Redos            int
	Failed           int
	Agreement        float64
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
