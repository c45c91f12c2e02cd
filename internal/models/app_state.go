package models

// AppState is the read snapshot handed to the presentation layer. The
// slices are copies; callers hold no references into the store's memory.
type AppState struct {
	Visions  []Vision `json:"visions"`
	Goals    []Goal   `json:"goals"`
	Tasks    []Task   `json:"tasks"`
	Logs     []DayLog `json:"logs"`
	Settings Settings `json:"settings"`
}
