package app

// Screen represents the current view in the application
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenDiffPathInput
	ScreenLoading
	ScreenReview
	ScreenMessageEdit
	ScreenCommitConfirm
	ScreenCommitting
	ScreenComplete
	ScreenError
	ScreenSessionHistory
	ScreenUpdatePrompt
	ScreenUpdating
)

func (s Screen) String() string {
	names := []string{
		"MainMenu",
		"DiffPathInput",
		"Loading",
		"Review",
		"MessageEdit",
		"CommitConfirm",
		"Committing",
		"Complete",
		"Error",
		"SessionHistory",
		"UpdatePrompt",
		"Updating",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
