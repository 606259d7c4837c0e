package ui

import (
	"github.com/lumina-ai/lumina-console/internal/domain"
)

// loginResultMsg is the completion of a login attempt
type loginResultMsg struct {
	err     error
	session domain.Session
}

// logoutDoneMsg is sent once the session has been cleared
type logoutDoneMsg struct {
	principal string
}

// profileSavedMsg is the completion of a profile update
type profileSavedMsg struct {
	err      error
	username string
}
