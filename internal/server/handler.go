package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"github.com/lumina-ai/lumina-console/internal/logging"
)

// teaHandler creates the program for one SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	logging.Logger.Info("New SSH viewer",
		"session_id", sessionID(sess),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	return s.newModel(sess, sess.Environ()), []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionLogMiddleware records how long each viewer stayed connected
func sessionLogMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			start := time.Now()
			next(sess)
			logging.Logger.Info("SSH viewer disconnected",
				"session_id", sessionID(sess),
				"duration", time.Since(start).String())
		}
	}
}

func sessionID(sess ssh.Session) string {
	return fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())
}
