// Package handlers is the HTTP surface over the store coordinator and the
// session provider. Handlers never talk to the local or remote adapters
// directly.
package handlers

import (
	"github.com/alvaro/align-api/internal/session"
	"github.com/alvaro/align-api/internal/store"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Store   *store.Coordinator
	Session *session.Provider
	Log     *logrus.Logger
}

func New(st *store.Coordinator, sess *session.Provider, log *logrus.Logger) *Handler {
	return &Handler{Store: st, Session: sess, Log: log}
}
