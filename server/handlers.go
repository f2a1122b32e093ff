package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhrions/ha-public-transports/store"
	"github.com/dhrions/ha-public-transports/wizard"
)

type healthResponse struct {
	Status      string `json:"status"`
	ActiveFlows int    `json:"active_flows"`
}

type flowResponse struct {
	FlowID string       `json:"flow_id"`
	State  string       `json:"state"`
	Form   *wizard.Form `json:"form,omitempty"`
	Entry  *store.Entry `json:"entry,omitempty"`
}

func stepResponse(id string, step wizard.Step) flowResponse {
	return flowResponse{FlowID: id, State: step.State.String(), Form: step.Form}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", ActiveFlows: s.activeFlows()})
}

func (s *Server) handleCities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cities": s.registry.Cities()})
}

func (s *Server) handleCreateFlow(c *gin.Context) {
	id, sess := s.newFlow()
	c.JSON(http.StatusCreated, stepResponse(id, sess.flow.Current()))
}

func (s *Server) handleGetFlow(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.lookup(id)
	if !ok {
		abortWithProblem(c, http.StatusNotFound, "unknown flow "+id)
		return
	}
	sess.mu.Lock()
	step := sess.flow.Current()
	sess.mu.Unlock()
	c.JSON(http.StatusOK, stepResponse(id, step))
}

func (s *Server) handleSubmitFlow(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.lookup(id)
	if !ok {
		abortWithProblem(c, http.StatusNotFound, "unknown flow "+id)
		return
	}

	var in wizard.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithProblem(c, http.StatusBadRequest, "body must be a JSON object of strings: "+err.Error())
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// A run is saved at most once; later submissions get the saved entry back.
	if sess.entry != nil {
		redacted := sess.entry.Redacted()
		c.JSON(http.StatusOK, flowResponse{FlowID: id, State: wizard.Committed.String(), Entry: &redacted})
		return
	}

	step, err := sess.flow.Submit(c.Request.Context(), in)
	if err != nil && !errors.Is(err, wizard.ErrFlowCommitted) {
		abortWithProblem(c, http.StatusBadRequest, err.Error())
		return
	}

	sel, done := sess.flow.Result()
	if !done {
		c.JSON(http.StatusOK, stepResponse(id, step))
		return
	}

	// A committed run whose save failed stays registered so the client can
	// post again to retry the save.
	entry, err := s.store.Save(c.Request.Context(), sel)
	if err != nil {
		log.Printf("flow %s: %v", id, err)
		abortWithProblem(c, http.StatusInternalServerError, "could not save entry")
		return
	}
	sess.entry = &entry
	s.forget(id)
	log.Printf("flow %s committed entry %s (%s)", id, entry.ID, entry.Title)

	redacted := entry.Redacted()
	c.JSON(http.StatusCreated, flowResponse{FlowID: id, State: step.State.String(), Entry: &redacted})
}

func (s *Server) handleDeleteFlow(c *gin.Context) {
	id := c.Param("id")
	if !s.forget(id) {
		abortWithProblem(c, http.StatusNotFound, "unknown flow "+id)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListEntries(c *gin.Context) {
	es, err := s.store.List(c.Request.Context())
	if err != nil {
		log.Printf("list entries: %v", err)
		abortWithProblem(c, http.StatusInternalServerError, "could not list entries")
		return
	}
	out := make([]store.Entry, 0, len(es))
	for _, e := range es {
		out = append(out, e.Redacted())
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (s *Server) handleGetEntry(c *gin.Context) {
	e, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		abortWithProblem(c, http.StatusNotFound, "unknown entry "+c.Param("id"))
		return
	}
	if err != nil {
		log.Printf("get entry: %v", err)
		abortWithProblem(c, http.StatusInternalServerError, "could not load entry")
		return
	}
	c.JSON(http.StatusOK, e.Redacted())
}
