package server

import (
	"io"
	"net/http"
	"sync"
	"time"

	"othello/agent"
	"othello/game"
	"othello/gamemaster"
	"othello/searcher"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Server struct {
	engine *gin.Engine

	mu    sync.RWMutex
	games map[string]*session
}

// session is a hosted game and the unread end of its update stream.
type session struct {
	engine  gamemaster.Engine
	updates gamemaster.UpdateGetter
}

func NewServer() *Server {
	registerValidations()

	s := &Server{
		engine: gin.New(),
		games:  make(map[string]*session),
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.engine.POST("/findmove", s.FindMove)
	s.engine.POST("/games", s.NewGame)
	s.engine.GET("/games/:id", s.GetGame)
	s.engine.DELETE("/games/:id", s.DeleteGame)
	s.engine.POST("/games/:id/moves", s.Play)
	s.engine.GET("/games/:id/updates", s.Updates)
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// FindMove runs an agent on the posted position.
func (s *Server) FindMove(c *gin.Context) {
	var req FindMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	board, err := game.NewBoard(req.Layout)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	side, err := game.ParseSide(req.Side)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	opts := []agent.Option{agent.WithMetrics()}
	if req.Seed != 0 {
		opts = append(opts, agent.WithSeed(req.Seed))
	}
	if req.Depth > 0 {
		opts = append(opts, agent.WithSearchOptions(searcher.WithDepth(req.Depth)))
	}
	a, err := agent.New(agent.Strategy(req.Strategy), opts...)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	move, metric, err := a.FindMove(board, side)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	log.Debug().Msgf("%s found move %d for %v in %v (%d nodes)", req.Strategy, move, side, metric.Duration, metric.Nodes)
	SuccessResponse(c, http.StatusOK, FindMoveResponse{Move: move, Nodes: metric.Nodes})
}

// NewGame opens a session on the posted layout or the standard opening.
func (s *Server) NewGame(c *gin.Context) {
	var req NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	layout := req.Layout
	if layout == "" {
		layout = game.InitialLayout
	}
	board, err := game.NewBoard(layout)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	e := gamemaster.NewLocalEngine(board)
	_, getUpdate := e.Init()
	id := uuid.New().String()

	s.mu.Lock()
	s.games[id] = &session{engine: e, updates: getUpdate}
	s.mu.Unlock()

	log.Info().Msgf("game %s created", id)
	SuccessResponse(c, http.StatusCreated, newGameState(id, e.State()))
}

func (s *Server) GetGame(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "game "+id+" not found")
		return
	}
	SuccessResponse(c, http.StatusOK, newGameState(id, sess.engine.State()))
}

// DeleteGame drops a session. Sessions are otherwise kept until shutdown.
func (s *Server) DeleteGame(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	_, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "game "+id+" not found")
		return
	}

	log.Info().Msgf("game %s deleted", id)
	SuccessResponse(c, http.StatusOK, gin.H{"id": id})
}

// Updates drains the moves and passes applied since the last call.
func (s *Server) Updates(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "game "+id+" not found")
		return
	}

	resp := UpdatesResponse{ID: id, Updates: []MoveUpdate{}}
	for {
		u, ok := sess.updates()
		if !ok {
			break
		}
		resp.Updates = append(resp.Updates, newMoveUpdate(u))
	}
	resp.ToMove = sess.engine.ToMove().String()
	resp.Over = sess.engine.State().Over
	SuccessResponse(c, http.StatusOK, resp)
}

// Play applies a move for the side to move of a session.
func (s *Server) Play(c *gin.Context) {
	id := c.Param("id")
	sess, ok := s.session(id)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "game "+id+" not found")
		return
	}
	e := sess.engine
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := e.Play(req.Cell)
	var illegal *game.IllegalMoveError
	switch {
	case errors.Is(err, gamemaster.ErrGameOver):
		ErrorResponse(c, http.StatusConflict, err.Error())
		return
	case errors.As(err, &illegal):
		ErrorResponse(c, http.StatusUnprocessableEntity, illegal.Error())
		return
	case err != nil:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	state := newGameState(id, e.State())
	if state.Over {
		log.Info().Msgf("game %s over: %d-%d", id, state.Black, state.White)
	}
	SuccessResponse(c, http.StatusOK, state)
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.games[id]
	return sess, ok
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
