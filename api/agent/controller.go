package agentapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-agent/api/identity"
	dmn "github.com/beka-birhanu/vinom-agent/domain"
	"github.com/beka-birhanu/vinom-agent/game"
	"github.com/beka-birhanu/vinom-agent/game/agent"
	"github.com/beka-birhanu/vinom-agent/service"
	"github.com/beka-birhanu/vinom-agent/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

// Controller serves agent sessions.
type Controller struct {
	sessions i.AgentSessionManager
	logger   i.Logger
	upgrader websocket.Upgrader
}

// NewController initializes a Controller.
func NewController(sessions i.AgentSessionManager, logger i.Logger) (*Controller, error) {
	if sessions == nil || logger == nil {
		return nil, service.ErrMissingDependency
	}
	return &Controller{
		sessions: sessions,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	agents := route.Group("/agents")
	{
		agents.POST("", c.create)
		agents.GET("/leaderboard", c.leaderboard)
		agents.GET("/episodes/:ID", c.episode)
	}
}

// RegisterProtected registers routes that need a session token.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	agents := route.Group("/agents")
	{
		agents.POST("/step", c.step)
		agents.POST("/reset", c.reset)
		agents.GET("/stream", c.stream)
	}
}

// create starts a session and hands back its token.
func (c *Controller) create(ctx *gin.Context) {
	var request EpisodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, token, err := c.sessions.NewSession(ctx, request.Start, request.heading())
	if err != nil {
		c.logger.Error("creating session: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating session"})
		return
	}

	ctx.JSON(http.StatusCreated, &SessionResponse{
		SessionID: id.String(),
		Token:     token,
	})
}

// step answers one percept with one action.
func (c *Controller) step(ctx *gin.Context) {
	sessionID, err := identity.SessionID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var percept game.Percept
	if err := ctx.ShouldBindJSON(&percept); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := c.sessions.Step(ctx, sessionID, percept)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &ActionResponse{Action: action})
}

// reset starts a new episode in the caller's session.
func (c *Controller) reset(ctx *gin.Context) {
	sessionID, err := identity.SessionID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var request EpisodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.sessions.Reset(ctx, sessionID, request.Start, request.heading()); err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// leaderboard lists the ranked episodes with the fewest steps.
func (c *Controller) leaderboard(ctx *gin.Context) {
	n, err := strconv.Atoi(ctx.DefaultQuery("n", strconv.Itoa(defaultLeaderboardSize)))
	if err != nil || n < 1 || n > maxLeaderboardSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be between 1 and 100"})
		return
	}

	entries, err := c.sessions.Leaderboard(ctx, n)
	if err != nil {
		c.logger.Error("reading leaderboard: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	ctx.JSON(http.StatusOK, &LeaderboardResponse{Entries: entries})
}

// episode returns one episode transcript.
func (c *Controller) episode(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode id"})
		return
	}

	e, err := c.sessions.Episode(ctx, ID)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, e)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, dmn.ErrEpisodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, agent.ErrEpisodeOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
