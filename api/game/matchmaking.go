package gameapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/api/identity"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
)

// MatchMakingController manages matchmaking operations.
type MatchMakingController struct {
	gameSessionManager i.GameSessionManager
	userRepo           i.UserRepo
	matchingService    i.Matchmaker
}

// NewMatchMakingController initializes a MatchMakingController.
func NewMatchMakingController(gsm i.GameSessionManager, ur i.UserRepo, ms i.Matchmaker) (*MatchMakingController, error) {
	return &MatchMakingController{
		gameSessionManager: gsm,
		userRepo:           ur,
		matchingService:    ms,
	}, nil
}

// RegisterPublic registers public routes.
func (mkc *MatchMakingController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (mkc *MatchMakingController) RegisterProtected(route *gin.RouterGroup) {
	matchMaking := route.Group("/gameMatch")
	{
		matchMaking.POST("/", mkc.match)
		matchMaking.GET("/", mkc.matchInfo)
	}
}

// match queues the authenticated player for a round.
func (mkc *MatchMakingController) match(ctx *gin.Context) {
	var request MatchRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playerID, ok := authenticatedPlayerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	latency := time.Now().UnixMilli() - request.SentAt
	if latency < 0 {
		latency = 0
	}

	user, err := mkc.userRepo.ByID(playerID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = mkc.matchingService.PushToQueue(context.Background(), user.ID, user.Rating, uint(latency))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while matching player"})
		return
	}

	ctx.Status(http.StatusAccepted)
}

// matchInfo tells the authenticated player where their round is running.
func (mkc *MatchMakingController) matchInfo(ctx *gin.Context) {
	playerID, ok := authenticatedPlayerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	socketAddr, err := mkc.gameSessionManager.SessionInfo(playerID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return
	}

	response := &MatchInfoResponse{
		SocketAddr: socketAddr,
	}

	ctx.JSON(http.StatusOK, response)
}

// authenticatedPlayerID extracts the player ID from the claims the
// authorization middleware attached.
func authenticatedPlayerID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get(identity.ContextUserClaims)
	if !exists {
		return uuid.Nil, false
	}

	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}

	idStr, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
