package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/config"
	"github.com/vaibhavshukla06/Labyrnith-Survival/game"
	"github.com/vaibhavshukla06/Labyrnith-Survival/maze"
	"github.com/vaibhavshukla06/Labyrnith-Survival/service/i"
)

const (
	defaultRoundDuration = 5 * time.Minute

	stateFrameType byte = 10
	endedFrameType byte = 11
)

var (
	ErrNoSession    = errors.New("player has no active session")
	ErrInvalidToken = errors.New("invalid session token")
)

type session struct {
	round   *game.Game
	players []uuid.UUID
}

// GameSessionManager creates a round per formed match, pumps its
// broadcasts into the realtime gateway, and routes inbound client actions
// back to the right round.
type GameSessionManager struct {
	gateway       i.ClientGateway
	tokenizer     i.Tokenizer
	users         i.UserRepo
	mazeConfig    maze.Config
	roundDuration time.Duration
	logger        *log.Logger

	sessions        map[uuid.UUID]*session
	playerToSession map[uuid.UUID]uuid.UUID
	sync.RWMutex
}

// SessionManagerConfig wires the session manager's collaborators.
type SessionManagerConfig struct {
	Gateway       i.ClientGateway
	Tokenizer     i.Tokenizer
	Users         i.UserRepo
	MazeConfig    maze.Config
	RoundDuration time.Duration
	Logger        *log.Logger
}

var _ i.GameSessionManager = &GameSessionManager{}
var _ i.PlayerAuthenticator = &GameSessionManager{}

// NewGameSessionManager creates the manager and registers it on the
// gateway as both the action handler and the connection authenticator.
func NewGameSessionManager(c *SessionManagerConfig) (*GameSessionManager, error) {
	if c.Gateway == nil || c.Tokenizer == nil || c.Users == nil {
		return nil, errors.New("session manager requires a gateway, a tokenizer, and a user repo")
	}
	if c.RoundDuration == 0 {
		c.RoundDuration = defaultRoundDuration
	}

	gsm := &GameSessionManager{
		gateway:         c.Gateway,
		tokenizer:       c.Tokenizer,
		users:           c.Users,
		mazeConfig:      c.MazeConfig,
		roundDuration:   c.RoundDuration,
		logger:          c.Logger,
		sessions:        make(map[uuid.UUID]*session),
		playerToSession: make(map[uuid.UUID]uuid.UUID),
	}

	c.Gateway.SetClientRequestHandler(gsm.routePlayerAction)
	c.Gateway.SetClientAuthenticator(gsm)
	return gsm, nil
}

// NewSession builds a fresh maze and starts a round for the matched
// players. Each round gets its own randomized maze; the configured seed is
// only honored when explicitly set, for reproduction.
func (g *GameSessionManager) NewSession(playerIDs []uuid.UUID) {
	m, err := maze.New(g.mazeConfig)
	if err != nil {
		g.logger.Printf("%s[ERROR]%s building maze for new round: %s", config.LogErrorColor, config.LogColorReset, err)
		return
	}

	round, err := game.New(m, playerIDs)
	if err != nil {
		g.logger.Printf("%s[ERROR]%s creating round: %s", config.LogErrorColor, config.LogColorReset, err)
		return
	}

	sessionID := g.saveSession(playerIDs, round)
	go round.Start(g.roundDuration)
	go g.pumpRound(sessionID)
	g.logger.Printf("%s[INFO]%s started round %s for players %v (pattern %s)", config.LogInfoColor, config.LogColorReset, sessionID, playerIDs, m.Pattern())
}

// SessionInfo returns the realtime address for a player with a live round.
func (g *GameSessionManager) SessionInfo(playerID uuid.UUID) (string, error) {
	g.RLock()
	defer g.RUnlock()
	if _, ok := g.playerToSession[playerID]; !ok {
		return "", ErrNoSession
	}
	return g.gateway.Addr(), nil
}

// Authenticate resolves a connection token to a player with an active
// session.
func (g *GameSessionManager) Authenticate(token string) (uuid.UUID, error) {
	claims, err := g.tokenizer.Decode(token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	rawID, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	g.RLock()
	defer g.RUnlock()
	if _, ok := g.playerToSession[id]; !ok {
		return uuid.Nil, ErrNoSession
	}
	return id, nil
}

// StopAll shuts down every running round.
func (g *GameSessionManager) StopAll() {
	g.Lock()
	defer g.Unlock()
	for _, s := range g.sessions {
		s.round.Stop()
	}
}

func (g *GameSessionManager) saveSession(players []uuid.UUID, round *game.Game) uuid.UUID {
	g.Lock()
	defer g.Unlock()

	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}

	g.sessions[sessionID] = &session{round: round, players: players}
	for _, p := range players {
		g.playerToSession[p] = sessionID
	}
	return sessionID
}

// pumpRound forwards a round's broadcasts to its players until the round
// ends, then tears the session down.
func (g *GameSessionManager) pumpRound(id uuid.UUID) {
	g.RLock()
	s, ok := g.sessions[id]
	g.RUnlock()
	if !ok {
		return
	}

	stateCh := s.round.StateChan
	for {
		select {
		case payload, ok := <-stateCh:
			if !ok {
				// Closed during shutdown; block on EndChan only.
				stateCh = nil
				continue
			}
			g.gateway.BroadcastToClients(s.players, stateFrameType, payload)
		case payload, ok := <-s.round.EndChan:
			if ok {
				g.gateway.BroadcastToClients(s.players, endedFrameType, payload)
				g.recordEscapes(payload)
			}
			g.clean(id)
			return
		}
	}
}

// recordEscapes bumps the persistent escape counter of every player who
// reached the exit, read from the round's final state frame.
func (g *GameSessionManager) recordEscapes(finalFrame []byte) {
	var final game.StateMessage
	if err := json.Unmarshal(finalFrame, &final); err != nil {
		g.logger.Printf("%s[ERROR]%s decoding final round state: %s", config.LogErrorColor, config.LogColorReset, err)
		return
	}

	for _, p := range final.Players {
		if !p.Escaped {
			continue
		}
		user, err := g.users.ByID(p.ID)
		if err != nil {
			g.logger.Printf("%s[ERROR]%s loading user %s to record escape: %s", config.LogErrorColor, config.LogColorReset, p.ID, err)
			continue
		}
		user.Escapes++
		if err := g.users.Save(user); err != nil {
			g.logger.Printf("%s[ERROR]%s saving escape for user %s: %s", config.LogErrorColor, config.LogColorReset, p.ID, err)
		}
	}
}

// routePlayerAction forwards a client frame into the player's round.
func (g *GameSessionManager) routePlayerAction(playerID uuid.UUID, frameType byte, payload []byte) {
	g.RLock()
	sessionID, ok := g.playerToSession[playerID]
	if !ok {
		g.RUnlock()
		g.logger.Printf("%s[ERROR]%s action from player %s without a session", config.LogErrorColor, config.LogColorReset, playerID)
		return
	}
	s := g.sessions[sessionID]
	g.RUnlock()

	// The round may shut down between the lookup and the send.
	defer func() { _ = recover() }()
	s.round.ActionChan <- game.Action{PlayerID: playerID, Type: frameType, Payload: payload}
}

func (g *GameSessionManager) clean(id uuid.UUID) {
	g.Lock()
	defer g.Unlock()
	s, ok := g.sessions[id]
	if !ok {
		return
	}
	for _, p := range s.players {
		delete(g.playerToSession, p)
	}
	delete(g.sessions, id)
}
