// Package game runs one survival round: a set of players trapped in a
// shifting maze, racing to reach the exit before the round timer runs out.
// Each Game owns exactly one maze and is the only goroutine that ever
// touches it; everything else sees broadcast snapshots.
package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vaibhavshukla06/Labyrnith-Survival/maze"
)

// Round configuration errors.
var (
	ErrTooManyPlayers   = errors.New("too many players")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNilMaze          = errors.New("nil maze")
)

const (
	minPlayers = 2
	maxPlayers = 4

	defaultTick = 100 * time.Millisecond
)

// Player is the round-local state of one participant, tracked in world
// coordinates.
type Player struct {
	ID      uuid.UUID
	X       float64
	Z       float64
	Escaped bool
}

// Game is a single survival round. The tick loop drives the maze's shift
// countdown; incoming actions arrive over ActionChan and outgoing state
// frames leave over StateChan, with the final frame on EndChan.
type Game struct {
	maze    *maze.Maze
	players map[uuid.UUID]*Player
	version int64
	tick    time.Duration

	stop     chan bool
	stopOnce sync.Once
	stopped  bool // set under the mutex before channels close

	StateChan  chan []byte // serialized StateMessage broadcasts
	ActionChan chan Action // inbound client actions
	EndChan    chan []byte // final state, closed after delivery

	Wg *sync.WaitGroup
	sync.RWMutex
}

// New creates a round over the given maze. Players spawn on open cells
// near the maze corners, as far from each other as the layout allows.
func New(m *maze.Maze, playerIDs []uuid.UUID) (*Game, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if len(playerIDs) > maxPlayers {
		return nil, ErrTooManyPlayers
	}
	if len(playerIDs) < minPlayers {
		return nil, ErrNotEnoughPlayers
	}

	players := make(map[uuid.UUID]*Player, len(playerIDs))
	spawns := spawnCells(m, len(playerIDs))
	for i, id := range playerIDs {
		x, z := cellCenter(m, spawns[i])
		players[id] = &Player{ID: id, X: x, Z: z}
	}

	return &Game{
		maze:       m,
		players:    players,
		tick:       defaultTick,
		stop:       make(chan bool, 1),
		StateChan:  make(chan []byte),
		ActionChan: make(chan Action),
		EndChan:    make(chan []byte),
		Wg:         &sync.WaitGroup{},
	}, nil
}

// Start runs the round loop until the duration elapses, every player
// escapes, or Stop is called. It blocks; run it on its own goroutine.
func (g *Game) Start(duration time.Duration) {
	time.AfterFunc(duration, g.Stop)

	// Everyone gets the initial layout before anything moves.
	g.spawnBroadcast(true)

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			g.handleTick()
		case action := <-g.ActionChan:
			g.handleAction(action)
		}
	}
}

// Stop ends the round, drains in-flight broadcasts, and emits the final
// state on EndChan. Safe to call more than once.
func (g *Game) Stop() {
	g.stopOnce.Do(func() {
		g.Lock()
		g.stopped = true
		g.Unlock()

		g.stop <- true
		g.Wg.Wait()
		close(g.ActionChan)
		close(g.StateChan)
		g.Wg.Add(1)
		g.broadcastState(true, true)
		close(g.EndChan)
	})
}

// handleTick advances the maze countdown by one tick and broadcasts the
// new layout when a shift fired.
func (g *Game) handleTick() {
	g.Lock()
	shifted := g.maze.Update(g.tick)
	if shifted {
		g.version++
	}
	g.Unlock()

	if shifted {
		g.spawnBroadcast(true)
	}
}

func (g *Game) handleAction(a Action) {
	switch a.Type {
	case StateRequestActionType:
		g.spawnBroadcast(true)
	case MoveActionType:
		var req MoveRequest
		if err := unmarshalMove(a.Payload, &req); err != nil {
			return
		}
		g.handleMove(a.PlayerID, req)
	}
}

// handleMove validates a movement request against the wall grid and the
// player's last known position, then applies it. Reaching the exit cell
// marks the player escaped; when the last player escapes the round ends.
func (g *Game) handleMove(playerID uuid.UUID, req MoveRequest) {
	g.Lock()
	p, ok := g.players[playerID]
	if !ok || p.Escaped {
		g.Unlock()
		return
	}

	// The client's claimed origin must match what the server believes.
	if g.maze.CellAt(req.FromX, req.FromZ) != g.maze.CellAt(p.X, p.Z) {
		g.Unlock()
		return
	}

	target := g.maze.CellAt(req.ToX, req.ToZ)
	if g.maze.IsWall(target) {
		g.Unlock()
		return
	}

	p.X, p.Z = req.ToX, req.ToZ
	g.version++
	if target == g.maze.Exit() {
		p.Escaped = true
	}
	done := g.allEscaped()
	g.Unlock()

	if done {
		g.Stop()
		return
	}
	g.spawnBroadcast(false)
}

// spawnBroadcast launches a live-state broadcast, unless shutdown has
// already begun and the state channels are about to close.
func (g *Game) spawnBroadcast(withMaze bool) {
	g.Lock()
	if g.stopped {
		g.Unlock()
		return
	}
	g.Wg.Add(1)
	g.Unlock()
	go g.broadcastState(withMaze, false)
}

func (g *Game) allEscaped() bool {
	for _, p := range g.players {
		if !p.Escaped {
			return false
		}
	}
	return true
}

// broadcastState serializes the current round state and pushes it to the
// live channel, or to EndChan for the closing frame.
func (g *Game) broadcastState(withMaze, ended bool) {
	defer g.Wg.Done()

	msg := g.snapshot(withMaze, ended)
	payload, err := msg.marshal()
	if err != nil {
		return
	}

	if ended {
		g.EndChan <- payload
	} else {
		g.StateChan <- payload
	}
}

func (g *Game) snapshot(withMaze, ended bool) *StateMessage {
	g.RLock()
	defer g.RUnlock()

	msg := &StateMessage{Version: g.version, Ended: ended}
	for _, p := range g.players {
		msg.Players = append(msg.Players, PlayerState{
			ID: p.ID, X: p.X, Z: p.Z, Escaped: p.Escaped,
		})
	}
	if withMaze {
		snap := g.maze.Snapshot()
		msg.Maze = &snap
	}
	return msg
}

// spawnCells picks an open cell near each corner, walking inward along the
// diagonal until one is found. Order: NW, SE, NE, SW, so two players start
// opposite each other.
func spawnCells(m *maze.Maze, n int) []maze.Point {
	w, h := m.Width(), m.Height()
	corners := []struct {
		start maze.Point
		step  maze.Point
	}{
		{maze.Point{X: 0, Y: 0}, maze.Point{X: 1, Y: 1}},
		{maze.Point{X: w - 1, Y: h - 1}, maze.Point{X: -1, Y: -1}},
		{maze.Point{X: w - 1, Y: 0}, maze.Point{X: -1, Y: 1}},
		{maze.Point{X: 0, Y: h - 1}, maze.Point{X: 1, Y: -1}},
	}

	cells := make([]maze.Point, 0, n)
	for i := 0; i < n; i++ {
		c := corners[i%len(corners)]
		p := c.start
		for m.IsWall(p) {
			next := maze.Point{X: p.X + c.step.X, Y: p.Y + c.step.Y}
			if next == p || !withinMaze(m, next) {
				break
			}
			p = next
		}
		if m.IsWall(p) {
			p = m.Exit() // pathological layout; validator keeps this open
		}
		cells = append(cells, p)
	}
	return cells
}

func withinMaze(m *maze.Maze, p maze.Point) bool {
	return p.X >= 0 && p.X < m.Width() && p.Y >= 0 && p.Y < m.Height()
}

// cellCenter maps a grid cell to the world coordinates of its center.
func cellCenter(m *maze.Maze, p maze.Point) (float64, float64) {
	return (float64(p.X) + 0.5) * m.CellSize(), (float64(p.Y) + 0.5) * m.CellSize()
}
