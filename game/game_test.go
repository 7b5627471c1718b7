package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaibhavshukla06/Labyrnith-Survival/maze"
)

func testMaze(t *testing.T) *maze.Maze {
	t.Helper()
	m, err := maze.New(maze.Config{
		Width:         10,
		Height:        10,
		CellSize:      2,
		ShiftInterval: time.Hour, // keep the layout still unless a test wants shifts
		Seed:          42,
	})
	require.NoError(t, err)
	return m
}

func TestNewValidatesPlayers(t *testing.T) {
	m := testMaze(t)

	_, err := New(m, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	five := make([]uuid.UUID, 5)
	for i := range five {
		five[i] = uuid.New()
	}
	_, err = New(m, five)
	assert.ErrorIs(t, err, ErrTooManyPlayers)

	_, err = New(nil, []uuid.UUID{uuid.New(), uuid.New()})
	assert.ErrorIs(t, err, ErrNilMaze)
}

func TestNewSpawnsPlayersOnOpenCells(t *testing.T) {
	m := testMaze(t)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	g, err := New(m, ids)
	require.NoError(t, err)

	seen := make(map[maze.Point]int)
	for _, id := range ids {
		p := g.players[id]
		cell := m.CellAt(p.X, p.Z)
		assert.False(t, m.IsWall(cell), "player %s spawned inside a wall", id)
		seen[cell]++
	}
	assert.GreaterOrEqual(t, len(seen), 2, "players should not all stack on one cell")
}

func TestMoveValidation(t *testing.T) {
	m := testMaze(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	g, err := New(m, ids)
	require.NoError(t, err)

	mover := g.players[ids[0]]
	startCell := m.CellAt(mover.X, mover.Z)

	// Find an open neighbor and a walled neighbor of the spawn cell.
	var open, walled *maze.Point
	for _, d := range []maze.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
		n := maze.Point{X: startCell.X + d.X, Y: startCell.Y + d.Y}
		if m.IsWall(n) {
			if walled == nil {
				q := n
				walled = &q
			}
		} else if open == nil {
			q := n
			open = &q
		}
	}
	require.NotNil(t, open, "spawn cell has no open neighbor")

	center := func(p maze.Point) (float64, float64) {
		return (float64(p.X) + 0.5) * m.CellSize(), (float64(p.Y) + 0.5) * m.CellSize()
	}

	t.Run("rejects moves into walls", func(t *testing.T) {
		if walled == nil {
			t.Skip("no walled neighbor at this spawn")
		}
		tx, tz := center(*walled)
		g.handleMove(ids[0], MoveRequest{FromX: mover.X, FromZ: mover.Z, ToX: tx, ToZ: tz})
		assert.Equal(t, startCell, m.CellAt(mover.X, mover.Z))
	})

	t.Run("rejects stale origin", func(t *testing.T) {
		tx, tz := center(*open)
		fx, fz := center(maze.Point{X: startCell.X + 5, Y: startCell.Y + 5})
		g.handleMove(ids[0], MoveRequest{FromX: fx, FromZ: fz, ToX: tx, ToZ: tz})
		assert.Equal(t, startCell, m.CellAt(mover.X, mover.Z))
	})

	t.Run("rejects unknown players", func(t *testing.T) {
		tx, tz := center(*open)
		g.handleMove(uuid.New(), MoveRequest{ToX: tx, ToZ: tz})
		assert.Equal(t, startCell, m.CellAt(mover.X, mover.Z))
	})

	t.Run("applies a legal move and bumps the version", func(t *testing.T) {
		before := g.version
		tx, tz := center(*open)

		done := make(chan []byte, 1)
		go func() { done <- <-g.StateChan }()

		g.handleMove(ids[0], MoveRequest{FromX: mover.X, FromZ: mover.Z, ToX: tx, ToZ: tz})

		select {
		case payload := <-done:
			var msg StateMessage
			require.NoError(t, json.Unmarshal(payload, &msg))
			assert.Equal(t, before+1, msg.Version)
			assert.Nil(t, msg.Maze, "plain moves should not carry the maze")
		case <-time.After(time.Second):
			t.Fatal("no state broadcast after a legal move")
		}
		assert.Equal(t, *open, m.CellAt(mover.X, mover.Z))
	})
}

func TestReachingExitEscapesAndEndsRound(t *testing.T) {
	m := testMaze(t)
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	g, err := New(m, ids)
	require.NoError(t, err)

	exitX := (float64(m.Exit().X) + 0.5) * m.CellSize()
	exitZ := (float64(m.Exit().Y) + 0.5) * m.CellSize()

	// Drain live broadcasts so moves cannot block, and stand ready on
	// EndChan before the last escape triggers Stop.
	go func() {
		for range g.StateChan {
		}
	}()
	endFrames := make(chan []byte, 1)
	go func() {
		if payload, ok := <-g.EndChan; ok {
			endFrames <- payload
		}
	}()

	for i, id := range ids {
		p := g.players[id]
		g.handleMove(id, MoveRequest{FromX: p.X, FromZ: p.Z, ToX: exitX, ToZ: exitZ})
		assert.True(t, g.players[id].Escaped, "player %d should have escaped", i)
	}

	select {
	case payload := <-endFrames:
		var msg StateMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.True(t, msg.Ended)
		for _, ps := range msg.Players {
			assert.True(t, ps.Escaped)
		}
	case <-time.After(time.Second):
		t.Fatal("round did not end after every player escaped")
	}
}

func TestStopDuringBroadcastStorm(t *testing.T) {
	m := testMaze(t)
	g, err := New(m, []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)

	go g.Start(time.Hour)
	go func() {
		for range g.StateChan {
		}
	}()
	go func() {
		for range g.EndChan {
		}
	}()

	// Flood state requests so a broadcast is usually in flight when Stop
	// closes the channels.
	sent := make(chan struct{})
	go func() {
		defer close(sent)
		defer func() { _ = recover() }() // ActionChan closes during shutdown
		for i := 0; i < 200; i++ {
			g.ActionChan <- Action{Type: StateRequestActionType}
		}
	}()

	time.Sleep(5 * time.Millisecond)
	g.Stop()
	<-sent
}

func TestStartBroadcastsInitialLayoutAndStops(t *testing.T) {
	m := testMaze(t)
	g, err := New(m, []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)

	go g.Start(time.Hour)

	select {
	case payload := <-g.StateChan:
		var msg StateMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		require.NotNil(t, msg.Maze, "initial broadcast must include the maze")
		assert.Equal(t, 10, msg.Maze.Width)
		assert.False(t, msg.Ended)
	case <-time.After(time.Second):
		t.Fatal("no initial broadcast")
	}

	go func() {
		for range g.StateChan {
		}
	}()
	endFrames := make(chan []byte, 1)
	go func() {
		if payload, ok := <-g.EndChan; ok {
			endFrames <- payload
		}
	}()
	g.Stop()

	select {
	case payload := <-endFrames:
		var msg StateMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.True(t, msg.Ended)
	case <-time.After(time.Second):
		t.Fatal("no final broadcast after Stop")
	}
}
