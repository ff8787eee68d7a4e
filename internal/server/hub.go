package server

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"BitwoodRPG/internal/content"
	"BitwoodRPG/internal/game"
)

// ErrRoomBusy is returned when a second client tries to claim a room.
var ErrRoomBusy = errors.New("server: room already has a player")

// Hub owns the live rooms. Each room is single-player: one websocket
// client drives one simulation.
type Hub struct {
	bundle *content.Bundle
	log    zerolog.Logger

	mu    sync.Mutex
	rooms map[string]*roomRunner
}

// NewHub creates a hub over a validated content bundle.
func NewHub(bundle *content.Bundle, log zerolog.Logger) *Hub {
	return &Hub{
		bundle: bundle,
		log:    log,
		rooms:  make(map[string]*roomRunner),
	}
}

// Acquire claims the named room for one client, building and starting
// it on first use.
func (h *Hub) Acquire(roomID string) (*roomRunner, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, live := h.rooms[roomID]; live {
		return nil, ErrRoomBusy
	}
	room, err := h.bundle.BuildRoom(roomID)
	if err != nil {
		return nil, err
	}
	runner := newRoomRunner(room, h.log.With().Str("room", roomID).Logger())
	h.rooms[roomID] = runner
	go runner.run()
	return runner, nil
}

// Release stops the room's simulation and forgets it.
func (h *Hub) Release(roomID string) {
	h.mu.Lock()
	runner, ok := h.rooms[roomID]
	if ok {
		delete(h.rooms, roomID)
	}
	h.mu.Unlock()
	if ok {
		runner.stop()
	}
}

// roomRunner drives one room at a fixed tick rate. Input is sampled
// once at the start of each tick from the input box and is immutable
// for the rest of the tick.
type roomRunner struct {
	room *game.Room
	box  inputBox
	log  zerolog.Logger

	stopOnce sync.Once
	done     chan struct{}
}

func newRoomRunner(room *game.Room, log zerolog.Logger) *roomRunner {
	return &roomRunner{
		room: room,
		log:  log,
		done: make(chan struct{}),
	}
}

func (rr *roomRunner) run() {
	tickInterval := float64(time.Second) / game.SimHz
	ticker := time.NewTicker(time.Duration(tickInterval))
	defer ticker.Stop()
	for {
		select {
		case <-rr.done:
			return
		case <-ticker.C:
			in := rr.box.Take()
			rr.room.Mu.Lock()
			err := rr.room.Step(in, game.Dt)
			rr.room.Mu.Unlock()
			if err != nil {
				// Only reachable through a defect in graph wiring;
				// the session is already closed.
				rr.log.Error().Err(err).Msg("dialogue session aborted")
			}
		}
	}
}

func (rr *roomRunner) stop() {
	rr.stopOnce.Do(func() { close(rr.done) })
}

// BuildFrame snapshots the room into render commands for the client.
func (rr *roomRunner) BuildFrame(viewW, viewH float64) *game.Frame {
	rr.room.Mu.Lock()
	defer rr.room.Mu.Unlock()
	return rr.room.BuildFrame(viewW, viewH)
}

// inputBox collects asynchronous client input for tick-boundary
// consumption: held keys keep their latest state, presses accumulate
// until the next Take.
type inputBox struct {
	mu      sync.Mutex
	held    game.Input
	pressed game.Input
}

func (b *inputBox) SetHeld(up, down, left, right bool) {
	b.mu.Lock()
	b.held.Up, b.held.Down, b.held.Left, b.held.Right = up, down, left, right
	b.mu.Unlock()
}

func (b *inputBox) Press(in game.Input) {
	b.mu.Lock()
	b.pressed.Interact = b.pressed.Interact || in.Interact
	b.pressed.Cancel = b.pressed.Cancel || in.Cancel
	if in.NavDelta != 0 {
		b.pressed.NavDelta = in.NavDelta
	}
	if in.Ordinal != 0 {
		b.pressed.Ordinal = in.Ordinal
	}
	b.mu.Unlock()
}

// Take merges held keys with the presses accumulated since the last
// call, clearing the presses.
func (b *inputBox) Take() game.Input {
	b.mu.Lock()
	defer b.mu.Unlock()
	in := b.pressed
	in.Up, in.Down, in.Left, in.Right = b.held.Up, b.held.Down, b.held.Left, b.held.Right
	b.pressed = game.Input{}
	return in
}
