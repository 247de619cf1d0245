// Package demo is a small terminal arena that drives the event bus: input
// and simulation dispatch events, and the frame loop calls Process once
// per tick. It is a caller of the bus's public operations, nothing more.
package demo

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/dshills/nexus/event"
)

// Tick is dispatched once per frame by the driver loop.
type Tick struct {
	Frame uint64
}

// PlayerMoved is dispatched when the player presses a movement key.
type PlayerMoved struct {
	DX, DY int
}

// Damage reports damage dealt to a named target.
type Damage struct {
	Target string
	Amount int
	Source string
}

// EnemySpawned announces a new enemy in the arena.
type EnemySpawned struct {
	Name string
	HP   int
}

// LogLine carries a free-form message for the combat log.
type LogLine struct {
	Text string
}

// ConfigReloaded is dispatched by the config watcher when the config file
// changes on disk.
type ConfigReloaded struct {
	Config Config
}

// Player is the player-controlled entity. Its handlers mutate only its
// own state; the bus guarantees they run sequentially.
type Player struct {
	X, Y  int
	W, H  int
	HP    int
	MaxHP int
	Alive bool
}

// NewPlayer places a player in the middle of a w-by-h arena.
func NewPlayer(w, h, hp int) *Player {
	return &Player{
		X:     w / 2,
		Y:     h / 2,
		W:     w,
		H:     h,
		HP:    hp,
		MaxHP: hp,
		Alive: true,
	}
}

// OnMove applies a movement event, clamped to the arena bounds.
func (p *Player) OnMove(ctx context.Context, m PlayerMoved) error {
	if !p.Alive {
		return nil
	}
	p.X = clamp(p.X+m.DX, 0, p.W-1)
	p.Y = clamp(p.Y+m.DY, 0, p.H-1)
	return nil
}

// OnDamage applies damage addressed to the player.
func (p *Player) OnDamage(ctx context.Context, d Damage) error {
	if d.Target != "player" || !p.Alive {
		return nil
	}
	p.HP -= d.Amount
	if p.HP <= 0 {
		p.HP = 0
		p.Alive = false
	}
	return nil
}

// CombatLog accumulates the most recent messages for rendering.
type CombatLog struct {
	max   int
	lines []string
}

// NewCombatLog creates a log retaining at most max lines.
func NewCombatLog(max int) *CombatLog {
	if max <= 0 {
		max = 10
	}
	return &CombatLog{max: max}
}

func (l *CombatLog) push(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > l.max {
		l.lines = l.lines[len(l.lines)-l.max:]
	}
}

// OnDamage records damage events.
func (l *CombatLog) OnDamage(ctx context.Context, d Damage) error {
	src := d.Source
	if src == "" {
		src = "unknown"
	}
	l.push(fmt.Sprintf("%s hits %s for %d", src, d.Target, d.Amount))
	return nil
}

// OnSpawn records enemy arrivals.
func (l *CombatLog) OnSpawn(ctx context.Context, e EnemySpawned) error {
	l.push(fmt.Sprintf("%s enters the arena (%d hp)", e.Name, e.HP))
	return nil
}

// OnLog records free-form messages.
func (l *CombatLog) OnLog(ctx context.Context, m LogLine) error {
	l.push(m.Text)
	return nil
}

// Lines returns the retained log lines, oldest first.
func (l *CombatLog) Lines() []string {
	return l.lines
}

var enemyNames = []string{"gnarl", "rustjaw", "cogling", "flux wisp", "shardling"}

// Spawner emits enemies and their attacks on a fixed cadence. It only
// emits; it never touches other components directly.
type Spawner struct {
	every  int
	sender *event.Sender
	rng    *rand.Rand

	enemies int
}

// NewSpawner creates a spawner emitting through bus every `every` ticks.
func NewSpawner(bus *event.Bus, every int, seed int64) *Spawner {
	if every <= 0 {
		every = 30
	}
	return &Spawner{
		every:  every,
		sender: event.NewSender(bus, "spawner"),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Enemies returns how many enemies have been spawned so far.
func (s *Spawner) Enemies() int {
	return s.enemies
}

// OnTick spawns an enemy every cadence interval and has one standing
// enemy attack the player each interval in between. Emitted events are
// delivered on the driver's next Process pass.
func (s *Spawner) OnTick(ctx context.Context, t Tick) error {
	if t.Frame == 0 || t.Frame%uint64(s.every) != 0 {
		return nil
	}
	if s.enemies == 0 || s.rng.Intn(2) == 0 {
		name := enemyNames[s.rng.Intn(len(enemyNames))]
		s.enemies++
		return s.sender.Emit(EnemySpawned{Name: name, HP: 5 + s.rng.Intn(10)})
	}
	return s.sender.Emit(Damage{
		Target: "player",
		Amount: 1 + s.rng.Intn(4),
		Source: enemyNames[s.rng.Intn(len(enemyNames))],
	})
}

// OnConfigReloaded picks up a new spawn cadence without restarting.
func (s *Spawner) OnConfigReloaded(ctx context.Context, c ConfigReloaded) error {
	if c.Config.SpawnEvery > 0 {
		s.every = c.Config.SpawnEvery
	}
	return nil
}

// World owns the demo's components and their subscriptions.
type World struct {
	Player  *Player
	Log     *CombatLog
	Spawner *Spawner

	subs *event.SubscriptionSet
}

// NewWorld builds the demo components and registers their handlers on bus.
func NewWorld(bus *event.Bus, cfg Config, seed int64) *World {
	w := &World{
		Player:  NewPlayer(cfg.ArenaWidth, cfg.ArenaHeight, cfg.PlayerHP),
		Log:     NewCombatLog(cfg.LogLines),
		Spawner: NewSpawner(bus, cfg.SpawnEvery, seed),
		subs:    event.NewSubscriptionSet(bus),
	}

	w.subs.Add(event.Subscribe(bus, w.Player, (*Player).OnMove))
	w.subs.Add(event.Subscribe(bus, w.Player, (*Player).OnDamage))
	w.subs.Add(event.Subscribe(bus, w.Log, (*CombatLog).OnDamage))
	w.subs.Add(event.Subscribe(bus, w.Log, (*CombatLog).OnSpawn))
	w.subs.Add(event.Subscribe(bus, w.Log, (*CombatLog).OnLog))
	w.subs.Add(event.Subscribe(bus, w.Spawner, (*Spawner).OnTick))
	w.subs.Add(event.Subscribe(bus, w.Spawner, (*Spawner).OnConfigReloaded))

	return w
}

// Close tears down every subscription the world registered.
func (w *World) Close() {
	w.subs.CancelAll()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
