// Package tanks plugs the arena simulation into the platform: it loads the
// configuration and arena, feeds player input into the world each tick,
// keeps score and draws the world into a character screen.
package tanks

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arenas"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
	"github.com/vovakirdan/tui-tanks/internal/logging"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
)

// Outcome is how a round ended.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeCleared   Outcome = "cleared"   // every target destroyed
	OutcomeDestroyed Outcome = "destroyed" // player tank destroyed
	OutcomeTimeout   Outcome = "timeout"   // time limit reached
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives kernel debug output; discarded unless set.
var logger = logging.Discard()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to every new world.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game implements a tank arena round.
type Game struct {
	arena    arenas.Arena // as loaded
	resolved arenas.Arena // map size filled from config

	cfg        config.TanksConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	dt         time.Duration

	world      *sim.World
	playerID   sim.EntityID
	playerTank sim.EntityID
	targets    map[sim.EntityID]bool

	state     string
	outcome   Outcome
	score     int
	kills     int
	shots     int
	timeLimit time.Duration
	camera    sim.Vector
	last      sim.StepResult
}

// New creates a round on the given arena.
func New(a arenas.Arena) *Game {
	return &Game{arena: a}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID(g.arena.ID)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tanks: " + g.arena.Title
}

// GameID is the registry and score ledger id of an arena.
func GameID(arenaID string) string {
	return "tanks-" + arenaID
}

// Reset initializes or restarts the round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if runtime.TickRate <= 0 {
		g.runtime.TickRate = 60
	}
	g.dt = time.Second / time.Duration(g.runtime.TickRate)

	// Load game config
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultTanksConfig()
	}

	// Apply difficulty preset if set
	config.ApplyTanksPreset(&cfg, difficultyPreset)

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.resolved = g.arena.WithDefaults(cfg.Map.Width, cfg.Map.Height)
	if err := g.resolved.Validate(); err != nil {
		logger.Warn("arena does not fit the map", "arena", g.arena.ID, "error", err)
	}

	g.world = sim.NewWorld(RulesFrom(cfg, g.resolved), sim.WithLogger(logger))
	player := g.world.SpawnTank(spawnSpec(g.resolved.Player))
	g.playerTank = player.ID()
	g.playerID = g.world.AddPlayer(player.ID()).ID()

	g.targets = make(map[sim.EntityID]bool, len(g.resolved.Targets))
	for _, s := range g.resolved.Targets {
		g.targets[g.world.SpawnTank(spawnSpec(s)).ID()] = true
	}

	g.state = StatePlaying
	g.outcome = OutcomeNone
	g.score = 0
	g.kills = 0
	g.shots = 0
	g.timeLimit = g.difficulty.TimeLimit(g.resolved.TimeLimit())
	g.camera = sim.Vector{}
	g.last = sim.StepResult{}
}

// RulesFrom builds world rules from the config and a resolved arena.
func RulesFrom(cfg config.TanksConfig, a arenas.Arena) sim.Rules {
	return sim.Rules{
		MapWidth:      a.Width,
		MapHeight:     a.Height,
		TankSize:      sim.NewDimension(cfg.Tank.Width, cfg.Tank.Height),
		BarrelSize:    sim.NewDimension(cfg.Barrel.Width, cfg.Barrel.Height),
		BulletSize:    sim.NewDimension(cfg.Bullet.Width, cfg.Bullet.Height),
		TankSpeed:     cfg.Tank.Speed,
		RotationSpeed: cfg.Tank.RotationSpeed,
		AimSpeed:      cfg.Barrel.AimSpeed,
		BulletSpeed:   cfg.Bullet.Speed,
		Reload:        cfg.Gameplay.Reload(),
		TankHealth:    cfg.Tank.Health,
		AnchorBarrels: cfg.Gameplay.AnchorBarrels,
	}
}

func spawnSpec(s arenas.Spawn) sim.TankSpec {
	return sim.TankSpec{
		Position: sim.Vec(s.X, s.Y),
		Rotation: s.Rotation,
		Color:    s.Color,
	}
}

var actionKeys = []struct {
	action core.Action
	key    sim.Key
}{
	{core.ActionUp, sim.KeyForward},
	{core.ActionDown, sim.KeyBackward},
	{core.ActionLeft, sim.KeyRotateLeft},
	{core.ActionRight, sim.KeyRotateRight},
	{core.ActionAimLeft, sim.KeyAimLeft},
	{core.ActionAimRight, sim.KeyAimRight},
	{core.ActionFire, sim.KeyFire},
}

// KeysFromFrame maps platform actions onto tank keys.
func KeysFromFrame(in core.InputFrame) sim.KeySet {
	var keys sim.KeySet
	for _, ak := range actionKeys {
		if in.Has(ak.action) {
			keys = keys.With(ak.key)
		}
	}
	return keys
}

// FrameFromKeys is the inverse of KeysFromFrame, for driving a round
// without a terminal.
func FrameFromKeys(keys sim.KeySet) core.InputFrame {
	frame := core.NewInputFrame()
	for _, ak := range actionKeys {
		if keys.Has(ak.key) {
			frame.Set(ak.action)
		}
	}
	return frame
}

// Step advances the round by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	// Handle restart
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		switch g.state {
		case StatePaused:
			g.state = StatePlaying
		case StatePlaying:
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	if p, ok := g.world.Player(g.playerID); ok {
		p.Keys = KeysFromFrame(in)
	}

	res := g.world.Step(g.dt)
	g.last = res
	g.shots += countShots(res.Shots, g.playerTank)

	for _, k := range res.Kills {
		switch {
		case k.TankID == g.playerTank:
			g.finish(OutcomeDestroyed)
		case g.targets[k.TankID]:
			delete(g.targets, k.TankID)
			g.kills++
			g.score += g.cfg.Gameplay.KillPoints
			logger.Debug("target destroyed", "arena", g.arena.ID, "tank", k.TankID, "tick", res.Tick)
		}
	}

	if g.difficulty.IsEnabled() {
		g.world.SetReload(g.difficulty.Reload(g.cfg.Gameplay.Reload(), g.kills, res.Tick))
	}

	switch {
	case g.state == StateGameOver:
	case len(g.targets) == 0:
		g.score += g.timeBonus()
		g.finish(OutcomeCleared)
	case g.timeLimit > 0 && g.world.Now() >= g.timeLimit:
		g.finish(OutcomeTimeout)
	}

	return core.StepResult{State: g.State()}
}

func countShots(shots []sim.Shot, tankID sim.EntityID) int {
	n := 0
	for _, s := range shots {
		if s.TankID == tankID {
			n++
		}
	}
	return n
}

// timeBonus pays for every whole second left on the clock.
func (g *Game) timeBonus() int {
	if g.timeLimit <= 0 {
		return 0
	}
	left := g.timeLimit - g.world.Now()
	if left <= 0 {
		return 0
	}
	return int(left/time.Second) * g.cfg.Gameplay.TimeBonus
}

func (g *Game) finish(o Outcome) {
	if g.state == StateGameOver {
		return
	}
	g.state = StateGameOver
	g.outcome = o
	logger.Info("round over", "arena", g.arena.ID, "outcome", o, "score", g.score, "ticks", g.world.Tick())
}

// Resize adopts a new screen size without restarting the round.
// The camera follows on the next Render.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
}

// State returns the current game state for the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}

// Stats returns the round summary so far.
func (g *Game) Stats() core.RunStats {
	return core.RunStats{
		Kills:   g.kills,
		Shots:   g.shots,
		Ticks:   g.world.Tick(),
		Outcome: string(g.outcome),
	}
}

// World exposes the simulation for tracing and tests.
func (g *Game) World() *sim.World {
	return g.world
}

// LastStep returns the kernel result of the most recent tick.
func (g *Game) LastStep() sim.StepResult {
	return g.last
}

// TargetsLeft returns the number of targets still alive.
func (g *Game) TargetsLeft() int {
	return len(g.targets)
}

// Register every embedded arena with the registry
func init() {
	for _, a := range arenas.MustEmbedded() {
		registry.Register(registry.GameInfo{
			ID:          GameID(a.ID),
			Title:       "Tanks: " + a.Title,
			Description: a.Description,
		}, func() registry.Game {
			return New(a)
		})
	}
}
