package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/otterblade/combat"
	"github.com/milk9111/otterblade/common"
	"github.com/milk9111/otterblade/content"
	"github.com/milk9111/otterblade/perception"
	"github.com/milk9111/otterblade/script"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	floorY      = 600.0
	gravity     = 1800.0
	playerSpeed = 260.0
	jumpSpeed   = 620.0

	tickDelta = 1.0 / 60.0
)

// logSink prints engine notifications; a shipped build would route these
// to the audio manager and cinematics player.
type logSink struct{}

func (logSink) PlaySound(id string) { log.Printf("arena: sfx %s", id) }

func (logSink) OnPhaseChanged(phase int) { log.Printf("arena: boss entered phase %d", phase) }

func (logSink) OnBossDefeated() { log.Printf("arena: boss defeated") }

type Game struct {
	bossFile string
	deps     content.BuildDeps

	bus   *perception.Bus
	boss  *combat.Boss
	enemy *combat.Enemy

	player     combat.Target
	space      *cp.Space
	playerBody *cp.Body

	watcher *content.Watcher
	face    ebtext.Face

	hitCooldown float64
}

func NewGame(bossFile, enemyFile string) (*Game, error) {
	g := &Game{
		bossFile: bossFile,
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
	}

	g.bus = perception.NewBus(32)
	g.deps = content.BuildDeps{
		Bus:     g.bus,
		Effects: logSink{},
		Scripts: script.NewRuntime(),
	}

	if err := g.loadBoss(); err != nil {
		return nil, err
	}

	if enemyFile != "" {
		spec, err := content.LoadEnemySpec(enemyFile)
		if err != nil {
			return nil, err
		}
		g.enemy = content.BuildEnemy(spec, common.Vec2{X: 300, Y: floorY - 20}, g.deps)
		g.enemy.SetTarget(&g.player)
	}

	g.player = combat.Target{ID: "player", Pos: common.Vec2{X: 200, Y: floorY - 30}, HP: 100, MaxHP: 100}
	g.buildSpace()

	if w, err := content.NewWatcher("content/bosses", "content/scripts"); err == nil {
		g.watcher = w
	} else {
		log.Printf("arena: hot reload disabled: %v", err)
	}

	return g, nil
}

func (g *Game) loadBoss() error {
	spec, err := content.LoadBossSpec(g.bossFile)
	if err != nil {
		return err
	}
	boss, err := content.BuildBoss(spec, common.Vec2{X: 950, Y: floorY - 60}, g.deps)
	if err != nil {
		return err
	}
	boss.SetTarget(&g.player)
	if g.boss != nil {
		g.bus.Unregister(g.boss)
	}
	g.boss = boss
	return nil
}

// buildSpace sets up the Chipmunk space that owns the player's body and
// the arena bounds. The engine never sees any of this; it only consumes
// position snapshots and produces descriptors.
func (g *Game) buildSpace() {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{Y: gravity})

	walls := []struct{ ax, ay, bx, by float64 }{
		{0, floorY, baseWidth, floorY},
		{0, 0, 0, floorY},
		{baseWidth, 0, baseWidth, floorY},
	}
	for _, w := range walls {
		seg := cp.NewSegment(space.StaticBody, cp.Vector{X: w.ax, Y: w.ay}, cp.Vector{X: w.bx, Y: w.by}, 2)
		seg.SetFriction(0.9)
		space.AddShape(seg)
	}

	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: g.player.Pos.X, Y: g.player.Pos.Y})
	shape := cp.NewBox(body, 28, 52, 0)
	shape.SetFriction(0.9)
	space.AddBody(body)
	space.AddShape(shape)

	g.space = space
	g.playerBody = body
}

func (g *Game) Update() error {
	g.handleReload()
	g.movePlayer()

	g.space.Step(tickDelta)
	p := g.playerBody.Position()
	g.player.Pos = common.Vec2{X: p.X, Y: p.Y}

	// Engine tick: perception and timers first, then attack selection.
	g.bus.Update(tickDelta)
	g.boss.Update(tickDelta)
	g.boss.SelectAndExecuteAttack()
	if g.enemy != nil {
		g.enemy.Update(tickDelta)
		g.enemy.Pos.X += g.enemy.MoveIntent * tickDelta
	}

	g.moveProjectiles()
	g.resolveHits()

	return nil
}

func (g *Game) handleReload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("arena: watcher: %v", err)
		}
	case name, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		log.Printf("arena: %s changed, rebuilding boss", name)
		// Rebuild against a fresh script cache so edited scripts recompile.
		g.deps.Scripts = script.NewRuntime()
		if err := g.loadBoss(); err != nil {
			log.Printf("arena: reload failed: %v", err)
		}
	default:
	}
}

func (g *Game) movePlayer() {
	vel := g.playerBody.Velocity()
	vx := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		vx -= playerSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		vx += playerSpeed
	}

	vy := vel.Y
	onGround := g.playerBody.Position().Y >= floorY-28
	if ebiten.IsKeyPressed(ebiten.KeySpace) && onGround {
		vy = -jumpSpeed
		g.bus.Emit(g.player.Pos, 0.4, perception.SoundJump, g.player.ID)
	}
	g.playerBody.SetVelocity(vx, vy)

	if vx != 0 && onGround {
		g.bus.Emit(g.player.Pos, 0.3, perception.SoundFootstep, g.player.ID)
	}

	// Z swings the otterblade at whatever is in reach.
	if ebiten.IsKeyPressed(ebiten.KeyZ) && g.hitCooldown <= 0 {
		g.hitCooldown = 0.3
		g.bus.Emit(g.player.Pos, 0.7, perception.SoundAttack, g.player.ID)
		if common.Dist(g.player.Pos, g.boss.Pos) < 90 {
			g.boss.TakeDamage(25)
		}
		if g.enemy != nil && common.Dist(g.player.Pos, g.enemy.Pos) < 90 {
			g.enemy.TakeDamage(20)
		}
	}
	if g.hitCooldown > 0 {
		g.hitCooldown -= tickDelta
	}
}

// moveProjectiles advances projectile descriptors; motion is the arena's
// job, the engine only owns spawn and expiry.
func (g *Game) moveProjectiles() {
	for i := range g.boss.Projectiles {
		pr := &g.boss.Projectiles[i]
		pr.Pos = pr.Pos.Add(pr.Vel.Scale(tickDelta))
	}
}

// resolveHits tests the player's body against the boss's descriptors
// using Chipmunk bounding boxes and feeds damage back to the snapshot.
func (g *Game) resolveHits() {
	if g.player.HP <= 0 {
		return
	}

	playerBB := cp.NewBBForExtents(cp.Vector{X: g.player.Pos.X, Y: g.player.Pos.Y}, 14, 26)

	for i := range g.boss.Projectiles {
		pr := &g.boss.Projectiles[i]
		bb := cp.NewBBForExtents(cp.Vector{X: pr.Pos.X, Y: pr.Pos.Y}, 8, 8)
		if playerBB.Intersects(bb) {
			g.player.HP -= pr.Damage
			pr.Lifetime = 0 // expires on the engine's next prune
		}
	}

	for _, hz := range g.boss.HazardZones {
		bb := cp.BB{L: hz.Bounds.X, B: hz.Bounds.Y, R: hz.Bounds.X + hz.Bounds.Width, T: hz.Bounds.Y + hz.Bounds.Height}
		if playerBB.Intersects(bb) {
			// Periodic contact damage, once per tick while inside.
			g.player.HP -= hz.Damage / 6
		}
	}

	if g.player.HP < 0 {
		g.player.HP = 0
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x12, 0x1a, 0x22, 0xff})

	// floor
	vector.DrawFilledRect(screen, 0, floorY, baseWidth, baseHeight-floorY, color.RGBA{0x2a, 0x3a, 0x2f, 0xff}, false)

	// hazards
	for _, hz := range g.boss.HazardZones {
		vector.DrawFilledRect(screen, float32(hz.Bounds.X), float32(hz.Bounds.Y), float32(hz.Bounds.Width), float32(hz.Bounds.Height), color.RGBA{0x4f, 0x9f, 0xd0, 0x60}, false)
	}

	// projectiles
	for _, pr := range g.boss.Projectiles {
		vector.DrawFilledCircle(screen, float32(pr.Pos.X), float32(pr.Pos.Y), 8, color.RGBA{0xd0, 0xe8, 0xff, 0xff}, false)
	}

	// boss
	bossColor := color.RGBA{0x8f, 0x4f, 0xd0, 0xff}
	if g.boss.DamageFlash > 0 {
		bossColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	if g.boss.Invulnerable {
		bossColor = color.RGBA{0xd0, 0xd0, 0x60, 0xff}
	}
	vector.DrawFilledRect(screen, float32(g.boss.Pos.X-30), float32(g.boss.Pos.Y-60), 60, 120, bossColor, false)
	g.drawLabel(screen, g.boss.Pos.X-30, g.boss.Pos.Y-70, g.boss.CurrentAnimation)

	// enemy
	if g.enemy != nil && !g.enemy.Dead {
		vector.DrawFilledRect(screen, float32(g.enemy.Pos.X-14), float32(g.enemy.Pos.Y-20), 28, 40, color.RGBA{0xb0, 0x60, 0x40, 0xff}, false)
		g.drawLabel(screen, g.enemy.Pos.X-14, g.enemy.Pos.Y-32, string(g.enemy.State))
	}

	// player
	vector.DrawFilledRect(screen, float32(g.player.Pos.X-14), float32(g.player.Pos.Y-26), 28, 52, color.RGBA{0x50, 0xa0, 0x70, 0xff}, false)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"boss %s  phase %d  hp %d/%d  aggression %.2f  alert %.2f\nplayer hp %d  FPS %.1f",
		g.boss.Name, g.boss.Phase, g.boss.HP, g.boss.MaxHP,
		g.boss.LastAggression, g.boss.Perception.Alert,
		g.player.HP, ebiten.ActualFPS(),
	))
}

func (g *Game) drawLabel(screen *ebiten.Image, x, y float64, label string) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	ebtext.Draw(screen, label, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
