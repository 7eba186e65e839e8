// Command voroviz is an interactive viewer for a voro2d.Container: it drives
// a moving particle population through the container every frame, draws the
// block grid and per-block occupancy, and highlights the nearest particle to
// the mouse cursor via FindVoronoiCell.
package main

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/haldane-labs/voro2d"
	"github.com/haldane-labs/voro2d/config"
)

const (
	windowWidth  = 1080
	panelWidth   = 260
	windowHeight = 800
	margin       = 20
)

func main() {
	if err := config.Init(""); err != nil {
		panic(err)
	}
	cfg := config.Cfg().ToContainerConfig()

	rl.InitWindow(windowWidth, windowHeight, "voroviz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	particleCount := float32(2000)
	seed := int64(1)
	pw := newParticleWorld(cfg, int(particleCount), seed)

	c, err := voro2d.New(cfg)
	if err != nil {
		panic(err)
	}

	plotSize := float32(windowHeight - 2*margin)
	originX := float32(margin)
	originY := float32(margin)
	scaleX := plotSize / float32(cfg.BX-cfg.AX)
	scaleY := plotSize / float32(cfg.BY-cfg.AY)

	toScreen := func(x, y float64) (float32, float32) {
		return originX + float32(x-cfg.AX)*scaleX, originY + float32(y-cfg.AY)*scaleY
	}
	toWorld := func(sx, sy float32) (float64, float64) {
		return cfg.AX + float64((sx-originX)/scaleX), cfg.AY + float64((sy-originY)/scaleY)
	}

	paused := false

	for !rl.WindowShouldClose() {
		if !paused {
			pw.Step(cfg)
		}

		c.Clear()
		c.PutParallel(pw.Points(cfg.Radius), cfg.NumberThread)
		c.PutReconcileOverflow()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawGrid(c, cfg, toScreen, scaleX, scaleY)
		drawParticles(pw, toScreen)

		mx, my := float32(rl.GetMouseX()), float32(rl.GetMouseY())
		if mx >= originX && mx <= originX+plotSize && my >= originY && my <= originY+plotSize {
			qx, qy := toWorld(mx, my)
			if rx, ry, pid, ok := c.FindVoronoiCell(0, qx, qy); ok {
				sx, sy := toScreen(rx, ry)
				rl.DrawCircleLines(int32(sx), int32(sy), 8, rl.Red)
				rl.DrawLine(int32(mx), int32(my), int32(sx), int32(sy), rl.Red)
				rl.DrawText(fmt.Sprintf("nearest id=%d", pid), int32(originX)+10, int32(originY)+plotSize-30, 16, rl.Red)
			}
		}

		drawPanel(&particleCount, &paused, pw, cfg, &seed)

		rl.EndDrawing()
	}
}

func drawGrid(c *voro2d.Container, cfg voro2d.Config, toScreen func(x, y float64) (float32, float32), scaleX, scaleY float32) {
	nx, ny := c.NX(), c.NY()
	boxx, boxy := c.BoxSize()

	for i := 0; i <= nx; i++ {
		x := cfg.AX + float64(i)*boxx
		sx1, sy1 := toScreen(x, cfg.AY)
		sx2, sy2 := toScreen(x, cfg.BY)
		rl.DrawLine(int32(sx1), int32(sy1), int32(sx2), int32(sy2), rl.LightGray)
	}
	for j := 0; j <= ny; j++ {
		y := cfg.AY + float64(j)*boxy
		sx1, sy1 := toScreen(cfg.AX, y)
		sx2, sy2 := toScreen(cfg.BX, y)
		rl.DrawLine(int32(sx1), int32(sy1), int32(sx2), int32(sy2), rl.LightGray)
	}

	halfW := float32(boxx) * scaleX / 2
	halfH := float32(boxy) * scaleY / 2
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			block := j*nx + i
			n := c.Count(block)
			if n == 0 {
				continue
			}
			shade := uint8(clampInt(255-n*20, 40, 255))
			color := rl.Color{R: 255, G: shade, B: shade, A: 90}
			cx := cfg.AX + (float64(i)+0.5)*boxx
			cy := cfg.AY + (float64(j)+0.5)*boxy
			sx, sy := toScreen(cx, cy)
			rl.DrawRectangle(int32(sx-halfW), int32(sy-halfH), int32(2*halfW), int32(2*halfH), color)
		}
	}
}

func drawParticles(pw *particleWorld, toScreen func(x, y float64) (float32, float32)) {
	for _, p := range pw.Points(false) {
		sx, sy := toScreen(p.X, p.Y)
		rl.DrawCircle(int32(sx), int32(sy), 2, rl.Blue)
	}
}

func drawPanel(particleCount *float32, paused *bool, pw *particleWorld, cfg voro2d.Config, seed *int64) {
	panelX := float32(windowHeight)
	panelY := float32(margin)

	rl.DrawText("voroviz controls", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	rl.DrawText("particle count", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newCount := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
		"200", "8000",
		*particleCount, 200, 8000,
	)
	rl.DrawText(fmt.Sprintf("%d", int(*particleCount)), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
	panelY += 35

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reseed") {
		*seed++
		*particleCount = newCount
		*pw = *newParticleWorld(cfg, int(*particleCount), *seed)
	} else {
		*particleCount = newCount
	}

	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, togglePauseLabel(*paused)) {
		*paused = !*paused
	}
}

func togglePauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
