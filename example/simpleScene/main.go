// Command simpleScene drops a sphere onto a static plane and prints its
// resting height, exercising World.Step end to end.
package main

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"spook3d"
	"spook3d/body"
)

func main() {
	world := spook3d.New()
	world.Restitution = 0.3
	world.SetLogger(slog.Default())

	ground := body.New(0, body.Plane{Normal: mgl32.Vec3{0, 1, 0}})
	if err := world.Add(ground); err != nil {
		panic(err)
	}

	ball := body.New(1, body.Sphere{Radius: 1})
	ball.SetPosition(mgl32.Vec3{0, 2, 0})
	if err := world.Add(ball); err != nil {
		panic(err)
	}

	world.Events.Subscribe(spook3d.CollisionEnter, func(ev spook3d.Event) {
		fmt.Println("collision enter")
	})

	const h = float32(1.0 / 60.0)
	for i := 0; i < 120; i++ {
		if err := world.Step(h); err != nil {
			panic(err)
		}
	}

	fmt.Printf("ball resting height: %.4f\n", ball.Position().Y())
}
