package composer

import (
	"math"

	"hanzireel/internal/palette"
	"hanzireel/internal/scene"
)

var (
	hookAccent  = palette.MustColor("#e63946")
	glow        = palette.MustColor("#FFEFA0")
	lanternFill = palette.MustColor("#FF9F1C")
	lanternEdge = palette.MustColor("#E76F51")
	panelFill   = palette.MustColor("#264653")
	panelEdge   = palette.MustColor("#2A9D8F")
	factTitle   = palette.MustColor("#FF9F1C")
	leafLight   = palette.MustColor("#83C167")
	leafDark    = palette.MustColor("#67B99A")
	cupFill     = palette.MustColor("#FFBF69")
)

const (
	latinFont    = "Arial"
	cjkFont      = "SimSun"
	outroMessage = "Follow for a new word every day!"
)

func (c *Composer) textWidth() float64 { return c.opts.Frame.Width - 1 }

func (c *Composer) background(s *scene.Scene) error {
	w, h := c.opts.Frame.Width, c.opts.Frame.Height
	sky := scene.Rectangle(w+1, h+1, scene.Filled(c.opts.Sky.At(0), 1))

	clouds := scene.Group()
	for range 15 {
		x := c.uniform(-w/2, w/2)
		y := c.uniform(-h/3, h/2)
		radius := c.uniform(0.5, 2.0)
		opacity := c.uniform(0.1, 0.4)
		clouds.Add(scene.Circle(radius, scene.Filled(palette.White, opacity)).MoveTo(scene.Vec{X: x, Y: y}))
	}

	mountains := scene.Group()
	for i := range 3 {
		base := -h/2 + float64(i)
		peak1 := scene.Vec{X: c.uniform(-2, 0), Y: c.uniform(0, 2)}
		peak2 := scene.Vec{X: c.uniform(0, 2), Y: c.uniform(0, 3)}
		mountains.Add(scene.Polygon(
			scene.Filled(c.opts.Sky.At(i), 0.3-float64(i)*0.05),
			scene.Vec{X: -w/2 - 1, Y: base}, peak1, peak2, scene.Vec{X: w/2 + 1, Y: base},
		))
	}

	s.Add(scene.Group(sky, clouds, mountains))
	return nil
}

func (c *Composer) particles(s *scene.Scene) error {
	w, h := c.opts.Frame.Width, c.opts.Frame.Height
	particles := scene.Group()
	for range 40 {
		x := c.uniform(-w/2, w/2)
		y := c.uniform(-h/2, h/2)
		radius := c.uniform(0.02, 0.1)
		color := c.accent()
		opacity := c.uniform(0.4, 0.9)
		particles.Add(scene.Circle(radius, scene.Filled(color, opacity)).MoveTo(scene.Vec{X: x, Y: y}))
	}

	anims := make([]scene.Animation, 0, 40)
	for _, p := range particles.Children() {
		target := p.Center().Add(scene.Vec{X: c.uniform(-1, 1), Y: c.uniform(-1, 1)})
		anims = append(anims, scene.MoveTo(p, target).
			WithRunTime(c.uniform(5, 15)).
			WithRate(scene.EaseInOutSine))
	}

	s.Add(particles)
	return play(s, 8, anims...)
}

func (c *Composer) geometricDecorations() *scene.Mobject {
	decorations := scene.Group()
	for range 5 {
		x := c.uniform(-4, 4)
		y := c.uniform(0, 3)
		size := c.uniform(0.1, 0.3)
		color := c.accent()
		decorations.Add(scene.Triangle(scene.Filled(color, 0.8)).Scale(size).MoveTo(scene.Vec{X: x, Y: y}))
	}
	for range 7 {
		x := c.uniform(-4, 4)
		y := c.uniform(-1, 4)
		radius := c.uniform(0.1, 0.25)
		color := c.accent()
		decorations.Add(scene.Circle(radius, scene.Filled(color, 0.7)).MoveTo(scene.Vec{X: x, Y: y}))
	}
	return decorations
}

func (c *Composer) hook(s *scene.Scene) error {
	ep := c.opts.Episode
	decorations := c.geometricDecorations()

	line1 := scene.Text(ep.HookLine1, scene.TextStyle{
		Font: latinFont, FontSize: 55, Bold: true, Color: c.text, MaxWidth: c.textWidth(),
	}).ToEdge(c.opts.Frame, scene.Up, 1.2)
	line2 := scene.Text(ep.HookLine2, scene.TextStyle{
		Font: latinFont, FontSize: 42, Color: hookAccent, MaxWidth: c.textWidth(),
	}).NextTo(line1, scene.Down, 0.5)

	steps := []func() error{
		func() error { return play(s, 1.2, scene.FadeIn(decorations, scene.Up.Scale(0.3), 1.1)) },
		func() error { return play(s, 1.0, scene.Write(line1)) },
		func() error { return play(s, 0.8, scene.FadeIn(line2, scene.Up.Scale(0.3), 1)) },
		func() error { return s.Wait(1.5) },
		func() error {
			return play(s, 1.0,
				scene.FadeOut(line1, scene.Up, 1),
				scene.FadeOut(line2, scene.Up, 1),
				scene.FadeOut(decorations, scene.Origin, 0.8),
			)
		},
	}
	return run(steps)
}

func run(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Composer) lantern(s *scene.Scene) (*scene.Mobject, error) {
	outer := scene.Circle(2.8, scene.Filled(glow, 0.2))
	inner := scene.Circle(2.3, scene.Filled(glow, 0.5))
	body := scene.Circle(1.8, scene.Style{
		Fill: lanternFill, FillOpacity: 1,
		Stroke: lanternEdge, StrokeWidth: 4, StrokeOpacity: 0.7,
	})
	word := scene.Text(c.opts.Episode.Character, scene.TextStyle{
		Font: cjkFont, FontSize: 150, Color: c.text,
	})
	group := scene.Group(outer, inner, body, word)

	decorations := scene.Group()
	for i := range 8 {
		angle := float64(i) * math.Pi / 4
		color := c.accent()
		var shape *scene.Mobject
		if i%2 == 0 {
			shape = scene.Circle(0.15, scene.Filled(color, 0.8))
		} else {
			shape = scene.RegularPolygon(3, scene.Filled(color, 0.8)).Scale(0.15)
		}
		decorations.Add(shape.MoveTo(scene.Polar(2.3, angle)))
	}
	group.Add(decorations)
	group.MoveTo(scene.Origin)

	drift := scene.PlayOptions{RunTime: 2.0, Rate: scene.EaseInOutSine}
	err := run([]func() error{
		func() error { return play(s, 1.0, scene.FadeIn(group, scene.Origin, 0.8)) },
		func() error { return s.Play(drift, scene.ShiftBy(group, scene.Up.Scale(0.3))) },
		func() error { return s.Play(drift, scene.ShiftBy(group, scene.Down.Scale(0.3))) },
	})
	return group, err
}

func (c *Composer) wordExplanation(s *scene.Scene) error {
	ep := c.opts.Episode
	lantern, err := c.lantern(s)
	if err != nil {
		return err
	}

	panel := scene.RoundedRectangle(6, 3, 0.5, scene.Style{
		Fill: panelFill, FillOpacity: 0.9,
		Stroke: panelEdge, StrokeWidth: 3, StrokeOpacity: 1,
	}).MoveTo(scene.Down.Scale(3))
	infoStyle := scene.TextStyle{Font: latinFont, FontSize: 40, Color: palette.White, MaxWidth: 5.6}
	pinyin := scene.Text("Pronunciation: "+ep.Pinyin, infoStyle).
		MoveTo(panel.Center().Add(scene.Up.Scale(0.7)))
	meaning := scene.Text("Meaning: "+ep.Translation, infoStyle).
		MoveTo(panel.Center().Add(scene.Down.Scale(0.7)))

	corner := panel.Top().Add(scene.Down.Scale(0.25))
	dot := scene.Circle(0.15, scene.Filled(c.opts.Accent.At(0), 1)).
		MoveTo(corner.Add(scene.Right.Scale(2.5)))
	tri := scene.Triangle(scene.Filled(c.opts.Accent.At(1), 1)).Scale(0.15).
		MoveTo(corner.Add(scene.Right.Scale(2.8)))
	info := scene.Group(panel, pinyin, meaning, dot, tri)

	return run([]func() error{
		func() error { return play(s, 0.8, scene.FadeIn(info, scene.Up.Scale(0.5), 1)) },
		func() error { return s.Wait(2) },
		func() error {
			return play(s, 1.0,
				scene.FadeOut(lantern, scene.Origin, 1.2),
				scene.FadeOut(info, scene.Down.Scale(0.5), 1),
			)
		},
	})
}

func (c *Composer) funFact(s *scene.Scene) error {
	panel := scene.RoundedRectangle(8, 5, 0.5, scene.Style{
		Fill: panelFill, FillOpacity: 0.85,
		Stroke: panelEdge, StrokeWidth: 3, StrokeOpacity: 1,
	})
	center := panel.Center()
	title := scene.Text("FUN FACT", scene.TextStyle{
		Font: latinFont, FontSize: 50, Bold: true, Color: factTitle,
	}).MoveTo(panel.Top().Add(scene.Down.Scale(0.7)))
	fact := scene.Text(c.opts.Episode.FunFact, scene.TextStyle{
		Font: latinFont, FontSize: 40, Color: palette.White, MaxWidth: 7.2,
	}).MoveTo(center)

	below := center.Add(scene.Down.Scale(1.5))
	leaf1 := scene.Ellipse(0.6, 1.3, scene.Filled(leafLight, 0.9)).
		Rotate(math.Pi / 4).
		MoveTo(below.Add(scene.Left.Scale(1.5)))
	leaf2 := scene.Ellipse(0.5, 1.1, scene.Filled(leafDark, 0.9)).
		Rotate(-math.Pi / 5).
		MoveTo(below.Add(scene.Right.Scale(1.5)))
	cupBase := scene.Ellipse(1.5, 0.4, scene.Filled(cupFill, 1).WithStroke(lanternEdge, 2)).
		MoveTo(below)
	cupBody := scene.Arc(0.75, math.Pi, math.Pi, scene.Style{}.WithStroke(lanternEdge, 2)).
		MoveTo(center.Add(scene.Down.Scale(1.3)))

	decorations := scene.Group()
	for i := range 5 {
		x := c.uniform(-3, 3)
		y := c.uniform(-1.5, 0)
		size := c.uniform(0.1, 0.2)
		style := scene.Filled(c.accent(), 0.8)
		var shape *scene.Mobject
		if i%2 == 0 {
			shape = scene.Square(size, style)
		} else {
			shape = scene.Circle(size/2, style)
		}
		decorations.Add(shape.MoveTo(center.Add(scene.Vec{X: x, Y: y})))
	}
	decorations.Add(leaf1, leaf2, cupBase, cupBody)
	group := scene.Group(panel, title, fact, decorations)

	return run([]func() error{
		func() error { return play(s, 1.0, scene.FadeIn(group, scene.Origin, 0.9)) },
		func() error { return s.Wait(3) },
		func() error { return play(s, 1.0, scene.FadeOut(group, scene.Down, 1)) },
	})
}

func (c *Composer) outro(s *scene.Scene) error {
	text := scene.Text(outroMessage, scene.TextStyle{
		Font: latinFont, FontSize: 55, Bold: true, Color: c.text, MaxWidth: c.textWidth(),
	})

	const count, radius = 12, 2.5
	decorations := scene.Group()
	for i := range count {
		angle := float64(i) * 2 * math.Pi / count
		style := scene.Filled(c.opts.Accent.At(i), 0.9)
		var shape *scene.Mobject
		switch i % 3 {
		case 0:
			shape = scene.Circle(0.2, style)
		case 1:
			shape = scene.Triangle(style).Scale(0.2)
		default:
			shape = scene.Square(0.3, style)
		}
		decorations.Add(shape.MoveTo(scene.Polar(radius, angle)))
	}

	return run([]func() error{
		func() error {
			return play(s, 1.5, scene.FadeIn(decorations, scene.Origin, 1.2).WithRate(scene.EaseOutElastic))
		},
		func() error { return play(s, 1.2, scene.Write(text), scene.ScaleBy(decorations, 1.1)) },
		func() error {
			return play(s, 1.5,
				scene.FadeOut(text, scene.Up.Scale(0.5), 1),
				scene.FadeOut(decorations, scene.Origin, 1.5),
			)
		},
	})
}
