package stick_test

import (
	"math"
	"time"

	"github.com/golang/geo/r2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vstick/internal/stick"
	"github.com/san-kum/vstick/internal/surface"
)

var _ = Describe("Stick", func() {
	var (
		t0   time.Time
		rec  *surface.Recorder
		s    *stick.Stick
		at   func(ms int) time.Time
		down func(x, y float64) bool
		move func(x, y float64, ms int) bool
	)

	build := func(scale float64) {
		rec = surface.NewRecorder(stick.LogicalSize, scale)
		// A zero viewport keeps the surface at the origin, so client
		// coordinates equal logical ones at scale 1.
		s = stick.New(stick.Options{}, rec, r2.Point{}, stick.WithClock(func() time.Time { return t0 }))
	}

	BeforeEach(func() {
		t0 = time.Unix(1700000000, 0)
		at = func(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }
		down = func(x, y float64) bool { return s.PointerDown(stick.MouseEvent(x, y, t0)) }
		move = func(x, y float64, ms int) bool { return s.PointerMove(stick.MouseEvent(x, y, at(ms))) }
		build(1)
	})

	Describe("construction", func() {
		It("applies defaults and draws a centered stick", func() {
			Expect(rec.Background).To(Equal("white"))
			Expect(rec.Opacity).To(Equal("0.5"))
			Expect(rec.Ops).To(HaveLen(2))
			Expect(rec.Ops[0]).To(Equal(surface.Op{Center: r2.Point{X: 50, Y: 50}, Radius: 48, Color: "red"}))
			Expect(rec.Ops[1]).To(Equal(surface.Op{Center: r2.Point{X: 50, Y: 50}, Radius: 30, Color: "black"}))
			Expect(s.Mode()).To(Equal(stick.Idle))
		})

		It("places the surface at 70%/65% of the viewport", func() {
			r := surface.NewRecorder(stick.LogicalSize, 1)
			stick.New(stick.Options{}, r, r2.Point{X: 1000, Y: 800})
			Expect(r.Position()).To(Equal(r2.Point{X: 700, Y: 520}))
		})
	})

	Describe("pointer down", func() {
		It("enters deflection mode at the center", func() {
			Expect(down(50, 50)).To(BeTrue())
			Expect(s.Mode()).To(Equal(stick.Deflect))
			Expect(s.DeltaX()).To(BeZero())
			Expect(s.DeltaY()).To(BeZero())
			Expect(s.Direction()).To(Equal(stick.Static))
		})

		It("enters deflection mode just inside the boundary", func() {
			down(50+47.9, 50)
			Expect(s.Mode()).To(Equal(stick.Deflect))
		})

		It("enters reposition mode on or beyond the boundary", func() {
			down(50+48, 50)
			Expect(s.Mode()).To(Equal(stick.Reposition))
			Expect(s.DeltaX()).To(BeZero())
			Expect(s.DeltaY()).To(BeZero())
		})

		It("prefers the first touch over the mouse position", func() {
			ev := stick.Event{
				Touches: []r2.Point{{X: 60, Y: 40}, {X: 0, Y: 0}},
				Mouse:   &r2.Point{X: 5, Y: 5},
				Time:    t0,
			}
			Expect(s.PointerDown(ev)).To(BeTrue())
			Expect(s.Offset()).To(Equal(r2.Point{X: 60, Y: 40}))
		})

		It("ignores events without any pointer position", func() {
			Expect(s.PointerDown(stick.Event{Touches: []r2.Point{}})).To(BeFalse())
			Expect(s.Pressed()).To(BeFalse())
			Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 50}))

			_, err := s.Position(stick.Event{})
			Expect(err).To(MatchError(stick.ErrNoPointer))
		})

		It("ignores pointers with non-finite coordinates", func() {
			Expect(s.PointerDown(stick.MouseEvent(math.NaN(), 50, t0))).To(BeFalse())
			Expect(s.Pressed()).To(BeFalse())
			Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 50}))

			_, err := s.Position(stick.Event{Touches: []r2.Point{{X: 10, Y: math.Inf(-1)}}})
			Expect(err).To(MatchError(stick.ErrNonFinite))
		})

		It("ignores events on a surface with no rendered size", func() {
			flat := surface.NewRecorder(stick.LogicalSize, 0)
			fs := stick.New(stick.Options{}, flat, r2.Point{})
			Expect(fs.PointerDown(stick.MouseEvent(1, 1, t0))).To(BeFalse())
			Expect(fs.Pressed()).To(BeFalse())

			_, err := fs.Position(stick.MouseEvent(1, 1, t0))
			Expect(err).To(MatchError(stick.ErrDegenerateSurface))
		})
	})

	Describe("pointer move", func() {
		It("is ignored when no pointer is held", func() {
			Expect(move(70, 50, 20)).To(BeFalse())
			Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 50}))
		})

		It("deflects the stick within the boundary", func() {
			down(50, 50)
			Expect(move(60, 45, 20)).To(BeTrue())
			Expect(s.DeltaX()).To(BeNumerically("~", 10, 1e-9))
			Expect(s.DeltaY()).To(BeNumerically("~", -5, 1e-9))
			Expect(s.Direction()).To(Equal(stick.Right))

			knob, _ := rec.Knob()
			Expect(knob.Center).To(Equal(r2.Point{X: 60, Y: 45}))
		})

		It("clamps far displacements onto the boundary", func() {
			down(50, 50)
			move(150, 50, 20)
			Expect(s.Offset().X).To(BeNumerically("~", 78, 1e-9))
			Expect(s.Offset().Y).To(BeNumerically("~", 48, 1e-9))
			Expect(s.DeltaX()).To(BeNumerically(">", 0))
			Expect(s.DeltaY()).To(BeNumerically("~", 0, 2))
			Expect(s.Direction()).To(Equal(stick.Right))
		})

		It("keeps every clamped offset inside the boundary", func() {
			down(50, 50)
			center := r2.Point{X: 50, Y: 50}
			ms := 20
			for deg := 0; deg < 360; deg += 15 {
				for _, mag := range []float64{10, 47, 48, 49, 100, 1e4} {
					rad := float64(deg) * math.Pi / 180
					move(50+mag*math.Cos(rad), 50+mag*math.Sin(rad), ms)
					ms += 10
					Expect(s.Offset().Sub(center).Norm()).To(BeNumerically("<=", 48+1e-9))
				}
			}
		})

		It("keeps the last offset when a move has non-finite coordinates", func() {
			down(50, 50)
			Expect(move(60, 45, 20)).To(BeTrue())
			Expect(move(math.Inf(1), 50, 40)).To(BeFalse())
			Expect(move(60, math.NaN(), 60)).To(BeFalse())
			Expect(s.Offset()).To(Equal(r2.Point{X: 60, Y: 45}))
			Expect(s.Direction()).To(Equal(stick.Right))
		})

		It("drops events that arrive within the throttle interval", func() {
			down(50, 50)
			Expect(move(60, 50, 20)).To(BeTrue())
			Expect(move(40, 50, 25)).To(BeFalse())
			Expect(s.Offset()).To(Equal(r2.Point{X: 60, Y: 50}))
			Expect(move(50, 70, 32)).To(BeTrue())
			Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 70}))
			Expect(s.Direction()).To(Equal(stick.Down))
		})

		It("drops moves within the first interval after construction", func() {
			down(50, 50)
			Expect(move(60, 50, 5)).To(BeFalse())
		})

		It("uses the stick clock for events without a timestamp", func() {
			down(50, 50)
			t0 = t0.Add(time.Second)
			Expect(s.PointerMove(stick.MouseEvent(55, 50, time.Time{}))).To(BeTrue())
			Expect(s.DeltaX()).To(BeNumerically("~", 5, 1e-9))
		})

		It("drags the control in reposition mode without deflecting", func() {
			down(2, 2)
			Expect(s.Mode()).To(Equal(stick.Reposition))
			Expect(move(12, 7, 20)).To(BeTrue())
			Expect(rec.Position()).To(Equal(r2.Point{X: 10, Y: 5}))
			Expect(s.DeltaX()).To(BeZero())
			Expect(s.DeltaY()).To(BeZero())
			Expect(s.Direction()).To(Equal(stick.Static))

			// The pointer is back over the grab point: no further motion.
			move(12, 7, 40)
			Expect(rec.Position()).To(Equal(r2.Point{X: 10, Y: 5}))
		})
	})

	Describe("scaled rendering", func() {
		BeforeEach(func() { build(2) })

		It("converts viewport pixels to logical units", func() {
			p, err := s.Position(stick.MouseEvent(100, 60, t0))
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(r2.Point{X: 50, Y: 30}))
		})

		It("moves the control by rendered pixels when repositioning", func() {
			down(4, 4)
			move(24, 14, 20)
			Expect(rec.Position()).To(Equal(r2.Point{X: 20, Y: 10}))
		})
	})

	Describe("pointer up", func() {
		It("recenters after any gesture", func() {
			down(50, 50)
			move(150, -30, 20)
			Expect(s.PointerUp(stick.Event{})).To(BeTrue())
			Expect(s.Pressed()).To(BeFalse())
			Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 50}))
			Expect(s.Mode()).To(Equal(stick.Idle))

			knob, _ := rec.Knob()
			Expect(knob.Center).To(Equal(r2.Point{X: 50, Y: 50}))
		})

		It("leaves reposition mode", func() {
			down(0, 0)
			s.PointerUp(stick.Event{})
			Expect(s.Mode()).To(Equal(stick.Idle))
			Expect(s.Read()).To(Equal(stick.Reading{Direction: stick.Static, Mode: stick.Idle}))
		})

		It("is also reached through cancel", func() {
			down(60, 60)
			Expect(s.PointerCancel(stick.Event{})).To(BeTrue())
			Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 50}))
		})
	})

	It("honors custom options", func() {
		r := surface.NewRecorder(stick.LogicalSize, 1)
		stick.New(stick.Options{StickColor: stick.String("blue"), StickBg: stick.String("")}, r, r2.Point{})
		Expect(r.Background).To(Equal("white"))
		knob, _ := r.Knob()
		Expect(knob.Color).To(Equal("blue"))
	})
})
