package stick_test

import (
	"time"

	"github.com/golang/geo/r2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vstick/internal/stick"
	"github.com/san-kum/vstick/internal/surface"
)

var _ = Describe("Poller", func() {
	var (
		t0    time.Time
		frame int
		rec   *surface.Recorder
		s     *stick.Stick
		p     *stick.Poller
		poll  func(down bool, x, y float64)
	)

	BeforeEach(func() {
		t0 = time.Unix(1700000000, 0)
		frame = 0
		rec = surface.NewRecorder(stick.LogicalSize, 1)
		s = stick.New(stick.Options{}, rec, r2.Point{}, stick.WithClock(func() time.Time { return t0 }))
		p = stick.NewPoller(s)
		poll = func(down bool, x, y float64) {
			frame++
			p.Poll(down, stick.MouseEvent(x, y, t0.Add(time.Duration(frame)*20*time.Millisecond)))
		}
	})

	It("ignores a press that starts off the surface even when dragged onto it", func() {
		poll(true, 150, 150)
		Expect(p.Held()).To(BeFalse())

		poll(true, 60, 50)
		poll(true, 50, 50)
		Expect(p.Held()).To(BeFalse())
		Expect(s.Pressed()).To(BeFalse())
		Expect(s.Mode()).To(Equal(stick.Idle))

		poll(false, 50, 50)
		Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 50}))
	})

	It("deflects on a press over the surface and follows the held pointer", func() {
		poll(true, 50, 50)
		Expect(p.Held()).To(BeTrue())
		Expect(s.Mode()).To(Equal(stick.Deflect))

		poll(true, 70, 50)
		Expect(s.DeltaX()).To(BeNumerically("~", 20, 1e-9))
		Expect(s.Direction()).To(Equal(stick.Right))

		// Leaving the surface keeps driving the stick.
		poll(true, 300, 50)
		Expect(p.Held()).To(BeTrue())
		Expect(s.Direction()).To(Equal(stick.Right))
		Expect(s.Offset().Sub(r2.Point{X: 50, Y: 50}).Norm()).To(BeNumerically("<=", 48))
	})

	It("skips frames where the pointer did not move", func() {
		poll(true, 50, 50)
		poll(true, 60, 50)
		clears := rec.Clears

		poll(true, 60, 50)
		poll(true, 60, 50)
		Expect(rec.Clears).To(Equal(clears))
	})

	It("recenters on release", func() {
		poll(true, 50, 50)
		poll(true, 50, 80)
		Expect(s.Direction()).To(Equal(stick.Down))

		poll(false, 50, 80)
		Expect(p.Held()).To(BeFalse())
		Expect(s.Mode()).To(Equal(stick.Idle))
		Expect(s.Offset()).To(Equal(r2.Point{X: 50, Y: 50}))
	})

	It("does nothing for a press without a pointer position", func() {
		p.Poll(true, stick.Event{})
		Expect(p.Held()).To(BeFalse())
		Expect(s.Pressed()).To(BeFalse())
	})
})
