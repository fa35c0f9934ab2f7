package nav_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/backdrop/internal/nav"
)

var _ = Describe("Resolve", func() {
	cfg := nav.Config{Threshold: 50, Offset: 100, Margin: 80}
	sections := []nav.Bounds{
		{ID: "A", Top: 0, Height: 500},
		{ID: "B", Top: 500, Height: 500},
		{ID: "C", Top: 1000, Height: 500},
	}

	DescribeTable("active section",
		func(y float64, expected string) {
			Expect(nav.Resolve(y, sections, cfg, "A").Active).To(Equal(expected))
		},
		Entry("top of page", 0.0, "A"),
		Entry("inside A", 40.0, "A"),
		Entry("B starts 100 early", 400.0, "B"),
		Entry("inside B", 550.0, "B"),
		Entry("inside C", 1200.0, "C"),
		Entry("past the last section", 5000.0, "A"),
	)

	DescribeTable("scrolled flag",
		func(y float64, expected bool) {
			Expect(nav.Resolve(y, sections, cfg, "A").Scrolled).To(Equal(expected))
		},
		Entry("below threshold", 49.9, false),
		Entry("at threshold", 50.0, true),
		Entry("above threshold", 900.0, true),
	)

	It("lets the last overlapping section win", func() {
		overlapping := []nav.Bounds{
			{ID: "A", Top: 0, Height: 1000},
			{ID: "B", Top: 300, Height: 200},
		}
		Expect(nav.Resolve(250, overlapping, cfg, "A").Active).To(Equal("B"))
		Expect(nav.Resolve(450, overlapping, cfg, "A").Active).To(Equal("A"))
	})
})

var _ = Describe("Tracker", func() {
	var (
		tracker *nav.Tracker
		page    *nav.VirtualPage
	)

	BeforeEach(func() {
		layout := nav.Stack(nav.DefaultSections, []float64{800, 600, 900, 1200, 700, 600})
		page = nav.NewVirtualPage(layout, 700)
		tracker = nav.NewTracker(nav.DefaultConfig(), nav.DefaultSections, 60)
	})

	It("starts on the first section", func() {
		Expect(tracker.State()).To(Equal(nav.State{Active: "home"}))
	})

	It("recomputes from scratch on every scroll", func() {
		page.SetScrollY(1500)
		Expect(tracker.OnScroll(page)).To(Equal(nav.State{Active: "experience", Scrolled: true}))

		page.SetScrollY(10)
		Expect(tracker.OnScroll(page)).To(Equal(nav.State{Active: "home", Scrolled: false}))
	})

	It("evaluates sections in its own order", func() {
		reversed := []nav.Bounds{
			{ID: "contact", Top: 0, Height: 400},
			{ID: "home", Top: 0, Height: 400},
		}
		Expect(tracker.Update(120, reversed).Active).To(Equal("contact"))
	})

	It("falls back to the first reported section without an order", func() {
		t := nav.NewTracker(nav.DefaultConfig(), nil, 60)
		Expect(t.Update(9999, []nav.Bounds{{ID: "x", Top: 0, Height: 10}}).Active).To(Equal("x"))
	})

	Describe("ScrollTo", func() {
		It("eases to the section top minus the margin and closes the menu", func() {
			tracker.ToggleMenu()
			Expect(tracker.MenuOpen()).To(BeTrue())

			Expect(tracker.ScrollTo(page, "projects")).To(BeTrue())
			Expect(tracker.MenuOpen()).To(BeFalse())
			Expect(tracker.Scrolling()).To(BeTrue())

			var y float64
			for i := 0; i < 600; i++ {
				next, ok := tracker.Tick()
				if !ok {
					break
				}
				Expect(next).To(BeNumerically(">=", y-1e-6))
				y = next
				page.SetScrollY(y)
			}
			Expect(tracker.Scrolling()).To(BeFalse())
			Expect(page.ScrollY()).To(BeNumerically("~", 2300-80, 1e-9))
			Expect(tracker.OnScroll(page).Active).To(Equal("projects"))
		})

		It("clamps targets above the page to zero", func() {
			page.SetScrollY(400)
			Expect(tracker.ScrollTo(page, "home")).To(BeTrue())
			for tracker.Scrolling() {
				y, _ := tracker.Tick()
				page.SetScrollY(y)
			}
			Expect(page.ScrollY()).To(Equal(0.0))
		})

		It("closes the menu even for unknown sections", func() {
			tracker.ToggleMenu()
			Expect(tracker.ScrollTo(page, "blog")).To(BeFalse())
			Expect(tracker.MenuOpen()).To(BeFalse())
			Expect(tracker.Scrolling()).To(BeFalse())
		})
	})
})

var _ = Describe("VirtualPage", func() {
	It("clamps scrolling to the page", func() {
		page := nav.NewVirtualPage(nav.Stack([]string{"a", "b"}, []float64{500, 500}), 400)
		Expect(page.MaxScroll()).To(Equal(600.0))

		page.ScrollBy(-10)
		Expect(page.ScrollY()).To(Equal(0.0))
		page.ScrollBy(1000)
		Expect(page.ScrollY()).To(Equal(600.0))

		page.SetViewport(900)
		Expect(page.ScrollY()).To(Equal(100.0))
	})
})
