package room_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/roomflow/internal/config"
	"github.com/san-kum/roomflow/internal/logging"
	"github.com/san-kum/roomflow/internal/readout"
	"github.com/san-kum/roomflow/internal/room"
	"github.com/san-kum/roomflow/internal/scene"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
	return c.t
}

var _ = Describe("Room", func() {
	var (
		srv   *httptest.Server
		cfg   *config.Config
		panel *readout.Panel
		clock *fakeClock
		r     *room.Room
	)

	BeforeEach(func() {
		mux := http.NewServeMux()
		mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("testdata"))))
		mux.HandleFunc("/broken.csv", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		srv = httptest.NewServer(mux)

		cfg = config.DefaultConfig()
		cfg.Asset = srv.URL + "/assets/room.gltf"
		cfg.Dataset = srv.URL + "/assets/data.csv"
		cfg.FadeDelay = 20 * time.Millisecond
		cfg.Seed = 1
		cfg.Emitters.AC.Count = 50
		cfg.Emitters.Window.Count = 60

		panel = readout.NewPanel()
		clock = &fakeClock{t: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)}
	})

	AfterEach(func() {
		if r != nil {
			r.Close()
		}
		srv.Close()
	})

	load := func() error {
		r = room.New(cfg, panel, clock, logging.Discard())
		return r.Load(context.Background())
	}

	Context("before loading", func() {
		It("ignores ticks", func() {
			r = room.New(cfg, panel, clock, logging.Discard())
			_, ok := r.Tick(clock.Now())
			Expect(ok).To(BeFalse())
			Expect(r.Ready()).To(BeFalse())
			Expect(r.Scene()).To(BeNil())
		})
	})

	Context("when both resources load", func() {
		BeforeEach(func() {
			Expect(load()).To(Succeed())
		})

		It("becomes ready and renders the first row", func() {
			Expect(r.Ready()).To(BeTrue())
			Expect(panel.Text(readout.Time)).To(Equal("08:00"))
			Expect(panel.Text(readout.ACState)).To(Equal("ON"))
			Expect(panel.Text(readout.WindowState)).To(Equal("CLOSED"))
			Expect(panel.Text(readout.Temperature)).To(Equal("22°C"))
			Expect(panel.Text(readout.LoadingProgress)).To(Equal("100%"))
		})

		It("fades the loading screen after the delay", func() {
			Eventually(func() bool {
				return panel.HasClass(readout.LoadingScreen, readout.FadeOut)
			}).WithTimeout(time.Second).Should(BeTrue())
		})

		It("seeds both particle systems from the anchors", func() {
			ac, window := r.Particles()
			Expect(ac).NotTo(BeNil())
			Expect(window).NotTo(BeNil())
			Expect(ac.Count).To(Equal(50))
			Expect(window.Positions).To(HaveLen(3 * 60))

			anchors := r.Anchors()
			Expect(anchors.AC.Name).To(Equal("AC_Unit"))
			Expect(anchors.Window.Name).To(Equal("Window"))
			Expect(anchors.Room.Mesh.Material.Opacity).To(Equal(scene.RoomOpacity))
			Expect(r.Scene().Camera).To(BeIdenticalTo(r.Camera()))
		})

		It("advances the readout on the update interval", func() {
			_, ok := r.Tick(clock.Now())
			Expect(ok).To(BeTrue())

			f, _ := r.Tick(clock.Advance(cfg.UpdateInterval + time.Millisecond))
			Expect(f.Advanced).To(BeTrue())
			Expect(panel.Text(readout.Time)).To(Equal("08:05"))
			Expect(panel.Text(readout.ACState)).To(Equal("OFF"))
			Expect(panel.Text(readout.WindowState)).To(Equal("OPEN"))
			Expect(panel.Text(readout.Temperature)).To(Equal("26.5°C"))
			Expect(f.WindowMoved).To(BeTrue())
			Expect(f.ACMoved).To(BeFalse())

			cur, ok := r.Cursor()
			Expect(ok).To(BeTrue())
			Expect(cur.Index).To(Equal(1))
		})
	})

	Context("when the dataset cannot be fetched", func() {
		It("plays the fallback row", func() {
			cfg.Dataset = srv.URL + "/broken.csv"
			Expect(load()).To(Succeed())

			Expect(r.Sequence().Len()).To(Equal(1))
			Expect(panel.Text(readout.Time)).To(Equal("00:00"))
			Expect(panel.Text(readout.ACState)).To(Equal("ON"))
			Expect(panel.Text(readout.WindowState)).To(Equal("CLOSED"))
			Expect(panel.Text(readout.Temperature)).To(Equal("24°C"))
			Expect(r.Ready()).To(BeTrue())
		})
	})

	Context("when the model fails to load", func() {
		BeforeEach(func() {
			cfg.Asset = srv.URL + "/assets/missing.glb"
		})

		It("shows the error overlay once and never dismisses loading", func() {
			err := load()
			Expect(err).To(MatchError(scene.ErrAssetLoad))

			overlay, shown := panel.Error()
			Expect(shown).To(BeTrue())
			Expect(overlay.Title).To(Equal("Error loading 3D model"))
			Expect(overlay.Message).To(Equal("Please try refreshing the page."))
			Expect(panel.ShowError("again", "again")).To(BeFalse())

			Expect(r.Ready()).To(BeFalse())
			Expect(panel.Text(readout.Time)).To(Equal("08:00"))
			Consistently(func() bool {
				return panel.HasClass(readout.LoadingScreen, readout.FadeOut)
			}).WithTimeout(100 * time.Millisecond).Should(BeFalse())

			_, ok := r.Tick(clock.Advance(time.Hour))
			Expect(ok).To(BeFalse())
		})
	})

	Context("when an anchor is missing", func() {
		BeforeEach(func() {
			cfg.Asset = srv.URL + "/assets/no_window.gltf"
			Expect(load()).To(Succeed())
		})

		It("runs without particles", func() {
			Expect(r.Ready()).To(BeTrue())
			ac, window := r.Particles()
			Expect(ac).To(BeNil())
			Expect(window).To(BeNil())

			f, ok := r.Tick(clock.Advance(cfg.UpdateInterval + time.Second))
			Expect(ok).To(BeTrue())
			Expect(f.Advanced).To(BeTrue())
			Expect(f.ACMoved).To(BeFalse())
			Expect(panel.Text(readout.Time)).To(Equal("08:05"))
		})
	})
})
