package store_test

import (
	"context"

	"github.com/powerguard/autonomy-planner/internal/autonomy"
	st "github.com/powerguard/autonomy-planner/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("catalog store", Ordered, func() {
	var s st.Store

	BeforeAll(func() {
		db, err := st.InitDB(testConfig())
		Expect(err).To(BeNil())
		s = st.NewStore(db)
		Expect(s.InitialMigration(context.TODO())).To(Succeed())
		Expect(s.Seed(context.TODO())).To(Succeed())
	})

	AfterAll(func() {
		s.Close()
	})

	Context("DefaultCatalog", func() {
		It("derives efficiency tables from the source type", func() {
			sources, devices, err := st.DefaultCatalog()
			Expect(err).To(BeNil())
			Expect(sources).To(HaveLen(38))
			Expect(devices).To(HaveLen(38))

			for _, spec := range sources {
				src, err := spec.ToPowerSource(spec.ID)
				Expect(err).To(BeNil())
				Expect(src.HealthFactor).To(Equal(1.0))
				Expect(src.Efficiency).To(Equal(autonomy.DefaultPortEfficiencies(src.Type)))
			}
			for _, spec := range devices {
				_, err := spec.ToDevice(spec.ID)
				Expect(err).To(BeNil())
			}
		})
	})

	Context("sources", func() {
		It("lists in catalog order", func() {
			specs, err := s.SourceSpec().List(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(specs).To(HaveLen(38))
			Expect(specs[0].ID).To(Equal("pb-anker-737"))
			Expect(specs[len(specs)-1].ID).To(Equal("bat-life-200"))
		})

		It("filters by type", func() {
			specs, err := s.SourceSpec().List(context.TODO(), st.NewSourceSpecQueryFilter().ByTypes("UPS", "BATTERY"))
			Expect(err).To(BeNil())
			Expect(specs).To(HaveLen(6))
			for _, spec := range specs {
				Expect(spec.Type).To(BeElementOf("UPS", "BATTERY"))
			}
		})

		It("filters popular entries", func() {
			specs, err := s.SourceSpec().List(context.TODO(), st.NewSourceSpecQueryFilter().ByTypes("STATION").OnlyPopular())
			Expect(err).To(BeNil())
			Expect(specs).ToNot(BeEmpty())
			for _, spec := range specs {
				Expect(spec.Popular).To(BeTrue())
				Expect(spec.Type).To(Equal("STATION"))
			}
		})

		It("gets by id", func() {
			spec, err := s.SourceSpec().Get(context.TODO(), "ps-ef-d2")
			Expect(err).To(BeNil())
			Expect(spec.Brand).To(Equal("EcoFlow"))
			Expect(spec.CapacityWh).To(Equal(1024.0))
			Expect(spec.Efficiency).To(HaveKeyWithValue("USB-C PD", 0.94))
		})

		It("returns ErrRecordNotFound for unknown ids", func() {
			_, err := s.SourceSpec().Get(context.TODO(), "nope")
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("devices", func() {
		It("filters by category", func() {
			specs, err := s.DeviceSpec().List(context.TODO(), st.NewDeviceSpecQueryFilter().ByCategory("Ноутбук"))
			Expect(err).To(BeNil())
			Expect(specs).To(HaveLen(7))
		})

		It("filters popular entries", func() {
			specs, err := s.DeviceSpec().List(context.TODO(), st.NewDeviceSpecQueryFilter().OnlyPopular())
			Expect(err).To(BeNil())
			Expect(specs).To(HaveLen(9))
			for _, spec := range specs {
				Expect(spec.Popular).To(BeTrue())
			}
		})

		It("lists categories in catalog order", func() {
			categories, err := s.DeviceSpec().Categories(context.TODO())
			Expect(err).To(BeNil())
			Expect(categories).To(Equal([]string{"Смартфон", "Планшет", "Ноутбук", "Мережа", "Освітлення", "Побут"}))
		})

		It("gets by id", func() {
			spec, err := s.DeviceSpec().Get(context.TODO(), "dev-coffee-capsule")
			Expect(err).To(BeNil())
			Expect(spec.PowerW).To(Equal(1400.0))
			Expect(spec.PreferredPort).To(Equal("AC 220V"))
		})

		It("returns ErrRecordNotFound for unknown ids", func() {
			_, err := s.DeviceSpec().Get(context.TODO(), "nope")
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})
})
