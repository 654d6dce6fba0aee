package service_test

import (
	"context"
	"errors"

	"github.com/powerguard/autonomy-planner/internal/service"
	"github.com/powerguard/autonomy-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("catalog service", Ordered, func() {
	var svc *service.CatalogService

	BeforeAll(func() {
		svc = service.NewCatalogService(seededStore())
	})

	Context("sources", func() {
		DescribeTable("filters by group",
			func(group string, expected int) {
				g, err := service.ParseSourceGroup(group)
				Expect(err).To(BeNil())

				sources, err := svc.ListSources(context.TODO(), g, "")
				Expect(err).To(BeNil())
				Expect(sources).To(HaveLen(expected))
			},
			Entry("empty means all", "", 38),
			Entry("all", "all", 38),
			Entry("power banks", "powerbank", 17),
			Entry("stations", "STATION", 15),
			Entry("batteries and UPS", "battery_ups", 6),
		)

		It("rejects an unknown group", func() {
			_, err := service.ParseSourceGroup("generator")
			var invalid *service.ErrInvalidInput
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("searches brand and model case-insensitively", func() {
			sources, err := svc.ListSources(context.TODO(), service.SourceGroupAll, "  ecoflow ")
			Expect(err).To(BeNil())
			Expect(sources).To(HaveLen(6))
			for _, s := range sources {
				Expect(s.Brand).To(Equal("EcoFlow"))
			}

			sources, err = svc.ListSources(context.TODO(), service.SourceGroupStation, "river 2 max")
			Expect(err).To(BeNil())
			Expect(sources).To(HaveLen(1))
			Expect(sources[0].ID).To(Equal("ps-ef-r2m"))
		})

		It("combines group and search", func() {
			sources, err := svc.ListSources(context.TODO(), service.SourceGroupPowerBank, "ecoflow")
			Expect(err).To(BeNil())
			Expect(sources).To(BeEmpty())
		})

		It("gets a source", func() {
			spec, err := svc.GetSource(context.TODO(), "ups-apc-700")
			Expect(err).To(BeNil())
			Expect(spec.MaxOutputW).To(BeNumerically("==", 390))
		})

		It("reports a missing catalog source", func() {
			_, err := svc.GetSource(context.TODO(), "ps-missing")
			var notFound *service.ErrCatalogEntryNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("ps-missing"))
		})
	})

	Context("devices", func() {
		It("filters by category", func() {
			devices, err := svc.ListDevices(context.TODO(), "Мережа", "")
			Expect(err).To(BeNil())
			Expect(devices).To(HaveLen(6))
		})

		It("searches the name with unicode case folding", func() {
			devices, err := svc.ListDevices(context.TODO(), "", "ЛАМПА")
			Expect(err).To(BeNil())
			ids := make([]string, 0, len(devices))
			for _, d := range devices {
				ids = append(ids, d.ID)
			}
			Expect(ids).To(ConsistOf("dev-lamp-usb", "dev-lamp-desk"))
		})

		It("searches the category", func() {
			devices, err := svc.ListDevices(context.TODO(), "", "ноутбук")
			Expect(err).To(BeNil())
			Expect(devices).To(HaveLen(7))
			Expect(devices).To(HaveEach(HaveField("Category", "Ноутбук")))
		})

		It("lists categories in catalog order", func() {
			categories, err := svc.Categories(context.TODO())
			Expect(err).To(BeNil())
			Expect(categories).To(Equal([]string{"Смартфон", "Планшет", "Ноутбук", "Мережа", "Освітлення", "Побут"}))
		})

		It("reports a missing catalog device", func() {
			_, err := svc.GetDevice(context.TODO(), "dev-missing")
			var notFound *service.ErrCatalogEntryNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		It("gets a device", func() {
			spec, err := svc.GetDevice(context.TODO(), "dev-onu")
			Expect(err).To(BeNil())
			Expect(spec).To(BeAssignableToTypeOf(&model.DeviceSpec{}))
			Expect(spec.PreferredPort).To(Equal("DC 12V"))
		})
	})
})
