package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powerguard/autonomy-planner/internal/autonomy"
	"github.com/powerguard/autonomy-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("workspace service", func() {
	var (
		catalog *service.CatalogService
		svc     *service.WorkspaceService
		ws      service.Workspace
	)

	BeforeEach(func() {
		catalog = service.NewCatalogService(seededStore())
		svc = service.NewWorkspaceService(catalog, service.NewCalculationService("topology"))
		ws = svc.Create(context.TODO(), " home ")
	})

	isNotFound := func(err error) bool {
		var notFound *service.ErrResourceNotFound
		return errors.As(err, &notFound)
	}
	isInvalid := func(err error) bool {
		var invalid *service.ErrInvalidInput
		return errors.As(err, &invalid)
	}

	Context("lifecycle", func() {
		It("creates an empty workspace with the default scenario", func() {
			Expect(ws.ID).NotTo(Equal(uuid.Nil))
			Expect(ws.Name).To(Equal("home"))
			Expect(ws.Sources).To(BeEmpty())
			Expect(ws.Devices).To(BeEmpty())
			Expect(ws.Connections).To(BeEmpty())
			Expect(ws.Scenario).To(Equal(autonomy.DefaultScenario()))
		})

		It("lists workspaces oldest first", func() {
			second := svc.Create(context.TODO(), "office")
			list := svc.List(context.TODO())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(ws.ID))
			Expect(list[1].ID).To(Equal(second.ID))
		})

		It("deletes a workspace", func() {
			Expect(svc.Delete(context.TODO(), ws.ID)).To(Succeed())

			_, err := svc.Get(context.TODO(), ws.ID)
			Expect(isNotFound(err)).To(BeTrue())
			Expect(isNotFound(svc.Delete(context.TODO(), ws.ID))).To(BeTrue())
		})

		It("reports an unknown workspace", func() {
			_, err := svc.AddSource(context.TODO(), uuid.New(), "ps-ef-r2")
			Expect(isNotFound(err)).To(BeTrue())
		})
	})

	Context("sources and devices", func() {
		It("numbers instances and connects a new device to a capable source", func() {
			pb, err := svc.AddSource(context.TODO(), ws.ID, "pb-anker-533")
			Expect(err).To(BeNil())
			Expect(pb.ID).To(Equal("pb-anker-533-1"))
			Expect(pb.CatalogID).To(Equal("pb-anker-533"))

			station, err := svc.AddSource(context.TODO(), ws.ID, "ps-ef-r2")
			Expect(err).To(BeNil())
			Expect(station.ID).To(Equal("ps-ef-r2-2"))

			// 230 W peak exceeds the 30 W power bank
			laptop, err := svc.AddDevice(context.TODO(), ws.ID, "dev-gaming-laptop")
			Expect(err).To(BeNil())
			Expect(laptop.ID).To(Equal("dev-gaming-laptop-3"))

			got, err := svc.Get(context.TODO(), ws.ID)
			Expect(err).To(BeNil())
			Expect(got.Connections).To(ConsistOf(autonomy.Connection{SourceID: station.ID, DeviceID: laptop.ID}))
		})

		It("connects waiting devices to the first source added", func() {
			router, err := svc.AddDevice(context.TODO(), ws.ID, "dev-router-std")
			Expect(err).To(BeNil())
			got, _ := svc.Get(context.TODO(), ws.ID)
			Expect(got.Connections).To(BeEmpty())

			station, err := svc.AddSource(context.TODO(), ws.ID, "ps-ef-r2")
			Expect(err).To(BeNil())

			got, _ = svc.Get(context.TODO(), ws.ID)
			Expect(got.Connections).To(ConsistOf(autonomy.Connection{SourceID: station.ID, DeviceID: router.ID}))
		})

		It("adds a custom power bank", func() {
			pb, err := svc.AddCustomPowerBank(context.TODO(), ws.ID, service.CustomPowerBank{Model: "No-name", CapacityMah: 10000})
			Expect(err).To(BeNil())
			Expect(pb.ID).To(Equal("custom-1"))
			Expect(pb.Brand).To(Equal(service.CustomBrand))
			Expect(pb.Type).To(Equal(autonomy.SourceTypePowerBank))
			Expect(pb.CapacityWh).To(BeNumerically("~", 37, 1e-9))
			Expect(pb.MaxOutputW).To(BeNumerically("==", service.DefaultCustomMaxOutput))
			Expect(pb.HealthFactor).To(BeNumerically("==", 1))
			Expect(pb.Efficiency).To(Equal(autonomy.DefaultPortEfficiencies(autonomy.SourceTypePowerBank)))
		})

		DescribeTable("rejects a bad custom power bank",
			func(pb service.CustomPowerBank) {
				_, err := svc.AddCustomPowerBank(context.TODO(), ws.ID, pb)
				Expect(isInvalid(err)).To(BeTrue())
			},
			Entry("no model", service.CustomPowerBank{CapacityMah: 10000}),
			Entry("no capacity", service.CustomPowerBank{Model: "x"}),
			Entry("negative output", service.CustomPowerBank{Model: "x", CapacityMah: 10000, MaxOutputW: -1}),
		)

		It("reports unknown catalog entries", func() {
			_, err := svc.AddSource(context.TODO(), ws.ID, "nope")
			var notFound *service.ErrCatalogEntryNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())

			_, err = svc.AddDevice(context.TODO(), ws.ID, "nope")
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		It("cascades removals to connections", func() {
			station, _ := svc.AddSource(context.TODO(), ws.ID, "ps-ef-r2")
			router, _ := svc.AddDevice(context.TODO(), ws.ID, "dev-router-std")
			onu, _ := svc.AddDevice(context.TODO(), ws.ID, "dev-onu")

			Expect(svc.RemoveDevice(context.TODO(), ws.ID, onu.ID)).To(Succeed())
			got, _ := svc.Get(context.TODO(), ws.ID)
			Expect(got.Devices).To(HaveLen(1))
			Expect(got.Connections).To(ConsistOf(autonomy.Connection{SourceID: station.ID, DeviceID: router.ID}))

			Expect(svc.RemoveSource(context.TODO(), ws.ID, station.ID)).To(Succeed())
			got, _ = svc.Get(context.TODO(), ws.ID)
			Expect(got.Sources).To(BeEmpty())
			Expect(got.Connections).To(BeEmpty())

			Expect(isNotFound(svc.RemoveSource(context.TODO(), ws.ID, station.ID))).To(BeTrue())
			Expect(isNotFound(svc.RemoveDevice(context.TODO(), ws.ID, onu.ID))).To(BeTrue())
		})

		It("sets and clears usage hours", func() {
			router, _ := svc.AddDevice(context.TODO(), ws.ID, "dev-router-std")

			hours := 4.0
			dev, err := svc.SetUsageHours(context.TODO(), ws.ID, router.ID, &hours)
			Expect(err).To(BeNil())
			Expect(*dev.UsageHours).To(Equal(4.0))

			hours = 6
			got, _ := svc.Get(context.TODO(), ws.ID)
			Expect(*got.Devices[0].UsageHours).To(Equal(4.0))

			dev, err = svc.SetUsageHours(context.TODO(), ws.ID, router.ID, nil)
			Expect(err).To(BeNil())
			Expect(dev.UsageHours).To(BeNil())

			bad := -1.0
			_, err = svc.SetUsageHours(context.TODO(), ws.ID, router.ID, &bad)
			Expect(isInvalid(err)).To(BeTrue())
		})
	})

	Context("connections", func() {
		var pb, station autonomy.PowerSource
		var router autonomy.Device

		BeforeEach(func() {
			station, _ = svc.AddSource(context.TODO(), ws.ID, "ps-ef-r2")
			pb, _ = svc.AddSource(context.TODO(), ws.ID, "pb-anker-533")
			router, _ = svc.AddDevice(context.TODO(), ws.ID, "dev-router-std")
		})

		It("moves and clears a connection", func() {
			Expect(svc.Connect(context.TODO(), ws.ID, pb.ID, router.ID)).To(Succeed())
			got, _ := svc.Get(context.TODO(), ws.ID)
			Expect(got.Connections).To(ConsistOf(autonomy.Connection{SourceID: pb.ID, DeviceID: router.ID}))

			Expect(svc.Connect(context.TODO(), ws.ID, "", router.ID)).To(Succeed())
			got, _ = svc.Get(context.TODO(), ws.ID)
			Expect(got.Connections).To(BeEmpty())
		})

		It("rejects unknown ids", func() {
			Expect(isNotFound(svc.Connect(context.TODO(), ws.ID, "ghost", router.ID))).To(BeTrue())
			Expect(isNotFound(svc.Connect(context.TODO(), ws.ID, station.ID, "ghost"))).To(BeTrue())
		})

		It("optimizes onto the largest capable source", func() {
			Expect(svc.Connect(context.TODO(), ws.ID, pb.ID, router.ID)).To(Succeed())
			laptop, _ := svc.AddDevice(context.TODO(), ws.ID, "dev-gaming-laptop")

			got, err := svc.Optimize(context.TODO(), ws.ID)
			Expect(err).To(BeNil())
			Expect(got.Connections).To(ConsistOf(
				autonomy.Connection{SourceID: station.ID, DeviceID: laptop.ID},
				autonomy.Connection{SourceID: station.ID, DeviceID: router.ID},
			))
		})
	})

	Context("scenario and calculation", func() {
		It("validates the scenario", func() {
			_, err := svc.UpdateScenario(context.TODO(), ws.ID, autonomy.Scenario{HoursPerDay: 30, IntensityMultiplier: 1})
			Expect(isInvalid(err)).To(BeTrue())

			got, err := svc.UpdateScenario(context.TODO(), ws.ID, autonomy.Scenario{HoursPerDay: 12, IntensityMultiplier: autonomy.IntensityEco})
			Expect(err).To(BeNil())
			Expect(got.Scenario.HoursPerDay).To(Equal(12.0))
		})

		It("calculates the workspace with the configured model", func() {
			station, _ := svc.AddSource(context.TODO(), ws.ID, "ps-ef-r2")
			_, _ = svc.AddDevice(context.TODO(), ws.ID, "dev-router-std")

			calc, err := svc.Calculate(context.TODO(), ws.ID, "")
			Expect(err).To(BeNil())
			Expect(calc.Model).To(Equal("topology"))

			// 256 Wh at 0.95 over a 7 W load for 8 h a day
			Expect(calc.Result.TotalRuntimeHours).To(BeNumerically("~", 34.742857, 1e-6))
			Expect(calc.Result.RuntimePerSource[station.ID]).To(BeNumerically("~", 34.742857, 1e-6))
			Expect(calc.Summary).To(Equal(autonomy.Summary{Hours: 34, Minutes: 45, Days: 5}))
			Expect(calc.Connections).To(HaveLen(1))
			Expect(calc.Connections[0].Status).To(Equal(autonomy.StatusSuccess))
		})

		It("calculates with an explicit model", func() {
			_, _ = svc.AddSource(context.TODO(), ws.ID, "ps-ef-r2")
			calc, err := svc.Calculate(context.TODO(), ws.ID, "aggregate")
			Expect(err).To(BeNil())
			Expect(calc.Model).To(Equal("aggregate"))

			_, err = svc.Calculate(context.TODO(), ws.ID, "quantum")
			Expect(isInvalid(err)).To(BeTrue())
		})
	})
})
