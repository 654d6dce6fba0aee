package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/powerguard/autonomy-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("report service", func() {
	var (
		ws   service.Workspace
		calc *service.Calculation
	)

	BeforeEach(func() {
		var err error
		ws = service.Workspace{ID: uuid.New(), Name: "home"}
		calc, err = service.NewCalculationService("").Calculate(context.TODO(), stationWithRouter(), "")
		Expect(err).To(BeNil())
	})

	DescribeTable("parses formats",
		func(in string, expected service.ReportFormat) {
			f, err := service.ParseReportFormat(in)
			Expect(err).To(BeNil())
			Expect(f).To(Equal(expected))
		},
		Entry("default", "", service.ReportFormatCSV),
		Entry("csv", "CSV", service.ReportFormatCSV),
		Entry("xlsx", "xlsx", service.ReportFormatXLSX),
	)

	It("rejects an unknown format", func() {
		_, err := service.ParseReportFormat("pdf")
		var invalid *service.ErrInvalidInput
		Expect(errors.As(err, &invalid)).To(BeTrue())

		_, err = service.NewReportService().GenerateReport(ws, calc, "pdf")
		Expect(errors.As(err, &invalid)).To(BeTrue())
	})

	It("renders a CSV report", func() {
		report, err := service.NewReportService().GenerateReport(ws, calc, service.ReportFormatCSV)
		Expect(err).To(BeNil())
		Expect(report.Filename).To(Equal("powerguard-" + ws.ID.String() + ".csv"))
		Expect(report.ContentType).To(HavePrefix("text/csv"))
		Expect(string(report.Content)).To(ContainSubstring("Acme Station"))
		Expect(string(report.Content)).To(ContainSubstring("home"))
	})

	It("renders an XLSX report", func() {
		report, err := service.NewReportService().GenerateReport(ws, calc, service.ReportFormatXLSX)
		Expect(err).To(BeNil())
		Expect(report.Filename).To(HaveSuffix(".xlsx"))
		// zip archive signature
		Expect(report.Content[:2]).To(Equal([]byte("PK")))
	})
})
