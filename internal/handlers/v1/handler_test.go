package v1_test

import (
	"bytes"
	"net/http"

	v1 "github.com/powerguard/autonomy-planner/internal/handlers/v1"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

// calculationRequest is a station feeding a router plus an idle power bank.
func calculationRequest() map[string]any {
	return map[string]any{
		"sources": []map[string]any{
			{"id": "s1", "brand": "Acme", "model": "Station", "type": "STATION", "capacityWh": 256, "maxOutputW": 300},
			{"id": "s2", "brand": "Acme", "model": "Cell", "type": "Павербанк", "capacityWh": 37, "maxOutputW": 20},
		},
		"devices": []map[string]any{
			{"id": "d1", "name": "Router", "type": "CONSTANT", "powerW": 7, "requiredW": 12, "preferredPort": "DC 12V"},
		},
		"connections": []map[string]any{{"sourceId": "s1", "deviceId": "d1"}},
	}
}

var _ = Describe("v1 handlers", Ordered, func() {
	var router http.Handler

	BeforeAll(func() {
		router = newRouter()
	})

	Context("health and models", func() {
		It("reports ok", func() {
			rec := do(router, http.MethodGet, "/health", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[v1.HealthReply](rec).Status).To(Equal("ok"))
		})

		It("lists the models with topology as default", func() {
			rec := do(router, http.MethodGet, "/api/v1/models", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			reply := decode[v1.ModelsReply](rec)
			Expect(reply.Default).To(Equal("topology"))
			Expect(reply.Models).To(Equal([]string{"topology", "aggregate"}))
		})
	})

	Context("catalog", func() {
		It("filters sources by group", func() {
			rec := do(router, http.MethodGet, "/api/v1/catalog/sources?group=station", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			sources := decode[[]v1.CatalogSource](rec)
			Expect(sources).To(HaveLen(15))
			Expect(sources[0].TypeLabel).To(Equal("Зарядна станція"))
			Expect(sources[0].Efficiency).To(HaveKeyWithValue("DC 12V", 0.95))
		})

		It("searches sources by brand", func() {
			rec := do(router, http.MethodGet, "/api/v1/catalog/sources?q=jackery", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[[]v1.CatalogSource](rec)).To(HaveLen(3))
		})

		It("rejects an unknown group with the request id", func() {
			rec := do(router, http.MethodGet, "/api/v1/catalog/sources?group=generator", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			reply := decode[v1.ErrorReply](rec)
			Expect(reply.Message).To(ContainSubstring("generator"))
			Expect(reply.RequestID).NotTo(BeEmpty())
			Expect(reply.RequestID).To(Equal(rec.Header().Get("X-Request-Id")))
		})

		It("gets a source by id", func() {
			rec := do(router, http.MethodGet, "/api/v1/catalog/sources/ps-ef-r2", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[v1.CatalogSource](rec).Model).To(Equal("RIVER 2 (256Wh)"))

			Expect(do(router, http.MethodGet, "/api/v1/catalog/sources/nope", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("lists devices and categories", func() {
			rec := do(router, http.MethodGet, "/api/v1/catalog/devices?category=Мережа", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[[]v1.CatalogDevice](rec)).To(HaveLen(6))

			rec = do(router, http.MethodGet, "/api/v1/catalog/devices/dev-onu", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[v1.CatalogDevice](rec).TypeLabel).To(Equal("Постійне навантаження"))

			rec = do(router, http.MethodGet, "/api/v1/catalog/categories", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[[]string](rec)).To(HaveLen(6))
		})
	})

	Context("calculations", func() {
		It("counts the idle power bank in the global pool", func() {
			rec := do(router, http.MethodPost, "/api/v1/calculations", calculationRequest())
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())

			reply := decode[v1.CalculationReply](rec)
			Expect(reply.Model).To(Equal("topology"))
			// (256*0.95 + 37*0.85) Wh over 7 W * 8 h a day, times 8 h
			Expect(reply.TotalRuntimeHours).To(BeNumerically("~", 39.235714, 1e-6))
			Expect(reply.Summary.Hours).To(Equal(39))
			Expect(reply.Summary.Text).To(Equal("39 год 14 хв (5 дн.)"))
		})

		It("renders an idle source as unlimited", func() {
			rec := do(router, http.MethodPost, "/api/v1/calculations", calculationRequest())
			Expect(rec.Code).To(Equal(http.StatusOK))

			reply := decode[v1.CalculationReply](rec)
			Expect(reply.Sources).To(HaveLen(2))
			Expect(reply.Sources[0].RuntimeHours).NotTo(BeNil())
			Expect(reply.Sources[0].Unlimited).To(BeFalse())
			Expect(reply.Sources[1].RuntimeHours).To(BeNil())
			Expect(reply.Sources[1].Unlimited).To(BeTrue())
			Expect(rec.Body.String()).To(ContainSubstring(`"runtimeHours":null`))

			Expect(reply.Connections).To(HaveLen(1))
			Expect(reply.Connections[0].Status).To(Equal("success"))
			Expect(reply.Warnings).NotTo(BeNil())
			Expect(reply.Recommendations).NotTo(BeEmpty())
		})

		It("runs the aggregate model without connection statuses", func() {
			req := calculationRequest()
			req["model"] = "aggregate"
			req["scenario"] = map[string]any{"hoursPerDay": 12, "intensityMultiplier": 1.5}

			rec := do(router, http.MethodPost, "/api/v1/calculations", req)
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
			reply := decode[v1.CalculationReply](rec)
			Expect(reply.Model).To(Equal("aggregate"))
			Expect(reply.Connections).To(BeEmpty())
		})

		It("compares every model", func() {
			rec := do(router, http.MethodPost, "/api/v1/calculations/compare", calculationRequest())
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())

			replies := decode[[]v1.CalculationReply](rec)
			Expect(replies).To(HaveLen(2))
			Expect(replies[0].Model).To(Equal("topology"))
			Expect(replies[0].TotalRuntimeHours).To(BeNumerically("~", 39.235714, 1e-6))
			Expect(replies[1].Model).To(Equal("aggregate"))
		})

		DescribeTable("bad requests",
			func(path string, body any, message string) {
				rec := do(router, http.MethodPost, path, body)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(decode[v1.ErrorReply](rec).Message).To(ContainSubstring(message))
			},
			Entry("empty body", "/api/v1/calculations", nil, "empty body"),
			Entry("malformed json", "/api/v1/calculations", "{", "invalid request body"),
			Entry("unknown port", "/api/v1/calculations", func() any {
				req := calculationRequest()
				req["devices"].([]map[string]any)[0]["preferredPort"] = "Lightning"
				return req
			}(), "devices[0].preferredPort"),
			Entry("hours out of range", "/api/v1/calculations", func() any {
				req := calculationRequest()
				req["scenario"] = map[string]any{"hoursPerDay": 30, "intensityMultiplier": 1}
				return req
			}(), "scenario.hoursPerDay"),
			Entry("dangling connection", "/api/v1/calculations", func() any {
				req := calculationRequest()
				req["connections"] = []map[string]any{{"sourceId": "ghost", "deviceId": "d1"}}
				return req
			}(), "ghost"),
			Entry("unknown model", "/api/v1/calculations", func() any {
				req := calculationRequest()
				req["model"] = "quantum"
				return req
			}(), "quantum"),
			Entry("dangling connection on compare", "/api/v1/calculations/compare", func() any {
				req := calculationRequest()
				req["connections"] = []map[string]any{{"sourceId": "ghost", "deviceId": "d1"}}
				return req
			}(), "ghost"),
		)
	})

	Context("workspaces", Ordered, func() {
		var base string

		BeforeAll(func() {
			rec := do(router, http.MethodPost, "/api/v1/workspaces", map[string]any{"name": "home"})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			ws := decode[v1.WorkspaceReply](rec)
			Expect(ws.Scenario.HoursPerDay).To(Equal(8.0))
			Expect(ws.Connections).To(BeEmpty())
			base = "/api/v1/workspaces/" + ws.ID.String()
		})

		It("adds a catalog source and a custom power bank", func() {
			rec := do(router, http.MethodPost, base+"/sources", map[string]any{"catalogId": "ps-ef-r2"})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			Expect(rec.Body.String()).To(ContainSubstring(`"id":"ps-ef-r2-1"`))
			Expect(rec.Body.String()).To(ContainSubstring(`"type":"STATION"`))

			rec = do(router, http.MethodPost, base+"/sources", map[string]any{
				"custom": map[string]any{"model": "No-name", "capacityMah": 10000},
			})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			Expect(rec.Body.String()).To(ContainSubstring(`"id":"custom-2"`))
		})

		It("rejects a catalog id combined with a custom power bank", func() {
			rec := do(router, http.MethodPost, base+"/sources", map[string]any{
				"catalogId": "ps-ef-r2",
				"custom":    map[string]any{"model": "No-name", "capacityMah": 10000},
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			Expect(do(router, http.MethodPost, base+"/sources", map[string]any{"catalogId": "nope"}).Code).To(Equal(http.StatusNotFound))
		})

		It("adds a device and sets its usage hours", func() {
			rec := do(router, http.MethodPost, base+"/devices", map[string]any{"catalogId": "dev-router-std"})
			Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
			Expect(rec.Body.String()).To(ContainSubstring(`"id":"dev-router-std-3"`))

			rec = do(router, http.MethodPatch, base+"/devices/dev-router-std-3", map[string]any{"usageHours": 4})
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
			Expect(rec.Body.String()).To(ContainSubstring(`"usageHours":4`))

			Expect(do(router, http.MethodPatch, base+"/devices/dev-router-std-3", map[string]any{"usageHours": 25}).Code).
				To(Equal(http.StatusBadRequest))
		})

		It("rewires and optimizes connections", func() {
			rec := do(router, http.MethodPut, base+"/connections", map[string]any{"sourceId": "custom-2", "deviceId": "dev-router-std-3"})
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
			ws := decode[v1.WorkspaceReply](rec)
			Expect(ws.Connections).To(HaveLen(1))
			Expect(ws.Connections[0].SourceID).To(Equal("custom-2"))

			Expect(do(router, http.MethodPut, base+"/connections", map[string]any{"sourceId": "ghost", "deviceId": "dev-router-std-3"}).Code).
				To(Equal(http.StatusNotFound))

			rec = do(router, http.MethodPost, base+"/optimize", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			ws = decode[v1.WorkspaceReply](rec)
			Expect(ws.Connections).To(HaveLen(1))
			Expect(ws.Connections[0].SourceID).To(Equal("ps-ef-r2-1"))
		})

		It("validates the scenario", func() {
			Expect(do(router, http.MethodPut, base+"/scenario", map[string]any{"hoursPerDay": 0, "intensityMultiplier": 1}).Code).
				To(Equal(http.StatusBadRequest))
			Expect(do(router, http.MethodPut, base+"/scenario", map[string]any{"hoursPerDay": 4, "intensityMultiplier": 0.5}).Code).
				To(Equal(http.StatusOK))
		})

		It("calculates the result with either model", func() {
			rec := do(router, http.MethodGet, base+"/result", nil)
			Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
			result := decode[v1.CalculationReply](rec)
			Expect(result.TotalRuntimeHours).To(BeNumerically(">", 0))
			Expect(result.Sources).To(HaveLen(2))
			Expect(result.Sources[1].Unlimited).To(BeTrue())

			rec = do(router, http.MethodGet, base+"/result?model=aggregate", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[v1.CalculationReply](rec).Model).To(Equal("aggregate"))
		})

		It("downloads csv and xlsx reports", func() {
			rec := do(router, http.MethodGet, base+"/report", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/csv"))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring(".csv"))
			Expect(rec.Body.String()).To(ContainSubstring("POWERGUARD AUTONOMY REPORT"))

			rec = do(router, http.MethodGet, base+"/report?format=xlsx", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
			Expect(err).To(BeNil())
			rows, err := f.GetRows("Sources")
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(3))
			Expect(f.Close()).To(Succeed())

			Expect(do(router, http.MethodGet, base+"/report?format=pdf", nil).Code).To(Equal(http.StatusBadRequest))
		})

		It("removes devices and sources", func() {
			Expect(do(router, http.MethodDelete, base+"/devices/dev-router-std-3", nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(router, http.MethodDelete, base+"/sources/custom-2", nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(router, http.MethodDelete, base+"/sources/custom-2", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("lists and deletes the workspace", func() {
			rec := do(router, http.MethodGet, "/api/v1/workspaces", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decode[[]v1.WorkspaceReply](rec)).To(HaveLen(1))

			Expect(do(router, http.MethodDelete, base, nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(router, http.MethodGet, base, nil).Code).To(Equal(http.StatusNotFound))
		})

		It("rejects an invalid workspace id", func() {
			rec := do(router, http.MethodGet, "/api/v1/workspaces/not-a-uuid", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(decode[v1.ErrorReply](rec).Message).To(ContainSubstring("not-a-uuid"))
		})
	})
})
