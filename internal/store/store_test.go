package store_test

import (
	"context"
	"errors"

	st "github.com/powerguard/autonomy-planner/internal/store"
	"github.com/powerguard/autonomy-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
	)

	BeforeAll(func() {
		db, err := st.InitDB(testConfig())
		Expect(err).To(BeNil())
		gormDB = db

		store = st.NewStore(db)
		Expect(store.InitialMigration(context.TODO())).To(Succeed())
	})

	AfterAll(func() {
		store.Close()
	})

	Context("transaction", Ordered, func() {
		It("commits an upsert", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			err = store.SourceSpec().Upsert(ctx, model.SourceSpec{
				ID: "tx-commit", Brand: "Acme", Model: "One", Type: "UPS", CapacityWh: 84, MaxOutputW: 390,
			})
			Expect(err).To(BeNil())

			_, err = st.Commit(ctx)
			Expect(err).To(BeNil())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) FROM source_specs WHERE id = 'tx-commit';").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rolls back an upsert", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			err = store.DeviceSpec().Upsert(ctx, model.DeviceSpec{
				ID: "tx-rollback", Name: "Lamp", Category: "Освітлення", Type: "CONSTANT",
				PowerW: 5, RequiredW: 5, PreferredPort: "USB-A",
			})
			Expect(err).To(BeNil())

			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())

			count := -1
			Expect(gormDB.Raw("SELECT COUNT(*) FROM device_specs WHERE id = 'tx-rollback';").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("reuses the transaction already in the context", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())
			same, err := store.NewTransactionContext(ctx)
			Expect(err).To(BeNil())
			Expect(st.FromContext(same)).To(BeIdenticalTo(st.FromContext(ctx)))
			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())
		})

		It("rolls back when the callback fails", func() {
			err := st.WithTransaction(context.TODO(), gormDB, func(ctx context.Context) error {
				Expect(st.FromContext(ctx)).NotTo(BeNil())
				Expect(store.SourceSpec().Upsert(ctx, model.SourceSpec{
					ID: "tx-fn", Brand: "Acme", Model: "Two", Type: "BATTERY", CapacityWh: 1280, MaxOutputW: 1280,
				})).To(Succeed())
				return errors.New("boom")
			})
			Expect(err).To(MatchError("boom"))

			count := -1
			Expect(gormDB.Raw("SELECT COUNT(*) FROM source_specs WHERE id = 'tx-fn';").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		AfterAll(func() {
			gormDB.Exec("DELETE FROM source_specs;")
			gormDB.Exec("DELETE FROM device_specs;")
		})
	})

	Context("seed", func() {
		It("loads the reference catalog", func() {
			Expect(store.Seed(context.TODO())).To(Succeed())

			var sources, devices int
			Expect(gormDB.Raw("SELECT COUNT(*) FROM source_specs;").Scan(&sources).Error).To(BeNil())
			Expect(gormDB.Raw("SELECT COUNT(*) FROM device_specs;").Scan(&devices).Error).To(BeNil())
			Expect(sources).To(Equal(38))
			Expect(devices).To(Equal(38))
		})

		It("is idempotent", func() {
			Expect(store.Seed(context.TODO())).To(Succeed())

			var sources int
			Expect(gormDB.Raw("SELECT COUNT(*) FROM source_specs;").Scan(&sources).Error).To(BeNil())
			Expect(sources).To(Equal(38))
		})

		It("restores edited entries", func() {
			Expect(gormDB.Exec("UPDATE source_specs SET max_output_w = 1 WHERE id = 'ps-ef-r2';").Error).To(BeNil())
			Expect(store.Seed(context.TODO())).To(Succeed())

			spec, err := store.SourceSpec().Get(context.TODO(), "ps-ef-r2")
			Expect(err).To(BeNil())
			Expect(spec.MaxOutputW).To(Equal(300.0))
		})

		It("reports statistics", func() {
			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.SourcesByType).To(Equal(map[string]int64{
				"POWERBANK": 17, "STATION": 15, "UPS": 3, "BATTERY": 3,
			}))
			Expect(stats.DevicesByCategory).To(HaveKeyWithValue("Мережа", int64(6)))
		})
	})
})
