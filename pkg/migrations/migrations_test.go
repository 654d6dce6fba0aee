package migrations_test

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/powerguard/autonomy-planner/internal/config"
	"github.com/powerguard/autonomy-planner/internal/store"
	"github.com/powerguard/autonomy-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		cfg    *config.Config
	)

	BeforeAll(func() {
		cfg = config.NewDefault()
		cfg.Database.Name = filepath.Join(GinkgoT().TempDir(), "migrations.db")
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	tableExists := func(name string) bool {
		count := 0
		tx := gormdb.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?;", name).Scan(&count)
		Expect(tx.Error).To(BeNil())
		return count == 1
	}

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exist", func() {
			c := *cfg
			svc := *cfg.Service
			svc.MigrationFolder = "some folder"
			c.Service = &svc

			Expect(migrations.MigrateStore(gormdb, &c)).NotTo(Succeed())
		})

		It("successfully migrates the db from the sql folder", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())
			c := *cfg
			svc := *cfg.Service
			svc.MigrationFolder = path.Join(currentFolder, "sql")
			c.Service = &svc

			Expect(migrations.MigrateStore(gormdb, &c)).To(Succeed())
			for _, table := range []string{"source_specs", "device_specs", "goose_db_version"} {
				Expect(tableExists(table)).To(BeTrue(), table)
			}
		})

		It("successfully migrates the db from the embedded migrations", func() {
			Expect(migrations.MigrateStore(gormdb, cfg)).To(Succeed())
			Expect(tableExists("source_specs")).To(BeTrue())
		})

		It("accepts the seeded catalog", func() {
			Expect(migrations.MigrateStore(gormdb, cfg)).To(Succeed())
			Expect(s.Seed(context.TODO())).To(Succeed())

			spec, err := s.SourceSpec().Get(context.TODO(), "bat-life-100")
			Expect(err).To(BeNil())
			Expect(spec.CapacityWh).To(Equal(1280.0))
		})

		AfterEach(func() {
			gormdb.Exec("DROP TABLE IF EXISTS device_specs;")
			gormdb.Exec("DROP TABLE IF EXISTS source_specs;")
			gormdb.Exec("DROP TABLE IF EXISTS goose_db_version;")
		})
	})
})
